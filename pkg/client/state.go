// Copyright 2022 The jackal Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

import (
	"fmt"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/ortuman/jackal-client/pkg/connector"
)

// State represents a session state.
type State int

const (
	// Disconnected represents a session with no underlying stream.
	Disconnected State = iota

	// Connecting represents a session negotiating its stream.
	Connecting

	// Connected represents an established session.
	Connected

	// Disconnecting represents a session being closed.
	Disconnecting
)

// String satisfies fmt.Stringer interface.
func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnecting:
		return "disconnecting"
	}
	return ""
}

// Reason represents a session disconnection reason.
type Reason int

const (
	// ReasonNone represents a regular disconnection.
	ReasonNone Reason = iota

	// ReasonTimeout represents a disconnection caused by a timeout or a transport failure.
	ReasonTimeout

	// ReasonTLSCertError represents a disconnection caused by an invalid server certificate.
	ReasonTLSCertError

	// ReasonXMLError represents a disconnection caused by malformed XML.
	ReasonXMLError

	// ReasonStreamError represents a disconnection caused by a stream error.
	ReasonStreamError

	// ReasonAuthenticationFailure represents a disconnection caused by a failed authentication.
	ReasonAuthenticationFailure
)

// String satisfies fmt.Stringer interface.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonTimeout:
		return "timeout"
	case ReasonTLSCertError:
		return "tls_cert_error"
	case ReasonXMLError:
		return "xml_error"
	case ReasonStreamError:
		return "stream_error"
	case ReasonAuthenticationFailure:
		return "authentication_failure"
	}
	return ""
}

func reasonFromConnector(r connector.Reason) Reason {
	switch r {
	case connector.ReasonTimeout:
		return ReasonTimeout
	case connector.ReasonTLSCertError:
		return ReasonTLSCertError
	case connector.ReasonXMLError:
		return ReasonXMLError
	case connector.ReasonStreamError:
		return ReasonStreamError
	default:
		return ReasonNone
	}
}

// SessionState represents the session state along with its connection or disconnection details.
type SessionState struct {
	State State

	// Resumed is only meaningful in Connected state.
	Resumed bool

	// Reason is only meaningful in Disconnected state.
	Reason Reason

	// StreamError contains the stream error element when Reason is ReasonStreamError.
	StreamError stravaganza.Element

	// AuthError contains the authentication error when Reason is ReasonAuthenticationFailure.
	AuthError error
}

// String satisfies fmt.Stringer interface.
func (ss SessionState) String() string {
	switch ss.State {
	case Connected:
		return fmt.Sprintf("%s(resumed: %t)", ss.State, ss.Resumed)
	case Disconnected:
		return fmt.Sprintf("%s(%s)", ss.State, ss.Reason)
	}
	return ss.State.String()
}

// Err returns the error associated to a disconnected session, or nil if the disconnection was regular.
func (ss SessionState) Err() error {
	if ss.State != Disconnected || ss.Reason == ReasonNone {
		return nil
	}
	if ss.AuthError != nil {
		return fmt.Errorf("%w: %s: %v", ErrSessionClosed, ss.Reason, ss.AuthError)
	}
	return fmt.Errorf("%w: %s", ErrSessionClosed, ss.Reason)
}

func (ss SessionState) equals(other SessionState) bool {
	return ss.State == other.State && ss.Resumed == other.Resumed && ss.Reason == other.Reason
}
