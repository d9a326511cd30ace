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

package connector

import (
	"fmt"

	"github.com/jackal-xmpp/stravaganza/v2"
)

// State represents a connection state.
// Numeric values define state rank.
type State int

const (
	// Disconnected represents a disconnected connector.
	Disconnected State = iota

	// Connecting represents a connector establishing its transport.
	Connecting

	// Connected represents a connector with an established transport.
	Connected

	// Disconnecting represents a connector closing its transport.
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

// Reason represents a disconnection reason.
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
	}
	return ""
}

// ConnectionState represents the connector state along with its disconnection details.
type ConnectionState struct {
	State State

	// Reason is only meaningful in Disconnected state.
	Reason Reason

	// StreamError contains the stream error element when Reason is ReasonStreamError.
	StreamError stravaganza.Element
}

// Is tells whether cs and other share the same state ignoring disconnection details.
func (cs ConnectionState) Is(other ConnectionState) bool {
	return cs.State == other.State
}

// String satisfies fmt.Stringer interface.
func (cs ConnectionState) String() string {
	if cs.State != Disconnected {
		return cs.State.String()
	}
	return fmt.Sprintf("%s(%s)", cs.State, cs.Reason)
}

// EventType represents a connector event type.
type EventType int

const (
	// EventStreamOpen is emitted every time a stream header has been sent.
	EventStreamOpen EventType = iota

	// EventStreamStart is emitted when the server stream header has been received.
	EventStreamStart

	// EventStanza is emitted for every top-level element received from the server.
	EventStanza

	// EventStreamClose is emitted when the server closed the stream.
	EventStreamClose

	// EventStreamTerminate is emitted once the transport has been torn down.
	EventStreamTerminate

	// EventStateChanged is emitted on every connection state transition.
	EventStateChanged
)

// String satisfies fmt.Stringer interface.
func (t EventType) String() string {
	switch t {
	case EventStreamOpen:
		return "stream_open"
	case EventStreamStart:
		return "stream_start"
	case EventStanza:
		return "stanza"
	case EventStreamClose:
		return "stream_close"
	case EventStreamTerminate:
		return "stream_terminate"
	case EventStateChanged:
		return "state_changed"
	}
	return ""
}

// Event represents a connector event.
type Event struct {
	Type EventType

	// Element contains the received element for EventStreamStart and EventStanza events.
	Element stravaganza.Element

	// State contains the connection state for EventStateChanged and EventStreamTerminate events.
	State ConnectionState
}

// EventHandler handles connector events.
// Handlers are always invoked from the connector run queue.
type EventHandler interface {
	HandleConnectorEvent(ev Event)
}

// EventHandlerFunc is an adapter to allow the use of ordinary functions as event handlers.
type EventHandlerFunc func(ev Event)

// HandleConnectorEvent satisfies EventHandler interface.
func (f EventHandlerFunc) HandleConnectorEvent(ev Event) {
	f(ev)
}
