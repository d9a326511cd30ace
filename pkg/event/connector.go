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

package event

import (
	"crypto/x509"

	"github.com/jackal-xmpp/stravaganza/v2"
)

const (
	// ConnectorStateChanged event is posted whenever the connector transitions to a new connection state.
	ConnectorStateChanged = "connector.state_changed"

	// ConnectorCertificateError event is posted when the server certificate chain fails validation.
	ConnectorCertificateError = "connector.certificate_error"

	// ConnectorEndpointInvalidated event is posted when a connection attempt against an endpoint timed out.
	ConnectorEndpointInvalidated = "connector.endpoint_invalidated"
)

// ConnectorEventInfo contains all info associated to a connector state event.
type ConnectorEventInfo struct {
	// Domain is the server domain the connector is attached to.
	Domain string

	// State is the new connection state name.
	State string

	// PreviousState is the connection state name before the transition.
	PreviousState string

	// Reason is the disconnection reason name, if any.
	Reason string

	// StreamError is the stream error element that caused the disconnection, if any.
	StreamError stravaganza.Element
}

// CertificateErrorEventInfo contains all info associated to a certificate validation failure.
type CertificateErrorEventInfo struct {
	// Domain is the server domain being validated.
	Domain string

	// Certificates is the chain presented by the server.
	Certificates []*x509.Certificate

	// Err is the validation error.
	Err error
}

// EndpointEventInfo contains all info associated to an endpoint event.
type EndpointEventInfo struct {
	// Domain is the server domain.
	Domain string

	// Host is the endpoint host.
	Host string

	// Port is the endpoint port.
	Port int
}
