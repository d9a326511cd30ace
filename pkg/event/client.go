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
	"github.com/jackal-xmpp/stravaganza/v2"
)

const (
	// ClientSessionStateChanged event is posted whenever the client session state changes.
	ClientSessionStateChanged = "client.session.state_changed"

	// ClientAuthenticated event is posted after a successful SASL negotiation.
	ClientAuthenticated = "client.authenticated"

	// ClientAuthenticationFailed event is posted when SASL negotiation fails.
	ClientAuthenticationFailed = "client.authentication_failed"

	// ClientResourceBound event is posted once a resource has been bound to the stream.
	ClientResourceBound = "client.resource_bound"

	// ClientSeeOtherHost event is posted when the server redirects the client to another host.
	ClientSeeOtherHost = "client.see_other_host"

	// ClientStanzaReceived event is posted whenever a stanza is dispatched to modules.
	ClientStanzaReceived = "client.stanza_received"

	// ClientStanzaSent event is posted whenever a stanza is handed to the connector.
	ClientStanzaSent = "client.stanza_sent"
)

// ClientEventInfo contains all info associated to a client event.
type ClientEventInfo struct {
	// JID is the account JID, full once a resource has been bound.
	JID string

	// State is the session state name.
	State string

	// Resumed tells whether the session was resumed instead of established.
	Resumed bool

	// Reason is the disconnection reason name, if any.
	Reason string

	// Host is the redirection target, if any.
	Host string

	// Element is the event associated XMPP element.
	Element stravaganza.Element
}
