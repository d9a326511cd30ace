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

package xmpputil

import (
	"github.com/google/uuid"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/ortuman/jackal-client/pkg/stanza"
)

const streamsNamespace = "urn:ietf:params:xml:ns:xmpp-streams"

// NewID returns a new random stanza identifier.
func NewID() string {
	return uuid.New().String()
}

// MakeIQ creates a new iq stanza of type typ addressed to 'to'.
// An empty 'to' value addresses the account server.
func MakeIQ(typ, to string, children ...stravaganza.Element) stravaganza.Element {
	b := stravaganza.NewBuilder("iq").
		WithAttribute(stravaganza.ID, NewID()).
		WithAttribute(stravaganza.Type, typ)
	if len(to) > 0 {
		b.WithAttribute(stravaganza.To, to)
	}
	return b.WithChildren(children...).Build()
}

// MakeResultIQ creates a new result stanza derived from iq.
func MakeResultIQ(iq stravaganza.Element, queryChild stravaganza.Element) stravaganza.Element {
	b := stravaganza.NewBuilder("iq").
		WithAttribute(stravaganza.ID, iq.Attribute(stravaganza.ID)).
		WithAttribute(stravaganza.Type, stanza.ResultType)
	swapAddresses(b, iq)
	if queryChild != nil {
		b.WithChild(queryChild)
	}
	return b.Build()
}

// MakeErrorReply creates an error stanza replying elem using stanzaErr as reason.
func MakeErrorReply(elem stravaganza.Element, stanzaErr *stanza.Error) stravaganza.Element {
	b := stravaganza.NewBuilderFromElement(elem).
		WithoutAttribute(stravaganza.From).
		WithoutAttribute(stravaganza.To).
		WithAttribute(stravaganza.Type, stanza.ErrorType)
	swapAddresses(b, elem)
	b.WithChild(stanzaErr.Element())
	return b.Build()
}

// StreamErrorCondition returns the condition name and text of a stream:error element.
func StreamErrorCondition(elem stravaganza.Element) (condition string, text string) {
	for _, ch := range elem.AllChildren() {
		if ch.Attribute(stravaganza.Namespace) != streamsNamespace {
			continue
		}
		if ch.Name() == "text" {
			continue
		}
		return ch.Name(), ch.Text()
	}
	return "", ""
}

func swapAddresses(b *stravaganza.Builder, elem stravaganza.Element) {
	if from := elem.Attribute(stravaganza.From); len(from) > 0 {
		b.WithAttribute(stravaganza.To, from)
	}
	if to := elem.Attribute(stravaganza.To); len(to) > 0 {
		b.WithAttribute(stravaganza.From, to)
	}
}
