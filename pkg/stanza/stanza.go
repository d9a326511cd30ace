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

package stanza

import (
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
)

// Kind identifies the stanza refinement.
type Kind int

const (
	// Unknown represents a non stanza element.
	Unknown Kind = iota

	// Message represents a message stanza.
	Message

	// Presence represents a presence stanza.
	Presence

	// IQ represents an info/query stanza.
	IQ
)

// String satisfies fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case Message:
		return "message"
	case Presence:
		return "presence"
	case IQ:
		return "iq"
	}
	return "unknown"
}

// IQ and stanza type values.
const (
	GetType    = "get"
	SetType    = "set"
	ResultType = "result"
	ErrorType  = "error"
)

// KindOf returns the stanza kind represented by an element name.
func KindOf(name string) Kind {
	switch name {
	case "message":
		return Message
	case "presence":
		return Presence
	case "iq":
		return IQ
	}
	return Unknown
}

// IsStanza tells whether elem is a message, presence or iq element.
func IsStanza(elem stravaganza.Element) bool {
	return KindOf(elem.Name()) != Unknown
}

// Stanza wraps an XML stanza caching its addressing attributes.
type Stanza struct {
	elem stravaganza.Element
	kind Kind
	id   string
	typ  string
	from *jid.JID
	to   *jid.JID
}

// New returns a Stanza wrapping elem.
// Malformed address attributes are cached as nil.
func New(elem stravaganza.Element) *Stanza {
	s := &Stanza{
		elem: elem,
		kind: KindOf(elem.Name()),
		id:   elem.Attribute(stravaganza.ID),
		typ:  elem.Attribute(stravaganza.Type),
	}
	if from := elem.Attribute(stravaganza.From); len(from) > 0 {
		s.from, _ = jid.NewWithString(from, false)
	}
	if to := elem.Attribute(stravaganza.To); len(to) > 0 {
		s.to, _ = jid.NewWithString(to, false)
	}
	return s
}

// Element returns the wrapped element.
func (s *Stanza) Element() stravaganza.Element { return s.elem }

// Kind returns stanza kind.
func (s *Stanza) Kind() Kind { return s.kind }

// ID returns stanza identifier.
func (s *Stanza) ID() string { return s.id }

// Type returns stanza type attribute value.
func (s *Stanza) Type() string { return s.typ }

// From returns stanza sender address.
func (s *Stanza) From() *jid.JID { return s.from }

// To returns stanza recipient address.
func (s *Stanza) To() *jid.JID { return s.to }

// IsIQRequest tells whether the stanza is an iq of type get or set.
func (s *Stanza) IsIQRequest() bool {
	return s.kind == IQ && (s.typ == GetType || s.typ == SetType)
}

// IsIQResponse tells whether the stanza is an iq of type result or error.
func (s *Stanza) IsIQResponse() bool {
	return s.kind == IQ && (s.typ == ResultType || s.typ == ErrorType)
}

// IsError tells whether the stanza is of error type.
func (s *Stanza) IsError() bool {
	return s.typ == ErrorType
}

// Error returns the XMPP error carried by the stanza, or nil if none.
func (s *Stanza) Error() *Error {
	if !s.IsError() {
		return nil
	}
	return ParseError(s.elem)
}
