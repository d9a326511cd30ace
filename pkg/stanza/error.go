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
	"fmt"

	"github.com/jackal-xmpp/stravaganza/v2"
)

const stanzasNamespace = "urn:ietf:params:xml:ns:xmpp-stanzas"

// ErrType represents a stanza error type.
type ErrType string

// Stanza error types.
const (
	Auth     ErrType = "auth"
	Cancel   ErrType = "cancel"
	Continue ErrType = "continue"
	Modify   ErrType = "modify"
	Wait     ErrType = "wait"
)

// Condition represents a defined stanza error condition.
type Condition string

// Stanza error conditions.
const (
	BadRequest            Condition = "bad-request"
	Conflict              Condition = "conflict"
	FeatureNotImplemented Condition = "feature-not-implemented"
	Forbidden             Condition = "forbidden"
	Gone                  Condition = "gone"
	InternalServerError   Condition = "internal-server-error"
	ItemNotFound          Condition = "item-not-found"
	JIDMalformed          Condition = "jid-malformed"
	NotAcceptable         Condition = "not-acceptable"
	NotAllowed            Condition = "not-allowed"
	NotAuthorized         Condition = "not-authorized"
	PolicyViolation       Condition = "policy-violation"
	RecipientUnavailable  Condition = "recipient-unavailable"
	Redirect              Condition = "redirect"
	RegistrationRequired  Condition = "registration-required"
	RemoteServerNotFound  Condition = "remote-server-not-found"
	RemoteServerTimeout   Condition = "remote-server-timeout"
	ResourceConstraint    Condition = "resource-constraint"
	ServiceUnavailable    Condition = "service-unavailable"
	SubscriptionRequired  Condition = "subscription-required"
	UndefinedCondition    Condition = "undefined-condition"
	UnexpectedRequest     Condition = "unexpected-request"
)

var defaultErrorTypes = map[Condition]ErrType{
	BadRequest:            Modify,
	Conflict:              Cancel,
	FeatureNotImplemented: Cancel,
	Forbidden:             Auth,
	Gone:                  Cancel,
	InternalServerError:   Cancel,
	ItemNotFound:          Cancel,
	JIDMalformed:          Modify,
	NotAcceptable:         Modify,
	NotAllowed:            Cancel,
	NotAuthorized:         Auth,
	PolicyViolation:       Modify,
	RecipientUnavailable:  Wait,
	Redirect:              Modify,
	RegistrationRequired:  Auth,
	RemoteServerNotFound:  Cancel,
	RemoteServerTimeout:   Wait,
	ResourceConstraint:    Wait,
	ServiceUnavailable:    Cancel,
	SubscriptionRequired:  Auth,
	UndefinedCondition:    Cancel,
	UnexpectedRequest:     Wait,
}

// Error represents an XMPP stanza error.
type Error struct {
	Type      ErrType
	Condition Condition
	Text      string
}

// E returns a new error using the condition default type.
func E(condition Condition) *Error {
	typ, ok := defaultErrorTypes[condition]
	if !ok {
		typ = Cancel
	}
	return &Error{Type: typ, Condition: condition}
}

// Errorf returns a new error with a descriptive text.
func Errorf(condition Condition, format string, a ...interface{}) *Error {
	err := E(condition)
	err.Text = fmt.Sprintf(format, a...)
	return err
}

// Error satisfies error interface.
func (e *Error) Error() string {
	if len(e.Text) > 0 {
		return fmt.Sprintf("stanza: %s (%s): %s", e.Condition, e.Type, e.Text)
	}
	return fmt.Sprintf("stanza: %s (%s)", e.Condition, e.Type)
}

// Is reports whether target is a stanza error with the same condition.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Condition == t.Condition
}

// Element returns the error element representation.
func (e *Error) Element() stravaganza.Element {
	b := stravaganza.NewBuilder("error").
		WithAttribute(stravaganza.Type, string(e.Type)).
		WithChild(
			stravaganza.NewBuilder(string(e.Condition)).
				WithAttribute(stravaganza.Namespace, stanzasNamespace).
				Build(),
		)
	if len(e.Text) > 0 {
		b.WithChild(
			stravaganza.NewBuilder("text").
				WithAttribute(stravaganza.Namespace, stanzasNamespace).
				WithText(e.Text).
				Build(),
		)
	}
	return b.Build()
}

// ParseError extracts the stanza error contained in elem.
// If no error child is present an undefined-condition error is returned.
func ParseError(elem stravaganza.Element) *Error {
	errElem := elem.Child("error")
	if errElem == nil {
		return E(UndefinedCondition)
	}
	err := &Error{
		Type:      ErrType(errElem.Attribute(stravaganza.Type)),
		Condition: UndefinedCondition,
	}
	for _, ch := range errElem.AllChildren() {
		if ch.Attribute(stravaganza.Namespace) != stanzasNamespace {
			continue
		}
		if ch.Name() == "text" {
			err.Text = ch.Text()
			continue
		}
		err.Condition = Condition(ch.Name())
	}
	if len(err.Type) == 0 {
		err.Type = defaultErrorTypes[err.Condition]
	}
	return err
}
