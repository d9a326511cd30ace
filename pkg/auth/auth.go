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

package auth

import (
	"errors"
	"fmt"

	"github.com/jackal-xmpp/stravaganza/v2"
)

// Namespace is the SASL stream feature namespace.
const Namespace = "urn:ietf:params:xml:ns:xmpp-sasl"

var (
	// ErrNoMechanism is returned when none of the server offered mechanisms can be used with the configured credentials.
	ErrNoMechanism = errors.New("auth: no suitable mechanism")

	// ErrBadChallenge is returned when a server challenge cannot be parsed.
	ErrBadChallenge = errors.New("auth: bad challenge")

	// ErrWrongNonce is returned when the server nonce doesn't extend the client one.
	ErrWrongNonce = errors.New("auth: wrong nonce")

	// ErrInvalidServerSignature is returned when the server proof of the shared secret doesn't match.
	ErrInvalidServerSignature = errors.New("auth: invalid server signature")

	// ErrUnexpectedElement is returned when a SASL element arrives out of order.
	ErrUnexpectedElement = errors.New("auth: unexpected element")
)

// Credentials contains the account data used to authenticate.
type Credentials struct {
	// Username is the account local part. Empty username selects anonymous login.
	Username string

	// Password is the account password.
	Password string

	// AuthzID is the optional authorization identity.
	AuthzID string
}

// Mechanism defines a client SASL mechanism state machine.
type Mechanism interface {
	// Name returns mechanism name.
	Name() string

	// UsesChannelBinding returns whether or not this mechanism binds to the underlying TLS channel.
	UsesChannelBinding() bool

	// Start returns the initial client response.
	Start() ([]byte, error)

	// Challenge evaluates a server challenge returning the client response.
	Challenge(challenge []byte) ([]byte, error)

	// Verify checks the additional data carried by the server success element.
	Verify(additionalData []byte) error

	// Reset resets mechanism internal state.
	Reset()
}

// SASLErrorReason defines the SASL error reason.
type SASLErrorReason uint8

const (
	// Aborted represents an 'aborted' authentication error.
	Aborted SASLErrorReason = iota

	// AccountDisabled represents an 'account-disabled' authentication error.
	AccountDisabled

	// CredentialsExpired represents a 'credentials-expired' authentication error.
	CredentialsExpired

	// EncryptionRequired represents an 'encryption-required' authentication error.
	EncryptionRequired

	// IncorrectEncoding represents a 'incorrect-encoding' authentication error.
	IncorrectEncoding

	// InvalidAuthzID represents an 'invalid-authzid' authentication error.
	InvalidAuthzID

	// InvalidMechanism represents an 'invalid-mechanism' authentication error.
	InvalidMechanism

	// MalformedRequest represents a 'malformed-request' authentication error.
	MalformedRequest

	// MechanismTooWeak represents a 'mechanism-too-weak' authentication error.
	MechanismTooWeak

	// NotAuthorized represents a 'not-authorized' authentication error.
	NotAuthorized

	// TemporaryAuthFailure represents a 'temporary-auth-failure' authentication error.
	TemporaryAuthFailure
)

var saslErrorReasons = map[SASLErrorReason]string{
	Aborted:              "aborted",
	AccountDisabled:      "account-disabled",
	CredentialsExpired:   "credentials-expired",
	EncryptionRequired:   "encryption-required",
	IncorrectEncoding:    "incorrect-encoding",
	InvalidAuthzID:       "invalid-authzid",
	InvalidMechanism:     "invalid-mechanism",
	MalformedRequest:     "malformed-request",
	MechanismTooWeak:     "mechanism-too-weak",
	NotAuthorized:        "not-authorized",
	TemporaryAuthFailure: "temporary-auth-failure",
}

// String returns SASLErrorReason string representation.
func (r SASLErrorReason) String() string {
	return saslErrorReasons[r]
}

// SASLError represents a failure reported by the server.
type SASLError struct {
	Reason SASLErrorReason
	Text   string
}

// Error satisfies error interface.
func (se *SASLError) Error() string {
	if len(se.Text) > 0 {
		return fmt.Sprintf("auth: %s: %s", se.Reason, se.Text)
	}
	return fmt.Sprintf("auth: %s", se.Reason)
}

// ParseFailure returns the SASL error carried by a failure element.
// Unknown conditions map to NotAuthorized.
func ParseFailure(elem stravaganza.Element) *SASLError {
	se := &SASLError{Reason: NotAuthorized}
	for _, child := range elem.AllChildren() {
		if child.Name() == "text" {
			se.Text = child.Text()
			continue
		}
		for r, name := range saslErrorReasons {
			if child.Name() == name {
				se.Reason = r
				break
			}
		}
	}
	return se
}
