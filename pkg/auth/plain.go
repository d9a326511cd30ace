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
	"github.com/pkg/errors"
	"golang.org/x/text/secure/precis"
)

// Plain represents PLAIN authentication mechanism.
type Plain struct {
	creds   Credentials
	started bool
}

// NewPlain returns a new PLAIN mechanism.
func NewPlain(creds Credentials) *Plain {
	return &Plain{creds: creds}
}

// Name returns mechanism name.
func (p *Plain) Name() string { return "PLAIN" }

// UsesChannelBinding satisfies Mechanism interface.
func (p *Plain) UsesChannelBinding() bool { return false }

// Start returns the message authzid NUL authcid NUL password.
func (p *Plain) Start() ([]byte, error) {
	if p.started {
		return nil, ErrUnexpectedElement
	}
	username, err := precis.UsernameCasePreserved.String(p.creds.Username)
	if err != nil {
		return nil, errors.Wrap(err, "auth: invalid username")
	}
	password, err := precis.OpaqueString.String(p.creds.Password)
	if err != nil {
		return nil, errors.Wrap(err, "auth: invalid password")
	}
	p.started = true

	b := make([]byte, 0, len(p.creds.AuthzID)+len(username)+len(password)+2)
	b = append(b, p.creds.AuthzID...)
	b = append(b, 0)
	b = append(b, username...)
	b = append(b, 0)
	b = append(b, password...)
	return b, nil
}

// Challenge satisfies Mechanism interface. PLAIN is a single step mechanism.
func (p *Plain) Challenge(_ []byte) ([]byte, error) {
	return nil, ErrUnexpectedElement
}

// Verify satisfies Mechanism interface.
func (p *Plain) Verify(additionalData []byte) error {
	if len(additionalData) > 0 {
		return ErrUnexpectedElement
	}
	return nil
}

// Reset satisfies Mechanism interface.
func (p *Plain) Reset() {
	p.started = false
}

// Anonymous represents ANONYMOUS authentication mechanism.
type Anonymous struct {
	trace string
}

// NewAnonymous returns a new ANONYMOUS mechanism. trace is optional.
func NewAnonymous(trace string) *Anonymous {
	return &Anonymous{trace: trace}
}

// Name returns mechanism name.
func (a *Anonymous) Name() string { return "ANONYMOUS" }

// UsesChannelBinding satisfies Mechanism interface.
func (a *Anonymous) UsesChannelBinding() bool { return false }

// Start returns the optional trace information.
func (a *Anonymous) Start() ([]byte, error) {
	return []byte(a.trace), nil
}

// Challenge satisfies Mechanism interface.
func (a *Anonymous) Challenge(_ []byte) ([]byte, error) {
	return nil, ErrUnexpectedElement
}

// Verify satisfies Mechanism interface.
func (a *Anonymous) Verify(_ []byte) error { return nil }

// Reset satisfies Mechanism interface.
func (a *Anonymous) Reset() {}
