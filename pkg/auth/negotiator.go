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
	"encoding/base64"
	"strings"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// mechanismPreference lists supported mechanisms, most preferred first.
var mechanismPreference = []string{
	"SCRAM-SHA3-512-PLUS",
	"SCRAM-SHA-512-PLUS",
	"SCRAM-SHA-256-PLUS",
	"SCRAM-SHA-1-PLUS",
	"SCRAM-SHA3-512",
	"SCRAM-SHA-512",
	"SCRAM-SHA-256",
	"SCRAM-SHA-1",
	"PLAIN",
	"ANONYMOUS",
}

var scramTypes = map[string]ScramType{
	"SCRAM-SHA-1":    ScramSHA1,
	"SCRAM-SHA-256":  ScramSHA256,
	"SCRAM-SHA-512":  ScramSHA512,
	"SCRAM-SHA3-512": ScramSHA3512,
}

// NegotiatorOption defines a SASL negotiator functional option.
type NegotiatorOption func(n *Negotiator)

// WithChannelBinder enables -PLUS mechanisms using the given channel binding source.
func WithChannelBinder(cb ChannelBinder) NegotiatorOption {
	return func(n *Negotiator) {
		n.cb = cb
	}
}

// WithSaltedPasswordCache sets the SCRAM salted password cache.
func WithSaltedPasswordCache(cache *SaltedPasswordCache) NegotiatorOption {
	return func(n *Negotiator) {
		n.cache = cache
	}
}

// WithMechanisms restricts the mechanisms the negotiator may pick.
func WithMechanisms(mechanisms []string) NegotiatorOption {
	return func(n *Negotiator) {
		n.allowed = lo.Map(mechanisms, func(m string, _ int) string { return strings.ToUpper(m) })
	}
}

// Negotiator drives the client side of a SASL exchange.
type Negotiator struct {
	creds   Credentials
	cb      ChannelBinder
	cache   *SaltedPasswordCache
	allowed []string

	mech      Mechanism
	completed bool
}

// NewNegotiator returns a new SASL negotiator for creds.
func NewNegotiator(creds Credentials, opts ...NegotiatorOption) *Negotiator {
	n := &Negotiator{creds: creds}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// OfferedMechanisms returns the mechanism names advertised by a SASL mechanisms feature element.
func OfferedMechanisms(mechanisms stravaganza.Element) []string {
	if mechanisms == nil {
		return nil
	}
	return lo.FilterMap(mechanisms.Children("mechanism"), func(m stravaganza.Element, _ int) (string, bool) {
		name := strings.ToUpper(strings.TrimSpace(m.Text()))
		return name, len(name) > 0
	})
}

// Mechanism returns the selected mechanism name.
func (n *Negotiator) Mechanism() string {
	if n.mech == nil {
		return ""
	}
	return n.mech.Name()
}

// Completed tells whether the server accepted the authentication and its proof was verified.
func (n *Negotiator) Completed() bool {
	return n.completed
}

// Start selects the most preferred usable mechanism among offered and returns the auth element.
func (n *Negotiator) Start(offered []string) (stravaganza.Element, error) {
	mech := n.selectMechanism(offered)
	if mech == nil {
		return nil, ErrNoMechanism
	}
	initial, err := mech.Start()
	if err != nil {
		return nil, err
	}
	n.mech = mech
	n.completed = false

	// empty initial response is transmitted as a single equals sign
	payload := "="
	if len(initial) > 0 {
		payload = base64.StdEncoding.EncodeToString(initial)
	}
	return stravaganza.NewBuilder("auth").
		WithAttribute(stravaganza.Namespace, Namespace).
		WithAttribute("mechanism", mech.Name()).
		WithText(payload).
		Build(), nil
}

// ProcessElement processes a SASL element received from the server.
// It returns the element to be sent back, if any. On challenge evaluation failure an abort element is returned
// along with the error. Server failures are reported as *SASLError.
func (n *Negotiator) ProcessElement(elem stravaganza.Element) (stravaganza.Element, error) {
	if n.mech == nil || n.completed {
		return nil, ErrUnexpectedElement
	}
	switch elem.Name() {
	case "challenge":
		challenge, err := decodePayload(elem.Text())
		if err != nil {
			return abortElement(), err
		}
		resp, err := n.mech.Challenge(challenge)
		if err != nil {
			return abortElement(), err
		}
		b := stravaganza.NewBuilder("response").
			WithAttribute(stravaganza.Namespace, Namespace)
		if len(resp) > 0 {
			b.WithText(base64.StdEncoding.EncodeToString(resp))
		}
		return b.Build(), nil

	case "success":
		additionalData, err := decodePayload(elem.Text())
		if err != nil {
			return nil, err
		}
		if err := n.mech.Verify(additionalData); err != nil {
			return nil, err
		}
		n.completed = true
		return nil, nil

	case "failure":
		return nil, ParseFailure(elem)
	}
	return nil, ErrUnexpectedElement
}

// Reset drops the current exchange.
func (n *Negotiator) Reset() {
	if n.mech != nil {
		n.mech.Reset()
	}
	n.mech = nil
	n.completed = false
}

func (n *Negotiator) selectMechanism(offered []string) Mechanism {
	offered = lo.Map(offered, func(m string, _ int) string { return strings.ToUpper(m) })

	for _, name := range mechanismPreference {
		if !lo.Contains(offered, name) {
			continue
		}
		if len(n.allowed) > 0 && !lo.Contains(n.allowed, name) {
			continue
		}
		if mech := n.mechanism(name); mech != nil {
			return mech
		}
	}
	return nil
}

func (n *Negotiator) mechanism(name string) Mechanism {
	hasPassword := len(n.creds.Username) > 0 && len(n.creds.Password) > 0

	switch {
	case name == "ANONYMOUS":
		if len(n.creds.Username) > 0 {
			return nil
		}
		return NewAnonymous("")

	case name == "PLAIN":
		if !hasPassword {
			return nil
		}
		return NewPlain(n.creds)

	case strings.HasSuffix(name, "-PLUS"):
		tp, ok := scramTypes[strings.TrimSuffix(name, "-PLUS")]
		if !ok || !hasPassword || !n.channelBindingAvailable() {
			return nil
		}
		return NewScram(tp, true, n.creds, n.cb, n.cache)

	default:
		tp, ok := scramTypes[name]
		if !ok || !hasPassword {
			return nil
		}
		return NewScram(tp, false, n.creds, n.cb, n.cache)
	}
}

func (n *Negotiator) channelBindingAvailable() bool {
	s := Scram{cb: n.cb}
	return s.cbSupported()
}

func decodePayload(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || s == "=" {
		return nil, nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(ErrBadChallenge, "invalid payload encoding")
	}
	return b, nil
}

func abortElement() stravaganza.Element {
	return stravaganza.NewBuilder("abort").
		WithAttribute(stravaganza.Namespace, Namespace).
		Build()
}
