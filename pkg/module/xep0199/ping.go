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

package xep0199

import (
	"context"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/ortuman/jackal-client/pkg/module"
	"github.com/ortuman/jackal-client/pkg/stanza"
	xmpputil "github.com/ortuman/jackal-client/pkg/util/xmpp"
)

// Namespace is the ping protocol namespace.
const Namespace = "urn:xmpp:ping"

const (
	// ModuleName represents ping module name.
	ModuleName = "ping"

	// XEPNumber represents ping XEP number.
	XEPNumber = "0199"
)

// Ping represents ping (XEP-0199) module type.
type Ping struct {
	cl     module.Client
	logger kitlog.Logger
}

// New returns a new initialized ping instance.
func New(cl module.Client, logger kitlog.Logger) *Ping {
	return &Ping{
		cl:     cl,
		logger: kitlog.With(logger, "module", ModuleName, "xep", XEPNumber),
	}
}

// Name returns ping module name.
func (p *Ping) Name() string { return ModuleName }

// Features returns ping disco features.
func (p *Ping) Features() []string { return []string{Namespace} }

// Criteria returns ping module criteria.
func (p *Ping) Criteria() module.Criteria {
	return module.IQ(Namespace, stanza.GetType)
}

// Start starts ping module.
func (p *Ping) Start(_ context.Context) error {
	level.Info(p.logger).Log("msg", "started ping module")
	return nil
}

// Stop stops ping module.
func (p *Ping) Stop(_ context.Context) error {
	level.Info(p.logger).Log("msg", "stopped ping module")
	return nil
}

// Process answers an incoming ping request.
func (p *Ping) Process(ctx context.Context, stz *stanza.Stanza) error {
	if !stz.IsIQRequest() || stz.Type() != stanza.GetType {
		return stanza.E(stanza.BadRequest)
	}
	return p.cl.SendElement(ctx, xmpputil.MakeResultIQ(stz.Element(), nil))
}

// Ping sends a ping request to 'to' and returns the round trip time.
// An empty 'to' value pings the account server.
func (p *Ping) Ping(ctx context.Context, to string) (time.Duration, error) {
	iq := xmpputil.MakeIQ(stanza.GetType, to,
		stravaganza.NewBuilder("ping").
			WithAttribute(stravaganza.Namespace, Namespace).
			Build(),
	)
	t0 := time.Now()
	resp, err := p.cl.SendIQ(ctx, iq)
	if err != nil {
		return 0, err
	}
	if resp.Attribute(stravaganza.Type) == stanza.ErrorType {
		return 0, stanza.ParseError(resp)
	}
	rtt := time.Since(t0)

	level.Debug(p.logger).Log("msg", "pong received", "to", to, "rtt", rtt)
	return rtt, nil
}
