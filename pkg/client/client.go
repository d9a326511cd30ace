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

package client

import (
	"context"
	"errors"
	"fmt"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/runqueue/v2"
	"github.com/jackal-xmpp/sonar"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/ortuman/jackal-client/pkg/auth"
	"github.com/ortuman/jackal-client/pkg/connector"
	"github.com/ortuman/jackal-client/pkg/module"
	"github.com/ortuman/jackal-client/pkg/module/xep0030"
	"github.com/ortuman/jackal-client/pkg/module/xep0092"
	"github.com/ortuman/jackal-client/pkg/module/xep0198"
	"github.com/ortuman/jackal-client/pkg/module/xep0199"
	"github.com/ortuman/jackal-client/pkg/response"
	"github.com/ortuman/jackal-client/pkg/transport"
)

var (
	// ErrNotAuthorized is returned when sending an element while the session is neither connected nor connecting.
	ErrNotAuthorized = errors.New("client: not authorized")

	// ErrSessionClosed is returned by Connect when the session could not be established.
	ErrSessionClosed = errors.New("client: session closed")
)

type options struct {
	resolver  Resolver
	validator connector.CertificateValidator
	sn        *sonar.Sonar
	cache     *auth.SaltedPasswordCache
	logger    kitlog.Logger
}

// Option defines a client option.
type Option func(opts *options)

// WithResolver sets the resolver used to find the server endpoint.
func WithResolver(r Resolver) Option {
	return func(opts *options) {
		opts.resolver = r
	}
}

// WithCertificateValidator overrides the configured server certificate validator.
func WithCertificateValidator(v connector.CertificateValidator) Option {
	return func(opts *options) {
		opts.validator = v
	}
}

// WithSonar sets the event hub client events are posted to.
func WithSonar(sn *sonar.Sonar) Option {
	return func(opts *options) {
		opts.sn = sn
	}
}

// WithSaltedPasswordCache sets the SCRAM salted password cache.
func WithSaltedPasswordCache(cache *auth.SaltedPasswordCache) Option {
	return func(opts *options) {
		opts.cache = cache
	}
}

// WithLogger sets the client logger.
func WithLogger(logger kitlog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// Client is an XMPP client session along with its modules.
type Client struct {
	cfg        Config
	accountJID *jid.JID
	rq         *runqueue.RunQueue
	sn         *sonar.Sonar
	conn       *connector.Connector
	rm         *response.Manager
	mods       *module.Modules
	sm         *xep0198.Engine
	ping       *xep0199.Ping
	disco      *xep0030.Disco
	version    *xep0092.Version
	cache      *auth.SaltedPasswordCache
	sl         *sessionLogic
	logger     kitlog.Logger
}

// New returns a new initialized Client instance.
func New(cfg Config, opts ...Option) (*Client, error) {
	accountJID, err := jid.NewWithString(cfg.Account.JID, false)
	if err != nil {
		return nil, fmt.Errorf("client: invalid account JID: %w", err)
	}
	if len(accountJID.Domain()) == 0 {
		return nil, errors.New("client: account JID domain is empty")
	}
	o := options{
		sn:     sonar.New(),
		cache:  auth.NewSaltedPasswordCache(),
		logger: kitlog.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if len(cfg.Connection.Domain) == 0 {
		cfg.Connection.Domain = accountJID.Domain()
	}
	if cfg.StreamManagement.RequestTimeout == 0 {
		cfg.StreamManagement.RequestTimeout = cfg.Session.RequestTimeout
	}
	logger := kitlog.With(o.logger, "jid", accountJID.String())

	c := &Client{
		cfg:        cfg,
		accountJID: accountJID,
		rq:         runqueue.New(accountJID.String()),
		sn:         o.sn,
		rm:         response.NewManager(accountJID, logger),
		mods:       module.NewModules(o.sn, logger),
		cache:      o.cache,
		logger:     logger,
	}
	c.sm, err = xep0198.NewEngine(cfg.StreamManagement, c, c.rm, o.sn, logger)
	if err != nil {
		return nil, err
	}
	c.ping = xep0199.New(c, logger)
	c.disco = xep0030.New(c, c.mods, cfg.Disco, o.sn, logger)
	c.version = xep0092.New(c, cfg.Version, logger)

	connOpts := []connector.Option{
		connector.WithSonar(o.sn),
		connector.WithLogger(logger),
	}
	if o.resolver != nil {
		connOpts = append(connOpts, connector.WithResolver(o.resolver))
	}
	if o.validator != nil {
		connOpts = append(connOpts, connector.WithCertificateValidator(o.validator))
	}
	if cfg.Connection.UseSeeOtherHost && len(accountJID.Node()) > 0 {
		connOpts = append(connOpts, connector.WithStreamFrom(accountJID.ToBareJID().String()))
	}
	c.conn = connector.New(cfg.Connection, c.rq, connector.EventHandlerFunc(func(ev connector.Event) {
		c.sl.HandleConnectorEvent(ev)
	}), connOpts...)

	c.sl = newSessionLogic(cfg, accountJID, c.rq, c.conn, c.rm, c.mods, c.sm, c.disco, c.ping, c.newNegotiator(cfg.Account.Password), o.sn, logger)

	c.mods.RegisterFilter(c.sm)
	for _, mod := range []module.Module{c.ping, c.disco, c.version} {
		if err := c.mods.Register(mod); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Start starts client modules.
func (c *Client) Start(ctx context.Context) error {
	return c.mods.Start(ctx)
}

// Stop closes the session and stops client modules.
func (c *Client) Stop(ctx context.Context) error {
	if err := c.Disconnect(ctx, false); err != nil {
		level.Warn(c.logger).Log("msg", "failed to close session gracefully", "err", err)
		c.runSync(func() { c.sl.Stop(true) })
	}
	return c.mods.Stop(ctx)
}

// Login initiates a new session. No-op unless the session is disconnected.
// Must not be invoked from an event or module handler.
func (c *Client) Login() {
	c.runSync(c.sl.Start)
}

// Connect initiates a new session and blocks until it is established, it fails or ctx is done.
// Must not be invoked from an event or module handler.
func (c *Client) Connect(ctx context.Context) error {
	c.Login()
	for {
		st, ch := c.sl.stateNotify()
		switch st.State {
		case Connected:
			return nil
		case Disconnected:
			if err := st.Err(); err != nil {
				return err
			}
			return ErrSessionClosed
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Disconnect closes the session and blocks until it is disconnected or ctx is done.
// If force is set the transport is torn down without closing the stream.
// Must not be invoked from an event or module handler.
func (c *Client) Disconnect(ctx context.Context, force bool) error {
	c.runSync(func() { c.sl.Stop(force) })
	for {
		st, ch := c.sl.stateNotify()
		if st.State == Disconnected {
			return nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// SetPassword replaces the account password used by subsequent logins.
// Any stream management state bound to the previous credentials is discarded.
func (c *Client) SetPassword(password string) {
	c.cache.Clear()
	c.runSync(func() { c.sl.SetCredentials(c.newNegotiator(password)) })
}

// State returns current session state.
func (c *Client) State() SessionState {
	return c.sl.State()
}

// JID satisfies module.Client interface.
func (c *Client) JID() *jid.JID {
	return c.sl.JID()
}

// SendElement satisfies module.Client interface.
func (c *Client) SendElement(ctx context.Context, elem stravaganza.Element) error {
	return c.sl.SendElement(ctx, elem)
}

// SendIQ satisfies module.Client interface.
// Must not be invoked from an event or module handler.
func (c *Client) SendIQ(ctx context.Context, iq stravaganza.Element) (stravaganza.Element, error) {
	type result struct {
		elem stravaganza.Element
		err  error
	}
	resCh := make(chan result, 1)

	iq, key := c.rm.RegisterIQ(iq, c.cfg.Session.RequestTimeout, func(elem stravaganza.Element, err error) {
		resCh <- result{elem: elem, err: err}
	})
	if err := c.SendElement(ctx, iq); err != nil {
		c.rm.Cancel(key)
		return nil, err
	}
	select {
	case res := <-resCh:
		return res.elem, res.err

	case <-ctx.Done():
		c.rm.Cancel(key)
		return nil, ctx.Err()
	}
}

// RegisterModule registers a new module. Modules are dispatched in registration order.
func (c *Client) RegisterModule(mod module.Module) error {
	return c.mods.Register(mod)
}

// Modules returns client module hub.
func (c *Client) Modules() *module.Modules {
	return c.mods
}

// Ping returns client ping module.
func (c *Client) Ping() *xep0199.Ping {
	return c.ping
}

// Disco returns client service discovery module.
func (c *Client) Disco() *xep0030.Disco {
	return c.disco
}

// Version returns client software version module.
func (c *Client) Version() *xep0092.Version {
	return c.version
}

// StreamManagement returns client stream management engine.
func (c *Client) StreamManagement() *xep0198.Engine {
	return c.sm
}

// Sonar returns the event hub client events are posted to.
func (c *Client) Sonar() *sonar.Sonar {
	return c.sn
}

func (c *Client) newNegotiator(password string) *auth.Negotiator {
	creds := auth.Credentials{
		Username: c.accountJID.Node(),
		Password: password,
	}
	opts := []auth.NegotiatorOption{
		auth.WithSaltedPasswordCache(c.cache),
		auth.WithChannelBinder(func(mechanism transport.ChannelBindingMechanism) []byte {
			return c.conn.ChannelBindingBytes(mechanism)
		}),
	}
	if len(c.cfg.Account.Mechanisms) > 0 {
		opts = append(opts, auth.WithMechanisms(c.cfg.Account.Mechanisms))
	}
	return auth.NewNegotiator(creds, opts...)
}

func (c *Client) runSync(fn func()) {
	done := make(chan struct{})
	c.rq.Run(func() {
		fn()
		close(done)
	})
	<-done
}
