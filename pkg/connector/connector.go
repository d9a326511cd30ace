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

package connector

import (
	"context"
	"crypto/tls"
	"encoding/xml"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/runqueue/v2"
	"github.com/jackal-xmpp/sonar"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/ortuman/jackal-client/pkg/event"
	xmppparser "github.com/ortuman/jackal-client/pkg/parser"
	"github.com/ortuman/jackal-client/pkg/session"
	"github.com/ortuman/jackal-client/pkg/transport"
	"github.com/ortuman/jackal-client/pkg/transport/compress"
	"github.com/ortuman/jackal-client/pkg/util/dns"
	"golang.org/x/time/rate"
)

const (
	tlsNamespace      = "urn:ietf:params:xml:ns:xmpp-tls"
	compressNamespace = "http://jabber.org/protocol/compress"

	streamErrorElementName = "stream:error"

	invalidEndpointDuration = time.Minute * 15
	defaultCloseTimeout     = time.Second * 5
	markInvalidTimeout      = time.Second * 5
	dialKeepAlive           = time.Second * 15
)

// ErrNotConnected is returned when writing to a connector which is not in Connected state.
var ErrNotConnected = errors.New("connector: not connected")

type dialFunc func(ctx context.Context, network, address string) (net.Conn, error)

type dialWebSocketFunc func(ctx context.Context, urlStr string, tlsCfg *tls.Config, readTimeout time.Duration) (transport.Transport, error)

// Option defines a connector functional option.
type Option func(c *Connector)

// WithResolver sets the endpoint resolver used when no host has been configured.
func WithResolver(r resolver) Option {
	return func(c *Connector) {
		c.resolver = r
	}
}

// WithCertificateValidator overrides the configured certificate validation policy.
func WithCertificateValidator(v CertificateValidator) Option {
	return func(c *Connector) {
		c.validator = v
	}
}

// WithSonar sets the event bus where connector events are posted.
func WithSonar(sn *sonar.Sonar) Option {
	return func(c *Connector) {
		c.sn = sn
	}
}

// WithLogger sets connector logger.
func WithLogger(logger kitlog.Logger) Option {
	return func(c *Connector) {
		c.logger = logger
	}
}

// WithStreamFrom sets the from attribute announced in stream headers.
func WithStreamFrom(from string) Option {
	return func(c *Connector) {
		c.from = from
	}
}

// WithLang sets the stream default language.
func WithLang(lang string) Option {
	return func(c *Connector) {
		c.lang = lang
	}
}

// Connector owns the transport of an XMPP client stream.
//
// Connector is bound to a run queue: every method, except State and CurrentEndpoint, must be invoked
// from a task running on it. Event handlers are invoked from the same run queue.
type Connector struct {
	cfg       Config
	rq        *runqueue.RunQueue
	h         EventHandler
	resolver  resolver
	validator CertificateValidator
	dialFn    dialFunc
	dialWSFn  dialWebSocketFunc
	sn        *sonar.Sonar
	from      string
	lang      string
	logger    kitlog.Logger

	closeTimeout time.Duration

	mu sync.RWMutex
	st ConnectionState
	ep *dns.Endpoint

	attempt       uint64
	tr            transport.Transport
	sess          *session.Session
	streamStarted bool
	tlsPending    bool
	connTm        *time.Timer
	closeTm       *time.Timer
}

// New returns a new initialized Connector instance.
func New(cfg Config, rq *runqueue.RunQueue, h EventHandler, opts ...Option) *Connector {
	d := &net.Dialer{
		Timeout:   cfg.Timeout,
		KeepAlive: dialKeepAlive,
	}
	c := &Connector{
		cfg:          cfg,
		rq:           rq,
		h:            h,
		validator:    newValidator(cfg.Certificate),
		dialFn:       d.DialContext,
		dialWSFn:     transport.DialWebSocket,
		logger:       kitlog.NewNopLogger(),
		closeTimeout: defaultCloseTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = kitlog.With(c.logger, "domain", cfg.Domain)
	return c
}

// State returns current connection state. Safe for concurrent use.
func (c *Connector) State() ConnectionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.st
}

// CurrentEndpoint returns the endpoint of the current or last connection attempt. Safe for concurrent use.
func (c *Connector) CurrentEndpoint() *dns.Endpoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ep == nil {
		return nil
	}
	ep := *c.ep
	return &ep
}

// PrepareEndpoint translates a host[:port] connection detail, as given by see-other-host or resumption
// location, into a connectable endpoint inheriting port and TLS mode from the current one.
func (c *Connector) PrepareEndpoint(location string) *dns.Endpoint {
	host, port, err := dns.ParseHostPort(location)
	if err != nil {
		return nil
	}
	ep := &dns.Endpoint{Host: host, Port: port}
	if cur := c.CurrentEndpoint(); cur != nil {
		ep.DirectTLS = cur.DirectTLS
		if port == 0 {
			ep.Port = cur.Port
		}
	}
	if ep.Port == 0 {
		ep.Port = dns.DefaultClientPort
	}
	return ep
}

// Start initiates a new connection attempt. No-op unless the connector is disconnected.
// If ep is nil the target is taken from configuration or resolved by SRV lookup.
func (c *Connector) Start(ep *dns.Endpoint) {
	if c.State().State != Disconnected {
		level.Debug(c.logger).Log("msg", "connector already started", "state", c.State())
		return
	}
	c.attempt++
	attempt := c.attempt

	c.setEndpoint(nil)
	c.setState(ConnectionState{State: Connecting})
	c.armConnTimer(attempt)

	go c.connect(attempt, ep)
}

// Stop closes the connection.
// If force is set the transport is torn down right away, otherwise the stream closing tag is sent
// and the transport is closed once the server closes its stream or the close timeout elapses.
func (c *Connector) Stop(force bool) {
	st := c.State().State
	switch {
	case force:
		if st != Disconnected {
			c.terminate(ConnectionState{State: Disconnected, Reason: ReasonNone})
		}

	case st == Connected && c.tlsPending:
		c.terminate(ConnectionState{State: Disconnected, Reason: ReasonNone})

	case st == Connected:
		c.setState(ConnectionState{State: Disconnecting})

		ctx, cancel := c.writeContext(context.Background())
		err := c.sess.Close(ctx)
		cancel()
		if err != nil {
			c.terminate(ConnectionState{State: Disconnected, Reason: ReasonNone})
			return
		}
		attempt := c.attempt
		c.closeTm = time.AfterFunc(c.closeTimeout, func() {
			c.rq.Run(func() {
				if attempt != c.attempt || c.State().State != Disconnecting {
					return
				}
				level.Debug(c.logger).Log("msg", "stream close timed out")
				c.terminate(ConnectionState{State: Disconnected, Reason: ReasonNone})
			})
		})

	case st == Connecting:
		c.setState(ConnectionState{State: Disconnecting})
		c.terminate(ConnectionState{State: Disconnected, Reason: ReasonTimeout})
	}
}

// SendElement writes elem to the transport.
func (c *Connector) SendElement(ctx context.Context, elem stravaganza.Element) error {
	if !c.writable() {
		return ErrNotConnected
	}
	ctx, cancel := c.writeContext(ctx)
	defer cancel()

	if err := c.sess.Send(ctx, elem); err != nil {
		level.Warn(c.logger).Log("msg", "failed to write element", "err", err)
		c.terminate(ConnectionState{State: Disconnected, Reason: ReasonTimeout})
		return err
	}
	reportOutgoingElement(elem.Name(), elem.Attribute(stravaganza.Type))
	return nil
}

// SendWhitespace writes a whitespace keepalive to the transport.
func (c *Connector) SendWhitespace(ctx context.Context) error {
	if !c.writable() {
		return ErrNotConnected
	}
	ctx, cancel := c.writeContext(ctx)
	defer cancel()

	err := c.sess.SendKeepAlive(ctx)
	if err != nil && !errors.Is(err, transport.ErrNotSupported) {
		c.terminate(ConnectionState{State: Disconnected, Reason: ReasonTimeout})
	}
	return err
}

// StartTLS requests STARTTLS negotiation. The upgrade takes place once the server proceeds.
func (c *Connector) StartTLS(ctx context.Context) error {
	return c.SendElement(ctx, stravaganza.NewBuilder("starttls").
		WithAttribute(stravaganza.Namespace, tlsNamespace).
		Build(),
	)
}

// StartCompression requests zlib stream compression. The upgrade takes place once the server confirms.
func (c *Connector) StartCompression(ctx context.Context) error {
	return c.SendElement(ctx, stravaganza.NewBuilder("compress").
		WithAttribute(stravaganza.Namespace, compressNamespace).
		WithChild(
			stravaganza.NewBuilder("method").
				WithText("zlib").
				Build(),
		).
		Build(),
	)
}

// RestartStream resets the XML stream over the current transport and sends a new stream header.
func (c *Connector) RestartStream() {
	if !c.writable() {
		return
	}
	c.restartStream()
}

// StreamID returns the identifier of the current stream.
func (c *Connector) StreamID() string {
	if c.sess == nil {
		return ""
	}
	return c.sess.StreamID()
}

// IsSecured tells whether the current transport runs over TLS.
func (c *Connector) IsSecured() bool {
	return c.tr != nil && c.tr.IsSecured()
}

// IsCompressed tells whether the current transport is compressed.
func (c *Connector) IsCompressed() bool {
	return c.tr != nil && c.tr.IsCompressed()
}

// ChannelBindingBytes returns the channel binding data of the current transport.
func (c *Connector) ChannelBindingBytes(mechanism transport.ChannelBindingMechanism) []byte {
	if c.tr == nil {
		return nil
	}
	return c.tr.ChannelBindingBytes(mechanism)
}

func (c *Connector) connect(attempt uint64, ep *dns.Endpoint) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
	defer cancel()

	t0 := time.Now()
	tr, err := c.dial(ctx, attempt, ep)

	c.rq.Run(func() {
		c.handleDialResult(attempt, tr, err, time.Since(t0))
	})
}

func (c *Connector) dial(ctx context.Context, attempt uint64, ep *dns.Endpoint) (transport.Transport, error) {
	if ep == nil && len(c.cfg.WebSocketURL) > 0 {
		return c.dialWSFn(ctx, c.cfg.WebSocketURL, c.tlsConfig(), c.cfg.ReadTimeout)
	}
	if ep == nil {
		ep = c.selectEndpoint(ctx)
	}
	c.mu.Lock()
	if attempt == c.attempt {
		c.ep = ep
	}
	c.mu.Unlock()

	level.Debug(c.logger).Log("msg", "dialing", "endpoint", ep)

	conn, err := c.dialFn(ctx, "tcp", ep.Address())
	if err != nil {
		return nil, err
	}
	tr := transport.NewSocketTransport(conn, c.cfg.ReadTimeout)
	if ep.DirectTLS {
		if err := tr.StartTLS(ctx, c.tlsConfig()); err != nil {
			_ = tr.Close()
			return nil, err
		}
	}
	return tr, nil
}

func (c *Connector) selectEndpoint(ctx context.Context) *dns.Endpoint {
	if len(c.cfg.Host) > 0 {
		port := c.cfg.Port
		if port == 0 {
			port = dns.DefaultClientPort
		}
		return &dns.Endpoint{Host: c.cfg.Host, Port: port, DirectTLS: c.cfg.DirectTLS}
	}
	if c.resolver != nil {
		ep, err := c.resolver.Resolve(ctx, c.cfg.Domain)
		if err == nil {
			return ep
		}
		level.Info(c.logger).Log("msg", "failed to resolve endpoint, using fallback", "err", err)
	}
	return dns.FallbackEndpoint(c.cfg.Domain)
}

func (c *Connector) handleDialResult(attempt uint64, tr transport.Transport, err error, d time.Duration) {
	if attempt != c.attempt || c.State().State != Connecting {
		if tr != nil {
			_ = tr.Close()
		}
		return
	}
	if err != nil {
		reportConnect(false, d)

		var certErr *certificateError
		if errors.As(err, &certErr) {
			c.handleCertificateError(certErr)
			return
		}
		level.Warn(c.logger).Log("msg", "failed to connect", "err", err)

		c.invalidateEndpoint()
		c.terminate(ConnectionState{State: Disconnected, Reason: ReasonTimeout})
		return
	}
	reportConnect(true, d)

	if c.cfg.WriteRate > 0 {
		tr.SetWriteRateLimiter(rate.NewLimiter(rate.Limit(c.cfg.WriteRate), c.cfg.WriteRate))
	}
	c.tr = tr
	c.sess = session.New(
		fmt.Sprintf("%s-%d", c.cfg.Domain, attempt),
		tr,
		session.Config{
			MaxStanzaSize: c.cfg.MaxStanzaSize,
			Domain:        c.cfg.Domain,
			From:          c.from,
			Lang:          c.lang,
		},
		c.logger,
	)
	c.stopConnTimer()
	c.setState(ConnectionState{State: Connected})

	level.Info(c.logger).Log("msg", "connected", "transport", tr.Type(), "secured", tr.IsSecured())

	if !c.openStream() {
		return
	}
	go c.readLoop(attempt, c.sess)
}

func (c *Connector) readLoop(attempt uint64, sess *session.Session) {
	for {
		elem, sErr := sess.Receive()

		var cont bool
		doneCh := make(chan struct{})
		c.rq.Run(func() {
			defer close(doneCh)
			cont = c.handleSessionResult(attempt, sess, elem, sErr)
		})
		<-doneCh

		if !cont {
			return
		}
	}
}

func (c *Connector) handleSessionResult(attempt uint64, sess *session.Session, elem stravaganza.Element, sErr error) bool {
	if attempt != c.attempt || c.sess != sess {
		return false
	}
	if sErr != nil {
		c.handleSessionError(sErr)
		return false
	}
	if !c.streamStarted {
		c.streamStarted = true
		c.h.HandleConnectorEvent(Event{Type: EventStreamStart, Element: elem})
		return c.isCurrent(attempt, sess)
	}
	reportIncomingElement(elem.Name(), elem.Attribute(stravaganza.Type))

	ns := elem.Attribute(stravaganza.Namespace)
	switch {
	case elem.Name() == streamErrorElementName:
		level.Info(c.logger).Log("msg", "received stream error", "err", elem)

		c.terminate(ConnectionState{State: Disconnected, Reason: ReasonStreamError, StreamError: elem})
		return false

	case elem.Name() == "proceed" && ns == tlsNamespace:
		c.upgradeTLS(attempt, sess)
		return false

	case elem.Name() == "compressed" && ns == compressNamespace:
		return c.upgradeCompression()

	default:
		c.h.HandleConnectorEvent(Event{Type: EventStanza, Element: elem})
		return c.isCurrent(attempt, sess)
	}
}

func (c *Connector) handleSessionError(err error) {
	switch {
	case errors.Is(err, xmppparser.ErrStreamClosedByPeer):
		level.Debug(c.logger).Log("msg", "stream closed by peer")

		c.h.HandleConnectorEvent(Event{Type: EventStreamClose})
		if c.sess == nil {
			return // terminated by handler
		}
		if c.State().State == Connected {
			c.setState(ConnectionState{State: Disconnecting})

			ctx, cancel := c.writeContext(context.Background())
			_ = c.sess.Close(ctx)
			cancel()
		}
		c.terminate(ConnectionState{State: Disconnected, Reason: ReasonNone})

	case isXMLError(err):
		level.Warn(c.logger).Log("msg", "malformed XML stream", "err", err)
		c.terminate(ConnectionState{State: Disconnected, Reason: ReasonXMLError})

	case c.State().State == Disconnecting:
		c.terminate(ConnectionState{State: Disconnected, Reason: ReasonNone})

	default:
		level.Warn(c.logger).Log("msg", "failed to read from transport", "err", err)
		c.terminate(ConnectionState{State: Disconnected, Reason: ReasonTimeout})
	}
}

// upgradeTLS hands the transport over to a handshake goroutine.
// The read loop of sess ends here and a new one is started once the restarted stream is open.
func (c *Connector) upgradeTLS(attempt uint64, sess *session.Session) {
	c.tlsPending = true

	tr := c.tr
	tlsCfg := c.tlsConfig()
	go func() {
		ctx, cancel := c.handshakeContext()
		defer cancel()

		err := tr.StartTLS(ctx, tlsCfg)
		c.rq.Run(func() {
			c.handleTLSResult(attempt, sess, err)
		})
	}()
}

func (c *Connector) handleTLSResult(attempt uint64, sess *session.Session, err error) {
	if !c.isCurrent(attempt, sess) {
		return // terminated while handshaking
	}
	c.tlsPending = false

	if err != nil {
		var certErr *certificateError
		if errors.As(err, &certErr) {
			c.handleCertificateError(certErr)
			return
		}
		level.Warn(c.logger).Log("msg", "TLS handshake failed", "err", err)
		c.terminate(ConnectionState{State: Disconnected, Reason: ReasonTimeout})
		return
	}
	level.Debug(c.logger).Log("msg", "transport secured")

	if !c.restartStream() {
		return
	}
	go c.readLoop(attempt, sess)
}

func (c *Connector) upgradeCompression() bool {
	if err := c.tr.EnableCompression(compress.ParseLevel(c.cfg.CompressionLevel)); err != nil {
		level.Warn(c.logger).Log("msg", "failed to enable compression", "err", err)
		c.terminate(ConnectionState{State: Disconnected, Reason: ReasonTimeout})
		return false
	}
	level.Debug(c.logger).Log("msg", "transport compressed")

	return c.restartStream()
}

func (c *Connector) restartStream() bool {
	c.sess.Reset(c.tr)
	c.streamStarted = false
	return c.openStream()
}

func (c *Connector) openStream() bool {
	ctx, cancel := c.writeContext(context.Background())
	defer cancel()

	sess := c.sess
	if err := sess.OpenStream(ctx); err != nil {
		level.Warn(c.logger).Log("msg", "failed to open stream", "err", err)
		c.terminate(ConnectionState{State: Disconnected, Reason: ReasonTimeout})
		return false
	}
	c.h.HandleConnectorEvent(Event{Type: EventStreamOpen})
	return c.sess == sess
}

func (c *Connector) handleCertificateError(certErr *certificateError) {
	level.Warn(c.logger).Log("msg", "server certificate validation failed", "err", certErr.err)

	c.postEvent(event.ConnectorCertificateError, &event.CertificateErrorEventInfo{
		Domain:       c.cfg.Domain,
		Certificates: certErr.certs,
		Err:          certErr.err,
	})
	c.terminate(ConnectionState{State: Disconnected, Reason: ReasonTLSCertError})
}

func (c *Connector) terminate(cs ConnectionState) {
	if c.State().State == Disconnected {
		return
	}
	c.stopConnTimer()
	if c.closeTm != nil {
		c.closeTm.Stop()
		c.closeTm = nil
	}
	if c.tr != nil {
		_ = c.tr.Close()
		c.tr = nil
	}
	c.sess = nil
	c.streamStarted = false
	c.tlsPending = false

	reportDisconnect(cs.Reason)

	c.h.HandleConnectorEvent(Event{Type: EventStreamTerminate, State: cs})
	c.setState(cs)

	level.Info(c.logger).Log("msg", "disconnected", "reason", cs.Reason)
}

func (c *Connector) armConnTimer(attempt uint64) {
	if c.cfg.Timeout <= 0 {
		return
	}
	c.connTm = time.AfterFunc(c.cfg.Timeout, func() {
		c.rq.Run(func() {
			if attempt != c.attempt || c.State().State != Connecting {
				return
			}
			level.Info(c.logger).Log("msg", "connection timed out", "endpoint", c.CurrentEndpoint())

			c.invalidateEndpoint()
			c.terminate(ConnectionState{State: Disconnected, Reason: ReasonTimeout})
		})
	})
}

func (c *Connector) stopConnTimer() {
	if c.connTm != nil {
		c.connTm.Stop()
		c.connTm = nil
	}
}

func (c *Connector) invalidateEndpoint() {
	ep := c.CurrentEndpoint()
	if ep == nil || c.resolver == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), markInvalidTimeout)
	defer cancel()

	if err := c.resolver.MarkInvalid(ctx, c.cfg.Domain, ep, invalidEndpointDuration); err != nil {
		level.Warn(c.logger).Log("msg", "failed to invalidate endpoint", "endpoint", ep, "err", err)
		return
	}
	c.postEvent(event.ConnectorEndpointInvalidated, &event.EndpointEventInfo{
		Domain: c.cfg.Domain,
		Host:   ep.Host,
		Port:   ep.Port,
	})
}

func (c *Connector) setState(cs ConnectionState) {
	c.mu.Lock()
	prev := c.st
	c.st = cs
	c.mu.Unlock()

	level.Debug(c.logger).Log("msg", "connection state changed", "from", prev, "to", cs)

	c.h.HandleConnectorEvent(Event{Type: EventStateChanged, State: cs})

	c.postEvent(event.ConnectorStateChanged, &event.ConnectorEventInfo{
		Domain:        c.cfg.Domain,
		State:         cs.State.String(),
		PreviousState: prev.State.String(),
		Reason:        cs.Reason.String(),
		StreamError:   cs.StreamError,
	})
}

func (c *Connector) setEndpoint(ep *dns.Endpoint) {
	c.mu.Lock()
	c.ep = ep
	c.mu.Unlock()
}

func (c *Connector) isCurrent(attempt uint64, sess *session.Session) bool {
	return attempt == c.attempt && c.sess == sess
}

func (c *Connector) writable() bool {
	return c.State().State == Connected && c.sess != nil && !c.tlsPending
}

func (c *Connector) handshakeContext() (context.Context, context.CancelFunc) {
	if c.cfg.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.cfg.Timeout)
}

func (c *Connector) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName: c.cfg.Domain,
		MinVersion: tls.VersionTLS12,
		// chain is verified by VerifyConnection
		InsecureSkipVerify: true,
		VerifyConnection: func(cs tls.ConnectionState) error {
			if err := c.validator.Validate(c.cfg.Domain, cs.PeerCertificates); err != nil {
				return &certificateError{certs: cs.PeerCertificates, err: err}
			}
			return nil
		},
	}
}

func (c *Connector) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || c.cfg.WriteTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.WriteTimeout)
}

func (c *Connector) postEvent(eventName string, info interface{}) {
	if c.sn == nil {
		return
	}
	err := c.sn.Post(context.Background(), sonar.NewEventBuilder(eventName).
		WithInfo(info).
		WithSender(c).
		Build(),
	)
	if err != nil {
		level.Warn(c.logger).Log("msg", "failed to post event", "event", eventName, "err", err)
	}
}

func isXMLError(err error) bool {
	var syntaxErr *xml.SyntaxError
	switch {
	case errors.As(err, &syntaxErr),
		errors.Is(err, xmppparser.ErrXMLDeclaration),
		errors.Is(err, xmppparser.ErrTooLargeStanza),
		errors.Is(err, xmppparser.ErrUnexpectedEnd),
		errors.Is(err, session.ErrInvalidStreamHeader):
		return true
	}
	return false
}
