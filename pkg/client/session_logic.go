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
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/runqueue/v2"
	"github.com/jackal-xmpp/sonar"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/ortuman/jackal-client/pkg/auth"
	"github.com/ortuman/jackal-client/pkg/connector"
	"github.com/ortuman/jackal-client/pkg/event"
	"github.com/ortuman/jackal-client/pkg/module"
	"github.com/ortuman/jackal-client/pkg/module/xep0198"
	"github.com/ortuman/jackal-client/pkg/module/xep0199"
	"github.com/ortuman/jackal-client/pkg/response"
	"github.com/ortuman/jackal-client/pkg/stanza"
	"github.com/ortuman/jackal-client/pkg/transport"
	"github.com/ortuman/jackal-client/pkg/util/dns"
	xmpputil "github.com/ortuman/jackal-client/pkg/util/xmpp"
)

const (
	seeOtherHostCondition = "see-other-host"
	maxRedirects          = 5
)

type phase int

const (
	phaseNegotiating phase = iota
	phaseTLS
	phaseCompression
	phaseAuthenticating
	phaseAuthenticated
	phaseResuming
	phaseBinding
	phaseSession
	phaseEstablished
)

// sessionLogic drives a client session over a connector: stream feature negotiation,
// authentication, resumption or resource binding, and stanza routing.
//
// Except for State, JID and SendElement, every method must be invoked from the run queue.
type sessionLogic struct {
	cfg        Config
	accountJID *jid.JID
	rq         *runqueue.RunQueue
	conn       streamConnector
	rm         *response.Manager
	mods       *module.Modules
	sm         streamManager
	disco      discoverer
	pinger     pinger
	negotiator *auth.Negotiator
	sn         *sonar.Sonar
	keepAlive  *keepAlive
	logger     kitlog.Logger

	seq               uint64
	phase             phase
	features          *streamFeatures
	authenticated     bool
	compressionFailed bool
	authErr           error
	userStop          bool
	redirects         int

	mu   sync.RWMutex
	st   SessionState
	jd   *jid.JID
	stCh chan struct{}
}

func newSessionLogic(
	cfg Config,
	accountJID *jid.JID,
	rq *runqueue.RunQueue,
	conn streamConnector,
	rm *response.Manager,
	mods *module.Modules,
	sm streamManager,
	disco discoverer,
	pinger pinger,
	negotiator *auth.Negotiator,
	sn *sonar.Sonar,
	logger kitlog.Logger,
) *sessionLogic {
	sl := &sessionLogic{
		cfg:        cfg,
		accountJID: accountJID,
		rq:         rq,
		conn:       conn,
		rm:         rm,
		mods:       mods,
		sm:         sm,
		disco:      disco,
		pinger:     pinger,
		negotiator: negotiator,
		sn:         sn,
		logger:     logger,
		jd:         accountJID,
		stCh:       make(chan struct{}),
	}
	sl.keepAlive = newKeepAlive(cfg.Session.KeepAliveInterval, func() {
		sl.rq.Run(sl.sendKeepAlive)
	})
	return sl
}

// State returns current session state. Safe for concurrent use.
func (sl *sessionLogic) State() SessionState {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return sl.st
}

// JID returns the bound address, or the account address until a resource has been bound.
// Safe for concurrent use.
func (sl *sessionLogic) JID() *jid.JID {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return sl.jd
}

// stateNotify returns current session state along with a channel closed on its next change.
func (sl *sessionLogic) stateNotify() (SessionState, <-chan struct{}) {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return sl.st, sl.stCh
}

// Start initiates a new session. No-op unless the session is disconnected.
func (sl *sessionLogic) Start() {
	if sl.State().State != Disconnected {
		level.Debug(sl.logger).Log("msg", "session already started", "state", sl.State())
		return
	}
	sl.userStop = false
	sl.authErr = nil
	sl.redirects = 0
	sl.resetNegotiation()

	var ep *dns.Endpoint
	if sl.sm.ResumptionEnabled() {
		if loc := sl.sm.ResumptionLocation(); len(loc) > 0 {
			ep = sl.conn.PrepareEndpoint(loc)
		}
	}
	sl.conn.Start(ep)
}

// Stop closes the session. If force is set the transport is torn down without closing the stream.
func (sl *sessionLogic) Stop(force bool) {
	sl.userStop = true
	sl.keepAlive.stop()

	if sl.conn.State().State == connector.Disconnected {
		// redirection in progress
		if sl.State().State != Disconnected {
			sl.sm.Reset(xep0198.SessionScope)
			sl.setState(SessionState{State: Disconnected, Reason: ReasonNone})
		}
		return
	}
	sl.conn.Stop(force)
}

// SetCredentials replaces the credentials used by subsequent authentications.
func (sl *sessionLogic) SetCredentials(negotiator *auth.Negotiator) {
	sl.negotiator = negotiator
	sl.sm.Reset(xep0198.SessionScope)
}

// SendElement queues elem to be written through outgoing filters and the connector.
// Elements are written in submission order. Safe for concurrent use.
func (sl *sessionLogic) SendElement(ctx context.Context, elem stravaganza.Element) error {
	switch sl.State().State {
	case Connected, Connecting:
	default:
		return ErrNotAuthorized
	}
	sl.rq.Run(func() {
		sl.sendElement(ctx, elem)
	})
	return nil
}

// HandleConnectorEvent satisfies connector.EventHandler interface.
func (sl *sessionLogic) HandleConnectorEvent(ev connector.Event) {
	ctx := context.Background()

	switch ev.Type {
	case connector.EventStateChanged:
		sl.handleConnectionState(ctx, ev.State)

	case connector.EventStreamOpen:
		sl.features = nil

	case connector.EventStreamStart:
		level.Debug(sl.logger).Log("msg", "stream started", "id", ev.Element.Attribute(stravaganza.ID))

	case connector.EventStanza:
		sl.handleElement(ctx, ev.Element)

	case connector.EventStreamClose:
		level.Debug(sl.logger).Log("msg", "stream closed by server")
	}
}

func (sl *sessionLogic) handleConnectionState(ctx context.Context, cs connector.ConnectionState) {
	switch cs.State {
	case connector.Connecting:
		sl.setState(SessionState{State: Connecting})

	case connector.Disconnecting:
		sl.setState(SessionState{State: Disconnecting})

	case connector.Disconnected:
		sl.handleDisconnected(ctx, cs)
	}
}

func (sl *sessionLogic) handleDisconnected(ctx context.Context, cs connector.ConnectionState) {
	sl.keepAlive.stop()
	sl.rm.Stop()

	authErr := sl.authErr
	sl.resetNegotiation()

	if ep := sl.redirectEndpoint(cs); ep != nil {
		sl.redirects++
		host := net.JoinHostPort(ep.Host, strconv.Itoa(ep.Port))

		level.Info(sl.logger).Log("msg", "redirected to another host", "host", host)

		sl.postEvent(ctx, event.ClientSeeOtherHost, &event.ClientEventInfo{
			JID:     sl.JID().String(),
			Host:    host,
			Element: cs.StreamError,
		})
		if sl.State().State != Connecting {
			// an established stream cannot be resumed on another host
			sl.sm.Reset(xep0198.SessionScope)
			sl.setState(SessionState{State: Connecting})
		}
		sl.rq.Run(func() {
			if sl.userStop {
				return
			}
			sl.conn.Start(ep)
		})
		return
	}
	scope := xep0198.SessionScope
	if !sl.userStop && sl.sm.ResumptionEnabled() {
		scope = xep0198.StreamScope
	}
	sl.sm.Reset(scope)

	st := SessionState{
		State:       Disconnected,
		Reason:      reasonFromConnector(cs.Reason),
		StreamError: cs.StreamError,
	}
	switch {
	case authErr != nil:
		st.Reason = ReasonAuthenticationFailure
		st.AuthError = authErr
	case sl.userStop:
		st.Reason = ReasonNone
	}
	sl.setState(st)
}

func (sl *sessionLogic) redirectEndpoint(cs connector.ConnectionState) *dns.Endpoint {
	if cs.Reason != connector.ReasonStreamError || cs.StreamError == nil {
		return nil
	}
	if sl.userStop || sl.redirects >= maxRedirects {
		return nil
	}
	cond, host := xmpputil.StreamErrorCondition(cs.StreamError)
	host = strings.TrimSpace(host)
	if cond != seeOtherHostCondition || len(host) == 0 {
		return nil
	}
	return sl.conn.PrepareEndpoint(host)
}

func (sl *sessionLogic) handleElement(ctx context.Context, elem stravaganza.Element) {
	if isStreamFeatures(elem) {
		sl.handleFeatures(ctx, elem)
		return
	}
	ns := elem.Attribute(stravaganza.Namespace)
	switch {
	case sl.phase == phaseTLS && ns == tlsNamespace && elem.Name() == "failure":
		level.Warn(sl.logger).Log("msg", "STARTTLS negotiation failed")
		sl.conn.Stop(false)

	case sl.phase == phaseCompression && ns == compressNamespace && elem.Name() == "failure":
		level.Info(sl.logger).Log("msg", "stream compression refused")
		sl.compressionFailed = true
		sl.negotiate(ctx)

	case sl.phase == phaseAuthenticating && ns == auth.Namespace:
		sl.processSASL(ctx, elem)

	default:
		sl.dispatch(ctx, elem)
	}
}

func (sl *sessionLogic) handleFeatures(ctx context.Context, elem stravaganza.Element) {
	sl.features = newStreamFeatures(elem)
	if sl.phase >= phaseResuming {
		level.Debug(sl.logger).Log("msg", "ignoring stream features", "phase", sl.phase)
		return
	}
	sl.negotiate(ctx)
}

func (sl *sessionLogic) negotiate(ctx context.Context) {
	f := sl.features
	connCfg := sl.cfg.Connection

	switch {
	case !sl.authenticated && f.startTLS() && !connCfg.DisableTLS && !sl.conn.IsSecured():
		sl.phase = phaseTLS
		if err := sl.conn.StartTLS(ctx); err != nil {
			level.Warn(sl.logger).Log("msg", "failed to request STARTTLS", "err", err)
		}

	case f.compression(zlibCompressMethod) && !connCfg.DisableCompression && !sl.compressionFailed && !sl.conn.IsCompressed():
		sl.phase = phaseCompression
		if err := sl.conn.StartCompression(ctx); err != nil {
			level.Warn(sl.logger).Log("msg", "failed to request compression", "err", err)
		}

	case !sl.authenticated:
		sl.startAuthentication(ctx)

	default:
		sl.resumeOrBind(ctx)
	}
}

func (sl *sessionLogic) startAuthentication(ctx context.Context) {
	sl.phase = phaseAuthenticating

	elem, err := sl.negotiator.Start(sl.features.mechanisms())
	if err != nil {
		sl.failAuthentication(ctx, err)
		return
	}
	level.Debug(sl.logger).Log("msg", "authenticating", "mechanism", sl.negotiator.Mechanism())

	_ = sl.conn.SendElement(ctx, elem)
}

func (sl *sessionLogic) processSASL(ctx context.Context, elem stravaganza.Element) {
	resp, err := sl.negotiator.ProcessElement(elem)
	if resp != nil {
		_ = sl.conn.SendElement(ctx, resp)
	}
	if err != nil {
		sl.failAuthentication(ctx, err)
		return
	}
	if sl.negotiator.Completed() {
		sl.finishAuthentication(ctx)
	}
}

func (sl *sessionLogic) finishAuthentication(ctx context.Context) {
	sl.authenticated = true
	sl.phase = phaseAuthenticated

	mechanism := sl.negotiator.Mechanism()
	reportAuthentication(mechanism, true)

	level.Info(sl.logger).Log("msg", "authenticated", "mechanism", mechanism)

	sl.postEvent(ctx, event.ClientAuthenticated, &event.ClientEventInfo{
		JID: sl.JID().String(),
	})
	sl.conn.RestartStream()
}

func (sl *sessionLogic) failAuthentication(ctx context.Context, err error) {
	sl.authErr = err

	mechanism := sl.negotiator.Mechanism()
	reportAuthentication(mechanism, false)

	level.Warn(sl.logger).Log("msg", "authentication failed", "mechanism", mechanism, "err", err)

	inf := &event.ClientEventInfo{
		JID:    sl.JID().String(),
		Reason: ReasonAuthenticationFailure.String(),
	}
	var saslErr *auth.SASLError
	if errors.As(err, &saslErr) {
		inf.Reason = saslErr.Reason.String()
	}
	sl.postEvent(ctx, event.ClientAuthenticationFailed, inf)
	sl.conn.Stop(false)
}

func (sl *sessionLogic) resumeOrBind(ctx context.Context) {
	if sl.features.streamManagement() && sl.sm.ResumptionEnabled() {
		sl.phase = phaseResuming

		seq := sl.seq
		err := sl.sm.Resume(ctx, func(err error) {
			sl.rq.Run(func() {
				sl.handleResumeResult(ctx, seq, err)
			})
		})
		if err == nil {
			return
		}
		level.Debug(sl.logger).Log("msg", "stream resumption not available", "err", err)
	}
	sl.bindResource(ctx)
}

func (sl *sessionLogic) handleResumeResult(ctx context.Context, seq uint64, err error) {
	if seq != sl.seq || sl.phase != phaseResuming {
		return
	}
	if err != nil {
		level.Info(sl.logger).Log("msg", "stream resumption failed", "err", err)
		sl.bindResource(ctx)
		return
	}
	sl.establish(ctx, true)
}

func (sl *sessionLogic) bindResource(ctx context.Context) {
	sl.phase = phaseBinding

	b := stravaganza.NewBuilder("bind").
		WithAttribute(stravaganza.Namespace, bindNamespace)
	if res := sl.cfg.Account.Resource; len(res) > 0 {
		b.WithChild(
			stravaganza.NewBuilder("resource").
				WithText(res).
				Build(),
		)
	}
	sl.sendRequest(ctx, xmpputil.MakeIQ(stanza.SetType, "", b.Build()), sl.handleBindResult)
}

func (sl *sessionLogic) handleBindResult(ctx context.Context, elem stravaganza.Element, err error) {
	if err != nil {
		level.Warn(sl.logger).Log("msg", "resource binding failed", "err", err)
		sl.conn.Stop(false)
		return
	}
	var jidStr string
	if b := elem.ChildNamespace("bind", bindNamespace); b != nil {
		if j := b.Child("jid"); j != nil {
			jidStr = j.Text()
		}
	}
	jd, err := jid.NewWithString(jidStr, false)
	if err != nil {
		level.Warn(sl.logger).Log("msg", "invalid bound JID", "jid", jidStr, "err", err)
		sl.conn.Stop(false)
		return
	}
	sl.setJID(jd)
	sl.rm.SetAccountJID(jd)

	level.Info(sl.logger).Log("msg", "resource bound", "jid", jd.String())

	sl.postEvent(ctx, event.ClientResourceBound, &event.ClientEventInfo{
		JID: jd.String(),
	})
	if !sl.features.sessionRequired() {
		sl.establish(ctx, false)
		return
	}
	sl.phase = phaseSession
	sl.sendRequest(ctx, xmpputil.MakeIQ(stanza.SetType, "",
		stravaganza.NewBuilder("session").
			WithAttribute(stravaganza.Namespace, sessionNamespace).
			Build(),
	), sl.handleSessionResult)
}

func (sl *sessionLogic) handleSessionResult(ctx context.Context, _ stravaganza.Element, err error) {
	if err != nil {
		level.Warn(sl.logger).Log("msg", "session establishment failed", "err", err)
		sl.conn.Stop(false)
		return
	}
	sl.establish(ctx, false)
}

func (sl *sessionLogic) establish(ctx context.Context, resumed bool) {
	sl.phase = phaseEstablished
	sl.redirects = 0

	sl.setState(SessionState{State: Connected, Resumed: resumed})
	sl.keepAlive.start()

	if resumed {
		return
	}
	sl.disco.Reset()
	go sl.disco.Discover(context.Background())

	smCfg := sl.cfg.StreamManagement
	if !smCfg.Enabled || !sl.features.streamManagement() {
		return
	}
	err := sl.sm.Enable(ctx, smCfg.Resumption, smCfg.MaxTimeout, func(err error) {
		if err != nil {
			level.Warn(sl.logger).Log("msg", "failed to enable stream management", "err", err)
		}
	})
	if err != nil {
		level.Warn(sl.logger).Log("msg", "failed to request stream management", "err", err)
	}
}

func (sl *sessionLogic) sendRequest(
	ctx context.Context,
	iq stravaganza.Element,
	h func(ctx context.Context, elem stravaganza.Element, err error),
) {
	seq := sl.seq
	iq, _ = sl.rm.RegisterIQ(iq, sl.cfg.Session.RequestTimeout, func(elem stravaganza.Element, err error) {
		sl.rq.Run(func() {
			if seq != sl.seq {
				return
			}
			h(ctx, elem, err)
		})
	})
	_ = sl.conn.SendElement(ctx, iq)
}

func (sl *sessionLogic) dispatch(ctx context.Context, elem stravaganza.Element) {
	t0 := time.Now()

	for _, f := range sl.mods.Filters() {
		consumed, err := f.ProcessIncoming(ctx, elem)
		if err != nil {
			level.Warn(sl.logger).Log("msg", "filter failed to process element", "name", elem.Name(), "err", err)
		}
		if consumed {
			return
		}
	}
	if deliver, ok := sl.rm.Resolve(elem); ok {
		deliver()
		return
	}
	if !stanza.IsStanza(elem) {
		level.Debug(sl.logger).Log("msg", "unhandled element", "name", elem.Name(), "xmlns", elem.Attribute(stravaganza.Namespace))
		return
	}
	stz := stanza.New(elem)
	if stz.IsIQResponse() {
		level.Debug(sl.logger).Log("msg", "dropping unexpected iq response", "id", stz.ID(), "type", stz.Type())
		return
	}
	sl.postEvent(ctx, event.ClientStanzaReceived, &event.ClientEventInfo{
		JID:     sl.JID().String(),
		Element: elem,
	})
	mods := sl.mods.Matching(elem)
	if len(mods) == 0 {
		sl.replyError(ctx, stz, stanza.E(stanza.FeatureNotImplemented))
	}
	for _, mod := range mods {
		if err := sl.processModule(ctx, mod, stz); err != nil {
			level.Debug(sl.logger).Log("msg", "module failed to process stanza", "module", mod.Name(), "err", err)
			sl.replyError(ctx, stz, toStanzaError(err))
			break
		}
	}
	reportIncomingStanza(elem.Name(), stz.Type(), time.Since(t0))
}

func (sl *sessionLogic) processModule(ctx context.Context, mod module.Module, stz *stanza.Stanza) (err error) {
	defer func() {
		if r := recover(); r != nil {
			level.Error(sl.logger).Log("msg", "module panicked", "module", mod.Name(), "panic", r)
			err = fmt.Errorf("client: module %s panicked: %v", mod.Name(), r)
		}
	}()
	return mod.Process(ctx, stz)
}

func (sl *sessionLogic) replyError(ctx context.Context, stz *stanza.Stanza, stzErr *stanza.Error) {
	if stz.IsError() {
		return
	}
	sl.sendElement(ctx, xmpputil.MakeErrorReply(stz.Element(), stzErr))
}

func (sl *sessionLogic) sendElement(ctx context.Context, elem stravaganza.Element) {
	for _, f := range sl.mods.Filters() {
		f.ProcessOutgoing(ctx, elem)
	}
	if err := sl.conn.SendElement(context.Background(), elem); err != nil {
		level.Debug(sl.logger).Log("msg", "failed to send element", "name", elem.Name(), "err", err)
		return
	}
	if !stanza.IsStanza(elem) {
		return
	}
	reportOutgoingStanza(elem.Name(), elem.Attribute(stravaganza.Type))

	sl.postEvent(ctx, event.ClientStanzaSent, &event.ClientEventInfo{
		JID:     sl.JID().String(),
		Element: elem,
	})
}

func (sl *sessionLogic) sendKeepAlive() {
	if sl.State().State != Connected {
		return
	}
	if sl.disco.HasServerFeature(xep0199.Namespace) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), sl.cfg.Session.RequestTimeout)
			defer cancel()

			_, err := sl.pinger.Ping(ctx, "")
			if err != nil {
				level.Warn(sl.logger).Log("msg", "keepalive ping failed", "err", err)
			}
			reportKeepAlive("ping", err == nil)
		}()
		return
	}
	err := sl.conn.SendWhitespace(context.Background())
	switch {
	case errors.Is(err, transport.ErrNotSupported):
		return
	case err != nil:
		level.Warn(sl.logger).Log("msg", "keepalive failed", "err", err)
	}
	reportKeepAlive("whitespace", err == nil)
}

func (sl *sessionLogic) resetNegotiation() {
	sl.seq++
	sl.phase = phaseNegotiating
	sl.features = nil
	sl.authenticated = false
	sl.compressionFailed = false
	sl.authErr = nil
	sl.negotiator.Reset()
}

func (sl *sessionLogic) setJID(jd *jid.JID) {
	sl.mu.Lock()
	sl.jd = jd
	sl.mu.Unlock()
}

func (sl *sessionLogic) setState(st SessionState) {
	sl.mu.Lock()
	if sl.st.equals(st) {
		sl.mu.Unlock()
		return
	}
	sl.st = st
	close(sl.stCh)
	sl.stCh = make(chan struct{})
	jd := sl.jd
	sl.mu.Unlock()

	level.Info(sl.logger).Log("msg", "session state changed", "state", st)
	reportSessionState(st)

	inf := &event.ClientEventInfo{
		JID:     jd.String(),
		State:   st.State.String(),
		Resumed: st.Resumed,
	}
	if st.State == Disconnected {
		inf.Reason = st.Reason.String()
		inf.Element = st.StreamError
	}
	sl.postEvent(context.Background(), event.ClientSessionStateChanged, inf)
}

func (sl *sessionLogic) postEvent(ctx context.Context, eventName string, inf *event.ClientEventInfo) {
	if sl.sn == nil {
		return
	}
	err := sl.sn.Post(ctx, sonar.NewEventBuilder(eventName).
		WithInfo(inf).
		WithSender(sl).
		Build(),
	)
	if err != nil {
		level.Warn(sl.logger).Log("msg", "failed to post event", "event", eventName, "err", err)
	}
}

func toStanzaError(err error) *stanza.Error {
	var stzErr *stanza.Error
	if errors.As(err, &stzErr) {
		return stzErr
	}
	return stanza.E(stanza.UndefinedCondition)
}
