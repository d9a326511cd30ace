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

package xep0198

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/sonar"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/ortuman/jackal-client/pkg/event"
	"github.com/ortuman/jackal-client/pkg/response"
	"github.com/ortuman/jackal-client/pkg/stanza"
)

const streamNamespace = "urn:xmpp:sm:3"

const (
	// ModuleName represents stream management module name.
	ModuleName = "stream_management"

	// XEPNumber represents stream management XEP number.
	XEPNumber = "0198"
)

const (
	autoAckThreshold  = 5
	requestThreshold  = 3
	requestInterval   = time.Second
	forcedAckDelay    = time.Millisecond * 100
	stanzasNamespace  = "urn:ietf:params:xml:ns:xmpp-stanzas"
	defaultReqTimeout = time.Second * 30
)

// ErrResumptionNotAvailable is returned by Resume when no resumable session exists.
var ErrResumptionNotAvailable = errors.New("xep0198: resumption not available")

// ResetScope defines how much stream management state is cleared by Reset.
type ResetScope int

const (
	// StreamScope disables acking keeping counters, queue and resumption record.
	StreamScope ResetScope = iota

	// SessionScope clears every stream management state.
	SessionScope
)

// String satisfies fmt.Stringer interface.
func (s ResetScope) String() string {
	switch s {
	case StreamScope:
		return "stream"
	case SessionScope:
		return "session"
	}
	return ""
}

// ParseResetScope parses a reset scope string representation.
func ParseResetScope(s string) (ResetScope, error) {
	switch s {
	case "stream":
		return StreamScope, nil
	case "session", "":
		return SessionScope, nil
	}
	return SessionScope, fmt.Errorf("xep0198: unrecognized reset scope: %s", s)
}

// Config contains stream management configuration.
type Config struct {
	// Enabled tells whether stream management should be enabled when offered by the server.
	Enabled bool `fig:"enabled"`

	// Resumption tells whether resumption should be requested on enable.
	Resumption bool `fig:"resumption"`

	// MaxTimeout is the preferred maximum resumption time requested to the server.
	MaxTimeout time.Duration `fig:"max_timeout" default:"300s"`

	// ResumeFailureReset is the scope reset after a failed resumption: "session" or "stream".
	ResumeFailureReset string `fig:"resume_failure_reset" default:"session"`

	// RequestTimeout bounds the wait for enabled and resumed responses.
	RequestTimeout time.Duration `fig:"request_timeout" default:"30s"`
}

// Counters is a snapshot of the acknowledgement counters.
type Counters struct {
	InH       uint32
	LastSentH uint32
	OutH      uint32
	Queued    int
}

type state int

const (
	disabled state = iota
	enabling
	enabled
)

// Engine implements stream management (XEP-0198) on the client side.
// It is registered as an element filter so that every incoming and outgoing element goes through it.
type Engine struct {
	w              streamWriter
	rm             responseManager
	sn             *sonar.Sonar
	failureScope   ResetScope
	requestTimeout time.Duration
	logger         kitlog.Logger

	mu                sync.Mutex
	st                state
	inH               uint32
	lastSentH         uint32
	q                 *queue
	resumptionEnabled bool
	resumptionID      string
	location          string
	maxTimeout        time.Duration
	lastReqAt         time.Time
	ackTm             *time.Timer

	nowFn func() time.Time
}

// NewEngine returns a new initialized Engine instance.
func NewEngine(cfg Config, w streamWriter, rm responseManager, sn *sonar.Sonar, logger kitlog.Logger) (*Engine, error) {
	scope, err := ParseResetScope(cfg.ResumeFailureReset)
	if err != nil {
		return nil, err
	}
	reqTimeout := cfg.RequestTimeout
	if reqTimeout == 0 {
		reqTimeout = defaultReqTimeout
	}
	return &Engine{
		w:              w,
		rm:             rm,
		sn:             sn,
		failureScope:   scope,
		requestTimeout: reqTimeout,
		logger:         kitlog.With(logger, "module", ModuleName, "xep", XEPNumber),
		q:              newQueue(),
		nowFn:          time.Now,
	}, nil
}

// Enable requests stream management enabling to the server.
// Pending stanzas from a previous stream are resent once the request has been written.
// fn is invoked once the server answers, unless the engine was not disabled.
func (e *Engine) Enable(ctx context.Context, resumption bool, maxResumption time.Duration, fn func(error)) error {
	e.mu.Lock()
	if e.st != disabled {
		e.mu.Unlock()
		return nil
	}
	pending := e.q.drain()
	e.q.reset()
	e.inH = 0
	e.lastSentH = 0
	e.resumptionEnabled = false
	e.resumptionID = ""
	e.location = ""
	e.maxTimeout = 0
	e.st = enabling
	e.mu.Unlock()

	b := stravaganza.NewBuilder("enable").
		WithAttribute(stravaganza.Namespace, streamNamespace)
	if resumption {
		b.WithAttribute("resume", "true")
		if maxResumption > 0 {
			b.WithAttribute("max", strconv.Itoa(int(maxResumption.Seconds())))
		}
	}
	e.rm.RegisterCondition(response.Condition{
		Names:     []string{"enabled", "failed"},
		Namespace: streamNamespace,
	}, e.requestTimeout, func(elem stravaganza.Element, err error) {
		err = e.handleEnabled(elem, err, maxResumption)
		if fn != nil {
			fn(err)
		}
	})
	if err := e.w.SendElement(ctx, b.Build()); err != nil {
		return err
	}
	return e.resend(ctx, pending)
}

// Resume requests resumption of the previous session.
// fn is invoked once the server answers.
func (e *Engine) Resume(ctx context.Context, fn func(error)) error {
	e.mu.Lock()
	if !e.resumptionEnabled || len(e.resumptionID) == 0 {
		e.mu.Unlock()
		return ErrResumptionNotAvailable
	}
	h := e.inH
	prevID := e.resumptionID
	e.st = enabling
	e.mu.Unlock()

	e.rm.RegisterCondition(response.Condition{
		Names:     []string{"resumed", "failed"},
		Namespace: streamNamespace,
	}, e.requestTimeout, func(elem stravaganza.Element, err error) {
		err = e.handleResumed(ctx, elem, err)
		if fn != nil {
			fn(err)
		}
	})
	return e.w.SendElement(ctx, stravaganza.NewBuilder("resume").
		WithAttribute(stravaganza.Namespace, streamNamespace).
		WithAttribute("h", strconv.FormatUint(uint64(h), 10)).
		WithAttribute("previd", prevID).
		Build(),
	)
}

// ProcessIncoming satisfies module.Filter interface.
func (e *Engine) ProcessIncoming(ctx context.Context, elem stravaganza.Element) (bool, error) {
	e.mu.Lock()
	if e.st == disabled {
		e.mu.Unlock()
		return false, nil
	}
	if elem.Attribute(stravaganza.Namespace) == streamNamespace {
		switch elem.Name() {
		case "a":
			h, err := parseH(elem)
			if err != nil {
				e.mu.Unlock()
				return true, err
			}
			n := e.q.acknowledge(h)
			e.mu.Unlock()

			reportAckReceived(n)
			return true, nil

		case "r":
			if e.ackTm == nil {
				e.ackTm = time.AfterFunc(forcedAckDelay, func() {
					if err := e.SendAck(context.Background(), true); err != nil {
						level.Warn(e.logger).Log("msg", "failed to send ack", "err", err)
					}
				})
			}
			e.mu.Unlock()
			return true, nil
		}
		e.mu.Unlock()
		return false, nil
	}
	if e.st != enabled || !stanza.IsStanza(elem) {
		e.mu.Unlock()
		return false, nil
	}
	e.inH++
	shouldAck := e.inH-e.lastSentH >= autoAckThreshold
	e.mu.Unlock()

	if shouldAck {
		return false, e.SendAck(ctx, false)
	}
	return false, nil
}

// ProcessOutgoing satisfies module.Filter interface.
func (e *Engine) ProcessOutgoing(ctx context.Context, elem stravaganza.Element) {
	if !stanza.IsStanza(elem) {
		return
	}
	e.mu.Lock()
	if e.st == disabled {
		e.mu.Unlock()
		return
	}
	e.q.push(elem)

	now := e.nowFn()
	shouldRequest := e.st == enabled && e.q.len() >= requestThreshold && now.Sub(e.lastReqAt) >= requestInterval
	e.mu.Unlock()

	if shouldRequest {
		if err := e.RequestAck(ctx); err != nil {
			level.Warn(e.logger).Log("msg", "failed to request ack", "err", err)
		}
	}
}

// RequestAck sends an ack request to the server.
func (e *Engine) RequestAck(ctx context.Context) error {
	e.mu.Lock()
	if e.st != enabled {
		e.mu.Unlock()
		return nil
	}
	e.lastReqAt = e.nowFn()
	e.mu.Unlock()

	reportAckRequested()
	return e.w.SendElement(ctx, stravaganza.NewBuilder("r").
		WithAttribute(stravaganza.Namespace, streamNamespace).
		Build(),
	)
}

// SendAck sends the inbound counter to the server.
// Unless force is set no ack is sent when the counter has not changed since the last one.
func (e *Engine) SendAck(ctx context.Context, force bool) error {
	e.mu.Lock()
	if e.st != enabled {
		e.mu.Unlock()
		return nil
	}
	if !force && e.inH == e.lastSentH {
		e.mu.Unlock()
		return nil
	}
	if e.ackTm != nil {
		e.ackTm.Stop()
		e.ackTm = nil
	}
	h := e.inH
	e.lastSentH = h
	e.mu.Unlock()

	reportAckSent()
	return e.w.SendElement(ctx, stravaganza.NewBuilder("a").
		WithAttribute(stravaganza.Namespace, streamNamespace).
		WithAttribute("h", strconv.FormatUint(uint64(h), 10)).
		Build(),
	)
}

// Reset disables acknowledgement, clearing the state included in scope.
func (e *Engine) Reset(scope ResetScope) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset(scope)
}

// AckEnabled tells whether acknowledgement is active on the current stream.
func (e *Engine) AckEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st == enabled
}

// ResumptionEnabled tells whether the server granted stream resumption.
func (e *Engine) ResumptionEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resumptionEnabled && len(e.resumptionID) > 0
}

// ResumptionID returns the resumption identifier granted by the server.
func (e *Engine) ResumptionID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resumptionID
}

// ResumptionLocation returns the server preferred reconnection address, if any.
func (e *Engine) ResumptionLocation() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.location
}

// MaxResumptionTimeout returns the resumption timeout granted by the server.
func (e *Engine) MaxResumptionTimeout() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.maxTimeout
}

// Counters returns a snapshot of the acknowledgement counters.
func (e *Engine) Counters() Counters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Counters{
		InH:       e.inH,
		LastSentH: e.lastSentH,
		OutH:      e.q.h,
		Queued:    e.q.len(),
	}
}

func (e *Engine) handleEnabled(elem stravaganza.Element, err error, maxResumption time.Duration) error {
	if err == nil && elem.Name() == "failed" {
		err = failureError(elem)
	}
	if err != nil {
		e.Reset(SessionScope)
		e.postEvent(event.StreamManagementFailed, &event.StreamManagementEventInfo{Err: err})

		level.Warn(e.logger).Log("msg", "failed to enable stream management", "err", err)
		return err
	}
	e.mu.Lock()
	e.st = enabled
	if resume := elem.Attribute("resume"); resume == "true" || resume == "1" {
		e.resumptionEnabled = true
		e.resumptionID = elem.Attribute(stravaganza.ID)
		e.location = elem.Attribute("location")
		e.maxTimeout = maxResumption
		if secs, err := strconv.Atoi(elem.Attribute("max")); err == nil && secs > 0 {
			e.maxTimeout = time.Duration(secs) * time.Second
		}
	}
	info := &event.StreamManagementEventInfo{
		ResumptionID: e.resumptionID,
		Location:     e.location,
	}
	e.mu.Unlock()

	e.postEvent(event.StreamManagementEnabled, info)

	level.Info(e.logger).Log("msg", "stream management enabled", "resumption", info.ResumptionID != "")
	return nil
}

func (e *Engine) handleResumed(ctx context.Context, elem stravaganza.Element, err error) error {
	if err == nil && elem.Name() == "failed" {
		err = failureError(elem)

		if h, hErr := parseH(elem); hErr == nil {
			e.mu.Lock()
			e.q.acknowledge(h)
			e.mu.Unlock()
		}
	}
	if err != nil {
		e.mu.Lock()
		e.resumptionEnabled = false
		e.resumptionID = ""
		e.location = ""
		e.reset(e.failureScope)
		e.mu.Unlock()

		reportResumption(false)
		e.postEvent(event.StreamManagementFailed, &event.StreamManagementEventInfo{Err: err})

		level.Warn(e.logger).Log("msg", "failed to resume stream", "err", err, "reset_scope", e.failureScope)
		return err
	}
	h, err := parseH(elem)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.q.acknowledge(h)
	e.q.h = h
	pending := e.q.drain()
	e.st = enabled
	info := &event.StreamManagementEventInfo{
		ResumptionID: e.resumptionID,
		Location:     e.location,
		H:            h,
	}
	e.mu.Unlock()

	reportResumption(true)
	e.postEvent(event.StreamManagementResumed, info)

	level.Info(e.logger).Log("msg", "stream resumed", "h", h, "resent", len(pending))
	return e.resend(ctx, pending)
}

func (e *Engine) resend(ctx context.Context, pending []stravaganza.Element) error {
	for _, el := range pending {
		if err := e.w.SendElement(ctx, el); err != nil {
			return err
		}
	}
	reportResent(len(pending))
	return nil
}

func (e *Engine) reset(scope ResetScope) {
	e.st = disabled
	if e.ackTm != nil {
		e.ackTm.Stop()
		e.ackTm = nil
	}
	if scope == StreamScope {
		return
	}
	e.q.reset()
	e.inH = 0
	e.lastSentH = 0
	e.resumptionEnabled = false
	e.resumptionID = ""
	e.location = ""
	e.maxTimeout = 0
	e.lastReqAt = time.Time{}
}

func (e *Engine) postEvent(eventName string, info *event.StreamManagementEventInfo) {
	if e.sn == nil {
		return
	}
	err := e.sn.Post(context.Background(), sonar.NewEventBuilder(eventName).
		WithInfo(info).
		WithSender(e).
		Build(),
	)
	if err != nil {
		level.Warn(e.logger).Log("msg", "failed to post event", "event", eventName, "err", err)
	}
}

func parseH(elem stravaganza.Element) (uint32, error) {
	h, err := strconv.ParseUint(elem.Attribute("h"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("xep0198: invalid h attribute: %w", err)
	}
	return uint32(h), nil
}

func failureError(elem stravaganza.Element) error {
	for _, ch := range elem.AllChildren() {
		if ch.Attribute(stravaganza.Namespace) == stanzasNamespace {
			return stanza.E(stanza.Condition(ch.Name()))
		}
	}
	return stanza.E(stanza.UnexpectedRequest)
}
