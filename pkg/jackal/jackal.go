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

package jackal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/sonar"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/ortuman/jackal-client/pkg/client"
	"github.com/ortuman/jackal-client/pkg/event"
	"github.com/ortuman/jackal-client/pkg/storage/boltdb"
	"github.com/ortuman/jackal-client/pkg/util/dns"
	"github.com/ortuman/jackal-client/pkg/version"
	pkgerrors "github.com/pkg/errors"
)

const (
	defaultBootstrapTimeout = time.Minute
	defaultShutdownTimeout  = time.Second * 30
)

// ErrNoAccount is returned when the session is requested without a configured account.
var ErrNoAccount = errors.New("jackal: no account configured")

type starter interface {
	Start(ctx context.Context) error
}

type stopper interface {
	Stop(ctx context.Context) error
}

type startStopper interface {
	starter
	stopper
}

// Jackal is the root data structure of the jackal client runner.
type Jackal struct {
	cfg    Config
	output io.Writer

	sn       *sonar.Sonar
	rep      *boltdb.Repository
	resolver *dns.Resolver
	cl       *client.Client

	starters []starter
	stoppers []stopper
	subs     []sonar.SubID

	mu          sync.Mutex
	stopping    bool
	reconnectTm *time.Timer
	waitStopCh  chan os.Signal
	logger      kitlog.Logger
}

// New makes a new Jackal. Incoming chat messages are printed to output.
func New(cfg Config, output io.Writer, logger kitlog.Logger) *Jackal {
	return &Jackal{
		cfg:        cfg,
		output:     output,
		sn:         sonar.New(),
		waitStopCh: make(chan os.Signal, 1),
		logger:     logger,
	}
}

// Run bootstraps jackal, connects the session and blocks until a stop signal is received.
func (j *Jackal) Run() error {
	level.Info(j.logger).Log("msg", "jackal client is starting...",
		"version", version.Version,
		"go_ver", runtime.Version(),
		"go_os", runtime.GOOS,
		"go_arch", runtime.GOARCH,
	)
	if err := j.Bootstrap(); err != nil {
		return err
	}
	if j.cl == nil {
		_ = j.Shutdown()
		return ErrNoAccount
	}
	j.subscribe()

	ctx, cancel := context.WithTimeout(context.Background(), j.cfg.Connection.Timeout+j.cfg.Session.RequestTimeout)
	err := j.cl.Connect(ctx)
	cancel()
	if err != nil {
		level.Error(j.logger).Log("msg", "failed to connect", "err", err)
		if !j.shouldReconnect(j.cl.State()) {
			_ = j.Shutdown()
			return err
		}
		j.scheduleReconnect()
	}
	// ...wait for stop signal to shut down
	sig := j.waitForStopSignal()
	level.Info(j.logger).Log("msg", "received stop signal... shutting down...",
		"signal", sig.String(),
	)
	return j.Shutdown()
}

// Bootstrap initializes and starts every runner component. The session is not connected.
func (j *Jackal) Bootstrap() error {
	j.initStorage()
	j.initResolver()
	if len(j.cfg.Account.JID) > 0 {
		if err := j.initClient(); err != nil {
			return err
		}
	}
	if j.cfg.HTTPPort > 0 {
		j.registerStartStopper(newHTTPServer(j.cfg.HTTPPort, j.status, j.logger))
	}
	return j.bootstrap()
}

// Shutdown stops every runner component in reverse start order.
func (j *Jackal) Shutdown() error {
	j.mu.Lock()
	j.stopping = true
	if j.reconnectTm != nil {
		j.reconnectTm.Stop()
	}
	j.mu.Unlock()

	for _, sub := range j.subs {
		j.sn.Unsubscribe(sub)
	}
	if err := j.shutdown(); err != nil {
		return err
	}
	level.Info(j.logger).Log("msg", "jackal client stopped")
	return nil
}

// Client returns the runner client. It is nil unless an account is configured.
func (j *Jackal) Client() *client.Client {
	return j.cl
}

// Resolver returns the runner endpoint resolver.
func (j *Jackal) Resolver() *dns.Resolver {
	return j.resolver
}

// Storage returns the persistent endpoint cache. It is nil when no storage path is configured.
func (j *Jackal) Storage() *boltdb.Repository {
	return j.rep
}

func (j *Jackal) initStorage() {
	if len(j.cfg.Storage.BoltDB.Path) == 0 {
		return
	}
	j.rep = boltdb.New(j.cfg.Storage.BoltDB, j.logger)
	j.registerStartStopper(j.rep)
}

func (j *Jackal) initResolver() {
	var store dns.Cache
	if j.rep != nil {
		store = j.rep
	}
	j.resolver = dns.NewResolver(j.cfg.DNS, dns.NewMemoryCache(store), j.logger)
}

func (j *Jackal) initClient() error {
	cl, err := client.New(j.cfg.ClientConfig(),
		client.WithResolver(j.resolver),
		client.WithSonar(j.sn),
		client.WithLogger(j.logger),
	)
	if err != nil {
		return pkgerrors.Wrap(err, "jackal: failed to create client")
	}
	j.cl = cl
	j.registerStartStopper(j.cl)
	return nil
}

func (j *Jackal) subscribe() {
	j.subs = append(j.subs,
		j.sn.Subscribe(event.ClientSessionStateChanged, j.onSessionStateChanged),
		j.sn.Subscribe(event.ClientStanzaReceived, j.onStanzaReceived),
	)
}

func (j *Jackal) onSessionStateChanged(_ context.Context, ev sonar.Event) error {
	inf := ev.Info().(*event.ClientEventInfo)
	level.Info(j.logger).Log("msg", "session state changed",
		"state", inf.State,
		"resumed", inf.Resumed,
		"reason", inf.Reason,
	)
	// handlers run on the client run queue, state is read from the event
	if inf.State != client.Disconnected.String() {
		return nil
	}
	switch inf.Reason {
	case client.ReasonNone.String(), client.ReasonAuthenticationFailure.String():
		return nil
	}
	j.scheduleReconnect()
	return nil
}

func (j *Jackal) onStanzaReceived(_ context.Context, ev sonar.Event) error {
	inf := ev.Info().(*event.ClientEventInfo)
	elem := inf.Element
	if elem == nil || elem.Name() != "message" {
		return nil
	}
	body := elem.Child("body")
	if body == nil {
		return nil
	}
	_, _ = fmt.Fprintf(j.output, "%s: %s\n", elem.Attribute(stravaganza.From), body.Text())
	return nil
}

func (j *Jackal) shouldReconnect(st client.SessionState) bool {
	if j.cfg.ReconnectDelay <= 0 || st.State != client.Disconnected {
		return false
	}
	return st.Reason != client.ReasonNone && st.Reason != client.ReasonAuthenticationFailure
}

func (j *Jackal) scheduleReconnect() {
	if j.cfg.ReconnectDelay <= 0 {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.stopping {
		return
	}
	if j.reconnectTm != nil {
		j.reconnectTm.Stop()
	}
	j.reconnectTm = time.AfterFunc(j.cfg.ReconnectDelay, j.reconnect)

	level.Info(j.logger).Log("msg", "scheduled reconnection", "delay", j.cfg.ReconnectDelay)
}

func (j *Jackal) reconnect() {
	j.mu.Lock()
	stopping := j.stopping
	j.mu.Unlock()
	if stopping {
		return
	}
	j.cl.Login()
}

func (j *Jackal) status() interface{} {
	if j.cl == nil {
		return nil
	}
	st := j.cl.State()
	sm := j.cl.StreamManagement()
	counters := sm.Counters()

	s := &sessionStatus{
		State:   st.State.String(),
		Resumed: st.Resumed,
		StreamManagement: smStatus{
			AckEnabled:        sm.AckEnabled(),
			ResumptionEnabled: sm.ResumptionEnabled(),
			InH:               counters.InH,
			OutH:              counters.OutH,
			Queued:            counters.Queued,
		},
	}
	if jd := j.cl.JID(); jd != nil {
		s.JID = jd.String()
	}
	if st.State == client.Disconnected {
		s.Reason = st.Reason.String()
	}
	return s
}

type sessionStatus struct {
	JID              string   `json:"jid"`
	State            string   `json:"state"`
	Resumed          bool     `json:"resumed"`
	Reason           string   `json:"reason,omitempty"`
	StreamManagement smStatus `json:"stream_management"`
}

type smStatus struct {
	AckEnabled        bool   `json:"ack_enabled"`
	ResumptionEnabled bool   `json:"resumption_enabled"`
	InH               uint32 `json:"in_h"`
	OutH              uint32 `json:"out_h"`
	Queued            int    `json:"queued"`
}

func (j *Jackal) bootstrap() error {
	// spin up all service subsystems
	ctx, cancel := context.WithTimeout(context.Background(), defaultBootstrapTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		// invoke all registered starters...
		for _, s := range j.starters {
			if err := s.Start(ctx); err != nil {
				errCh <- err
				return
			}
		}
		errCh <- nil
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *Jackal) shutdown() error {
	// wait until shutdown has been completed
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		// invoke all registered stoppers in reverse order...
		for i := len(j.stoppers) - 1; i >= 0; i-- {
			if err := j.stoppers[i].Stop(ctx); err != nil {
				errCh <- err
				return
			}
		}
		errCh <- nil
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *Jackal) registerStartStopper(ss startStopper) {
	j.starters = append(j.starters, ss)
	j.stoppers = append(j.stoppers, ss)
}

func (j *Jackal) waitForStopSignal() os.Signal {
	signal.Notify(j.waitStopCh, syscall.SIGINT, syscall.SIGTERM)
	return <-j.waitStopCh
}
