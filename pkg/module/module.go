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

package module

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/sonar"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/ortuman/jackal-client/pkg/event"
	"github.com/ortuman/jackal-client/pkg/stanza"
	"github.com/samber/lo"
)

// ErrModuleAlreadyRegistered will be returned by Register when a module with the same name was already registered.
var ErrModuleAlreadyRegistered = errors.New("module: already registered")

// Client is the handle through which modules interact with the owning client.
type Client interface {
	// JID returns the current account JID. Full once a resource has been bound.
	JID() *jid.JID

	// SendElement queues elem for delivery to the server.
	SendElement(ctx context.Context, elem stravaganza.Element) error

	// SendIQ sends an iq request and blocks until its response arrives or ctx is done.
	SendIQ(ctx context.Context, iq stravaganza.Element) (stravaganza.Element, error)
}

// Module represents generic module interface.
type Module interface {
	// Name returns specific module name.
	Name() string

	// Features returns the disco features advertised by the module.
	Features() []string

	// Criteria returns the predicate used to select incoming elements for this module.
	Criteria() Criteria

	// Process will be invoked whenever a matching stanza is received.
	// A returned *stanza.Error is used as reply condition.
	Process(ctx context.Context, stz *stanza.Stanza) error
}

// Starter is implemented by modules requiring initialization.
type Starter interface {
	Start(ctx context.Context) error
}

// Stopper is implemented by modules requiring cleanup.
type Stopper interface {
	Stop(ctx context.Context) error
}

// Filter inspects every incoming and outgoing element before module dispatch.
type Filter interface {
	// ProcessIncoming returns true if the element has been consumed by the filter.
	ProcessIncoming(ctx context.Context, elem stravaganza.Element) (bool, error)

	// ProcessOutgoing is invoked right before elem is handed to the connector.
	ProcessOutgoing(ctx context.Context, elem stravaganza.Element)
}

type registry struct {
	mods    []Module
	filters []Filter
}

// Modules is the client module hub.
type Modules struct {
	mu     sync.Mutex
	reg    atomic.Value // *registry
	sonar  *sonar.Sonar
	logger kitlog.Logger
}

// NewModules returns a new initialized Modules instance.
func NewModules(sn *sonar.Sonar, logger kitlog.Logger) *Modules {
	m := &Modules{
		sonar:  sn,
		logger: logger,
	}
	m.reg.Store(&registry{})
	return m
}

// Register adds a new module to the hub.
func (m *Modules) Register(mod Module) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.registry()
	if lo.ContainsBy(cur.mods, func(r Module) bool { return r.Name() == mod.Name() }) {
		return fmt.Errorf("%w: %s", ErrModuleAlreadyRegistered, mod.Name())
	}
	m.reg.Store(&registry{
		mods:    append(append([]Module(nil), cur.mods...), mod),
		filters: cur.filters,
	})
	return nil
}

// Unregister removes a registered module returning it, or nil if not found.
func (m *Modules) Unregister(name string) Module {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.registry()
	mod, idx, ok := lo.FindIndexOf(cur.mods, func(r Module) bool { return r.Name() == name })
	if !ok {
		return nil
	}
	mods := make([]Module, 0, len(cur.mods)-1)
	mods = append(mods, cur.mods[:idx]...)
	mods = append(mods, cur.mods[idx+1:]...)

	m.reg.Store(&registry{mods: mods, filters: cur.filters})
	return mod
}

// RegisterFilter appends a new filter. Filters are invoked in registration order.
func (m *Modules) RegisterFilter(f Filter) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.registry()
	m.reg.Store(&registry{
		mods:    cur.mods,
		filters: append(append([]Filter(nil), cur.filters...), f),
	})
}

// Module returns a registered module by name.
func (m *Modules) Module(name string) Module {
	mod, _ := lo.Find(m.registry().mods, func(r Module) bool { return r.Name() == name })
	return mod
}

// AllModules returns all registered modules.
func (m *Modules) AllModules() []Module {
	return m.registry().mods
}

// Filters returns all registered filters.
func (m *Modules) Filters() []Filter {
	return m.registry().filters
}

// Matching returns the modules whose criteria matches elem.
func (m *Modules) Matching(elem stravaganza.Element) []Module {
	return lo.Filter(m.registry().mods, func(mod Module, _ int) bool {
		return mod.Criteria().Match(elem)
	})
}

// Features returns the deduplicated features of all registered modules.
func (m *Modules) Features() []string {
	var features []string
	for _, mod := range m.registry().mods {
		features = append(features, mod.Features()...)
	}
	return lo.Uniq(features)
}

// Start starts registered modules.
func (m *Modules) Start(ctx context.Context) error {
	var modNames []string
	for _, mod := range m.registry().mods {
		if st, ok := mod.(Starter); ok {
			if err := st.Start(ctx); err != nil {
				return err
			}
		}
		modNames = append(modNames, mod.Name())
	}
	level.Info(m.logger).Log("msg", "started modules", "mods_count", len(modNames))

	return m.postEvent(ctx, event.ModulesStarted, modNames)
}

// Stop stops registered modules.
func (m *Modules) Stop(ctx context.Context) error {
	var modNames []string
	for _, mod := range m.registry().mods {
		if st, ok := mod.(Stopper); ok {
			if err := st.Stop(ctx); err != nil {
				return err
			}
		}
		modNames = append(modNames, mod.Name())
	}
	level.Info(m.logger).Log("msg", "stopped modules", "mods_count", len(modNames))

	return m.postEvent(ctx, event.ModulesStopped, modNames)
}

func (m *Modules) postEvent(ctx context.Context, eventName string, modNames []string) error {
	if m.sonar == nil {
		return nil
	}
	return m.sonar.Post(ctx, sonar.NewEventBuilder(eventName).
		WithInfo(&event.ModulesEventInfo{
			ModuleNames: modNames,
		}).
		WithSender(m).
		Build(),
	)
}

func (m *Modules) registry() *registry {
	return m.reg.Load().(*registry)
}
