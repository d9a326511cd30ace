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

package xep0030

import (
	"context"
	"sort"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/sonar"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/ortuman/jackal-client/pkg/event"
	"github.com/ortuman/jackal-client/pkg/module"
	"github.com/ortuman/jackal-client/pkg/stanza"
	xmpputil "github.com/ortuman/jackal-client/pkg/util/xmpp"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const (
	// InfoNamespace is the disco#info namespace.
	InfoNamespace = "http://jabber.org/protocol/disco#info"

	// ItemsNamespace is the disco#items namespace.
	ItemsNamespace = "http://jabber.org/protocol/disco#items"
)

const (
	// ModuleName represents disco module name.
	ModuleName = "disco"

	// XEPNumber represents disco XEP number.
	XEPNumber = "0030"
)

// Identity represents a disco identity.
type Identity struct {
	Category string `fig:"category"`
	Type     string `fig:"type"`
	Name     string `fig:"name"`
}

// Info represents a disco#info query result.
type Info struct {
	Identities []Identity
	Features   []string
}

// HasFeature tells whether feature is contained in the info result.
func (i *Info) HasFeature(feature string) bool {
	return lo.Contains(i.Features, feature)
}

// Config contains disco module configuration.
type Config struct {
	Identity Identity `fig:"identity"`
}

// DefaultIdentity is the identity announced when none is configured.
var DefaultIdentity = Identity{Category: "client", Type: "pc", Name: "jackalc"}

type featureProvider interface {
	Features() []string
}

// Disco represents a service discovery (XEP-0030) module type.
type Disco struct {
	cl       module.Client
	features featureProvider
	identity Identity
	sn       *sonar.Sonar
	logger   kitlog.Logger

	mu          sync.RWMutex
	srvFeatures []string
	accFeatures []string
}

// New returns a new initialized disco module instance.
// features provides the features advertised by this client, usually the module registry.
func New(cl module.Client, features featureProvider, cfg Config, sn *sonar.Sonar, logger kitlog.Logger) *Disco {
	identity := cfg.Identity
	if len(identity.Category) == 0 {
		identity = DefaultIdentity
	}
	return &Disco{
		cl:       cl,
		features: features,
		identity: identity,
		sn:       sn,
		logger:   kitlog.With(logger, "module", ModuleName, "xep", XEPNumber),
	}
}

// Name returns disco module name.
func (m *Disco) Name() string { return ModuleName }

// Features returns disco module features.
func (m *Disco) Features() []string { return []string{InfoNamespace} }

// Criteria returns disco module criteria.
func (m *Disco) Criteria() module.Criteria {
	return module.IQ(InfoNamespace)
}

// Start starts disco module.
func (m *Disco) Start(_ context.Context) error {
	level.Info(m.logger).Log("msg", "started disco module")
	return nil
}

// Stop stops disco module.
func (m *Disco) Stop(_ context.Context) error {
	level.Info(m.logger).Log("msg", "stopped disco module")
	return nil
}

// Process answers a disco#info request.
func (m *Disco) Process(ctx context.Context, stz *stanza.Stanza) error {
	if stz.Type() != stanza.GetType {
		return stanza.E(stanza.NotAllowed)
	}
	q := stz.Element().ChildNamespace("query", InfoNamespace)
	if q == nil {
		return stanza.E(stanza.BadRequest)
	}
	if node := q.Attribute("node"); len(node) > 0 {
		return stanza.E(stanza.ItemNotFound)
	}
	return m.cl.SendElement(ctx, xmpputil.MakeResultIQ(stz.Element(), m.infoQuery()))
}

// DiscoverInfo queries the disco#info of the entity identified by jd.
func (m *Disco) DiscoverInfo(ctx context.Context, jd string, node string) (*Info, error) {
	qb := stravaganza.NewBuilder("query").
		WithAttribute(stravaganza.Namespace, InfoNamespace)
	if len(node) > 0 {
		qb.WithAttribute("node", node)
	}
	resp, err := m.cl.SendIQ(ctx, xmpputil.MakeIQ(stanza.GetType, jd, qb.Build()))
	if err != nil {
		return nil, err
	}
	if resp.Attribute(stravaganza.Type) == stanza.ErrorType {
		return nil, stanza.ParseError(resp)
	}
	return parseInfo(resp.ChildNamespace("query", InfoNamespace)), nil
}

// Discover concurrently discovers server and account features. Failures are logged and skipped.
func (m *Disco) Discover(ctx context.Context) {
	eGroup, egCtx := errgroup.WithContext(ctx)
	eGroup.Go(func() error {
		if err := m.DiscoverServerFeatures(egCtx); err != nil {
			level.Warn(m.logger).Log("msg", "failed to discover server features", "err", err)
		}
		return nil
	})
	eGroup.Go(func() error {
		if err := m.DiscoverAccountFeatures(egCtx); err != nil {
			level.Warn(m.logger).Log("msg", "failed to discover account features", "err", err)
		}
		return nil
	})
	_ = eGroup.Wait()
}

// DiscoverServerFeatures queries and stores the account server features.
func (m *Disco) DiscoverServerFeatures(ctx context.Context) error {
	domain := ""
	if jd := m.cl.JID(); jd != nil {
		domain = jd.Domain()
	}
	info, err := m.DiscoverInfo(ctx, domain, "")
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.srvFeatures = info.Features
	m.mu.Unlock()

	level.Debug(m.logger).Log("msg", "discovered server features", "count", len(info.Features))

	return m.postEvent(ctx, event.DiscoServerFeaturesDiscovered, domain, info.Features)
}

// DiscoverAccountFeatures queries and stores the account bare JID features.
func (m *Disco) DiscoverAccountFeatures(ctx context.Context) error {
	var bareJID string
	if jd := m.cl.JID(); jd != nil {
		bareJID = jd.ToBareJID().String()
	}
	info, err := m.DiscoverInfo(ctx, bareJID, "")
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.accFeatures = info.Features
	m.mu.Unlock()

	level.Debug(m.logger).Log("msg", "discovered account features", "count", len(info.Features))

	return m.postEvent(ctx, event.DiscoAccountFeaturesDiscovered, bareJID, info.Features)
}

// ServerFeatures returns the last discovered server features.
func (m *Disco) ServerFeatures() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.srvFeatures
}

// AccountFeatures returns the last discovered account features.
func (m *Disco) AccountFeatures() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accFeatures
}

// HasServerFeature tells whether feature has been advertised by the server.
func (m *Disco) HasServerFeature(feature string) bool {
	return lo.Contains(m.ServerFeatures(), feature)
}

// Reset drops discovered features.
func (m *Disco) Reset() {
	m.mu.Lock()
	m.srvFeatures = nil
	m.accFeatures = nil
	m.mu.Unlock()
}

func (m *Disco) infoQuery() stravaganza.Element {
	features := lo.Uniq(append([]string{InfoNamespace}, m.features.Features()...))
	sort.Strings(features)

	b := stravaganza.NewBuilder("query").
		WithAttribute(stravaganza.Namespace, InfoNamespace)

	idb := stravaganza.NewBuilder("identity").
		WithAttribute("category", m.identity.Category).
		WithAttribute("type", m.identity.Type)
	if len(m.identity.Name) > 0 {
		idb.WithAttribute("name", m.identity.Name)
	}
	b.WithChild(idb.Build())

	for _, f := range features {
		b.WithChild(
			stravaganza.NewBuilder("feature").
				WithAttribute("var", f).
				Build(),
		)
	}
	return b.Build()
}

func (m *Disco) postEvent(ctx context.Context, eventName, jd string, features []string) error {
	if m.sn == nil {
		return nil
	}
	return m.sn.Post(ctx, sonar.NewEventBuilder(eventName).
		WithInfo(&event.DiscoEventInfo{
			JID:      jd,
			Features: features,
		}).
		WithSender(m).
		Build(),
	)
}

func parseInfo(q stravaganza.Element) *Info {
	info := &Info{}
	if q == nil {
		return info
	}
	for _, id := range q.Children("identity") {
		info.Identities = append(info.Identities, Identity{
			Category: id.Attribute("category"),
			Type:     id.Attribute("type"),
			Name:     id.Attribute("name"),
		})
	}
	info.Features = lo.FilterMap(q.Children("feature"), func(f stravaganza.Element, _ int) (string, bool) {
		v := f.Attribute("var")
		return v, len(v) > 0
	})
	return info
}
