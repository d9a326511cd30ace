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

package response

import (
	"errors"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/ortuman/jackal-client/pkg/stanza"
	xmpputil "github.com/ortuman/jackal-client/pkg/util/xmpp"
)

// ErrRemoteServerTimeout is the failure delivered to a pending request that timed out,
// or that was still waiting when the manager was stopped.
var ErrRemoteServerTimeout = stanza.E(stanza.RemoteServerTimeout)

// ErrCancelled is the failure delivered to a pending request cancelled by its owner.
var ErrCancelled = errors.New("response: request cancelled")

// Handler is invoked exactly once per registered request.
// On success err is nil and elem is the response element.
type Handler func(elem stravaganza.Element, err error)

// Key identifies a pending request.
type Key uint64

// Condition matches non-iq response elements by name and namespace.
type Condition struct {
	Names     []string
	Namespace string
}

// Match tells whether elem satisfies the condition.
func (c Condition) Match(elem stravaganza.Element) bool {
	if len(c.Namespace) > 0 && elem.Attribute(stravaganza.Namespace) != c.Namespace {
		return false
	}
	for _, name := range c.Names {
		if elem.Name() == name {
			return true
		}
	}
	return false
}

type entry struct {
	key     Key
	id      string
	jid     *jid.JID
	rawTo   string
	cond    *Condition
	handler Handler
	tm      *time.Timer
}

// Manager correlates outgoing requests with their responses.
type Manager struct {
	mu         sync.Mutex
	seq        Key
	accountJID *jid.JID
	iqs        map[string][]*entry
	conds      []*entry
	logger     kitlog.Logger
}

// NewManager returns a new initialized Manager instance.
func NewManager(accountJID *jid.JID, logger kitlog.Logger) *Manager {
	return &Manager{
		accountJID: accountJID,
		iqs:        make(map[string][]*entry),
		logger:     logger,
	}
}

// SetAccountJID updates the account address used to match responses without explicit sender.
func (m *Manager) SetAccountJID(accountJID *jid.JID) {
	m.mu.Lock()
	m.accountJID = accountJID
	m.mu.Unlock()
}

// RegisterIQ registers a pending iq request returning the element to be sent, with an id
// assigned if none was present. A non positive timeout never expires.
func (m *Manager) RegisterIQ(iq stravaganza.Element, timeout time.Duration, h Handler) (stravaganza.Element, Key) {
	id := iq.Attribute(stravaganza.ID)
	if len(id) == 0 {
		id = xmpputil.NewID()
		iq = stravaganza.NewBuilderFromElement(iq).
			WithAttribute(stravaganza.ID, id).
			Build()
	}
	var toJID *jid.JID
	var rawTo string
	if to := iq.Attribute(stravaganza.To); len(to) > 0 {
		j, err := jid.NewWithString(to, false)
		switch {
		case err != nil:
			level.Debug(m.logger).Log("msg", "unparsable iq recipient", "to", to, "err", err)
			rawTo = to
		default:
			toJID = j
		}
	}
	m.mu.Lock()
	e := m.newEntry(h)
	e.id = id
	e.jid = toJID
	e.rawTo = rawTo
	m.iqs[id] = append(m.iqs[id], e)
	m.armTimer(e, timeout)
	m.mu.Unlock()

	return iq, e.key
}

// RegisterCondition registers a pending request resolved by the first element matching cond.
func (m *Manager) RegisterCondition(cond Condition, timeout time.Duration, h Handler) Key {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.newEntry(h)
	e.cond = &cond
	m.conds = append(m.conds, e)
	m.armTimer(e, timeout)
	return e.key
}

// Resolve pops the pending request matching elem.
// The returned function delivers the response to its handler and must be invoked once.
func (m *Manager) Resolve(elem stravaganza.Element) (func(), bool) {
	var e *entry

	m.mu.Lock()
	if elem.Name() == "iq" {
		switch elem.Attribute(stravaganza.Type) {
		case stanza.ResultType, stanza.ErrorType:
			e = m.popIQ(elem.Attribute(stravaganza.ID), elem.Attribute(stravaganza.From))
		}
	} else {
		e = m.popCondition(elem)
	}
	m.mu.Unlock()

	if e == nil {
		return nil, false
	}
	if e.tm != nil {
		e.tm.Stop()
	}
	return func() {
		if elem.Name() == "iq" && elem.Attribute(stravaganza.Type) == stanza.ErrorType {
			e.handler(elem, stanza.ParseError(elem))
			return
		}
		e.handler(elem, nil)
	}, true
}

// Cancel fails a pending request with ErrCancelled.
// Returns false if the request was already completed.
func (m *Manager) Cancel(key Key) bool {
	m.mu.Lock()
	e := m.remove(key)
	m.mu.Unlock()

	if e == nil {
		return false
	}
	if e.tm != nil {
		e.tm.Stop()
	}
	e.handler(nil, ErrCancelled)
	return true
}

// Stop fails every pending request with ErrRemoteServerTimeout and clears all state.
func (m *Manager) Stop() {
	m.mu.Lock()
	var pending []*entry
	for _, entries := range m.iqs {
		pending = append(pending, entries...)
	}
	pending = append(pending, m.conds...)
	m.iqs = make(map[string][]*entry)
	m.conds = nil
	m.mu.Unlock()

	for _, e := range pending {
		if e.tm != nil {
			e.tm.Stop()
		}
		e.handler(nil, ErrRemoteServerTimeout)
	}
	if len(pending) > 0 {
		level.Debug(m.logger).Log("msg", "pending requests cancelled", "count", len(pending))
	}
}

// Len returns the number of pending requests.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.conds)
	for _, entries := range m.iqs {
		n += len(entries)
	}
	return n
}

func (m *Manager) newEntry(h Handler) *entry {
	m.seq++
	return &entry{key: m.seq, handler: h}
}

func (m *Manager) armTimer(e *entry, timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	key := e.key
	e.tm = time.AfterFunc(timeout, func() {
		m.mu.Lock()
		expired := m.remove(key)
		m.mu.Unlock()

		if expired == nil {
			return // already completed
		}
		level.Debug(m.logger).Log("msg", "request timed out", "id", expired.id)
		expired.handler(nil, ErrRemoteServerTimeout)
	})
}

func (m *Manager) popIQ(id, from string) *entry {
	entries := m.iqs[id]
	for i, e := range entries {
		if !m.matchesIQ(e, from) {
			continue
		}
		entries = append(entries[:i:i], entries[i+1:]...)
		if len(entries) == 0 {
			delete(m.iqs, id)
		} else {
			m.iqs[id] = entries
		}
		return e
	}
	return nil
}

func (m *Manager) matchesIQ(e *entry, from string) bool {
	var accountBare string
	if m.accountJID != nil {
		accountBare = m.accountJID.ToBareJID().String()
	}
	if len(e.rawTo) > 0 {
		return e.rawTo == from
	}
	if len(from) > 0 {
		if e.jid != nil {
			return e.jid.String() == from
		}
		return from == accountBare
	}
	return e.jid == nil || (len(e.jid.Resource()) == 0 && e.jid.String() == accountBare)
}

func (m *Manager) popCondition(elem stravaganza.Element) *entry {
	for i, e := range m.conds {
		if !e.cond.Match(elem) {
			continue
		}
		m.conds = append(m.conds[:i:i], m.conds[i+1:]...)
		return e
	}
	return nil
}

func (m *Manager) remove(key Key) *entry {
	for id, entries := range m.iqs {
		for i, e := range entries {
			if e.key != key {
				continue
			}
			entries = append(entries[:i:i], entries[i+1:]...)
			if len(entries) == 0 {
				delete(m.iqs, id)
			} else {
				m.iqs[id] = entries
			}
			return e
		}
	}
	for i, e := range m.conds {
		if e.key != key {
			continue
		}
		m.conds = append(m.conds[:i:i], m.conds[i+1:]...)
		return e
	}
	return nil
}
