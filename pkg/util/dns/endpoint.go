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

package dns

import (
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultClientPort is the XMPP client port used when no port is known.
const DefaultClientPort = 5222

var errInvalidAddress = errors.New("dns: invalid address")

// Endpoint represents a connectable XMPP server address.
type Endpoint struct {
	Host         string    `json:"host" yaml:"host"`
	Port         int       `json:"port" yaml:"port"`
	Priority     uint16    `json:"priority" yaml:"priority"`
	Weight       uint16    `json:"weight" yaml:"weight"`
	DirectTLS    bool      `json:"direct_tls" yaml:"direct_tls"`
	InvalidUntil time.Time `json:"invalid_until,omitempty" yaml:"invalid_until,omitempty"`
}

// FallbackEndpoint returns the endpoint used when no SRV record is available.
func FallbackEndpoint(domain string) *Endpoint {
	return &Endpoint{Host: domain, Port: DefaultClientPort}
}

// Address returns endpoint host:port representation.
func (e *Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// String satisfies fmt.Stringer interface.
func (e *Endpoint) String() string {
	return fmt.Sprintf("%s (priority: %d, weight: %d, direct_tls: %t)", e.Address(), e.Priority, e.Weight, e.DirectTLS)
}

// IsValid tells whether endpoint is not in its invalidation window at instant t.
func (e *Endpoint) IsValid(t time.Time) bool {
	return !t.Before(e.InvalidUntil)
}

// Equal tells whether e and other point to the same SRV record.
func (e *Endpoint) Equal(other *Endpoint) bool {
	return e.Host == other.Host &&
		e.Port == other.Port &&
		e.DirectTLS == other.DirectTLS &&
		e.Priority == other.Priority &&
		e.Weight == other.Weight
}

// ParseHostPort parses a "host[:port]" connection detail.
// IPv6 literals may be enclosed in brackets. A zero port is returned if none was specified.
func ParseHostPort(s string) (host string, port int, err error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return "", 0, errInvalidAddress
	}
	if strings.HasPrefix(s, "[") {
		end := strings.Index(s, "]")
		if end < 0 {
			return "", 0, errInvalidAddress
		}
		host = s[1:end]
		rest := s[end+1:]
		if len(rest) == 0 {
			return host, 0, nil
		}
		if !strings.HasPrefix(rest, ":") {
			return "", 0, errInvalidAddress
		}
		port, err = parsePort(rest[1:])
		return host, port, err
	}
	if strings.Count(s, ":") > 1 {
		return s, 0, nil // bare IPv6 literal
	}
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		return s, 0, nil
	}
	port, err = parsePort(s[idx+1:])
	if err != nil {
		return "", 0, err
	}
	return s[:idx], port, nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil || port <= 0 || port > 65535 {
		return 0, errInvalidAddress
	}
	return port, nil
}

// Result contains the resolved endpoints of a domain.
type Result struct {
	Domain    string      `json:"domain" yaml:"domain"`
	Endpoints []*Endpoint `json:"endpoints" yaml:"endpoints"`
	UpdatedAt time.Time   `json:"updated_at" yaml:"updated_at"`
}

// Endpoint returns the first endpoint valid at instant t, or nil if none.
func (r *Result) Endpoint(t time.Time) *Endpoint {
	for _, ep := range r.Endpoints {
		if ep.IsValid(t) {
			return ep
		}
	}
	return nil
}

// HasValid tells whether at least one endpoint is valid at instant t.
func (r *Result) HasValid(t time.Time) bool {
	return r.Endpoint(t) != nil
}

// Merge replaces result endpoints with a fresh query response keeping invalidation marks
// of those records still present.
func (r *Result) Merge(endpoints []*Endpoint, t time.Time) {
	merged := make([]*Endpoint, 0, len(endpoints))
	for _, ep := range endpoints {
		cp := *ep
		for _, old := range r.Endpoints {
			if old.Equal(ep) {
				cp.InvalidUntil = old.InvalidUntil
				break
			}
		}
		merged = append(merged, &cp)
	}
	sortEndpoints(merged)
	r.Endpoints = merged
	r.UpdatedAt = t
}

// MarkInvalid marks ep as invalid until instant t.
func (r *Result) MarkInvalid(ep *Endpoint, t time.Time) bool {
	for _, e := range r.Endpoints {
		if e.Equal(ep) {
			e.InvalidUntil = t
			return true
		}
	}
	return false
}

// sortEndpoints orders endpoints by ascending priority and descending weight.
func sortEndpoints(endpoints []*Endpoint) {
	sort.SliceStable(endpoints, func(i, j int) bool {
		if endpoints[i].Priority != endpoints[j].Priority {
			return endpoints[i].Priority < endpoints[j].Priority
		}
		return endpoints[i].Weight > endpoints[j].Weight
	})
}
