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
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/sony/gobreaker"
	"golang.org/x/net/idna"
)

const (
	directTLSService = "xmpps-client"
	startTLSService  = "xmpp-client"

	resolveTimeout = time.Second * 5
)

var (
	// ErrNoValidEndpoint is returned by Resolve when every known endpoint is in its invalidation window.
	ErrNoValidEndpoint = errors.New("dns: no valid endpoint")

	// ErrNoRecords is returned by Resolve when domain has no XMPP client SRV records.
	ErrNoRecords = errors.New("dns: no SRV records")
)

// Config contains resolver configuration.
type Config struct {
	CacheTTL time.Duration `fig:"cache_ttl" default:"1h"`
}

// Resolver resolves XMPP client endpoints of a domain via SRV lookups.
type Resolver struct {
	cfg    Config
	cache  Cache
	cb     *gobreaker.CircuitBreaker
	logger kitlog.Logger

	mu         sync.Mutex
	refreshing map[string]struct{}

	lookUpFn func(ctx context.Context, service, proto, name string) (cname string, addrs []*net.SRV, err error)
	nowFn    func() time.Time
}

var srvDialer = net.Dialer{}

// NewResolver creates and initializes a new Resolver instance.
func NewResolver(cfg Config, cache Cache, logger kitlog.Logger) *Resolver {
	r := net.Resolver{
		Dial: func(ctx context.Context, _, address string) (net.Conn, error) {
			return srvDialer.DialContext(ctx, "tcp", address) // force SRV resolution over TCP
		},
	}
	if cache == nil {
		cache = NewMemoryCache(nil)
	}
	return &Resolver{
		cfg:   cfg,
		cache: cache,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "dns",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
		logger:     kitlog.With(logger, "component", "dns"),
		refreshing: make(map[string]struct{}),
		lookUpFn:   r.LookupSRV,
		nowFn:      time.Now,
	}
}

// Resolve returns the preferred valid endpoint of domain.
func (r *Resolver) Resolve(ctx context.Context, domain string) (*Endpoint, error) {
	asciiDomain, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return nil, err
	}
	now := r.nowFn()

	res, err := r.cache.FetchResult(ctx, asciiDomain)
	if err != nil {
		level.Warn(r.logger).Log("msg", "failed to fetch cached SRV records", "domain", asciiDomain, "err", err)
	}
	if res != nil && len(res.Endpoints) > 0 {
		reportResolve(true)
		if now.Sub(res.UpdatedAt) > r.cfg.CacheTTL {
			r.refreshInBackground(asciiDomain)
		}
		return selectEndpoint(res, now)
	}
	reportResolve(false)

	res, err = r.refresh(ctx, asciiDomain)
	if err != nil {
		return nil, err
	}
	return selectEndpoint(res, now)
}

// MarkInvalid excludes ep from domain resolution results during d.
func (r *Resolver) MarkInvalid(ctx context.Context, domain string, ep *Endpoint, d time.Duration) error {
	asciiDomain, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return err
	}
	res, err := r.cache.FetchResult(ctx, asciiDomain)
	if err != nil {
		return err
	}
	if res == nil || !res.MarkInvalid(ep, r.nowFn().Add(d)) {
		return nil
	}
	reportMarkInvalid()

	level.Info(r.logger).Log("msg", "endpoint marked as invalid", "domain", asciiDomain, "endpoint", ep.Address(), "duration", d)
	return r.cache.UpsertResult(ctx, res)
}

func (r *Resolver) refreshInBackground(domain string) {
	r.mu.Lock()
	if _, ok := r.refreshing[domain]; ok {
		r.mu.Unlock()
		return
	}
	r.refreshing[domain] = struct{}{}
	r.mu.Unlock()

	go func() {
		defer func() {
			r.mu.Lock()
			delete(r.refreshing, domain)
			r.mu.Unlock()
		}()
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()

		if _, err := r.refresh(ctx, domain); err != nil {
			level.Warn(r.logger).Log("msg", "failed to refresh SRV records", "domain", domain, "err", err)
		}
	}()
}

func (r *Resolver) refresh(ctx context.Context, domain string) (*Result, error) {
	v, err := r.cb.Execute(func() (interface{}, error) {
		return r.lookUp(ctx, domain)
	})
	if err != nil {
		reportLookUp(false)
		return nil, err
	}
	reportLookUp(true)

	endpoints := v.([]*Endpoint)
	if len(endpoints) == 0 {
		return nil, ErrNoRecords
	}
	res, err := r.cache.FetchResult(ctx, domain)
	if err != nil || res == nil {
		res = &Result{Domain: domain}
	}
	res.Merge(endpoints, r.nowFn())

	if err := r.cache.UpsertResult(ctx, res); err != nil {
		level.Warn(r.logger).Log("msg", "failed to store SRV records", "domain", domain, "err", err)
	}
	return res, nil
}

func (r *Resolver) lookUp(ctx context.Context, domain string) ([]*Endpoint, error) {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	tlsAddrs, tlsErr := r.lookUpService(ctx, directTLSService, domain, true)
	addrs, err := r.lookUpService(ctx, startTLSService, domain, false)
	if tlsErr != nil && err != nil {
		return nil, err
	}
	return append(tlsAddrs, addrs...), nil
}

func (r *Resolver) lookUpService(ctx context.Context, service, domain string, directTLS bool) ([]*Endpoint, error) {
	_, addrs, err := r.lookUpFn(ctx, service, "tcp", domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return nil, nil
		}
		return nil, err
	}
	var endpoints []*Endpoint
	for _, addr := range addrs {
		if addr.Target == "." {
			continue // service explicitly not available
		}
		endpoints = append(endpoints, &Endpoint{
			Host:      strings.TrimSuffix(addr.Target, "."),
			Port:      int(addr.Port),
			Priority:  addr.Priority,
			Weight:    addr.Weight,
			DirectTLS: directTLS,
		})
	}
	return endpoints, nil
}

func selectEndpoint(res *Result, t time.Time) (*Endpoint, error) {
	ep := res.Endpoint(t)
	if ep == nil {
		return nil, ErrNoValidEndpoint
	}
	cp := *ep
	return &cp, nil
}
