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
	"sync"
)

// Cache stores resolution results by domain.
type Cache interface {
	// FetchResult returns the cached result of domain, or nil if not present.
	FetchResult(ctx context.Context, domain string) (*Result, error)

	// UpsertResult stores a domain result.
	UpsertResult(ctx context.Context, res *Result) error
}

// MemoryCache is an in-memory Cache optionally backed by a persistent one.
type MemoryCache struct {
	mu      sync.RWMutex
	results map[string]*Result
	store   Cache
}

// NewMemoryCache returns a new MemoryCache instance. store may be nil.
func NewMemoryCache(store Cache) *MemoryCache {
	return &MemoryCache{
		results: make(map[string]*Result),
		store:   store,
	}
}

// FetchResult satisfies Cache interface.
func (c *MemoryCache) FetchResult(ctx context.Context, domain string) (*Result, error) {
	c.mu.RLock()
	res := c.results[domain]
	c.mu.RUnlock()
	if res != nil {
		return copyResult(res), nil
	}
	if c.store == nil {
		return nil, nil
	}
	res, err := c.store.FetchResult(ctx, domain)
	if err != nil || res == nil {
		return nil, err
	}
	c.mu.Lock()
	c.results[domain] = copyResult(res)
	c.mu.Unlock()
	return res, nil
}

// UpsertResult satisfies Cache interface.
func (c *MemoryCache) UpsertResult(ctx context.Context, res *Result) error {
	c.mu.Lock()
	c.results[res.Domain] = copyResult(res)
	c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	return c.store.UpsertResult(ctx, res)
}

func copyResult(res *Result) *Result {
	cp := &Result{
		Domain:    res.Domain,
		UpdatedAt: res.UpdatedAt,
		Endpoints: make([]*Endpoint, 0, len(res.Endpoints)),
	}
	for _, ep := range res.Endpoints {
		epCp := *ep
		cp.Endpoints = append(cp.Endpoints, &epCp)
	}
	return cp
}
