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

package auth

import (
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// SaltedPasswordCache stores SCRAM salted passwords so that repeated logins skip the key derivation.
type SaltedPasswordCache struct {
	mu      sync.RWMutex
	entries map[uint64][]byte
}

// NewSaltedPasswordCache returns an empty salted password cache.
func NewSaltedPasswordCache() *SaltedPasswordCache {
	return &SaltedPasswordCache{
		entries: make(map[uint64][]byte),
	}
}

// Get returns the salted password stored under key.
func (c *SaltedPasswordCache) Get(key uint64) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.entries[key]
	return b, ok
}

// Store associates a salted password to key.
func (c *SaltedPasswordCache) Store(key uint64, saltedPassword []byte) {
	b := make([]byte, len(saltedPassword))
	copy(b, saltedPassword)

	c.mu.Lock()
	c.entries[key] = b
	c.mu.Unlock()
}

// Delete removes key from the cache.
func (c *SaltedPasswordCache) Delete(key uint64) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes all cached entries.
func (c *SaltedPasswordCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[uint64][]byte)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *SaltedPasswordCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func saltedPasswordKey(mechanism, username, password string, salt []byte, iterations int) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(mechanism)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(username)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(password)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(salt)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(strconv.Itoa(iterations))
	return d.Sum64()
}
