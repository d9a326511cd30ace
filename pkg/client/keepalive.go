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
	"sync"
	"time"
)

// keepAlive invokes fn periodically while started.
type keepAlive struct {
	interval time.Duration
	fn       func()

	mu  sync.Mutex
	gen uint64
	tm  *time.Timer
}

func newKeepAlive(interval time.Duration, fn func()) *keepAlive {
	return &keepAlive{interval: interval, fn: fn}
}

func (k *keepAlive) start() {
	if k.interval <= 0 {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	k.stopLocked()
	k.schedule(k.gen)
}

func (k *keepAlive) stop() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.stopLocked()
}

func (k *keepAlive) stopLocked() {
	k.gen++
	if k.tm != nil {
		k.tm.Stop()
		k.tm = nil
	}
}

func (k *keepAlive) schedule(gen uint64) {
	k.tm = time.AfterFunc(k.interval, func() {
		k.mu.Lock()
		if gen != k.gen {
			k.mu.Unlock()
			return
		}
		k.schedule(gen)
		k.mu.Unlock()

		k.fn()
	})
}
