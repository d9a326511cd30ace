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

package ratelimiter

import (
	"io"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Writer implements a shaped io.Writer.
// Writes block until the configured limiter grants enough tokens for the whole payload.
type Writer struct {
	w     io.Writer
	wLim  atomic.Value
	sleep func(time.Duration)
}

// NewWriter returns a rate limited io.Writer implementation.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, sleep: time.Sleep}
}

// Write implements io.Writer interface method.
func (lw *Writer) Write(p []byte) (int, error) {
	rLim := lw.WriteRateLimiter()
	if rLim == nil || rLim.Limit() == rate.Inf {
		return lw.w.Write(p)
	}
	var written int
	for len(p) > 0 {
		chunk := len(p)
		if b := rLim.Burst(); b > 0 && chunk > b {
			chunk = b
		}
		r := rLim.ReserveN(time.Now(), chunk)
		if d := r.Delay(); d > 0 {
			lw.sleep(d)
		}
		n, err := lw.w.Write(p[:chunk])
		written += n
		if err != nil {
			return written, err
		}
		p = p[chunk:]
	}
	return written, nil
}

// SetWriteRateLimiter sets current writer rate limit.
func (lw *Writer) SetWriteRateLimiter(wLim *rate.Limiter) {
	lw.wLim.Store(wLim)
}

// WriteRateLimiter returns previously set rate limiter.
func (lw *Writer) WriteRateLimiter() *rate.Limiter {
	if v := lw.wLim.Load(); v != nil {
		return v.(*rate.Limiter)
	}
	return nil
}
