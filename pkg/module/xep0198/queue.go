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

package xep0198

import (
	"github.com/jackal-xmpp/stravaganza/v2"
)

type queueEntry struct {
	el stravaganza.Element
	h  uint32
}

// queue holds outgoing stanzas pending acknowledgement.
// h is the outbound counter, wrapping at 2^32.
type queue struct {
	entries []queueEntry
	h       uint32
}

func newQueue() *queue {
	return &queue{}
}

func (q *queue) push(el stravaganza.Element) uint32 {
	q.h++
	q.entries = append(q.entries, queueEntry{el: el, h: q.h})
	return q.h
}

func (q *queue) acknowledge(h uint32) int {
	j := -1
	for i, e := range q.entries {
		if serialLE(e.h, h) {
			j = i
		}
	}
	if j == -1 {
		return 0
	}
	q.entries = q.entries[j+1:]
	return j + 1
}

func (q *queue) elements() []stravaganza.Element {
	retVal := make([]stravaganza.Element, 0, len(q.entries))
	for _, e := range q.entries {
		retVal = append(retVal, e.el)
	}
	return retVal
}

func (q *queue) drain() []stravaganza.Element {
	els := q.elements()
	q.entries = nil
	return els
}

func (q *queue) len() int {
	return len(q.entries)
}

func (q *queue) reset() {
	q.entries = nil
	q.h = 0
}

// serialLE reports whether a <= b using serial number arithmetic.
func serialLE(a, b uint32) bool {
	return int32(a-b) <= 0
}
