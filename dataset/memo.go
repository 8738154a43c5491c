// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"sync"
	"time"
)

// DefaultTTL is how long a memoized load stays fresh: effectively one
// calendar day in a long-running process.
const DefaultTTL = 24 * time.Hour

// Clock abstracts time.Now so expiry is testable.
type Clock func() time.Time

type memoEntry[V any] struct {
	value    V
	loadedAt time.Time
}

// Memo is an explicit memoization table keyed by a call signature, each
// entry storing (value, insertion time). A lookup past the TTL triggers a
// fresh load; a failed load still replaces the entry for the interval,
// since the pipeline carries failures inside its values rather than as
// errors. There is no concurrent writer beyond the guard against redundant
// refreshes within the shared window.
type Memo[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     Clock
	entries map[string]memoEntry[V]
}

// NewMemo creates a memoization table. A zero ttl falls back to
// DefaultTTL; a nil clock falls back to time.Now.
func NewMemo[V any](ttl time.Duration, now Clock) *Memo[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if now == nil {
		now = time.Now
	}

	return &Memo[V]{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]memoEntry[V]),
	}
}

// Get returns the cached value for key, invoking load on first use or
// after expiry.
func (m *Memo[V]) Get(key string, load func() V) V {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.entries[key]; ok && m.now().Sub(entry.loadedAt) < m.ttl {
		return entry.value
	}

	value := load()
	m.entries[key] = memoEntry[V]{value: value, loadedAt: m.now()}

	return value
}

// Invalidate drops the entry for key, forcing the next Get to load.
func (m *Memo[V]) Invalidate(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
}
