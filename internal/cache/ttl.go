// Package cache provides a small thread-safe TTL map used for DNS results
// and device metadata. Entries are never evicted, only aged: a stale entry
// stays readable until its owner decides to overwrite it.
package cache

import (
	"sync"
	"time"
)

// entry holds a cached value and the time it was stored.
type entry[V any] struct {
	value V
	at    time.Time
}

// TTLMap is a mutex-guarded map of string keys to timestamped values.
// Staleness is a property of the read, not the entry: callers ask whether
// a key is still fresh for a given TTL and decide what to do when it isn't.
type TTLMap[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]

	// now is replaceable in tests.
	now func() time.Time
}

// New creates an empty TTLMap.
func New[V any]() *TTLMap[V] {
	return &TTLMap[V]{
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Put stores a value for key, stamping it with the current time.
func (m *TTLMap[V]) Put(key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry[V]{value: value, at: m.now()}
}

// Get returns the value for key regardless of age.
// The second return reports whether the key has ever been stored.
func (m *TTLMap[V]) Get(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Fresh returns the value for key only if it was stored less than ttl ago.
func (m *TTLMap[V]) Fresh(key string, ttl time.Duration) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok || m.now().Sub(e.at) >= ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Stale reports whether key is missing or older than ttl.
func (m *TTLMap[V]) Stale(key string, ttl time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	return !ok || m.now().Sub(e.at) >= ttl
}

// Len returns the number of stored entries.
func (m *TTLMap[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// SetClock replaces the time source. For tests.
func (m *TTLMap[V]) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}
