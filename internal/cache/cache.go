// Package cache stores raw model responses keyed by a hash of their input,
// so repeated passages skip the analysis call.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Cache is a string key-value store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value for ttl. A zero ttl keeps it until evicted.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Close() error
}

// Key derives a cache key from a namespace and the input text.
func Key(namespace, text string) string {
	sum := sha256.Sum256([]byte(text))
	return "gapfill:" + namespace + ":" + hex.EncodeToString(sum[:])
}

type memoryEntry struct {
	value   string
	expires time.Time
}

// Memory is an in-process Cache. Expired entries are dropped on read and by
// a sweep on every write once the map has grown past sweepEvery entries.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

const sweepEvery = 256

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if len(m.entries) >= sweepEvery {
		for k, e := range m.entries {
			if !e.expires.IsZero() && !now.Before(e.expires) {
				delete(m.entries, k)
			}
		}
	}

	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expires = now.Add(ttl)
	}
	m.entries[key] = e
	return nil
}

// Len returns the number of stored entries, including expired ones not yet
// swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) Close() error { return nil }
