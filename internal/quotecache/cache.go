// Package quotecache provides caller-side memoization of quote responses.
// The calculation engine is pure, so identical requests always produce
// identical results; the cache only saves recomputation, and any failure
// degrades to computing again.
package quotecache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
)

// Cache stores serialized quote responses keyed by request digest.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// RequestDigest produces a stable cache key from any JSON-serializable
// request. Marshal errors yield an empty key, which callers treat as
// uncacheable.
func RequestDigest(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Memory is an in-process Cache, safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.entries[key]
	return val, ok
}

func (m *Memory) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}
