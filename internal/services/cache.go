package services

import (
	"sync"
	"time"
)

// memoCache is a minimal TTL memoization cache for fetched provider
// payloads. It holds decoded values, not response bytes, and evicts
// lazily on read; the working set is bounded by symbols actually
// requested, so there is no background sweeper.
type memoCache struct {
	mu      sync.RWMutex
	entries map[string]memoEntry
}

type memoEntry struct {
	value     any
	expiresAt time.Time
}

func newMemoCache() *memoCache {
	return &memoCache{entries: make(map[string]memoEntry)}
}

func (c *memoCache) get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

func (c *memoCache) put(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = memoEntry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}
