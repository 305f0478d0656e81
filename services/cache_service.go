package services

import (
	"sync"
	"time"
)

// cacheEntry represents a cached item with expiration
type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

func (ce *cacheEntry) isExpired() bool {
	return time.Now().After(ce.expiresAt)
}

// ViewCache is a small in-memory TTL cache for assembled raw inputs.
// Derived listing fields depend on the current date, so only the raw
// database snapshot is cached; derivation always reruns per request.
// Thread-safe with read/write locks; oldest entry is evicted at max size.
type ViewCache struct {
	cache      map[string]*cacheEntry
	mutex      sync.RWMutex
	defaultTTL time.Duration
	maxSize    int
}

// NewViewCache creates a cache with the given TTL and max entry count.
func NewViewCache(defaultTTL time.Duration, maxSize int) *ViewCache {
	return &ViewCache{
		cache:      make(map[string]*cacheEntry),
		defaultTTL: defaultTTL,
		maxSize:    maxSize,
	}
}

// Get retrieves a value from cache
func (c *ViewCache) Get(key string) (interface{}, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.cache[key]
	if !exists || entry.isExpired() {
		return nil, false
	}
	return entry.data, true
}

// Set stores a value in cache with the default TTL
func (c *ViewCache) Set(key string, value interface{}) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if len(c.cache) >= c.maxSize {
		c.evictOldest()
	}

	c.cache[key] = &cacheEntry{
		data:      value,
		expiresAt: time.Now().Add(c.defaultTTL),
	}
}

// Invalidate drops every cached entry. Called after admin mutations so
// stale listings never outlive a write.
func (c *ViewCache) Invalidate() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.cache = make(map[string]*cacheEntry)
}

// Size returns the current number of entries, expired or not.
func (c *ViewCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.cache)
}

// CleanupExpired removes expired entries and reports how many were dropped.
func (c *ViewCache) CleanupExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	removed := 0
	for key, entry := range c.cache {
		if entry.isExpired() {
			delete(c.cache, key)
			removed++
		}
	}
	return removed
}

// evictOldest removes the entry closest to expiry. Caller must hold the lock.
func (c *ViewCache) evictOldest() {
	var oldestKey string
	var oldestExpiry time.Time
	first := true
	for key, entry := range c.cache {
		if first || entry.expiresAt.Before(oldestExpiry) {
			oldestKey = key
			oldestExpiry = entry.expiresAt
			first = false
		}
	}
	if oldestKey != "" {
		delete(c.cache, oldestKey)
	}
}
