package scraper

import (
	"sync"
	"time"
)

type cacheEntry[T any] struct {
	data     T
	storedAt time.Time
	ttl      time.Duration
}

func (e cacheEntry[T]) expired(now time.Time) bool {
	return now.Sub(e.storedAt) > e.ttl
}

// CacheStats is a diagnostic snapshot. Ages covers every resident entry,
// including expired ones that no Get or Cleanup has collected yet.
type CacheStats struct {
	Size int
	Keys []string
	Ages []time.Duration
}

// Cache is a keyed in-memory store with per-entry TTL. Eviction is lazy: an
// expired entry is structurally removed the next time its key is read, or in
// bulk by Cleanup. There is no background reaper; expired-but-unaccessed
// entries stay resident until a caller sweeps them. That is a deliberate
// memory/latency trade-off, not a bug.
type Cache[T any] struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry[T]
	defaultTTL time.Duration
}

// NewCache creates a cache whose Set uses defaultTTL.
func NewCache[T any](defaultTTL time.Duration) *Cache[T] {
	return &Cache[T]{
		entries:    make(map[string]cacheEntry[T]),
		defaultTTL: defaultTTL,
	}
}

// Get returns the value for key if it exists and has not outlived its TTL.
// An expired entry is deleted on the spot and reported as a miss.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if entry.expired(time.Now()) {
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return entry.data, true
}

// Set stores data under key with the cache's default TTL, overwriting any
// existing entry.
func (c *Cache[T]) Set(key string, data T) {
	c.SetTTL(key, data, c.defaultTTL)
}

// SetTTL stores data under key with an explicit TTL.
func (c *Cache[T]) SetTTL(key string, data T, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry[T]{data: data, storedAt: time.Now(), ttl: ttl}
}

// Has reports whether key is resident and unexpired, with the same eviction
// side effect as Get.
func (c *Cache[T]) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes key, reporting whether it was present.
func (c *Cache[T]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Clear removes all entries.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry[T])
}

// Size returns the number of resident entries, expired or not.
func (c *Cache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Keys returns the resident keys in no particular order.
func (c *Cache[T]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keysLocked()
}

func (c *Cache[T]) keysLocked() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Cleanup evicts every expired entry and returns the number removed. This is
// the only bulk-maintenance path; callers must schedule it themselves.
func (c *Cache[T]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Stats returns a diagnostic snapshot of the cache contents.
func (c *Cache[T]) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	ages := make([]time.Duration, 0, len(c.entries))
	for _, entry := range c.entries {
		ages = append(ages, now.Sub(entry.storedAt))
	}
	return CacheStats{
		Size: len(c.entries),
		Keys: c.keysLocked(),
		Ages: ages,
	}
}
