package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCache is a thread-safe in-memory cache implementation.
type MemoryCache struct {
	mu         sync.Mutex
	data       map[string]*memoryCacheEntry
	defaultTTL time.Duration
	maxSize    int // Maximum number of entries (0 = unlimited)
	stopCh     chan struct{}
	closed     atomic.Bool

	// Statistics
	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
	size   atomic.Int64 // Approximate size in bytes
}

// memoryCacheEntry holds a cached value with its expiration time.
type memoryCacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCacheOptions configures the memory cache.
type MemoryCacheOptions struct {
	DefaultTTL      time.Duration
	MaxSize         int           // Maximum number of entries (0 = unlimited)
	CleanupInterval time.Duration // Interval for expired entry cleanup (0 = no cleanup)
}

// NewMemoryCache creates a new memory cache with the given options.
func NewMemoryCache(opts MemoryCacheOptions) *MemoryCache {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = time.Hour
	}
	c := &MemoryCache{
		data:       make(map[string]*memoryCacheEntry),
		defaultTTL: opts.DefaultTTL,
		maxSize:    opts.MaxSize,
		stopCh:     make(chan struct{}),
	}

	if opts.CleanupInterval > 0 {
		go c.cleanupLoop(opts.CleanupInterval)
	}

	return c
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}

	c.mu.Lock()
	entry, ok := c.data[key]
	if ok && time.Now().After(entry.expiresAt) {
		c.removeLocked(key, entry)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		c.misses.Add(1)
		return nil, ErrCacheMiss
	}

	c.hits.Add(1)
	// Return a copy to prevent mutation
	result := make([]byte, len(entry.value))
	copy(result, entry.value)
	return result, nil
}

// Set stores a value in the cache with the specified TTL.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	entry := &memoryCacheEntry{value: valueCopy, expiresAt: time.Now().Add(ttl)}

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.data[key]; ok {
		c.removeLocked(key, old)
	} else if c.maxSize > 0 && len(c.data) >= c.maxSize {
		c.removeExpiredLocked(time.Now())
		if len(c.data) >= c.maxSize {
			c.evictSoonestLocked()
		}
	}

	c.data[key] = entry
	c.size.Add(int64(len(valueCopy)))
	c.sets.Add(1)
	return nil
}

// Delete removes a key from the cache.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	c.mu.Lock()
	if entry, ok := c.data[key]; ok {
		c.removeLocked(key, entry)
	}
	c.mu.Unlock()
	return nil
}

// DeleteByPrefix removes all keys starting with the given prefix.
func (c *MemoryCache) DeleteByPrefix(_ context.Context, prefix string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	c.mu.Lock()
	for k, entry := range c.data {
		if strings.HasPrefix(k, prefix) {
			c.removeLocked(k, entry)
		}
	}
	c.mu.Unlock()
	return nil
}

// Clear removes all entries from the cache.
func (c *MemoryCache) Clear(_ context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	c.mu.Lock()
	c.data = make(map[string]*memoryCacheEntry)
	c.size.Store(0)
	c.mu.Unlock()
	return nil
}

// Close stops the cleanup goroutine and releases resources.
func (c *MemoryCache) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		close(c.stopCh)
	}
	return nil
}

// Stats returns current cache statistics.
func (c *MemoryCache) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	c.mu.Lock()
	items := len(c.data)
	c.mu.Unlock()

	return Stats{
		Hits:    hits,
		Misses:  misses,
		Sets:    c.sets.Load(),
		Items:   items,
		HitRate: hitRate(hits, misses),
		Size:    c.size.Load(),
	}
}

// ResetStats resets the cache statistics.
func (c *MemoryCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.sets.Store(0)
}

func (c *MemoryCache) removeLocked(key string, entry *memoryCacheEntry) {
	delete(c.data, key)
	c.size.Add(-int64(len(entry.value)))
}

func (c *MemoryCache) removeExpiredLocked(now time.Time) {
	for k, entry := range c.data {
		if now.After(entry.expiresAt) {
			c.removeLocked(k, entry)
		}
	}
}

// evictSoonestLocked drops the entry closest to expiry.
func (c *MemoryCache) evictSoonestLocked() {
	var (
		victim string
		entry  *memoryCacheEntry
	)
	for k, e := range c.data {
		if entry == nil || e.expiresAt.Before(entry.expiresAt) {
			victim, entry = k, e
		}
	}
	if entry != nil {
		c.removeLocked(victim, entry)
	}
}

// cleanupLoop periodically removes expired entries.
func (c *MemoryCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			c.removeExpiredLocked(time.Now())
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}

// Ensure MemoryCache implements Cacher and StatsProvider.
var (
	_ Cacher        = (*MemoryCache)(nil)
	_ StatsProvider = (*MemoryCache)(nil)
)
