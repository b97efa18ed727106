// Package memory provides an in-process plan cache.
//
// It is the default cache for the solver: planning is deterministic, so
// repeated requests within one process hash to the same key and a small
// LRU map absorbs them without any external dependency.
package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/felixgeelhaar/goap-go/domain/cache"
)

// DefaultMaxSize is the default cap on cached plans.
const DefaultMaxSize = 4096

// entry holds a cached plan with its expiration and last access time.
type entry struct {
	value     []byte
	expiresAt time.Time
	accessAt  time.Time
}

// expired reports whether the entry is past its TTL.
func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Cache is an in-memory implementation of cache.Cache with TTL
// expiration and LRU eviction at capacity.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	maxSize int
	closed  bool

	hits   atomic.Int64
	misses atomic.Int64

	janitorEvery time.Duration
	janitorStop  chan struct{}
	janitorWg    sync.WaitGroup
}

// Option configures the cache.
type Option func(*Cache)

// WithMaxSize caps the number of cached plans. The least recently used
// entry is evicted to make room. A size of zero or less means unbounded.
func WithMaxSize(n int) Option {
	return func(c *Cache) {
		c.maxSize = n
	}
}

// WithJanitor sweeps expired entries in the background at the given
// interval. Without it expired entries are dropped lazily on access.
func WithJanitor(interval time.Duration) Option {
	return func(c *Cache) {
		c.janitorEvery = interval
	}
}

// NewCache creates a new in-memory plan cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		entries:     make(map[string]*entry),
		maxSize:     DefaultMaxSize,
		janitorStop: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.janitorEvery > 0 {
		c.startJanitor(c.janitorEvery)
	}
	return c
}

// startJanitor starts the background sweep goroutine.
func (c *Cache) startJanitor(interval time.Duration) {
	c.janitorWg.Add(1)
	go func() {
		defer c.janitorWg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-c.janitorStop:
				return
			case <-ticker.C:
				c.Cleanup()
			}
		}
	}()
}

// Get retrieves a cached plan.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, false, cache.ErrClosed
	}

	e, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		return nil, false, nil
	}

	now := time.Now()
	if e.expired(now) {
		delete(c.entries, key)
		c.misses.Add(1)
		return nil, false, nil
	}

	e.accessAt = now
	c.hits.Add(1)

	// Hand out a copy so callers cannot mutate the cached bytes.
	value := make([]byte, len(e.value))
	copy(value, e.value)
	return value, true, nil
}

// Set stores a plan in the cache.
func (c *Cache) Set(ctx context.Context, key string, value []byte, opts cache.SetOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if key == "" {
		return cache.ErrInvalidKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return cache.ErrClosed
	}

	if _, exists := c.entries[key]; !exists && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictLRU()
		if len(c.entries) >= c.maxSize {
			return cache.ErrCacheFull
		}
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	e := &entry{
		value:    valueCopy,
		accessAt: time.Now(),
	}
	if opts.TTL > 0 {
		e.expiresAt = time.Now().Add(opts.TTL)
	}

	c.entries[key] = e
	return nil
}

// Delete removes a plan from the cache.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return cache.ErrClosed
	}

	delete(c.entries, key)
	return nil
}

// Exists checks whether a non-expired entry is cached under the key.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return false, cache.ErrClosed
	}

	e, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return !e.expired(time.Now()), nil
}

// Clear removes all entries from the cache.
func (c *Cache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return cache.ErrClosed
	}

	c.entries = make(map[string]*entry)
	return nil
}

// Stats returns cache statistics.
func (c *Cache) Stats() cache.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return cache.Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Size:    int64(len(c.entries)),
		MaxSize: int64(c.maxSize),
	}
}

// evictLRU removes the least recently accessed entry.
// Must be called with the write lock held.
func (c *Cache) evictLRU() {
	var oldestKey string
	var oldestTime time.Time

	for key, e := range c.entries {
		if oldestKey == "" || e.accessAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = e.accessAt
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Cleanup removes expired entries and reports how many were dropped.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0
	}

	now := time.Now()
	var removed int
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Size returns the current number of entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the janitor and releases all entries. Operations on a
// closed cache return cache.ErrClosed.
func (c *Cache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.entries = nil
	c.mu.Unlock()

	close(c.janitorStop)
	c.janitorWg.Wait()
	return nil
}

// Ensure Cache implements cache.Cache and cache.StatsProvider.
var (
	_ cache.Cache         = (*Cache)(nil)
	_ cache.StatsProvider = (*Cache)(nil)
)
