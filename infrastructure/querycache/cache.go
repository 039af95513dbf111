// Package querycache provides a process-wide, key-addressed cache for
// query results. Keys come from the view package and form a prefix
// hierarchy, so a mutation can invalidate whole families of cached views
// with one call. Concurrent reads of the same key share a single fetch.
package querycache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/view"
)

// FetchFunc loads a value when the cache has no fresh entry for its key.
type FetchFunc func(ctx context.Context) (any, error)

// entry is one cached slot.
type entry struct {
	value     any
	fetchedAt time.Time
}

// Option is a functional option for Cache.
type Option func(*Cache)

// WithTTL sets how long an entry stays fresh.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// Cache is a TTL-bounded, prefix-invalidating query cache. The zero value
// is not usable; create one with New.
//
// There is exactly one authoritative copy per key: readers get what the
// cache holds, and all writes (fetch results, optimistic edits) go through
// key-addressed slots.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
	group   singleflight.Group

	statsMu sync.Mutex
	stats   Stats
}

// Stats counts cache traffic.
type Stats struct {
	Hits          int64
	Misses        int64
	Invalidations int64
}

// New creates an empty cache.
func New(options ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     5 * time.Minute,
		now:     time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// GetOrFetch returns the cached value for the key, fetching it when the
// entry is missing or stale. Concurrent callers for the same key while a
// fetch is outstanding attach to that fetch rather than issuing another.
// A failed fetch caches nothing.
func (c *Cache) GetOrFetch(ctx context.Context, key view.Key, fetch FetchFunc) (any, error) {
	addr := key.String()

	if value, ok := c.lookup(addr); ok {
		c.count(func(s *Stats) { s.Hits++ })
		return value, nil
	}
	c.count(func(s *Stats) { s.Misses++ })

	value, err, _ := c.group.Do(addr, func() (any, error) {
		// A fetch that finished while this caller waited on the
		// singleflight lock already populated the slot.
		if value, ok := c.lookup(addr); ok {
			return value, nil
		}
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.store(addr, value)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Peek returns the cached value without fetching. The second result
// reports whether a fresh entry was present.
func (c *Cache) Peek(key view.Key) (any, bool) {
	return c.lookup(key.String())
}

// Put writes a value directly into the key's slot, as after a mutation
// returning the updated entity.
func (c *Cache) Put(key view.Key, value any) {
	c.store(key.String(), value)
}

// Update applies an in-place edit to the cached value for the key, if one
// is present. The edit function receives the current value and returns
// the replacement. A missing or stale entry is left alone: the next read
// refetches anyway.
func (c *Cache) Update(key view.Key, edit func(current any) any) bool {
	addr := key.String()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[addr]
	if !ok || c.expired(e) {
		return false
	}
	e.value = edit(e.value)
	c.entries[addr] = e
	return true
}

// Invalidate removes every entry whose key extends one of the given
// prefixes. Invalidating a prefix with no entries is a no-op. Returns
// the number of entries removed.
func (c *Cache) Invalidate(prefixes ...view.Key) int {
	if len(prefixes) == 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for addr := range c.entries {
		if addrHasPrefix(addr, prefixes) {
			delete(c.entries, addr)
			removed++
		}
	}
	if removed > 0 {
		c.count(func(s *Stats) { s.Invalidations += int64(removed) })
	}
	return removed
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of live entries, expired ones included until the
// next sweep.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Snapshot returns a copy of the traffic counters.
func (c *Cache) Snapshot() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// Sweep removes expired entries and returns how many were evicted.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for addr, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, addr)
			evicted++
		}
	}
	return evicted
}

// Janitor sweeps expired entries at the given interval until the context
// is cancelled.
func (c *Cache) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

func (c *Cache) lookup(addr string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[addr]
	if !ok || c.expired(e) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(addr string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[addr] = entry{value: value, fetchedAt: c.now()}
}

func (c *Cache) expired(e entry) bool {
	return c.now().Sub(e.fetchedAt) >= c.ttl
}

func (c *Cache) count(update func(*Stats)) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	update(&c.stats)
}

// addrHasPrefix reports whether the string form of a key extends any of
// the prefixes. Matching on the joined form requires a segment boundary:
// "tasks/detail/42" extends "tasks" but not "tasks/de".
func addrHasPrefix(addr string, prefixes []view.Key) bool {
	for _, prefix := range prefixes {
		p := prefix.String()
		if addr == p || strings.HasPrefix(addr, p+"/") {
			return true
		}
	}
	return false
}
