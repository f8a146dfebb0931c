// Package memory holds in-process adapters used when no external cache is configured.
package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// InsightCache is an in-process ports.InsightCache with per-entry expiry.
type InsightCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time

	// nextSweep is when Set next drops expired entries.
	nextSweep time.Time
}

// NewInsightCache creates a cache; ttl <= 0 keeps entries forever.
func NewInsightCache(ttl time.Duration) *InsightCache {
	return &InsightCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *InsightCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if now := c.now(); e.expired(now) {
		c.evict(key, now)
		return "", false, nil
	}
	return e.value, true, nil
}

func (c *InsightCache) Set(_ context.Context, key, value string) error {
	now := c.now()
	e := entry{value: value}
	if c.ttl > 0 {
		e.expiresAt = now.Add(c.ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ttl > 0 && !now.Before(c.nextSweep) {
		for k, old := range c.entries {
			if old.expired(now) {
				delete(c.entries, k)
			}
		}
		c.nextSweep = now.Add(c.ttl)
	}
	c.entries[key] = e
	return nil
}

// evict deletes key only if it is still expired; a Set may have replaced it
// after the read lock was released.
func (c *InsightCache) evict(key string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok && e.expired(now) {
		delete(c.entries, key)
	}
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}
