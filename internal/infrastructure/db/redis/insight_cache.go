package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultInsightTTL = 24 * time.Hour

// InsightCache stores generated insight texts with a TTL.
// Key format: insight:<key>
type InsightCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInsightCache creates an InsightCache; ttl <= 0 means 24h.
func NewInsightCache(client *redis.Client, ttl time.Duration) *InsightCache {
	if ttl <= 0 {
		ttl = defaultInsightTTL
	}
	return &InsightCache{client: client, ttl: ttl}
}

// Get reports whether a text is cached under key.
func (c *InsightCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("insight cache get: %w", err)
	}
	return val, true, nil
}

// Set stores value under key (expires after ttl).
func (c *InsightCache) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, c.key(key), value, c.ttl).Err()
}

func (c *InsightCache) key(key string) string {
	return "insight:" + key
}
