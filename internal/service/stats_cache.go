package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsCache holds short-lived aggregate payloads such as the dashboard
// stats.
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

type NoopStatsCache struct{}

func NewNoopStatsCache() *NoopStatsCache { return &NoopStatsCache{} }

func (NoopStatsCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NoopStatsCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NoopStatsCache) Invalidate(context.Context, string) error { return nil }

type statsCacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

type InMemoryStatsCache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]statsCacheEntry
}

func NewInMemoryStatsCache() *InMemoryStatsCache {
	return &InMemoryStatsCache{now: time.Now, entries: make(map[string]statsCacheEntry)}
}

func (c *InMemoryStatsCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), entry.payload...), true, nil
}

func (c *InMemoryStatsCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = statsCacheEntry{payload: append([]byte(nil), value...), expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *InMemoryStatsCache) Invalidate(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// RedisStatsCache shares cached aggregates across API replicas.
type RedisStatsCache struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStatsCache(client redis.UniversalClient, prefix string) *RedisStatsCache {
	if prefix == "" {
		prefix = "stats_cache"
	}
	return &RedisStatsCache{client: client, prefix: prefix}
}

func (c *RedisStatsCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

func (c *RedisStatsCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

func (c *RedisStatsCache) key(key string) string {
	return fmt.Sprintf("%s:%s", c.prefix, key)
}
