// internal/adapters/redis_adapter/cache.go
package redis_a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/procure-be/internal/core/ports"
)

// unlinkBatch bounds how many keys a single UNLINK carries during pattern deletes
const unlinkBatch = 200

// Cache is a read-through JSON cache on Redis. Resolved stock levels and the
// dashboard summary live here; writes to orders, snapshots and sales
// invalidate them by pattern.
type Cache struct {
	client     redis.UniversalClient
	defaultTTL time.Duration
	prefix     string
	logger     *slog.Logger
}

var _ ports.CacheRepository = (*Cache)(nil)

// NewCache namespaces every key with prefix when it is non-empty. A zero ttl
// passed to GetOrSet falls back to defaultTTL.
func NewCache(client redis.UniversalClient, defaultTTL time.Duration, prefix string, logger *slog.Logger) *Cache {
	return &Cache{
		client:     client,
		defaultTTL: defaultTTL,
		prefix:     prefix,
		logger:     logger.With(slog.String("component", "cache")),
	}
}

func (c *Cache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

// GetOrSet decodes the cached value into dest. On a miss, a Redis error or an
// undecodable entry it calls fetch and caches the result. Cache write
// failures are logged and never fail the read.
func (c *Cache) GetOrSet(ctx context.Context, key string, dest interface{}, fetch func() (interface{}, error), ttl time.Duration) error {
	full := c.key(key)

	data, err := c.client.Get(ctx, full).Bytes()
	switch {
	case err == nil:
		if err := json.Unmarshal(data, dest); err == nil {
			c.logger.DebugContext(ctx, "cache hit", slog.String("key", full))
			return nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cache entry", slog.String("key", full))
	case errors.Is(err, redis.Nil):
		c.logger.DebugContext(ctx, "cache miss", slog.String("key", full))
	default:
		c.logger.WarnContext(ctx, "cache read failed, using source",
			slog.String("key", full), slog.String("error", err.Error()))
	}

	value, err := fetch()
	if err != nil {
		return err
	}
	if data, err = json.Marshal(value); err != nil {
		return fmt.Errorf("failed to encode %s: %w", full, err)
	}

	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, full, data, ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache write failed",
			slog.String("key", full), slog.String("error", err.Error()))
	}
	return json.Unmarshal(data, dest)
}

// Delete drops the given keys
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	if err := c.client.Unlink(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

// DeletePattern drops every key matching the glob. The whole keyspace is
// scanned before anything is unlinked, then keys go out in batches.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, c.key(pattern), unlinkBatch).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys matching %s: %w", pattern, err)
	}

	for start := 0; start < len(keys); start += unlinkBatch {
		end := min(start+unlinkBatch, len(keys))
		if err := c.client.Unlink(ctx, keys[start:end]...).Err(); err != nil {
			return fmt.Errorf("failed to delete keys matching %s: %w", pattern, err)
		}
	}

	if len(keys) > 0 {
		c.logger.DebugContext(ctx, "cache invalidated",
			slog.String("pattern", pattern), slog.Int("keys", len(keys)))
	}
	return nil
}

// Generation reads the counter at key; a missing key is generation zero
func (c *Cache) Generation(ctx context.Context, key string) (int64, error) {
	n, err := c.client.Get(ctx, c.key(key)).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("failed to read generation %s: %w", key, err)
	}
	return n, nil
}

// BumpGeneration increments the counter at key
func (c *Cache) BumpGeneration(ctx context.Context, key string) error {
	if err := c.client.Incr(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to bump generation %s: %w", key, err)
	}
	return nil
}

// Ping checks if Redis is accessible
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping error: %w", err)
	}
	return nil
}
