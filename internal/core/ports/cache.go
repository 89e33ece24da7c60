// internal/core/ports/cache.go
package ports

import (
	"context"
	"time"
)

// CacheRepository is the read-through cache in front of resolved stock levels
// and the dashboard summary. Keys are relative; the adapter adds its prefix.
type CacheRepository interface {
	// GetOrSet decodes key into dest. On a miss it calls fetch and stores the
	// result for ttl before decoding it into dest.
	GetOrSet(ctx context.Context, key string, dest interface{},
		fetch func() (interface{}, error), ttl time.Duration) error

	// Delete drops exact keys, DeletePattern every key matching a glob
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error

	// Generation reads the counter at key, zero when it was never bumped.
	// Entries keyed under an old generation are never read again, so a fill
	// that raced an invalidation cannot resurrect stale data.
	Generation(ctx context.Context, key string) (int64, error)
	BumpGeneration(ctx context.Context, key string) error
}
