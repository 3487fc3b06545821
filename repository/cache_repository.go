package repository

import (
	"context"
	"time"
)

// CacheRepository caches serialized values with a TTL. Reconciled market
// estimates go stale, so entries expire.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
