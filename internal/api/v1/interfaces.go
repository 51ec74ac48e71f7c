package v1

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/homevista/assetopt/internal/domain"
)

// CacheStore abstracts cache entry reads/writes for handler testing.
// *redis.Store satisfies this interface.
type CacheStore interface {
	Get(ctx context.Context, cache, key string) ([]byte, error)
	Set(ctx context.Context, cache, key string, val []byte, ttl time.Duration) error
}

// CacheRegistry abstracts the cache registry for handler testing.
// *cache.Registry satisfies this interface.
type CacheRegistry interface {
	Get(name string) (domain.Cache, bool)
	List() []domain.Cache
	Purge(ctx context.Context, name string) (int64, error)
}

// CacheWarmer abstracts warm job management for handler testing.
// *warm.Warmer satisfies this interface.
type CacheWarmer interface {
	Start(c domain.Cache, urls []string) domain.WarmJob
	Job(id uuid.UUID) (domain.WarmJob, bool)
}
