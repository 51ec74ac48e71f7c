package v1_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/homevista/assetopt/internal/domain"
)

// ---------------------------------------------------------------------------
// Mock CacheStore
// ---------------------------------------------------------------------------

type mockCacheStore struct {
	getFunc func(ctx context.Context, cache, key string) ([]byte, error)
	setFunc func(ctx context.Context, cache, key string, val []byte, ttl time.Duration) error
}

func (m *mockCacheStore) Get(ctx context.Context, cache, key string) ([]byte, error) {
	if m.getFunc == nil {
		return nil, domain.ErrNotFound
	}
	return m.getFunc(ctx, cache, key)
}

func (m *mockCacheStore) Set(ctx context.Context, cache, key string, val []byte, ttl time.Duration) error {
	if m.setFunc == nil {
		return nil
	}
	return m.setFunc(ctx, cache, key, val, ttl)
}

// ---------------------------------------------------------------------------
// Mock CacheRegistry
// ---------------------------------------------------------------------------

type mockCacheRegistry struct {
	getFunc   func(name string) (domain.Cache, bool)
	listFunc  func() []domain.Cache
	purgeFunc func(ctx context.Context, name string) (int64, error)
}

func (m *mockCacheRegistry) Get(name string) (domain.Cache, bool) {
	return m.getFunc(name)
}

func (m *mockCacheRegistry) List() []domain.Cache {
	return m.listFunc()
}

func (m *mockCacheRegistry) Purge(ctx context.Context, name string) (int64, error) {
	return m.purgeFunc(ctx, name)
}

// ---------------------------------------------------------------------------
// Mock CacheWarmer
// ---------------------------------------------------------------------------

type mockCacheWarmer struct {
	startFunc func(c domain.Cache, urls []string) domain.WarmJob
	jobFunc   func(id uuid.UUID) (domain.WarmJob, bool)
}

func (m *mockCacheWarmer) Start(c domain.Cache, urls []string) domain.WarmJob {
	return m.startFunc(c, urls)
}

func (m *mockCacheWarmer) Job(id uuid.UUID) (domain.WarmJob, bool) {
	return m.jobFunc(id)
}
