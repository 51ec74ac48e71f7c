package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homevista/assetopt/internal/cache"
	"github.com/homevista/assetopt/internal/domain"
)

type mockPurger struct {
	purged    []string
	purgeFunc func(ctx context.Context, name string) (int64, error)
}

func (m *mockPurger) Purge(ctx context.Context, name string) (int64, error) {
	m.purged = append(m.purged, name)
	if m.purgeFunc != nil {
		return m.purgeFunc(ctx, name)
	}
	return 1, nil
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	t.Run("happy path", func(t *testing.T) {
		t.Parallel()

		r := cache.NewRegistry(&mockPurger{})
		require.NoError(t, r.Register("images", domain.CacheClassImages, time.Hour))

		c, ok := r.Get("images")
		require.True(t, ok)
		assert.Equal(t, "images", c.Name)
		assert.Equal(t, domain.CacheClassImages, c.Class)
		assert.Equal(t, time.Hour, c.TTL)
		assert.False(t, c.CreatedAt.IsZero())
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		t.Parallel()

		r := cache.NewRegistry(&mockPurger{})
		require.NoError(t, r.Register("images", domain.CacheClassImages, time.Hour))

		err := r.Register("images", domain.CacheClassImages, time.Hour)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestRegistryList(t *testing.T) {
	t.Parallel()

	r := cache.NewRegistry(&mockPurger{})
	require.NoError(t, r.Register("pages", domain.CacheClassPages, time.Hour))
	require.NoError(t, r.Register("images", domain.CacheClassImages, time.Hour))

	got := r.List()
	require.Len(t, got, 2)
	assert.Equal(t, "images", got[0].Name)
	assert.Equal(t, "pages", got[1].Name)
}

func TestRegistryPurge(t *testing.T) {
	t.Parallel()

	t.Run("purges registered cache", func(t *testing.T) {
		t.Parallel()

		store := &mockPurger{purgeFunc: func(_ context.Context, _ string) (int64, error) {
			return 7, nil
		}}
		r := cache.NewRegistry(store)
		require.NoError(t, r.Register("images", domain.CacheClassImages, time.Hour))

		n, err := r.Purge(context.Background(), "images")
		require.NoError(t, err)
		assert.Equal(t, int64(7), n)
		assert.Equal(t, []string{"images"}, store.purged)
	})

	t.Run("unregistered name never reaches the store", func(t *testing.T) {
		t.Parallel()

		store := &mockPurger{}
		r := cache.NewRegistry(store)

		_, err := r.Purge(context.Background(), "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, store.purged)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		t.Parallel()

		store := &mockPurger{purgeFunc: func(_ context.Context, _ string) (int64, error) {
			return 0, errors.New("redis down")
		}}
		r := cache.NewRegistry(store)
		require.NoError(t, r.Register("images", domain.CacheClassImages, time.Hour))

		_, err := r.Purge(context.Background(), "images")
		require.Error(t, err)
	})
}

func TestRegistryPurgeClass(t *testing.T) {
	t.Parallel()

	store := &mockPurger{purgeFunc: func(_ context.Context, _ string) (int64, error) {
		return 2, nil
	}}
	r := cache.NewRegistry(store)
	require.NoError(t, r.Register("images", domain.CacheClassImages, time.Hour))
	require.NoError(t, r.Register("thumbnails", domain.CacheClassImages, time.Hour))
	require.NoError(t, r.Register("pages", domain.CacheClassPages, time.Hour))

	n, err := r.PurgeClass(context.Background(), domain.CacheClassImages)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.ElementsMatch(t, []string{"images", "thumbnails"}, store.purged)
}
