// Package cache tracks the cache namespaces this service owns. Maintenance
// operations resolve through the registry, so a purge can only ever hit a
// cache that was explicitly registered here.
package cache

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/homevista/assetopt/internal/domain"
)

// Purger deletes every entry of a named cache. *redis.Store satisfies this
// interface.
type Purger interface {
	Purge(ctx context.Context, cache string) (int64, error)
}

// Registry is the authoritative list of caches owned by this service.
type Registry struct {
	store Purger

	mu     sync.RWMutex
	caches map[string]domain.Cache
}

// NewRegistry creates an empty Registry backed by the given store.
func NewRegistry(store Purger) *Registry {
	return &Registry{
		store:  store,
		caches: make(map[string]domain.Cache),
	}
}

// Register adds a cache under the given name. Registering an existing name
// fails with domain.ErrConflict.
func (r *Registry) Register(name string, class domain.CacheClass, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.caches[name]; ok {
		return fmt.Errorf("cache.Registry.Register: %q: %w", name, domain.ErrConflict)
	}

	r.caches[name] = domain.Cache{
		Name:      name,
		Class:     class,
		TTL:       ttl,
		CreatedAt: time.Now(),
	}
	return nil
}

// Get returns the named cache, or false if it was never registered.
func (r *Registry) Get(name string) (domain.Cache, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.caches[name]
	return c, ok
}

// List returns all registered caches sorted by name.
func (r *Registry) List() []domain.Cache {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Cache, 0, len(r.caches))
	for _, c := range r.caches {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Purge deletes every entry of the named cache. Unregistered names fail with
// domain.ErrNotFound before any store access.
func (r *Registry) Purge(ctx context.Context, name string) (int64, error) {
	if _, ok := r.Get(name); !ok {
		return 0, fmt.Errorf("cache.Registry.Purge: %q: %w", name, domain.ErrNotFound)
	}

	n, err := r.store.Purge(ctx, name)
	if err != nil {
		return n, fmt.Errorf("cache.Registry.Purge: %w", err)
	}
	return n, nil
}

// PurgeClass purges every registered cache of the given class and returns the
// total entry count deleted.
func (r *Registry) PurgeClass(ctx context.Context, class domain.CacheClass) (int64, error) {
	var total int64
	for _, c := range r.List() {
		if c.Class != class {
			continue
		}
		n, err := r.Purge(ctx, c.Name)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
