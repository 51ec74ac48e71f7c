package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/homevista/assetopt/internal/domain"
)

const purgeScanBatch = 500

// Store is a Redis-backed cache store. Every entry lives under a cache-name
// namespace so purging one cache never touches another.
type Store struct {
	client *redis.Client
}

func New(ctx context.Context, addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("redis.Store.Close: %w", err)
	}
	return nil
}

// Get returns the entry stored under key in the named cache, or
// domain.ErrNotFound when the entry is absent or expired.
func (s *Store) Get(ctx context.Context, cache, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, EntryKey(cache, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("redis.Store.Get: %w", err)
	}
	return val, nil
}

// Set stores an entry under key in the named cache with the given TTL.
func (s *Store) Set(ctx context.Context, cache, key string, val []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, EntryKey(cache, key), val, ttl).Err(); err != nil {
		return fmt.Errorf("redis.Store.Set: %w", err)
	}
	return nil
}

// Purge deletes every entry in the named cache and returns the count of
// deleted entries. Only the exact namespace is scanned; other caches sharing
// the Redis database are untouched.
func (s *Store) Purge(ctx context.Context, cache string) (int64, error) {
	var (
		deleted int64
		cursor  uint64
	)
	pattern := EntryKey(cache, "*")

	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, purgeScanBatch).Result()
		if err != nil {
			return deleted, fmt.Errorf("redis.Store.Purge: scan: %w", err)
		}

		if len(keys) > 0 {
			n, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("redis.Store.Purge: del: %w", err)
			}
			deleted += n
		}

		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

// EntryKey returns the Redis key for an entry in the named cache.
func EntryKey(cache, key string) string {
	return "assetopt:cache:" + cache + ":" + key
}
