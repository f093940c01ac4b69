package cache

import (
	"context"
	"errors"
	"log"
	"time"
)

// FallbackCache reads and writes through primary and serves from fallback
// whenever primary fails. Deletes go to both so neither keeps a stale entry.
type FallbackCache struct {
	primary  Cache
	fallback Cache
}

func NewFallbackCache(primary, fallback Cache) *FallbackCache {
	return &FallbackCache{primary: primary, fallback: fallback}
}

func (f *FallbackCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := f.primary.Get(ctx, key)
	if err == nil || errors.Is(err, ErrMiss) {
		return b, err
	}
	log.Printf("⚠️ Cache get %s failed, using in-memory fallback: %v", key, err)
	return f.fallback.Get(ctx, key)
}

func (f *FallbackCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := f.primary.Set(ctx, key, value, ttl)
	if err == nil {
		return nil
	}
	log.Printf("⚠️ Cache set %s failed, using in-memory fallback: %v", key, err)
	return f.fallback.Set(ctx, key, value, ttl)
}

func (f *FallbackCache) Delete(ctx context.Context, keys ...string) error {
	return errors.Join(f.primary.Delete(ctx, keys...), f.fallback.Delete(ctx, keys...))
}

func (f *FallbackCache) Close() error {
	return errors.Join(f.primary.Close(), f.fallback.Close())
}
