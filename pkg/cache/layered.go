package cache

import (
	"context"
)

// LayeredCache implements two-level cache (L1: Memory, L2: Redis).
type LayeredCache struct {
	mem    *MemoryCache
	remote Service
}

// NewLayeredCache creates a layered cache in front of remote.
func NewLayeredCache(remote Service) *LayeredCache {
	return &LayeredCache{
		mem:    NewMemoryCache(),
		remote: remote,
	}
}

// Set writes memory first so a failing remote still leaves a local fallback.
func (lc *LayeredCache) Set(ctx context.Context, key string, value []byte) error {
	_ = lc.mem.Set(ctx, key, value)
	return lc.remote.Set(ctx, key, value)
}

func (lc *LayeredCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, err := lc.mem.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err := lc.remote.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	_ = lc.mem.Set(ctx, key, v)
	return v, nil
}

func (lc *LayeredCache) Exists(ctx context.Context, key string) (bool, error) {
	if ok, _ := lc.mem.Exists(ctx, key); ok {
		return true, nil
	}
	return lc.remote.Exists(ctx, key)
}

// Close closes both cache layers.
func (lc *LayeredCache) Close() error {
	_ = lc.mem.Close()
	return lc.remote.Close()
}
