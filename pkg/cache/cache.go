package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Service stores the last known good payload per resource key. Entries are
// overwritten on write and never expire.
type Service interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}

// GetTyped reads key and unmarshals it into T.
func GetTyped[T any](ctx context.Context, c Service, key string) (T, error) {
	var out T
	raw, err := c.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return out, nil
}
