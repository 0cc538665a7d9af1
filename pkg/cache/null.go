package cache

import (
	"context"
	"time"
)

// NullCache stores nothing, so every lookup goes upstream and cache-only
// searches always come back empty. It backs the "none" backend and clients
// created without a store.
type NullCache struct{}

// NewNullCache returns a cache that never hits.
func NewNullCache() Cache { return NullCache{} }

// Get always returns a cache miss.
func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (NullCache) Close() error {
	return nil
}

var _ Cache = NullCache{}
