package cache

import (
	"context"
	"time"
)

// NullCache discards every report it is given and always misses. It backs
// --no-cache runs and the "none" backend, where every scenario must be
// re-evaluated.
type NullCache struct{}

// NewNullCache creates a cache that never stores anything.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always reports a miss, forcing a fresh validation.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the report.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing; there is never anything to remove.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
