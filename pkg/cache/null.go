package cache

import (
	"context"
	"time"
)

// NullCache is a no-op cache that never stores anything.
// It is the backend used when no cache URL is configured or the configured
// backend could not be reached, so every read goes to the upstream API.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// IsNull reports whether c is a [NullCache], i.e. caching is disabled.
func IsNull(c Cache) bool {
	_, ok := c.(*NullCache)
	return ok
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
