// Package cache provides the key/value stores behind repolens' read-through cache.
//
// Every backend implements [Cache], a small byte-oriented interface with
// per-key expiration. Callers choose a backend once at construction time with
// [Open]; when no backend is configured (or the configured one cannot be
// reached) [Open] returns a [NullCache], so code above this package never
// branches on whether caching is enabled.
//
// # Backends
//
//   - [NullCache]: no-op, every Get is a miss
//   - [MemoryCache]: in-process map, safe for concurrent use
//   - [FileCache]: one JSON file per entry under a directory
//   - [RedisCache]: Redis via go-redis, expiry enforced with SET EX
//   - [MongoCache]: MongoDB collection with a TTL index
//
// # Keys
//
// Keys are derived by a [Keyer] from a fixed [Namespace] and a repository
// identifier, e.g. "readme:owner/name". Use [NewScopedKeyer] to isolate
// tenants that share one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with per-key expiration.
//
// Get reports a miss as (nil, false, nil). Errors are reserved for backend
// failures (connection loss, I/O errors); callers in this module treat them
// as misses. Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves the value stored under key if it exists and has not expired.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
