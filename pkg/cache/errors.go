package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrCacheMiss is returned by helpers that must distinguish a miss from a hit
	// but cannot use the (data, hit, err) triple.
	ErrCacheMiss = errors.New("cache miss")

	// ErrBackend wraps failures reported by a networked backend (Redis, MongoDB).
	ErrBackend = errors.New("cache backend error")

	// ErrUnsupportedScheme is returned by [Parse] for URLs with an unknown scheme.
	ErrUnsupportedScheme = errors.New("unsupported cache scheme")
)
