package cache

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// OpenTimeout bounds connecting to a networked backend in [Open]. A backend
// that does not answer within it is treated as unreachable.
const OpenTimeout = 3 * time.Second

// Kind identifies a cache backend.
type Kind string

// Supported backend kinds.
const (
	KindNull   Kind = "null"
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindRedis  Kind = "redis"
	KindMongo  Kind = "mongo"
)

// Parse maps a cache URL to the backend kind that would serve it.
// An empty URL selects [KindNull].
func Parse(rawURL string) (Kind, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return KindNull, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse cache url: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "redis", "rediss", "unix":
		return KindRedis, nil
	case "mongodb", "mongodb+srv":
		return KindMongo, nil
	case "file":
		return KindFile, nil
	case "memory", "mem":
		return KindMemory, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

// Open returns the backend for rawURL.
//
// Open never fails: an empty URL, an unsupported scheme or a backend that
// cannot be reached within [OpenTimeout] all yield a [NullCache], and the
// reason is logged at warn level. The returned Cache should be closed by the
// caller.
func Open(ctx context.Context, rawURL string, logger *log.Logger) Cache {
	if logger == nil {
		logger = log.Default()
	}

	kind, err := Parse(rawURL)
	if err != nil {
		logger.Warn("caching disabled", "err", err)
		return NewNullCache()
	}

	var (
		c    Cache
		oerr error
	)
	switch kind {
	case KindNull:
		logger.Debug("no cache configured, caching disabled")
		return NewNullCache()
	case KindMemory:
		c = NewMemoryCache()
	case KindFile:
		c, oerr = NewFileCache(FilePath(rawURL))
	case KindRedis, KindMongo:
		c, oerr = openNetworked(ctx, kind, rawURL)
	}
	if oerr != nil {
		logger.Warn("cache backend unavailable, caching disabled", "backend", kind, "err", oerr)
		return NewNullCache()
	}

	logger.Debug("cache backend ready", "backend", kind, "url", Redact(rawURL))
	return c
}

func openNetworked(ctx context.Context, kind Kind, rawURL string) (Cache, error) {
	ctx, cancel := context.WithTimeout(ctx, OpenTimeout)
	defer cancel()
	if kind == KindMongo {
		return NewMongoCache(ctx, rawURL)
	}
	return NewRedisCache(ctx, rawURL)
}

// Redact strips credentials from a cache URL so it can be logged.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid>"
	}
	return u.Redacted()
}

// FilePath converts a file:// URL to a local directory path.
func FilePath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	p := u.Path
	if u.Host != "" && u.Host != "localhost" {
		// file://relative/dir parses "relative" as the host.
		p = u.Host + p
	}
	return filepath.FromSlash(p)
}
