package repodata

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/repolens/pkg/cache"
	apperrors "github.com/matzehuels/repolens/pkg/errors"
	"github.com/matzehuels/repolens/pkg/integrations/github"
	"github.com/matzehuels/repolens/pkg/observability"
)

// DefaultTTL is how long a fetched value is served from cache.
const DefaultTTL = 3600 * time.Second

// Upstream is the subset of the GitHub client the service reads through.
type Upstream interface {
	Readme(ctx context.Context, repo string) (*github.ReadmeResponse, error)
	OpenIssues(ctx context.Context, repo string) ([]github.Record, error)
	OpenPullRequests(ctx context.Context, repo string) ([]github.Record, error)
}

// Service serves repository data cache-aside: look up the key, return a hit
// as is, otherwise fetch from upstream and write the result through.
//
// Cache failures never reach the caller. A failing Get is treated as a miss
// and a failing Set is skipped; both are logged at debug level and reported
// to [observability.CacheHooks]. Upstream failures are returned unchanged
// and nothing is written for them.
//
// A Service is configured once through [New] and its options. It holds no
// locks. Two concurrent misses on the same key may both
// fetch and both write; the later write wins.
type Service struct {
	upstream Upstream
	store    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	logger   *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithKeyer sets the key derivation. Defaults to [cache.DefaultKeyer].
func WithKeyer(k cache.Keyer) Option {
	return func(s *Service) { s.keyer = k }
}

// WithTTL sets the expiry for written entries. Defaults to [DefaultTTL].
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a Service reading through client.
// If c is nil, a NullCache is used (caching disabled).
func New(client Upstream, c cache.Cache, opts ...Option) *Service {
	s := &Service{
		upstream: client,
		store:    c,
		ttl:      DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = cache.NewNullCache()
	}
	if s.keyer == nil {
		s.keyer = cache.NewDefaultKeyer()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// GetReadme returns the decoded README text for repo ("owner/name").
// A README with absent or empty content yields "".
func (s *Service) GetReadme(ctx context.Context, repo string) (string, error) {
	return cached(ctx, s, cache.NamespaceReadme, repo, func(ctx context.Context, repo string) (string, error) {
		resp, err := s.upstream.Readme(ctx, repo)
		if err != nil {
			return "", err
		}
		return DecodeContent(resp.Content)
	})
}

// GetOpenIssues returns the first page (up to 100) of open issues for repo,
// exactly as the upstream returned them.
func (s *Service) GetOpenIssues(ctx context.Context, repo string) ([]github.Record, error) {
	return cached(ctx, s, cache.NamespaceIssues, repo, s.upstream.OpenIssues)
}

// GetOpenPullRequests returns the first page (up to 100) of open pull
// requests for repo, exactly as the upstream returned them.
func (s *Service) GetOpenPullRequests(ctx context.Context, repo string) ([]github.Record, error) {
	return cached(ctx, s, cache.NamespacePulls, repo, s.upstream.OpenPullRequests)
}

// Invalidate deletes the cached README, issues and pull requests for repo.
// Backend failures are logged and skipped; the first one is returned after
// all three deletes were attempted.
func (s *Service) Invalidate(ctx context.Context, repo string) error {
	if err := apperrors.ValidateRepoName(repo); err != nil {
		return err
	}
	var first error
	for _, ns := range cache.Namespaces() {
		key := s.keyer.Key(ns, repo)
		if err := s.store.Delete(ctx, key); err != nil {
			s.cacheError(ctx, "delete", ns, key, err)
			if first == nil {
				first = err
			}
			continue
		}
		s.logger.Debug("cache entry evicted", "key", key)
	}
	return first
}

// cached implements the read-through algorithm shared by all operations.
// The stored bytes are the JSON encoding of exactly the value returned on a
// miss, so hit and miss paths agree.
func cached[T any](ctx context.Context, s *Service, ns cache.Namespace, repo string, fetch func(context.Context, string) (T, error)) (T, error) {
	var zero T
	if err := apperrors.ValidateRepoName(repo); err != nil {
		return zero, err
	}
	key := s.keyer.Key(ns, repo)
	hooks := observability.Cache()

	data, hit, err := s.store.Get(ctx, key)
	switch {
	case err != nil:
		s.cacheError(ctx, "get", ns, key, err)
	case hit:
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			s.cacheError(ctx, "decode", ns, key, err)
			break
		}
		hooks.OnCacheHit(ctx, string(ns))
		s.logger.Debug("cache hit", "key", key)
		return v, nil
	}
	hooks.OnCacheMiss(ctx, string(ns))
	s.logger.Debug("cache miss", "key", key)

	v, err := fetch(ctx, repo)
	if err != nil {
		return zero, err
	}

	if data, err := json.Marshal(v); err != nil {
		s.cacheError(ctx, "encode", ns, key, err)
	} else if err := s.store.Set(ctx, key, data, s.ttl); err != nil {
		s.cacheError(ctx, "set", ns, key, err)
	} else {
		hooks.OnCacheSet(ctx, string(ns), len(data))
	}
	return v, nil
}

func (s *Service) cacheError(ctx context.Context, op string, ns cache.Namespace, key string, err error) {
	observability.Cache().OnCacheError(ctx, op, string(ns), err)
	s.logger.Debug("cache "+op+" failed, continuing without cache", "key", key, "err", err)
}

// DecodeContent decodes the base64 content of a README resource. GitHub
// wraps the encoding with newlines, which are ignored. Empty content
// decodes to "". Content that is not valid UTF-8 is rejected: it would not
// survive the JSON round trip through the cache unchanged.
func DecodeContent(content string) (string, error) {
	if content == "" {
		return "", nil
	}
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, content)
	raw, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeUpstream, err, "decode readme content")
	}
	if !utf8.Valid(raw) {
		return "", apperrors.New(apperrors.ErrCodeUpstream, "decode readme content: not valid UTF-8")
	}
	return string(raw), nil
}
