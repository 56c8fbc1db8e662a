// Package repodata serves repository README, open issues and open pull
// requests from GitHub through an optional read-through cache.
//
// # Cache-aside
//
// Every operation follows the same steps:
//
//  1. Derive the key from a fixed namespace and the repository,
//     e.g. "readme:golang/go", "issues:golang/go", "pulls:golang/go".
//  2. On a hit, decode and return the stored value. No request is made and
//     the value may be up to TTL old.
//  3. On a miss, fetch from GitHub. On success store the value with the TTL
//     (one hour by default) and return it. On failure return the error and
//     store nothing, so the next call asks GitHub again.
//
// The cache is optional. Passing nil, or a backend that fails on every call,
// gives the same results as a working cache, only slower.
//
// # Usage
//
//	client := github.NewClient(token)
//	c := cache.Open(ctx, os.Getenv("REPOLENS_CACHE_URL"), logger)
//	defer c.Close()
//
//	svc := repodata.New(client, c, repodata.WithLogger(logger))
//	readme, err := svc.GetReadme(ctx, "golang/go")
//
// # Errors
//
// Upstream failures are returned as produced by the integrations package:
// use errors.Is with integrations.ErrUnauthorized, ErrForbidden,
// ErrNotFound, ErrUpstream or ErrNetwork. An empty repository yields an
// INVALID_REPO error from the errors package without touching cache or
// network.
package repodata
