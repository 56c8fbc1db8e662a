// Package pkg provides the core libraries for repolens, a cached GitHub
// repository context service.
//
// # Overview
//
// repolens answers questions about a GitHub repository by fetching its README,
// open issues and open pull requests, caching each response, and handing the
// combined context to a question-answering workflow. The pkg directory is
// organized into these areas:
//
//  1. [integrations] - HTTP client and the GitHub REST API client
//  2. [cache] - Cache backends (null, memory, file, Redis, MongoDB)
//  3. [repodata] - Cache-aside repository data service
//  4. [workflow] - Question-answering steps over repository context
//  5. [errors], [observability], [httputil], [buildinfo] - Shared plumbing
//
// # Architecture
//
//	GitHub REST API
//	       ↓
//	[integrations/github] (README, issues, pulls)
//	       ↓
//	[repodata] ←→ [cache]
//	       ↓
//	[workflow] (retrieve → plan → summarise → log)
//	       ↓
//	CLI (internal/cli) or HTTP server (internal/server)
//
// # Quick Start
//
//	gh := github.NewClient(os.Getenv("GITHUB_TOKEN"))
//	c := cache.Open(ctx, "redis://localhost:6379/0", nil)
//	defer c.Close()
//
//	svc := repodata.New(gh, c)
//	readme, err := svc.GetReadme(ctx, "octocat/Hello-World")
//
// [integrations]: github.com/matzehuels/repolens/pkg/integrations
// [cache]: github.com/matzehuels/repolens/pkg/cache
// [repodata]: github.com/matzehuels/repolens/pkg/repodata
// [workflow]: github.com/matzehuels/repolens/pkg/workflow
// [errors]: github.com/matzehuels/repolens/pkg/errors
// [observability]: github.com/matzehuels/repolens/pkg/observability
// [httputil]: github.com/matzehuels/repolens/pkg/httputil
// [buildinfo]: github.com/matzehuels/repolens/pkg/buildinfo
package pkg
