// Package github provides an HTTP client for the GitHub REST API.
//
// # Overview
//
// The client covers three read paths used by repolens:
//
//   - [Client.Readme]: GET /repos/{owner}/{name}/readme
//   - [Client.OpenIssues]: GET /repos/{owner}/{name}/issues?state=open&per_page=100
//   - [Client.OpenPullRequests]: GET /repos/{owner}/{name}/pulls?state=open&per_page=100
//
// List endpoints return only the first page. Items beyond the hundredth are
// not available through this client.
//
// # Usage
//
//	client := github.NewClient(os.Getenv("GITHUB_TOKEN"))
//
//	issues, err := client.OpenIssues(ctx, "golang/go")
//	if errors.Is(err, integrations.ErrForbidden) {
//	    // missing scope or rate limit exhausted
//	}
//
// Issues and pull requests come back as [Record] values: the decoded JSON
// objects, untouched. README content is returned still base64 encoded; the
// repodata package decodes it.
//
// # Authentication
//
// A GitHub personal access token is optional but recommended to avoid rate
// limits. Without a token, the client is limited to 60 requests/hour.
// With a token, the limit is 5000 requests/hour. The token is sent as
// "Authorization: Bearer <token>" and is never logged.
//
// # Errors
//
// Status codes are mapped by [integrations.Client]; see that package for the
// taxonomy. Nothing is retried.
//
// # Repository references
//
// [ParseRepoRef] and [NormalizeRepoRef] accept "owner/name" as well as
// https, ssh and git URLs, and validate both parts against GitHub's naming
// rules.
package github
