package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/repolens/pkg/httputil"
	"github.com/matzehuels/repolens/pkg/integrations"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com"

	// APIVersion is sent as X-GitHub-Api-Version on every request.
	APIVersion = "2022-11-28"

	// PageSize is the fixed per_page for list endpoints. Only the first page
	// is ever requested.
	PageSize = 100
)

// Client provides read access to repository data on GitHub.
// Each call is a single request; it never retries and never caches.
type Client struct {
	*integrations.Client
	baseURL string
}

// Option configures a Client.
type Option func(*config)

type config struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// WithBaseURL overrides the API endpoint, for GitHub Enterprise Server or tests.
func WithBaseURL(u string) Option {
	return func(c *config) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient sets the underlying HTTP client. It takes precedence over
// [WithTimeout].
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) { c.httpClient = hc }
}

// WithTimeout bounds each request. Defaults to [httputil.DefaultTimeout].
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests (lower rate limits).
func NewClient(token string, opts ...Option) *Client {
	cfg := config{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.httpClient == nil {
		cfg.httpClient = httputil.NewClient(cfg.timeout)
	}

	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": APIVersion,
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	return &Client{
		Client:  integrations.NewClient(cfg.httpClient, headers),
		baseURL: cfg.baseURL,
	}
}

// BaseURL returns the API endpoint the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Readme fetches the repository's README resource. repo is "owner/name".
func (c *Client) Readme(ctx context.Context, repo string) (*ReadmeResponse, error) {
	var data ReadmeResponse
	if err := c.Fetch(ctx, "/repos/"+repo+"/readme", &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// OpenIssues fetches the first page of open issues. GitHub includes pull
// requests in this listing; they are returned as-is.
func (c *Client) OpenIssues(ctx context.Context, repo string) ([]Record, error) {
	return c.list(ctx, repo, "issues")
}

// OpenPullRequests fetches the first page of open pull requests.
func (c *Client) OpenPullRequests(ctx context.Context, repo string) ([]Record, error) {
	return c.list(ctx, repo, "pulls")
}

func (c *Client) list(ctx context.Context, repo, resource string) ([]Record, error) {
	path := fmt.Sprintf("/repos/%s/%s?state=open&per_page=%d", repo, resource, PageSize)
	var data []Record
	if err := c.Fetch(ctx, path, &data); err != nil {
		return nil, err
	}
	if data == nil {
		// A JSON null body still means "no items".
		data = []Record{}
	}
	return data, nil
}

// Fetch GETs path relative to the base URL and decodes the JSON body into v.
func (c *Client) Fetch(ctx context.Context, path string, v any) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.Get(ctx, c.baseURL+path, v)
}
