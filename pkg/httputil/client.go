package httputil

import (
	"net/http"
	"time"

	"github.com/matzehuels/repolens/pkg/observability"
)

// DefaultTimeout bounds each upstream request, covering connect, headers
// and body.
const DefaultTimeout = 10 * time.Second

// NewClient creates an HTTP client with the given timeout and an
// instrumented transport. A non-positive timeout selects [DefaultTimeout].
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &Transport{},
	}
}

// Transport wraps a base RoundTripper and emits [observability.HTTPHooks]
// events for each round trip.
type Transport struct {
	// Base is the underlying transport. Nil uses http.DefaultTransport.
	Base http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	ctx := req.Context()
	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path

	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := base.RoundTrip(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}

	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	return resp, nil
}
