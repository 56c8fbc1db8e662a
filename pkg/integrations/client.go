package integrations

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/repolens/pkg/httputil"
)

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 4 << 10

// Client provides shared HTTP functionality for upstream API clients.
// It applies default headers and maps response statuses to the error
// taxonomy in this package. It never retries and never caches.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client with the given HTTP client and default headers.
// Headers are applied to all requests made through this client.
// A nil httpClient uses [httputil.NewClient] with the default timeout.
func NewClient(httpClient *http.Client, headers map[string]string) *Client {
	if httpClient == nil {
		httpClient = httputil.NewClient(0)
	}
	return &Client{
		http:    httpClient,
		headers: headers,
	}
}

// Header returns the default value of header key.
func (c *Client) Header(key string) string {
	return c.headers[key]
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return &networkError{err: err}
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &networkError{err: err}
	}

	if err := checkStatus(resp, url); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

// checkStatus maps a response to an error, in the order 401, 403, 404,
// other non-2xx. Any 2xx is success.
func checkStatus(resp *http.Response, url string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return newStatusError(resp.StatusCode, url, errorMessage(resp.Body))
}

// errorMessage extracts the "message" field GitHub puts in error bodies.
func errorMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&body); err != nil {
		return ""
	}
	return body.Message
}
