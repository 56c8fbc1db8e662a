// Package httputil provides the HTTP client used to reach upstream APIs.
//
// # Overview
//
//   - [NewClient]: an *http.Client with a bounded timeout
//   - [Transport]: a RoundTripper that reports every request to the
//     registered [observability.HTTPHooks]
//
// The client performs exactly one attempt per request. There is no retry
// and no backoff: rate limits are absorbed by the read-through cache in
// front of the client, not by the client itself.
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Request timeout: 10 seconds ([DefaultTimeout])
//
// Usage:
//
//	client := httputil.NewClient(0) // 0 selects DefaultTimeout
//	resp, err := client.Do(req)
package httputil
