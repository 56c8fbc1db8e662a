// Package integrations provides the shared HTTP layer for upstream API clients.
//
// # Overview
//
// [Client] issues GET requests with a fixed set of default headers, decodes
// JSON bodies, and maps response statuses onto a small error taxonomy:
//
//	401        → [ErrUnauthorized]
//	403        → [ErrForbidden] (forbidden or rate limited)
//	404        → [ErrNotFound]
//	other non-2xx → [ErrUpstream], with the status in [StatusError]
//	2xx        → body decoded as JSON
//
// Transport failures wrap [ErrNetwork]. Each call is a single attempt: no
// retry, no backoff and no inspection of rate-limit headers.
//
// Use errors.Is against the sentinels, or errors.As with [*StatusError] to
// read the status code:
//
//	var se *integrations.StatusError
//	if errors.As(err, &se) {
//	    log.Printf("upstream returned %d", se.StatusCode)
//	}
//
// The GitHub client lives in the [github] subpackage.
//
// [github]: github.com/matzehuels/repolens/pkg/integrations/github
package integrations
