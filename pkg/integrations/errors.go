package integrations

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/matzehuels/repolens/pkg/errors"
)

// Sentinel errors for upstream failures. Every non-2xx response is reported
// as a [*StatusError] that unwraps to exactly one of the first four.
var (
	// ErrUnauthorized is returned for 401: credentials missing or invalid.
	ErrUnauthorized = errors.New("unauthorized: invalid or missing credentials")

	// ErrForbidden is returned for 403. GitHub uses 403 both for permission
	// failures and for exhausted rate limits; the two are not told apart.
	ErrForbidden = errors.New("forbidden: access denied or rate limit exceeded")

	// ErrNotFound is returned for 404: the repository or resource does not exist.
	ErrNotFound = errors.New("not found: repository or resource does not exist")

	// ErrUpstream is returned for any other non-2xx status.
	ErrUpstream = errors.New("upstream error")

	// ErrNetwork is returned for transport failures (timeouts, connection errors)
	// and undecodable bodies.
	ErrNetwork = errors.New("network error")
)

// StatusError describes a non-2xx upstream response.
type StatusError struct {
	StatusCode int    // HTTP status returned by the upstream
	URL        string // Request URL
	Message    string // "message" field of the error body, if any

	kind error
}

// newStatusError classifies code. 2xx codes must not reach here.
func newStatusError(code int, url, message string) *StatusError {
	var kind error
	switch code {
	case http.StatusUnauthorized:
		kind = ErrUnauthorized
	case http.StatusForbidden:
		kind = ErrForbidden
	case http.StatusNotFound:
		kind = ErrNotFound
	default:
		kind = ErrUpstream
	}
	return &StatusError{StatusCode: code, URL: url, Message: message, kind: kind}
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%v (status %d): %s", e.kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%v (status %d)", e.kind, e.StatusCode)
}

// Unwrap returns the sentinel for the status class.
func (e *StatusError) Unwrap() error { return e.kind }

// Code maps the status class to an application error code.
func (e *StatusError) Code() apperrors.Code {
	switch e.kind {
	case ErrUnauthorized:
		return apperrors.ErrCodeUnauthorized
	case ErrForbidden:
		return apperrors.ErrCodeForbidden
	case ErrNotFound:
		return apperrors.ErrCodeNotFound
	default:
		return apperrors.ErrCodeUpstream
	}
}

// networkError marks transport failures so they carry a code too.
type networkError struct{ err error }

func (e *networkError) Error() string       { return fmt.Sprintf("%v: %v", ErrNetwork, e.err) }
func (e *networkError) Unwrap() []error     { return []error{ErrNetwork, e.err} }
func (e *networkError) Code() apperrors.Code { return apperrors.ErrCodeNetwork }
