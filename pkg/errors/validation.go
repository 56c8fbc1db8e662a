package errors

import "strings"

// ValidateRepoName checks a repository identifier of the form "owner/name".
//
// Only emptiness is rejected. Malformed identifiers are passed through and
// rejected by the GitHub API itself, which surfaces them as not found.
func ValidateRepoName(repo string) error {
	if strings.TrimSpace(repo) == "" {
		return New(ErrCodeInvalidRepo, "repository cannot be empty")
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
