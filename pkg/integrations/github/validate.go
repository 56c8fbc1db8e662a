package github

import (
	"errors"
	"regexp"
	"strings"

	apperrors "github.com/matzehuels/repolens/pkg/errors"
	"github.com/matzehuels/repolens/pkg/integrations"
)

// Regex patterns for GitHub resource validation.
var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// ValidateOwner validates a GitHub username or organization name.
func ValidateOwner(owner string) error {
	if owner == "" {
		return errors.New("owner is required")
	}
	if !validOwner.MatchString(owner) {
		return errors.New("invalid owner format: must be 1-39 alphanumeric characters or hyphens, cannot start with hyphen")
	}
	return nil
}

// ValidateRepo validates a GitHub repository name.
func ValidateRepo(repo string) error {
	if repo == "" {
		return errors.New("repo is required")
	}
	if repo == "." || repo == ".." {
		return errors.New("invalid repo format: dot segments are not repository names")
	}
	if !validRepo.MatchString(repo) {
		return errors.New("invalid repo format: must be 1-100 alphanumeric characters, hyphens, underscores, or dots")
	}
	return nil
}

// ValidateRepoRef validates both owner and repo parameters.
func ValidateRepoRef(owner, repo string) error {
	if err := ValidateOwner(owner); err != nil {
		return err
	}
	return ValidateRepo(repo)
}

// ParseRepoRef parses a repository reference and validates both parts.
// Accepted forms are "owner/repo" and any GitHub URL that
// [integrations.NormalizeRepoURL] understands, such as
// "https://github.com/owner/repo" or "git@github.com:owner/repo.git".
// Validation failures carry the INVALID_REPO code.
func ParseRepoRef(ref string) (owner, repo string, err error) {
	s := integrations.NormalizeRepoURL(ref)
	s = strings.TrimPrefix(s, "https://github.com/")
	s = strings.TrimPrefix(s, "http://github.com/")
	s = strings.TrimSuffix(s, "/")

	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return "", "", apperrors.New(apperrors.ErrCodeInvalidRepo, "invalid repo %q: use owner/repo", ref)
	}
	owner, repo = parts[0], parts[1]
	if err := ValidateRepoRef(owner, repo); err != nil {
		return "", "", apperrors.Wrap(apperrors.ErrCodeInvalidRepo, err, "invalid repo %q", ref)
	}
	return owner, repo, nil
}

// NormalizeRepoRef parses ref like [ParseRepoRef] and returns the canonical
// "owner/repo" identifier.
func NormalizeRepoRef(ref string) (string, error) {
	owner, repo, err := ParseRepoRef(ref)
	if err != nil {
		return "", err
	}
	return owner + "/" + repo, nil
}
