package github

import (
	"testing"

	apperrors "github.com/matzehuels/repolens/pkg/errors"
)

func TestValidateOwner(t *testing.T) {
	tests := []struct {
		owner   string
		wantErr bool
	}{
		{"golang", false},
		{"my-org", false},
		{"a", false},
		{"", true},
		{"-leading", true},
		{"has_underscore", true},
		{"0123456789012345678901234567890123456789", true},
	}

	for _, tt := range tests {
		t.Run(tt.owner, func(t *testing.T) {
			if err := ValidateOwner(tt.owner); (err != nil) != tt.wantErr {
				t.Errorf("ValidateOwner(%q) error = %v, wantErr %v", tt.owner, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRepo(t *testing.T) {
	tests := []struct {
		repo    string
		wantErr bool
	}{
		{"go", false},
		{"my_repo.js", false},
		{".github", false},
		{"", true},
		{".", true},
		{"..", true},
		{"has space", true},
		{"a/b", true},
	}

	for _, tt := range tests {
		t.Run(tt.repo, func(t *testing.T) {
			if err := ValidateRepo(tt.repo); (err != nil) != tt.wantErr {
				t.Errorf("ValidateRepo(%q) error = %v, wantErr %v", tt.repo, err, tt.wantErr)
			}
		})
	}
}

func TestParseRepoRef(t *testing.T) {
	tests := []struct {
		name      string
		ref       string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"short form", "golang/go", "golang", "go", false},
		{"https url", "https://github.com/golang/go", "golang", "go", false},
		{"https url trailing slash", "https://github.com/golang/go/", "golang", "go", false},
		{"git suffix", "https://github.com/golang/go.git", "golang", "go", false},
		{"ssh url", "git@github.com:golang/go.git", "golang", "go", false},
		{"empty", "", "", "", true},
		{"no slash", "golang", "", "", true},
		{"too many parts", "golang/go/issues", "", "", true},
		{"bad owner", "-x/go", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseRepoRef(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRepoRef(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
			if tt.wantErr {
				if !apperrors.Is(err, apperrors.ErrCodeInvalidRepo) {
					t.Errorf("ParseRepoRef(%q) code = %s, want %s", tt.ref, apperrors.GetCode(err), apperrors.ErrCodeInvalidRepo)
				}
				return
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("ParseRepoRef(%q) = (%q, %q), want (%q, %q)", tt.ref, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestNormalizeRepoRef(t *testing.T) {
	got, err := NormalizeRepoRef("git@github.com:charmbracelet/log.git")
	if err != nil {
		t.Fatalf("NormalizeRepoRef() error: %v", err)
	}
	if got != "charmbracelet/log" {
		t.Errorf("NormalizeRepoRef() = %q, want %q", got, "charmbracelet/log")
	}
}
