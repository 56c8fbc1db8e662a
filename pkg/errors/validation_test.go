package errors

import (
	"testing"
)

func TestValidateRepoName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"owner/name", "golang/go", false},
		{"dotted", "owner/repo.js", false},
		{"malformed passes", "not-a-repo", false},

		{"empty", "", true},
		{"whitespace", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRepoName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRepoName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRepo) {
				t.Errorf("ValidateRepoName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidRepo)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://api.github.com", false},
		{"http://localhost:8080", false},
		{"", true},
		{"ftp://example.com", true},
		{"api.github.com", true},
	}

	for _, tt := range tests {
		if err := ValidateURL(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
