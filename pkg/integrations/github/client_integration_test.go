//go:build integration

package github

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/repolens/pkg/integrations"
)

func TestReadme_Integration(t *testing.T) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		t.Skip("GITHUB_TOKEN not set, skipping integration test")
	}

	client := NewClient(token)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tests := []struct {
		name    string
		repo    string
		wantErr error
	}{
		{"golang/go", "golang/go", nil},
		{"nonexistent", "nonexistent-owner-12345/nonexistent-repo", integrations.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readme, err := client.Readme(ctx, tt.repo)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Readme(%q) error = %v, want %v", tt.repo, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Readme(%q) error: %v", tt.repo, err)
			}
			if readme.Encoding != "base64" || readme.Content == "" {
				t.Errorf("Readme(%q) = %+v, want base64 content", tt.repo, readme)
			}
		})
	}
}

func TestOpenIssues_Integration(t *testing.T) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		t.Skip("GITHUB_TOKEN not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	issues, err := NewClient(token).OpenIssues(ctx, "golang/go")
	if err != nil {
		t.Fatalf("OpenIssues() error: %v", err)
	}
	if len(issues) == 0 || len(issues) > PageSize {
		t.Errorf("len(issues) = %d, want 1..%d", len(issues), PageSize)
	}
}
