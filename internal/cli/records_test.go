package cli

import (
	"testing"

	"github.com/matzehuels/repolens/pkg/integrations/github"
)

func TestRecordAccessors(t *testing.T) {
	r := github.Record{
		"number":       float64(42),
		"title":        "Add feature",
		"user":         map[string]any{"login": "mona"},
		"labels":       []any{map[string]any{"name": "enhancement"}, map[string]any{"name": "p2"}},
		"pull_request": map[string]any{"url": "x"},
		"draft":        true,
	}

	if got := recordNumber(r); got != "#42" {
		t.Errorf("recordNumber() = %q", got)
	}
	if got := recordAuthor(r); got != "mona" {
		t.Errorf("recordAuthor() = %q", got)
	}
	if got := recordLabels(r); got != "enhancement, p2" {
		t.Errorf("recordLabels() = %q", got)
	}
	if !isPullRequest(r) || !isDraft(r) {
		t.Error("expected draft pull request")
	}
	if row := recordRow(r); row[1] != "[draft] Add feature" {
		t.Errorf("recordRow() title = %q", row[1])
	}
}

func TestRecordAccessorsMissingFields(t *testing.T) {
	r := github.Record{"number": "not a number", "user": nil, "labels": "oops"}

	if got := recordNumber(r); got != "—" {
		t.Errorf("recordNumber() = %q", got)
	}
	if recordAuthor(r) != "" || recordLabels(r) != "" || recordString(r, "title") != "" {
		t.Error("missing fields should read as empty")
	}
	if isPullRequest(r) || isDraft(r) {
		t.Error("plain record reported as draft pull request")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated text", 6, "trunc…"},
		{"héllo wörld", 5, "héll…"},
		{"ab", 1, "a"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 << 20, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatRelativeTime(t *testing.T) {
	if got := formatRelativeTime("not a time"); got != "not a time" {
		t.Errorf("formatRelativeTime() = %q, want input unchanged", got)
	}
	if got := formatRelativeTime("2020-01-02T00:00:00Z"); got != "Jan 2, 2020" {
		t.Errorf("formatRelativeTime() = %q", got)
	}
}
