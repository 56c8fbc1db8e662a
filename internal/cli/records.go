package cli

import (
	"fmt"
	"strings"

	"github.com/matzehuels/repolens/pkg/integrations/github"
)

// Field accessors for issue and pull request records. Records are opaque
// JSON objects; missing or mistyped fields read as zero values.

func recordNumber(r github.Record) string {
	if n, ok := r["number"].(float64); ok {
		return fmt.Sprintf("#%d", int(n))
	}
	return "—"
}

func recordString(r github.Record, key string) string {
	s, _ := r[key].(string)
	return s
}

func recordAuthor(r github.Record) string {
	if u, ok := r["user"].(map[string]any); ok {
		if login, ok := u["login"].(string); ok {
			return login
		}
	}
	return ""
}

func recordLabels(r github.Record) string {
	labels, _ := r["labels"].([]any)
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		if m, ok := l.(map[string]any); ok {
			if name, ok := m["name"].(string); ok {
				names = append(names, name)
			}
		}
	}
	return strings.Join(names, ", ")
}

// isPullRequest reports whether an issues-endpoint record is really a pull
// request. GitHub lists both under /issues.
func isPullRequest(r github.Record) bool {
	_, ok := r["pull_request"]
	return ok
}

func isDraft(r github.Record) bool {
	d, _ := r["draft"].(bool)
	return d
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	if n <= 1 {
		return string(rs[:n])
	}
	return string(rs[:n-1]) + "…"
}

// recordRow renders a record as a table row.
func recordRow(r github.Record) []string {
	title := recordString(r, "title")
	if isDraft(r) {
		title = "[draft] " + title
	}
	return []string{
		recordNumber(r),
		truncate(title, 60),
		recordAuthor(r),
		truncate(recordLabels(r), 30),
		formatRelativeTime(recordString(r, "updated_at")),
	}
}

var recordHeaders = []string{"#", "Title", "Author", "Labels", "Updated"}
