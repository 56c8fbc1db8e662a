package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "github.com/matzehuels/repolens/pkg/errors"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// lastLine returns the text after the final carriage return, which is what
// a terminal would show.
func lastLine(s string) string {
	if i := strings.LastIndex(s, "\r"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}

func TestFetchSpinnerAnimates(t *testing.T) {
	var buf syncBuffer
	s := startFetch(context.Background(), &buf, "README", "octo/hello")
	time.Sleep(200 * time.Millisecond)
	s.Finish(nil, "done")

	out := buf.String()
	if !strings.Contains(out, "Fetching README for octo/hello...") {
		t.Errorf("output = %q, want progress message", out)
	}
	if !strings.Contains(out, spinnerFrames[0]) {
		t.Errorf("output = %q, want a spinner frame", out)
	}
}

func TestFetchSpinnerFinish(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    []string
		notWant string
	}{
		{
			name: "success",
			want: []string{iconSuccess, "Fetched 3 open issues for octo/hello", "in 1.5s"},
		},
		{
			name:    "not found",
			err:     fmt.Errorf("readme: %w", apperrors.New(apperrors.ErrCodeNotFound, "no such repository")),
			want:    []string{iconError, "open issues for octo/hello failed", "(NOT_FOUND)"},
			notWant: "Fetched",
		},
		{
			name:    "uncoded error",
			err:     errors.New("boom"),
			want:    []string{iconError, "(INTERNAL_ERROR)"},
			notWant: "Fetched",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf syncBuffer
			s := startFetch(context.Background(), &buf, "open issues", "octo/hello")
			start := s.start
			s.now = func() time.Time { return start.Add(1500 * time.Millisecond) }

			s.Finish(tt.err, "Fetched 3 open issues for octo/hello")

			got := lastLine(buf.String())
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("final line = %q, want %q", got, w)
				}
			}
			if tt.notWant != "" && strings.Contains(got, tt.notWant) {
				t.Errorf("final line = %q, must not contain %q", got, tt.notWant)
			}
		})
	}
}

func TestFetchSpinnerInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf syncBuffer
	s := startFetch(ctx, &buf, "open pull requests", "octo/hello")

	cancel()
	s.Finish(context.Canceled, "")

	got := lastLine(buf.String())
	if !strings.Contains(got, "open pull requests for octo/hello interrupted") {
		t.Errorf("final line = %q, want interrupted", got)
	}
}

func TestFetchSpinnerTimeoutStopsAnimation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	var buf syncBuffer
	s := startFetch(ctx, &buf, "README", "octo/hello")

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after context deadline")
	}
	s.Finish(ctx.Err(), "")
	if got := lastLine(buf.String()); !strings.Contains(got, "interrupted") {
		t.Errorf("final line = %q, want interrupted", got)
	}
}

func TestFetchSpinnerFinishIsIdempotent(t *testing.T) {
	var buf syncBuffer
	s := startFetch(context.Background(), &buf, "README", "octo/hello")
	s.Finish(nil, "first")
	s.stop()

	if n := strings.Count(buf.String(), iconSuccess); n != 1 {
		t.Errorf("success lines = %d, want 1", n)
	}
}
