// Package cli implements the repolens command-line interface.
//
// This package provides commands for reading repository data from GitHub
// (readme, issues, pulls), running the question workflow (query), serving
// the HTTP API (serve), and managing cached entries (cache). The CLI is
// built using cobra and logs via the charmbracelet/log library.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports cache hits, misses and upstream requests through the
// observability hooks registered by [RegisterHooks].
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/repolens/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// =============================================================================
// Log-backed observability hooks
// =============================================================================

// logHooks forwards cache and HTTP events to a logger at debug level.
type logHooks struct {
	logger *log.Logger
}

// RegisterHooks installs hooks that log cache and HTTP events through l.
func RegisterHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *logHooks) OnCacheHit(_ context.Context, ns string) {
	h.logger.Debug("cache hit", "namespace", ns)
}

func (h *logHooks) OnCacheMiss(_ context.Context, ns string) {
	h.logger.Debug("cache miss", "namespace", ns)
}

func (h *logHooks) OnCacheSet(_ context.Context, ns string, size int) {
	h.logger.Debug("cache set", "namespace", ns, "bytes", size)
}

func (h *logHooks) OnCacheError(_ context.Context, op, ns string, err error) {
	h.logger.Debug("cache error", "op", op, "namespace", ns, "err", err)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}
