// Package server exposes the question workflow and the repository read
// operations over HTTP.
//
// Routes:
//
//	GET  /health                         {"status":"ok"}
//	POST /query                          {"question": "...", "repo": "owner/name"}
//	GET  /repos/{owner}/{name}/readme    {"repo", "readme"}
//	GET  /repos/{owner}/{name}/issues    [ ...records ]
//	GET  /repos/{owner}/{name}/pulls     [ ...records ]
//
// Errors are JSON objects {"code": "...", "error": "..."} with the status
// derived from the error code.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/repolens/pkg/workflow"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8000"

// Server is the HTTP API.
type Server struct {
	repos    Repos
	workflow *workflow.Runner
	logger   *log.Logger
	router   chi.Router
}

// New creates a Server. repos serves the /repos routes and feeds the
// workflow's retrieving step.
func New(repos Repos, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		repos:    repos,
		workflow: workflow.NewRunner(repos, logger),
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Post("/query", s.handleQuery)
	r.Route("/repos/{owner}/{name}", func(r chi.Router) {
		r.Get("/readme", s.handleReadme)
		r.Get("/issues", s.handleIssues)
		r.Get("/pulls", s.handlePulls)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
