package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/matzehuels/repolens/pkg/errors"
	"github.com/matzehuels/repolens/pkg/integrations/github"
	"github.com/matzehuels/repolens/pkg/workflow"
)

// Repos is the read surface the server needs. *repodata.Service implements it.
type Repos interface {
	GetReadme(ctx context.Context, repo string) (string, error)
	GetOpenIssues(ctx context.Context, repo string) ([]github.Record, error)
	GetOpenPullRequests(ctx context.Context, repo string) ([]github.Record, error)
}

type queryResponse struct {
	ID      string                `json:"id"`
	Answer  string                `json:"answer"`
	Steps   []string              `json:"steps"`
	Context *workflow.RepoContext `json:"context,omitempty"`
}

type readmeResponse struct {
	Repo   string `json:"repo"`
	Readme string `json:"readme"`
}

type errorResponse struct {
	Code  apperrors.Code `json:"code"`
	Error string         `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req workflow.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if req.Repo != "" {
		repo, err := github.NormalizeRepoRef(req.Repo)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		req.Repo = repo
	}

	res, err := s.workflow.Run(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, queryResponse{
		ID:      RequestID(r.Context()),
		Answer:  res.Answer,
		Steps:   res.Steps,
		Context: res.Context,
	})
}

func (s *Server) handleReadme(w http.ResponseWriter, r *http.Request) {
	repo, ok := s.repoParam(w, r)
	if !ok {
		return
	}
	text, err := s.repos.GetReadme(r.Context(), repo)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, readmeResponse{Repo: repo, Readme: text})
}

func (s *Server) handleIssues(w http.ResponseWriter, r *http.Request) {
	s.handleList(w, r, s.repos.GetOpenIssues)
}

func (s *Server) handlePulls(w http.ResponseWriter, r *http.Request) {
	s.handleList(w, r, s.repos.GetOpenPullRequests)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request, get func(context.Context, string) ([]github.Record, error)) {
	repo, ok := s.repoParam(w, r)
	if !ok {
		return
	}
	records, err := get(r.Context(), repo)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []github.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) repoParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, name := chi.URLParam(r, "owner"), chi.URLParam(r, "name")
	if err := github.ValidateRepoRef(owner, name); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidRepo, err, "invalid repo %s/%s", owner, name))
		return "", false
	}
	return owner + "/" + name, true
}

// statusFor maps an error code to an HTTP status.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidRepo:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUpstream, apperrors.ErrCodeNetwork:
		return http.StatusBadGateway
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
		if errors.Is(err, context.DeadlineExceeded) {
			code = apperrors.ErrCodeTimeout
		}
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "code", code, "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Error: apperrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
