// Package workflow runs the question workflow: retrieving, planning,
// summarising and logging, in that order.
//
// The workflow is deliberately thin. The answer is a fixed summary string;
// the only real work is the optional retrieval of repository context
// through [repodata.Service], whose failure is logged and never aborts the
// run.
package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/repolens/pkg/errors"
	"github.com/matzehuels/repolens/pkg/integrations/github"
)

// Step names, in execution order.
const (
	StepRetrieving  = "retrieving"
	StepPlanning    = "planning"
	StepSummarising = "summarising"
	StepLogging     = "logging"
)

// Steps returns the step names in execution order.
func Steps() []string {
	return []string{StepRetrieving, StepPlanning, StepSummarising, StepLogging}
}

// RepoSource provides repository data for the retrieving step.
// *repodata.Service implements it.
type RepoSource interface {
	GetReadme(ctx context.Context, repo string) (string, error)
	GetOpenIssues(ctx context.Context, repo string) ([]github.Record, error)
	GetOpenPullRequests(ctx context.Context, repo string) ([]github.Record, error)
}

// Request is a question, optionally about one repository.
type Request struct {
	Question string `json:"question"`
	Repo     string `json:"repo,omitempty"`
}

// RepoContext summarises what the retrieving step found.
type RepoContext struct {
	Repo        string `json:"repo"`
	ReadmeBytes int    `json:"readme_bytes"`
	OpenIssues  int    `json:"open_issues"`
	OpenPulls   int    `json:"open_pulls"`
}

// Result is the outcome of a run.
type Result struct {
	Answer  string       `json:"answer"`
	Steps   []string     `json:"steps"`
	Context *RepoContext `json:"context,omitempty"`

	Duration time.Duration `json:"-"`
}

// state is threaded through the steps.
type state struct {
	req    Request
	steps  []string
	answer string
	repo   *RepoContext
}

type step struct {
	name string
	run  func(ctx context.Context, st *state)
}

// Runner executes the workflow. It is stateless apart from its
// dependencies and safe for concurrent use.
type Runner struct {
	Repos  RepoSource
	Logger *log.Logger
}

// NewRunner creates a runner. repos may be nil, in which case repository
// context is never retrieved.
func NewRunner(repos RepoSource, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Repos: repos, Logger: logger}
}

// Run executes every step in order. An empty question is rejected with
// INVALID_INPUT before any step runs. Run only fails on that validation or
// on context cancellation.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	req.Question = strings.TrimSpace(req.Question)
	req.Repo = strings.TrimSpace(req.Repo)
	if req.Question == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "question required")
	}

	start := time.Now()
	st := &state{req: req}
	for _, s := range r.pipeline() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.Logger.Info(s.name + "...")
		s.run(ctx, st)
		st.steps = append(st.steps, s.name)
	}

	return &Result{
		Answer:   st.answer,
		Steps:    st.steps,
		Context:  st.repo,
		Duration: time.Since(start),
	}, nil
}

func (r *Runner) pipeline() []step {
	return []step{
		{StepRetrieving, r.retrieve},
		{StepPlanning, func(context.Context, *state) {}},
		{StepSummarising, summarise},
		{StepLogging, r.logResult},
	}
}

func (r *Runner) retrieve(ctx context.Context, st *state) {
	if r.Repos == nil || st.req.Repo == "" {
		return
	}
	repo := st.req.Repo
	rc := &RepoContext{Repo: repo}
	found := 0

	if readme, err := r.Repos.GetReadme(ctx, repo); err != nil {
		r.Logger.Warn("readme unavailable", "repo", repo, "err", err)
	} else {
		rc.ReadmeBytes = len(readme)
		found++
	}
	if issues, err := r.Repos.GetOpenIssues(ctx, repo); err != nil {
		r.Logger.Warn("open issues unavailable", "repo", repo, "err", err)
	} else {
		rc.OpenIssues = len(issues)
		found++
	}
	if pulls, err := r.Repos.GetOpenPullRequests(ctx, repo); err != nil {
		r.Logger.Warn("open pull requests unavailable", "repo", repo, "err", err)
	} else {
		rc.OpenPulls = len(pulls)
		found++
	}

	if found == 0 {
		r.Logger.Warn("repository context unavailable", "repo", repo)
		return
	}
	st.repo = rc
}

func summarise(_ context.Context, st *state) {
	st.answer = Answer(st.req.Question)
}

func (r *Runner) logResult(_ context.Context, st *state) {
	kv := []any{"question", st.req.Question, "answer", st.answer}
	if st.repo != nil {
		kv = append(kv, "repo", st.repo.Repo, "issues", st.repo.OpenIssues, "pulls", st.repo.OpenPulls)
	}
	r.Logger.Debug("workflow complete", kv...)
}

// Answer formats the summary for a question.
func Answer(question string) string {
	return fmt.Sprintf("Summary for question: %s", question)
}
