package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	apperrors "github.com/matzehuels/repolens/pkg/errors"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// fetchSpinner shows progress while a repository resource is fetched and
// reports the outcome on the same line. It writes to the command's error
// stream so stdout stays clean for piping.
type fetchSpinner struct {
	w        io.Writer
	resource string
	repo     string
	start    time.Time
	now      func() time.Time

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
	mu      sync.Mutex
	width   int
}

// startFetch starts a spinner for fetching resource ("README", "open
// issues") of repo. It stops on its own when ctx is cancelled.
func startFetch(ctx context.Context, w io.Writer, resource, repo string) *fetchSpinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	s := &fetchSpinner{
		w:        w,
		resource: resource,
		repo:     repo,
		now:      time.Now,
		ctx:      spinnerCtx,
		cancel:   cancel,
		stopped:  make(chan struct{}),
	}
	s.start = s.now()
	go s.run()
	return s
}

func (s *fetchSpinner) message() string {
	return fmt.Sprintf("Fetching %s for %s...", s.resource, s.repo)
}

func (s *fetchSpinner) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			line := styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]) + " " + StyleDim.Render(s.message())
			s.mu.Lock()
			fmt.Fprint(s.w, "\r"+line)
			if n := len(line); n > s.width {
				s.width = n
			}
			s.mu.Unlock()
		}
	}
}

// stop halts the animation and clears the line. Safe to call repeatedly.
func (s *fetchSpinner) stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.stopped
		s.mu.Lock()
		if s.width > 0 {
			fmt.Fprint(s.w, "\r"+strings.Repeat(" ", s.width)+"\r")
		}
		s.mu.Unlock()
	})
}

// Finish stops the spinner and reports the fetch outcome. On success the
// summary is printed with the elapsed time; on failure the line names the
// resource and the error code, and the caller still reports err itself.
func (s *fetchSpinner) Finish(err error, summary string) {
	interrupted := s.ctx.Err() != nil
	s.stop()
	elapsed := s.now().Sub(s.start).Round(time.Millisecond)

	switch {
	case interrupted:
		fmt.Fprintf(s.w, "%s %s for %s interrupted\n",
			styleIconWarning.Render(iconWarning), s.resource, s.repo)
	case err != nil:
		code := apperrors.GetCode(err)
		if code == "" {
			code = apperrors.ErrCodeInternal
		}
		fmt.Fprintf(s.w, "%s %s for %s failed %s\n",
			styleIconError.Render(iconError), s.resource, s.repo, StyleDim.Render("("+string(code)+")"))
	default:
		fmt.Fprintf(s.w, "%s %s %s\n",
			styleIconSuccess.Render(iconSuccess), summary, StyleDim.Render("in "+elapsed.String()))
	}
}
