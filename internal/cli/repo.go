package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/repolens/pkg/errors"
	"github.com/matzehuels/repolens/pkg/integrations"
	"github.com/matzehuels/repolens/pkg/integrations/github"
	"github.com/matzehuels/repolens/pkg/repodata"
)

// readmeCommand creates the readme command.
func (c *CLI) readmeCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "readme <owner/repo>",
		Short: "Print a repository's README",
		Long: `Print the decoded README of a GitHub repository.

The repository may be given as owner/repo or as a GitHub URL. Results are
cached for an hour when a cache backend is configured.`,
		Example: `  repolens readme golang/go
  repolens readme https://github.com/charmbracelet/log --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := github.NormalizeRepoRef(args[0])
			if err != nil {
				return err
			}

			svc, _, closeFn, err := c.newService(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			spinner := startFetch(ctx, cmd.ErrOrStderr(), "README", repo)
			text, err := svc.GetReadme(ctx, repo)
			spinner.Finish(err, fmt.Sprintf("Fetched README for %s (%s)", repo, formatBytes(len(text))))
			if err != nil {
				return fetchError("README", repo, err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, map[string]string{"repo": repo, "readme": text})
			}
			if text == "" {
				printWarning("%s has an empty README", repo)
				return nil
			}
			fmt.Fprint(out, text)
			if !strings.HasSuffix(text, "\n") {
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// recordKind describes one of the list commands.
type recordKind struct {
	use   string
	short string
	noun  string
	fetch func(*repodata.Service) func(context.Context, string) ([]github.Record, error)
}

func (c *CLI) issuesCommand() *cobra.Command {
	return c.listCommand(recordKind{
		use:   "issues",
		short: "List open issues of a repository",
		noun:  "open issues",
		fetch: func(s *repodata.Service) func(context.Context, string) ([]github.Record, error) {
			return s.GetOpenIssues
		},
	})
}

func (c *CLI) pullsCommand() *cobra.Command {
	return c.listCommand(recordKind{
		use:   "pulls",
		short: "List open pull requests of a repository",
		noun:  "open pull requests",
		fetch: func(s *repodata.Service) func(context.Context, string) ([]github.Record, error) {
			return s.GetOpenPullRequests
		},
	})
}

// listCommand creates the issues or pulls command.
func (c *CLI) listCommand(kind recordKind) *cobra.Command {
	var (
		asJSON      bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   kind.use + " <owner/repo>",
		Short: kind.short,
		Long: fmt.Sprintf(`List the %s of a GitHub repository.

Only the first page of up to %d items is fetched.`, kind.noun, github.PageSize),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := github.NormalizeRepoRef(args[0])
			if err != nil {
				return err
			}

			svc, _, closeFn, err := c.newService(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			spinner := startFetch(ctx, cmd.ErrOrStderr(), kind.noun, repo)
			records, err := kind.fetch(svc)(ctx, repo)
			spinner.Finish(err, fmt.Sprintf("Fetched %d %s for %s", len(records), kind.noun, repo))
			if err != nil {
				return fetchError(kind.noun, repo, err)
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				return writeJSON(out, records)
			case interactive:
				return browseRecords(fmt.Sprintf("%s · %s", repo, kind.noun), records)
			}

			if len(records) == 0 {
				printInfo("No %s in %s", kind.noun, StyleHighlight.Render(repo))
				return nil
			}
			fmt.Fprintln(out, renderRecordTable(records))
			if len(records) == github.PageSize {
				printDetail("Showing the first %d; more may exist", github.PageSize)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw records as JSON")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the list interactively")
	cmd.MarkFlagsMutuallyExclusive("json", "interactive")
	return cmd
}

// browseRecords runs the interactive list and prints the selected record.
func browseRecords(title string, records []github.Record) error {
	if len(records) == 0 {
		printInfo("Nothing open")
		return nil
	}

	p := tea.NewProgram(NewRecordListModel(title, records))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(RecordListModel)
	if !ok || fm.Selected == nil {
		printDetail("No selection made")
		return nil
	}

	r := fm.Selected
	printNewline()
	printKeyValue("Number", StyleNumber.Render(recordNumber(r)))
	printKeyValue("Title", recordString(r, "title"))
	if a := recordAuthor(r); a != "" {
		printKeyValue("Author", "@"+a)
	}
	if l := recordLabels(r); l != "" {
		printKeyValue("Labels", l)
	}
	if isPullRequest(r) {
		printKeyValue("Type", "pull request")
	}
	printKeyValue("Updated", formatRelativeTime(recordString(r, "updated_at")))
	if u := recordString(r, "html_url"); u != "" {
		printKeyValue("URL", StyleLink.Render(u))
	}
	if body := strings.TrimSpace(recordString(r, "body")); body != "" {
		printNewline()
		fmt.Println(truncate(body, 800))
	}
	return nil
}

// fetchError adds a hint for the upstream failures a user can act on.
func fetchError(what, repo string, err error) error {
	switch {
	case errors.Is(err, integrations.ErrUnauthorized):
		return apperrors.Wrap(apperrors.ErrCodeUnauthorized, err,
			"GitHub rejected the credentials; check GITHUB_TOKEN or --token")
	case errors.Is(err, integrations.ErrForbidden):
		return apperrors.Wrap(apperrors.ErrCodeForbidden, err,
			"access to %s denied or rate limit exceeded; a token raises the limit", repo)
	case errors.Is(err, integrations.ErrNotFound):
		return apperrors.Wrap(apperrors.ErrCodeNotFound, err,
			"%s not found (private repositories need a token)", repo)
	}
	return fmt.Errorf("fetch %s for %s: %w", what, repo, err)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
