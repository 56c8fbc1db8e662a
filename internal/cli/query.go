package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/repolens/pkg/integrations/github"
	"github.com/matzehuels/repolens/pkg/workflow"
)

// queryCommand creates the query command.
func (c *CLI) queryCommand() *cobra.Command {
	var (
		repo   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "query <question>",
		Short: "Run the question workflow",
		Long: `Run the question workflow: retrieving, planning, summarising, logging.

With --repo the retrieving step gathers the repository's README, open
issues and open pull requests first. A failed retrieval is reported but
does not stop the workflow.`,
		Example: `  repolens query "what does this project do?" --repo golang/go`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req := workflow.Request{Question: strings.Join(args, " ")}

			var repos workflow.RepoSource
			if repo != "" {
				normalized, err := github.NormalizeRepoRef(repo)
				if err != nil {
					return err
				}
				req.Repo = normalized

				svc, _, closeFn, err := c.newService(ctx)
				if err != nil {
					return err
				}
				defer closeFn()
				repos = svc
			}

			res, err := workflow.NewRunner(repos, c.Logger).Run(ctx, req)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			for _, s := range res.Steps {
				printStep(s)
			}
			if rc := res.Context; rc != nil {
				printNewline()
				printKeyValue("Repository", StyleHighlight.Render(rc.Repo))
				printKeyValue("README", formatBytes(rc.ReadmeBytes))
				printKeyValue("Issues", StyleNumber.Render(strconv.Itoa(rc.OpenIssues)))
				printKeyValue("Pulls", StyleNumber.Render(strconv.Itoa(rc.OpenPulls)))
			}
			printNewline()
			printSuccess("%s", res.Answer)
			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "repository to gather context from (owner/repo)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
