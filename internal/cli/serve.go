package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/repolens/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API.

Routes:
  GET  /health
  POST /query                        {"question": "...", "repo": "owner/name"}
  GET  /repos/{owner}/{name}/readme
  GET  /repos/{owner}/{name}/issues
  GET  /repos/{owner}/{name}/pulls

The listen address comes from --addr, $REPOLENS_ADDR or [server] addr in the
config file, and defaults to :8000.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cfg, closeFn, err := c.newService(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			if addr == "" {
				addr = cfg.Server.Addr
			}
			return server.New(svc, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8000)")
	return cmd
}
