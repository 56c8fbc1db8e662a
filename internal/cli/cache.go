package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/repolens/pkg/cache"
	"github.com/matzehuels/repolens/pkg/integrations/github"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached repository data",
	}

	cmd.AddCommand(c.cacheEvictCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheEvictCommand creates the "cache evict" subcommand.
func (c *CLI) cacheEvictCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "evict <owner/repo>...",
		Short: "Remove the cached README, issues and pulls of repositories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cfg, closeFn, err := c.newService(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			if cfg.CacheURL == "" {
				printInfo("No cache configured")
				return nil
			}
			for _, arg := range args {
				repo, err := github.NormalizeRepoRef(arg)
				if err != nil {
					return err
				}
				if err := svc.Invalidate(ctx, repo); err != nil {
					return fmt.Errorf("evict %s: %w", repo, err)
				}
				printSuccess("Evicted %s", StyleHighlight.Render(repo))
			}
			return nil
		},
	}
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every entry of a file:// cache",
		Long: `Delete every entry of a file:// cache.

Redis and MongoDB entries expire on their own; use "cache evict" to drop
single repositories there.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			kind, err := cache.Parse(cfg.CacheURL)
			if err != nil {
				return err
			}
			if kind != cache.KindFile {
				printInfo("Nothing to clear for %s cache", kind)
				return nil
			}

			dir := cache.FilePath(cfg.CacheURL)
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			count := 0
			err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return nil // Skip errors, continue walking
				}
				if path == dir {
					return nil
				}
				if !info.IsDir() && filepath.Ext(path) == ".json" {
					if err := os.Remove(path); err == nil {
						count++
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			// Clean up empty subdirectories
			_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
				if err != nil || path == dir {
					return nil
				}
				if info.IsDir() {
					os.Remove(path)
				}
				return nil
			})

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configured cache backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			kind, err := cache.Parse(cfg.CacheURL)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch kind {
			case cache.KindNull:
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				printInfo("No cache configured")
				printNextStep("Enable a local cache with", "--cache-url file://"+filepath.ToSlash(dir))
			case cache.KindFile:
				fmt.Fprintln(out, cache.FilePath(cfg.CacheURL))
			default:
				fmt.Fprintln(out, cache.Redact(cfg.CacheURL))
			}
			return nil
		},
	}
}
