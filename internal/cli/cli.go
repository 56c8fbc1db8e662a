package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/repolens/pkg/buildinfo"
	"github.com/matzehuels/repolens/pkg/cache"
	"github.com/matzehuels/repolens/pkg/integrations/github"
	"github.com/matzehuels/repolens/pkg/repodata"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "repolens"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	flags      Config
	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "repolens reads README, issues and pull requests from GitHub",
		Long:         `repolens reads repository READMEs, open issues and open pull requests from the GitHub API through an optional cache (Redis, MongoDB, a local directory or memory), and serves them over HTTP alongside a simple question workflow.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/repolens/config.toml)")
	pf.StringVar(&c.flags.Token, "token", "", "GitHub token (default $GITHUB_TOKEN)")
	pf.StringVar(&c.flags.CacheURL, "cache-url", "", "cache backend URL: redis://, mongodb://, file://, memory://")
	pf.StringVar(&c.flags.BaseURL, "base-url", "", "GitHub API base URL")
	pf.DurationVar(&c.flags.Timeout, "timeout", 0, "upstream request timeout (default 10s)")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable caching")

	// Register all subcommands
	root.AddCommand(c.readmeCommand())
	root.AddCommand(c.issuesCommand())
	root.AddCommand(c.pullsCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// =============================================================================
// Service Factory
// =============================================================================

// loadConfig resolves the effective configuration: flags over environment
// over config file over defaults.
func (c *CLI) loadConfig() (Config, error) {
	path := c.configPath
	if path == "" {
		path = defaultConfigPath()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}
	cfg.ApplyEnv(os.Getenv)
	cfg.Merge(c.flags)
	if c.noCache {
		cfg.CacheURL = ""
	}
	return cfg, nil
}

// newService builds the repository data service for CLI use. The returned
// close function releases the cache backend.
func (c *CLI) newService(ctx context.Context) (*repodata.Service, Config, func(), error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, Config{}, nil, err
	}

	opts := []github.Option{github.WithTimeout(cfg.Timeout)}
	if cfg.BaseURL != "" {
		opts = append(opts, github.WithBaseURL(cfg.BaseURL))
	}
	client := github.NewClient(cfg.Token, opts...)

	be := cache.Open(ctx, cfg.CacheURL, c.Logger)
	svc := repodata.New(client, be,
		repodata.WithKeyer(newKeyer(cfg)),
		repodata.WithLogger(c.Logger))

	closeFn := func() {
		if err := be.Close(); err != nil {
			c.Logger.Debug("close cache", "err", err)
		}
	}
	return svc, cfg, closeFn, nil
}

// newKeyer scopes keys by the configured prefix, or by token when
// cache_prefix is "token".
func newKeyer(cfg Config) cache.Keyer {
	switch cfg.CachePrefix {
	case "":
		return cache.NewDefaultKeyer()
	case "token":
		return cache.NewScopedKeyer(nil, cache.TokenScope(cfg.Token))
	default:
		return cache.NewScopedKeyer(nil, cfg.CachePrefix)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/repolens/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/repolens/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

func defaultConfigPath() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}
