package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/repolens/pkg/errors"
)

// Config is the resolved configuration. The TOML layout is:
//
//	token        = "ghp_..."
//	cache_url    = "redis://localhost:6379/0"
//	cache_prefix = "team-a:"   # or "token" to scope keys per token
//	base_url     = "https://api.github.com"
//	timeout      = "10s"
//
//	[server]
//	addr = ":8000"
type Config struct {
	Token       string        `toml:"token"`
	CacheURL    string        `toml:"cache_url"`
	CachePrefix string        `toml:"cache_prefix"`
	BaseURL     string        `toml:"base_url"`
	Timeout     time.Duration `toml:"timeout"`
	Server      ServerConfig  `toml:"server"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LoadConfig reads the TOML file at path. A missing file, or an empty path,
// yields a zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown config key %q in %s", undec[0].String(), path)
	}
	if cfg.Timeout < 0 {
		return Config{}, apperrors.New(apperrors.ErrCodeInvalidConfig, "timeout must not be negative")
	}
	if cfg.BaseURL != "" {
		if err := apperrors.ValidateURL(cfg.BaseURL); err != nil {
			return Config{}, fmt.Errorf("base_url: %w", err)
		}
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. REPOLENS_CACHE_URL takes
// precedence over REDIS_URL.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("GITHUB_TOKEN"); v != "" {
		c.Token = v
	}
	if v := getenv("REPOLENS_CACHE_URL"); v != "" {
		c.CacheURL = v
	} else if v := getenv("REDIS_URL"); v != "" {
		c.CacheURL = v
	}
	if v := getenv("REPOLENS_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

// Merge overrides fields with the non-zero fields of o.
func (c *Config) Merge(o Config) {
	if o.Token != "" {
		c.Token = o.Token
	}
	if o.CacheURL != "" {
		c.CacheURL = o.CacheURL
	}
	if o.CachePrefix != "" {
		c.CachePrefix = o.CachePrefix
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.Server.Addr != "" {
		c.Server.Addr = o.Server.Addr
	}
}
