// Package config loads runtime settings from the environment.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultAPIURL is the account API base, including its version prefix.
const DefaultAPIURL = "http://localhost:8085/api/v1"

type Config struct {
	APIURL      string        `env:"SESAME_API_URL"`
	Token       string        `env:"SESAME_TOKEN"`
	Home        string        `env:"SESAME_HOME"`
	LogLevel    string        `env:"SESAME_LOG_LEVEL, default=info"`
	HTTPTimeout time.Duration `env:"SESAME_HTTP_TIMEOUT, default=30s"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config.Load: get home dir: %w", err)
		}
		cfg.Home = filepath.Join(home, ".sesame")
	}
	return &cfg, nil
}

// LogPath returns the file the logger appends to.
func (c *Config) LogPath() string {
	return filepath.Join(c.Home, "sesame.log")
}
