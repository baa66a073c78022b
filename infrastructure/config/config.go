package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds process configuration for the dashboard server.
type Config struct {
	Addr       string `env:"APP_ADDR" envDefault:":8080"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"teaminsight.db"`

	// InsightAPIURL points the dashboard at a remote insight API. Empty
	// means the in-process sqlite store serves the dashboard.
	InsightAPIURL     string        `env:"INSIGHT_API_URL"`
	InsightAPITimeout time.Duration `env:"INSIGHT_API_TIMEOUT" envDefault:"10s"`

	ViewStateTTL  time.Duration `env:"VIEW_STATE_TTL" envDefault:"30m"`
	DefaultLocale string        `env:"DEFAULT_LOCALE" envDefault:"en-US"`
}

// Load reads optional .env files, then parses the environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		slog.Debug("env file not loaded, using process environment", slog.Any("err", err))
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UsesRemoteAPI reports whether a remote insight API is configured.
func (c *Config) UsesRemoteAPI() bool {
	return strings.TrimSpace(c.InsightAPIURL) != ""
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.SQLitePath) == "" && !c.UsesRemoteAPI() {
		return fmt.Errorf("SQLITE_PATH is required when INSIGHT_API_URL is not set")
	}
	if c.UsesRemoteAPI() {
		u, err := url.Parse(c.InsightAPIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("INSIGHT_API_URL must be an absolute URL, got %q", c.InsightAPIURL)
		}
	}
	if c.InsightAPITimeout <= 0 {
		return fmt.Errorf("INSIGHT_API_TIMEOUT must be positive")
	}
	if c.ViewStateTTL <= 0 {
		return fmt.Errorf("VIEW_STATE_TTL must be positive")
	}
	return nil
}
