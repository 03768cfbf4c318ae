// Package config loads carworth configuration from a YAML file, applies
// CARWORTH_* environment overrides, then fills defaults. Everything works
// with no config file at all: the session cookie is the only value with no
// default, and it can arrive via flag or environment instead.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// SessionCookie is the JSESSIONID value for provider requests.
	SessionCookie string `yaml:"session_cookie"`

	Output   OutputConfig   `yaml:"output"`
	Provider ProviderConfig `yaml:"provider"`
	Fill     FillConfig     `yaml:"fill"`
	History  HistoryConfig  `yaml:"history"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// OutputConfig controls where CSV files land.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// ProviderConfig tunes the price-trends client. Durations are strings in
// time.ParseDuration syntax. An empty base URL uses the production feed.
type ProviderConfig struct {
	BaseURL         string `yaml:"base_url"`
	RequestInterval string `yaml:"request_interval"`
	RequestTimeout  string `yaml:"request_timeout"`
	// CacheDir enables same-day response caching when non-empty.
	CacheDir string `yaml:"cache_dir"`
}

// Interval returns the parsed request interval. Call Validate first.
func (p ProviderConfig) Interval() time.Duration {
	d, _ := time.ParseDuration(p.RequestInterval)
	return d
}

// Timeout returns the parsed request timeout. Call Validate first.
func (p ProviderConfig) Timeout() time.Duration {
	d, _ := time.ParseDuration(p.RequestTimeout)
	return d
}

// FillConfig controls how the fetched series is completed into a daily one.
type FillConfig struct {
	// Leading decides days before the first observation: "omit" drops
	// them, "backfill" repeats the first observed price.
	Leading string `yaml:"leading"`
}

// HistoryConfig controls the run-history database. An empty path disables
// history entirely.
type HistoryConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
	// FilePath sends logs to a rotated file instead of stderr when set.
	FilePath   string `yaml:"file_path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultPath returns the per-user config location, typically
// ~/.config/carworth/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "carworth", "config.yaml")
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. An empty path means carworth.yaml in the working
// directory when present, otherwise DefaultPath. A missing file is not an
// error; overrides and defaults still apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		path = DefaultPath()
		if _, err := os.Stat("carworth.yaml"); err == nil {
			path = "carworth.yaml"
		}
	}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("CARWORTH_SESSION_COOKIE"); v != "" {
		cfg.SessionCookie = v
	}
	if v := os.Getenv("CARWORTH_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("CARWORTH_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("CARWORTH_CACHE_DIR"); v != "" {
		cfg.Provider.CacheDir = v
	}
	if v := os.Getenv("CARWORTH_FILL_LEADING"); v != "" {
		cfg.Fill.Leading = v
	}
	if v := os.Getenv("CARWORTH_SQLITE_PATH"); v != "" {
		cfg.History.SQLitePath = v
	}
	if v := os.Getenv("CARWORTH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CARWORTH_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("CARWORTH_LOG_FILE"); v != "" {
		cfg.Logging.FilePath = v
	}

	// Defaults
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}
	if cfg.Provider.RequestInterval == "" {
		cfg.Provider.RequestInterval = "1s"
	}
	if cfg.Provider.RequestTimeout == "" {
		cfg.Provider.RequestTimeout = "30s"
	}
	if cfg.Fill.Leading == "" {
		cfg.Fill.Leading = "omit"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.MaxSizeMB == 0 {
		cfg.Logging.MaxSizeMB = 10
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = 3
	}
	if cfg.Logging.MaxAgeDays == 0 {
		cfg.Logging.MaxAgeDays = 30
	}

	return cfg, nil
}

// Validate checks field values after Load.
func (c *Config) Validate() error {
	if d, err := time.ParseDuration(c.Provider.RequestInterval); err != nil || d <= 0 {
		return fmt.Errorf("provider.request_interval %q must be a positive duration", c.Provider.RequestInterval)
	}
	if d, err := time.ParseDuration(c.Provider.RequestTimeout); err != nil || d <= 0 {
		return fmt.Errorf("provider.request_timeout %q must be a positive duration", c.Provider.RequestTimeout)
	}

	switch c.Fill.Leading {
	case "omit", "backfill":
	default:
		return fmt.Errorf("fill.leading %q must be omit or backfill", c.Fill.Leading)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q must be text or json", c.Logging.Format)
	}

	return nil
}
