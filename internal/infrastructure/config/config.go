// Package config provides configuration loading and management.
package config

import (
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for pokedex configuration.
	DefaultConfigDir = ".pokedex"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDatabaseFile is the SQLite file used when sqlite.path is unset.
	DefaultDatabaseFile = "pokedex.db"
)

// Config holds static configuration (read-only after init).
// Every field can be overridden by the environment variable in its env tag.
type Config struct {
	SQLite  SQLiteConfig  `yaml:"sqlite,omitempty"`
	Catalog CatalogConfig `yaml:"catalog,omitempty"`
	Feed    FeedConfig    `yaml:"feed,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite catalog database.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database. Relative paths are
	// resolved against the project directory; ":memory:" is kept as is.
	Path string `yaml:"path,omitempty" env:"POKEDEX_DB_PATH"`
}

// CatalogConfig holds catalog behaviour settings.
type CatalogConfig struct {
	// DefaultLimit is the page size used by list when none is given.
	DefaultLimit int `yaml:"default_limit,omitempty" env:"POKEDEX_DEFAULT_LIMIT"`
}

// FeedConfig holds configuration for the external seed feed.
type FeedConfig struct {
	BaseURL string        `yaml:"base_url,omitempty" env:"POKEDEX_FEED_URL"`
	Limit   int           `yaml:"limit,omitempty" env:"POKEDEX_FEED_LIMIT"`
	Timeout time.Duration `yaml:"timeout,omitempty" env:"POKEDEX_FEED_TIMEOUT"`
	Retries int           `yaml:"retries,omitempty" env:"POKEDEX_FEED_RETRIES"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty" env:"POKEDEX_LOG_LEVEL"`
	JSON  bool   `yaml:"json,omitempty" env:"POKEDEX_LOG_JSON"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			DefaultLimit: 10,
		},
		Feed: FeedConfig{
			BaseURL: "https://pokeapi.co/api/v2",
			Limit:   700,
			Timeout: 10 * time.Second,
			Retries: 2,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the .pokedex directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, errors.WithHint(
			errors.Newf("config file not found: %s", configFile),
			"run 'pokedex init' first",
		)
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return errors.Wrap(err, "parsing environment overrides")
	}
	return nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.Catalog.DefaultLimit < 0 {
		return errors.Newf("catalog.default_limit must not be negative, got %d", c.Catalog.DefaultLimit)
	}
	if c.Feed.Limit < 0 {
		return errors.Newf("feed.limit must not be negative, got %d", c.Feed.Limit)
	}
	if c.Feed.Retries < 0 {
		return errors.Newf("feed.retries must not be negative, got %d", c.Feed.Retries)
	}
	if c.Feed.Timeout < 0 {
		return errors.Newf("feed.timeout must not be negative, got %s", c.Feed.Timeout)
	}
	if c.Feed.BaseURL != "" {
		u, err := url.Parse(c.Feed.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.Newf("feed.base_url is not an absolute URL: %q", c.Feed.BaseURL)
		}
	}
	return nil
}

// DatabasePath resolves the SQLite path for a project rooted at basePath.
func (c *Config) DatabasePath(basePath string) string {
	switch {
	case c.SQLite.Path == "":
		return filepath.Join(basePath, DefaultConfigDir, DefaultDatabaseFile)
	case c.SQLite.Path == ":memory:", filepath.IsAbs(c.SQLite.Path):
		return c.SQLite.Path
	default:
		return filepath.Join(basePath, c.SQLite.Path)
	}
}

// ConfigDir returns the path to the .pokedex config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}
