package main

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/batch"
	"github.com/fwojciec/bindery/render"
	"github.com/fwojciec/bindery/validate"
	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigFile is looked up in the working directory when no config
// path is given.
const DefaultConfigFile = "bindery.toml"

// Config is the project configuration read from bindery.toml.
type Config struct {
	// Concurrency bounds parallel validation in directory mode.
	Concurrency int `toml:"concurrency"`

	// SiteRoot resolves "/"-rooted links during validation.
	SiteRoot string `toml:"site_root"`

	// DisabledChecks lists check families to skip: html, content, a11y, links.
	DisabledChecks []string `toml:"disabled_checks"`

	// ImageWidth is the display width of embedded images, in inches.
	ImageWidth float64 `toml:"image_width"`

	// Database is the report history path.
	Database string `toml:"database"`

	// BaseURL prefixes sitemap locations.
	BaseURL string `toml:"base_url"`

	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Concurrency: batch.DefaultConcurrency,
		ImageWidth:  render.DefaultImageWidth,
		LogLevel:    "info",
	}
}

// LoadConfig reads the config file at path over the defaults. An empty path
// yields the defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, bindery.Errorf(bindery.ENOTFOUND, "config not found: %s", path)
	}
	if err != nil {
		return cfg, err
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, bindery.Errorf(bindery.EINVALID, "invalid config %s: %v", path, err)
	}

	if cfg.Concurrency < 0 {
		return cfg, bindery.Errorf(bindery.EINVALID, "concurrency must not be negative")
	}
	if cfg.ImageWidth <= 0 {
		return cfg, bindery.Errorf(bindery.EINVALID, "image_width must be positive")
	}
	if _, err := cfg.Level(); err != nil {
		return cfg, err
	}
	if _, err := cfg.Checks(nil); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// configPath returns the config file to load. An explicit path wins; otherwise
// ./bindery.toml is used when it exists.
func configPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, bindery.Errorf(bindery.EINVALID, "invalid log_level %q", c.LogLevel)
	}
	return l, nil
}

// Checks returns the enabled check families. A non-empty only list replaces
// the configured set.
func (c Config) Checks(only []string) (validate.Checks, error) {
	if len(only) > 0 {
		return validate.ParseChecks(only)
	}
	checks := validate.CheckAll
	if len(c.DisabledChecks) > 0 {
		off, err := validate.ParseChecks(c.DisabledChecks)
		if err != nil {
			return 0, err
		}
		checks &^= off
	}
	if checks == 0 {
		return 0, bindery.Errorf(bindery.EINVALID, "every check family is disabled")
	}
	return checks, nil
}

// DatabasePath returns the history database location: BINDERY_DB, then the
// config value, then ~/.bindery/history.db.
func (c Config) DatabasePath() string {
	if path := os.Getenv("BINDERY_DB"); path != "" {
		return path
	}
	if c.Database != "" {
		return c.Database
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "history.db"
	}
	return filepath.Join(home, ".bindery", "history.db")
}
