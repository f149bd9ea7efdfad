// Package runtimeconfig holds the site configuration loaded from kiln.toml.
package runtimeconfig

import (
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/pelletier/go-toml/v2"
)

// Config aggregates site metadata and build settings. Fields intentionally
// use simple types so host applications can embed or extend them.
type Config struct {
	BaseURL       string        `toml:"base_url"`
	Title         string        `toml:"title"`
	Description   string        `toml:"description"`
	Language      string        `toml:"language"`
	Author        string        `toml:"author"`
	ContentDir    string        `toml:"content_dir"`
	OutputDir     string        `toml:"output_dir"`
	IncludeDrafts bool          `toml:"include_drafts"`
	Logging       LoggingConfig `toml:"logging"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Level     string `toml:"level"`
	Format    string `toml:"format"`
	AddSource bool   `toml:"add_source"`
}

// DefaultConfig returns a configuration with working defaults for a local
// build.
func DefaultConfig() Config {
	return Config{
		Language:   "en",
		ContentDir: "content",
		OutputDir:  "public",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads and validates a TOML configuration file. Missing optional
// fields fall back to the defaults from DefaultConfig.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, goerrors.Wrap(err, goerrors.CategoryNotFound, "read config file").
			WithTextCode("CONFIG_READ_FAILED")
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, goerrors.Wrap(err, goerrors.CategoryValidation, "parse config file").
			WithTextCode("CONFIG_PARSE_FAILED")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field-level constraints.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.ContentDir, validation.Required),
		validation.Field(&c.OutputDir, validation.Required),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid config").
			WithTextCode("CONFIG_INVALID")
	}
	return c.Logging.Validate()
}

// Validate checks the logging block. Empty values are allowed and fall back
// to defaults at provider construction time.
func (l LoggingConfig) Validate() error {
	err := validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("trace", "debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.In("console", "json", "text")),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid logging config").
			WithTextCode("CONFIG_LOGGING_INVALID")
	}
	return nil
}

// NormalizedBaseURL returns BaseURL without a trailing slash so path joins
// stay predictable.
func (c Config) NormalizedBaseURL() string {
	return strings.TrimSuffix(c.BaseURL, "/")
}
