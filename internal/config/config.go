// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	TemplatesDir string `json:"templates_dir,omitempty"` // Directory holding theme templates and partials
	LocalesDir   string `json:"locales_dir,omitempty"`   // Directory holding <lang>.json translation files
	ExportsDir   string `json:"exports_dir,omitempty"`   // Directory generated artifacts are written to
	ChromePath   string `json:"chrome_path,omitempty"`   // Headless browser binary (empty = auto-detect)

	// Rendering defaults
	Theme         string `json:"theme,omitempty"`          // Default theme when a resume does not set one
	Locale        string `json:"locale,omitempty"`         // Default locale when a resume does not set one
	WatermarkText string `json:"watermark_text,omitempty"` // Text stamped on free-tier exports

	// Behavior
	CacheSize   int    `json:"cache_size,omitempty"`   // Max memoized export artifacts (0 = unbounded)
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// DefaultConfig returns the built-in defaults applied when neither the config
// file nor the environment provides a value.
func DefaultConfig() Config {
	return Config{
		TemplatesDir:  "templates",
		LocalesDir:    "locales",
		ExportsDir:    "exports",
		Theme:         "classic",
		Locale:        "en",
		WatermarkText: "Resume Builder Pro",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv overlays environment variables on top of the config. Environment
// values win over file values so deployments can override without editing
// the config file.
func (c *Config) FromEnv() {
	if v := os.Getenv("RESUME_BUILDER_TEMPLATES"); v != "" {
		c.TemplatesDir = v
	}
	if v := os.Getenv("RESUME_BUILDER_LOCALES"); v != "" {
		c.LocalesDir = v
	}
	if v := os.Getenv("RESUME_BUILDER_EXPORTS"); v != "" {
		c.ExportsDir = v
	}
	if v := os.Getenv("CHROME_PATH"); v != "" {
		c.ChromePath = v
	}
	if v := os.Getenv("RESUME_BUILDER_WATERMARK"); v != "" {
		c.WatermarkText = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("RESUME_BUILDER_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.CacheSize = n
		}
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.CacheSize < 0 {
		return fmt.Errorf("config error: 'cache_size' must be non-negative")
	}

	// Validate directories exist (if specified)
	if c.TemplatesDir != "" {
		if _, err := os.Stat(c.TemplatesDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: templates directory not found: %s", c.TemplatesDir)
		}
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: browser binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.TemplatesDir == "" {
		result.TemplatesDir = defaults.TemplatesDir
	}
	if result.LocalesDir == "" {
		result.LocalesDir = defaults.LocalesDir
	}
	if result.ExportsDir == "" {
		result.ExportsDir = defaults.ExportsDir
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.Theme == "" {
		result.Theme = defaults.Theme
	}
	if result.Locale == "" {
		result.Locale = defaults.Locale
	}
	if result.WatermarkText == "" {
		result.WatermarkText = defaults.WatermarkText
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.CacheSize == 0 {
		result.CacheSize = defaults.CacheSize
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
