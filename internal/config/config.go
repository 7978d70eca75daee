// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/promokit/internal/weights"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Brief defaults
	Audience string `json:"audience,omitempty"` // Default target audience
	Tone     string `json:"tone,omitempty"`     // Default tone
	Platform string `json:"platform,omitempty"` // Default publishing platform

	// Weights
	Weights weights.Distribution `json:"weights,omitempty"` // Starting distribution
	Preset  string               `json:"preset,omitempty"`  // Named preset to load from the database

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	KitVersion  string `json:"kit_version,omitempty"`  // Kit contract version (v1 or v2)
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Use headless browser for reference pages
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty"`         // HTTP server port
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

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Weights != nil && c.Preset != "" {
		return fmt.Errorf("config error: 'weights' and 'preset' are mutually exclusive")
	}

	if c.Weights != nil {
		if err := weights.Validate(c.Weights); err != nil {
			return fmt.Errorf("config error: invalid weights: %w", err)
		}
	}

	if c.KitVersion != "" && c.KitVersion != "v1" && c.KitVersion != "v2" {
		return fmt.Errorf("config error: 'kit_version' must be v1 or v2")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Audience == "" {
		result.Audience = defaults.Audience
	}
	if result.Tone == "" {
		result.Tone = defaults.Tone
	}
	if result.Platform == "" {
		result.Platform = defaults.Platform
	}
	if result.Preset == "" {
		result.Preset = defaults.Preset
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.KitVersion == "" {
		result.KitVersion = defaults.KitVersion
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Map fields: use default if unset
	if result.Weights == nil {
		result.Weights = defaults.Weights
	}

	// Bool fields: true wins (config file can enable but not disable)
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
