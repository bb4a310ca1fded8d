// Package config provides configuration loading and validation for the
// editor and the profile API server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the editor configuration, loadable from a JSON file. All
// fields are optional; missing values use defaults or environment
// variables.
type Config struct {
	// CachePath is the local profile cache file.
	CachePath string `json:"cache_path,omitempty"`
	// APIBaseURL is the remote profile store base URL. Empty means
	// local-only operation.
	APIBaseURL string `json:"api_base_url,omitempty"`
	// TokenPath is the file the auth provider stores the session token
	// in.
	TokenPath string `json:"token_path,omitempty"`
	// DebounceMillis overrides the autosave quiet interval.
	DebounceMillis int `json:"debounce_millis,omitempty"`
	// DatabaseURL is the PostgreSQL connection URL (server only).
	DatabaseURL string `json:"database_url,omitempty"`
	// APIKey is the Gemini API key for tailoring.
	APIKey string `json:"api_key,omitempty"`
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// FromEnv returns a config assembled purely from environment variables.
func FromEnv() *Config {
	return &Config{
		CachePath:   os.Getenv("RESUME_CACHE_PATH"),
		APIBaseURL:  os.Getenv("RESUME_API_URL"),
		TokenPath:   os.Getenv("RESUME_TOKEN_PATH"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.DebounceMillis < 0 {
		return fmt.Errorf("config error: 'debounce_millis' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. CLI flags win over config file values, which win over env.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.CachePath == "" {
		result.CachePath = defaults.CachePath
	}
	if result.APIBaseURL == "" {
		result.APIBaseURL = defaults.APIBaseURL
	}
	if result.TokenPath == "" {
		result.TokenPath = defaults.TokenPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DebounceMillis == 0 {
		result.DebounceMillis = defaults.DebounceMillis
	}

	return result
}
