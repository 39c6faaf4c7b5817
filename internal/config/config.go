// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonathan/hunter/internal/dispatch"
	"github.com/jonathan/hunter/internal/hunter"
)

// Environment variables read by FromEnv.
const (
	EnvAPIKey     = "HUNTER_API_KEY"
	EnvAPIVersion = "HUNTER_API_VERSION"
	EnvBaseURL    = "HUNTER_BASE_URL"
	EnvThrottle   = "HUNTER_THROTTLE"
	EnvTimeout    = "HUNTER_TIMEOUT"
	EnvLogLevel   = "HUNTER_LOG_LEVEL"
)

// DefaultLogLevel keeps stderr quiet unless something goes wrong.
const DefaultLogLevel = "warn"

// Duration is a time.Duration that reads and writes JSON as "200ms".
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"200ms\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	APIKey     string `json:"api_key,omitempty"`     // Hunter API key
	APIVersion string `json:"api_version,omitempty"` // Path segment, e.g. v2
	BaseURL    string `json:"base_url,omitempty"`    // API host

	// Pointers distinguish "unset" from an explicit zero.
	Throttle *Duration `json:"throttle,omitempty"` // Pause between batch requests
	Timeout  *Duration `json:"timeout,omitempty"`  // HTTP timeout; 0 means none

	LogLevel string `json:"log_level,omitempty"` // debug, info, warn, error
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	throttle := Duration(dispatch.DefaultThrottle)
	timeout := Duration(0)
	return Config{
		APIVersion: hunter.DefaultAPIVersion,
		BaseURL:    hunter.DefaultBaseURL,
		Throttle:   &throttle,
		Timeout:    &timeout,
		LogLevel:   DefaultLogLevel,
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

// FromEnv builds a partial configuration from HUNTER_* variables.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		APIKey:     getenv(EnvAPIKey),
		APIVersion: getenv(EnvAPIVersion),
		BaseURL:    getenv(EnvBaseURL),
		LogLevel:   getenv(EnvLogLevel),
	}

	for _, v := range []struct {
		name string
		dst  **Duration
	}{
		{EnvThrottle, &cfg.Throttle},
		{EnvTimeout, &cfg.Timeout},
	} {
		raw := getenv(v.name)
		if raw == "" {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config error: %s: %w", v.name, err)
		}
		dd := Duration(d)
		*v.dst = &dd
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for the API key since it may still come from a
// positional argument after merging.
func (c *Config) Validate() error {
	if c.Throttle != nil && *c.Throttle < 0 {
		return fmt.Errorf("config error: 'throttle' must be non-negative")
	}
	if c.Timeout != nil && *c.Timeout < 0 {
		return fmt.Errorf("config error: 'timeout' must be non-negative")
	}

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: invalid 'base_url': %q", c.BaseURL)
		}
	}

	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: invalid 'log_level': %w", err)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to layer flags over env over file over built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.APIVersion == "" {
		result.APIVersion = defaults.APIVersion
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.Throttle == nil {
		result.Throttle = defaults.Throttle
	}
	if result.Timeout == nil {
		result.Timeout = defaults.Timeout
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	return result
}

// ThrottleDuration returns the throttle, or zero when unset.
func (c *Config) ThrottleDuration() time.Duration {
	if c.Throttle == nil {
		return 0
	}
	return time.Duration(*c.Throttle)
}

// TimeoutDuration returns the HTTP timeout, or zero when unset.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == nil {
		return 0
	}
	return time.Duration(*c.Timeout)
}

// Level returns the parsed log level, falling back to DefaultLogLevel.
func (c *Config) Level() log.Level {
	if lvl, err := log.ParseLevel(c.LogLevel); err == nil && c.LogLevel != "" {
		return lvl
	}
	lvl, _ := log.ParseLevel(DefaultLogLevel)
	return lvl
}
