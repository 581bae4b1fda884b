// Package config loads tracker settings from an optional YAML file with
// environment variable overrides. A missing file yields the defaults; a
// malformed file is an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultUsername is the profile name used on a first run before the user
// picks one.
const DefaultUsername = "Default Name"

// DefaultTimerInterval is how often the practice timer persists elapsed time
// unless configured otherwise.
const DefaultTimerInterval = time.Second

// Config holds all mastery tracker configuration.
type Config struct {
	// DatabasePath locates the sqlite file.
	DatabasePath string `yaml:"database_path"`

	// Username seeds the profile on first run only; an existing database
	// keeps its stored name.
	Username string `yaml:"username"`

	// TimerInterval is a Go duration string ("1s", "250ms") controlling how
	// often the practice timer persists elapsed time.
	TimerInterval string `yaml:"timer_interval"`

	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`
}

// Default returns the built-in configuration, rooted in ~/.mastery.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DatabasePath:  filepath.Join(home, ".mastery", "mastery.db"),
		Username:      DefaultUsername,
		TimerInterval: DefaultTimerInterval.String(),
	}
}

// DefaultPath is where Load looks for the config file when none is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".mastery", "config.yaml")
}

// Load reads the YAML file at path (DefaultPath when empty), falls back to
// defaults when the file is absent, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file: defaults plus env.
	case err != nil:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// TickInterval parses TimerInterval, falling back to DefaultTimerInterval for
// missing or non-positive values.
func (c Config) TickInterval() time.Duration {
	d, err := time.ParseDuration(c.TimerInterval)
	if err != nil || d <= 0 {
		return DefaultTimerInterval
	}
	return d
}

// applyEnvOverrides lets MASTERY_* variables win over file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MASTERY_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("MASTERY_USERNAME"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("MASTERY_TIMER_INTERVAL"); v != "" {
		cfg.TimerInterval = v
	}
	if v := os.Getenv("MASTERY_DEBUG"); v == "1" || v == "true" {
		cfg.Debug = true
	}
}
