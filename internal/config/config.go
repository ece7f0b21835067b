// Package config loads panewright configuration from file and
// environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (PANEWRIGHT_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. .panewright.yaml in current directory
//  2. ~/.config/panewright/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all panewright configuration.
type Config struct {
	// Host multiplexer: "wezterm" (empty auto-detects).
	Host string `yaml:"host"`

	// Split settings
	SplitPercent int `yaml:"split_percent"` // default size of a new split

	// Geometry settle behavior. Host commands are eventually
	// consistent; reads that depend on a prior command poll until the
	// expected state appears or ConfirmTimeout elapses.
	ConfirmTimeout string `yaml:"confirm_timeout"` // Go duration string, e.g. "500ms"
	PollInterval   string `yaml:"poll_interval"`   // Go duration string, e.g. "25ms"

	// Watch settings
	WatchPaths []string `yaml:"watch_paths"` // files whose writes trigger reconciliation

	// Monitor
	Refresh string `yaml:"refresh"` // TUI auto-refresh interval, e.g. "2s"

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs

	// Parsed durations (not from YAML, set after loading)
	ConfirmTimeoutDuration time.Duration `yaml:"-"`
	PollIntervalDuration   time.Duration `yaml:"-"`
	RefreshDuration        time.Duration `yaml:"-"`

	// ConfigFile is the path to the config file that was loaded
	// (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		SplitPercent:   50,
		ConfirmTimeout: "500ms",
		PollInterval:   "25ms",
		Refresh:        "2s",
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	mergeEnv(cfg)

	var err error
	cfg.ConfirmTimeoutDuration, err = parseDurationOrDefault(cfg.ConfirmTimeout, 500*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("invalid confirm timeout %q: %w", cfg.ConfirmTimeout, err)
	}
	cfg.PollIntervalDuration, err = parseDurationOrDefault(cfg.PollInterval, 25*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("invalid poll interval %q: %w", cfg.PollInterval, err)
	}
	cfg.RefreshDuration, err = parseDurationOrDefault(cfg.Refresh, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh interval %q: %w", cfg.Refresh, err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file and returns its path and
// contents.
func findConfigFile() (string, []byte, error) {
	if data, err := os.ReadFile(".panewright.yaml"); err == nil {
		return ".panewright.yaml", data, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "panewright", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.Host != "" {
		cfg.Host = file.Host
	}
	if file.SplitPercent > 0 {
		cfg.SplitPercent = file.SplitPercent
	}
	if file.ConfirmTimeout != "" {
		cfg.ConfirmTimeout = file.ConfirmTimeout
	}
	if file.PollInterval != "" {
		cfg.PollInterval = file.PollInterval
	}
	if len(file.WatchPaths) > 0 {
		cfg.WatchPaths = file.WatchPaths
	}
	if file.Refresh != "" {
		cfg.Refresh = file.Refresh
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("PANEWRIGHT_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PANEWRIGHT_SPLIT_PERCENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SplitPercent = n
		}
	}
	if v := os.Getenv("PANEWRIGHT_CONFIRM_TIMEOUT"); v != "" {
		cfg.ConfirmTimeout = v
	}
	if v := os.Getenv("PANEWRIGHT_POLL_INTERVAL"); v != "" {
		cfg.PollInterval = v
	}
	if v := os.Getenv("PANEWRIGHT_REFRESH"); v != "" {
		cfg.Refresh = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
}

// parseDurationOrDefault parses a duration string; an empty string
// returns the fallback value.
func parseDurationOrDefault(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	return time.ParseDuration(s)
}
