package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".torrust-index"

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "TORRUST_INDEX_"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .torrust-index configuration file.
// Zero values leave the corresponding Config field untouched.
type File struct {
	DatabaseURL string       `yaml:"database_url,omitempty"`
	Log         LogSection   `yaml:"log,omitempty"`
	Tracker     TrackerEntry `yaml:"tracker,omitempty"`
}

// LogSection configures logging.
type LogSection struct {
	Verbose bool   `yaml:"verbose,omitempty"`
	Format  string `yaml:"format,omitempty"`
}

// TrackerEntry configures access to the tracker REST API.
type TrackerEntry struct {
	APIURL      string `yaml:"api_url,omitempty"`
	Token       string `yaml:"token,omitempty"`
	Proxy       string `yaml:"proxy,omitempty"`
	Timeout     string `yaml:"timeout,omitempty"`
	Concurrency int    `yaml:"concurrency,omitempty"`
	KeyTTL      string `yaml:"key_ttl,omitempty"`
}

// LoadConfigFile reads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &f, nil
}

// ApplyTo copies every value set in the file onto cfg.
func (f *File) ApplyTo(cfg *Config) error {
	if f.DatabaseURL != "" {
		cfg.DatabaseURL = f.DatabaseURL
	}
	if f.Log.Verbose {
		cfg.Verbose = true
	}
	if f.Log.Format != "" {
		cfg.LogFormat = f.Log.Format
	}
	if f.Tracker.APIURL != "" {
		cfg.TrackerAPIURL = f.Tracker.APIURL
	}
	if f.Tracker.Token != "" {
		cfg.TrackerToken = f.Tracker.Token
	}
	if f.Tracker.Proxy != "" {
		cfg.TrackerProxy = f.Tracker.Proxy
	}
	if f.Tracker.Concurrency != 0 {
		cfg.RefreshConcurrency = f.Tracker.Concurrency
	}
	if f.Tracker.Timeout != "" {
		d, err := time.ParseDuration(f.Tracker.Timeout)
		if err != nil {
			return fmt.Errorf("invalid tracker.timeout: %w", err)
		}
		cfg.TrackerTimeout = d
	}
	if f.Tracker.KeyTTL != "" {
		d, err := time.ParseDuration(f.Tracker.KeyTTL)
		if err != nil {
			return fmt.Errorf("invalid tracker.key_ttl: %w", err)
		}
		cfg.KeyTTL = d
	}
	return nil
}

// ApplyEnv overrides cfg with TORRUST_INDEX_* environment variables.
// Unset variables leave the current values in place.
func ApplyEnv(cfg *Config) error {
	return ApplyEnvFrom(cfg, nil)
}

// ApplyEnvFrom is ApplyEnv with an explicit environment, used by tests.
// A nil environment reads the process environment.
func ApplyEnvFrom(cfg *Config, environment map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .torrust-index in the current directory
// 3. Look for .torrust-index in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Load builds a Config from defaults, the configuration file and the
// environment. explicitPath names a file that must exist; when it is empty
// the default locations are searched and a missing file is not an error.
func Load(explicitPath string) (*Config, error) {
	cfg := NewConfig()

	path := FindConfigFile(explicitPath)
	if path == "" && explicitPath != "" {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, explicitPath)
	}
	if path != "" {
		f, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := f.ApplyTo(cfg); err != nil {
			return nil, err
		}
		cfg.ConfigFilePath = path
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
