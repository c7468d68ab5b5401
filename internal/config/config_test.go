package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/torrust-index/internal/database"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
// Changes to defaults must be intentional; these tests fail if they drift.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default DatabaseURL is in the XDG data directory", func(t *testing.T) {
		t.Parallel()
		want := filepath.Join(XDGDataDir(), "torrust-index.db")
		if cfg.DatabaseURL != want {
			t.Errorf("expected DatabaseURL to be %q, got %q", want, cfg.DatabaseURL)
		}
	})

	t.Run("default LogFormat is text", func(t *testing.T) {
		t.Parallel()
		if cfg.LogFormat != "text" {
			t.Errorf("expected LogFormat to be 'text', got '%s'", cfg.LogFormat)
		}
	})

	t.Run("default TrackerTimeout is 10 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.TrackerTimeout != 10*time.Second {
			t.Errorf("expected TrackerTimeout to be 10s, got %v", cfg.TrackerTimeout)
		}
	})

	t.Run("default RefreshConcurrency is 10", func(t *testing.T) {
		t.Parallel()
		if cfg.RefreshConcurrency != 10 {
			t.Errorf("expected RefreshConcurrency to be 10, got %d", cfg.RefreshConcurrency)
		}
	})

	t.Run("default KeyTTL is 14 days", func(t *testing.T) {
		t.Parallel()
		if cfg.KeyTTL != 14*24*time.Hour {
			t.Errorf("expected KeyTTL to be 336h, got %v", cfg.KeyTTL)
		}
	})

	t.Run("no tracker is configured by default", func(t *testing.T) {
		t.Parallel()
		if cfg.HasTracker() {
			t.Error("expected HasTracker to be false")
		}
		if cfg.TrackerToken != "" || cfg.TrackerProxy != "" {
			t.Error("expected tracker token and proxy to be empty")
		}
	})

	t.Run("default Verbose is false", func(t *testing.T) {
		t.Parallel()
		if cfg.Verbose {
			t.Error("expected Verbose to be false")
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected default config to be valid, got %v", err)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config",
			modify:  func(_ *Config) {},
			wantErr: nil,
		},
		{
			name:    "empty database url",
			modify:  func(c *Config) { c.DatabaseURL = "" },
			wantErr: ErrNoDatabase,
		},
		{
			name:    "unknown log format",
			modify:  func(c *Config) { c.LogFormat = "xml" },
			wantErr: ErrInvalidLogFormat,
		},
		{
			name:    "json log format",
			modify:  func(c *Config) { c.LogFormat = "json" },
			wantErr: nil,
		},
		{
			name:    "valid tracker url",
			modify:  func(c *Config) { c.TrackerAPIURL = "http://localhost:1212" },
			wantErr: nil,
		},
		{
			name:    "tracker url without scheme",
			modify:  func(c *Config) { c.TrackerAPIURL = "localhost:1212" },
			wantErr: ErrInvalidTrackerURL,
		},
		{
			name:    "tracker url with ftp scheme",
			modify:  func(c *Config) { c.TrackerAPIURL = "ftp://tracker.example.com" },
			wantErr: ErrInvalidTrackerURL,
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.TrackerTimeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative concurrency",
			modify:  func(c *Config) { c.RefreshConcurrency = -1 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name:    "key ttl equal to one week",
			modify:  func(c *Config) { c.KeyTTL = database.ValidKeyWindow },
			wantErr: ErrInvalidKeyTTL,
		},
		{
			name:    "key ttl just over one week",
			modify:  func(c *Config) { c.KeyTTL = database.ValidKeyWindow + time.Minute },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()

		content := `database_url: sqlite://data/index.db
log:
  verbose: true
  format: json
tracker:
  api_url: http://localhost:1212
  token: MyAccessToken
  proxy: 127.0.0.1:9050
  timeout: 30s
  concurrency: 4
  key_ttl: 720h
`
		path := filepath.Join(t.TempDir(), ".torrust-index")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.DatabaseURL != "sqlite://data/index.db" {
			t.Errorf("expected database_url to be parsed, got %q", f.DatabaseURL)
		}
		if f.Tracker.Token != "MyAccessToken" {
			t.Errorf("expected token to be parsed, got %q", f.Tracker.Token)
		}

		cfg := NewConfig()
		if err := f.ApplyTo(cfg); err != nil {
			t.Fatalf("ApplyTo failed: %v", err)
		}
		if !cfg.Verbose || cfg.LogFormat != "json" {
			t.Errorf("expected log section to be applied, got verbose=%v format=%q", cfg.Verbose, cfg.LogFormat)
		}
		if cfg.TrackerAPIURL != "http://localhost:1212" {
			t.Errorf("unexpected TrackerAPIURL %q", cfg.TrackerAPIURL)
		}
		if cfg.TrackerProxy != "127.0.0.1:9050" {
			t.Errorf("unexpected TrackerProxy %q", cfg.TrackerProxy)
		}
		if cfg.TrackerTimeout != 30*time.Second {
			t.Errorf("expected TrackerTimeout 30s, got %v", cfg.TrackerTimeout)
		}
		if cfg.RefreshConcurrency != 4 {
			t.Errorf("expected RefreshConcurrency 4, got %d", cfg.RefreshConcurrency)
		}
		if cfg.KeyTTL != 720*time.Hour {
			t.Errorf("expected KeyTTL 720h, got %v", cfg.KeyTTL)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected applied config to be valid, got %v", err)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("tracker: [unclosed"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		_, err := LoadConfigFile(path)
		if err == nil {
			t.Fatal("expected error for invalid YAML")
		}
		if errors.Is(err, ErrConfigNotFound) {
			t.Error("invalid YAML must not be reported as missing")
		}
	})
}

func TestFileApplyTo(t *testing.T) {
	t.Parallel()

	t.Run("empty file keeps defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		want := *cfg
		if err := (&File{}).ApplyTo(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *cfg != want {
			t.Errorf("expected config to be unchanged, got %+v", *cfg)
		}
	})

	t.Run("invalid duration is rejected", func(t *testing.T) {
		t.Parallel()

		f := &File{Tracker: TrackerEntry{Timeout: "soon"}}
		err := f.ApplyTo(NewConfig())
		if err == nil || !strings.Contains(err.Error(), "tracker.timeout") {
			t.Errorf("expected tracker.timeout error, got %v", err)
		}
	})

	t.Run("invalid key ttl is rejected", func(t *testing.T) {
		t.Parallel()

		f := &File{Tracker: TrackerEntry{KeyTTL: "two weeks"}}
		err := f.ApplyTo(NewConfig())
		if err == nil || !strings.Contains(err.Error(), "tracker.key_ttl") {
			t.Errorf("expected tracker.key_ttl error, got %v", err)
		}
	})
}

func TestApplyEnvFrom(t *testing.T) {
	t.Parallel()

	t.Run("overrides set variables", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		err := ApplyEnvFrom(cfg, map[string]string{
			"TORRUST_INDEX_DATABASE_URL":        "sqlite://env.db",
			"TORRUST_INDEX_VERBOSE":             "true",
			"TORRUST_INDEX_TRACKER_TOKEN":       "EnvToken",
			"TORRUST_INDEX_TRACKER_TIMEOUT":     "5s",
			"TORRUST_INDEX_REFRESH_CONCURRENCY": "2",
			"UNRELATED_DATABASE_URL":            "ignored.db",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DatabaseURL != "sqlite://env.db" {
			t.Errorf("unexpected DatabaseURL %q", cfg.DatabaseURL)
		}
		if !cfg.Verbose {
			t.Error("expected Verbose to be true")
		}
		if cfg.TrackerToken != "EnvToken" {
			t.Errorf("unexpected TrackerToken %q", cfg.TrackerToken)
		}
		if cfg.TrackerTimeout != 5*time.Second {
			t.Errorf("expected TrackerTimeout 5s, got %v", cfg.TrackerTimeout)
		}
		if cfg.RefreshConcurrency != 2 {
			t.Errorf("expected RefreshConcurrency 2, got %d", cfg.RefreshConcurrency)
		}
	})

	t.Run("unset variables keep current values", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.TrackerAPIURL = "http://from-file:1212"
		if err := ApplyEnvFrom(cfg, map[string]string{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.TrackerAPIURL != "http://from-file:1212" {
			t.Errorf("expected TrackerAPIURL to be kept, got %q", cfg.TrackerAPIURL)
		}
		if cfg.KeyTTL != DefaultKeyTTL {
			t.Errorf("expected KeyTTL to be kept, got %v", cfg.KeyTTL)
		}
	})

	t.Run("malformed value is an error", func(t *testing.T) {
		t.Parallel()

		err := ApplyEnvFrom(NewConfig(), map[string]string{
			"TORRUST_INDEX_REFRESH_CONCURRENCY": "many",
		})
		if err == nil {
			t.Error("expected error for malformed integer")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path when it exists", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("returns empty string for missing explicit path", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope.yaml")); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("explicit missing file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("explicit file is applied and recorded", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.yaml")
		if err := os.WriteFile(path, []byte("database_url: /tmp/loaded.db\n"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ConfigFilePath != path {
			t.Errorf("expected ConfigFilePath %q, got %q", path, cfg.ConfigFilePath)
		}
		if os.Getenv("TORRUST_INDEX_DATABASE_URL") == "" && cfg.DatabaseURL != "/tmp/loaded.db" {
			t.Errorf("expected DatabaseURL from file, got %q", cfg.DatabaseURL)
		}
	})
}

func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if !strings.HasSuffix(XDGDataDir(), AppName) {
		t.Errorf("expected data dir to end with %q, got %q", AppName, XDGDataDir())
	}
	if !strings.HasSuffix(XDGConfigDir(), AppName) {
		t.Errorf("expected config dir to end with %q, got %q", AppName, XDGConfigDir())
	}
}
