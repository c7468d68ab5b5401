package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/torrust-index/internal/database"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "torrust-index"

	// DatabaseFileName is the SQLite file created in the data directory.
	DatabaseFileName = "torrust-index.db"

	// DefaultLogFormat writes human-readable key=value logs.
	DefaultLogFormat = "text"

	// DefaultTrackerTimeout bounds a single tracker API request.
	DefaultTrackerTimeout = 10 * time.Second

	// DefaultRefreshConcurrency is the number of torrents whose statistics
	// are fetched from the tracker at the same time.
	DefaultRefreshConcurrency = 10

	// DefaultKeyTTL is the lifetime requested for new tracker keys.
	// It has to exceed one week, otherwise a freshly issued key is
	// never returned as a valid key.
	DefaultKeyTTL = 14 * 24 * time.Hour
)

// Config holds all configuration options of the torrent index tools.
// It is built once by the CLI and passed down explicitly.
type Config struct {
	// DatabaseURL locates the SQLite database. Accepted forms are a plain
	// path, "sqlite://path" and "file:path".
	// Defaults to torrust-index.db in the XDG data directory.
	DatabaseURL string `env:"DATABASE_URL"`

	// Verbose enables debug logging. When false, only warnings and errors are logged.
	Verbose bool `env:"VERBOSE"`

	// LogFormat selects the log encoding: "text" or "json".
	LogFormat string `env:"LOG_FORMAT"`

	// TrackerAPIURL is the base URL of the tracker REST API,
	// e.g. "http://localhost:1212". Empty disables tracker features.
	TrackerAPIURL string `env:"TRACKER_API_URL"`

	// TrackerToken is the admin token sent with every tracker API request.
	TrackerToken string `env:"TRACKER_TOKEN"`

	// TrackerProxy is an optional SOCKS5 proxy ("host:port") for tracker API requests.
	TrackerProxy string `env:"TRACKER_PROXY"`

	// TrackerTimeout bounds a single tracker API request.
	TrackerTimeout time.Duration `env:"TRACKER_TIMEOUT"`

	// RefreshConcurrency is the number of concurrent tracker requests during a refresh.
	RefreshConcurrency int `env:"REFRESH_CONCURRENCY"`

	// KeyTTL is the lifetime requested for newly issued tracker keys.
	KeyTTL time.Duration `env:"KEY_TTL"`

	// ConfigFilePath is the configuration file that was loaded, if any.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		DatabaseURL:        DefaultDatabaseURL(),
		LogFormat:          DefaultLogFormat,
		TrackerTimeout:     DefaultTrackerTimeout,
		RefreshConcurrency: DefaultRefreshConcurrency,
		KeyTTL:             DefaultKeyTTL,
	}
}

// DefaultDatabaseURL returns the database path inside the XDG data directory.
func DefaultDatabaseURL() string {
	return filepath.Join(XDGDataDir(), DatabaseFileName)
}

// XDGDataDir returns the XDG data directory for the torrent index.
// On Linux: ~/.local/share/torrust-index
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the torrent index.
// On Linux: ~/.config/torrust-index
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// HasTracker reports whether a tracker API is configured.
func (c *Config) HasTracker() bool {
	return c.TrackerAPIURL != ""
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrNoDatabase
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return ErrInvalidLogFormat
	}

	if c.TrackerAPIURL != "" {
		u, err := url.Parse(c.TrackerAPIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrInvalidTrackerURL
		}
	}

	if c.TrackerTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.RefreshConcurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.KeyTTL <= database.ValidKeyWindow {
		return ErrInvalidKeyTTL
	}

	return nil
}
