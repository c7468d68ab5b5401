package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Callers can use errors.Is to tell them apart.
var (
	// ErrNoDatabase is returned when no database URL is configured.
	ErrNoDatabase = errors.New("no database configured: set database_url or use --database")

	// ErrInvalidLogFormat is returned when the log format is neither "text" nor "json".
	ErrInvalidLogFormat = errors.New("invalid log format: must be \"text\" or \"json\"")

	// ErrInvalidTrackerURL is returned when the tracker API URL is not an absolute http(s) URL.
	ErrInvalidTrackerURL = errors.New("invalid tracker api url: must be an absolute http or https url")

	// ErrInvalidTimeout is returned when the tracker timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the refresh concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidKeyTTL is returned when tracker keys would already be
	// outside the validity window at the moment they are issued.
	ErrInvalidKeyTTL = errors.New("invalid key ttl: must be longer than one week")
)
