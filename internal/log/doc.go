// Package log provides secure logging for the torrent index tools, built on
// top of the standard slog package.
//
// The SecureHandler masks sensitive values before they reach the output:
//   - tracker API tokens and tracker keys
//   - password hashes and other credentials
//   - bearer, basic and JWT values detected by pattern matching
//
// Info hashes look like long alphanumeric secrets, so attributes named
// "info_hash" or "infohash" are never masked by value patterns.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, cfg.Verbose, cfg.LogFormat)
//	logger.Info("tracker key issued",
//	    "user_id", 1,
//	    "tracker_key", key.Key, // written as ***REDACTED***
//	)
//	slog.SetDefault(logger)
package log
