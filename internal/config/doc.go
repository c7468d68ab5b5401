// Package config provides configuration structures and utilities for the
// torrent index tools. It defines where the database lives, how the tracker
// REST API is reached, and how the CLI logs.
//
// Values are resolved from, lowest to highest priority: NewConfig defaults,
// the YAML configuration file, TORRUST_INDEX_* environment variables, and
// command-line flags.
package config
