// Package main provides the entry point for the torrust-index CLI.
//
// torrust-index manages the SQLite database behind a torrent index:
// users, categories, torrents, tracker keys, and content pages. It can
// also pull swarm statistics from the tracker REST API.
//
// Usage:
//
//	torrust-index migrate
//	torrust-index torrent list --markdown
//	torrust-index tracker refresh
//
// See --help for all available options.
package main

// main is the entry point for torrust-index.
func main() {
	Execute()
}
