// Package tracker talks to the BitTorrent tracker that serves the index.
//
// Client wraps the tracker REST API: torrent statistics and key generation.
// Refresher copies seeder and leecher counts from the tracker into the
// database for every stored torrent, with bounded concurrency.
// KeyIssuer hands out tracker keys to index users, reusing a key that is
// still valid for the configured window.
package tracker
