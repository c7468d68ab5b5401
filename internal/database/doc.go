// Package database provides SQLite-based storage for the torrent index.
//
// The Database type is a thin façade over a pooled *sql.DB. Every method
// issues a single parameterized statement and maps the driver result into a
// model record, a slice, or one of the sentinel errors in errors.go:
//   - Users: lookup by username, email or id, insert, delete
//   - Torrents: insert, lookup by id or info hash, enumeration, tracker stats update
//   - Tracker keys: issue, fetch the currently valid key of a user
//   - Categories: insert, list, existence check
//   - Pages: insert, list, lookup by route
//
// Lookups return (nil, nil) when no row matches, so a miss can be told apart
// from a failed query. Uniqueness (usernames, emails, info hashes, category
// names, page routes) is enforced by unique indexes and reported through
// ErrUserAlreadyExists, ErrTorrentAlreadyExists, ErrCategoryAlreadyExists and
// ErrPageAlreadyExists.
//
// The schema lives in the migrations subpackage and is applied by Open.
package database
