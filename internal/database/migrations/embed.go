package migrations

import "embed"

// FS contains the embedded schema migrations of the torrent index.
//
//go:embed *.sql
var FS embed.FS
