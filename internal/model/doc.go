// Package model defines the records stored by the torrent index.
//
// This package contains the following main types:
//   - User: a registered account, looked up by username or email
//   - TorrentListing: metadata and swarm statistics of an uploaded torrent
//   - TorrentCompact: the {id, info hash} projection used for bulk enumeration
//   - TrackerKey: a time-limited tracker credential owned by a user
//   - Category: a torrent category, used for existence checks
//   - Page: a routable content page
//
// Input types (NewTorrent, NewPage) carry validation tags checked by Validate
// before anything reaches the database.
package model
