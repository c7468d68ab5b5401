package model

import (
	"strings"
	"time"
)

// Lengths of hex-encoded info hashes.
const (
	InfoHashLength   = 40
	InfoHashV2Length = 64
)

// TorrentListing is the stored metadata of an uploaded torrent together with
// the swarm statistics last reported by the tracker.
type TorrentListing struct {
	// TorrentID is the row id of the torrent.
	TorrentID int64 `json:"torrent_id"`

	// Uploader is the username of the user that uploaded the torrent.
	Uploader string `json:"uploader"`

	// InfoHash is the hex-encoded info hash. It is unique across torrents
	// and is the key used when updating tracker statistics.
	InfoHash string `json:"info_hash"`

	Title       string `json:"title"`
	CategoryID  int64  `json:"category_id"`
	Description string `json:"description"`

	// UploadDate is set by the database layer when the torrent is inserted.
	UploadDate time.Time `json:"upload_date"`

	// FileSize is the total size of the torrent content in bytes.
	FileSize int64 `json:"file_size"`

	Seeders  int64 `json:"seeders"`
	Leechers int64 `json:"leechers"`
}

// TorrentCompact is the projection used to enumerate every torrent.
type TorrentCompact struct {
	TorrentID int64  `json:"torrent_id"`
	InfoHash  string `json:"info_hash"`
}

// NewTorrent is the input for inserting a torrent.
type NewTorrent struct {
	Uploader    string `validate:"required"`
	InfoHash    string `validate:"required,infohash"`
	Title       string `validate:"required,max=256"`
	CategoryID  int64  `validate:"gt=0"`
	Description string
	FileSize    int64 `validate:"gte=0"`
	Seeders     int64 `validate:"gte=0"`
	Leechers    int64 `validate:"gte=0"`
}

// IsInfoHash reports whether s is a hex-encoded v1 or v2 info hash.
func IsInfoHash(s string) bool {
	if len(s) != InfoHashLength && len(s) != InfoHashV2Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

// NormalizeInfoHash returns the canonical (lowercase, trimmed) form of an info hash.
func NormalizeInfoHash(infoHash string) string {
	return strings.ToLower(strings.TrimSpace(infoHash))
}
