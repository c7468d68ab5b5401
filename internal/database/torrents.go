package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nao1215/torrust-index/internal/model"
)

// torrentColumns is the column list shared by every torrent SELECT.
const torrentColumns = `torrent_id, uploader, info_hash, title, category_id, description,
	upload_date, file_size, seeders, leechers`

// InsertTorrentAndGetID stores a torrent and returns its new id.
// The upload date is the current time. The info hash is stored as given.
func (d *Database) InsertTorrentAndGetID(ctx context.Context, in model.NewTorrent) (int64, error) {
	if err := model.Validate(in); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	query := `
	INSERT INTO torrust_torrents (uploader, info_hash, title, category_id, description, upload_date, file_size, seeders, leechers)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING torrent_id
	`

	var torrentID int64
	err := d.db.QueryRowContext(ctx, query,
		in.Uploader,
		in.InfoHash,
		in.Title,
		in.CategoryID,
		in.Description,
		d.nowUnix(),
		in.FileSize,
		in.Seeders,
		in.Leechers,
	).Scan(&torrentID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return 0, fmt.Errorf("%w: %w", ErrTorrentAlreadyExists, err)
		case isForeignKeyViolation(err):
			return 0, fmt.Errorf("%w: unknown category %d: %w", ErrInvalidInput, in.CategoryID, err)
		}
		return 0, fmt.Errorf("failed to insert torrent: %w", err)
	}

	return torrentID, nil
}

// GetTorrentByID returns the torrent with the given id.
// It returns ErrTorrentNotFound if there is none.
func (d *Database) GetTorrentByID(ctx context.Context, torrentID int64) (*model.TorrentListing, error) {
	query := `SELECT ` + torrentColumns + ` FROM torrust_torrents WHERE torrent_id = ?`

	torrent, err := scanTorrent(d.db.QueryRowContext(ctx, query, torrentID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTorrentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get torrent %d: %w", torrentID, err)
	}
	return torrent, nil
}

// GetTorrentByInfoHash returns the torrent with the given info hash.
// It returns ErrTorrentNotFound if there is none.
func (d *Database) GetTorrentByInfoHash(ctx context.Context, infoHash string) (*model.TorrentListing, error) {
	query := `SELECT ` + torrentColumns + ` FROM torrust_torrents WHERE info_hash = ?`

	torrent, err := scanTorrent(d.db.QueryRowContext(ctx, query, infoHash))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTorrentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get torrent %s: %w", infoHash, err)
	}
	return torrent, nil
}

// GetTorrents returns every torrent ordered by upload date, newest first.
func (d *Database) GetTorrents(ctx context.Context) ([]model.TorrentListing, error) {
	query := `SELECT ` + torrentColumns + ` FROM torrust_torrents ORDER BY upload_date DESC, torrent_id DESC`

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list torrents: %w", err)
	}
	defer rows.Close()

	torrents := make([]model.TorrentListing, 0)
	for rows.Next() {
		torrent, err := scanTorrent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan torrent: %w", err)
		}
		torrents = append(torrents, *torrent)
	}
	return torrents, rows.Err()
}

// GetAllTorrentIDs returns the id and info hash of every torrent.
func (d *Database) GetAllTorrentIDs(ctx context.Context) ([]model.TorrentCompact, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT torrent_id, info_hash FROM torrust_torrents ORDER BY torrent_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: list torrent ids: %w", ErrInternal, err)
	}
	defer rows.Close()

	torrents := make([]model.TorrentCompact, 0)
	for rows.Next() {
		var t model.TorrentCompact
		if err := rows.Scan(&t.TorrentID, &t.InfoHash); err != nil {
			return nil, fmt.Errorf("%w: scan torrent id: %w", ErrInternal, err)
		}
		torrents = append(torrents, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate torrent ids: %w", ErrInternal, err)
	}
	return torrents, nil
}

// UpdateTrackerInfo stores the swarm statistics reported by the tracker for
// the torrent with the given info hash. It returns the number of rows
// updated; an unknown info hash updates nothing and is not an error.
func (d *Database) UpdateTrackerInfo(ctx context.Context, infoHash string, seeders, leechers int64) (int64, error) {
	query := `UPDATE torrust_torrents SET seeders = ?, leechers = ? WHERE info_hash = ?`

	result, err := d.db.ExecContext(ctx, query, seeders, leechers, infoHash)
	if err != nil {
		return 0, fmt.Errorf("%w: update tracker info: %w", ErrInternal, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: update tracker info: %w", ErrInternal, err)
	}
	return affected, nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTorrent(row rowScanner) (*model.TorrentListing, error) {
	var t model.TorrentListing
	var uploadDate int64

	err := row.Scan(
		&t.TorrentID,
		&t.Uploader,
		&t.InfoHash,
		&t.Title,
		&t.CategoryID,
		&t.Description,
		&uploadDate,
		&t.FileSize,
		&t.Seeders,
		&t.Leechers,
	)
	if err != nil {
		return nil, err
	}

	t.UploadDate = unixTime(uploadDate)
	return &t, nil
}
