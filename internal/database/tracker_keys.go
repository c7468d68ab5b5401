package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nao1215/torrust-index/internal/model"
)

// GetValidTrackerKey returns the key of the user that stays valid for at
// least ValidKeyWindow, or nil if there is none. When several keys qualify
// the one with the latest expiry wins.
func (d *Database) GetValidTrackerKey(ctx context.Context, userID int64) (*model.TrackerKey, error) {
	query := `
	SELECT key, valid_until FROM torrust_tracker_keys
	WHERE user_id = ? AND valid_until > ?
	ORDER BY valid_until DESC
	LIMIT 1
	`

	threshold := d.now().Add(ValidKeyWindow).Unix()

	var key model.TrackerKey
	var validUntil int64
	err := d.db.QueryRowContext(ctx, query, userID, threshold).Scan(&key.Key, &validUntil)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tracker key: %w", err)
	}

	key.ValidUntil = unixTime(validUntil)
	return &key, nil
}

// IssueTrackerKey stores a tracker key for the user.
// Existing keys of the user are left untouched.
func (d *Database) IssueTrackerKey(ctx context.Context, userID int64, key model.TrackerKey) error {
	query := `INSERT INTO torrust_tracker_keys (user_id, key, valid_until) VALUES (?, ?, ?)`

	if _, err := d.db.ExecContext(ctx, query, userID, key.Key, key.ValidUntil.Unix()); err != nil {
		return fmt.Errorf("%w: issue tracker key: %w", ErrInternal, err)
	}
	return nil
}
