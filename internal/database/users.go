package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nao1215/torrust-index/internal/model"
)

// userColumns is the column list shared by every user SELECT.
const userColumns = `user_id, username, email, email_verified, password, administrator`

// GetUserWithUsername returns the user with the given username,
// or nil if there is none.
func (d *Database) GetUserWithUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM torrust_users WHERE username = ?`
	return d.getUser(ctx, query, username)
}

// GetUserWithEmail returns the user with the given email address,
// or nil if there is none.
func (d *Database) GetUserWithEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM torrust_users WHERE email = ?`
	return d.getUser(ctx, query, email)
}

// GetUserByID returns the user with the given id, or nil if there is none.
func (d *Database) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM torrust_users WHERE user_id = ?`
	return d.getUser(ctx, query, userID)
}

func (d *Database) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	var user model.User
	err := d.db.QueryRowContext(ctx, query, arg).Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.EmailVerified,
		&user.Password,
		&user.Administrator,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// InsertUser registers a user and returns the new user id.
func (d *Database) InsertUser(ctx context.Context, in model.NewUser) (int64, error) {
	if err := model.Validate(in); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	query := `
	INSERT INTO torrust_users (username, email, password, administrator)
	VALUES (?, ?, ?, ?)
	`

	result, err := d.db.ExecContext(ctx, query, in.Username, in.Email, in.PasswordHash, in.Administrator)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %w", ErrUserAlreadyExists, err)
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	return result.LastInsertId()
}

// DeleteUser removes the user with the given id together with its tracker keys.
// Deleting a user that does not exist is not an error.
func (d *Database) DeleteUser(ctx context.Context, userID int64) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM torrust_users WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
