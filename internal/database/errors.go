package database

import (
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Domain errors returned by Database methods.
// Wrapped errors keep the driver error reachable, so both
// errors.Is(err, ErrInternal) and inspection of the cause work.
var (
	// ErrTorrentNotFound is returned when no torrent has the requested id.
	ErrTorrentNotFound = errors.New("torrent not found")

	// ErrTorrentAlreadyExists is returned when a torrent with the same info hash exists.
	ErrTorrentAlreadyExists = errors.New("torrent already exists")

	// ErrUserAlreadyExists is returned when the username or email is taken.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrCategoryAlreadyExists is returned when a category with the same name exists.
	ErrCategoryAlreadyExists = errors.New("category already exists")

	// ErrPageAlreadyExists is returned when a page with the same route exists.
	ErrPageAlreadyExists = errors.New("page already exists")

	// ErrInvalidInput is returned when an input record fails validation or
	// references a row that does not exist.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal classifies failures of the storage layer itself.
	ErrInternal = errors.New("internal database error")
)

// isUniqueViolation reports whether err was caused by a UNIQUE or PRIMARY KEY constraint.
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}

// isForeignKeyViolation reports whether err was caused by a FOREIGN KEY constraint.
func isForeignKeyViolation(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}
