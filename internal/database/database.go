package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/torrust-index/internal/database/migrations"
)

// DefaultFileName is the database file created inside a data directory.
const DefaultFileName = "torrust-index.db"

// ValidKeyWindow is how far in the future a tracker key must still be valid
// for GetValidTrackerKey to return it.
const ValidKeyWindow = 7 * 24 * time.Hour

// memoryURL selects a private in-memory database.
const memoryURL = ":memory:"

// Database is the data-access façade of the torrent index.
// It is safe for concurrent use; the underlying pool serializes writers.
type Database struct {
	// db is the underlying SQL connection pool.
	db *sql.DB

	// path is the database file path, or ":memory:".
	path string

	// now returns the current time. It is replaceable for tests.
	now func() time.Time
}

// Options configures Database behavior.
type Options struct {
	// CreateIfNotExists creates the database file and its directory if they don't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool

	// Now overrides the clock used for upload dates, creation dates and
	// tracker key validity. Nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens the database described by databaseURL, applies pending
// migrations and returns a ready Database.
//
// databaseURL may be a plain file path, a "sqlite://" URL (the form used by
// the index configuration file), a "file:" URI, or ":memory:".
// Any query string is ignored; connection parameters are set by Options.
// Open never terminates the process: a failure is returned to the caller,
// which decides whether to retry.
func Open(ctx context.Context, databaseURL string, opts Options) (*Database, error) {
	dbPath, err := parseDatabaseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	memory := dbPath == memoryURL
	if !memory {
		if !opts.CreateIfNotExists {
			if _, err := os.Stat(dbPath); os.IsNotExist(err) {
				return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
			} else if err != nil {
				return nil, fmt.Errorf("failed to check database path: %w", err)
			}
		} else if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", buildDSN(dbPath, opts.CreateIfNotExists))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if memory {
		// An in-memory database lives only as long as its connection.
		db.SetConnMaxLifetime(0)
	} else {
		db.SetConnMaxLifetime(time.Hour)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if opts.EnableWAL && !memory {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := migrations.Apply(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Database{
		db:   db,
		path: dbPath,
		now:  now,
	}, nil
}

// Close closes the connection pool.
func (d *Database) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Path returns the database file path.
func (d *Database) Path() string {
	return d.path
}

// Ping verifies that the database is reachable.
func (d *Database) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// AppliedMigrations returns the names of the applied schema migrations in order.
func (d *Database) AppliedMigrations(ctx context.Context) ([]string, error) {
	names, err := migrations.Applied(ctx, d.db)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return names, nil
}

// parseDatabaseURL extracts the file path from the accepted URL forms.
func parseDatabaseURL(databaseURL string) (string, error) {
	raw := strings.TrimSpace(databaseURL)
	if raw == "" {
		return "", fmt.Errorf("%w: database url is required", ErrInvalidInput)
	}

	switch {
	case strings.HasPrefix(raw, "sqlite://"):
		raw = strings.TrimPrefix(raw, "sqlite://")
	case strings.HasPrefix(raw, "sqlite:"):
		raw = strings.TrimPrefix(raw, "sqlite:")
	case strings.HasPrefix(raw, "file:"):
		raw = strings.TrimPrefix(raw, "file:")
	}

	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	if raw == "" {
		return "", fmt.Errorf("%w: database url %q has no path", ErrInvalidInput, databaseURL)
	}
	if raw == memoryURL {
		return raw, nil
	}
	return filepath.Clean(raw), nil
}

// buildDSN returns the modernc.org/sqlite connection string.
// mode=rw prevents creating a new file; mode=rwc allows it.
// The pragmas are applied to every new pooled connection.
func buildDSN(dbPath string, create bool) string {
	mode := "rw"
	if create {
		mode = "rwc"
	}
	if dbPath == memoryURL {
		mode = "memory"
	}
	return fmt.Sprintf("file:%s?mode=%s&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath, mode)
}

// unixTime converts a stored unix timestamp to UTC time.
func unixTime(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// nowUnix returns the current time as unix seconds.
func (d *Database) nowUnix() int64 {
	return d.now().Unix()
}
