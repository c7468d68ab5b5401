package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/torrust-index/internal/model"
)

// testNow is the fixed clock used by setupTestDB.
var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *Database {
	t.Helper()

	opts := DefaultOptions()
	opts.Now = func() time.Time { return testNow }

	db, err := Open(context.Background(), filepath.Join(t.TempDir(), DefaultFileName), opts)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// mustInsertCategory inserts a category and returns its id.
func mustInsertCategory(t *testing.T, db *Database, name string) int64 {
	t.Helper()

	id, err := db.InsertCategory(context.Background(), name)
	if err != nil {
		t.Fatalf("failed to insert category %q: %v", name, err)
	}
	return id
}

// mustInsertUser inserts a user and returns its id.
func mustInsertUser(t *testing.T, db *Database, username string) int64 {
	t.Helper()

	id, err := db.InsertUser(context.Background(), model.NewUser{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$v=19$m=4096,t=3,p=1$c2FsdA$aGFzaA",
	})
	if err != nil {
		t.Fatalf("failed to insert user %q: %v", username, err)
	}
	return id
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "newdir", "subdir", DefaultFileName)
		db, err := Open(context.Background(), dbPath, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if db.Path() != dbPath {
			t.Errorf("expected path %q, got %q", dbPath, db.Path())
		}
	})

	t.Run("accepts sqlite URL form", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), DefaultFileName)
		db, err := Open(context.Background(), "sqlite://"+dbPath+"?mode=rwc", DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if db.Path() != dbPath {
			t.Errorf("expected path %q, got %q", dbPath, db.Path())
		}
	})

	t.Run("opens in-memory database", func(t *testing.T) {
		t.Parallel()

		db, err := Open(context.Background(), ":memory:", DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open in-memory database: %v", err)
		}
		defer db.Close()

		if _, err := db.InsertCategory(context.Background(), "Linux"); err != nil {
			t.Fatalf("failed to insert into in-memory database: %v", err)
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "missing")
		opts := Options{CreateIfNotExists: false, EnableWAL: true}

		_, err := Open(context.Background(), filepath.Join(dbDir, DefaultFileName), opts)
		if err == nil {
			t.Fatal("expected error when CreateIfNotExists=false and database does not exist")
		}
		if !strings.Contains(err.Error(), "database not found") {
			t.Errorf("expected error to contain %q, got %q", "database not found", err.Error())
		}
		if _, statErr := os.Stat(dbDir); !os.IsNotExist(statErr) {
			t.Error("database directory should not have been created")
		}
	})

	t.Run("reopening keeps data and skips applied migrations", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), DefaultFileName)
		ctx := context.Background()

		db1, err := Open(ctx, dbPath, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		if _, err := db1.InsertCategory(ctx, "Movies"); err != nil {
			t.Fatalf("failed to insert category: %v", err)
		}
		db1.Close()

		db2, err := Open(ctx, dbPath, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db2.Close()

		category, err := db2.VerifyCategory(ctx, "Movies")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if category == nil {
			t.Error("expected category to persist")
		}

		applied, err := db2.AppliedMigrations(ctx)
		if err != nil {
			t.Fatalf("AppliedMigrations failed: %v", err)
		}
		if len(applied) != 2 || applied[0] != "0001_initial.sql" || applied[1] != "0002_pages.sql" {
			t.Errorf("unexpected applied migrations %v", applied)
		}
	})

	t.Run("rejects empty url", func(t *testing.T) {
		t.Parallel()

		_, err := Open(context.Background(), "  ", DefaultOptions())
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

// TestDefaultOptions tests the default options values.
func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()

	if !opts.CreateIfNotExists {
		t.Error("expected CreateIfNotExists to be true by default")
	}
	if !opts.EnableWAL {
		t.Error("expected EnableWAL to be true by default")
	}
	if opts.Now != nil {
		t.Error("expected Now to be nil by default")
	}
}

// TestParseDatabaseURL tests the accepted URL forms.
func TestParseDatabaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "plain path", url: "data/index.db", want: filepath.Clean("data/index.db")},
		{name: "sqlite url", url: "sqlite://data.db?mode=rwc", want: "data.db"},
		{name: "sqlite scheme without slashes", url: "sqlite:data.db", want: "data.db"},
		{name: "file uri", url: "file:/var/lib/index.db?cache=shared", want: "/var/lib/index.db"},
		{name: "memory", url: ":memory:", want: ":memory:"},
		{name: "empty", url: "", wantErr: true},
		{name: "scheme only", url: "sqlite://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseDatabaseURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDatabaseURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseDatabaseURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

// TestClosedDatabase tests that read failures are reported instead of
// being folded into empty results.
func TestClosedDatabase(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}

	if _, err := db.GetUserWithUsername(ctx, "alice"); err == nil {
		t.Error("expected error from GetUserWithUsername on closed database")
	}
	if _, err := db.GetValidTrackerKey(ctx, 1); err == nil {
		t.Error("expected error from GetValidTrackerKey on closed database")
	}
	if _, err := db.VerifyCategory(ctx, "Linux"); err == nil {
		t.Error("expected error from VerifyCategory on closed database")
	}
	if _, err := db.GetPages(ctx); err == nil {
		t.Error("expected error from GetPages on closed database")
	}
	if _, err := db.GetPageByRoute(ctx, "/about"); err == nil {
		t.Error("expected error from GetPageByRoute on closed database")
	}

	_, err := db.GetAllTorrentIDs(ctx)
	if !errors.Is(err, ErrInternal) {
		t.Errorf("expected ErrInternal from GetAllTorrentIDs, got %v", err)
	}
	_, err = db.UpdateTrackerInfo(ctx, strings.Repeat("a", 40), 1, 1)
	if !errors.Is(err, ErrInternal) {
		t.Errorf("expected ErrInternal from UpdateTrackerInfo, got %v", err)
	}
	err = db.IssueTrackerKey(ctx, 1, model.TrackerKey{Key: "k", ValidUntil: testNow})
	if !errors.Is(err, ErrInternal) {
		t.Errorf("expected ErrInternal from IssueTrackerKey, got %v", err)
	}
	err = db.InsertPage(ctx, model.NewPage{Route: "/about", Title: "About"})
	if !errors.Is(err, ErrInternal) {
		t.Errorf("expected ErrInternal from InsertPage, got %v", err)
	}
}
