package database

import (
	"context"
	"testing"
	"time"

	"github.com/nao1215/torrust-index/internal/model"
)

// TestGetValidTrackerKey tests the one-week validity window.
func TestGetValidTrackerKey(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	t.Run("returns nil when user has no keys", func(t *testing.T) {
		userID := mustInsertUser(t, db, "nokeys")
		key, err := db.GetValidTrackerKey(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != nil {
			t.Errorf("expected nil, got %+v", key)
		}
	})

	t.Run("ignores key expiring within a week", func(t *testing.T) {
		userID := mustInsertUser(t, db, "soon")
		issue(t, db, userID, "soonkey", testNow.Add(6*24*time.Hour))

		key, err := db.GetValidTrackerKey(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != nil {
			t.Errorf("expected nil for key expiring in 6 days, got %+v", key)
		}
	})

	t.Run("ignores key expiring exactly at the threshold", func(t *testing.T) {
		userID := mustInsertUser(t, db, "edge")
		issue(t, db, userID, "edgekey", testNow.Add(ValidKeyWindow))

		key, err := db.GetValidTrackerKey(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != nil {
			t.Errorf("expected nil for key expiring at threshold, got %+v", key)
		}
	})

	t.Run("returns key valid beyond a week", func(t *testing.T) {
		userID := mustInsertUser(t, db, "later")
		validUntil := testNow.Add(14 * 24 * time.Hour)
		issue(t, db, userID, "laterkey", validUntil)

		key, err := db.GetValidTrackerKey(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key == nil {
			t.Fatal("expected key, got nil")
		}
		if key.Key != "laterkey" {
			t.Errorf("expected 'laterkey', got %q", key.Key)
		}
		if !key.ValidUntil.Equal(validUntil) {
			t.Errorf("expected valid until %v, got %v", validUntil, key.ValidUntil)
		}
	})

	t.Run("prefers the key with the latest expiry", func(t *testing.T) {
		userID := mustInsertUser(t, db, "many")
		issue(t, db, userID, "first", testNow.Add(10*24*time.Hour))
		issue(t, db, userID, "second", testNow.Add(20*24*time.Hour))
		issue(t, db, userID, "third", testNow.Add(15*24*time.Hour))

		key, err := db.GetValidTrackerKey(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key == nil || key.Key != "second" {
			t.Errorf("expected 'second', got %+v", key)
		}
	})

	t.Run("keys of other users are not returned", func(t *testing.T) {
		owner := mustInsertUser(t, db, "owner")
		other := mustInsertUser(t, db, "other")
		issue(t, db, owner, "ownerkey", testNow.Add(30*24*time.Hour))

		key, err := db.GetValidTrackerKey(ctx, other)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != nil {
			t.Errorf("expected nil, got %+v", key)
		}
	})
}

// TestIssueTrackerKeyUnknownUser tests the foreign key on tracker keys.
func TestIssueTrackerKeyUnknownUser(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)

	err := db.IssueTrackerKey(context.Background(), 12345, model.TrackerKey{
		Key:        "orphan",
		ValidUntil: testNow.Add(30 * 24 * time.Hour),
	})
	if err == nil {
		t.Error("expected error issuing a key for an unknown user")
	}
}

func issue(t *testing.T, db *Database, userID int64, key string, validUntil time.Time) {
	t.Helper()

	if err := db.IssueTrackerKey(context.Background(), userID, model.TrackerKey{Key: key, ValidUntil: validUntil}); err != nil {
		t.Fatalf("failed to issue key %q: %v", key, err)
	}
}
