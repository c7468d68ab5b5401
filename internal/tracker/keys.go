package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/torrust-index/internal/model"
)

// KeyGenerator creates new tracker keys. *Client implements it.
type KeyGenerator interface {
	GenerateKey(ctx context.Context, ttl time.Duration) (model.TrackerKey, error)
}

// KeyStore is the part of the database the KeyIssuer needs.
// *database.Database implements it.
type KeyStore interface {
	GetValidTrackerKey(ctx context.Context, userID int64) (*model.TrackerKey, error)
	IssueTrackerKey(ctx context.Context, userID int64, key model.TrackerKey) error
}

// KeyIssuer hands out tracker keys to users.
type KeyIssuer struct {
	generator KeyGenerator
	store     KeyStore
	ttl       time.Duration
	logger    *slog.Logger
}

// NewKeyIssuer creates a KeyIssuer requesting keys that live for ttl.
// A nil logger means slog.Default().
func NewKeyIssuer(generator KeyGenerator, store KeyStore, ttl time.Duration, logger *slog.Logger) *KeyIssuer {
	if logger == nil {
		logger = slog.Default()
	}
	return &KeyIssuer{
		generator: generator,
		store:     store,
		ttl:       ttl,
		logger:    logger,
	}
}

// Issue returns the user's current valid key, or a freshly generated one.
// The boolean reports whether a new key was created.
func (k *KeyIssuer) Issue(ctx context.Context, userID int64) (model.TrackerKey, bool, error) {
	existing, err := k.store.GetValidTrackerKey(ctx, userID)
	if err != nil {
		return model.TrackerKey{}, false, err
	}
	if existing != nil {
		k.logger.Debug("reusing valid tracker key", "user_id", userID, "valid_until", existing.ValidUntil)
		return *existing, false, nil
	}

	key, err := k.generator.GenerateKey(ctx, k.ttl)
	if err != nil {
		return model.TrackerKey{}, false, fmt.Errorf("failed to generate tracker key: %w", err)
	}
	if err := k.store.IssueTrackerKey(ctx, userID, key); err != nil {
		return model.TrackerKey{}, false, err
	}

	k.logger.Info("tracker key issued", "user_id", userID, "valid_until", key.ValidUntil)
	return key, true, nil
}
