package repository

import (
	"alcyxob/gympumped/internal/docstore"
	"context"
	"errors"
	"fmt"
	"time"
)

const revokedSessionCollectionName = "revokedSessions"

type revokedSession struct {
	UserID    string    `bson:"userId"`
	ExpiresAt time.Time `bson:"expiresAt"` // Mongo TTL index removes the record after this
}

// sessionRepository implements SessionRepository.
type sessionRepository struct {
	store docstore.Store
}

// NewSessionRepository creates the revocation store.
func NewSessionRepository(store docstore.Store) SessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) Revoke(ctx context.Context, tokenID, userID string, expiresAt time.Time) error {
	if tokenID == "" {
		return fmt.Errorf("%w: token id is required", ErrPreconditionFailed)
	}
	record := revokedSession{UserID: userID, ExpiresAt: expiresAt.UTC()}
	return storeError("revoke session", r.store.Set(ctx, revokedSessionCollectionName, tokenID, record))
}

func (r *sessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	_, err := r.store.Get(ctx, revokedSessionCollectionName, tokenID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, docstore.ErrNotFound) {
		return false, nil
	}
	return false, storeError("check session", err)
}
