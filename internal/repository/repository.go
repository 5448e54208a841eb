package repository

import (
	"alcyxob/gympumped/internal/docstore"
	"alcyxob/gympumped/internal/domain"
	"context"
	"errors"
	"fmt"
	"time"
)

// Error constants for the repository layer. Store failures are wrapped, so
// use errors.Is.
var (
	ErrNotFound           = RepositoryError("not found")
	ErrStoreUnavailable   = RepositoryError("document store unavailable")
	ErrEncoding           = RepositoryError("document encoding failed")
	ErrPreconditionFailed = RepositoryError("precondition failed")
	ErrConflict           = RepositoryError("already exists")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Clock supplies write timestamps. Nil means time.Now.
type Clock func() time.Time

// stamp returns the clock's time in UTC, truncated to the millisecond
// precision BSON dates keep, so a value read back equals the value written.
func (c Clock) stamp() time.Time {
	now := time.Now
	if c != nil {
		now = c
	}
	return now().UTC().Truncate(time.Millisecond)
}

// storeError maps a docstore failure onto the repository taxonomy.
func storeError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, docstore.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, docstore.ErrNotDocument):
		return fmt.Errorf("%s: %w: %w", op, ErrEncoding, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}
}

// DecodeFailure is a stored document that could not be read as the expected shape.
type DecodeFailure struct {
	ID  string
	Err error
}

// SplitList is the result of SplitRepository.List. Documents that failed to
// decode are not in Splits; they are reported in Dropped so the caller
// chooses what to do about them.
type SplitList struct {
	Splits  []domain.WorkoutSplit
	Dropped []DecodeFailure
}

// SplitRepository stores a user's workout splits at users/{userId}/workoutSplits.
type SplitRepository interface {
	// Save assigns an ID when missing, stamps createdAt and updatedAt, and
	// overwrites any existing document. Returns the split as stored.
	Save(ctx context.Context, userID string, split domain.WorkoutSplit) (domain.WorkoutSplit, error)
	// List returns every split the user owns, newest createdAt first.
	List(ctx context.Context, userID string) (SplitList, error)
	// Delete is idempotent.
	Delete(ctx context.Context, userID, splitID string) error
	// Update merges the split's fields into the stored document and refreshes
	// updatedAt. createdAt is never touched.
	Update(ctx context.Context, userID string, split domain.WorkoutSplit) error
	// DeactivateOthers clears isActive on every active split except keepID.
	DeactivateOthers(ctx context.Context, userID, keepID string) (int, error)
}

// UserRepository stores account records at users/{id}.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// CompletedWorkoutRepository stores one CompletedWorkout per user and date
// together with its denormalized history rows.
type CompletedWorkoutRepository interface {
	// Save overwrites the day's workout and replaces its history rows in one batch.
	Save(ctx context.Context, workout domain.CompletedWorkout) error
	Get(ctx context.Context, userID, date string) (*domain.CompletedWorkout, error)
	// Delete removes the workout and its history rows in one batch. Idempotent.
	Delete(ctx context.Context, userID, date string) error
}

// WorkoutHistoryRepository reads the flat history rows.
type WorkoutHistoryRepository interface {
	ListByDate(ctx context.Context, userID, date string) ([]domain.WorkoutHistory, error)
	ListByExercise(ctx context.Context, userID, exerciseID string) ([]domain.WorkoutHistory, error)
}

// SessionRepository records revoked session tokens.
type SessionRepository interface {
	Revoke(ctx context.Context, tokenID, userID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
