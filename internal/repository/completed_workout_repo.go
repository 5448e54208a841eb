// internal/repository/completed_workout_repo.go
package repository

import (
	"alcyxob/gympumped/internal/docstore"
	"alcyxob/gympumped/internal/domain"
	"context"
	"fmt"
)

const (
	completedWorkoutCollectionName = "completedWorkouts"
	historyCollectionName          = "workoutHistory"
)

// completedWorkoutRepository implements CompletedWorkoutRepository.
type completedWorkoutRepository struct {
	store docstore.Store
	clock Clock
}

// NewCompletedWorkoutRepository creates the repository. A nil clock uses time.Now.
func NewCompletedWorkoutRepository(store docstore.Store, clock Clock) CompletedWorkoutRepository {
	return &completedWorkoutRepository{store: store, clock: clock}
}

func (r *completedWorkoutRepository) Save(ctx context.Context, workout domain.CompletedWorkout) error {
	if err := requireUser(workout.UserID); err != nil {
		return err
	}
	if _, err := domain.ParseWorkoutDate(workout.Date); err != nil {
		return fmt.Errorf("%w: invalid date %q", ErrEncoding, workout.Date)
	}
	if workout.CompletedAt.IsZero() {
		workout.CompletedAt = r.clock.stamp()
	}
	if workout.Exercises == nil {
		workout.Exercises = []domain.CompletedExercise{}
	}

	ops, err := r.historyDeletes(ctx, workout.UserID, workout.Date)
	if err != nil {
		return err
	}
	ops = append(ops, docstore.SetOp(completedWorkoutCollectionName, domain.CompletedWorkoutKey(workout.UserID, workout.Date), workout))
	for _, row := range workout.HistoryRows() {
		ops = append(ops, docstore.SetOp(historyCollectionName, r.store.NewID(), row))
	}
	return storeError("save completed workout", r.store.Batch(ctx, ops))
}

func (r *completedWorkoutRepository) Get(ctx context.Context, userID, date string) (*domain.CompletedWorkout, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	doc, err := r.store.Get(ctx, completedWorkoutCollectionName, domain.CompletedWorkoutKey(userID, date))
	if err != nil {
		return nil, storeError("get completed workout", err)
	}
	var workout domain.CompletedWorkout
	if err := doc.Decode(&workout); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return &workout, nil
}

func (r *completedWorkoutRepository) Delete(ctx context.Context, userID, date string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	ops, err := r.historyDeletes(ctx, userID, date)
	if err != nil {
		return err
	}
	ops = append(ops, docstore.DeleteOp(completedWorkoutCollectionName, domain.CompletedWorkoutKey(userID, date)))
	return storeError("delete completed workout", r.store.Batch(ctx, ops))
}

// historyDeletes lists delete ops for every history row of the user's date.
func (r *completedWorkoutRepository) historyDeletes(ctx context.Context, userID, date string) ([]docstore.Op, error) {
	docs, err := r.store.Query(ctx, historyCollectionName, historyByDate(userID, date))
	if err != nil {
		return nil, storeError("find history rows", err)
	}
	ops := make([]docstore.Op, 0, len(docs)+1)
	for _, doc := range docs {
		ops = append(ops, docstore.DeleteOp(historyCollectionName, doc.ID))
	}
	return ops, nil
}

func historyByDate(userID, date string) docstore.Query {
	return docstore.Query{}.Where("userId", userID).Where("date", date).OrderBy("createdAt", false)
}
