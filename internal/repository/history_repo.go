package repository

import (
	"alcyxob/gympumped/internal/docstore"
	"alcyxob/gympumped/internal/domain"
	"context"
	"fmt"
	"sort"
)

// workoutHistoryRepository implements WorkoutHistoryRepository.
type workoutHistoryRepository struct {
	store docstore.Store
}

// NewWorkoutHistoryRepository creates the history reader.
func NewWorkoutHistoryRepository(store docstore.Store) WorkoutHistoryRepository {
	return &workoutHistoryRepository{store: store}
}

// ListByDate returns the rows for one day ordered by exercise and set.
func (r *workoutHistoryRepository) ListByDate(ctx context.Context, userID, date string) ([]domain.WorkoutHistory, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	rows, err := r.list(ctx, historyByDate(userID, date))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ExerciseID != rows[j].ExerciseID {
			return rows[i].ExerciseID < rows[j].ExerciseID
		}
		return rows[i].SetNumber < rows[j].SetNumber
	})
	return rows, nil
}

// ListByExercise returns every row for one exercise, oldest date first.
func (r *workoutHistoryRepository) ListByExercise(ctx context.Context, userID, exerciseID string) ([]domain.WorkoutHistory, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	q := docstore.Query{}.Where("userId", userID).Where("exerciseId", exerciseID).OrderBy("date", false)
	return r.list(ctx, q)
}

func (r *workoutHistoryRepository) list(ctx context.Context, q docstore.Query) ([]domain.WorkoutHistory, error) {
	docs, err := r.store.Query(ctx, historyCollectionName, q)
	if err != nil {
		return nil, storeError("list history", err)
	}
	rows := make([]domain.WorkoutHistory, 0, len(docs))
	for _, doc := range docs {
		var row domain.WorkoutHistory
		if err := doc.Decode(&row); err != nil {
			return nil, fmt.Errorf("%w: history row %s: %w", ErrEncoding, doc.ID, err)
		}
		row.ID = doc.ID
		rows = append(rows, row)
	}
	return rows, nil
}
