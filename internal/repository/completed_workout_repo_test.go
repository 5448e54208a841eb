package repository

import (
	"alcyxob/gympumped/internal/docstore"
	"alcyxob/gympumped/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pushDay(userID, date string, sets int) domain.CompletedWorkout {
	weight := 80
	ex := domain.CompletedExercise{ExerciseID: "bench", Name: "Bench"}
	for i := 1; i <= sets; i++ {
		ex.Sets = append(ex.Sets, domain.CompletedSet{SetNumber: i, Reps: 8, Weight: &weight, Completed: true})
	}
	ex.Sets = append(ex.Sets, domain.CompletedSet{SetNumber: sets + 1, Reps: 0, Completed: false})
	return domain.CompletedWorkout{
		UserID:      userID,
		Date:        date,
		SplitID:     "s1",
		WorkoutType: "Push",
		Exercises:   []domain.CompletedExercise{ex},
		CompletedAt: testBase,
	}
}

func TestCompletedWorkoutRepo_SaveWritesHistoryRows(t *testing.T) {
	store := docstore.NewMemory()
	repo := NewCompletedWorkoutRepository(store, nil)
	history := NewWorkoutHistoryRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, pushDay("u1", "2025-01-06", 3)))

	got, err := repo.Get(ctx, "u1", "2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, "Push", got.WorkoutType)
	require.Len(t, got.Exercises, 1)
	assert.Len(t, got.Exercises[0].Sets, 4)

	rows, err := history.ListByDate(ctx, "u1", "2025-01-06")
	require.NoError(t, err)
	require.Len(t, rows, 3, "incomplete sets are not denormalized")
	for i, row := range rows {
		assert.Equal(t, i+1, row.SetNumber)
		assert.Equal(t, "bench", row.ExerciseID)
		assert.NotEmpty(t, row.ID)
	}
}

func TestCompletedWorkoutRepo_SaveReplacesHistoryForTheDay(t *testing.T) {
	store := docstore.NewMemory()
	repo := NewCompletedWorkoutRepository(store, nil)
	history := NewWorkoutHistoryRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, pushDay("u1", "2025-01-06", 3)))
	require.NoError(t, repo.Save(ctx, pushDay("u1", "2025-01-07", 2)))
	require.NoError(t, repo.Save(ctx, pushDay("u1", "2025-01-06", 1)))

	rows, err := history.ListByDate(ctx, "u1", "2025-01-06")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = history.ListByDate(ctx, "u1", "2025-01-07")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	byExercise, err := history.ListByExercise(ctx, "u1", "bench")
	require.NoError(t, err)
	require.Len(t, byExercise, 3)
	assert.Equal(t, "2025-01-06", byExercise[0].Date)
	assert.Equal(t, "2025-01-07", byExercise[2].Date)
}

func TestCompletedWorkoutRepo_DeleteRemovesRowsAndIsIdempotent(t *testing.T) {
	store := docstore.NewMemory()
	repo := NewCompletedWorkoutRepository(store, nil)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, pushDay("u1", "2025-01-06", 3)))
	require.NoError(t, repo.Save(ctx, pushDay("u2", "2025-01-06", 2)))

	require.NoError(t, repo.Delete(ctx, "u1", "2025-01-06"))
	require.NoError(t, repo.Delete(ctx, "u1", "2025-01-06"))

	_, err := repo.Get(ctx, "u1", "2025-01-06")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, store.Len(historyCollectionName), "other users' rows survive")
}

func TestCompletedWorkoutRepo_RejectsBadDate(t *testing.T) {
	repo := NewCompletedWorkoutRepository(docstore.NewMemory(), nil)

	err := repo.Save(context.Background(), pushDay("u1", "1/6/2025", 1))
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestCompletedWorkoutRepo_BatchFailureIsStoreUnavailable(t *testing.T) {
	store := &failingStore{Store: docstore.NewMemory()}
	repo := NewCompletedWorkoutRepository(store, nil)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, pushDay("u1", "2025-01-06", 1)))
	store.setDown(true)
	err := repo.Delete(ctx, "u1", "2025-01-06")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
