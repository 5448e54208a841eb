package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletedWorkout_HistoryRows(t *testing.T) {
	w := 40
	at := time.Date(2025, 1, 6, 18, 0, 0, 0, time.UTC)
	workout := CompletedWorkout{
		UserID:      "u1",
		Date:        "2025-01-06",
		SplitID:     "s1",
		WorkoutType: "Pull",
		CompletedAt: at,
		Exercises: []CompletedExercise{
			{ExerciseID: "row", Name: "Row", Sets: []CompletedSet{
				{SetNumber: 1, Reps: 10, Weight: &w, Completed: true},
				{SetNumber: 2, Reps: 0, Completed: false},
			}},
			{ExerciseID: "curl", Name: "Curl", Sets: []CompletedSet{
				{SetNumber: 1, Reps: 12, Completed: true},
			}},
		},
	}

	rows := workout.HistoryRows()
	require.Len(t, rows, 2)
	assert.Equal(t, WorkoutHistory{
		UserID: "u1", Date: "2025-01-06", ExerciseID: "row", ExerciseName: "Row",
		SetNumber: 1, Reps: 10, Weight: &w, SplitID: "s1", WorkoutType: "Pull", CreatedAt: at,
	}, rows[0])
	assert.Equal(t, "curl", rows[1].ExerciseID)
	assert.Nil(t, rows[1].Weight)

	assert.Empty(t, CompletedWorkout{}.HistoryRows())
}

func TestCompletedWorkoutKeyAndDate(t *testing.T) {
	assert.Equal(t, "u1_2025-01-06", CompletedWorkoutKey("u1", "2025-01-06"))

	_, err := ParseWorkoutDate("2025-01-06")
	assert.NoError(t, err)
	_, err = ParseWorkoutDate("1/6/2025")
	assert.Error(t, err)
	_, err = ParseWorkoutDate("2025-02-30")
	assert.Error(t, err)
}
