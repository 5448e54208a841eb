// internal/domain/completed_workout.go
package domain

import (
	"fmt"
	"time"
)

// WorkoutDateLayout is the calendar date used for completed workout keys and history rows.
const WorkoutDateLayout = "2006-01-02"

// CompletedSet is one performed set.
type CompletedSet struct {
	SetNumber int  `bson:"setNumber" json:"setNumber"`
	Reps      int  `bson:"reps" json:"reps"`
	Weight    *int `bson:"weight,omitempty" json:"weight,omitempty"`
	Completed bool `bson:"completed" json:"completed"`
}

// CompletedExercise groups the sets performed for one planned exercise.
type CompletedExercise struct {
	ExerciseID string         `bson:"exerciseId" json:"exerciseId"`
	Name       string         `bson:"name" json:"name"`
	Sets       []CompletedSet `bson:"sets" json:"sets"`
}

// CompletedWorkout records what a user actually did on a date.
// There is at most one per (user, date); see CompletedWorkoutKey.
type CompletedWorkout struct {
	UserID      string              `bson:"userId" json:"userId"`
	Date        string              `bson:"date" json:"date"` // WorkoutDateLayout
	SplitID     string              `bson:"splitId,omitempty" json:"splitId,omitempty"`
	SplitName   string              `bson:"splitName,omitempty" json:"splitName,omitempty"`
	WorkoutType string              `bson:"workoutType" json:"workoutType"`
	Exercises   []CompletedExercise `bson:"exercises" json:"exercises"`
	Notes       string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CompletedAt time.Time           `bson:"completedAt" json:"completedAt"`
}

// WorkoutHistory is the flat, one-row-per-set view of completed workouts used for trend queries.
type WorkoutHistory struct {
	ID           string    `bson:"-" json:"id"`
	UserID       string    `bson:"userId" json:"userId"`
	Date         string    `bson:"date" json:"date"`
	ExerciseID   string    `bson:"exerciseId" json:"exerciseId"`
	ExerciseName string    `bson:"exerciseName" json:"exerciseName"`
	SetNumber    int       `bson:"setNumber" json:"setNumber"`
	Reps         int       `bson:"reps" json:"reps"`
	Weight       *int      `bson:"weight,omitempty" json:"weight,omitempty"`
	SplitID      string    `bson:"splitId,omitempty" json:"splitId,omitempty"`
	WorkoutType  string    `bson:"workoutType" json:"workoutType"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// CompletedWorkoutKey is the composite document key "{userId}_{date}".
func CompletedWorkoutKey(userID, date string) string {
	return fmt.Sprintf("%s_%s", userID, date)
}

// ParseWorkoutDate validates a WorkoutDateLayout date string.
func ParseWorkoutDate(date string) (time.Time, error) {
	return time.Parse(WorkoutDateLayout, date)
}

// HistoryRows flattens the workout into one history row per completed set.
// Sets that were not completed are skipped.
func (w CompletedWorkout) HistoryRows() []WorkoutHistory {
	var rows []WorkoutHistory
	for _, ex := range w.Exercises {
		for _, set := range ex.Sets {
			if !set.Completed {
				continue
			}
			rows = append(rows, WorkoutHistory{
				UserID:       w.UserID,
				Date:         w.Date,
				ExerciseID:   ex.ExerciseID,
				ExerciseName: ex.Name,
				SetNumber:    set.SetNumber,
				Reps:         set.Reps,
				Weight:       set.Weight,
				SplitID:      w.SplitID,
				WorkoutType:  w.WorkoutType,
				CreatedAt:    w.CompletedAt,
			})
		}
	}
	return rows
}
