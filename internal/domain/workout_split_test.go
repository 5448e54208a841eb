package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutSplit_CycleStatus(t *testing.T) {
	var s WorkoutSplit
	assert.Equal(t, StatusInactive, s.Status())

	assert.Equal(t, StatusPlanned, s.CycleStatus())
	assert.True(t, s.Planned())
	assert.False(t, s.IsActive)

	assert.Equal(t, StatusActive, s.CycleStatus())
	assert.True(t, s.IsActive)
	require.NotNil(t, s.IsPlanned)
	assert.False(t, *s.IsPlanned)

	assert.Equal(t, StatusInactive, s.CycleStatus())
	assert.False(t, s.IsActive)
	assert.False(t, s.Planned())
}

func TestWorkoutSplit_ActiveWinsOverPlanned(t *testing.T) {
	planned := true
	s := WorkoutSplit{IsActive: true, IsPlanned: &planned}
	assert.Equal(t, StatusActive, s.Status())

	// Deactivating leaves isPlanned untouched.
	assert.Equal(t, StatusPlanned, s.CycleStatus())
	assert.True(t, *s.IsPlanned)
}

func TestSplitStatus_Next(t *testing.T) {
	assert.Equal(t, StatusPlanned, StatusInactive.Next())
	assert.Equal(t, StatusActive, StatusPlanned.Next())
	assert.Equal(t, StatusInactive, StatusActive.Next())
	assert.Equal(t, "Planned", StatusPlanned.Label())
}

func TestNewSchedule(t *testing.T) {
	schedule, err := NewSchedule(map[string]string{"Monday": "Push", " friday ": "Legs", "sunday": ""})
	require.NoError(t, err)
	require.Len(t, schedule, 7)

	assert.Equal(t, "Push", schedule[Monday].WorkoutType)
	assert.Equal(t, "Legs", schedule[Friday].WorkoutType)
	assert.True(t, schedule[Sunday].IsRest())
	assert.True(t, schedule[Tuesday].IsRest())
	for _, day := range schedule {
		assert.NotNil(t, day.Exercises)
		assert.Empty(t, day.Exercises)
	}

	_, err = NewSchedule(map[string]string{"funday": "Push"})
	assert.ErrorIs(t, err, ErrUnknownDay)
}

func TestWorkoutSplit_Validate(t *testing.T) {
	full, err := NewSchedule(nil)
	require.NoError(t, err)

	assert.NoError(t, WorkoutSplit{Name: "PPL", Schedule: full}.Validate())
	assert.ErrorIs(t, WorkoutSplit{Name: "  ", Schedule: full}.Validate(), ErrEmptySplitName)

	missing := map[string]WorkoutDay{}
	for k, v := range full {
		missing[k] = v
	}
	delete(missing, Thursday)
	assert.ErrorIs(t, WorkoutSplit{Name: "PPL", Schedule: missing}.Validate(), ErrIncompleteSchedule)

	extra := map[string]WorkoutDay{"holiday": {WorkoutType: "Rest"}}
	for k, v := range full {
		extra[k] = v
	}
	assert.ErrorIs(t, ValidateSchedule(extra), ErrUnknownDay)

	negative := map[string]WorkoutDay{}
	for k, v := range full {
		negative[k] = v
	}
	negative[Monday] = WorkoutDay{WorkoutType: "Push", Exercises: []Exercise{{Name: "Bench", Sets: -1}}}
	assert.ErrorIs(t, ValidateSchedule(negative), ErrNegativeSets)
}

func TestDayName(t *testing.T) {
	monday := time.Date(2025, 1, 6, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, Monday, DayName(monday))
	assert.Equal(t, Sunday, DayName(monday.AddDate(0, 0, 6)))
	assert.Equal(t, "1/6/2025", FormatSplitDate(monday))
	for _, d := range DayNames {
		assert.True(t, IsDayName(d))
	}
	assert.False(t, IsDayName("Monday"))
}
