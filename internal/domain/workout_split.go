// internal/domain/workout_split.go
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Schedule keys. A valid schedule carries every one of these exactly once.
const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

// DayNames lists the schedule keys in calendar order, Monday first.
var DayNames = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// RestWorkoutType is the distinguished workoutType meaning no training.
const RestWorkoutType = "Rest"

// SplitDateLayout is the numeric date format the creation form writes (e.g. "1/8/2025").
const SplitDateLayout = "1/2/2006"

var (
	ErrEmptySplitName     = errors.New("split name cannot be empty")
	ErrIncompleteSchedule = errors.New("schedule must contain all seven days")
	ErrUnknownDay         = errors.New("unknown schedule day")
	ErrNegativeSets       = errors.New("exercise sets cannot be negative")
)

// WorkoutDay is one calendar day's plan within a split.
type WorkoutDay struct {
	WorkoutType string     `bson:"workoutType" json:"workoutType"` // Free-form label, "Rest" means no training
	Exercises   []Exercise `bson:"exercises" json:"exercises"`
}

// IsRest reports whether the day is a rest day.
func (d WorkoutDay) IsRest() bool {
	return d.WorkoutType == RestWorkoutType
}

// WorkoutSplit is a named weekly training plan owned by exactly one user.
// Ownership comes from where it is stored (users/{userId}/workoutSplits), so
// there is no user field to validate.
type WorkoutSplit struct {
	ID        string                `bson:"-" json:"id,omitempty"` // Document key, assigned by the store when empty
	Name      string                `bson:"name" json:"name"`
	Schedule  map[string]WorkoutDay `bson:"schedule" json:"schedule"`
	StartDate string                `bson:"startDate" json:"startDate"` // Numeric date string, no time component
	EndDate   string                `bson:"endDate" json:"endDate"`
	IsActive  bool                  `bson:"isActive" json:"isActive"`
	IsPlanned *bool                 `bson:"isPlanned,omitempty" json:"isPlanned,omitempty"` // Absent means false
	CreatedAt time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// Planned reports the isPlanned flag, treating absent as false.
func (s WorkoutSplit) Planned() bool {
	return s.IsPlanned != nil && *s.IsPlanned
}

// Status derives the display status from the two stored flags.
func (s WorkoutSplit) Status() SplitStatus {
	switch {
	case s.IsActive:
		return StatusActive
	case s.Planned():
		return StatusPlanned
	default:
		return StatusInactive
	}
}

// CycleStatus applies the inactive -> planned -> active -> inactive transition
// to the split in place and returns the resulting status.
func (s *WorkoutSplit) CycleStatus() SplitStatus {
	switch {
	case s.IsActive:
		s.IsActive = false
	case s.Planned():
		planned := false
		s.IsPlanned = &planned
		s.IsActive = true
	default:
		planned := true
		s.IsPlanned = &planned
	}
	return s.Status()
}

// Day returns the plan for the given schedule key.
func (s WorkoutSplit) Day(name string) (WorkoutDay, bool) {
	day, ok := s.Schedule[name]
	return day, ok
}

// Validate checks the invariants every stored split must satisfy.
func (s WorkoutSplit) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptySplitName
	}
	if err := ValidateSchedule(s.Schedule); err != nil {
		return err
	}
	return nil
}

// ValidateSchedule requires exactly the seven day keys.
func ValidateSchedule(schedule map[string]WorkoutDay) error {
	for _, name := range DayNames {
		day, ok := schedule[name]
		if !ok {
			return fmt.Errorf("%w: missing %s", ErrIncompleteSchedule, name)
		}
		for _, ex := range day.Exercises {
			if ex.Sets < 0 {
				return fmt.Errorf("%w: %s on %s", ErrNegativeSets, ex.Name, name)
			}
		}
	}
	if len(schedule) != len(DayNames) {
		for key := range schedule {
			if !IsDayName(key) {
				return fmt.Errorf("%w: %q", ErrUnknownDay, key)
			}
		}
	}
	return nil
}

// NewSchedule builds a complete schedule from per-day workout types.
// Days not mentioned default to "Rest"; every day starts with no exercises.
func NewSchedule(types map[string]string) (map[string]WorkoutDay, error) {
	schedule := make(map[string]WorkoutDay, len(DayNames))
	for _, name := range DayNames {
		schedule[name] = WorkoutDay{WorkoutType: RestWorkoutType, Exercises: []Exercise{}}
	}
	for key, workoutType := range types {
		name := strings.ToLower(strings.TrimSpace(key))
		if !IsDayName(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDay, key)
		}
		if strings.TrimSpace(workoutType) == "" {
			workoutType = RestWorkoutType
		}
		schedule[name] = WorkoutDay{WorkoutType: workoutType, Exercises: []Exercise{}}
	}
	return schedule, nil
}

// IsDayName reports whether name is one of the seven schedule keys.
func IsDayName(name string) bool {
	for _, d := range DayNames {
		if d == name {
			return true
		}
	}
	return false
}

// DayName returns the schedule key for t's weekday.
func DayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// FormatSplitDate renders t the way the creation form stores split dates.
func FormatSplitDate(t time.Time) string {
	return t.Format(SplitDateLayout)
}
