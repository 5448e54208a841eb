// internal/service/workout_log_service.go
package service

import (
	"alcyxob/gympumped/internal/domain"
	"alcyxob/gympumped/internal/repository"
	"alcyxob/gympumped/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrExportUnavailable = errors.New("history export is not configured")
	ErrInvalidDate       = fmt.Errorf("date must use the %s format", domain.WorkoutDateLayout)
	ErrWorkoutNotFound   = errors.New("no workout logged for this date")
)

// TodayKind says what the logger should show for today.
type TodayKind string

const (
	NoActiveSplit TodayKind = "no_active_split"
	RestDay       TodayKind = "rest_day"
	Scheduled     TodayKind = "scheduled"
	NotScheduled  TodayKind = "not_scheduled" // Day missing or without a workout type
)

// TodaysWorkout is the plan for one calendar day.
type TodaysWorkout struct {
	Kind    TodayKind            `json:"kind"`
	Day     string               `json:"day"`  // Schedule key, e.g. "monday"
	Date    string               `json:"date"` // WorkoutDateLayout
	Split   *domain.WorkoutSplit `json:"split,omitempty"`
	Workout *domain.WorkoutDay   `json:"workout,omitempty"`
}

// HistoryExport is where an uploaded history export can be fetched from.
type HistoryExport struct {
	ObjectKey string    `json:"objectKey"`
	URL       string    `json:"url"`
	Rows      int       `json:"rows"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type WorkoutLogService interface {
	TodaysWorkout(ctx context.Context, userID string, now time.Time) (TodaysWorkout, error)
	LogWorkout(ctx context.Context, userID string, workout domain.CompletedWorkout) (*domain.CompletedWorkout, error)
	GetCompletedWorkout(ctx context.Context, userID, date string) (*domain.CompletedWorkout, error)
	DeleteCompletedWorkout(ctx context.Context, userID, date string) error
	History(ctx context.Context, userID, date string) ([]domain.WorkoutHistory, error)
	ExerciseHistory(ctx context.Context, userID, exerciseID string) ([]domain.WorkoutHistory, error)
	ExportHistory(ctx context.Context, userID, date string) (*HistoryExport, error)
}

// workoutLogService implements WorkoutLogService.
type workoutLogService struct {
	splits      *SplitController
	workoutRepo repository.CompletedWorkoutRepository
	historyRepo repository.WorkoutHistoryRepository
	fileStorage storage.FileStorage // nil disables exports
	exportTTL   time.Duration
}

// NewWorkoutLogService creates the service. fileStorage may be nil.
func NewWorkoutLogService(
	splits *SplitController,
	workoutRepo repository.CompletedWorkoutRepository,
	historyRepo repository.WorkoutHistoryRepository,
	fileStorage storage.FileStorage,
) WorkoutLogService {
	return &workoutLogService{
		splits:      splits,
		workoutRepo: workoutRepo,
		historyRepo: historyRepo,
		fileStorage: fileStorage,
		exportTTL:   storage.DefaultPresignedURLExpiry,
	}
}

// TodaysWorkout re-reads the user's splits and looks up now's weekday in the
// first active one.
func (s *workoutLogService) TodaysWorkout(ctx context.Context, userID string, now time.Time) (TodaysWorkout, error) {
	s.splits.Refresh(ctx, userID)

	today := TodaysWorkout{
		Day:  domain.DayName(now),
		Date: now.Format(domain.WorkoutDateLayout),
	}

	split, ok := s.splits.Active(userID)
	if !ok {
		today.Kind = NoActiveSplit
		return today, nil
	}
	today.Split = &split

	day, ok := split.Day(today.Day)
	switch {
	case !ok || strings.TrimSpace(day.WorkoutType) == "":
		today.Kind = NotScheduled
	case day.IsRest():
		today.Kind = RestDay
		today.Workout = &day
	default:
		today.Kind = Scheduled
		today.Workout = &day
	}
	return today, nil
}

// LogWorkout stores the user's workout for its date, replacing any earlier log.
func (s *workoutLogService) LogWorkout(ctx context.Context, userID string, workout domain.CompletedWorkout) (*domain.CompletedWorkout, error) {
	if _, err := domain.ParseWorkoutDate(workout.Date); err != nil {
		return nil, ErrInvalidDate
	}
	workout.UserID = userID
	if workout.CompletedAt.IsZero() {
		workout.CompletedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	if err := s.workoutRepo.Save(ctx, workout); err != nil {
		log.Printf("ERROR: Failed to log workout for user %s on %s: %v", userID, workout.Date, err)
		return nil, err
	}
	log.Printf("INFO: Logged %s workout for user %s on %s", workout.WorkoutType, userID, workout.Date)
	return &workout, nil
}

func (s *workoutLogService) GetCompletedWorkout(ctx context.Context, userID, date string) (*domain.CompletedWorkout, error) {
	if _, err := domain.ParseWorkoutDate(date); err != nil {
		return nil, ErrInvalidDate
	}
	workout, err := s.workoutRepo.Get(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *workoutLogService) DeleteCompletedWorkout(ctx context.Context, userID, date string) error {
	if _, err := domain.ParseWorkoutDate(date); err != nil {
		return ErrInvalidDate
	}
	if err := s.workoutRepo.Delete(ctx, userID, date); err != nil {
		log.Printf("ERROR: Failed to delete workout for user %s on %s: %v", userID, date, err)
		return err
	}
	return nil
}

func (s *workoutLogService) History(ctx context.Context, userID, date string) ([]domain.WorkoutHistory, error) {
	if _, err := domain.ParseWorkoutDate(date); err != nil {
		return nil, ErrInvalidDate
	}
	return s.historyRepo.ListByDate(ctx, userID, date)
}

func (s *workoutLogService) ExerciseHistory(ctx context.Context, userID, exerciseID string) ([]domain.WorkoutHistory, error) {
	if strings.TrimSpace(exerciseID) == "" {
		return nil, fmt.Errorf("%w: exercise id is required", repository.ErrPreconditionFailed)
	}
	return s.historyRepo.ListByExercise(ctx, userID, exerciseID)
}

// ExportHistory uploads the day's history rows as JSON and returns a
// temporary download link.
func (s *workoutLogService) ExportHistory(ctx context.Context, userID, date string) (*HistoryExport, error) {
	if s.fileStorage == nil {
		return nil, ErrExportUnavailable
	}
	rows, err := s.History(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("encode history export: %w", err)
	}

	objectKey := fmt.Sprintf("exports/%s/%s.json", userID, uuid.NewString())
	if err := s.fileStorage.PutObject(ctx, objectKey, "application/json", body); err != nil {
		return nil, fmt.Errorf("upload history export: %w", err)
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, s.exportTTL)
	if err != nil {
		return nil, fmt.Errorf("presign history export: %w", err)
	}

	return &HistoryExport{
		ObjectKey: objectKey,
		URL:       url,
		Rows:      len(rows),
		ExpiresAt: time.Now().Add(s.exportTTL).UTC(),
	}, nil
}
