// internal/repository/split_repo.go
package repository

import (
	"alcyxob/gympumped/internal/docstore"
	"alcyxob/gympumped/internal/domain"
	"context"
	"fmt"
	"strings"
)

const splitCollectionName = "workoutSplits"

// splitRepository implements SplitRepository on a docstore.Store.
type splitRepository struct {
	store docstore.Store
	clock Clock
}

// NewSplitRepository creates a split repository. A nil clock uses time.Now.
func NewSplitRepository(store docstore.Store, clock Clock) SplitRepository {
	return &splitRepository{store: store, clock: clock}
}

// SplitsPath is where a user's splits live.
func SplitsPath(userID string) string {
	return docstore.Join("users", userID, splitCollectionName)
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrPreconditionFailed)
	}
	return nil
}

// Save writes the whole split, replacing whatever was stored under its ID.
func (r *splitRepository) Save(ctx context.Context, userID string, split domain.WorkoutSplit) (domain.WorkoutSplit, error) {
	if err := requireUser(userID); err != nil {
		return domain.WorkoutSplit{}, err
	}
	if err := split.Validate(); err != nil {
		return domain.WorkoutSplit{}, fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	if split.ID == "" {
		split.ID = r.store.NewID()
	}
	now := r.clock.stamp()
	split.CreatedAt = now
	split.UpdatedAt = now
	split.Schedule = normalizeSchedule(split.Schedule)

	if err := r.store.Set(ctx, SplitsPath(userID), split.ID, split); err != nil {
		return domain.WorkoutSplit{}, storeError("save split", err)
	}
	return split, nil
}

// List reads every split; undecodable documents go to Dropped.
func (r *splitRepository) List(ctx context.Context, userID string) (SplitList, error) {
	if err := requireUser(userID); err != nil {
		return SplitList{}, err
	}
	docs, err := r.store.Query(ctx, SplitsPath(userID), docstore.Query{}.OrderBy("createdAt", true))
	if err != nil {
		return SplitList{}, storeError("list splits", err)
	}

	result := SplitList{Splits: make([]domain.WorkoutSplit, 0, len(docs))}
	for _, doc := range docs {
		split, err := decodeSplit(doc)
		if err != nil {
			result.Dropped = append(result.Dropped, DecodeFailure{ID: doc.ID, Err: err})
			continue
		}
		result.Splits = append(result.Splits, split)
	}
	return result, nil
}

func decodeSplit(doc docstore.Document) (domain.WorkoutSplit, error) {
	var split domain.WorkoutSplit
	if err := doc.Decode(&split); err != nil {
		return domain.WorkoutSplit{}, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if err := split.Validate(); err != nil {
		return domain.WorkoutSplit{}, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	split.ID = doc.ID
	split.Schedule = normalizeSchedule(split.Schedule)
	return split, nil
}

// normalizeSchedule copies the schedule with every exercise list non-nil so
// an empty day reads back the way it was written.
func normalizeSchedule(schedule map[string]domain.WorkoutDay) map[string]domain.WorkoutDay {
	out := make(map[string]domain.WorkoutDay, len(schedule))
	for name, day := range schedule {
		if day.Exercises == nil {
			day.Exercises = []domain.Exercise{}
		}
		out[name] = day
	}
	return out
}

func (r *splitRepository) Delete(ctx context.Context, userID, splitID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if splitID == "" {
		return fmt.Errorf("%w: split id is required", ErrPreconditionFailed)
	}
	return storeError("delete split", r.store.Delete(ctx, SplitsPath(userID), splitID))
}

// Update merges the fields the split carries. isActive is always written;
// name, dates and schedule only when set; isPlanned only when non-nil.
func (r *splitRepository) Update(ctx context.Context, userID string, split domain.WorkoutSplit) error {
	if split.ID == "" {
		return fmt.Errorf("%w: split id is required for update", ErrPreconditionFailed)
	}
	if err := requireUser(userID); err != nil {
		return err
	}

	fields := map[string]any{
		"isActive":  split.IsActive,
		"updatedAt": r.clock.stamp(),
	}
	if split.Name != "" {
		fields["name"] = split.Name
	}
	if split.StartDate != "" {
		fields["startDate"] = split.StartDate
	}
	if split.EndDate != "" {
		fields["endDate"] = split.EndDate
	}
	if split.Schedule != nil {
		if err := domain.ValidateSchedule(split.Schedule); err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		fields["schedule"] = normalizeSchedule(split.Schedule)
	}
	if split.IsPlanned != nil {
		fields["isPlanned"] = *split.IsPlanned
	}

	return storeError("update split", r.store.Merge(ctx, SplitsPath(userID), split.ID, fields))
}

func (r *splitRepository) DeactivateOthers(ctx context.Context, userID, keepID string) (int, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	path := SplitsPath(userID)
	docs, err := r.store.Query(ctx, path, docstore.Query{}.Where("isActive", true))
	if err != nil {
		return 0, storeError("find active splits", err)
	}

	changed := 0
	for _, doc := range docs {
		if doc.ID == keepID {
			continue
		}
		fields := map[string]any{"isActive": false, "updatedAt": r.clock.stamp()}
		if err := r.store.Merge(ctx, path, doc.ID, fields); err != nil {
			return changed, storeError("deactivate split", err)
		}
		changed++
	}
	return changed, nil
}
