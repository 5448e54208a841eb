package service

import (
	"alcyxob/gympumped/internal/docstore"
	"alcyxob/gympumped/internal/domain"
	"alcyxob/gympumped/internal/repository"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

var testBase = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC) // a Monday

var testUser = domain.User{ID: "u1", DisplayName: "Ann", Email: "ann@example.com"}

// tickingClock advances one second per call so createdAt orders saves.
func tickingClock() repository.Clock {
	var mu sync.Mutex
	n := 0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		n++
		return testBase.Add(time.Duration(n) * time.Second)
	}
}

// flakySplitRepo delegates to a real repository unless an error is set.
type flakySplitRepo struct {
	repository.SplitRepository
	listErr  error
	writeErr error
}

func (f *flakySplitRepo) List(ctx context.Context, userID string) (repository.SplitList, error) {
	if f.listErr != nil {
		return repository.SplitList{}, f.listErr
	}
	return f.SplitRepository.List(ctx, userID)
}

func (f *flakySplitRepo) Save(ctx context.Context, userID string, split domain.WorkoutSplit) (domain.WorkoutSplit, error) {
	if f.writeErr != nil {
		return domain.WorkoutSplit{}, f.writeErr
	}
	return f.SplitRepository.Save(ctx, userID, split)
}

func (f *flakySplitRepo) Update(ctx context.Context, userID string, split domain.WorkoutSplit) error {
	if split.ID == "" {
		return f.SplitRepository.Update(ctx, userID, split)
	}
	if f.writeErr != nil {
		return f.writeErr
	}
	return f.SplitRepository.Update(ctx, userID, split)
}

func (f *flakySplitRepo) Delete(ctx context.Context, userID, splitID string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	return f.SplitRepository.Delete(ctx, userID, splitID)
}

func newFlakyRepo() *flakySplitRepo {
	return &flakySplitRepo{SplitRepository: repository.NewSplitRepository(docstore.NewMemory(), tickingClock())}
}

var errUnavailable = fmt.Errorf("save split: %w: connection refused", repository.ErrStoreUnavailable)

func testSplit(t *testing.T, name string, types map[string]string) domain.WorkoutSplit {
	t.Helper()
	schedule, err := domain.NewSchedule(types)
	if err != nil {
		t.Fatalf("building schedule: %v", err)
	}
	return domain.WorkoutSplit{
		Name:      name,
		Schedule:  schedule,
		StartDate: "1/6/2025",
		EndDate:   "3/31/2025",
	}
}
