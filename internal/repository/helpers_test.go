package repository

import (
	"alcyxob/gympumped/internal/docstore"
	"alcyxob/gympumped/internal/domain"
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

var errBackendDown = errors.New("connection refused")

// failingStore wraps a store and fails every call while down is set.
type failingStore struct {
	docstore.Store
	mu     sync.Mutex
	down   bool
	writes int
}

func (f *failingStore) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

func (f *failingStore) fail() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errBackendDown
	}
	return nil
}

func (f *failingStore) countWrite() {
	f.mu.Lock()
	f.writes++
	f.mu.Unlock()
}

func (f *failingStore) Set(ctx context.Context, path, id string, doc any) error {
	f.countWrite()
	if err := f.fail(); err != nil {
		return err
	}
	return f.Store.Set(ctx, path, id, doc)
}

func (f *failingStore) Merge(ctx context.Context, path, id string, fields map[string]any) error {
	f.countWrite()
	if err := f.fail(); err != nil {
		return err
	}
	return f.Store.Merge(ctx, path, id, fields)
}

func (f *failingStore) Query(ctx context.Context, path string, q docstore.Query) ([]docstore.Document, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return f.Store.Query(ctx, path, q)
}

func (f *failingStore) Batch(ctx context.Context, ops []docstore.Op) error {
	f.countWrite()
	if err := f.fail(); err != nil {
		return err
	}
	return f.Store.Batch(ctx, ops)
}

// stepClock returns base, base+1s, base+2s, ... on successive calls.
func stepClock(base time.Time) Clock {
	var mu sync.Mutex
	n := 0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := base.Add(time.Duration(n) * time.Second)
		n++
		return t
	}
}

func newTestSplit(t *testing.T, name string, types map[string]string) domain.WorkoutSplit {
	t.Helper()
	schedule, err := domain.NewSchedule(types)
	if err != nil {
		t.Fatalf("building schedule: %v", err)
	}
	return domain.WorkoutSplit{
		Name:      name,
		Schedule:  schedule,
		StartDate: "1/1/2025",
		EndDate:   "1/8/2025",
	}
}
