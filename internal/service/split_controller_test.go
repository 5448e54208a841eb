package service

import (
	"alcyxob/gympumped/internal/domain"
	"alcyxob/gympumped/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitController_CycleThroughAllStatuses(t *testing.T) {
	ctrl := NewSplitController(newFlakyRepo(), SplitControllerOptions{})
	ctx := context.Background()

	created, err := ctrl.Create(ctx, "u1", testSplit(t, "PPL", map[string]string{"monday": "Push", "tuesday": "Pull", "wednesday": "Legs"}))
	require.NoError(t, err)
	require.Len(t, ctrl.Splits("u1"), 1)

	split := created
	want := []domain.SplitStatus{domain.StatusPlanned, domain.StatusActive, domain.StatusInactive}
	for _, status := range want {
		split, err = ctrl.CycleStatus(ctx, "u1", split)
		require.NoError(t, err)
		assert.Equal(t, status, split.Status())

		held, ok := ctrl.Find("u1", created.ID)
		require.True(t, ok)
		assert.Equal(t, status, held.Status(), "held list reflects the stored flags")
	}

	held, _ := ctrl.Find("u1", created.ID)
	assert.False(t, held.IsActive)
	require.NotNil(t, held.IsPlanned)
	assert.False(t, *held.IsPlanned)
	assert.Equal(t, created.CreatedAt, held.CreatedAt)
}

func TestSplitController_CycleDoesNotMutateInput(t *testing.T) {
	ctrl := NewSplitController(newFlakyRepo(), SplitControllerOptions{})
	ctx := context.Background()

	created, err := ctrl.Create(ctx, "u1", testSplit(t, "Full body", nil))
	require.NoError(t, err)

	_, err = ctrl.CycleStatus(ctx, "u1", created)
	require.NoError(t, err)
	assert.Nil(t, created.IsPlanned)
	assert.False(t, created.IsActive)
}

func TestSplitController_RefreshFailureLeavesEmptyList(t *testing.T) {
	repo := newFlakyRepo()
	ctrl := NewSplitController(repo, SplitControllerOptions{})
	ctx := context.Background()

	_, err := ctrl.Create(ctx, "u1", testSplit(t, "PPL", nil))
	require.NoError(t, err)
	require.Len(t, ctrl.Splits("u1"), 1)

	repo.listErr = errUnavailable
	got := ctrl.Refresh(ctx, "u1")
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, ctrl.Splits("u1"))
}

func TestSplitController_SuppressErrorsByDefault(t *testing.T) {
	repo := newFlakyRepo()
	ctrl := NewSplitController(repo, SplitControllerOptions{})
	ctx := context.Background()

	created, err := ctrl.Create(ctx, "u1", testSplit(t, "PPL", nil))
	require.NoError(t, err)

	repo.writeErr = errUnavailable

	_, err = ctrl.Create(ctx, "u1", testSplit(t, "Another", nil))
	assert.NoError(t, err)
	_, err = ctrl.CycleStatus(ctx, "u1", created)
	assert.NoError(t, err)
	assert.NoError(t, ctrl.Remove(ctx, "u1", created.ID))

	// Nothing changed, and the held list was not refreshed on failure.
	held := ctrl.Splits("u1")
	require.Len(t, held, 1)
	assert.Equal(t, domain.StatusInactive, held[0].Status())
}

func TestSplitController_SurfaceErrors(t *testing.T) {
	repo := newFlakyRepo()
	ctrl := NewSplitController(repo, SplitControllerOptions{ErrorPolicy: SurfaceErrors})
	ctx := context.Background()

	created, err := ctrl.Create(ctx, "u1", testSplit(t, "PPL", nil))
	require.NoError(t, err)

	repo.writeErr = errUnavailable

	_, err = ctrl.Create(ctx, "u1", testSplit(t, "Another", nil))
	assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
	_, err = ctrl.CycleStatus(ctx, "u1", created)
	assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
	assert.ErrorIs(t, ctrl.Remove(ctx, "u1", created.ID), repository.ErrStoreUnavailable)
}

func TestSplitController_CallerErrorsAlwaysReturned(t *testing.T) {
	ctrl := NewSplitController(newFlakyRepo(), SplitControllerOptions{})
	ctx := context.Background()

	_, err := ctrl.CycleStatus(ctx, "u1", testSplit(t, "No id", nil))
	assert.ErrorIs(t, err, repository.ErrPreconditionFailed)

	_, err = ctrl.Create(ctx, "u1", domain.WorkoutSplit{Name: "Broken"})
	assert.ErrorIs(t, err, repository.ErrEncoding)

	missing := testSplit(t, "Gone", nil)
	missing.ID = "does-not-exist"
	_, err = ctrl.CycleStatus(ctx, "u1", missing)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSplitController_MultipleActiveByDefault(t *testing.T) {
	ctrl := NewSplitController(newFlakyRepo(), SplitControllerOptions{})
	ctx := context.Background()

	for _, name := range []string{"A", "B"} {
		s, err := ctrl.Create(ctx, "u1", testSplit(t, name, nil))
		require.NoError(t, err)
		s, err = ctrl.CycleStatus(ctx, "u1", s)
		require.NoError(t, err)
		_, err = ctrl.CycleStatus(ctx, "u1", s)
		require.NoError(t, err)
	}

	active := 0
	for _, s := range ctrl.Splits("u1") {
		if s.IsActive {
			active++
		}
	}
	assert.Equal(t, 2, active)

	first, ok := ctrl.Active("u1")
	require.True(t, ok)
	assert.Equal(t, "B", first.Name, "newest active split wins")
}

func TestSplitController_SingleActive(t *testing.T) {
	ctrl := NewSplitController(newFlakyRepo(), SplitControllerOptions{SingleActive: true})
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"A", "B"} {
		s, err := ctrl.Create(ctx, "u1", testSplit(t, name, nil))
		require.NoError(t, err)
		s, err = ctrl.CycleStatus(ctx, "u1", s)
		require.NoError(t, err)
		_, err = ctrl.CycleStatus(ctx, "u1", s)
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}

	a, _ := ctrl.Find("u1", ids[0])
	b, _ := ctrl.Find("u1", ids[1])
	assert.False(t, a.IsActive)
	assert.True(t, b.IsActive)
}

func TestSplitController_HeldStateIsPerUser(t *testing.T) {
	ctrl := NewSplitController(newFlakyRepo(), SplitControllerOptions{})
	ctx := context.Background()

	_, err := ctrl.Create(ctx, "u1", testSplit(t, "Mine", nil))
	require.NoError(t, err)

	assert.Empty(t, ctrl.Refresh(ctx, "u2"))
	assert.Len(t, ctrl.Splits("u1"), 1)

	ctrl.Forget("u1")
	assert.Empty(t, ctrl.Splits("u1"))
	_, ok := ctrl.Active("u1")
	assert.False(t, ok)
}

func TestSplitController_LookupRefreshesOnMiss(t *testing.T) {
	repo := newFlakyRepo()
	ctrl := NewSplitController(repo, SplitControllerOptions{})
	ctx := context.Background()

	// Saved behind the controller's back, so not held yet.
	saved, err := repo.Save(ctx, "u1", testSplit(t, "Hidden", nil))
	require.NoError(t, err)
	assert.Empty(t, ctrl.Splits("u1"))

	got, err := ctrl.Lookup(ctx, "u1", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hidden", got.Name)

	_, err = ctrl.Lookup(ctx, "u1", "nope")
	assert.ErrorIs(t, err, ErrSplitNotFound)
}
