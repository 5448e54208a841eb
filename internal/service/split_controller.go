// internal/service/split_controller.go
package service

import (
	"alcyxob/gympumped/internal/domain"
	"alcyxob/gympumped/internal/repository"
	"context"
	"errors"
	"log"
	"sync"
)

// ErrSplitNotFound means the split is not among the user's splits.
var ErrSplitNotFound = errors.New("workout split not found")

// ErrorPolicy decides what write failures look like to the caller.
type ErrorPolicy int

const (
	// SuppressErrors logs store failures and reports success; the held list
	// stays as it was until the next refresh.
	SuppressErrors ErrorPolicy = iota
	// SurfaceErrors logs store failures and returns them.
	SurfaceErrors
)

// SplitControllerOptions configures a SplitController.
type SplitControllerOptions struct {
	ErrorPolicy ErrorPolicy
	// SingleActive deactivates a user's other active splits whenever one
	// becomes active. Off by default, so several splits can be active at once.
	SingleActive bool
}

// SplitController holds each user's most recently fetched splits and applies
// the status cycle. Overlapping calls for the same user are not serialized;
// the mutex only protects the held lists.
type SplitController struct {
	repo repository.SplitRepository
	opts SplitControllerOptions

	mu   sync.RWMutex
	held map[string][]domain.WorkoutSplit
}

// NewSplitController creates a controller over repo.
func NewSplitController(repo repository.SplitRepository, opts SplitControllerOptions) *SplitController {
	return &SplitController{
		repo: repo,
		opts: opts,
		held: make(map[string][]domain.WorkoutSplit),
	}
}

// Refresh replaces the user's held splits with a fresh read. A failed read
// leaves an empty list and is logged, never returned.
func (c *SplitController) Refresh(ctx context.Context, userID string) []domain.WorkoutSplit {
	list, err := c.repo.List(ctx, userID)
	if err != nil {
		log.Printf("ERROR: Failed to fetch workout splits for user %s: %v", userID, err)
		list = repository.SplitList{}
	}
	for _, d := range list.Dropped {
		log.Printf("WARN: Skipping unreadable workout split %s for user %s: %v", d.ID, userID, d.Err)
	}

	splits := list.Splits
	if splits == nil {
		splits = []domain.WorkoutSplit{}
	}
	c.mu.Lock()
	c.held[userID] = splits
	c.mu.Unlock()
	return copySplits(splits)
}

// Create saves a new split and refreshes.
func (c *SplitController) Create(ctx context.Context, userID string, split domain.WorkoutSplit) (domain.WorkoutSplit, error) {
	saved, err := c.repo.Save(ctx, userID, split)
	if err != nil {
		log.Printf("ERROR: Failed to save workout split %q for user %s: %v", split.Name, userID, err)
		return domain.WorkoutSplit{}, c.fail(err)
	}
	c.Refresh(ctx, userID)
	return saved, nil
}

// Remove deletes a split and refreshes.
func (c *SplitController) Remove(ctx context.Context, userID, splitID string) error {
	if err := c.repo.Delete(ctx, userID, splitID); err != nil {
		log.Printf("ERROR: Failed to delete workout split %s for user %s: %v", splitID, userID, err)
		return c.fail(err)
	}
	c.Refresh(ctx, userID)
	return nil
}

// CycleStatus moves the split one step along inactive -> planned -> active
// -> inactive, persists the flags, and refreshes. The transition is computed
// from the split passed in, not from a fresh read.
func (c *SplitController) CycleStatus(ctx context.Context, userID string, split domain.WorkoutSplit) (domain.WorkoutSplit, error) {
	next := split
	next.CycleStatus()

	flags := domain.WorkoutSplit{ID: next.ID, IsActive: next.IsActive, IsPlanned: next.IsPlanned}
	if err := c.repo.Update(ctx, userID, flags); err != nil {
		log.Printf("ERROR: Failed to update status of workout split %s for user %s: %v", split.ID, userID, err)
		return domain.WorkoutSplit{}, c.fail(err)
	}

	if c.opts.SingleActive && next.IsActive {
		n, err := c.repo.DeactivateOthers(ctx, userID, next.ID)
		if err != nil {
			log.Printf("ERROR: Failed to deactivate other splits for user %s: %v", userID, err)
			if ferr := c.fail(err); ferr != nil {
				return domain.WorkoutSplit{}, ferr
			}
		} else if n > 0 {
			log.Printf("INFO: Deactivated %d other split(s) for user %s", n, userID)
		}
	}

	c.Refresh(ctx, userID)
	return next, nil
}

// fail applies the error policy. Caller mistakes (missing id, a split that
// cannot be encoded, a split that no longer exists) are always returned.
func (c *SplitController) fail(err error) error {
	switch {
	case errors.Is(err, repository.ErrPreconditionFailed),
		errors.Is(err, repository.ErrEncoding),
		errors.Is(err, repository.ErrNotFound):
		return err
	case c.opts.ErrorPolicy == SurfaceErrors:
		return err
	default:
		return nil
	}
}

// Splits returns a copy of the user's held splits.
func (c *SplitController) Splits(userID string) []domain.WorkoutSplit {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copySplits(c.held[userID])
}

// Find looks a split up in the held list.
func (c *SplitController) Find(userID, splitID string) (domain.WorkoutSplit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.held[userID] {
		if s.ID == splitID {
			return s, true
		}
	}
	return domain.WorkoutSplit{}, false
}

// Lookup finds a split in the held list, refreshing once when it is not there.
func (c *SplitController) Lookup(ctx context.Context, userID, splitID string) (domain.WorkoutSplit, error) {
	if split, ok := c.Find(userID, splitID); ok {
		return split, nil
	}
	c.Refresh(ctx, userID)
	if split, ok := c.Find(userID, splitID); ok {
		return split, nil
	}
	return domain.WorkoutSplit{}, ErrSplitNotFound
}

// Active returns the first active split in held order (newest first).
func (c *SplitController) Active(userID string) (domain.WorkoutSplit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.held[userID] {
		if s.IsActive {
			return s, true
		}
	}
	return domain.WorkoutSplit{}, false
}

// Forget drops the user's held splits, e.g. on sign-out.
func (c *SplitController) Forget(userID string) {
	c.mu.Lock()
	delete(c.held, userID)
	c.mu.Unlock()
}

func copySplits(in []domain.WorkoutSplit) []domain.WorkoutSplit {
	out := make([]domain.WorkoutSplit, len(in))
	copy(out, in)
	return out
}
