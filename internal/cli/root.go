// Package cli is the splitctl operator command line.
package cli

import (
	"alcyxob/gympumped/internal/service"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// App holds the services commands run against.
type App struct {
	Splits        *service.SplitController
	Workouts      service.WorkoutLogService
	EnsureIndexes func(ctx context.Context) // nil when the store has no indexes
	Now           func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd builds the command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "splitctl",
		Short:         "Inspect and manage users' workout splits",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSplitsCmd(app))
	root.AddCommand(newTodayCmd(app))
	root.AddCommand(newIndexesCmd(app))
	return root
}

func requireUserFlag(userID string) error {
	if userID == "" {
		return errors.New("--user is required")
	}
	return nil
}

func newIndexesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the MongoDB indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.EnsureIndexes == nil {
				return errors.New("the configured store does not use indexes")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			app.EnsureIndexes(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Indexes ensured.")
			return nil
		},
	}
}
