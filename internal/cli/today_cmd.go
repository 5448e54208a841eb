package cli

import (
	"alcyxob/gympumped/internal/domain"
	"alcyxob/gympumped/internal/service"
	"fmt"

	"github.com/spf13/cobra"
)

func newTodayCmd(app *App) *cobra.Command {
	var userID, date string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the user's workout for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUserFlag(userID); err != nil {
				return err
			}
			now := app.now()
			if date != "" {
				t, err := domain.ParseWorkoutDate(date)
				if err != nil {
					return service.ErrInvalidDate
				}
				now = t
			}

			today, err := app.Workouts.TodaysWorkout(cmd.Context(), userID, now)
			if err != nil {
				return err
			}

			switch today.Kind {
			case service.NoActiveSplit:
				fmt.Fprintln(cmd.OutOrStdout(), "No active split.")
			case service.NotScheduled:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no workout scheduled in %s\n", today.Day, today.Split.Name)
			case service.RestDay:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: rest day (%s)\n", today.Day, today.Split.Name)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", today.Day, today.Workout.WorkoutType, today.Split.Name)
				for _, ex := range today.Workout.Exercises {
					line := fmt.Sprintf("  %s  %d x %s", ex.Name, ex.Sets, ex.Reps)
					if ex.Weight != nil {
						line += fmt.Sprintf(" @ %d", *ex.Weight)
					}
					if ex.IsSuperset() && ex.SupersetLabel != nil {
						line += " [" + *ex.SupersetLabel + "]"
					}
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD), defaults to today")
	return cmd
}
