package cli

import (
	"alcyxob/gympumped/internal/domain"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newSplitsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "splits",
		Short: "Manage a user's workout splits",
	}
	cmd.AddCommand(newSplitsListCmd(app))
	cmd.AddCommand(newSplitsCreateCmd(app))
	cmd.AddCommand(newSplitsDeleteCmd(app))
	cmd.AddCommand(newSplitsCycleCmd(app))
	return cmd
}

func newSplitsListCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List splits, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUserFlag(userID); err != nil {
				return err
			}
			splits := app.Splits.Refresh(cmd.Context(), userID)
			if len(splits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No workout splits.")
				return nil
			}
			return printSplits(cmd.OutOrStdout(), splits)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	return cmd
}

func printSplits(out io.Writer, splits []domain.WorkoutSplit) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tSTART\tEND")
	for _, s := range splits {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Status().Label(), s.StartDate, s.EndDate)
	}
	return w.Flush()
}

func newSplitsCreateCmd(app *App) *cobra.Command {
	var (
		userID, name, start, end string
		days                     map[string]string
	)

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create an inactive split",
		Example: "  splitctl splits create --user u1 --name PPL --day monday=Push,tuesday=Pull,wednesday=Legs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUserFlag(userID); err != nil {
				return err
			}
			schedule, err := domain.NewSchedule(days)
			if err != nil {
				return err
			}

			now := app.now()
			if start == "" {
				start = domain.FormatSplitDate(now)
			}
			if end == "" {
				end = domain.FormatSplitDate(now.Add(7 * 24 * time.Hour))
			}
			for _, d := range []string{start, end} {
				if _, err := time.Parse(domain.SplitDateLayout, d); err != nil {
					return fmt.Errorf("date %q must look like 1/31/2025", d)
				}
			}

			saved, err := app.Splits.Create(cmd.Context(), userID, domain.WorkoutSplit{
				Name:      name,
				Schedule:  schedule,
				StartDate: start,
				EndDate:   end,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created split %s (%s)\n", saved.ID, saved.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&name, "name", "", "Split name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (M/D/YYYY), defaults to today")
	cmd.Flags().StringVar(&end, "end", "", "End date (M/D/YYYY), defaults to a week from today")
	cmd.Flags().StringToStringVar(&days, "day", nil, "Workout type per weekday, e.g. monday=Push; other days rest")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newSplitsDeleteCmd(app *App) *cobra.Command {
	var userID, splitID string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a split",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUserFlag(userID); err != nil {
				return err
			}
			if err := app.Splits.Remove(cmd.Context(), userID, splitID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted split %s\n", splitID)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&splitID, "id", "", "Split ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newSplitsCycleCmd(app *App) *cobra.Command {
	var userID, splitID string

	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Advance a split inactive -> planned -> active -> inactive",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUserFlag(userID); err != nil {
				return err
			}
			split, err := app.Splits.Lookup(cmd.Context(), userID, splitID)
			if err != nil {
				return err
			}
			next, err := app.Splits.CycleStatus(cmd.Context(), userID, split)
			if err != nil {
				return err
			}
			if next.ID == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Split %s was not updated\n", splitID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", next.Name, split.Status().Label(), next.Status().Label())
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&splitID, "id", "", "Split ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
