package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pranav-Anand04/TerpFit/internal"
	"github.com/Pranav-Anand04/TerpFit/internal/service"
)

var (
	listType   string
	listGym    string
	listFrom   string
	listTo     string
	listNewest bool
	asJSON     bool
)

var workoutsCmd = &cobra.Command{
	Use:   "workouts",
	Short: "Inspect and edit the workout history",
}

// withStore opens the configured store for the duration of fn.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, store *service.WorkoutService) error) error {
	ctx := cmd.Context()
	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(ctx, app.workouts)
}

var workoutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workouts, optionally filtered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := service.ParseDateBound(listFrom, false)
		if err != nil {
			return err
		}
		to, err := service.ParseDateBound(listTo, true)
		if err != nil {
			return err
		}
		filter := service.Filter{Type: listType, Gym: listGym, From: from, To: to}

		return withStore(cmd, func(ctx context.Context, store *service.WorkoutService) error {
			var out []internal.Workout
			if listNewest {
				for _, w := range store.ListNewestFirst(ctx) {
					if filter.Match(w) {
						out = append(out, w)
					}
				}
			} else {
				out = store.Filter(ctx, filter)
			}
			if asJSON {
				return printJSON(cmd, out)
			}
			t := newTable("ID", "DATE", "TYPE", "MIN", "CAL", "GYM", "PLAN")
			for _, w := range out {
				t.Row(w.ID, w.Date.Local().Format("2006-01-02 15:04"), w.Type,
					strconv.Itoa(w.Duration), strconv.Itoa(w.Calories), w.Gym, strconv.Itoa(len(w.Checklist)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		})
	},
}

var workoutsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store *service.WorkoutService) error {
			w, err := store.GetByID(ctx, args[0])
			if errors.Is(err, internal.ErrNotFound) {
				return fmt.Errorf("workout %s not found", args[0])
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, w)
		})
	},
}

var workoutsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store *service.WorkoutService) error {
			removed, err := store.DeleteByID(ctx, args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("workout %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		})
	},
}

var workoutsNotesCmd = &cobra.Command{
	Use:   "notes <id> <text>",
	Short: "Replace a workout's notes",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := service.NotesRequest{Notes: strings.Join(args[1:], " ")}
		if err := service.ValidateNotesRequest(&req); err != nil {
			return err
		}
		return withStore(cmd, func(ctx context.Context, store *service.WorkoutService) error {
			w, err := store.UpdateNotes(ctx, args[0], req.Notes)
			if err != nil {
				return err
			}
			return printJSON(cmd, w)
		})
	},
}

var workoutsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Totals and averages over the whole history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store *service.WorkoutService) error {
			stats := store.ComputeStats(ctx)
			if asJSON {
				return printJSON(cmd, stats)
			}
			common := "-"
			if stats.MostCommonType != nil {
				common = *stats.MostCommonType
			}
			t := newTable("WORKOUTS", "MINUTES", "CALORIES", "AVG MIN", "AVG CAL", "MOST COMMON")
			t.Row(strconv.Itoa(stats.TotalWorkouts), strconv.Itoa(stats.TotalDuration), strconv.Itoa(stats.TotalCalories),
				strconv.Itoa(stats.AverageDuration), strconv.Itoa(stats.AverageCalories), common)
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		})
	},
}

var workoutsStreakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Consecutive days with a workout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store *service.WorkoutService) error {
			n := store.ComputeStreak(ctx)
			unit := "days"
			if n == 1 {
				unit = "day"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", n, unit)
			return nil
		})
	},
}

func init() {
	workoutsListCmd.Flags().StringVar(&listType, "type", "", "Only this workout type (case-insensitive)")
	workoutsListCmd.Flags().StringVar(&listGym, "gym", "", "Only this gym (exact name)")
	workoutsListCmd.Flags().StringVar(&listFrom, "from", "", "Earliest date, YYYY-MM-DD or RFC 3339")
	workoutsListCmd.Flags().StringVar(&listTo, "to", "", "Latest date, YYYY-MM-DD or RFC 3339")
	workoutsListCmd.Flags().BoolVar(&listNewest, "newest", false, "Newest first instead of stored order")
	workoutsCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print JSON")

	workoutsCmd.AddCommand(workoutsListCmd, workoutsShowCmd, workoutsDeleteCmd, workoutsNotesCmd, workoutsStatsCmd, workoutsStreakCmd)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
