package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/myenglish-scheduler/internal/clock"
)

var rollupCmd = &cobra.Command{
	Use:   "rollup",
	Short: "Run the nightly rollup once",
	Long: `Evaluates yesterday's streaks, deactivates stale folder alarms and resets
today's reminder slots. Re-running for the same day changes nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		day, err := rollupDay(date, a.Clock.Now(), a.Config.Location)
		if err != nil {
			return err
		}

		rep, err := a.Rollup.Run(ctx, day)
		if err != nil {
			return fmt.Errorf("rollup %s: %w", day.Format(time.DateOnly), err)
		}

		for _, f := range rep.Failures {
			a.Log.WarnContext(ctx, "rollup item failed",
				slog.String("step", f.Step),
				slog.String("id", f.ID.String()),
				slog.String("error", f.Err.Error()),
			)
		}
		if n := len(rep.Failures); n > 0 {
			return fmt.Errorf("rollup %s: %d items failed", day.Format(time.DateOnly), n)
		}
		return nil
	},
}

// rollupDay returns the instant the rollup runs for: now, or local midnight
// of date when one is given.
func rollupDay(date string, now time.Time, loc *time.Location) (time.Time, error) {
	if date == "" {
		return now, nil
	}
	day, err := clock.ParseDate(date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", date, err)
	}
	return day, nil
}

func init() {
	rollupCmd.Flags().String("date", "", "day to roll up as YYYY-MM-DD (default: today)")
}
