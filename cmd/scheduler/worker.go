package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Fire folder alarms from the job queue",
	Long: `Polls the alarm job queue and fires due folder alarms until interrupted.
With --rollup the nightly rollup is scheduled in the same process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		withRollup, _ := cmd.Flags().GetBool("rollup")
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if withRollup {
			trig, err := a.Trigger()
			if err != nil {
				return fmt.Errorf("rollup trigger: %w", err)
			}
			trig.Start(ctx)
			defer trig.Stop()
		}

		a.Log.InfoContext(ctx, "worker started",
			slog.String("timezone", a.Config.Timezone),
			slog.Bool("rollup", withRollup),
		)

		if err := a.Worker().Run(ctx); err != nil && !errors.Is(err, ctx.Err()) {
			return err
		}

		a.Log.InfoContext(ctx, "worker stopped")
		return nil
	},
}

func init() {
	workerCmd.Flags().Bool("rollup", false, "also run the nightly rollup on its daily schedule")
}
