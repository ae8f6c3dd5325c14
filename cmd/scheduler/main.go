// Command scheduler runs the reminder scheduler: the alarm queue worker, the
// nightly rollup, schema migrations and a few maintenance commands that drive
// the study service directly.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/myenglish-scheduler/internal/app"
	"github.com/heartmarshall/myenglish-scheduler/internal/config"
	"github.com/heartmarshall/myenglish-scheduler/pkg/ctxutil"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "scheduler",
	Short:         "Spaced-repetition reminder scheduler",
	Version:       app.BuildVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = ctxutil.WithRunID(ctx, uuid.NewString())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.ErrorContext(ctx, "scheduler failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default: $CONFIG_PATH or ./config.yaml)")

	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(rollupCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(relearnCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(syncFolderCmd)
	rootCmd.AddCommand(armCmd)
}

// loadConfig reads the config and installs the configured logger as default.
func loadConfig() (*config.Config, *slog.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, app.NewLogger(cfg.Log), nil
}

// newApp loads the config and connects. The caller must defer a.Close().
func newApp(ctx context.Context) (*app.App, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}
