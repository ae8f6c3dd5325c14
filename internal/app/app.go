package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/myenglish-scheduler/internal/adapter/notifier"
	"github.com/heartmarshall/myenglish-scheduler/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-scheduler/internal/adapter/postgres/alarmjob"
	"github.com/heartmarshall/myenglish-scheduler/internal/adapter/postgres/card"
	"github.com/heartmarshall/myenglish-scheduler/internal/adapter/postgres/folder"
	"github.com/heartmarshall/myenglish-scheduler/internal/adapter/postgres/userstat"
	"github.com/heartmarshall/myenglish-scheduler/internal/clock"
	"github.com/heartmarshall/myenglish-scheduler/internal/config"
	"github.com/heartmarshall/myenglish-scheduler/internal/queue"
	"github.com/heartmarshall/myenglish-scheduler/internal/service/alarm"
	"github.com/heartmarshall/myenglish-scheduler/internal/service/rollup"
	"github.com/heartmarshall/myenglish-scheduler/internal/service/study"
)

// App holds the scheduler components wired over one PostgreSQL pool.
type App struct {
	Config *config.Config
	Log    *slog.Logger
	Pool   *pgxpool.Pool
	Clock  clock.Clock

	Study  *study.Service
	Alarms *alarm.Scheduler
	Rollup *rollup.Job
	Jobs   *alarmjob.Repo
}

// New connects to the database and builds every service.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	a, err := wire(pool, cfg, log)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return a, nil
}

func wire(pool *pgxpool.Pool, cfg *config.Config, log *slog.Logger) (*App, error) {
	clk := clock.NewReal(cfg.Location)
	tx := postgres.NewTxManager(pool)

	cards := card.New(pool)
	folders := folder.New(pool)
	stats := userstat.New(pool)
	jobs := alarmjob.New(pool)

	alarms, err := alarm.NewScheduler(log, folders, jobs, notifier.NewLog(log), tx, clk, cfg.AlarmDomain())
	if err != nil {
		return nil, fmt.Errorf("alarm scheduler: %w", err)
	}

	studySvc, err := study.NewService(log, cards, folders, alarms, tx, clk, cfg.SRS.Domain())
	if err != nil {
		return nil, fmt.Errorf("study service: %w", err)
	}

	job, err := rollup.NewJob(log, stats, folders, tx, cfg.RollupDomain())
	if err != nil {
		return nil, fmt.Errorf("rollup job: %w", err)
	}

	return &App{
		Config: cfg,
		Log:    log,
		Pool:   pool,
		Clock:  clk,
		Study:  studySvc,
		Alarms: alarms,
		Rollup: job,
		Jobs:   jobs,
	}, nil
}

// Worker returns a queue worker that fires folder alarms.
func (a *App) Worker() *queue.Worker {
	return queue.NewWorker(a.Log, a.Jobs, a.Alarms.OnFire, a.Clock, a.Config.Worker.Queue())
}

// Trigger returns the daily rollup schedule.
func (a *App) Trigger() (*rollup.Trigger, error) {
	return rollup.NewTrigger(a.Log, a.Rollup, a.Clock, a.Config.Location, a.Config.Rollup.RunAt)
}

// Close releases the database pool.
func (a *App) Close() {
	a.Pool.Close()
}
