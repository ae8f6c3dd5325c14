package rollup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-scheduler/internal/clock"
	"github.com/heartmarshall/myenglish-scheduler/pkg/ctxutil"
)

// Trigger runs the rollup once a day at a fixed local time.
type Trigger struct {
	sched *gocron.Scheduler
	job   *Job
	clock clock.Clock
	log   *slog.Logger
	ctx   context.Context
}

// NewTrigger schedules job daily at runAt ("HH:MM") in loc.
// Runs never overlap: a run still in progress makes the next one wait.
func NewTrigger(log *slog.Logger, job *Job, clk clock.Clock, loc *time.Location, runAt string) (*Trigger, error) {
	t := &Trigger{
		sched: gocron.NewScheduler(loc),
		job:   job,
		clock: clk,
		log:   log.With("component", "rollup_trigger"),
		ctx:   context.Background(),
	}
	t.sched.SingletonModeAll()

	if _, err := t.sched.Every(1).Day().At(runAt).Do(t.fire); err != nil {
		return nil, fmt.Errorf("schedule rollup at %q: %w", runAt, err)
	}
	return t, nil
}

// Start begins the daily schedule. Runs use ctx until Stop.
func (t *Trigger) Start(ctx context.Context) {
	t.ctx = ctx
	t.sched.StartAsync()

	_, next := t.sched.NextRun()
	t.log.InfoContext(ctx, "rollup trigger started", slog.Time("next_run", next))
}

// Stop halts the schedule.
func (t *Trigger) Stop() {
	t.sched.Stop()
}

func (t *Trigger) fire() {
	ctx := ctxutil.WithRunID(t.ctx, uuid.NewString())

	rep, err := t.job.Run(ctx, t.clock.Now())
	if err != nil {
		t.log.ErrorContext(ctx, "rollup failed", slog.String("error", err.Error()))
		return
	}
	for _, f := range rep.Failures {
		t.log.WarnContext(ctx, "rollup item failed",
			slog.String("step", f.Step),
			slog.String("id", f.ID.String()),
			slog.String("error", f.Err.Error()),
		)
	}
}
