package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-scheduler/internal/clock"
	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
	"github.com/heartmarshall/myenglish-scheduler/pkg/ctxutil"
)

type jobStore interface {
	ClaimDue(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]domain.AlarmJob, error)
	Complete(ctx context.Context, job domain.AlarmJob) error
	Retry(ctx context.Context, job domain.AlarmJob, runAt time.Time, cause error) error
}

// Handler processes one fired folder alarm.
type Handler func(ctx context.Context, folderID uuid.UUID, now time.Time) error

// WorkerConfig tunes polling and retry behaviour.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	Lease        time.Duration
	MaxAttempts  int
	RetryInitial time.Duration
	RetryMax     time.Duration
	RetryJitter  float64
}

// Worker polls the queue for due jobs and runs the handler on each.
// A failed job is retried with exponential backoff until MaxAttempts;
// a job whose folder no longer exists is dropped.
type Worker struct {
	store  jobStore
	handle Handler
	clock  clock.Clock
	cfg    WorkerConfig
	log    *slog.Logger
}

// NewWorker creates a Worker.
func NewWorker(log *slog.Logger, store jobStore, handle Handler, clk clock.Clock, cfg WorkerConfig) *Worker {
	return &Worker{
		store:  store,
		handle: handle,
		clock:  clk,
		cfg:    cfg,
		log:    log.With("component", "alarm_worker"),
	}
}

// Run polls until ctx is cancelled. Store errors back off the poll interval
// instead of stopping the loop.
func (w *Worker) Run(ctx context.Context) error {
	w.log.InfoContext(ctx, "worker started",
		slog.Duration("poll_interval", w.cfg.PollInterval),
		slog.Int("batch_size", w.cfg.BatchSize),
	)

	pollBackoff := w.newBackOff()

	for {
		n, err := w.RunOnce(ctx)

		wait := w.cfg.PollInterval
		switch {
		case err != nil:
			wait = pollBackoff.NextBackOff()
			w.log.ErrorContext(ctx, "poll failed", slog.String("error", err.Error()), slog.Duration("retry_in", wait))
		case n > 0 && n == w.cfg.BatchSize:
			// Full batch: more jobs are likely due.
			pollBackoff.Reset()
			wait = 0
		default:
			pollBackoff.Reset()
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			w.log.InfoContext(ctx, "worker stopped")
			return nil
		case <-timer.C:
		}
	}
}

// RunOnce claims one batch of due jobs and processes it.
// It returns the number of jobs claimed.
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	now := w.clock.Now()

	jobs, err := w.store.ClaimDue(ctx, now, w.cfg.BatchSize, w.cfg.Lease)
	if err != nil {
		return 0, fmt.Errorf("claim due jobs: %w", err)
	}

	for _, job := range jobs {
		if err := w.process(ctx, job, now); err != nil {
			return len(jobs), err
		}
	}
	return len(jobs), nil
}

func (w *Worker) process(ctx context.Context, job domain.AlarmJob, now time.Time) error {
	ctx = ctxutil.WithRunID(ctx, job.ID.String())
	log := w.log.With(slog.String("folder_id", job.FolderID.String()))

	herr := w.handle(ctx, job.FolderID, now)
	switch {
	case herr == nil:
		if err := w.store.Complete(ctx, job); err != nil {
			return fmt.Errorf("complete job %s: %w", job.ID, err)
		}
		return nil

	case errors.Is(herr, domain.ErrNotFound):
		log.WarnContext(ctx, "dropping job for missing folder", slog.String("error", herr.Error()))
		if err := w.store.Complete(ctx, job); err != nil {
			return fmt.Errorf("complete job %s: %w", job.ID, err)
		}
		return nil

	case job.Attempts+1 >= w.cfg.MaxAttempts:
		log.ErrorContext(ctx, "job exhausted retries",
			slog.Int("attempts", job.Attempts+1),
			slog.String("error", herr.Error()),
		)
		if err := w.store.Complete(ctx, job); err != nil {
			return fmt.Errorf("complete job %s: %w", job.ID, err)
		}
		return nil
	}

	delay := w.RetryDelay(job.Attempts)
	log.WarnContext(ctx, "job failed, retrying",
		slog.Int("attempt", job.Attempts+1),
		slog.Duration("retry_in", delay),
		slog.String("error", herr.Error()),
	)
	if err := w.store.Retry(ctx, job, now.Add(delay), herr); err != nil {
		return fmt.Errorf("retry job %s: %w", job.ID, err)
	}
	return nil
}

// RetryDelay returns the backoff before retry number attempts+1.
func (w *Worker) RetryDelay(attempts int) time.Duration {
	b := w.newBackOff()
	d := b.NextBackOff()
	for i := 0; i < attempts; i++ {
		d = b.NextBackOff()
	}
	return d
}

func (w *Worker) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = w.cfg.RetryInitial
	b.MaxInterval = w.cfg.RetryMax
	b.Multiplier = 2
	b.RandomizationFactor = w.cfg.RetryJitter
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}
