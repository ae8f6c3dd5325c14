// Package rollup runs the nightly study rollup: streak evaluation with its
// alarm penalty, stale-alarm cleanup, and the daily reminder-slot reset.
package rollup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/myenglish-scheduler/internal/clock"
	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

type statStore interface {
	ListUsersWithYesterdayStats(ctx context.Context, date time.Time) ([]domain.UserStat, error)
	SaveStreak(ctx context.Context, ownerID uuid.UUID, streak int, evaluatedFor time.Time) (bool, error)
}

type folderStore interface {
	ListFoldersForDate(ctx context.Context, date time.Time) ([]domain.Folder, error)
	ListFolderItems(ctx context.Context, folderID uuid.UUID) ([]domain.FolderItem, error)
	DeactivateOwnerAlarms(ctx context.Context, ownerID uuid.UUID, date time.Time) (int, error)
	DeactivateAlarm(ctx context.Context, folderID uuid.UUID, rollupDate time.Time) (bool, error)
	ResetReminderMask(ctx context.Context, folderID uuid.UUID, rollupDate time.Time) (bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// errStreakEvaluated means another run already evaluated the streak for the day.
var errStreakEvaluated = errors.New("streak already evaluated")

// Step names used in Failure.
const (
	StepStreak = "streak"
	StepStale  = "stale_alarm"
	StepSlots  = "slot_reset"
)

// Failure is one unit of rollup work that could not be applied.
type Failure struct {
	Step string
	ID   uuid.UUID
	Err  error
}

// Report summarizes one rollup run.
type Report struct {
	Day                time.Time
	StreaksIncremented int
	StreaksReset       int
	UsersSkipped       int
	FoldersPenalized   int
	AlarmsDeactivated  int
	MasksReset         int
	Failures           []Failure
}

// Job is the nightly rollup. Every step is keyed by the target day, so
// running it again for the same day changes nothing.
type Job struct {
	stats   statStore
	folders folderStore
	tx      txManager
	cfg     domain.RollupConfig
	log     *slog.Logger
}

// NewJob validates cfg and creates a Job.
func NewJob(log *slog.Logger, stats statStore, folders folderStore, tx txManager, cfg domain.RollupConfig) (*Job, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Job{
		stats:   stats,
		folders: folders,
		tx:      tx,
		cfg:     cfg,
		log:     log.With("service", "rollup"),
	}, nil
}

// Run rolls up into the day containing day, judging the day before it.
// Per-user and per-folder failures are collected in the report; only a
// failure to list the work returns an error.
func (j *Job) Run(ctx context.Context, day time.Time) (Report, error) {
	today := clock.DayStart(day, j.cfg.Location)
	yesterday := clock.PrevDayStart(day, j.cfg.Location)

	rep := &report{Report: Report{Day: today}}
	start := time.Now()

	if err := j.evaluateStreaks(ctx, yesterday, today, rep); err != nil {
		return rep.Report, err
	}
	if err := j.cleanupStaleAlarms(ctx, yesterday, today, rep); err != nil {
		return rep.Report, err
	}
	if err := j.resetSlots(ctx, today, rep); err != nil {
		return rep.Report, err
	}

	j.log.InfoContext(ctx, "rollup finished",
		slog.String("day", today.Format(time.DateOnly)),
		slog.Int("streaks_incremented", rep.StreaksIncremented),
		slog.Int("streaks_reset", rep.StreaksReset),
		slog.Int("users_skipped", rep.UsersSkipped),
		slog.Int("folders_penalized", rep.FoldersPenalized),
		slog.Int("alarms_deactivated", rep.AlarmsDeactivated),
		slog.Int("masks_reset", rep.MasksReset),
		slog.Int("failures", len(rep.Failures)),
		slog.Duration("duration", time.Since(start)),
	)

	return rep.Report, nil
}

// evaluateStreaks extends or resets each user's streak from yesterday's stats.
// A reset also switches off the alarms of the user's folders for today.
func (j *Job) evaluateStreaks(ctx context.Context, yesterday, today time.Time, rep *report) error {
	stats, err := j.stats.ListUsersWithYesterdayStats(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("list user stats: %w", err)
	}

	j.fanOut(len(stats), func(i int) {
		st := stats[i]
		if st.StreakEvaluatedFor != nil && !clock.DateIn(*st.StreakEvaluatedFor, j.cfg.Location).Before(today) {
			rep.add(func(r *Report) { r.UsersSkipped++ })
			return
		}

		met := st.MetDailyGoal(j.cfg.DailyMinimumSolved)
		penalized := 0

		err := j.tx.RunInTx(ctx, func(txCtx context.Context) error {
			streak := 0
			if met {
				streak = st.Streak + 1
			}
			saved, err := j.stats.SaveStreak(txCtx, st.OwnerID, streak, today)
			if err != nil {
				return err
			}
			if !saved {
				return errStreakEvaluated
			}
			if !met {
				n, err := j.folders.DeactivateOwnerAlarms(txCtx, st.OwnerID, today)
				if err != nil {
					return fmt.Errorf("deactivate alarms: %w", err)
				}
				penalized = n
			}
			return nil
		})
		if errors.Is(err, errStreakEvaluated) {
			rep.add(func(r *Report) { r.UsersSkipped++ })
			return
		}
		if err != nil {
			rep.fail(StepStreak, st.OwnerID, err)
			j.log.ErrorContext(ctx, "streak evaluation failed",
				slog.String("owner_id", st.OwnerID.String()),
				slog.String("error", err.Error()),
			)
			return
		}

		rep.add(func(r *Report) {
			if met {
				r.StreaksIncremented++
				return
			}
			r.StreaksReset++
			r.FoldersPenalized += penalized
		})
	})
	return nil
}

// cleanupStaleAlarms switches off the alarm of yesterday's folders that were
// never reviewed during yesterday.
func (j *Job) cleanupStaleAlarms(ctx context.Context, yesterday, today time.Time, rep *report) error {
	folders, err := j.folders.ListFoldersForDate(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("list yesterday folders: %w", err)
	}

	j.fanOut(len(folders), func(i int) {
		f := folders[i]
		if !f.AlarmActive {
			return
		}

		items, err := j.folders.ListFolderItems(ctx, f.ID)
		if err != nil {
			rep.fail(StepStale, f.ID, fmt.Errorf("list folder items: %w", err))
			return
		}
		if reviewedBetween(items, yesterday, today) {
			return
		}

		changed, err := j.folders.DeactivateAlarm(ctx, f.ID, today)
		if err != nil {
			rep.fail(StepStale, f.ID, err)
			return
		}
		if changed {
			rep.add(func(r *Report) { r.AlarmsDeactivated++ })
		}
	})
	return nil
}

// resetSlots gives today's folders a fresh reminder budget.
func (j *Job) resetSlots(ctx context.Context, today time.Time, rep *report) error {
	folders, err := j.folders.ListFoldersForDate(ctx, today)
	if err != nil {
		return fmt.Errorf("list today folders: %w", err)
	}

	j.fanOut(len(folders), func(i int) {
		f := folders[i]
		if f.RollupDate != nil && clock.DateIn(*f.RollupDate, j.cfg.Location).Equal(today) {
			return
		}

		changed, err := j.folders.ResetReminderMask(ctx, f.ID, today)
		if err != nil {
			rep.fail(StepSlots, f.ID, err)
			return
		}
		if changed {
			rep.add(func(r *Report) { r.MasksReset++ })
		}
	})
	return nil
}

// fanOut runs fn for every index with at most cfg.Concurrency in flight.
func (j *Job) fanOut(n int, fn func(i int)) {
	var g errgroup.Group
	g.SetLimit(j.cfg.Concurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

func reviewedBetween(items []domain.FolderItem, from, to time.Time) bool {
	for _, it := range items {
		if it.LastReviewedAt == nil {
			continue
		}
		if !it.LastReviewedAt.Before(from) && it.LastReviewedAt.Before(to) {
			return true
		}
	}
	return false
}

// report guards Report for concurrent updates.
type report struct {
	mu sync.Mutex
	Report
}

func (r *report) add(fn func(*Report)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.Report)
}

func (r *report) fail(step string, id uuid.UUID, err error) {
	r.add(func(rep *Report) {
		rep.Failures = append(rep.Failures, Failure{Step: step, ID: id, Err: err})
	})
}
