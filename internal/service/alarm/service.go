// Package alarm keeps at most one pending reminder job per folder and turns
// fired jobs into ReminderDue events.
package alarm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-scheduler/internal/clock"
	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

type folderStore interface {
	LoadFolderWithCards(ctx context.Context, id uuid.UUID) (domain.Folder, []domain.FolderCard, error)
	MarkSlotSent(ctx context.Context, folderID uuid.UUID, slot int) (bool, error)
	SetNextAlarm(ctx context.Context, folderID uuid.UUID, at time.Time) error
}

type jobQueue interface {
	Enqueue(ctx context.Context, folderID uuid.UUID, runAt time.Time) (domain.AlarmJob, error)
}

type notifier interface {
	NotifyReminderDue(ctx context.Context, ev domain.ReminderDue) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Scheduler arms folder alarms on the job queue and handles them when they fire.
type Scheduler struct {
	folders folderStore
	jobs    jobQueue
	notify  notifier
	tx      txManager
	clock   clock.Clock
	slots   slotPolicy
	loc     *time.Location
	log     *slog.Logger
}

// NewScheduler validates cfg and creates a Scheduler.
func NewScheduler(
	log *slog.Logger,
	folders folderStore,
	jobs jobQueue,
	notify notifier,
	tx txManager,
	clk clock.Clock,
	cfg domain.AlarmConfig,
) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Scheduler{
		folders: folders,
		jobs:    jobs,
		notify:  notify,
		tx:      tx,
		clock:   clk,
		slots:   newSlotPolicy(cfg),
		loc:     cfg.Location,
		log:     log.With("service", "alarm"),
	}, nil
}

// ScheduleFolder arms the folder's alarm to fire after delay, replacing any
// pending job for the folder. The folder's NextAlarmAt records the last write.
func (s *Scheduler) ScheduleFolder(ctx context.Context, folderID uuid.UUID, delay time.Duration) error {
	return s.arm(ctx, folderID, s.clock.Now().Add(max(delay, 0)))
}

func (s *Scheduler) arm(ctx context.Context, folderID uuid.UUID, runAt time.Time) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.jobs.Enqueue(txCtx, folderID, runAt); err != nil {
			return fmt.Errorf("%w: enqueue folder %s: %w", domain.ErrScheduling, folderID, err)
		}
		if err := s.folders.SetNextAlarm(txCtx, folderID, runAt); err != nil {
			return fmt.Errorf("set next alarm: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.DebugContext(ctx, "folder alarm armed",
		slog.String("folder_id", folderID.String()),
		slog.Time("run_at", runAt),
	)
	return nil
}

// OnFire handles a fired folder alarm.
//
// An inactive alarm stays dormant. A folder whose date has passed goes
// dormant too; the nightly rollup owns it from then on. For today's folder a
// ReminderDue is emitted once per slot while unlearned cards remain, then the
// alarm is re-armed for the next slot. The slot is claimed in the store before
// delivery; a lost claim means another firing or the rollup got there first,
// and that one owns the alarm. Delivery failures are logged only.
func (s *Scheduler) OnFire(ctx context.Context, folderID uuid.UUID, now time.Time) error {
	folder, members, err := s.folders.LoadFolderWithCards(ctx, folderID)
	if err != nil {
		return fmt.Errorf("load folder: %w", err)
	}

	log := s.log.With(slog.String("folder_id", folderID.String()))

	if !folder.AlarmActive {
		log.DebugContext(ctx, "alarm inactive, not re-arming")
		return nil
	}

	today := clock.DayStart(now, s.loc)
	folderDay := clock.DateIn(folder.Date, s.loc)

	if folderDay.Before(today) {
		log.DebugContext(ctx, "folder date passed, alarm dormant",
			slog.String("folder_date", folderDay.Format(time.DateOnly)),
		)
		return nil
	}

	if folderDay.After(today) {
		return s.arm(ctx, folderID, s.slots.firstSlot(folderDay))
	}

	if slot, ok := s.slots.slotAt(now); ok && !folder.SlotSent(slot) {
		if unlearned := countUnlearned(members); unlearned > 0 {
			// The slot counts as used even when delivery fails.
			claimed, err := s.folders.MarkSlotSent(ctx, folderID, slot)
			if err != nil {
				return fmt.Errorf("mark slot sent: %w", err)
			}
			if !claimed {
				log.DebugContext(ctx, "slot already claimed or alarm switched off", slog.Int("slot", slot))
				return nil
			}
			s.deliver(ctx, log, folder, slot, unlearned)
		}
	}

	return s.arm(ctx, folderID, s.slots.next(now))
}

func (s *Scheduler) deliver(ctx context.Context, log *slog.Logger, folder domain.Folder, slot, unlearned int) {
	ev := domain.ReminderDue{
		FolderID:       folder.ID,
		OwnerID:        folder.OwnerID,
		UnlearnedCount: unlearned,
	}
	if err := s.notify.NotifyReminderDue(ctx, ev); err != nil {
		log.WarnContext(ctx, "reminder delivery failed",
			slog.Int("slot", slot),
			slog.String("error", err.Error()),
		)
		return
	}
	log.InfoContext(ctx, "reminder sent",
		slog.String("owner_id", folder.OwnerID.String()),
		slog.Int("slot", slot),
		slog.Int("unlearned", unlearned),
	)
}

func countUnlearned(members []domain.FolderCard) int {
	n := 0
	for _, m := range members {
		if !m.Item.Learned {
			n++
		}
	}
	return n
}
