// Package notifier delivers ReminderDue events. Only a structured-log sink
// ships here; push and email channels plug in behind the same method.
package notifier

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

// Log writes each reminder as a structured log record.
type Log struct {
	log *slog.Logger
}

// NewLog creates a Log notifier.
func NewLog(log *slog.Logger) *Log {
	return &Log{log: log.With("component", "notifier")}
}

// NotifyReminderDue logs the event. It never fails.
func (n *Log) NotifyReminderDue(ctx context.Context, ev domain.ReminderDue) error {
	n.log.InfoContext(ctx, "reminder due",
		slog.String("folder_id", ev.FolderID.String()),
		slog.String("owner_id", ev.OwnerID.String()),
		slog.Int("unlearned_count", ev.UnlearnedCount),
	)
	return nil
}
