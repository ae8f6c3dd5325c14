package study

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-scheduler/internal/clock"
	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type cardStore interface {
	LoadCard(ctx context.Context, id uuid.UUID) (domain.Card, error)
	SaveCard(ctx context.Context, card domain.Card) error
	ListDueCards(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]domain.Card, error)
}

type folderStore interface {
	LoadFolderWithCards(ctx context.Context, id uuid.UUID) (domain.Folder, []domain.FolderCard, error)
	SaveFolderItem(ctx context.Context, item domain.FolderItem) error
}

type alarmScheduler interface {
	ScheduleFolder(ctx context.Context, folderID uuid.UUID, delay time.Duration) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service runs the card lifecycle against the store and re-arms folder alarms.
type Service struct {
	cards     cardStore
	folders   folderStore
	alarms    alarmScheduler
	tx        txManager
	clock     clock.Clock
	lifecycle *Lifecycle
	sync      Synchronizer
	log       *slog.Logger
}

// NewService creates a new Study service.
// An invalid SRS configuration is reported as a *domain.ConfigError.
func NewService(
	log *slog.Logger,
	cards cardStore,
	folders folderStore,
	alarms alarmScheduler,
	tx txManager,
	clk clock.Clock,
	cfg domain.SRSConfig,
) (*Service, error) {
	lc, err := NewLifecycle(cfg)
	if err != nil {
		return nil, err
	}

	return &Service{
		cards:     cards,
		folders:   folders,
		alarms:    alarms,
		tx:        tx,
		clock:     clk,
		lifecycle: lc,
		sync:      Synchronizer{MinDrift: cfg.SyncMinDrift},
		log:       log.With("service", "study"),
	}, nil
}

// Lifecycle exposes the state machine the service runs.
func (s *Service) Lifecycle() *Lifecycle { return s.lifecycle }
