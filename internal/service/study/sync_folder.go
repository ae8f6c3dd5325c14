package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

// SyncFolder merges the stage-group timers of a folder's cards and persists
// the cards that moved.
func (s *Service) SyncFolder(ctx context.Context, folderID uuid.UUID) ([]domain.Card, error) {
	now := s.clock.Now()

	var merged []domain.Card
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, members, err := s.folders.LoadFolderWithCards(txCtx, folderID)
		if err != nil {
			return fmt.Errorf("load folder: %w", err)
		}

		cards := make([]domain.Card, len(members))
		for i, m := range members {
			cards[i] = m.Card
		}

		merged, err = s.saveSynchronized(txCtx, cards, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(merged) > 0 {
		s.log.InfoContext(ctx, "folder timers synchronized",
			slog.String("folder_id", folderID.String()),
			slog.Int("merged", len(merged)),
		)
	}

	return merged, nil
}
