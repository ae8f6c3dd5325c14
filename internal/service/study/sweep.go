package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

// SweepResult counts the transitions applied by SweepOverdue.
type SweepResult struct {
	Scanned int
	Thawed  int
	Frozen  int
	Overdue int
}

// SweepOverdue re-evaluates a learner's due cards: expired freezes are thawed,
// overdue cards past their deadline are frozen, and missed cards open their
// grace window. A card undergoes at most one transition per sweep.
// Store errors stop the sweep and are returned with the counts so far.
func (s *Service) SweepOverdue(ctx context.Context, ownerID uuid.UUID) (SweepResult, error) {
	now := s.clock.Now()

	cards, err := s.cards.ListDueCards(ctx, ownerID, now)
	if err != nil {
		return SweepResult{}, fmt.Errorf("list due cards: %w", err)
	}

	res := SweepResult{Scanned: len(cards)}
	for _, c := range cards {
		var (
			next    domain.Card
			changed bool
		)

		if next, changed = s.lifecycle.Thaw(c, now); changed {
			res.Thawed++
		} else if next, changed = s.lifecycle.EscalateIfExpired(c, now); changed {
			res.Frozen++
		} else if next, changed = s.lifecycle.MarkOverdueIfMissed(c, now); changed {
			res.Overdue++
		}

		if !changed {
			continue
		}
		if err := s.cards.SaveCard(ctx, next); err != nil {
			return res, fmt.Errorf("save card %s: %w", c.ID, err)
		}
	}

	s.log.InfoContext(ctx, "overdue sweep finished",
		slog.String("owner_id", ownerID.String()),
		slog.Int("scanned", res.Scanned),
		slog.Int("thawed", res.Thawed),
		slog.Int("frozen", res.Frozen),
		slog.Int("overdue", res.Overdue),
	)

	return res, nil
}

// ListAvailable returns the learner's cards that can be reviewed right now.
// It is read-only: cards needing a transition are left to SweepOverdue.
func (s *Service) ListAvailable(ctx context.Context, ownerID uuid.UUID) ([]domain.Card, error) {
	now := s.clock.Now()

	cards, err := s.cards.ListDueCards(ctx, ownerID, now)
	if err != nil {
		return nil, fmt.Errorf("list due cards: %w", err)
	}

	available := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		if s.lifecycle.IsAvailableForReview(c, now) {
			available = append(available, c)
		}
	}
	return available, nil
}
