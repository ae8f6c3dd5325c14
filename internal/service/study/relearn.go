package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

// RelearnCard puts a mastered card back into the review cycle at stage 0.
func (s *Service) RelearnCard(ctx context.Context, input RelearnCardInput) (domain.Card, error) {
	if err := input.Validate(); err != nil {
		return domain.Card{}, err
	}

	now := s.clock.Now()

	card, err := s.cards.LoadCard(ctx, input.CardID)
	if err != nil {
		return domain.Card{}, fmt.Errorf("load card: %w", err)
	}

	reset, err := s.lifecycle.Relearn(card, now)
	if err != nil {
		return domain.Card{}, err
	}

	if err := s.cards.SaveCard(ctx, reset); err != nil {
		return domain.Card{}, fmt.Errorf("save card: %w", err)
	}
	reset.Version++

	s.log.InfoContext(ctx, "card reset for relearning",
		slog.String("owner_id", reset.OwnerID.String()),
		slog.String("card_id", reset.ID.String()),
	)

	return reset, nil
}
