package study

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

// ReviewCard records a review, persists the card and, when the review happened
// inside a folder, updates the folder link, merges sibling timers and re-arms
// the folder alarm for the earliest sibling due time.
//
// The review is committed before the alarm is re-armed. If re-arming fails the
// updated card is returned together with the scheduling error.
func (s *Service) ReviewCard(ctx context.Context, input ReviewCardInput) (domain.Card, error) {
	if err := input.Validate(); err != nil {
		return domain.Card{}, err
	}

	now := s.clock.Now()

	card, err := s.cards.LoadCard(ctx, input.CardID)
	if err != nil {
		return domain.Card{}, fmt.Errorf("load card: %w", err)
	}
	oldStage := card.Stage

	updated, err := s.lifecycle.RecordReview(card, Outcome{
		Correct:        input.Correct,
		ResponseTimeMs: input.ResponseTimeMs,
	}, now)
	if err != nil {
		return domain.Card{}, err
	}

	var (
		folder  domain.Folder
		nextDue *time.Time
	)

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.cards.SaveCard(txCtx, updated); err != nil {
			return fmt.Errorf("save card: %w", err)
		}
		updated.Version++

		if input.FolderID == nil {
			return nil
		}

		f, members, err := s.folders.LoadFolderWithCards(txCtx, *input.FolderID)
		if err != nil {
			return fmt.Errorf("load folder: %w", err)
		}
		folder = f

		siblings := make([]domain.Card, 0, len(members))
		linked := false
		for _, m := range members {
			if m.Card.ID != updated.ID {
				siblings = append(siblings, m.Card)
				continue
			}
			linked = true
			item := m.Item
			item.Learned = input.Correct
			item.WrongCount = updated.WrongTotal
			item.LastReviewedAt = &now
			if err := s.folders.SaveFolderItem(txCtx, item); err != nil {
				return fmt.Errorf("save folder item: %w", err)
			}
			siblings = append(siblings, updated)
		}
		if !linked {
			return fmt.Errorf("card %s in folder %s: %w", updated.ID, f.ID, domain.ErrNotFound)
		}

		merged, err := s.saveSynchronized(txCtx, siblings, now)
		if err != nil {
			return err
		}
		for _, c := range merged {
			if c.ID == updated.ID {
				updated = c
			}
		}

		nextDue = earliestDue(applyMerged(siblings, merged))
		return nil
	})
	if err != nil {
		return domain.Card{}, err
	}

	s.log.InfoContext(ctx, "card reviewed",
		slog.String("owner_id", updated.OwnerID.String()),
		slog.String("card_id", updated.ID.String()),
		slog.Bool("correct", input.Correct),
		slog.Int("old_stage", oldStage),
		slog.Int("new_stage", updated.Stage),
		slog.String("status", string(s.lifecycle.Status(updated, now))),
	)

	if input.FolderID == nil || !folder.AlarmActive || nextDue == nil {
		return updated, nil
	}

	delay := max(nextDue.Sub(now), 0)
	if err := s.alarms.ScheduleFolder(ctx, folder.ID, delay); err != nil {
		return updated, fmt.Errorf("schedule folder alarm: %w", err)
	}

	return updated, nil
}

// saveSynchronized merges sibling timers and persists the cards that moved.
// Returned cards carry the version the store assigned.
func (s *Service) saveSynchronized(ctx context.Context, cards []domain.Card, now time.Time) ([]domain.Card, error) {
	merged := s.sync.Synchronize(cards, now)
	for i := range merged {
		if err := s.cards.SaveCard(ctx, merged[i]); err != nil {
			return nil, fmt.Errorf("save synchronized card %s: %w", merged[i].ID, err)
		}
		merged[i].Version++
	}
	return merged, nil
}

// applyMerged returns cards with merged members substituted in place.
func applyMerged(cards, merged []domain.Card) []domain.Card {
	if len(merged) == 0 {
		return cards
	}
	byID := make(map[uuid.UUID]domain.Card, len(merged))
	for _, m := range merged {
		byID[m.ID] = m
	}
	out := make([]domain.Card, len(cards))
	for i, c := range cards {
		if m, ok := byID[c.ID]; ok {
			c = m
		}
		out[i] = c
	}
	return out
}

// earliestDue returns the earliest NextReviewAt among cards still in the review cycle.
func earliestDue(cards []domain.Card) *time.Time {
	var earliest *time.Time
	for _, c := range cards {
		if c.IsMastered || c.NextReviewAt == nil {
			continue
		}
		if earliest == nil || c.NextReviewAt.Before(*earliest) {
			t := *c.NextReviewAt
			earliest = &t
		}
	}
	return earliest
}
