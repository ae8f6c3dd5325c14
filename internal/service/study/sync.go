package study

import (
	"time"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

// Synchronizer merges the review timers of sibling cards that share a stage,
// so one folder shows one countdown per stage group.
type Synchronizer struct {
	// MinDrift skips members whose timer is within MinDrift of the group's
	// earliest. Zero merges any divergence.
	MinDrift time.Duration
}

// Synchronize sets every member of a stage group to the group's earliest
// NextReviewAt and returns only the cards it changed, in input order.
// Mastered cards, never-reviewed cards and cards frozen at now do not take part.
// The input slice is not modified.
func (s Synchronizer) Synchronize(cards []domain.Card, now time.Time) []domain.Card {
	earliest := make(map[int]time.Time)
	members := make(map[int]int)

	for i := range cards {
		c := &cards[i]
		if !participates(c, now) {
			continue
		}
		members[c.Stage]++
		if e, ok := earliest[c.Stage]; !ok || c.NextReviewAt.Before(e) {
			earliest[c.Stage] = *c.NextReviewAt
		}
	}

	var mutated []domain.Card
	for _, c := range cards {
		if !participates(&c, now) || members[c.Stage] < 2 {
			continue
		}
		target := earliest[c.Stage]
		if c.NextReviewAt.Sub(target) <= s.MinDrift {
			continue
		}
		c.NextReviewAt = &target
		mutated = append(mutated, c)
	}

	return mutated
}

func participates(c *domain.Card, now time.Time) bool {
	return !c.IsMastered && c.NextReviewAt != nil && !c.IsFrozen(now)
}
