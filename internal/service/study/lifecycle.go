package study

import (
	"time"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

// Lifecycle is the card state machine layered over Compute.
// All methods are pure: they take a card by value and return the updated copy.
// Callers serialize writes per card.
type Lifecycle struct {
	cfg domain.SRSConfig
}

// NewLifecycle validates cfg and creates a Lifecycle.
func NewLifecycle(cfg domain.SRSConfig) (*Lifecycle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Lifecycle{cfg: cfg}, nil
}

// Config returns the tunables the lifecycle was built with.
func (l *Lifecycle) Config() domain.SRSConfig { return l.cfg }

// Status derives the card's state at now.
func (l *Lifecycle) Status(card domain.Card, now time.Time) domain.CardStatus {
	switch {
	case card.IsMastered:
		return domain.CardStatusMastered
	case card.IsFrozen(now):
		return domain.CardStatusFrozen
	case card.IsOverdue:
		return domain.CardStatusOverdue
	case card.NextReviewAt == nil:
		return domain.CardStatusNew
	case card.IsDue(now):
		return domain.CardStatusAvailable
	default:
		return domain.CardStatusWaiting
	}
}

// RecordReview applies a review outcome.
// Mastered cards, cards still frozen and cards inside the post-review lockout
// are rejected with a *domain.TransitionError.
func (l *Lifecycle) RecordReview(card domain.Card, outcome Outcome, now time.Time) (domain.Card, error) {
	switch {
	case card.IsMastered:
		return card, &domain.TransitionError{CardID: card.ID, From: domain.CardStatusMastered, Op: "review"}
	case card.IsFrozen(now):
		return card, &domain.TransitionError{CardID: card.ID, From: domain.CardStatusFrozen, Op: "review"}
	case card.IsLocked(now):
		return card, &domain.TransitionError{CardID: card.ID, From: domain.CardStatusWaiting, Op: "review again during lockout"}
	}

	res := Compute(card, outcome, now, l.cfg)

	card.Stage = res.NewStage
	if outcome.Correct {
		card.CorrectTotal++
	} else {
		card.WrongTotal++
	}

	next := res.NextReviewAt
	card.NextReviewAt = &next
	card.LastReviewedAt = &now
	card.IsOverdue = false
	card.OverdueStartAt = nil
	card.OverdueDeadline = nil
	card.FrozenUntil = nil

	card.WaitingUntil = nil
	if l.cfg.ShortLockout > 0 {
		until := now.Add(l.cfg.ShortLockout)
		card.WaitingUntil = &until
	}

	if res.NewStatus == domain.CardStatusMastered {
		card.IsMastered = true
	}

	return card, nil
}

// MarkOverdueIfMissed opens the grace window on a card whose due time has passed.
// The deadline is fixed from onset. Idempotent; reports whether the card changed.
// A card carrying a freeze, even an expired one, is left for Thaw to re-evaluate.
func (l *Lifecycle) MarkOverdueIfMissed(card domain.Card, now time.Time) (domain.Card, bool) {
	if card.IsMastered || card.IsOverdue || card.FrozenUntil != nil || !card.IsDue(now) {
		return card, false
	}

	start := now
	deadline := now.Add(l.cfg.OverdueWindow)
	card.IsOverdue = true
	card.OverdueStartAt = &start
	card.OverdueDeadline = &deadline

	return card, true
}

// EscalateIfExpired freezes and demotes an overdue card whose grace window has ended.
// Reports whether the card changed.
func (l *Lifecycle) EscalateIfExpired(card domain.Card, now time.Time) (domain.Card, bool) {
	if !card.IsOverdue || card.OverdueDeadline == nil || !now.After(*card.OverdueDeadline) {
		return card, false
	}

	until := now.Add(l.cfg.FreezePeriod)
	card.FrozenUntil = &until
	card.Stage = max(card.Stage-l.cfg.FreezeDemotion, 0)
	card.IsOverdue = false
	card.OverdueStartAt = nil
	card.OverdueDeadline = nil

	return card, true
}

// IsAvailableForReview reports whether the card can be reviewed at now.
// It never mutates: an expired freeze stays recorded until Thaw runs.
func (l *Lifecycle) IsAvailableForReview(card domain.Card, now time.Time) bool {
	if card.IsMastered || card.IsFrozen(now) {
		return false
	}
	return card.IsOverdue || card.IsDue(now)
}

// Thaw clears an expired freeze and makes the card due at now.
// Reports whether the card changed.
func (l *Lifecycle) Thaw(card domain.Card, now time.Time) (domain.Card, bool) {
	if card.FrozenUntil == nil || now.Before(*card.FrozenUntil) {
		return card, false
	}

	due := now
	card.FrozenUntil = nil
	card.NextReviewAt = &due

	return card, true
}

// Relearn resets a mastered card so it re-enters the review cycle at stage 0.
func (l *Lifecycle) Relearn(card domain.Card, now time.Time) (domain.Card, error) {
	if !card.IsMastered {
		return card, &domain.TransitionError{CardID: card.ID, From: l.Status(card, now), Op: "relearn"}
	}

	due := now
	card.IsMastered = false
	card.IsFromWrongAnswer = true
	card.Stage = 0
	card.NextReviewAt = &due
	card.WaitingUntil = nil
	card.IsOverdue = false
	card.OverdueStartAt = nil
	card.OverdueDeadline = nil
	card.FrozenUntil = nil

	return card, nil
}
