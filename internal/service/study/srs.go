package study

import (
	"fmt"
	"math"
	"time"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

// Outcome is the result of a single review attempt.
type Outcome struct {
	Correct        bool
	ResponseTimeMs *int
}

// SRSResult is the output of Compute.
type SRSResult struct {
	NewStage     int
	NewInterval  time.Duration
	NewStatus    domain.CardStatus
	NextReviewAt time.Time
}

// Compute is a pure function. No DB, no context, no logger.
// It panics on a negative stage: that is a caller bug, not a runtime condition.
func Compute(card domain.Card, outcome Outcome, now time.Time, cfg domain.SRSConfig) SRSResult {
	if card.Stage < 0 {
		panic(fmt.Sprintf("study: card %s has negative stage %d", card.ID, card.Stage))
	}

	var stage int
	if outcome.Correct {
		stage = min(card.Stage+levelIncrease(outcome.ResponseTimeMs, cfg), cfg.MaxStage)
	} else {
		stage = max(card.Stage-levelDecrease(card.Stage, cfg), 0)
	}

	interval := intervalForStage(stage, cfg)

	status := domain.CardStatusWaiting
	switch {
	case outcome.Correct && stage == cfg.MaxStage && !card.IsFromWrongAnswer:
		status = domain.CardStatusMastered
	case interval <= 0:
		status = domain.CardStatusAvailable
	}

	return SRSResult{
		NewStage:     stage,
		NewInterval:  interval,
		NewStatus:    status,
		NextReviewAt: now.Add(interval),
	}
}

// levelIncrease rewards confident recall with a multi-stage jump.
func levelIncrease(responseTimeMs *int, cfg domain.SRSConfig) int {
	if responseTimeMs != nil && cfg.FastResponseThreshold > 0 &&
		time.Duration(*responseTimeMs)*time.Millisecond < cfg.FastResponseThreshold {
		return cfg.FastResponseBonus
	}
	return 1
}

// levelDecrease grows steeper once a card is close to mastery.
func levelDecrease(stage int, cfg domain.SRSConfig) int {
	if stage >= cfg.SteepDemotionFrom {
		return cfg.SteepDemotion
	}
	return 1
}

// intervalForStage returns BaseInterval * GrowthFactor^stage clamped to [MinInterval, MaxInterval].
func intervalForStage(stage int, cfg domain.SRSConfig) time.Duration {
	// 0 * Inf is NaN, which fails both clamps.
	if cfg.BaseInterval <= 0 {
		return cfg.MinInterval
	}
	raw := float64(cfg.BaseInterval) * math.Pow(cfg.GrowthFactor, float64(stage))

	// Clamp in float space: large stages overflow time.Duration.
	if raw >= float64(cfg.MaxInterval) {
		return cfg.MaxInterval
	}
	if raw <= float64(cfg.MinInterval) {
		return cfg.MinInterval
	}
	return time.Duration(math.Round(raw))
}
