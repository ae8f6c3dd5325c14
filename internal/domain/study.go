package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SRSConfig holds the stage/interval algorithm and lifecycle tunables (pure domain type).
type SRSConfig struct {
	MaxStage     int
	BaseInterval time.Duration
	GrowthFactor float64
	MinInterval  time.Duration
	MaxInterval  time.Duration

	// A correct answer faster than FastResponseThreshold advances FastResponseBonus stages.
	FastResponseThreshold time.Duration
	FastResponseBonus     int

	// A wrong answer at or above SteepDemotionFrom demotes SteepDemotion stages instead of one.
	SteepDemotionFrom int
	SteepDemotion     int

	OverdueWindow  time.Duration
	FreezePeriod   time.Duration
	FreezeDemotion int
	ShortLockout   time.Duration

	// SyncMinDrift gates folder timer merging; zero merges any divergence.
	SyncMinDrift time.Duration
}

// DefaultSRSConfig returns the tunables used when nothing is configured.
func DefaultSRSConfig() SRSConfig {
	return SRSConfig{
		MaxStage:              8,
		BaseInterval:          10 * time.Minute,
		GrowthFactor:          2.0,
		MinInterval:           10 * time.Minute,
		MaxInterval:           60 * 24 * time.Hour,
		FastResponseThreshold: 3 * time.Second,
		FastResponseBonus:     2,
		SteepDemotionFrom:     5,
		SteepDemotion:         2,
		OverdueWindow:         24 * time.Hour,
		FreezePeriod:          24 * time.Hour,
		FreezeDemotion:        1,
		ShortLockout:          30 * time.Second,
	}
}

// Validate reports the first tunable outside its valid range.
func (c SRSConfig) Validate() error {
	switch {
	case c.MaxStage < 1:
		return NewConfigError("max_stage", "must be >= 1")
	case c.BaseInterval < 0:
		return NewConfigError("base_interval", "must be >= 0")
	case c.GrowthFactor < 1:
		return NewConfigError("growth_factor", "must be >= 1")
	case c.MinInterval < 0:
		return NewConfigError("min_interval", "must be >= 0")
	case c.MinInterval > c.MaxInterval:
		return NewConfigError("min_interval", "must not exceed max_interval")
	case c.FastResponseBonus < 1:
		return NewConfigError("fast_response_bonus", "must be >= 1")
	case c.SteepDemotion < 1:
		return NewConfigError("steep_demotion", "must be >= 1")
	case c.SteepDemotionFrom < 0 || c.SteepDemotionFrom > c.MaxStage:
		return NewConfigError("steep_demotion_from", "must be within [0, max_stage]")
	case c.OverdueWindow <= 0:
		return NewConfigError("overdue_window", "must be > 0")
	case c.FreezePeriod <= 0:
		return NewConfigError("freeze_period", "must be > 0")
	case c.FreezeDemotion < 0:
		return NewConfigError("freeze_demotion", "must be >= 0")
	case c.ShortLockout < 0:
		return NewConfigError("short_lockout", "must be >= 0")
	case c.SyncMinDrift < 0:
		return NewConfigError("sync_min_drift", "must be >= 0")
	}
	return nil
}

// MaxReminderSlots is the number of slots a Folder.ReminderMask can track.
const MaxReminderSlots = 32

// AlarmConfig holds the folder reminder cadence.
type AlarmConfig struct {
	Cadence        time.Duration
	ActiveFromHour int
	ActiveToHour   int
	Location       *time.Location
}

// Validate reports the first tunable outside its valid range.
func (c AlarmConfig) Validate() error {
	switch {
	case c.Cadence < time.Minute:
		return NewConfigError("alarm_cadence", "must be >= 1m")
	case c.ActiveFromHour < 0 || c.ActiveFromHour > 23:
		return NewConfigError("active_from_hour", "must be within [0, 23]")
	case c.ActiveToHour < 1 || c.ActiveToHour > 24:
		return NewConfigError("active_to_hour", "must be within [1, 24]")
	case c.ActiveFromHour >= c.ActiveToHour:
		return NewConfigError("active_from_hour", "must be before active_to_hour")
	case c.SlotsPerDay() > MaxReminderSlots:
		return NewConfigError("alarm_cadence", fmt.Sprintf("yields more than %d slots per active window", MaxReminderSlots))
	case c.Location == nil:
		return NewConfigError("timezone", "required")
	}
	return nil
}

// SlotsPerDay returns how many alarm slots start inside the active window.
func (c AlarmConfig) SlotsPerDay() int {
	if c.Cadence <= 0 {
		return 0
	}
	window := time.Duration(c.ActiveToHour-c.ActiveFromHour) * time.Hour
	return int((window + c.Cadence - 1) / c.Cadence)
}

// RollupConfig holds the nightly rollup tunables.
type RollupConfig struct {
	DailyMinimumSolved int
	Location           *time.Location
	Concurrency        int
}

// Validate reports the first tunable outside its valid range.
func (c RollupConfig) Validate() error {
	switch {
	case c.DailyMinimumSolved < 0:
		return NewConfigError("daily_minimum_solved", "must be >= 0")
	case c.Location == nil:
		return NewConfigError("rollup_timezone", "required")
	case c.Concurrency < 1:
		return NewConfigError("rollup_concurrency", "must be >= 1")
	}
	return nil
}

// UserStat is one learner's study snapshot for a single day plus streak state.
type UserStat struct {
	OwnerID            uuid.UUID
	Date               time.Time
	SolvedCount        int
	UnresolvedWrongDue int
	Streak             int
	StreakEvaluatedFor *time.Time
}

// MetDailyGoal reports whether the day's completion criterion was met.
func (s UserStat) MetDailyGoal(minimumSolved int) bool {
	return s.SolvedCount >= minimumSolved && s.UnresolvedWrongDue == 0
}
