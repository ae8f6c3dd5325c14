package config

import (
	"time"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
	"github.com/heartmarshall/myenglish-scheduler/internal/queue"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	// Timezone is the IANA zone that defines calendar days and alarm hours.
	Timezone string       `yaml:"timezone" env:"SCHEDULER_TIMEZONE" env-default:"UTC" validate:"required,timezone"`
	SRS      SRSConfig    `yaml:"srs"`
	Alarm    AlarmConfig  `yaml:"alarm"`
	Rollup   RollupConfig `yaml:"rollup"`
	Worker   WorkerConfig `yaml:"worker"`

	// Location is resolved from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-" validate:"-"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true" validate:"required"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"    validate:"gte=1"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"     validate:"gte=0,ltefield=MaxConns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json" validate:"oneof=json text"`
}

// SRSConfig holds the stage/interval algorithm and card lifecycle tunables.
type SRSConfig struct {
	MaxStage              int           `yaml:"max_stage"               env:"SRS_MAX_STAGE"               env-default:"8"     validate:"gte=1"`
	BaseInterval          time.Duration `yaml:"base_interval"           env:"SRS_BASE_INTERVAL"           env-default:"10m"   validate:"gte=0"`
	GrowthFactor          float64       `yaml:"growth_factor"           env:"SRS_GROWTH_FACTOR"           env-default:"2.0"   validate:"gte=1"`
	MinInterval           time.Duration `yaml:"min_interval"            env:"SRS_MIN_INTERVAL"            env-default:"10m"   validate:"gte=0"`
	MaxInterval           time.Duration `yaml:"max_interval"            env:"SRS_MAX_INTERVAL"            env-default:"1440h" validate:"gtefield=MinInterval"`
	FastResponseThreshold time.Duration `yaml:"fast_response_threshold" env:"SRS_FAST_RESPONSE_THRESHOLD" env-default:"3s"    validate:"gte=0"`
	FastResponseBonus     int           `yaml:"fast_response_bonus"     env:"SRS_FAST_RESPONSE_BONUS"     env-default:"2"     validate:"gte=1"`
	SteepDemotionFrom     int           `yaml:"steep_demotion_from"     env:"SRS_STEEP_DEMOTION_FROM"     env-default:"5"     validate:"gte=0,ltefield=MaxStage"`
	SteepDemotion         int           `yaml:"steep_demotion"          env:"SRS_STEEP_DEMOTION"          env-default:"2"     validate:"gte=1"`
	OverdueWindow         time.Duration `yaml:"overdue_window"          env:"SRS_OVERDUE_WINDOW"          env-default:"24h"   validate:"gt=0"`
	FreezePeriod          time.Duration `yaml:"freeze_period"           env:"SRS_FREEZE_PERIOD"           env-default:"24h"   validate:"gt=0"`
	FreezeDemotion        int           `yaml:"freeze_demotion"         env:"SRS_FREEZE_DEMOTION"         env-default:"1"     validate:"gte=0"`
	ShortLockout          time.Duration `yaml:"short_lockout"           env:"SRS_SHORT_LOCKOUT"           env-default:"30s"   validate:"gte=0"`
	SyncMinDrift          time.Duration `yaml:"sync_min_drift"          env:"SRS_SYNC_MIN_DRIFT"          env-default:"0s"    validate:"gte=0"`
}

// AlarmConfig holds the folder reminder cadence.
type AlarmConfig struct {
	Cadence        time.Duration `yaml:"cadence"          env:"ALARM_CADENCE"          env-default:"6h" validate:"gte=1m"`
	ActiveFromHour int           `yaml:"active_from_hour" env:"ALARM_ACTIVE_FROM_HOUR" env-default:"8"  validate:"gte=0,lte=23,ltfield=ActiveToHour"`
	ActiveToHour   int           `yaml:"active_to_hour"   env:"ALARM_ACTIVE_TO_HOUR"   env-default:"22" validate:"gte=1,lte=24"`
}

// RollupConfig holds the nightly rollup settings.
type RollupConfig struct {
	RunAt              string `yaml:"run_at"               env:"ROLLUP_RUN_AT"               env-default:"00:05" validate:"datetime=15:04"`
	DailyMinimumSolved int    `yaml:"daily_minimum_solved" env:"ROLLUP_DAILY_MINIMUM_SOLVED" env-default:"10"    validate:"gte=0"`
	Concurrency        int    `yaml:"concurrency"          env:"ROLLUP_CONCURRENCY"          env-default:"8"     validate:"gte=1,lte=256"`
}

// WorkerConfig holds alarm queue worker settings.
type WorkerConfig struct {
	PollInterval time.Duration `yaml:"poll_interval" env:"WORKER_POLL_INTERVAL" env-default:"1s"  validate:"gte=10ms"`
	BatchSize    int           `yaml:"batch_size"    env:"WORKER_BATCH_SIZE"    env-default:"32"  validate:"gte=1"`
	Lease        time.Duration `yaml:"lease"         env:"WORKER_LEASE"         env-default:"1m"  validate:"gte=1s"`
	MaxAttempts  int           `yaml:"max_attempts"  env:"WORKER_MAX_ATTEMPTS"  env-default:"5"   validate:"gte=1"`
	RetryInitial time.Duration `yaml:"retry_initial" env:"WORKER_RETRY_INITIAL" env-default:"5s"  validate:"gt=0"`
	RetryMax     time.Duration `yaml:"retry_max"     env:"WORKER_RETRY_MAX"     env-default:"5m"  validate:"gtefield=RetryInitial"`
	RetryJitter  float64       `yaml:"retry_jitter"  env:"WORKER_RETRY_JITTER"  env-default:"0.2" validate:"gte=0,lt=1"`
}

// Domain converts the SRS section to the domain tunables.
func (c SRSConfig) Domain() domain.SRSConfig {
	return domain.SRSConfig{
		MaxStage:              c.MaxStage,
		BaseInterval:          c.BaseInterval,
		GrowthFactor:          c.GrowthFactor,
		MinInterval:           c.MinInterval,
		MaxInterval:           c.MaxInterval,
		FastResponseThreshold: c.FastResponseThreshold,
		FastResponseBonus:     c.FastResponseBonus,
		SteepDemotionFrom:     c.SteepDemotionFrom,
		SteepDemotion:         c.SteepDemotion,
		OverdueWindow:         c.OverdueWindow,
		FreezePeriod:          c.FreezePeriod,
		FreezeDemotion:        c.FreezeDemotion,
		ShortLockout:          c.ShortLockout,
		SyncMinDrift:          c.SyncMinDrift,
	}
}

// AlarmDomain returns the alarm tunables in the configured location.
func (c *Config) AlarmDomain() domain.AlarmConfig {
	return domain.AlarmConfig{
		Cadence:        c.Alarm.Cadence,
		ActiveFromHour: c.Alarm.ActiveFromHour,
		ActiveToHour:   c.Alarm.ActiveToHour,
		Location:       c.Location,
	}
}

// RollupDomain returns the rollup tunables in the configured location.
func (c *Config) RollupDomain() domain.RollupConfig {
	return domain.RollupConfig{
		DailyMinimumSolved: c.Rollup.DailyMinimumSolved,
		Location:           c.Location,
		Concurrency:        c.Rollup.Concurrency,
	}
}

// Queue converts the worker section to queue.WorkerConfig.
func (c WorkerConfig) Queue() queue.WorkerConfig {
	return queue.WorkerConfig{
		PollInterval: c.PollInterval,
		BatchSize:    c.BatchSize,
		Lease:        c.Lease,
		MaxAttempts:  c.MaxAttempts,
		RetryInitial: c.RetryInitial,
		RetryMax:     c.RetryMax,
		RetryJitter:  c.RetryJitter,
	}
}
