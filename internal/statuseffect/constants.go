package statuseffect

import "time"

const (
	// MaxMagnitudeReduction caps the reduction a single effect can apply
	MaxMagnitudeReduction = 0.9

	// DefenseMagnitudeRatio scales fatigue magnitude for defense
	DefenseMagnitudeRatio = 0.66

	DefaultFatigueMagnitude      = 0.15
	DefaultFatigueDuration       = 5 * time.Minute
	DefaultFatigueStreakStep     = 5
	DefaultFatigueStreakBonus    = 0.01
	DefaultFatigueStreakBonusCap = 0.10

	FatigueReasonDeath = "death"
)

const (
	ErrMsgPurgeExpiredFailed = "failed to purge expired status effects: %w"
	ErrMsgLoadEffectsFailed  = "failed to load status effects: %w"
	ErrMsgApplyEffectFailed  = "failed to apply status effect: %w"
)

const (
	LogMsgExpiredEffectsPurged = "Purged expired status effects"
	LogMsgEffectApplied        = "Status effect applied"
)
