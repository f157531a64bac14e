package statuseffect

import (
	"encoding/json"
	"time"

	"github.com/osse101/ActionEngine_Go/internal/domain"
)

// Modifiers are multiplicative factors applied to combat and coin output
type Modifiers struct {
	Damage  float64 `json:"damage"`
	Defense float64 `json:"defense"`
	Coin    float64 `json:"coin"`
}

// Neutral returns modifiers that change nothing
func Neutral() Modifiers {
	return Modifiers{Damage: 1, Defense: 1, Coin: 1}
}

// ComputeModifiers folds all active effects into one set of multipliers.
// Expired effects are ignored even if the caller has not purged them.
func ComputeModifiers(effects []domain.StatusEffect, now time.Time) Modifiers {
	mods := Neutral()
	for i := range effects {
		eff := &effects[i]
		if eff.IsExpired(now) {
			continue
		}
		switch eff.Type {
		case domain.StatusEffectFatigue:
			mods.Damage *= FatigueDamageFactor(eff.Magnitude)
			mods.Coin *= FatigueDamageFactor(eff.Magnitude)
			mods.Defense *= FatigueDefenseFactor(eff.Magnitude)
		}
	}
	return mods
}

// FatigueDamageFactor is 1 - min(0.9, magnitude); never below 0.1
func FatigueDamageFactor(magnitude float64) float64 {
	return 1 - capMagnitude(magnitude)
}

// FatigueDefenseFactor is 1 - min(0.9, magnitude*0.66)
func FatigueDefenseFactor(magnitude float64) float64 {
	return 1 - capMagnitude(magnitude*DefenseMagnitudeRatio)
}

func capMagnitude(m float64) float64 {
	if m < 0 {
		return 0
	}
	if m > MaxMagnitudeReduction {
		return MaxMagnitudeReduction
	}
	return m
}

// DeathFatigueConfig tunes the fatigue applied after a defeat
type DeathFatigueConfig struct {
	Magnitude      float64
	Duration       time.Duration
	StreakStep     int
	StreakBonus    float64
	StreakBonusCap float64
}

// DefaultDeathFatigueConfig returns 0.15 magnitude for five minutes, plus 1%
// per five previous wins up to +10%
func DefaultDeathFatigueConfig() DeathFatigueConfig {
	return DeathFatigueConfig{
		Magnitude:      DefaultFatigueMagnitude,
		Duration:       DefaultFatigueDuration,
		StreakStep:     DefaultFatigueStreakStep,
		StreakBonus:    DefaultFatigueStreakBonus,
		StreakBonusCap: DefaultFatigueStreakBonusCap,
	}
}

type deathData struct {
	Reason string `json:"reason"`
}

// DeathFatigue builds the fatigue effect for a player who just lost with the
// given win streak
func DeathFatigue(cfg DeathFatigueConfig, userID, guildID string, previousStreak int, now time.Time) domain.StatusEffect {
	magnitude := cfg.Magnitude
	if cfg.StreakStep > 0 && previousStreak > 0 {
		bonus := float64(previousStreak/cfg.StreakStep) * cfg.StreakBonus
		if bonus > cfg.StreakBonusCap {
			bonus = cfg.StreakBonusCap
		}
		magnitude += bonus
	}

	expiresAt := now.Add(cfg.Duration)
	data, _ := json.Marshal(deathData{Reason: FatigueReasonDeath})

	return domain.StatusEffect{
		UserID:    userID,
		GuildID:   guildID,
		Type:      domain.StatusEffectFatigue,
		Magnitude: magnitude,
		ExpiresAt: &expiresAt,
		Data:      data,
	}
}
