package domain

import (
	"encoding/json"
	"time"
)

// StatusEffectType identifies a status effect family
type StatusEffectType string

const (
	// StatusEffectFatigue reduces damage, defense and coin output after a defeat
	StatusEffectFatigue StatusEffectType = "FATIGUE"
)

// StatusEffect is a timed modifier keyed by (user, guild, type). A nil
// ExpiresAt means the effect is permanent.
type StatusEffect struct {
	UserID    string           `json:"user_id"`
	GuildID   string           `json:"guild_id"`
	Type      StatusEffectType `json:"type"`
	Magnitude float64          `json:"magnitude"`
	ExpiresAt *time.Time       `json:"expires_at,omitempty"`
	Data      json.RawMessage  `json:"data,omitempty"`
}

// IsExpired reports whether the effect has lapsed at now
func (e *StatusEffect) IsExpired(now time.Time) bool {
	return e.ExpiresAt != nil && !e.ExpiresAt.After(now)
}
