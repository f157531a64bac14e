package domain

import "time"

// CooldownKeyPrefixMinigame namespaces area cooldown keys
const CooldownKeyPrefixMinigame = "minigame:"

// ActionCooldown blocks an action key until the given time
type ActionCooldown struct {
	UserID  string    `json:"user_id"`
	GuildID string    `json:"guild_id"`
	Key     string    `json:"key"`
	Until   time.Time `json:"until"`
}

// Remaining returns the time left at now, zero once inert
func (c *ActionCooldown) Remaining(now time.Time) time.Duration {
	if !c.Until.After(now) {
		return 0
	}
	return c.Until.Sub(now)
}
