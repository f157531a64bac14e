package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action>
const (
	// EventTypeActionResolved is published after an action commits
	EventTypeActionResolved = "minigame.action_resolved"

	// EventTypeToolBroken is published when a tool instance breaks
	EventTypeToolBroken = "minigame.tool_broken"

	// EventTypePlayerDefeated is published when a death penalty is applied
	EventTypePlayerDefeated = "minigame.player_defeated"
)

// ActionResolvedPayload is the payload of EventTypeActionResolved
type ActionResolvedPayload struct {
	UserID       string `json:"user_id"`
	GuildID      string `json:"guild_id"`
	AreaKey      string `json:"area_key"`
	AreaType     string `json:"area_type"`
	Level        int    `json:"level"`
	Outcome      string `json:"outcome"`
	CoinsAwarded int64  `json:"coins_awarded"`
	MobsDefeated int    `json:"mobs_defeated"`

	ItemsAwarded map[string]int `json:"items_awarded,omitempty"`
}

// ToolBrokenPayload is the payload of EventTypeToolBroken
type ToolBrokenPayload struct {
	UserID             string `json:"user_id"`
	GuildID            string `json:"guild_id"`
	ToolKey            string `json:"tool_key"`
	InstancesRemaining int    `json:"instances_remaining"`
}

// PlayerDefeatedPayload is the payload of EventTypePlayerDefeated
type PlayerDefeatedPayload struct {
	UserID             string `json:"user_id"`
	GuildID            string `json:"guild_id"`
	AreaKey            string `json:"area_key"`
	CoinsLost          int64  `json:"coins_lost"`
	AutoDefeatNoWeapon bool   `json:"auto_defeat_no_weapon"`
}
