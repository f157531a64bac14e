package domain

import (
	"encoding/json"
	"time"
)

// DeathLog records a death penalty application
type DeathLog struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	GuildID            string    `json:"guild_id"`
	AreaKey            string    `json:"area_key"`
	Level              int       `json:"level"`
	CoinsLost          int64     `json:"coins_lost"`
	PercentApplied     float64   `json:"percent_applied"`
	AutoDefeatNoWeapon bool      `json:"auto_defeat_no_weapon"`
	FatigueMagnitude   float64   `json:"fatigue_magnitude"`
	FatigueMinutes     int       `json:"fatigue_minutes"`
	CreatedAt          time.Time `json:"created_at"`
}

// ToolBreakEvent records a durability exhaustion. Observational only.
type ToolBreakEvent struct {
	Timestamp          time.Time `json:"timestamp"`
	UserID             string    `json:"user_id"`
	GuildID            string    `json:"guild_id"`
	ToolKey            string    `json:"tool_key"`
	BrokenInstance     bool      `json:"broken_instance"`
	InstancesRemaining int       `json:"instances_remaining"`
}

// ActionRun is the append-only log of resolved actions
type ActionRun struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	GuildID   string          `json:"guild_id"`
	AreaID    string          `json:"area_id"`
	Level     int             `json:"level"`
	Outcome   string          `json:"outcome"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}
