package domain

import "time"

// Player defaults applied when state rows are created lazily
const (
	DefaultPlayerMaxHP = 100
	UnarmedDamage      = 1
)

// PlayerState is the persistent combat state of a player in a guild
type PlayerState struct {
	UserID  string `json:"user_id"`
	GuildID string `json:"guild_id"`
	HP      int    `json:"hp"`
	MaxHP   int    `json:"max_hp"`
}

// PlayerStats holds counters consumed by quest and leaderboard collaborators
type PlayerStats struct {
	UserID           string `json:"user_id"`
	GuildID          string `json:"guild_id"`
	CurrentWinStreak int    `json:"current_win_streak"`
	LongestWinStreak int    `json:"longest_win_streak"`
	MobsDefeated     int    `json:"mobs_defeated"`
	DamageDealt      int    `json:"damage_dealt"`
	DamageTaken      int    `json:"damage_taken"`
	TimesDefeated    int    `json:"times_defeated"`
	ActionsCompleted int    `json:"actions_completed"`
}

// PlayerSnapshot is everything the engine reads about a player before
// resolving an action. Inside a transaction it is loaded with row locks.
type PlayerSnapshot struct {
	UserID        string
	GuildID       string
	Wallet        Wallet
	Equipment     EquipmentSlots
	Inventory     []InventoryEntry
	CooldownUntil *time.Time
	State         PlayerState
	Stats         PlayerStats
}

// FindEntryByItemID returns the inventory entry for itemID, or nil
func (s *PlayerSnapshot) FindEntryByItemID(itemID string) *InventoryEntry {
	for i := range s.Inventory {
		if s.Inventory[i].ItemID == itemID {
			return &s.Inventory[i]
		}
	}
	return nil
}

// FindEntryByKey returns the inventory entry whose item key matches, or nil
func (s *PlayerSnapshot) FindEntryByKey(key string) *InventoryEntry {
	for i := range s.Inventory {
		if s.Inventory[i].Item != nil && s.Inventory[i].Item.Key == key {
			return &s.Inventory[i]
		}
	}
	return nil
}

// EquippedEntry returns the inventory entry backing an equipped slot. Slots
// pointing at an item the player no longer holds count as empty.
func (s *PlayerSnapshot) EquippedEntry(itemID *string) *InventoryEntry {
	if itemID == nil {
		return nil
	}
	entry := s.FindEntryByItemID(*itemID)
	if entry == nil || entry.Quantity <= 0 || entry.Item == nil {
		return nil
	}
	return entry
}
