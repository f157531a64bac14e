package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// AreaType is the kind of activity an area hosts
type AreaType string

const (
	AreaTypeMine   AreaType = "MINE"
	AreaTypeLagoon AreaType = "LAGOON"
	AreaTypeFight  AreaType = "FIGHT"
	AreaTypeFarm   AreaType = "FARM"
)

// Default draw counts when a table omits "draws"
const (
	DefaultRewardDraws = 1
	DefaultMobDraws    = 0
)

// GameArea is a configured activity location
type GameArea struct {
	ID      string     `json:"id"`
	GuildID *string    `json:"guild_id,omitempty"`
	Key     string     `json:"key"`
	Name    string     `json:"name"`
	Type    AreaType   `json:"type"`
	Config  AreaConfig `json:"config"`
}

// AreaConfig is the typed view of an area's config blob
type AreaConfig struct {
	CooldownSeconds     int      `json:"cooldownSeconds,omitempty"`
	RiskFactor          float64  `json:"riskFactor,omitempty"`
	DeathPenaltyPercent *float64 `json:"deathPenaltyPercent,omitempty"`
	RequiresWeapon      *bool    `json:"requiresWeapon,omitempty"`
}

// RequiresWeapon reports whether combat in this area needs an equipped weapon.
// FIGHT areas require one unless the config says otherwise.
func (a *GameArea) RequiresWeapon() bool {
	if a.Config.RequiresWeapon != nil {
		return *a.Config.RequiresWeapon
	}
	return a.Type == AreaTypeFight
}

// CooldownKey namespaces the area's cooldown row
func (a *GameArea) CooldownKey() string {
	return CooldownKeyPrefixMinigame + a.Key
}

// Cooldown returns the configured cooldown duration
func (a *GameArea) Cooldown() time.Duration {
	return time.Duration(a.Config.CooldownSeconds) * time.Second
}

// GameAreaLevel is one tier of an area
type GameAreaLevel struct {
	ID            string            `json:"id"`
	AreaID        string            `json:"area_id"`
	Level         int               `json:"level"`
	Requirements  LevelRequirements `json:"requirements"`
	Rewards       RewardTable       `json:"rewards"`
	Mobs          MobTable          `json:"mobs"`
	AvailableFrom *time.Time        `json:"available_from,omitempty"`
	AvailableTo   *time.Time        `json:"available_to,omitempty"`
}

// IsAvailable reports whether now falls inside the optional availability window
func (l *GameAreaLevel) IsAvailable(now time.Time) bool {
	if l.AvailableFrom != nil && now.Before(*l.AvailableFrom) {
		return false
	}
	if l.AvailableTo != nil && now.After(*l.AvailableTo) {
		return false
	}
	return true
}

// LevelRequirements is the typed view of a level's requirements blob
type LevelRequirements struct {
	Tool *ToolRequirement `json:"tool,omitempty"`
}

// ToolRequirement constrains which tool may be used on a level
type ToolRequirement struct {
	Required    bool     `json:"required,omitempty"`
	ToolType    string   `json:"toolType,omitempty"`
	MinTier     int      `json:"minTier,omitempty"`
	AllowedKeys []string `json:"allowedKeys,omitempty"`
}

// Allows reports whether the allow-list (if any) contains key
func (r *ToolRequirement) Allows(key string) bool {
	if len(r.AllowedKeys) == 0 {
		return true
	}
	return slices.Contains(r.AllowedKeys, key)
}

// RewardKind tags a reward entry
type RewardKind string

const (
	RewardKindCoins RewardKind = "coins"
	RewardKindItem  RewardKind = "item"
)

// RewardTable is a weighted table of coin or item rewards
type RewardTable struct {
	Draws *int          `json:"draws,omitempty"`
	Table []RewardEntry `json:"table"`
}

// DrawCount returns the configured draws or the default of one
func (t RewardTable) DrawCount() int {
	if t.Draws == nil {
		return DefaultRewardDraws
	}
	return *t.Draws
}

// RewardEntry is a tagged union over coin and item rewards. Exactly one of
// Coins or Item is set after decoding.
type RewardEntry struct {
	Weight float64
	Coins  *CoinReward
	Item   *ItemReward
}

// CoinReward grants a fixed number of coins
type CoinReward struct {
	Amount int64
}

// ItemReward grants qty copies of an item
type ItemReward struct {
	ItemKey string
	Qty     int
}

type rewardEntryWire struct {
	Type    RewardKind `json:"type"`
	Amount  int64      `json:"amount,omitempty"`
	ItemKey string     `json:"itemKey,omitempty"`
	Qty     int        `json:"qty,omitempty"`
	Weight  float64    `json:"weight"`
}

// UnmarshalJSON decodes the {type: coins|item} wire shape
func (e *RewardEntry) UnmarshalJSON(data []byte) error {
	var w rewardEntryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = RewardEntry{Weight: w.Weight}
	switch w.Type {
	case RewardKindCoins:
		e.Coins = &CoinReward{Amount: w.Amount}
	case RewardKindItem:
		qty := w.Qty
		if qty <= 0 {
			qty = 1
		}
		e.Item = &ItemReward{ItemKey: w.ItemKey, Qty: qty}
	default:
		return fmt.Errorf("%w: unknown reward type %q", ErrInvalidContent, w.Type)
	}
	return nil
}

// MarshalJSON encodes back to the wire shape
func (e RewardEntry) MarshalJSON() ([]byte, error) {
	w := rewardEntryWire{Weight: e.Weight}
	switch {
	case e.Coins != nil:
		w.Type = RewardKindCoins
		w.Amount = e.Coins.Amount
	case e.Item != nil:
		w.Type = RewardKindItem
		w.ItemKey = e.Item.ItemKey
		w.Qty = e.Item.Qty
	default:
		return nil, fmt.Errorf("%w: empty reward entry", ErrInvalidContent)
	}
	return json.Marshal(w)
}

// MobTable is a weighted table of mob keys
type MobTable struct {
	Draws *int       `json:"draws,omitempty"`
	Table []MobEntry `json:"table"`
}

// DrawCount returns the configured draws or the default of zero
func (t MobTable) DrawCount() int {
	if t.Draws == nil {
		return DefaultMobDraws
	}
	return *t.Draws
}

// MobEntry is one weighted mob candidate
type MobEntry struct {
	MobKey string  `json:"mobKey"`
	Weight float64 `json:"weight"`
}

// GameAreaRecord is an area row as stored, before its config blob is validated
type GameAreaRecord struct {
	ID      string
	GuildID *string
	Key     string
	Name    string
	Type    string
	Config  json.RawMessage
}

// GameAreaLevelRecord is a level row as stored, before its blobs are validated
type GameAreaLevelRecord struct {
	ID            string
	AreaID        string
	Level         int
	Requirements  json.RawMessage
	Rewards       json.RawMessage
	Mobs          json.RawMessage
	AvailableFrom *time.Time
	AvailableTo   *time.Time
}

// ItemRecord is an item row as stored, before its props blob is validated
type ItemRecord struct {
	ID        string
	GuildID   *string
	Key       string
	Name      string
	Stackable bool
	Tags      []string
	Props     json.RawMessage
}
