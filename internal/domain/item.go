package domain

import "slices"

// Item tags used to decide which equipment slot an item can occupy
const (
	TagWeapon = "weapon"
	TagArmor  = "armor"
	TagCape   = "cape"
	TagTool   = "tool"
)

// ItemDefinition is the catalog entry for an item. Guild-scoped definitions
// shadow global ones with the same key.
type ItemDefinition struct {
	ID        string    `json:"id"`
	GuildID   *string   `json:"guild_id,omitempty"`
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Stackable bool      `json:"stackable"`
	Tags      []string  `json:"tags"`
	Props     ItemProps `json:"props"`
}

// ItemProps holds the typed view of the item's JSON props blob
type ItemProps struct {
	Tool       *ToolProps `json:"tool,omitempty"`
	Breakable  *Breakable `json:"breakable,omitempty"`
	Damage     int        `json:"damage,omitempty"`
	Defense    int        `json:"defense,omitempty"`
	MaxHPBonus int        `json:"maxHpBonus,omitempty"`
}

// ToolProps identifies the tool family and tier of an item
type ToolProps struct {
	Type string `json:"type"`
	Tier int    `json:"tier"`
}

// Breakable describes durability. A nil Enabled means enabled.
type Breakable struct {
	Enabled          *bool `json:"enabled,omitempty"`
	MaxDurability    int   `json:"maxDurability"`
	DurabilityPerUse int   `json:"durabilityPerUse"`
}

// IsEnabled reports whether durability applies
func (b *Breakable) IsEnabled() bool {
	if b == nil {
		return false
	}
	return b.Enabled == nil || *b.Enabled
}

// HasTag reports whether the item carries the given tag
func (d *ItemDefinition) HasTag(tag string) bool {
	return slices.Contains(d.Tags, tag)
}

// IsBreakable reports whether using the item consumes durability
func (d *ItemDefinition) IsBreakable() bool {
	return d.Props.Breakable.IsEnabled()
}

// ToolType returns the tool family or "" when the item is not a tool
func (d *ItemDefinition) ToolType() string {
	if d.Props.Tool == nil {
		return ""
	}
	return d.Props.Tool.Type
}

// ToolTier returns the tool tier or 0 when the item is not a tool
func (d *ItemDefinition) ToolTier() int {
	if d.Props.Tool == nil {
		return 0
	}
	return d.Props.Tool.Tier
}
