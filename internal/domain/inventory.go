package domain

import (
	"fmt"
	"time"
)

// InventoryEntry is one (user, guild, item) row. For non-stackable items the
// instances slice mirrors the quantity one to one.
type InventoryEntry struct {
	UserID   string          `json:"user_id"`
	GuildID  string          `json:"guild_id"`
	ItemID   string          `json:"item_id"`
	Item     *ItemDefinition `json:"item,omitempty"`
	Quantity int             `json:"quantity"`
	State    InventoryState  `json:"state"`
}

// InventoryState is the JSON state blob of an inventory entry
type InventoryState struct {
	Instances []ItemInstance `json:"instances,omitempty"`
}

// ItemInstance is one physical copy of a non-stackable item
type ItemInstance struct {
	Durability *int       `json:"durability,omitempty"`
	Mutations  []string   `json:"mutations,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

// CheckInvariant verifies quantity == len(instances) for non-stackable items.
// Entries without a joined item definition are checked as non-stackable.
func (e *InventoryEntry) CheckInvariant() error {
	if e.Quantity < 0 {
		return fmt.Errorf("%w: item %s has negative quantity %d", ErrIntegrity, e.ItemID, e.Quantity)
	}
	if e.Item != nil && e.Item.Stackable {
		if len(e.State.Instances) > 0 {
			return fmt.Errorf("%w: stackable item %s carries %d instances", ErrIntegrity, e.Item.Key, len(e.State.Instances))
		}
		return nil
	}
	if e.Quantity != len(e.State.Instances) {
		return fmt.Errorf("%w: item %s quantity %d but %d instances", ErrIntegrity, e.ItemID, e.Quantity, len(e.State.Instances))
	}
	return nil
}

// Key returns the item key or the item id when no definition is joined
func (e *InventoryEntry) Key() string {
	if e.Item != nil {
		return e.Item.Key
	}
	return e.ItemID
}

// Clone returns a deep copy so callers can mutate without aliasing the snapshot
func (e InventoryEntry) Clone() InventoryEntry {
	out := e
	if e.State.Instances != nil {
		out.State.Instances = make([]ItemInstance, len(e.State.Instances))
		for i, inst := range e.State.Instances {
			c := inst
			if inst.Durability != nil {
				d := *inst.Durability
				c.Durability = &d
			}
			if inst.Mutations != nil {
				c.Mutations = append([]string(nil), inst.Mutations...)
			}
			out.State.Instances[i] = c
		}
	}
	return out
}

// EquipmentSlots holds the equipped item ids for a player in a guild
type EquipmentSlots struct {
	UserID       string  `json:"user_id"`
	GuildID      string  `json:"guild_id"`
	WeaponItemID *string `json:"weapon_item_id,omitempty"`
	ArmorItemID  *string `json:"armor_item_id,omitempty"`
	CapeItemID   *string `json:"cape_item_id,omitempty"`
}

// Wallet is a player's per-guild coin balance
type Wallet struct {
	UserID  string `json:"user_id"`
	GuildID string `json:"guild_id"`
	Coins   int64  `json:"coins"`
}
