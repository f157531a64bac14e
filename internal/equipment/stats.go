package equipment

import (
	"github.com/osse101/ActionEngine_Go/internal/domain"
)

// Stats are the equipment-derived combat stats of a player
type Stats struct {
	Damage    int
	Defense   int
	MaxHP     int
	WeaponKey string
}

// HasWeapon reports whether the player can deal weapon damage
func (s Stats) HasWeapon() bool {
	return s.WeaponKey != "" && s.Damage > 0
}

// ComputeStats derives damage from the weapon, defense from armor and cape,
// and max HP from the persistent state plus gear bonuses. When nothing is in
// the weapon slot, a weapon-tagged tool chosen for the action is used instead.
func ComputeStats(snapshot *domain.PlayerSnapshot, tool *ToolSelection) Stats {
	baseMaxHP := snapshot.State.MaxHP
	if baseMaxHP <= 0 {
		baseMaxHP = domain.DefaultPlayerMaxHP
	}
	stats := Stats{MaxHP: baseMaxHP}

	weapon := snapshot.EquippedEntry(snapshot.Equipment.WeaponItemID)
	if weapon == nil && tool != nil && tool.Item.HasTag(domain.TagWeapon) && tool.Entry.Quantity > 0 {
		weapon = tool.Entry
	}
	if weapon != nil {
		stats.Damage = weapon.Item.Props.Damage
		stats.WeaponKey = weapon.Item.Key
	}

	for _, slot := range []*string{snapshot.Equipment.ArmorItemID, snapshot.Equipment.CapeItemID} {
		if entry := snapshot.EquippedEntry(slot); entry != nil {
			stats.Defense += entry.Item.Props.Defense
			stats.MaxHP += entry.Item.Props.MaxHPBonus
		}
	}

	return stats
}
