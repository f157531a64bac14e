package equipment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/ActionEngine_Go/internal/domain"
)

func TestComputeStats(t *testing.T) {
	blade := sword("sword.steel", 2, 9)
	armor := &domain.ItemDefinition{ID: "item-armor", Key: "armor.leather", Tags: []string{domain.TagArmor}, Props: domain.ItemProps{Defense: 4}}
	cape := &domain.ItemDefinition{ID: "item-cape", Key: "cape.red", Tags: []string{domain.TagCape}, Props: domain.ItemProps{Defense: 1, MaxHPBonus: 20}}

	snap := &domain.PlayerSnapshot{
		Equipment: domain.EquipmentSlots{
			WeaponItemID: strPtr(blade.ID),
			ArmorItemID:  strPtr(armor.ID),
			CapeItemID:   strPtr(cape.ID),
		},
		Inventory: []domain.InventoryEntry{entryWith(blade, nil), entryWith(armor, nil), entryWith(cape, nil)},
		State:     domain.PlayerState{HP: 50, MaxHP: 100},
	}

	stats := ComputeStats(snap, nil)
	assert.Equal(t, 9, stats.Damage)
	assert.Equal(t, 5, stats.Defense)
	assert.Equal(t, 120, stats.MaxHP)
	assert.True(t, stats.HasWeapon())
}

func TestComputeStats_UnequippedWhenNotHeld(t *testing.T) {
	blade := sword("sword.steel", 2, 9)
	snap := &domain.PlayerSnapshot{
		Equipment: domain.EquipmentSlots{WeaponItemID: strPtr(blade.ID)},
		Inventory: []domain.InventoryEntry{entryWith(blade)},
	}

	stats := ComputeStats(snap, nil)
	assert.False(t, stats.HasWeapon())
	assert.Equal(t, domain.DefaultPlayerMaxHP, stats.MaxHP)
}

func TestComputeStats_WeaponToolFillsEmptySlot(t *testing.T) {
	blade := sword("sword.steel", 2, 9)
	snap := &domain.PlayerSnapshot{Inventory: []domain.InventoryEntry{entryWith(blade, nil)}}
	sel := &ToolSelection{Entry: &snap.Inventory[0], Item: blade, Source: domain.ToolSourceAuto}

	stats := ComputeStats(snap, sel)
	assert.Equal(t, "sword.steel", stats.WeaponKey)
	assert.Equal(t, 9, stats.Damage)
}
