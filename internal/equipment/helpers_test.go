package equipment

import (
	"github.com/osse101/ActionEngine_Go/internal/domain"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func pickaxe(key string, tier, maxDur, perUse int) *domain.ItemDefinition {
	return &domain.ItemDefinition{
		ID:   "item-" + key,
		Key:  key,
		Tags: []string{domain.TagTool},
		Props: domain.ItemProps{
			Tool:      &domain.ToolProps{Type: "pickaxe", Tier: tier},
			Breakable: &domain.Breakable{MaxDurability: maxDur, DurabilityPerUse: perUse},
		},
	}
}

func sword(key string, tier, damage int) *domain.ItemDefinition {
	return &domain.ItemDefinition{
		ID:   "item-" + key,
		Key:  key,
		Tags: []string{domain.TagWeapon, domain.TagTool},
		Props: domain.ItemProps{
			Tool:   &domain.ToolProps{Type: "sword", Tier: tier},
			Damage: damage,
		},
	}
}

func entryWith(item *domain.ItemDefinition, durabilities ...*int) domain.InventoryEntry {
	entry := domain.InventoryEntry{UserID: "u1", GuildID: "g1", ItemID: item.ID, Item: item}
	for _, d := range durabilities {
		entry.State.Instances = append(entry.State.Instances, domain.ItemInstance{Durability: d})
	}
	entry.Quantity = len(entry.State.Instances)
	return entry
}
