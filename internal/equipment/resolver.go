package equipment

import (
	"github.com/osse101/ActionEngine_Go/internal/domain"
)

// ToolSelection is the tool chosen for an action. Entry points into the
// snapshot the selection was made from.
type ToolSelection struct {
	Entry  *domain.InventoryEntry
	Item   *domain.ItemDefinition
	Source domain.ToolSource
}

// Key returns the selected item's key
func (s *ToolSelection) Key() string {
	return s.Item.Key
}

// Qualifies checks an item against a tool requirement. It returns
// domain.ErrWrongToolType, domain.ErrInsufficientTier or
// domain.ErrNotAllowlisted, or nil when the item is acceptable.
func Qualifies(item *domain.ItemDefinition, req *domain.ToolRequirement) error {
	if req == nil {
		return nil
	}
	if req.ToolType != "" && item.ToolType() != req.ToolType {
		return domain.ErrWrongToolType
	}
	if item.ToolTier() < req.MinTier {
		return domain.ErrInsufficientTier
	}
	if !req.Allows(item.Key) {
		return domain.ErrNotAllowlisted
	}
	return nil
}

// NeedsTool reports whether the requirement asks for a tool at all
func NeedsTool(req *domain.ToolRequirement) bool {
	return req != nil && (req.Required || req.ToolType != "" || len(req.AllowedKeys) > 0)
}

// ResolveTool picks the tool for an action without mutating anything.
//
// A provided toolKey always wins and is returned even if it does not qualify
// so the validator can report the precise reason. Otherwise, for required
// tools, the equipped weapon is preferred when it qualifies, then the highest
// tier qualifying inventory item. Returns nil when no tool is used.
func ResolveTool(snapshot *domain.PlayerSnapshot, req *domain.ToolRequirement, toolKey string) *ToolSelection {
	if !NeedsTool(req) {
		return nil
	}

	if toolKey != "" {
		entry := snapshot.FindEntryByKey(toolKey)
		if entry == nil || entry.Quantity <= 0 {
			return nil
		}
		return &ToolSelection{Entry: entry, Item: entry.Item, Source: domain.ToolSourceProvided}
	}

	if !req.Required {
		return nil
	}

	if equipped := snapshot.EquippedEntry(snapshot.Equipment.WeaponItemID); equipped != nil {
		if Qualifies(equipped.Item, req) == nil {
			return &ToolSelection{Entry: equipped, Item: equipped.Item, Source: domain.ToolSourceEquipped}
		}
	}

	var best *domain.InventoryEntry
	for i := range snapshot.Inventory {
		entry := &snapshot.Inventory[i]
		if entry.Item == nil || entry.Quantity <= 0 {
			continue
		}
		if Qualifies(entry.Item, req) != nil {
			continue
		}
		if best == nil || entry.Item.ToolTier() > best.Item.ToolTier() {
			best = entry
		}
	}
	if best == nil {
		return nil
	}
	return &ToolSelection{Entry: best, Item: best.Item, Source: domain.ToolSourceAuto}
}
