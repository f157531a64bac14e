package equipment

import (
	"fmt"
	"log/slog"

	"github.com/osse101/ActionEngine_Go/internal/domain"
)

// DurabilityResult describes one durability application
type DurabilityResult struct {
	Applied            bool
	Delta              int
	Remaining          *int
	Max                *int
	BrokenInstance     bool
	Exhausted          bool
	InstancesRemaining int
}

// ApplyDurability consumes one use of the tool held in entry, mutating it in
// place. Non-stackable entries must satisfy quantity == len(instances) before
// and after; a violation is reported as domain.ErrIntegrity and entry is left
// untouched.
func ApplyDurability(entry *domain.InventoryEntry) (DurabilityResult, error) {
	item := entry.Item
	if item == nil {
		return DurabilityResult{}, fmt.Errorf(ErrMsgEntryWithoutItem, entry.ItemID)
	}
	if !item.IsBreakable() {
		return DurabilityResult{InstancesRemaining: entry.Quantity}, nil
	}

	b := item.Props.Breakable
	if b.MaxDurability <= 0 {
		return DurabilityResult{}, fmt.Errorf(ErrMsgBadMaxDurability, domain.ErrInvalidContent, item.Key, b.MaxDurability)
	}
	perUse := effectivePerUse(b, item.Key)

	if item.Stackable {
		return consumeStackUnit(entry)
	}

	if err := entry.CheckInvariant(); err != nil {
		return DurabilityResult{}, err
	}
	if entry.Quantity <= 0 {
		return DurabilityResult{}, fmt.Errorf(ErrMsgNoInstanceToDegrade, domain.ErrIntegrity, item.Key, entry.Quantity)
	}

	maxDur := b.MaxDurability
	inst := &entry.State.Instances[0]
	current := maxDur
	if inst.Durability != nil {
		current = clamp(*inst.Durability, 0, maxDur)
	}
	next := current - perUse
	if next < 0 {
		next = 0
	}

	res := DurabilityResult{
		Applied:   true,
		Delta:     current - next,
		Remaining: &next,
		Max:       &maxDur,
	}

	if next == 0 {
		entry.State.Instances = entry.State.Instances[1:]
		entry.Quantity = len(entry.State.Instances)
		res.BrokenInstance = true
		res.Exhausted = entry.Quantity == 0
	} else {
		inst.Durability = &next
	}
	res.InstancesRemaining = entry.Quantity

	if err := entry.CheckInvariant(); err != nil {
		return DurabilityResult{}, err
	}
	return res, nil
}

func consumeStackUnit(entry *domain.InventoryEntry) (DurabilityResult, error) {
	if entry.Quantity <= 0 {
		return DurabilityResult{}, fmt.Errorf(ErrMsgNoUnitToConsume, domain.ErrIntegrity, entry.Item.Key)
	}
	entry.Quantity--
	return DurabilityResult{
		Applied:            true,
		BrokenInstance:     true,
		Exhausted:          entry.Quantity == 0,
		InstancesRemaining: entry.Quantity,
	}, nil
}

// effectivePerUse treats a per-use cost above the maximum as misconfigured
func effectivePerUse(b *domain.Breakable, key string) int {
	perUse := b.DurabilityPerUse
	if perUse <= 0 {
		return 1
	}
	if perUse > b.MaxDurability {
		slog.Default().Warn(LogMsgMisconfiguredPerUse, "item", key, "per_use", perUse, "max", b.MaxDurability)
		return 1
	}
	return perUse
}

// AddUnits credits qty copies of the entry's item, creating fresh instances
// for non-stackable items so the invariant keeps holding
func AddUnits(entry *domain.InventoryEntry, qty int) error {
	item := entry.Item
	if item == nil {
		return fmt.Errorf(ErrMsgEntryWithoutItem, entry.ItemID)
	}
	if qty < 0 {
		return fmt.Errorf(ErrMsgNegativeCredit, domain.ErrInvalidInput, qty, item.Key)
	}
	if item.Stackable {
		entry.Quantity += qty
		return nil
	}

	if err := entry.CheckInvariant(); err != nil {
		return err
	}
	for i := 0; i < qty; i++ {
		entry.State.Instances = append(entry.State.Instances, NewInstance(item))
	}
	entry.Quantity = len(entry.State.Instances)
	return nil
}

// NewInstance returns a fresh instance at full durability for breakable items
func NewInstance(item *domain.ItemDefinition) domain.ItemInstance {
	if !item.IsBreakable() || item.Props.Breakable.MaxDurability <= 0 {
		return domain.ItemInstance{}
	}
	d := item.Props.Breakable.MaxDurability
	return domain.ItemInstance{Durability: &d}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
