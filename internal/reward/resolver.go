// Package reward rolls a level's reward table and scales coin rewards by
// status and mob modifiers.
package reward

import (
	"math/rand"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/statuseffect"
	"github.com/osse101/ActionEngine_Go/internal/utils"
	"github.com/osse101/ActionEngine_Go/internal/weighted"
)

// Input is what the resolver needs to roll a level's rewards
type Input struct {
	Table     domain.RewardTable
	Modifiers statuseffect.Modifiers
	Defeated  []*domain.MobDefinition
}

// Result is the flat reward list plus the coin figures behind it.
// Modifiers is nil when no coins were drawn.
type Result struct {
	Rewards    []domain.Reward
	Modifiers  *domain.RewardModifiers
	ExtraDrops int
}

// MobCoinMultiplier multiplies the coin multipliers of every defeated mob
func MobCoinMultiplier(defeated []*domain.MobDefinition) float64 {
	mult := 1.0
	for _, def := range defeated {
		mult *= def.RewardMods.CoinMultiplierOrDefault()
	}
	return mult
}

// ScaleCoins floors base*mult but never lets a positive reward round down to
// nothing while the multiplier is positive
func ScaleCoins(base int64, mult float64) int64 {
	if base <= 0 || mult <= 0 {
		return 0
	}
	return max(1, utils.FloorCoins(float64(base)*mult))
}

// Resolve draws the table, then one extra draw for every defeated mob whose
// extraDropChance roll succeeds. Item rewards are never scaled.
func Resolve(rng *rand.Rand, in Input) Result {
	table := toWeighted(in.Table)
	picks := weighted.Roll(rng, table)

	var res Result
	for _, def := range in.Defeated {
		chance := def.RewardMods.ExtraDropChance
		if chance <= 0 || rng.Float64() >= chance {
			continue
		}
		if extra, ok := weighted.Pick(rng, table.Entries); ok {
			picks = append(picks, extra)
			res.ExtraDrops++
		}
	}

	fatigueMult := in.Modifiers.Coin
	mobMult := MobCoinMultiplier(in.Defeated)

	var base, scaled int64
	coinsDrawn := false
	for _, p := range picks {
		switch {
		case p.Coins != nil:
			coinsDrawn = true
			amount := ScaleCoins(p.Coins.Amount, fatigueMult*mobMult)
			base += max(0, p.Coins.Amount)
			scaled += amount
			if amount > 0 {
				res.Rewards = append(res.Rewards, domain.Reward{Type: domain.RewardKindCoins, Amount: amount})
			}
		case p.Item != nil:
			res.Rewards = append(res.Rewards, domain.Reward{Type: domain.RewardKindItem, ItemKey: p.Item.ItemKey, Qty: max(1, p.Item.Qty)})
		}
	}

	if coinsDrawn {
		res.Modifiers = &domain.RewardModifiers{
			BaseCoinsAwarded:      base,
			CoinsAfterPenalty:     scaled,
			FatigueCoinMultiplier: fatigueMult,
			MobCoinMultiplier:     mobMult,
		}
	}
	return res
}

// ItemTotals sums item rewards per key, preserving first-seen order
func ItemTotals(rewards []domain.Reward) ([]string, map[string]int) {
	var order []string
	totals := make(map[string]int)
	for _, r := range rewards {
		if r.Type != domain.RewardKindItem {
			continue
		}
		if _, seen := totals[r.ItemKey]; !seen {
			order = append(order, r.ItemKey)
		}
		totals[r.ItemKey] += r.Qty
	}
	return order, totals
}

func toWeighted(t domain.RewardTable) weighted.Table[domain.RewardEntry] {
	entries := make([]weighted.Entry[domain.RewardEntry], 0, len(t.Table))
	for _, e := range t.Table {
		entries = append(entries, weighted.Entry[domain.RewardEntry]{Weight: e.Weight, Payload: e})
	}
	return weighted.Table[domain.RewardEntry]{Draws: t.DrawCount(), Entries: entries}
}
