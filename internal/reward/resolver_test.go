package reward

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/statuseffect"
)

func draws(n int) *int { return &n }

func coins(amount int64, weight float64) domain.RewardEntry {
	return domain.RewardEntry{Weight: weight, Coins: &domain.CoinReward{Amount: amount}}
}

func item(key string, qty int, weight float64) domain.RewardEntry {
	return domain.RewardEntry{Weight: weight, Item: &domain.ItemReward{ItemKey: key, Qty: qty}}
}

func mob(key string, coinMult *float64, extraDrop float64) *domain.MobDefinition {
	return &domain.MobDefinition{Key: key, RewardMods: domain.MobRewardMods{CoinMultiplier: coinMult, ExtraDropChance: extraDrop}}
}

func f(v float64) *float64 { return &v }

func TestResolve_FatigueScalesCoins(t *testing.T) {
	table := domain.RewardTable{Table: []domain.RewardEntry{coins(100, 1)}}
	fatigued := statuseffect.ComputeModifiers([]domain.StatusEffect{{Type: domain.StatusEffectFatigue, Magnitude: 0.2}}, testNow)

	res := Resolve(rand.New(rand.NewSource(1)), Input{Table: table, Modifiers: fatigued})

	require.Len(t, res.Rewards, 1)
	assert.Equal(t, int64(80), res.Rewards[0].Amount)
	require.NotNil(t, res.Modifiers)
	assert.Equal(t, int64(100), res.Modifiers.BaseCoinsAwarded)
	assert.Equal(t, int64(80), res.Modifiers.CoinsAfterPenalty)
	assert.InDelta(t, 0.8, res.Modifiers.FatigueCoinMultiplier, 1e-9)
	assert.InDelta(t, 1.0, res.Modifiers.MobCoinMultiplier, 1e-9)
}

func TestResolve_ItemsAreNotScaled(t *testing.T) {
	table := domain.RewardTable{Draws: draws(3), Table: []domain.RewardEntry{item("ore.copper", 2, 1)}}
	mods := statuseffect.Modifiers{Damage: 0.1, Defense: 0.1, Coin: 0.1}

	res := Resolve(rand.New(rand.NewSource(2)), Input{Table: table, Modifiers: mods})

	require.Len(t, res.Rewards, 3)
	for _, r := range res.Rewards {
		assert.Equal(t, domain.RewardKindItem, r.Type)
		assert.Equal(t, 2, r.Qty)
	}
	assert.Nil(t, res.Modifiers)
}

func TestResolve_MobMultipliersCompose(t *testing.T) {
	table := domain.RewardTable{Table: []domain.RewardEntry{coins(100, 1)}}
	defeated := []*domain.MobDefinition{mob("slime", f(0.9), 0), mob("skeleton", f(1.1), 0), mob("bat", nil, 0)}

	res := Resolve(rand.New(rand.NewSource(3)), Input{Table: table, Modifiers: statuseffect.Neutral(), Defeated: defeated})

	require.NotNil(t, res.Modifiers)
	assert.InDelta(t, 0.99, res.Modifiers.MobCoinMultiplier, 1e-9)
	assert.Equal(t, int64(99), res.Modifiers.CoinsAfterPenalty)
}

func TestResolve_ExtraDrops(t *testing.T) {
	table := domain.RewardTable{Table: []domain.RewardEntry{item("bone", 1, 1)}}
	defeated := []*domain.MobDefinition{mob("skeleton", nil, 1), mob("skeleton", nil, 1), mob("slime", nil, 0)}

	res := Resolve(rand.New(rand.NewSource(4)), Input{Table: table, Modifiers: statuseffect.Neutral(), Defeated: defeated})

	assert.Equal(t, 2, res.ExtraDrops)
	assert.Len(t, res.Rewards, 3)
}

func TestResolve_EmptyTable(t *testing.T) {
	res := Resolve(rand.New(rand.NewSource(5)), Input{Modifiers: statuseffect.Neutral()})
	assert.Empty(t, res.Rewards)
	assert.Nil(t, res.Modifiers)

	res = Resolve(rand.New(rand.NewSource(5)), Input{Table: domain.RewardTable{Draws: draws(0), Table: []domain.RewardEntry{coins(5, 1)}}, Modifiers: statuseffect.Neutral()})
	assert.Empty(t, res.Rewards)
}

func TestScaleCoins(t *testing.T) {
	tests := []struct {
		base int64
		mult float64
		want int64
	}{
		{100, 0.8, 80},
		{100, 1, 100},
		{1, 0.1, 1},
		{3, 0.3, 1},
		{10, 0.85, 8},
		{0, 0.5, 0},
		{50, 0, 0},
		{-5, 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScaleCoins(tt.base, tt.mult), "base=%d mult=%v", tt.base, tt.mult)
	}
}

func TestItemTotals(t *testing.T) {
	order, totals := ItemTotals([]domain.Reward{
		{Type: domain.RewardKindItem, ItemKey: "ore.iron", Qty: 1},
		{Type: domain.RewardKindCoins, Amount: 10},
		{Type: domain.RewardKindItem, ItemKey: "ore.copper", Qty: 2},
		{Type: domain.RewardKindItem, ItemKey: "ore.iron", Qty: 3},
	})

	assert.Equal(t, []string{"ore.iron", "ore.copper"}, order)
	assert.Equal(t, map[string]int{"ore.iron": 4, "ore.copper": 2}, totals)
}
