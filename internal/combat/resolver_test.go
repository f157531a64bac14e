package combat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/equipment"
	"github.com/osse101/ActionEngine_Go/internal/statuseffect"
)

func opponent(key string, hp int, attack, defense float64) Opponent {
	return Opponent{
		Definition: &domain.MobDefinition{Key: key, Base: domain.MobBaseStats{HP: hp, Attack: attack, Defense: defense}},
		Stats:      domain.MobStats{HP: hp, Attack: attack, Defense: defense},
	}
}

func armed(damage int) equipment.Stats {
	return equipment.Stats{Damage: damage, MaxHP: 100, WeaponKey: "sword.test"}
}

func TestResolve_Win(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	res := Resolve(rng, Input{
		Gear:      armed(5),
		HP:        100,
		Modifiers: statuseffect.Neutral(),
		Opponents: []Opponent{opponent("slime", 1, 0, 0), opponent("slime", 1, 0, 0)},
	})

	assert.Equal(t, domain.OutcomeWin, res.Summary.Outcome)
	assert.Equal(t, 2, res.Summary.MobsDefeated)
	assert.Len(t, res.Defeated, 2)
	assert.Equal(t, 0, res.Summary.TotalDamageTaken)
	assert.Equal(t, 100, res.EndHP)
	assert.False(t, res.PlayerDefeated)
	for _, m := range res.Summary.Mobs {
		assert.True(t, m.Defeated)
		assert.Equal(t, 1, m.Rounds)
	}
}

func TestResolve_Lose(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	res := Resolve(rng, Input{
		Gear:      armed(1),
		HP:        10,
		Modifiers: statuseffect.Neutral(),
		Opponents: []Opponent{opponent("dragon", 10000, 1000, 0), opponent("dragon", 10000, 1000, 0)},
	})

	assert.Equal(t, domain.OutcomeLose, res.Summary.Outcome)
	assert.True(t, res.PlayerDefeated)
	assert.Equal(t, 0, res.EndHP)
	assert.Equal(t, 10, res.Summary.TotalDamageTaken, "damage taken never exceeds remaining HP")
	assert.Len(t, res.Summary.Mobs, 1, "no further mobs after the player falls")
}

func TestResolve_PartialWhenFallingAfterAKill(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	res := Resolve(rng, Input{
		Gear:      armed(3),
		HP:        20,
		Modifiers: statuseffect.Neutral(),
		Opponents: []Opponent{opponent("slime", 1, 0, 0), opponent("dragon", 10000, 1000, 0)},
	})

	assert.Equal(t, domain.OutcomePartial, res.Summary.Outcome)
	assert.True(t, res.PlayerDefeated)
	assert.Equal(t, 1, res.Summary.MobsDefeated)
}

func TestResolve_PartialWhenRoundsRunOut(t *testing.T) {
	wall := opponent("wall", 10000, 0, 0)
	wall.Definition.Behavior.MaxRounds = 2

	rng := rand.New(rand.NewSource(4))
	res := Resolve(rng, Input{Gear: armed(2), HP: 50, Modifiers: statuseffect.Neutral(), Opponents: []Opponent{wall}})

	assert.Equal(t, domain.OutcomePartial, res.Summary.Outcome)
	assert.False(t, res.PlayerDefeated)
	assert.Equal(t, 50, res.EndHP)
	assert.Equal(t, 2, res.Summary.Mobs[0].Rounds)
}

func TestResolve_AutoDefeatWithoutWeapon(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	res := Resolve(rng, Input{
		Gear:           equipment.Stats{MaxHP: 100},
		HP:             80,
		Modifiers:      statuseffect.Neutral(),
		RequiresWeapon: true,
		Opponents:      []Opponent{opponent("slime", 18, 4, 0)},
	})

	assert.Equal(t, domain.OutcomeAutoDefeatNoWeapon, res.Summary.Outcome)
	assert.True(t, res.PlayerDefeated)
	assert.Equal(t, 0, res.Summary.TotalDamageDealt)
	assert.Equal(t, 80, res.Summary.PlayerStartHP)
	require.Len(t, res.Summary.Mobs, 1)
	assert.False(t, res.Summary.Mobs[0].Defeated)
}

func TestResolve_UnarmedWhenWeaponNotRequired(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	res := Resolve(rng, Input{
		Gear:      equipment.Stats{MaxHP: 100},
		HP:        100,
		Modifiers: statuseffect.Neutral(),
		Opponents: []Opponent{opponent("slime", 1, 0, 0)},
	})

	assert.Equal(t, domain.OutcomeWin, res.Summary.Outcome)
	assert.Equal(t, 1, res.Summary.TotalDamageDealt)
}

func TestResolve_StartHPClampedToMax(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	res := Resolve(rng, Input{Gear: armed(5), HP: 500, Modifiers: statuseffect.Neutral(), Opponents: []Opponent{opponent("slime", 1, 0, 0)}})

	assert.Equal(t, 100, res.Summary.PlayerStartHP)
}

func TestResolve_Deterministic(t *testing.T) {
	in := Input{
		Gear:      armed(4),
		HP:        60,
		WinStreak: 4,
		Modifiers: statuseffect.Neutral(),
		Opponents: []Opponent{opponent("slime", 18, 4, 0), opponent("skeleton", 30, 6, 1)},
	}

	a := Resolve(rand.New(rand.NewSource(42)), in)
	b := Resolve(rand.New(rand.NewSource(42)), in)
	assert.Equal(t, a.Summary, b.Summary)
}

func TestResolve_PropertyHPNeverNegative(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		in := Input{
			Gear:      equipment.Stats{Damage: 1 + rng.Intn(10), Defense: rng.Intn(15), MaxHP: 20 + rng.Intn(80), WeaponKey: "w"},
			HP:        1 + rng.Intn(100),
			WinStreak: rng.Intn(40),
			Modifiers: statuseffect.Neutral(),
		}
		for n := rng.Intn(4); n > 0; n-- {
			in.Opponents = append(in.Opponents, opponent("m", 1+rng.Intn(40), rng.Float64()*12, rng.Float64()*3))
		}

		res := Resolve(rng, in)
		s := res.Summary

		assert.GreaterOrEqual(t, res.EndHP, 0, "seed %d", seed)
		assert.Equal(t, s.PlayerStartHP-s.TotalDamageTaken, res.EndHP, "seed %d", seed)
		assert.LessOrEqual(t, s.MobsDefeated, len(in.Opponents))
		assert.Equal(t, len(res.Defeated), s.MobsDefeated)

		dealt, taken := 0, 0
		for _, m := range s.Mobs {
			dealt += m.DamageDealt
			taken += m.DamageTaken
			assert.LessOrEqual(t, m.Rounds, DefaultMaxRounds)
		}
		assert.Equal(t, s.TotalDamageDealt, dealt)
		assert.Equal(t, s.TotalDamageTaken, taken)
	}
}

func TestStreakMultiplier(t *testing.T) {
	tests := []struct {
		streak int
		want   float64
	}{
		{0, 1},
		{2, 1},
		{3, 1.01},
		{9, 1.03},
		{89, 1.29},
		{90, 1.30},
		{500, 1.30},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, StreakMultiplier(tt.streak), 1e-9, "streak %d", tt.streak)
	}
}

func TestEffectiveDamage(t *testing.T) {
	fatigued := statuseffect.Modifiers{Damage: 0.8, Defense: 0.5, Coin: 0.8}

	assert.Equal(t, 10, EffectiveDamage(armed(10), 0, statuseffect.Neutral()))
	assert.Equal(t, 10, EffectiveDamage(armed(10), 9, statuseffect.Neutral()))
	assert.Equal(t, 13, EffectiveDamage(armed(10), 90, statuseffect.Neutral()))
	assert.Equal(t, 8, EffectiveDamage(armed(10), 0, fatigued))
	assert.Equal(t, 1, EffectiveDamage(equipment.Stats{}, 0, statuseffect.Neutral()))

	assert.Equal(t, 5, EffectiveDefense(equipment.Stats{Defense: 10}, fatigued))
	assert.Equal(t, 0, EffectiveDefense(equipment.Stats{}, fatigued))
}
