// Package combat resolves the exchange between a player and the mobs drawn
// for an action. Resolution is a single synchronous computation; nothing is
// persisted here.
package combat

import (
	"math/rand"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/equipment"
	"github.com/osse101/ActionEngine_Go/internal/statuseffect"
	"github.com/osse101/ActionEngine_Go/internal/utils"
)

// Opponent is a drawn mob with its stats already scaled to the level
type Opponent struct {
	Definition *domain.MobDefinition
	Stats      domain.MobStats
}

// Input is the state a combat starts from
type Input struct {
	Gear           equipment.Stats
	HP             int
	WinStreak      int
	Modifiers      statuseffect.Modifiers
	RequiresWeapon bool
	Opponents      []Opponent
}

// Result is the outcome of Resolve. EndHP is the HP the exchange left the
// player with; regeneration after a defeat is applied by the caller.
type Result struct {
	Summary        domain.CombatSummary
	Defeated       []*domain.MobDefinition
	EndHP          int
	PlayerDefeated bool
}

// Resolve runs the exchange for every opponent in order, stopping once the
// player's HP reaches zero. rng must not be shared across goroutines.
func Resolve(rng *rand.Rand, in Input) Result {
	maxHP := in.Gear.MaxHP
	hp := utils.ClampInt(in.HP, 1, max(1, maxHP))

	res := Result{
		Summary: domain.CombatSummary{PlayerStartHP: hp},
		EndHP:   hp,
	}

	if in.RequiresWeapon && !in.Gear.HasWeapon() {
		res.Summary.Outcome = domain.OutcomeAutoDefeatNoWeapon
		res.Summary.PlayerEndHP = 0
		res.EndHP = 0
		res.PlayerDefeated = true
		for _, op := range in.Opponents {
			res.Summary.Mobs = append(res.Summary.Mobs, domain.MobLog{MobKey: op.Definition.Key, MaxHP: op.Stats.HP})
		}
		return res
	}

	damage := EffectiveDamage(in.Gear, in.WinStreak, in.Modifiers)
	defense := EffectiveDefense(in.Gear, in.Modifiers)

	for _, op := range in.Opponents {
		if hp <= 0 {
			break
		}
		log, taken := exchange(rng, op, damage, defense, hp)
		hp -= taken

		res.Summary.Mobs = append(res.Summary.Mobs, log)
		res.Summary.TotalDamageDealt += log.DamageDealt
		res.Summary.TotalDamageTaken += log.DamageTaken
		if log.Defeated {
			res.Summary.MobsDefeated++
			res.Defeated = append(res.Defeated, op.Definition)
		}
	}

	res.EndHP = hp
	res.Summary.PlayerEndHP = hp
	res.PlayerDefeated = hp <= 0
	res.Summary.Outcome = outcome(res.Summary.MobsDefeated, len(in.Opponents), hp)
	return res
}

func outcome(defeated, drawn, hp int) domain.CombatOutcome {
	switch {
	case hp > 0 && defeated == drawn:
		return domain.OutcomeWin
	case hp <= 0 && defeated == 0:
		return domain.OutcomeLose
	default:
		return domain.OutcomePartial
	}
}

// exchange fights one mob and returns its log plus the HP the player lost
func exchange(rng *rand.Rand, op Opponent, damage, defense, hp int) (domain.MobLog, int) {
	log := domain.MobLog{MobKey: op.Definition.Key, MaxHP: op.Stats.HP}
	behavior := op.Definition.Behavior

	maxRounds := behavior.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	critMult := behavior.CritMultiplier
	if critMult <= 0 {
		critMult = DefaultCritMultiplier
	}
	mitigation := utils.MinFloat(MaxMitigation, float64(defense)*MitigationPerDefense)

	mobHP := op.Stats.HP
	taken := 0
	for round := 1; round <= maxRounds && mobHP > 0 && hp-taken > 0; round++ {
		log.Rounds = round

		hit := max(1, utils.RoundToInt(float64(damage)*variance(rng)-op.Stats.Defense))
		mobHP -= hit
		log.DamageDealt += hit
		if mobHP <= 0 {
			break
		}

		atk := op.Stats.Attack * variance(rng)
		if behavior.CritChance > 0 && rng.Float64() < behavior.CritChance {
			atk *= critMult
		}
		got := max(0, utils.RoundToInt(atk*(1-mitigation)))
		got = min(got, hp-taken)
		taken += got
		log.DamageTaken += got
	}

	log.Defeated = mobHP <= 0
	return log, taken
}

func variance(rng *rand.Rand) float64 {
	return VarianceMin + rng.Float64()*VarianceSpread
}

// StreakMultiplier is 1 + 1% per three consecutive wins, capped at +30%
func StreakMultiplier(streak int) float64 {
	if streak <= 0 {
		return 1
	}
	return 1 + utils.MinFloat(StreakBonusCap, float64(streak/StreakStep)*StreakBonus)
}

// EffectiveDamage applies the streak bonus and status multipliers to the gear
// damage. A player without a weapon fights unarmed.
func EffectiveDamage(gear equipment.Stats, streak int, mods statuseffect.Modifiers) int {
	base := gear.Damage
	if !gear.HasWeapon() {
		base = domain.UnarmedDamage
	}
	return max(1, utils.RoundToInt(float64(base)*StreakMultiplier(streak)*mods.Damage))
}

// EffectiveDefense applies status multipliers to the gear defense
func EffectiveDefense(gear equipment.Stats, mods statuseffect.Modifiers) int {
	return max(0, utils.RoundToInt(float64(gear.Defense)*mods.Defense))
}
