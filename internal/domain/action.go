package domain

import "time"

// CombatOutcome is the terminal state of a combat resolution
type CombatOutcome string

const (
	OutcomeWin                CombatOutcome = "win"
	OutcomePartial            CombatOutcome = "partial"
	OutcomeLose               CombatOutcome = "lose"
	OutcomeAutoDefeatNoWeapon CombatOutcome = "auto-defeat-no-weapon"
)

// ToolSource records how the tool used for an action was chosen
type ToolSource string

const (
	ToolSourceProvided ToolSource = "provided"
	ToolSourceEquipped ToolSource = "equipped"
	ToolSourceAuto     ToolSource = "auto"
)

// Reward is one granted reward, flattened for the presentation layer
type Reward struct {
	Type    RewardKind `json:"type"`
	Amount  int64      `json:"amount,omitempty"`
	ItemKey string     `json:"item_key,omitempty"`
	Qty     int        `json:"qty,omitempty"`
}

// ActionResult is returned to the caller after a committed action
type ActionResult struct {
	RunID           string           `json:"run_id"`
	AreaKey         string           `json:"area_key"`
	Level           int              `json:"level"`
	Rewards         []Reward         `json:"rewards"`
	Mobs            []string         `json:"mobs"`
	Combat          *CombatSummary   `json:"combat,omitempty"`
	Tool            *ToolUsage       `json:"tool,omitempty"`
	RewardModifiers *RewardModifiers `json:"reward_modifiers,omitempty"`
	Penalty         *DeathPenalty    `json:"penalty,omitempty"`
	CooldownUntil   time.Time        `json:"cooldown_until"`
	ResolvedAt      time.Time        `json:"resolved_at"`
}

// Err returns ErrAutoDefeatNoWeapon when the committed result was an
// auto-defeat, nil otherwise
func (r *ActionResult) Err() error {
	if r.Combat != nil && r.Combat.Outcome == OutcomeAutoDefeatNoWeapon {
		return ErrAutoDefeatNoWeapon
	}
	return nil
}

// CoinsAwarded sums the coin rewards
func (r *ActionResult) CoinsAwarded() int64 {
	var total int64
	for _, rw := range r.Rewards {
		if rw.Type == RewardKindCoins {
			total += rw.Amount
		}
	}
	return total
}

// CombatSummary describes the exchange with drawn mobs
type CombatSummary struct {
	MobsDefeated     int           `json:"mobs_defeated"`
	TotalDamageDealt int           `json:"total_damage_dealt"`
	TotalDamageTaken int           `json:"total_damage_taken"`
	PlayerStartHP    int           `json:"player_start_hp"`
	PlayerEndHP      int           `json:"player_end_hp"`
	Outcome          CombatOutcome `json:"outcome"`
	Mobs             []MobLog      `json:"mobs,omitempty"`
}

// MobLog is the per-mob breakdown of a combat
type MobLog struct {
	MobKey      string `json:"mob_key"`
	MaxHP       int    `json:"max_hp"`
	Defeated    bool   `json:"defeated"`
	DamageDealt int    `json:"damage_dealt"`
	DamageTaken int    `json:"damage_taken"`
	Rounds      int    `json:"rounds"`
}

// ToolUsage reports what happened to the tool used for the action
type ToolUsage struct {
	Key                string     `json:"key"`
	InstancesRemaining int        `json:"instances_remaining"`
	Broken             bool       `json:"broken"`
	BrokenInstance     bool       `json:"broken_instance"`
	DurabilityDelta    int        `json:"durability_delta"`
	Remaining          *int       `json:"remaining,omitempty"`
	Max                *int       `json:"max,omitempty"`
	Source             ToolSource `json:"source"`
}

// RewardModifiers exposes how coin rewards were scaled
type RewardModifiers struct {
	BaseCoinsAwarded      int64   `json:"base_coins_awarded"`
	CoinsAfterPenalty     int64   `json:"coins_after_penalty"`
	FatigueCoinMultiplier float64 `json:"fatigue_coin_multiplier"`
	MobCoinMultiplier     float64 `json:"mob_coin_multiplier"`
}

// DeathPenalty is what a defeat cost the player
type DeathPenalty struct {
	CoinsLost          int64   `json:"coins_lost"`
	PercentApplied     float64 `json:"percent_applied"`
	AutoDefeatNoWeapon bool    `json:"auto_defeat_no_weapon"`
	FatigueMagnitude   float64 `json:"fatigue_magnitude"`
	FatigueMinutes     int     `json:"fatigue_minutes"`
}
