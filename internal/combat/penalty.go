package combat

import (
	"math"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/utils"
)

// PenaltyPercent returns the share of coins a defeat costs. An area may pin
// the percentage; otherwise it grows with level and risk factor.
func PenaltyPercent(area *domain.GameArea, level int) float64 {
	if p := area.Config.DeathPenaltyPercent; p != nil {
		return math.Max(0, math.Min(1, *p))
	}

	risk := math.Max(0, math.Min(PenaltyMaxRisk, area.Config.RiskFactor))
	levelBoost := math.Max(0, math.Min(PenaltyLevelBoostCap, float64(level-1)*PenaltyPerLevel))

	return utils.MinFloat(PenaltyPercentCap, PenaltyBasePercent+levelBoost+risk*PenaltyPerRisk)
}

// CoinsLost applies pct to the balance: at least one coin when the player has
// any, at most PenaltyMaxCoins, never more than the balance
func CoinsLost(coins int64, pct float64) int64 {
	if coins <= 0 || pct <= 0 {
		return 0
	}
	lost := int64(math.Floor(float64(coins) * pct))
	lost = max(lost, PenaltyMinCoins)
	lost = min(lost, PenaltyMaxCoins)
	return min(lost, coins)
}

// RegenHP is the HP a defeated player comes back with
func RegenHP(maxHP int) int {
	return max(1, int(math.Floor(float64(maxHP)*RegenRatioAfterDefeat)))
}

// ApplyToStats folds a combat result into the player's counters. A win
// extends the streak; a defeat resets it.
func ApplyToStats(stats domain.PlayerStats, res Result) domain.PlayerStats {
	s := res.Summary
	stats.MobsDefeated += s.MobsDefeated
	stats.DamageDealt += s.TotalDamageDealt
	stats.DamageTaken += s.TotalDamageTaken

	switch {
	case res.PlayerDefeated:
		stats.TimesDefeated++
		stats.CurrentWinStreak = 0
	case s.Outcome == domain.OutcomeWin:
		stats.CurrentWinStreak++
		stats.LongestWinStreak = max(stats.LongestWinStreak, stats.CurrentWinStreak)
	}
	return stats
}
