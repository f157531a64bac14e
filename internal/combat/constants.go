package combat

// Exchange tuning
const (
	DefaultMaxRounds      = 12
	VarianceMin           = 0.8
	VarianceSpread        = 0.4
	MitigationPerDefense  = 0.05
	MaxMitigation         = 0.6
	DefaultCritMultiplier = 1.5
)

// Win streak damage bonus: +1% per 3 wins, capped at 30%
const (
	StreakStep     = 3
	StreakBonus    = 0.01
	StreakBonusCap = 0.30
)

// Death penalty defaults
const (
	PenaltyBasePercent    = 0.05
	PenaltyPerLevel       = 0.005
	PenaltyLevelBoostCap  = 0.10
	PenaltyPerRisk        = 0.02
	PenaltyMaxRisk        = 3.0
	PenaltyPercentCap     = 0.25
	PenaltyMinCoins       = 1
	PenaltyMaxCoins       = 5000
	RegenRatioAfterDefeat = 0.5
)
