package domain

// MobDefinition describes a mob. Built-in defaults may be overridden per guild.
type MobDefinition struct {
	Key        string        `json:"key" yaml:"key" validate:"required"`
	Name       string        `json:"name" yaml:"name"`
	Tier       int           `json:"tier" yaml:"tier" validate:"gte=0"`
	Base       MobBaseStats  `json:"base" yaml:"base"`
	Scaling    MobScaling    `json:"scaling,omitempty" yaml:"scaling"`
	Tags       []string      `json:"tags,omitempty" yaml:"tags"`
	RewardMods MobRewardMods `json:"rewardMods,omitempty" yaml:"rewardMods"`
	Behavior   MobBehavior   `json:"behavior,omitempty" yaml:"behavior"`
}

// MobBaseStats are level-one stats
type MobBaseStats struct {
	HP      int     `json:"hp" yaml:"hp" validate:"gt=0"`
	Attack  float64 `json:"attack" yaml:"attack" validate:"gte=0"`
	Defense float64 `json:"defense,omitempty" yaml:"defense" validate:"gte=0"`
}

// MobScaling adds per-level increments on top of the base stats
type MobScaling struct {
	HPPerLevel      float64 `json:"hpPerLevel,omitempty" yaml:"hpPerLevel" validate:"gte=0"`
	AttackPerLevel  float64 `json:"attackPerLevel,omitempty" yaml:"attackPerLevel" validate:"gte=0"`
	DefensePerLevel float64 `json:"defensePerLevel,omitempty" yaml:"defensePerLevel" validate:"gte=0"`
}

// MobRewardMods adjust rewards when the mob is defeated
type MobRewardMods struct {
	CoinMultiplier  *float64 `json:"coinMultiplier,omitempty" yaml:"coinMultiplier" validate:"omitempty,gte=0"`
	ExtraDropChance float64  `json:"extraDropChance,omitempty" yaml:"extraDropChance" validate:"gte=0,lte=1"`
}

// CoinMultiplierOrDefault returns the coin multiplier, 1.0 when unset
func (m MobRewardMods) CoinMultiplierOrDefault() float64 {
	if m.CoinMultiplier == nil {
		return 1.0
	}
	return *m.CoinMultiplier
}

// MobBehavior tunes the exchange loop
type MobBehavior struct {
	MaxRounds      int     `json:"maxRounds,omitempty" yaml:"maxRounds" validate:"gte=0"`
	CritChance     float64 `json:"critChance,omitempty" yaml:"critChance" validate:"gte=0,lte=1"`
	CritMultiplier float64 `json:"critMultiplier,omitempty" yaml:"critMultiplier" validate:"gte=0"`
}

// MobStats are the stats of a mob scaled to an area level
type MobStats struct {
	HP      int     `json:"hp"`
	Attack  float64 `json:"attack"`
	Defense float64 `json:"defense"`
}

// MobOverrideRecord is a stored mob override before validation
type MobOverrideRecord struct {
	GuildID    *string
	Key        string
	Definition []byte
}
