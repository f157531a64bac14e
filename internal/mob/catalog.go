package mob

import (
	_ "embed"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/osse101/ActionEngine_Go/internal/domain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var validate = validator.New()

type catalogFile struct {
	Mobs []domain.MobDefinition `yaml:"mobs"`
}

// LoadDefaults decodes and validates the built-in mob set
func LoadDefaults() (map[string]domain.MobDefinition, error) {
	return parseCatalog(defaultsYAML)
}

func parseCatalog(raw []byte) (map[string]domain.MobDefinition, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf(ErrMsgDecodeDefaultsFailed, err)
	}

	out := make(map[string]domain.MobDefinition, len(file.Mobs))
	for _, def := range file.Mobs {
		normalize(&def)
		if err := Validate(&def); err != nil {
			return nil, fmt.Errorf(ErrMsgInvalidDefault, def.Key, err)
		}
		out[def.Key] = def
	}
	return out, nil
}

// Validate checks a definition's struct tags
func Validate(def *domain.MobDefinition) error {
	if err := validate.Struct(def); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidContent, err)
	}
	return nil
}

// DisplayName title-cases a key such as "slime.green" into "Slime Green"
func DisplayName(key string) string {
	words := strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(key)
	return cases.Title(language.English).String(words)
}

func normalize(def *domain.MobDefinition) {
	if strings.TrimSpace(def.Name) == "" {
		def.Name = DisplayName(def.Key)
	}
}

// ScaledStats applies per-level scaling. Levels below one count as one.
func ScaledStats(def *domain.MobDefinition, level int) domain.MobStats {
	steps := float64(max(1, level) - 1)
	s := def.Scaling
	return domain.MobStats{
		HP:      max(1, int(math.Round(float64(def.Base.HP)+s.HPPerLevel*steps))),
		Attack:  round2(def.Base.Attack + s.AttackPerLevel*steps),
		Defense: round2(def.Base.Defense + s.DefensePerLevel*steps),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clone(def domain.MobDefinition) domain.MobDefinition {
	out := def
	if def.Tags != nil {
		out.Tags = append([]string(nil), def.Tags...)
	}
	if def.RewardMods.CoinMultiplier != nil {
		v := *def.RewardMods.CoinMultiplier
		out.RewardMods.CoinMultiplier = &v
	}
	return out
}
