package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// HardTurnCap is the absolute upper bound on battle rounds.
// Balance files may lower MaxTurns but never raise it above this value.
const HardTurnCap = 200

// RarityTable holds one value per rarity tier.
type RarityTable struct {
	Common    float64 `yaml:"common"`
	Uncommon  float64 `yaml:"uncommon"`
	Rare      float64 `yaml:"rare"`
	Epic      float64 `yaml:"epic"`
	Legendary float64 `yaml:"legendary"`
}

// StatScale multiplies the flat stats of a participant.
type StatScale struct {
	HP    float64 `yaml:"hp"`
	Atk   float64 `yaml:"atk"`
	Def   float64 `yaml:"def"`
	Speed float64 `yaml:"speed"`
}

// RoleTable holds the stat scale applied per combat role.
type RoleTable struct {
	Tank      StatScale `yaml:"tank"`
	MeleeDPS  StatScale `yaml:"melee_dps"`
	RangedDPS StatScale `yaml:"ranged_dps"`
	Support   StatScale `yaml:"support"`
}

// DifficultyTable holds reward multipliers per stage difficulty.
type DifficultyTable struct {
	Normal    float64 `yaml:"normal"`
	Hard      float64 `yaml:"hard"`
	Nightmare float64 `yaml:"nightmare"`
}

// RewardCurve describes experience/gold payout for a won stage.
type RewardCurve struct {
	ExpPerWorld  float64         `yaml:"exp_per_world"`
	ExpPerLevel  float64         `yaml:"exp_per_level"`
	GoldPerWorld float64         `yaml:"gold_per_world"`
	GoldPerLevel float64         `yaml:"gold_per_level"`
	Difficulty   DifficultyTable `yaml:"difficulty"`

	// Performance bonus: turns <= FastTurns → FastBonus, turns <= QuickTurns → QuickBonus.
	FastTurns  int     `yaml:"fast_turns"`
	FastBonus  float64 `yaml:"fast_bonus"`
	QuickTurns int     `yaml:"quick_turns"`
	QuickBonus float64 `yaml:"quick_bonus"`
}

// Balance holds the static balance constants consumed by the formula package.
// A Balance value is never mutated by the engine.
type Balance struct {
	MaxTurns  int   `yaml:"max_turns"`
	MaxEnergy int32 `yaml:"max_energy"`

	// Stat scaling
	LevelGrowth float64     `yaml:"level_growth"` // per level above 1
	StarGrowth  float64     `yaml:"star_growth"`  // per star above 1
	Rarity      RarityTable `yaml:"rarity"`
	Roles       RoleTable   `yaml:"roles"`

	// Elements
	ElementAdvantage    float64 `yaml:"element_advantage"`
	ElementDisadvantage float64 `yaml:"element_disadvantage"`

	// Crit (percent values)
	CritBase        float64     `yaml:"crit_base"`
	CritSpeedFactor float64     `yaml:"crit_speed_factor"`
	CritRarityBonus RarityTable `yaml:"crit_rarity_bonus"`
	CritMultiplier  float64     `yaml:"crit_multiplier"`

	// Hit (percent values)
	BaseAccuracy float64 `yaml:"base_accuracy"`
	MinHitChance float64 `yaml:"min_hit_chance"`

	// Damage
	DefenseFactor          float64 `yaml:"defense_factor"`
	AttackMultiplier       float64 `yaml:"attack_multiplier"`
	SkillMultiplier        float64 `yaml:"skill_multiplier"`
	UltimateMultiplier     float64 `yaml:"ultimate_multiplier"`
	SkillSecondaryRatio    float64 `yaml:"skill_secondary_ratio"`
	UltimateSecondaryRatio float64 `yaml:"ultimate_secondary_ratio"`

	// Energy
	EnergyBase         float64 `yaml:"energy_base"`
	EnergyMoraleFactor float64 `yaml:"energy_morale_factor"`
	EnergyVariance     float64 `yaml:"energy_variance"`
	EnergyOnHit        int32   `yaml:"energy_on_hit"`

	Rewards RewardCurve `yaml:"rewards"`
}

// DefaultBalance returns the stock balance constants.
func DefaultBalance() Balance {
	return Balance{
		MaxTurns:  HardTurnCap,
		MaxEnergy: 100,

		LevelGrowth: 0.08,
		StarGrowth:  0.15,
		Rarity: RarityTable{
			Common:    1.0,
			Uncommon:  1.1,
			Rare:      1.25,
			Epic:      1.45,
			Legendary: 1.7,
		},
		Roles: RoleTable{
			Tank:      StatScale{HP: 1.3, Atk: 0.8, Def: 1.3, Speed: 1.0},
			MeleeDPS:  StatScale{HP: 1.0, Atk: 1.2, Def: 1.0, Speed: 1.05},
			RangedDPS: StatScale{HP: 0.85, Atk: 1.25, Def: 0.85, Speed: 1.1},
			Support:   StatScale{HP: 1.1, Atk: 0.85, Def: 1.0, Speed: 1.0},
		},

		ElementAdvantage:    1.5,
		ElementDisadvantage: 0.75,

		CritBase:        8,
		CritSpeedFactor: 0.1,
		CritRarityBonus: RarityTable{Common: 0, Uncommon: 1, Rare: 2, Epic: 3, Legendary: 5},
		CritMultiplier:  1.75,

		BaseAccuracy: 100,
		MinHitChance: 5,

		DefenseFactor:          0.5,
		AttackMultiplier:       1.0,
		SkillMultiplier:        1.6,
		UltimateMultiplier:     2.5,
		SkillSecondaryRatio:    0.2,
		UltimateSecondaryRatio: 0.5,

		EnergyBase:         20,
		EnergyMoraleFactor: 0.1,
		EnergyVariance:     5,
		EnergyOnHit:        5,

		Rewards: RewardCurve{
			ExpPerWorld:  50,
			ExpPerLevel:  12,
			GoldPerWorld: 30,
			GoldPerLevel: 5,
			Difficulty:   DifficultyTable{Normal: 1.0, Hard: 1.5, Nightmare: 2.0},
			FastTurns:    10,
			FastBonus:    1.5,
			QuickTurns:   20,
			QuickBonus:   1.2,
		},
	}
}

// Normalize clamps values that would break engine invariants.
func (b *Balance) Normalize() {
	if b.MaxTurns < 1 || b.MaxTurns > HardTurnCap {
		b.MaxTurns = HardTurnCap
	}
	if b.MaxEnergy < 1 {
		b.MaxEnergy = 100
	}
}

// LoadBalance loads balance constants from a YAML file on top of the defaults.
// If the file doesn't exist (or path is empty), returns defaults.
func LoadBalance(path string) (Balance, error) {
	cfg := DefaultBalance()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading balance %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing balance %s: %w", path, err)
	}

	cfg.Normalize()
	return cfg, nil
}
