package formula

import (
	"math"

	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/model"
)

// SlotMultiplier returns the base damage multiplier of an ability slot and the
// ratio applied to the ability's secondary stat.
// Attack 1.0× (no secondary), skill 1.6× + 0.2×secondary, ultimate 2.5× + 0.5×secondary.
func SlotMultiplier(b config.Balance, slot model.Slot) (mult, secondaryRatio float64) {
	switch slot {
	case model.SlotSkill:
		return b.SkillMultiplier, b.SkillSecondaryRatio
	case model.SlotUltimate:
		return b.UltimateMultiplier, b.UltimateSecondaryRatio
	default:
		return b.AttackMultiplier, 0
	}
}

// CritChance returns the crit chance in percent, capped to [0, 100]:
// base + critBonus + speed×speedFactor + rarity bonus.
func CritChance(b config.Balance, critBonus float64, speed int32, rarity model.Rarity) float64 {
	chance := b.CritBase + critBonus + float64(speed)*b.CritSpeedFactor + RarityValue(b.CritRarityBonus, rarity)
	return clampPercent(chance)
}

// CritMultiplier returns the crit damage multiplier (1.75 by default) plus
// the participant's bonus crit damage percent. Never below 1.
func CritMultiplier(b config.Balance, critDamageBonus float64) float64 {
	return max(b.CritMultiplier+critDamageBonus/100, 1)
}

// HitChance returns the chance to land a hit in percent:
// base accuracy + accuracy bonus − dodge, clamped to [MinHitChance, 100].
func HitChance(b config.Balance, accuracy, dodge float64) float64 {
	chance := b.BaseAccuracy + accuracy - dodge
	return min(max(chance, b.MinHitChance), 100)
}

// Mitigate subtracts defense mitigation (defense × DefenseFactor) from an attack value.
// The result is floored at 1.
func Mitigate(b config.Balance, attackValue, defense float64) float64 {
	return max(attackValue-defense*b.DefenseFactor, 1)
}

// DamageInput gathers everything the damage formula needs for one hit.
type DamageInput struct {
	Atk            float64 // effective attack (buffs applied)
	Multiplier     float64 // slot multiplier
	Secondary      float64 // effective secondary stat value
	SecondaryRatio float64
	Defense        float64 // effective target defense
	ElementMult    float64
	Crit           bool
	CritDamage     float64 // bonus crit damage percent
}

// Damage computes the final damage of one hit:
//
//	max(atk×mult + secondary×ratio − def×0.5, 1) × element × crit
//
// The result is truncated to an integer and never below 1.
func Damage(b config.Balance, in DamageInput) int32 {
	raw := Mitigate(b, in.Atk*in.Multiplier+in.Secondary*in.SecondaryRatio, in.Defense)
	raw *= in.ElementMult
	if in.Crit {
		raw *= CritMultiplier(b, in.CritDamage)
	}
	return floorPositive(raw)
}

// Heal computes healing of one cast: atk×mult + secondary×ratio, × crit.
// Healing ignores defense and elements.
func Heal(b config.Balance, in DamageInput) int32 {
	raw := in.Atk*in.Multiplier + in.Secondary*in.SecondaryRatio
	if in.Crit {
		raw *= CritMultiplier(b, in.CritDamage)
	}
	return floorPositive(raw)
}

func floorPositive(v float64) int32 {
	if math.IsNaN(v) || v < 1 {
		return 1
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v)
}

func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}
