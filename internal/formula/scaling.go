// Package formula translates static balance constants into numeric results.
//
// Every function is pure: inputs are the balance table plus plain values,
// and nothing here keeps state between calls.
package formula

import (
	"errors"
	"fmt"
	"math"

	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/model"
)

// RarityValue picks the rarity column from a table.
func RarityValue(t config.RarityTable, r model.Rarity) float64 {
	switch r {
	case model.RarityUncommon:
		return t.Uncommon
	case model.RarityRare:
		return t.Rare
	case model.RarityEpic:
		return t.Epic
	case model.RarityLegendary:
		return t.Legendary
	default:
		return t.Common
	}
}

// RoleScale returns the stat modifiers for a combat role.
func RoleScale(b config.Balance, role model.Role) config.StatScale {
	switch role {
	case model.RoleTank:
		return b.Roles.Tank
	case model.RoleRangedDPS:
		return b.Roles.RangedDPS
	case model.RoleSupport:
		return b.Roles.Support
	default:
		return b.Roles.MeleeDPS
	}
}

// GrowthFactor returns (1 + (level-1)×levelGrowth) × (1 + (stars-1)×starGrowth).
func GrowthFactor(b config.Balance, level, stars int32) float64 {
	lvl := float64(max(level, 1) - 1)
	st := float64(max(stars, 1) - 1)
	return (1 + lvl*b.LevelGrowth) * (1 + st*b.StarGrowth)
}

// ScaleStats computes the final combat stats of a participant:
//
//	stat × (1 + (level-1)×0.08) × (1 + (stars-1)×0.15) × rarityMultiplier × roleModifier
//
// Only flat stats (HP, Atk, Def, Speed) are scaled; percentage stats pass through.
func ScaleStats(b config.Balance, base model.Stats, level, stars int32, rarity model.Rarity, role model.Role) model.Stats {
	common := GrowthFactor(b, level, stars) * RarityValue(b.Rarity, rarity)
	rs := RoleScale(b, role)

	out := base
	out.HP = scaleFlat(base.HP, common*rs.HP)
	out.Atk = scaleFlat(base.Atk, common*rs.Atk)
	out.Def = scaleFlat(base.Def, common*rs.Def)
	out.Speed = scaleFlat(base.Speed, common*rs.Speed)
	if out.HP < 1 {
		out.HP = 1
	}
	return out
}

// ErrStatOverflow is returned when a scaled stat does not fit in int32.
var ErrStatOverflow = errors.New("scaled stat overflows int32")

// ScaleRecord scales a record's base stats and adds its equipment.
// A flat stat leaving the int32 range makes the record malformed.
func ScaleRecord(b config.Balance, rec model.Record) (model.Stats, error) {
	common := GrowthFactor(b, rec.Level, rec.Stars) * RarityValue(b.Rarity, rec.Rarity)
	rs := RoleScale(b, rec.Role)

	for _, f := range []struct {
		name  string
		value int32
		scale float64
	}{
		{"hp", rec.Base.HP, rs.HP},
		{"atk", rec.Base.Atk, rs.Atk},
		{"def", rec.Base.Def, rs.Def},
		{"speed", rec.Base.Speed, rs.Speed},
	} {
		if _, ok := scaleChecked(f.value, common*f.scale); !ok {
			return model.Stats{}, fmt.Errorf("%w: %s: %s: %w", model.ErrMalformedRecord, rec.ID, f.name, ErrStatOverflow)
		}
	}

	stats, ok := ScaleStats(b, rec.Base, rec.Level, rec.Stars, rec.Rarity, rec.Role).CheckedAdd(rec.Equipment)
	if !ok {
		return model.Stats{}, fmt.Errorf("%w: %s: equipment: %w", model.ErrMalformedRecord, rec.ID, ErrStatOverflow)
	}
	return stats, nil
}

// scaleFlat saturates at the int32 bounds instead of wrapping.
func scaleFlat(v int32, factor float64) int32 {
	out, _ := scaleChecked(v, factor)
	return out
}

func scaleChecked(v int32, factor float64) (int32, bool) {
	if factor <= 0 {
		factor = 1
	}
	x := math.Round(float64(v) * factor)
	switch {
	case x > math.MaxInt32:
		return math.MaxInt32, false
	case x < math.MinInt32:
		return math.MinInt32, false
	}
	return int32(x), true
}
