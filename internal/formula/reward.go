package formula

import (
	"fmt"
	"math"

	"github.com/udisondev/battlecore/internal/config"
)

// Difficulty is the stage difficulty used by reward curves.
type Difficulty int8

const (
	DifficultyNormal Difficulty = iota
	DifficultyHard
	DifficultyNightmare
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyHard:
		return "hard"
	case DifficultyNightmare:
		return "nightmare"
	default:
		return "normal"
	}
}

// ParseDifficulty parses "normal", "hard" or "nightmare". Empty means normal.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "", "normal":
		return DifficultyNormal, nil
	case "hard":
		return DifficultyHard, nil
	case "nightmare":
		return DifficultyNightmare, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", s)
	}
}

func difficultyMultiplier(t config.DifficultyTable, d Difficulty) float64 {
	switch d {
	case DifficultyHard:
		return t.Hard
	case DifficultyNightmare:
		return t.Nightmare
	default:
		return t.Normal
	}
}

// PerformanceBonus returns the reward multiplier for finishing in the given
// number of turns: ×1.5 at ≤10 turns, ×1.2 at ≤20 turns, ×1.0 otherwise.
func PerformanceBonus(c config.RewardCurve, turns int) float64 {
	switch {
	case turns <= c.FastTurns:
		return c.FastBonus
	case turns <= c.QuickTurns:
		return c.QuickBonus
	default:
		return 1.0
	}
}

// Reward computes experience and gold for a won stage.
func Reward(b config.Balance, world, level int32, difficulty Difficulty, turns int) (experience, gold int64) {
	c := b.Rewards
	mult := difficultyMultiplier(c.Difficulty, difficulty) * PerformanceBonus(c, turns)

	exp := (c.ExpPerWorld*float64(world) + c.ExpPerLevel*float64(level)) * mult
	g := (c.GoldPerWorld*float64(world) + c.GoldPerLevel*float64(level)) * mult
	return int64(math.Round(exp)), int64(math.Round(g))
}
