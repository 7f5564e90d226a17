package combat

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/formula"
)

// Outcome is the state of a battle.
type Outcome int8

const (
	OutcomePending Outcome = iota
	OutcomeAllyVictory
	OutcomeEnemyVictory
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAllyVictory:
		return "ally_victory"
	case OutcomeEnemyVictory:
		return "enemy_victory"
	case OutcomeDraw:
		return "draw"
	default:
		return "pending"
	}
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "ally_victory":
		return OutcomeAllyVictory, nil
	case "enemy_victory":
		return OutcomeEnemyVictory, nil
	case "draw":
		return OutcomeDraw, nil
	case "pending":
		return OutcomePending, nil
	}
	return OutcomePending, fmt.Errorf("unknown outcome %q", s)
}

// Result is the immutable outcome of a finished battle.
type Result struct {
	Victor   Outcome
	Turns    int
	Seed     uint64
	TimedOut bool
	Duration time.Duration // wall clock, excluded from Digest
	Log      Log
	Digest   [32]byte
}

// DigestHex returns the replay fingerprint as a hex string.
func (r *Result) DigestHex() string { return hex.EncodeToString(r.Digest[:]) }

// Stage identifies the content a battle was fought in, for rewards.
type Stage struct {
	World      int32
	Level      int32
	Difficulty formula.Difficulty
}

// Rewards returns experience and gold earned by the allied side.
// Defeat and draw yield nothing.
func Rewards(b config.Balance, r *Result, stage Stage) (experience, gold int64) {
	if r.Victor != OutcomeAllyVictory {
		return 0, 0
	}
	return formula.Reward(b, stage.World, stage.Level, stage.Difficulty, r.Turns)
}
