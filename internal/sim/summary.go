package sim

import (
	"time"

	"github.com/udisondev/battlecore/internal/game/combat"
)

// Summary aggregates a batch of reports.
type Summary struct {
	Runs       int
	AllyWins   int
	EnemyWins  int
	Draws      int
	TimedOut   int
	MinTurns   int
	MaxTurns   int
	AvgTurns   float64
	Experience int64
	Gold       int64
	Elapsed    time.Duration // sum of battle durations
}

// WinRate returns the share of ally victories in [0, 1].
func (s Summary) WinRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.AllyWins) / float64(s.Runs)
}

// Summarize aggregates reports.
func Summarize(reports []Report) Summary {
	var s Summary
	totalTurns := 0
	for _, r := range reports {
		res := r.Result
		if res == nil {
			continue
		}
		s.Runs++
		switch res.Victor {
		case combat.OutcomeAllyVictory:
			s.AllyWins++
		case combat.OutcomeEnemyVictory:
			s.EnemyWins++
		case combat.OutcomeDraw:
			s.Draws++
		}
		if res.TimedOut {
			s.TimedOut++
		}
		if s.Runs == 1 || res.Turns < s.MinTurns {
			s.MinTurns = res.Turns
		}
		s.MaxTurns = max(s.MaxTurns, res.Turns)
		totalTurns += res.Turns
		s.Experience += r.Experience
		s.Gold += r.Gold
		s.Elapsed += res.Duration
	}
	if s.Runs > 0 {
		s.AvgTurns = float64(totalTurns) / float64(s.Runs)
	}
	return s
}
