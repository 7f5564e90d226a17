package combat

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/game/skill"
	"github.com/udisondev/battlecore/internal/model"
)

// TurnOrder returns living participants in acting order: effective speed
// descending, then front line before back line, then registration order.
// It is a snapshot; the engine re-reads speed before every turn via NextActor.
func TurnOrder(arena skill.Arena, ps []*model.Participant) []*model.Participant {
	order := skill.Living(ps)
	speed := make(map[string]float64, len(order))
	for _, p := range order {
		speed[p.ID] = skill.EffectiveStat(arena, p, model.StatSpeed)
	}

	slices.SortStableFunc(order, func(a, b *model.Participant) int {
		return compareActors(a, speed[a.ID], b, speed[b.ID])
	})
	return order
}

// NextActor returns the living participant that acts next in the round: the
// fastest one not yet in acted, with the TurnOrder tie-breaks. Speed is read
// now, so buffs and debuffs applied earlier in the round take effect.
// nil means everyone alive has acted.
func NextActor(arena skill.Arena, ps []*model.Participant, acted map[string]bool) *model.Participant {
	var (
		best      *model.Participant
		bestSpeed float64
	)
	for _, p := range ps {
		if p.IsDead() || acted[p.ID] {
			continue
		}
		speed := skill.EffectiveStat(arena, p, model.StatSpeed)
		if best == nil || compareActors(p, speed, best, bestSpeed) < 0 {
			best, bestSpeed = p, speed
		}
	}
	return best
}

// compareActors orders a before b (negative) when a acts first.
func compareActors(a *model.Participant, speedA float64, b *model.Participant, speedB float64) int {
	if c := cmp.Compare(speedB, speedA); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Line, b.Line); c != 0 {
		return c
	}
	return cmp.Compare(a.Order, b.Order)
}

// SelectTargets resolves an ability's target type to living participants.
//
//   - TargetEnemy: first living front-line enemy in formation order, else back line
//   - TargetAllEnemies / TargetAllAllies: every living participant of that side
//   - TargetAlly: living ally (self included) with the lowest HP%
//   - TargetSelf: the caster
func SelectTargets(arena skill.Arena, caster *model.Participant, target data.TargetType) []*model.Participant {
	allies := skill.Living(arena.Side(caster.Side))
	enemies := skill.Living(arena.Side(caster.Side.Opponent()))

	switch target {
	case data.TargetEnemy:
		if t := frontmost(enemies); t != nil {
			return []*model.Participant{t}
		}
		return nil

	case data.TargetAllEnemies:
		return enemies

	case data.TargetAlly:
		if len(allies) == 0 {
			return nil
		}
		weakest := allies[0]
		for _, p := range allies[1:] {
			if p.HPPercentage() < weakest.HPPercentage() {
				weakest = p
			}
		}
		return []*model.Participant{weakest}

	case data.TargetAllAllies:
		return allies

	case data.TargetSelf:
		return []*model.Participant{caster}
	}
	return nil
}

func frontmost(ps []*model.Participant) *model.Participant {
	var best *model.Participant
	for _, p := range ps {
		if best == nil || p.Line < best.Line || (p.Line == best.Line && p.Order < best.Order) {
			best = p
		}
	}
	return best
}

// randomEnemy picks a living enemy with the battle RNG.
func randomEnemy(rng *rand.Rand, arena skill.Arena, p *model.Participant) *model.Participant {
	enemies := skill.Living(arena.Side(p.Side.Opponent()))
	if len(enemies) == 0 {
		return nil
	}
	return enemies[rng.IntN(len(enemies))]
}
