package skill

import (
	"math/rand/v2"

	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
)

// StatusEffect is a running status effect attached to one participant.
// SourceID is a back-reference to the applier; it never owns the source.
type StatusEffect struct {
	Def       *data.EffectDef
	Magnitude float64
	Remaining int32 // holder turns left, always >= 0
	Stacks    int32
	SourceID  string
}

// ID returns the effect definition id.
func (se *StatusEffect) ID() string { return se.Def.ID }

// Restriction is a bitmask of action scopes blocked by control effects.
type Restriction uint8

const (
	RestrictAll      Restriction = 1 << iota // stun, freeze, sleep: no action
	RestrictMovement                         // root: no moving abilities
	RestrictAbility                          // silence: no skill/ultimate
	RestrictBasic                            // disarm: no basic attack
	RestrictFear                             // fear: forced random action
)

// Has reports whether all bits of x are set.
func (r Restriction) Has(x Restriction) bool { return r&x == x }

func scopeRestriction(scope data.ControlScope) Restriction {
	switch scope {
	case data.ScopeFullStop:
		return RestrictAll
	case data.ScopeMovement:
		return RestrictMovement
	case data.ScopeAbilities:
		return RestrictAbility
	case data.ScopeBasic:
		return RestrictBasic
	case data.ScopeFear:
		return RestrictFear
	default:
		return 0
	}
}

// Arena is the per-battle view the managers act on.
// It is implemented by the battle engine; each battle has its own Arena.
type Arena interface {
	// Effects returns the effect manager of a participant.
	Effects(p *model.Participant) *EffectManager
	// Side returns every participant of a side, dead or alive, in registration order.
	Side(side model.Side) []*model.Participant
	// Rand returns the battle RNG.
	Rand() *rand.Rand
	// Turn returns the current round number.
	Turn() int
}

// Living filters out defeated participants, keeping order.
func Living(ps []*model.Participant) []*model.Participant {
	out := make([]*model.Participant, 0, len(ps))
	for _, p := range ps {
		if !p.IsDead() {
			out = append(out, p)
		}
	}
	return out
}

// EffectiveStat returns a stat with buffs/debuffs applied multiplicatively.
func EffectiveStat(arena Arena, p *model.Participant, stat model.Stat) float64 {
	v := p.Base.Value(stat)
	if stat == model.StatHP {
		return v
	}
	return v * arena.Effects(p).StatMultiplier(stat)
}
