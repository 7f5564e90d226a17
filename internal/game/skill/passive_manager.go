package skill

import (
	"log/slog"
	"math"

	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
)

// EventKind is the moment passives are evaluated at.
type EventKind int8

const (
	// EventBattleStart is raised once during Init.
	EventBattleStart EventKind = iota
	// EventHPChanged is raised after any action or tick that may have moved HP.
	EventHPChanged
)

// Firing is one passive activation.
type Firing struct {
	OwnerID   string
	PassiveID string
	Trigger   data.TriggerType
	Healed    int32
	Energy    int32
	Dispelled []string
	Applied   []Applied
}

type passiveKey struct {
	owner   string
	passive string
}

// passiveState tracks edge detection and cooldown of one (owner, passive) pair.
type passiveState struct {
	active    bool // last observed condition (hp threshold)
	fallen    int  // last observed fallen count (down triggers)
	fired     bool
	lastFired int
}

// PassiveManager evaluates edge-triggered passives of one battle.
//
// A passive fires only on a false→true transition of its condition, and only
// if its cooldown (in rounds) has elapsed since it last fired. A transition
// that happens during cooldown is consumed.
type PassiveManager struct {
	reg    *data.Registry
	state  map[passiveKey]*passiveState
	defs   map[string]*data.PassiveDef
	warned map[string]bool
}

// NewPassiveManager creates a PassiveManager for a single battle.
func NewPassiveManager(reg *data.Registry) *PassiveManager {
	return &PassiveManager{
		reg:    reg,
		state:  make(map[passiveKey]*passiveState),
		defs:   make(map[string]*data.PassiveDef),
		warned: make(map[string]bool),
	}
}

// Evaluate checks every passive of the owner against the current battle state
// and fires those whose trigger has just become true.
func (pm *PassiveManager) Evaluate(arena Arena, owner *model.Participant, ev EventKind) []Firing {
	if owner.IsDead() {
		return nil
	}

	var firings []Firing
	for _, id := range owner.Loadout.Passives {
		def := pm.lookup(id)
		if def == nil || owner.Level < def.UnlockLevel {
			continue
		}

		key := passiveKey{owner: owner.ID, passive: def.ID}
		st, ok := pm.state[key]
		if !ok {
			st = &passiveState{}
			pm.state[key] = st
		}

		if !pm.edge(arena, owner, def, st, ev) {
			continue
		}

		turn := arena.Turn()
		if st.fired && turn-st.lastFired < int(def.Cooldown) {
			slog.Debug("passive edge during cooldown",
				"owner", owner.ID,
				"passive", def.ID,
				"turn", turn,
				"lastFired", st.lastFired)
			continue
		}
		st.fired = true
		st.lastFired = turn

		firings = append(firings, pm.fire(arena, owner, def))
	}
	return firings
}

// edge updates the observed condition and reports a false→true transition.
func (pm *PassiveManager) edge(arena Arena, owner *model.Participant, def *data.PassiveDef, st *passiveState, ev EventKind) bool {
	switch def.Trigger {
	case data.TriggerBattleStart:
		return ev == EventBattleStart && !st.fired

	case data.TriggerHPThreshold:
		now := owner.HPPercentage() <= def.Threshold
		rising := now && !st.active
		st.active = now
		return rising

	case data.TriggerAllyDown:
		n := fallen(arena.Side(owner.Side), owner.ID)
		rising := n > st.fallen
		st.fallen = n
		return rising

	case data.TriggerEnemyDown:
		n := fallen(arena.Side(owner.Side.Opponent()), "")
		rising := n > st.fallen
		st.fallen = n
		return rising
	}
	return false
}

func (pm *PassiveManager) fire(arena Arena, owner *model.Participant, def *data.PassiveDef) Firing {
	f := Firing{OwnerID: owner.ID, PassiveID: def.ID, Trigger: def.Trigger}

	if def.Dispel {
		f.Dispelled = arena.Effects(owner).Dispel()
	}
	if def.HealPercent > 0 {
		amount := int32(math.Round(float64(owner.MaxHP()) * def.HealPercent / 100))
		f.Healed = owner.RestoreHP(amount)
	}
	if def.EnergyGain > 0 {
		before := owner.Energy()
		f.Energy = owner.AddEnergy(def.EnergyGain) - before
	}
	for _, d := range def.Effects {
		to := recipients(arena, owner, d.To)
		if d.To == data.RecipientTarget {
			to = []*model.Participant{owner}
		}
		f.Applied = append(f.Applied, applyDescriptor(arena, pm.reg, owner, to, d)...)
	}

	slog.Debug("passive fired",
		"owner", owner.ID,
		"passive", def.ID,
		"trigger", def.Trigger.String(),
		"healed", f.Healed,
		"applied", len(f.Applied))
	return f
}

// lookup resolves a passive id, warning once per unknown id.
func (pm *PassiveManager) lookup(id string) *data.PassiveDef {
	if def, ok := pm.defs[id]; ok {
		return def
	}
	def, err := pm.reg.Passive(id)
	if err != nil {
		if !pm.warned[id] {
			pm.warned[id] = true
			slog.Warn("skipping unknown passive", "passive", id, "error", err)
		}
		return nil
	}
	pm.defs[id] = def
	return def
}

// fallen counts defeated participants, excluding one id.
func fallen(ps []*model.Participant, exclude string) int {
	n := 0
	for _, p := range ps {
		if p.ID != exclude && p.IsDead() {
			n++
		}
	}
	return n
}
