package skill

import (
	"log/slog"
	"math"

	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
)

// minStatMultiplier keeps stacked debuffs from driving a stat to zero.
const minStatMultiplier = 0.1

// ApplyOutcome describes how Apply merged a new effect.
type ApplyOutcome int8

const (
	ApplyAdded ApplyOutcome = iota
	ApplyReplaced
	ApplyRefreshed
	ApplyStacked
	ApplyRejected
)

// TickEntry is one DoT or regen application during a tick.
type TickEntry struct {
	EffectID string
	SourceID string
	Amount   int32
	Heal     bool
}

// TickReport summarises a tick of one participant's effects.
type TickReport struct {
	Entries []TickEntry
	Expired []string
	Damage  int32
	Healed  int32
}

// EffectManager tracks active status effects of one participant.
//
// Effects are kept in application order, which keeps ticks deterministic.
// Not safe for concurrent use: each battle owns its managers exclusively.
type EffectManager struct {
	effects []*StatusEffect

	// latched holds control scopes active when the holder's current turn
	// began; cleared by EndTurn.
	latched Restriction
}

// NewEffectManager creates a new empty EffectManager.
func NewEffectManager() *EffectManager {
	return &EffectManager{
		effects: make([]*StatusEffect, 0, 8),
	}
}

// Apply attaches an effect or merges it with an existing instance of the
// same definition.
//
// Stacking rules (same effect id):
//   - StackReplace → new magnitude, duration and source replace the old ones
//   - StackRefresh → magnitude kept, duration = max(remaining, new)
//   - StackAdditive → magnitude summed up to MaxStacks, duration = max(remaining, new)
func (m *EffectManager) Apply(def *data.EffectDef, magnitude float64, duration int32, sourceID string) ApplyOutcome {
	if def == nil || duration <= 0 {
		return ApplyRejected
	}

	for _, existing := range m.effects {
		if existing.Def.ID != def.ID {
			continue
		}
		switch def.Stacking {
		case data.StackReplace:
			existing.Magnitude = magnitude
			existing.Remaining = duration
			existing.SourceID = sourceID
			return ApplyReplaced
		case data.StackRefresh:
			existing.Remaining = max(existing.Remaining, duration)
			return ApplyRefreshed
		case data.StackAdditive:
			existing.Remaining = max(existing.Remaining, duration)
			if existing.Stacks >= def.MaxStacks {
				return ApplyRefreshed
			}
			existing.Stacks++
			existing.Magnitude += magnitude
			return ApplyStacked
		}
	}

	m.effects = append(m.effects, &StatusEffect{
		Def:       def,
		Magnitude: magnitude,
		Remaining: duration,
		Stacks:    1,
		SourceID:  sourceID,
	})
	return ApplyAdded
}

// Tick runs at the start of the holder's turn: DoTs deal their magnitude
// (independent of the source's live stats), regen heals, every duration is
// decremented and effects reaching zero are removed.
//
// Control effects active before the decrement stay latched for this turn,
// so a one-turn stun blocks exactly one action.
func (m *EffectManager) Tick(holder *model.Participant) TickReport {
	var report TickReport

	m.latched = m.activeRestriction()

	for _, se := range m.effects {
		amount := int32(math.Round(se.Magnitude))
		switch se.Def.Kind.(type) {
		case data.DoT:
			dealt := holder.ReduceHP(amount)
			report.Damage += dealt
			report.Entries = append(report.Entries, TickEntry{EffectID: se.Def.ID, SourceID: se.SourceID, Amount: dealt})
		case data.Regen:
			healed := holder.RestoreHP(amount)
			report.Healed += healed
			report.Entries = append(report.Entries, TickEntry{EffectID: se.Def.ID, SourceID: se.SourceID, Amount: healed, Heal: true})
		}
	}

	n := 0
	for _, se := range m.effects {
		se.Remaining--
		if se.Remaining <= 0 {
			se.Remaining = 0
			report.Expired = append(report.Expired, se.Def.ID)
			continue
		}
		m.effects[n] = se
		n++
	}
	clear(m.effects[n:])
	m.effects = m.effects[:n]

	if len(report.Expired) > 0 {
		slog.Debug("effects expired", "holder", holder.ID, "expired", report.Expired)
	}
	return report
}

// EndTurn clears the restriction latched by Tick.
func (m *EffectManager) EndTurn() { m.latched = 0 }

// Restriction returns the union of latched and currently active control scopes.
func (m *EffectManager) Restriction() Restriction {
	return m.latched | m.activeRestriction()
}

// IsControlled reports whether any control effect restricts the next action.
func (m *EffectManager) IsControlled() bool { return m.Restriction() != 0 }

func (m *EffectManager) activeRestriction() Restriction {
	var r Restriction
	for _, se := range m.effects {
		if c, ok := se.Def.Kind.(data.Control); ok {
			r |= scopeRestriction(c.Scope)
		}
	}
	return r
}

// StatMultiplier returns the product of all buff/debuff modifiers for a stat:
// buffs multiply by (1 + magnitude), debuffs by (1 − magnitude).
// Returns 1.0 if nothing modifies the stat. Never below minStatMultiplier.
func (m *EffectManager) StatMultiplier(stat model.Stat) float64 {
	mult := 1.0
	for _, se := range m.effects {
		switch k := se.Def.Kind.(type) {
		case data.Buff:
			if k.Stat == stat {
				mult *= 1 + se.Magnitude
			}
		case data.Debuff:
			if k.Stat == stat {
				mult *= 1 - se.Magnitude
			}
		}
	}
	return max(mult, minStatMultiplier)
}

// BreakOnDamage removes control effects that end when the holder takes
// direct damage (sleep). Returns removed effect ids.
func (m *EffectManager) BreakOnDamage() []string {
	return m.removeWhere(func(se *StatusEffect) bool {
		c, ok := se.Def.Kind.(data.Control)
		return ok && c.BreaksOnDamage
	})
}

// Dispel removes every harmful effect (DoT, control, debuff).
// Returns removed effect ids.
func (m *EffectManager) Dispel() []string {
	removed := m.removeWhere(func(se *StatusEffect) bool { return se.Def.IsHarmful() })
	if len(removed) > 0 {
		m.latched = 0
	}
	return removed
}

// Has reports whether an effect with the given id is active.
func (m *EffectManager) Has(effectID string) bool {
	_, ok := m.Find(effectID)
	return ok
}

// Find returns a copy of the active effect with the given id.
func (m *EffectManager) Find(effectID string) (StatusEffect, bool) {
	for _, se := range m.effects {
		if se.Def.ID == effectID {
			return *se, true
		}
	}
	return StatusEffect{}, false
}

// Active returns a copy of all active effects in application order.
func (m *EffectManager) Active() []StatusEffect {
	result := make([]StatusEffect, len(m.effects))
	for i, se := range m.effects {
		result[i] = *se
	}
	return result
}

// Count returns the number of active effects.
func (m *EffectManager) Count() int { return len(m.effects) }

func (m *EffectManager) removeWhere(match func(*StatusEffect) bool) []string {
	var removed []string
	n := 0
	for _, se := range m.effects {
		if match(se) {
			removed = append(removed, se.Def.ID)
			continue
		}
		m.effects[n] = se
		n++
	}
	clear(m.effects[n:])
	m.effects = m.effects[:n]
	return removed
}
