package skill

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/formula"
	"github.com/udisondev/battlecore/internal/model"
)

// ErrInvalidAction is the root of every rejected cast. The engine treats it as
// recoverable: the actor falls back to another action.
var ErrInvalidAction = errors.New("invalid action")

var (
	ErrInsufficientEnergy = fmt.Errorf("%w: insufficient energy", ErrInvalidAction)
	ErrOnCooldown         = fmt.Errorf("%w: on cooldown", ErrInvalidAction)
	ErrLocked             = fmt.Errorf("%w: ability locked", ErrInvalidAction)
	ErrControlled         = fmt.Errorf("%w: controlled", ErrInvalidAction)
	ErrSilenced           = fmt.Errorf("%w: silenced", ErrInvalidAction)
	ErrDisarmed           = fmt.Errorf("%w: disarmed", ErrInvalidAction)
	ErrRooted             = fmt.Errorf("%w: rooted", ErrInvalidAction)
	ErrNotEquipped        = fmt.Errorf("%w: slot not equipped", ErrInvalidAction)
	ErrUnknownAbility     = fmt.Errorf("%w: unknown ability", ErrInvalidAction)
	ErrNoTarget           = fmt.Errorf("%w: no target", ErrInvalidAction)
)

// Hit is the result of an ability against one target.
type Hit struct {
	TargetID    string
	Amount      int32 // HP actually removed or restored
	Heal        bool
	Crit        bool
	Dodged      bool
	ElementMult float64
	Broken      []string // control effects removed by the hit (sleep)
	Killed      bool
}

// Applied records one status effect attached during a resolution.
type Applied struct {
	TargetID string
	EffectID string
	Outcome  ApplyOutcome
}

// Outcome is the full result of one resolved ability.
type Outcome struct {
	Ability *data.AbilityDef
	Hits    []Hit
	Applied []Applied
	Energy  int32 // energy gained by the caster
}

// AppliedIDs returns ids of effects applied to the given target.
func (o Outcome) AppliedIDs(targetID string) []string {
	var ids []string
	for _, a := range o.Applied {
		if a.TargetID == targetID {
			ids = append(ids, a.EffectID)
		}
	}
	return ids
}

// CastManager validates and resolves active abilities.
// It holds no per-battle state and is safe to share between battles.
type CastManager struct {
	reg     *data.Registry
	balance config.Balance
}

// NewCastManager creates a CastManager over a frozen registry.
func NewCastManager(reg *data.Registry, balance config.Balance) *CastManager {
	return &CastManager{
		reg:     reg,
		balance: balance,
	}
}

// NormalizeLoadout replaces ability ids the registry does not know.
// An unknown basic attack falls back to data.DefaultBasicAttack, an unknown
// skill or ultimate is unequipped. Each replacement is logged once.
func (cm *CastManager) NormalizeLoadout(p *model.Participant) {
	slots := []struct {
		slot model.Slot
		id   *string
	}{
		{model.SlotAttack, &p.Loadout.Basic},
		{model.SlotSkill, &p.Loadout.Skill},
		{model.SlotUltimate, &p.Loadout.Ultimate},
	}

	for _, s := range slots {
		if *s.id == "" && s.slot != model.SlotAttack {
			continue
		}
		def, err := cm.reg.Ability(*s.id)
		if err == nil && def.Slot == s.slot {
			continue
		}

		fallback := ""
		if s.slot == model.SlotAttack {
			fallback = data.DefaultBasicAttack
		}
		slog.Warn("unusable ability in loadout",
			"participant", p.ID,
			"slot", s.slot.String(),
			"ability", *s.id,
			"fallback", fallback)
		*s.id = fallback
	}
}

// AbilityFor returns the ability equipped in a slot.
func (cm *CastManager) AbilityFor(p *model.Participant, slot model.Slot) (*data.AbilityDef, error) {
	var id string
	switch slot {
	case model.SlotAttack:
		id = p.Loadout.Basic
	case model.SlotSkill:
		id = p.Loadout.Skill
	case model.SlotUltimate:
		id = p.Loadout.Ultimate
	}
	if id == "" {
		return nil, ErrNotEquipped
	}

	def, err := cm.reg.Ability(id)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownAbility, id)
	}
	return def, nil
}

// CanCast checks whether the participant may use the ability in a slot
// under the given control restriction. Every error wraps ErrInvalidAction.
func (cm *CastManager) CanCast(p *model.Participant, slot model.Slot, r Restriction) (*data.AbilityDef, error) {
	def, err := cm.AbilityFor(p, slot)
	if err != nil {
		return nil, err
	}

	if p.Level < def.UnlockLevel {
		return nil, fmt.Errorf("%w: %s needs level %d", ErrLocked, def.ID, def.UnlockLevel)
	}

	switch {
	case r.Has(RestrictAll):
		return nil, ErrControlled
	case slot != model.SlotAttack && r.Has(RestrictAbility):
		return nil, ErrSilenced
	case slot == model.SlotAttack && r.Has(RestrictBasic):
		return nil, ErrDisarmed
	case def.Movement && r.Has(RestrictMovement):
		return nil, ErrRooted
	}

	if cd := p.Cooldown(def.ID); cd > 0 {
		return nil, fmt.Errorf("%w: %s %d turns left", ErrOnCooldown, def.ID, cd)
	}

	if slot == model.SlotUltimate {
		if !p.IsFullEnergy() {
			return nil, fmt.Errorf("%w: %d/%d", ErrInsufficientEnergy, p.Energy(), p.MaxEnergy())
		}
	} else if p.Energy() < def.EnergyCost {
		return nil, fmt.Errorf("%w: %d/%d", ErrInsufficientEnergy, p.Energy(), def.EnergyCost)
	}

	return def, nil
}

// Resolve applies an ability validated by CanCast.
//
// Payment happens first: an ultimate drains the whole bar, other abilities pay
// their cost. The cooldown is set, then each target is resolved in order.
// RNG draws per damage target: hit roll, crit roll, then one roll per
// chance-gated descriptor. Non-ultimate casts generate energy afterwards.
func (cm *CastManager) Resolve(arena Arena, caster *model.Participant, def *data.AbilityDef, targets []*model.Participant) (Outcome, error) {
	if def.Kind != data.KindSupport && len(targets) == 0 {
		return Outcome{}, fmt.Errorf("%w for %s", ErrNoTarget, def.ID)
	}

	if def.Slot == model.SlotUltimate {
		caster.SetEnergy(0)
	} else if def.EnergyCost > 0 {
		caster.AddEnergy(-def.EnergyCost)
	}
	caster.SetCooldown(def.ID, def.Cooldown)

	out := Outcome{Ability: def}
	for _, target := range targets {
		var hit Hit
		switch def.Kind {
		case data.KindDamage:
			hit = cm.strike(arena, caster, def, target)
		case data.KindHeal:
			hit = cm.heal(arena, caster, def, target)
		default:
			continue
		}
		out.Hits = append(out.Hits, hit)

		if hit.Dodged || target.IsDead() {
			continue
		}
		for _, d := range def.Effects {
			if d.To == data.RecipientTarget {
				out.Applied = append(out.Applied, applyDescriptor(arena, cm.reg, caster, []*model.Participant{target}, d)...)
			}
		}
	}

	for _, d := range def.Effects {
		if d.To == data.RecipientTarget {
			if def.Kind == data.KindSupport {
				out.Applied = append(out.Applied, applyDescriptor(arena, cm.reg, caster, Living(targets), d)...)
			}
			continue
		}
		out.Applied = append(out.Applied, applyDescriptor(arena, cm.reg, caster, recipients(arena, caster, d.To), d)...)
	}

	if def.Slot != model.SlotUltimate {
		variance := formula.EnergyVariance(cm.balance, arena.Rand().Float64())
		gain := formula.EnergyGain(cm.balance, caster.Base.Morale, variance)
		before := caster.Energy()
		out.Energy = caster.AddEnergy(gain) - before
	}

	slog.Debug("ability resolved",
		"caster", caster.ID,
		"ability", def.ID,
		"targets", len(targets),
		"applied", len(out.Applied))

	return out, nil
}

func (cm *CastManager) strike(arena Arena, caster *model.Participant, def *data.AbilityDef, target *model.Participant) Hit {
	rng := arena.Rand()
	hit := Hit{TargetID: target.ID}

	hitChance := formula.HitChance(cm.balance, caster.Base.Accuracy, target.Base.Dodge)
	if rng.Float64()*100 >= hitChance {
		hit.Dodged = true
		return hit
	}

	hit.Crit = rng.Float64()*100 < cm.critChance(arena, caster)
	hit.ElementMult = formula.ElementMultiplier(cm.balance, caster.Element, target.Element)

	mult, ratio := formula.SlotMultiplier(cm.balance, def.Slot)
	amount := formula.Damage(cm.balance, formula.DamageInput{
		Atk:            EffectiveStat(arena, caster, model.StatAtk),
		Multiplier:     mult,
		Secondary:      cm.secondary(arena, caster, def),
		SecondaryRatio: ratio,
		Defense:        EffectiveStat(arena, target, model.StatDef),
		ElementMult:    hit.ElementMult,
		Crit:           hit.Crit,
		CritDamage:     caster.Base.CritDamage,
	})

	hit.Amount = target.ReduceHP(amount)
	if target.IsDead() {
		hit.Killed = true
		return hit
	}
	if hit.Amount > 0 {
		target.AddEnergy(cm.balance.EnergyOnHit)
		hit.Broken = arena.Effects(target).BreakOnDamage()
	}
	return hit
}

func (cm *CastManager) heal(arena Arena, caster *model.Participant, def *data.AbilityDef, target *model.Participant) Hit {
	hit := Hit{TargetID: target.ID, Heal: true, ElementMult: 1}
	hit.Crit = arena.Rand().Float64()*100 < cm.critChance(arena, caster)

	mult, ratio := formula.SlotMultiplier(cm.balance, def.Slot)
	amount := formula.Heal(cm.balance, formula.DamageInput{
		Atk:            EffectiveStat(arena, caster, model.StatAtk),
		Multiplier:     mult,
		Secondary:      cm.secondary(arena, caster, def),
		SecondaryRatio: ratio,
		Crit:           hit.Crit,
		CritDamage:     caster.Base.CritDamage,
	})
	hit.Amount = target.RestoreHP(amount)
	return hit
}

// critChance scales the formula chance by crit buffs and debuffs.
func (cm *CastManager) critChance(arena Arena, caster *model.Participant) float64 {
	speed := int32(EffectiveStat(arena, caster, model.StatSpeed))
	chance := formula.CritChance(cm.balance, caster.Base.CritRate, speed, caster.Rarity)
	return min(chance*arena.Effects(caster).StatMultiplier(model.StatCrit), 100)
}

func (cm *CastManager) secondary(arena Arena, caster *model.Participant, def *data.AbilityDef) float64 {
	if def.Secondary == model.StatNone {
		return 0
	}
	return EffectiveStat(arena, caster, def.Secondary)
}

// applyDescriptor attaches one descriptor to every living recipient,
// rolling its chance per recipient. Unknown effect ids are skipped.
func applyDescriptor(arena Arena, reg *data.Registry, owner *model.Participant, to []*model.Participant, d data.EffectDescriptor) []Applied {
	def, err := reg.Effect(d.EffectID)
	if err != nil {
		slog.Warn("skipping unknown effect", "owner", owner.ID, "effect", d.EffectID, "error", err)
		return nil
	}

	var applied []Applied
	for _, p := range to {
		if p.IsDead() {
			continue
		}
		if d.Chance > 0 && d.Chance < 100 && arena.Rand().Float64()*100 >= d.Chance {
			continue
		}
		res := arena.Effects(p).Apply(def, d.Magnitude, d.Duration, owner.ID)
		if res == ApplyRejected {
			continue
		}
		applied = append(applied, Applied{TargetID: p.ID, EffectID: def.ID, Outcome: res})
	}
	return applied
}

// recipients resolves a non-target descriptor recipient to living participants.
func recipients(arena Arena, owner *model.Participant, to data.Recipient) []*model.Participant {
	switch to {
	case data.RecipientSelf:
		return []*model.Participant{owner}
	case data.RecipientAllies:
		return Living(arena.Side(owner.Side))
	case data.RecipientEnemies:
		return Living(arena.Side(owner.Side.Opponent()))
	default:
		return nil
	}
}
