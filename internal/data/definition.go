package data

import (
	"fmt"

	"github.com/udisondev/battlecore/internal/model"
)

// Category is the registry table a definition lives in.
type Category int8

const (
	CategoryActive  Category = iota // активные способности
	CategoryDoT                     // урон во времени
	CategoryControl                 // контроль (stun, freeze, ...)
	CategoryDebuff                  // ослабления
	CategoryBuff                    // усиления
	CategoryPassive                 // пассивные способности
)

// Categories lists every category in diagnostic order.
var Categories = []Category{
	CategoryActive, CategoryDoT, CategoryControl, CategoryDebuff, CategoryBuff, CategoryPassive,
}

func (c Category) String() string {
	switch c {
	case CategoryActive:
		return "active"
	case CategoryDoT:
		return "dot"
	case CategoryControl:
		return "control"
	case CategoryDebuff:
		return "debuff"
	case CategoryBuff:
		return "buff"
	case CategoryPassive:
		return "passive"
	default:
		return fmt.Sprintf("category(%d)", int8(c))
	}
}

// IsEffect reports whether the category holds status effects.
func (c Category) IsEffect() bool {
	return c == CategoryDoT || c == CategoryControl || c == CategoryDebuff || c == CategoryBuff
}

// Definition is a registry entry. The interface is sealed: only
// *AbilityDef, *EffectDef and *PassiveDef implement it.
type Definition interface {
	DefID() string
	DefCategory() Category
	sealed()
}

// UnlockTiers are the levels at which abilities may unlock.
var UnlockTiers = []int32{1, 11, 41, 81, 121, 151}

func isUnlockTier(level int32) bool {
	for _, t := range UnlockTiers {
		if t == level {
			return true
		}
	}
	return false
}

// TargetType selects the targets of an ability.
type TargetType int8

const (
	TargetEnemy      TargetType = iota // один враг (передняя линия первой)
	TargetAllEnemies                   // все живые враги
	TargetAlly                         // союзник с наименьшим HP%
	TargetAllAllies                    // все живые союзники
	TargetSelf                         // сам кастер
)

// AbilityKind is what an ability does to its targets.
type AbilityKind int8

const (
	KindDamage  AbilityKind = iota // урон целям
	KindHeal                       // лечение целей
	KindSupport                    // только дескрипторы эффектов
)

// Recipient is who an effect descriptor applies to.
type Recipient int8

const (
	RecipientTarget Recipient = iota // цель способности
	RecipientSelf                    // кастер / владелец пассивки
	RecipientAllies                  // все живые союзники владельца
	RecipientEnemies                 // все живые враги владельца
)

// EffectDescriptor references a status effect applied on resolution.
type EffectDescriptor struct {
	EffectID  string
	Magnitude float64 // DoT/regen: HP за тик; buff/debuff: доля (0.2 = 20%)
	Duration  int32   // в ходах владельца эффекта
	Chance    float64 // 0 или 100 — всегда; иначе процент срабатывания
	To        Recipient
}

// AbilityDef is an active ability: basic attack, skill or ultimate.
type AbilityDef struct {
	ID          string
	Name        string
	Slot        model.Slot
	Kind        AbilityKind
	Target      TargetType
	UnlockLevel int32
	EnergyCost  int32 // ультимейт всегда требует полную шкалу
	Cooldown    int32 // в ходах владельца
	Secondary   model.Stat
	Movement    bool // рывок/смена позиции — блокируется root
	Effects     []EffectDescriptor
}

func (d *AbilityDef) DefID() string         { return d.ID }
func (d *AbilityDef) DefCategory() Category { return CategoryActive }
func (d *AbilityDef) sealed()               {}

// StackPolicy governs reapplication of an effect already present.
type StackPolicy int8

const (
	StackReplace  StackPolicy = iota // новый экземпляр заменяет старый
	StackRefresh                     // обновляется только длительность
	StackAdditive                    // сила суммируется до MaxStacks
)

// ControlScope is the set of actions a control effect blocks.
type ControlScope int8

const (
	ScopeFullStop ControlScope = iota // stun, freeze, sleep: ход пропускается
	ScopeMovement                     // root: нельзя способности с перемещением
	ScopeAbilities                    // silence: только базовая атака
	ScopeBasic                        // disarm: только способности
	ScopeFear                         // fear: случайное действие
)

// EffectKind is the sealed payload of an effect:
// DoT, Control, Debuff, Buff or Regen.
type EffectKind interface {
	category() Category
}

// DoT deals periodic damage independent of the source's current stats.
type DoT struct{}

// Control restricts actions. BreaksOnDamage removes it on direct damage.
type Control struct {
	Scope          ControlScope
	BreaksOnDamage bool
}

// Debuff lowers a stat multiplicatively.
type Debuff struct {
	Stat model.Stat
}

// Buff raises a stat multiplicatively.
type Buff struct {
	Stat model.Stat
}

// Regen heals every tick and is registered as a buff.
type Regen struct{}

func (DoT) category() Category     { return CategoryDoT }
func (Control) category() Category { return CategoryControl }
func (Debuff) category() Category  { return CategoryDebuff }
func (Buff) category() Category    { return CategoryBuff }
func (Regen) category() Category   { return CategoryBuff }

// EffectDef defines a status effect.
type EffectDef struct {
	ID        string
	Name      string
	Stacking  StackPolicy
	MaxStacks int32 // только для StackAdditive
	Kind      EffectKind
}

func (d *EffectDef) DefID() string { return d.ID }

func (d *EffectDef) DefCategory() Category {
	if d.Kind == nil {
		return -1
	}
	return d.Kind.category()
}

func (d *EffectDef) sealed() {}

// IsHarmful reports whether a dispel removes the effect.
func (d *EffectDef) IsHarmful() bool {
	switch d.Kind.(type) {
	case DoT, Control, Debuff:
		return true
	default:
		return false
	}
}

// TriggerType is the condition that fires a passive.
type TriggerType int8

const (
	TriggerHPThreshold TriggerType = iota // on_hp_threshold: HP% ≤ Threshold
	TriggerAllyDown                       // on_ally_down: пал союзник
	TriggerEnemyDown                      // on_enemy_down: пал враг
	TriggerBattleStart                    // on_battle_start: начало боя
)

func (t TriggerType) String() string {
	switch t {
	case TriggerHPThreshold:
		return "on_hp_threshold"
	case TriggerAllyDown:
		return "on_ally_down"
	case TriggerEnemyDown:
		return "on_enemy_down"
	case TriggerBattleStart:
		return "on_battle_start"
	default:
		return fmt.Sprintf("trigger(%d)", int8(t))
	}
}

// PassiveDef defines a passive ability.
type PassiveDef struct {
	ID          string
	Name        string
	UnlockLevel int32
	Trigger     TriggerType
	Threshold   float64 // HP% для TriggerHPThreshold
	Cooldown    int32   // в раундах
	HealPercent float64 // лечение владельца, % от maxHP
	EnergyGain  int32
	Dispel      bool // снять вредные эффекты с владельца
	Effects     []EffectDescriptor
}

func (d *PassiveDef) DefID() string         { return d.ID }
func (d *PassiveDef) DefCategory() Category { return CategoryPassive }
func (d *PassiveDef) sealed()               {}
