package model

import "fmt"

// Side is one side of a battle.
type Side int8

const (
	SideAlly  Side = iota // герои игрока
	SideEnemy             // монстры
)

func (s Side) String() string {
	switch s {
	case SideAlly:
		return "ally"
	case SideEnemy:
		return "enemy"
	default:
		return fmt.Sprintf("side(%d)", int8(s))
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideAlly {
		return SideEnemy
	}
	return SideAlly
}

// Role is a participant's combat role.
type Role int8

const (
	RoleTank Role = iota
	RoleMeleeDPS
	RoleRangedDPS
	RoleSupport
)

var roleNames = map[Role]string{
	RoleTank:      "tank",
	RoleMeleeDPS:  "melee_dps",
	RoleRangedDPS: "ranged_dps",
	RoleSupport:   "support",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("role(%d)", int8(r))
}

// ParseRole parses a role name such as "tank" or "melee_dps".
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// Element is a participant's element.
// Advantage cycle: Fire→Wind→Electric→Water→Fire, Light↔Dark.
type Element int8

const (
	ElementFire Element = iota
	ElementWind
	ElementElectric
	ElementWater
	ElementLight
	ElementDark
)

var elementNames = map[Element]string{
	ElementFire:     "fire",
	ElementWind:     "wind",
	ElementElectric: "electric",
	ElementWater:    "water",
	ElementLight:    "light",
	ElementDark:     "dark",
}

func (e Element) String() string {
	if s, ok := elementNames[e]; ok {
		return s
	}
	return fmt.Sprintf("element(%d)", int8(e))
}

// ParseElement parses an element name.
func ParseElement(s string) (Element, error) {
	for e, name := range elementNames {
		if name == s {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown element %q", s)
}

// Rarity is the rarity of a hero or monster.
type Rarity int8

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityNames = map[Rarity]string{
	RarityCommon:    "common",
	RarityUncommon:  "uncommon",
	RarityRare:      "rare",
	RarityEpic:      "epic",
	RarityLegendary: "legendary",
}

func (r Rarity) String() string {
	if s, ok := rarityNames[r]; ok {
		return s
	}
	return fmt.Sprintf("rarity(%d)", int8(r))
}

// ParseRarity parses a rarity name.
func ParseRarity(s string) (Rarity, error) {
	for r, name := range rarityNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rarity %q", s)
}

// Line is a formation line, front or back.
type Line int8

const (
	LineFront Line = iota
	LineBack
)

func (l Line) String() string {
	if l == LineBack {
		return "back"
	}
	return "front"
}

// ParseLine parses a formation line. An empty string is the front line.
func ParseLine(s string) (Line, error) {
	switch s {
	case "", "front":
		return LineFront, nil
	case "back":
		return LineBack, nil
	default:
		return 0, fmt.Errorf("unknown line %q", s)
	}
}

// Slot is an active ability slot.
type Slot int8

const (
	SlotAttack Slot = iota
	SlotSkill
	SlotUltimate
)

func (s Slot) String() string {
	switch s {
	case SlotAttack:
		return "attack"
	case SlotSkill:
		return "skill"
	case SlotUltimate:
		return "ultimate"
	default:
		return fmt.Sprintf("slot(%d)", int8(s))
	}
}

// Stat identifies a stat for effect modifiers and an ability's
// secondary bonus.
type Stat int8

const (
	StatNone Stat = iota
	StatHP
	StatAtk
	StatDef
	StatSpeed
	StatCrit
)

func (s Stat) String() string {
	switch s {
	case StatHP:
		return "hp"
	case StatAtk:
		return "atk"
	case StatDef:
		return "def"
	case StatSpeed:
		return "speed"
	case StatCrit:
		return "crit"
	default:
		return "none"
	}
}
