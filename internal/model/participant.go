package model

import "math"

// Stats are a participant's attributes.
// CritRate, CritDamage and Accuracy are percent bonuses on top of the balance base values.
type Stats struct {
	HP         int32   `yaml:"hp"`
	Atk        int32   `yaml:"atk"`
	Def        int32   `yaml:"def"`
	Speed      int32   `yaml:"speed"`
	CritRate   float64 `yaml:"crit_rate"`
	CritDamage float64 `yaml:"crit_damage"`
	Dodge      float64 `yaml:"dodge"`
	Accuracy   float64 `yaml:"accuracy"`
	Morale     float64 `yaml:"morale"`
}

// Add returns the sum of two stat blocks (base + equipment).
// Flat stats saturate at the int32 bounds; use CheckedAdd to detect overflow.
func (s Stats) Add(o Stats) Stats {
	sum, _ := s.CheckedAdd(o)
	return sum
}

// CheckedAdd is Add that also reports whether every flat stat fit in int32.
func (s Stats) CheckedAdd(o Stats) (Stats, bool) {
	hp, okHP := addInt32(s.HP, o.HP)
	atk, okAtk := addInt32(s.Atk, o.Atk)
	def, okDef := addInt32(s.Def, o.Def)
	speed, okSpeed := addInt32(s.Speed, o.Speed)
	return Stats{
		HP:         hp,
		Atk:        atk,
		Def:        def,
		Speed:      speed,
		CritRate:   s.CritRate + o.CritRate,
		CritDamage: s.CritDamage + o.CritDamage,
		Dodge:      s.Dodge + o.Dodge,
		Accuracy:   s.Accuracy + o.Accuracy,
		Morale:     s.Morale + o.Morale,
	}, okHP && okAtk && okDef && okSpeed
}

func addInt32(a, b int32) (int32, bool) {
	sum := int64(a) + int64(b)
	switch {
	case sum > math.MaxInt32:
		return math.MaxInt32, false
	case sum < math.MinInt32:
		return math.MinInt32, false
	}
	return int32(sum), true
}

// Value returns the stat identified by stat.
func (s Stats) Value(stat Stat) float64 {
	switch stat {
	case StatHP:
		return float64(s.HP)
	case StatAtk:
		return float64(s.Atk)
	case StatDef:
		return float64(s.Def)
	case StatSpeed:
		return float64(s.Speed)
	case StatCrit:
		return s.CritRate
	default:
		return 0
	}
}

// Loadout is the set of abilities a participant brings.
type Loadout struct {
	Basic    string   `yaml:"basic"`
	Skill    string   `yaml:"skill"`
	Ultimate string   `yaml:"ultimate"`
	Passives []string `yaml:"passives"`
}

// Participant is a combatant in one battle.
// It is created per battle and owned by that battle alone, so it carries no mutex.
type Participant struct {
	ID      string
	Name    string
	Side    Side
	Role    Role
	Element Element
	Rarity  Rarity
	Level   int32
	Stars   int32
	Line    Line
	Order   int // порядок регистрации в бою
	Base    Stats
	Loadout Loadout

	currentHP int32
	energy    int32
	maxEnergy int32
	cooldowns map[string]int32
}

// NewParticipant builds a participant from a record and its already scaled stats.
// It starts at full HP and zero energy.
func NewParticipant(rec Record, side Side, order int, stats Stats, maxEnergy int32) *Participant {
	if stats.HP < 1 {
		stats.HP = 1
	}
	if maxEnergy < 1 {
		maxEnergy = 1
	}
	return &Participant{
		ID:        rec.ID,
		Name:      rec.Name,
		Side:      side,
		Role:      rec.Role,
		Element:   rec.Element,
		Rarity:    rec.Rarity,
		Level:     rec.Level,
		Stars:     rec.Stars,
		Line:      rec.Line,
		Order:     order,
		Base:      stats,
		Loadout:   rec.Loadout,
		currentHP: stats.HP,
		maxEnergy: maxEnergy,
		cooldowns: make(map[string]int32),
	}
}

// CurrentHP returns the current HP.
func (p *Participant) CurrentHP() int32 { return p.currentHP }

// MaxHP returns the maximum HP.
func (p *Participant) MaxHP() int32 { return p.Base.HP }

// SetCurrentHP sets the current HP, clamped to [0, MaxHP].
func (p *Participant) SetCurrentHP(hp int32) {
	p.currentHP = clamp32(hp, 0, p.Base.HP)
}

// ReduceHP applies damage and returns the HP actually removed.
func (p *Participant) ReduceHP(damage int32) int32 {
	if damage <= 0 {
		return 0
	}
	before := p.currentHP
	p.SetCurrentHP(before - damage)
	return before - p.currentHP
}

// RestoreHP heals and returns the HP actually restored.
// Healing never revives a dead participant.
func (p *Participant) RestoreHP(amount int32) int32 {
	if amount <= 0 || p.IsDead() {
		return 0
	}
	before := p.currentHP
	p.SetCurrentHP(before + amount)
	return p.currentHP - before
}

// IsDead reports whether HP has reached zero.
func (p *Participant) IsDead() bool { return p.currentHP <= 0 }

// HPPercentage returns the current HP as a percentage in [0, 100].
func (p *Participant) HPPercentage() float64 {
	return float64(p.currentHP) * 100 / float64(p.Base.HP)
}

// Energy returns the current energy.
func (p *Participant) Energy() int32 { return p.energy }

// MaxEnergy returns the energy bar capacity.
func (p *Participant) MaxEnergy() int32 { return p.maxEnergy }

// SetEnergy sets energy, clamped to [0, MaxEnergy].
func (p *Participant) SetEnergy(e int32) {
	p.energy = clamp32(e, 0, p.maxEnergy)
}

// AddEnergy changes energy by delta and returns the new value.
func (p *Participant) AddEnergy(delta int32) int32 {
	p.SetEnergy(p.energy + delta)
	return p.energy
}

// IsFullEnergy reports whether the bar is full and the ultimate is ready.
func (p *Participant) IsFullEnergy() bool { return p.energy == p.maxEnergy }

// Cooldown returns the turns left before the ability is ready.
func (p *Participant) Cooldown(abilityID string) int32 { return p.cooldowns[abilityID] }

// SetCooldown sets an ability's cooldown.
func (p *Participant) SetCooldown(abilityID string, turns int32) {
	if turns <= 0 {
		delete(p.cooldowns, abilityID)
		return
	}
	p.cooldowns[abilityID] = turns
}

// TickCooldowns advances every cooldown by one turn.
func (p *Participant) TickCooldowns() {
	for id, cd := range p.cooldowns {
		if cd <= 1 {
			delete(p.cooldowns, id)
			continue
		}
		p.cooldowns[id] = cd - 1
	}
}

func clamp32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
