package data

import "github.com/udisondev/battlecore/internal/model"

// DefaultBasicAttack replaces unknown basic attack ids.
const DefaultBasicAttack = "strike"

// effectDefs — статус-эффекты (Go-литералы вместо сканирования каталогов).
var effectDefs = []*EffectDef{
	// DoT
	{ID: "burn", Name: "Burn", Stacking: StackRefresh, Kind: DoT{}},
	{ID: "poison", Name: "Poison", Stacking: StackAdditive, MaxStacks: 3, Kind: DoT{}},
	{ID: "bleed", Name: "Bleed", Stacking: StackReplace, Kind: DoT{}},

	// Control
	{ID: "stun", Name: "Stun", Stacking: StackRefresh, Kind: Control{Scope: ScopeFullStop}},
	{ID: "freeze", Name: "Freeze", Stacking: StackRefresh, Kind: Control{Scope: ScopeFullStop}},
	{ID: "sleep", Name: "Sleep", Stacking: StackRefresh, Kind: Control{Scope: ScopeFullStop, BreaksOnDamage: true}},
	{ID: "root", Name: "Root", Stacking: StackRefresh, Kind: Control{Scope: ScopeMovement}},
	{ID: "silence", Name: "Silence", Stacking: StackRefresh, Kind: Control{Scope: ScopeAbilities}},
	{ID: "disarm", Name: "Disarm", Stacking: StackRefresh, Kind: Control{Scope: ScopeBasic}},
	{ID: "fear", Name: "Fear", Stacking: StackRefresh, Kind: Control{Scope: ScopeFear}},

	// Debuff
	{ID: "atk_down", Name: "Weaken", Stacking: StackReplace, Kind: Debuff{Stat: model.StatAtk}},
	{ID: "def_down", Name: "Armor Break", Stacking: StackAdditive, MaxStacks: 2, Kind: Debuff{Stat: model.StatDef}},
	{ID: "speed_down", Name: "Slow", Stacking: StackReplace, Kind: Debuff{Stat: model.StatSpeed}},
	{ID: "crit_down", Name: "Blind", Stacking: StackReplace, Kind: Debuff{Stat: model.StatCrit}},

	// Buff
	{ID: "atk_up", Name: "Might", Stacking: StackReplace, Kind: Buff{Stat: model.StatAtk}},
	{ID: "def_up", Name: "Guard", Stacking: StackReplace, Kind: Buff{Stat: model.StatDef}},
	{ID: "speed_up", Name: "Haste", Stacking: StackReplace, Kind: Buff{Stat: model.StatSpeed}},
	{ID: "crit_up", Name: "Focus", Stacking: StackAdditive, MaxStacks: 3, Kind: Buff{Stat: model.StatCrit}},
	{ID: "regen", Name: "Regeneration", Stacking: StackRefresh, Kind: Regen{}},
}

// abilityDefs — активные способности.
var abilityDefs = []*AbilityDef{
	// Базовые атаки
	{ID: "strike", Name: "Strike", Slot: model.SlotAttack, Target: TargetEnemy, UnlockLevel: 1},
	{ID: "quick_shot", Name: "Quick Shot", Slot: model.SlotAttack, Target: TargetEnemy, UnlockLevel: 1},
	{ID: "smite", Name: "Smite", Slot: model.SlotAttack, Target: TargetEnemy, UnlockLevel: 1},
	{ID: "shield_slam", Name: "Shield Slam", Slot: model.SlotAttack, Target: TargetEnemy, UnlockLevel: 1},

	// Навыки
	{
		ID: "flame_slash", Name: "Flame Slash", Slot: model.SlotSkill, Target: TargetEnemy,
		UnlockLevel: 11, Cooldown: 3, Secondary: model.StatSpeed,
		Effects: []EffectDescriptor{{EffectID: "burn", Magnitude: 30, Duration: 2, Chance: 60}},
	},
	{
		ID: "gale_arrows", Name: "Gale Arrows", Slot: model.SlotSkill, Target: TargetAllEnemies,
		UnlockLevel: 11, Cooldown: 4, Secondary: model.StatSpeed,
		Effects: []EffectDescriptor{{EffectID: "speed_down", Magnitude: 0.2, Duration: 2, Chance: 50}},
	},
	{
		ID: "thunder_lance", Name: "Thunder Lance", Slot: model.SlotSkill, Target: TargetEnemy,
		UnlockLevel: 11, Cooldown: 3, Secondary: model.StatAtk, Movement: true,
		Effects: []EffectDescriptor{{EffectID: "stun", Duration: 1, Chance: 35}},
	},
	{
		ID: "tidal_wave", Name: "Tidal Wave", Slot: model.SlotSkill, Target: TargetAllEnemies,
		UnlockLevel: 11, Cooldown: 4, Secondary: model.StatDef,
		Effects: []EffectDescriptor{{EffectID: "def_down", Magnitude: 0.15, Duration: 2}},
	},
	{
		ID: "shield_bash", Name: "Shield Bash", Slot: model.SlotSkill, Target: TargetEnemy,
		UnlockLevel: 11, Cooldown: 3, Secondary: model.StatDef, Movement: true,
		Effects: []EffectDescriptor{{EffectID: "stun", Duration: 1, Chance: 50}},
	},
	{
		ID: "holy_light", Name: "Holy Light", Slot: model.SlotSkill, Kind: KindHeal, Target: TargetAlly,
		UnlockLevel: 11, Cooldown: 2, Secondary: model.StatDef,
	},
	{
		ID: "shadow_bite", Name: "Shadow Bite", Slot: model.SlotSkill, Target: TargetEnemy,
		UnlockLevel: 11, Cooldown: 2, Secondary: model.StatCrit,
		Effects: []EffectDescriptor{
			{EffectID: "poison", Magnitude: 20, Duration: 3},
			{EffectID: "bleed", Magnitude: 15, Duration: 2, Chance: 40},
		},
	},
	{
		ID: "war_cry", Name: "War Cry", Slot: model.SlotSkill, Kind: KindSupport, Target: TargetSelf,
		UnlockLevel: 11, Cooldown: 5,
		Effects: []EffectDescriptor{
			{EffectID: "atk_up", Magnitude: 0.2, Duration: 3, To: RecipientAllies},
		},
	},
	{
		ID: "lullaby", Name: "Lullaby", Slot: model.SlotSkill, Target: TargetEnemy,
		UnlockLevel: 11, Cooldown: 4,
		Effects: []EffectDescriptor{{EffectID: "sleep", Duration: 2, Chance: 70}},
	},
	{
		ID: "hex", Name: "Hex", Slot: model.SlotSkill, Target: TargetEnemy,
		UnlockLevel: 11, Cooldown: 4,
		Effects: []EffectDescriptor{{EffectID: "silence", Duration: 2, Chance: 75}},
	},
	{
		ID: "disarming_blow", Name: "Disarming Blow", Slot: model.SlotSkill, Target: TargetEnemy,
		UnlockLevel: 11, Cooldown: 4, Secondary: model.StatAtk,
		Effects: []EffectDescriptor{{EffectID: "disarm", Duration: 2, Chance: 60}},
	},
	{
		ID: "frost_bolt", Name: "Frost Bolt", Slot: model.SlotSkill, Target: TargetEnemy,
		UnlockLevel: 11, Cooldown: 4, Secondary: model.StatSpeed,
		Effects: []EffectDescriptor{{EffectID: "freeze", Duration: 1, Chance: 40}},
	},
	{
		ID: "entangle", Name: "Entangle", Slot: model.SlotSkill, Target: TargetAllEnemies,
		UnlockLevel: 11, Cooldown: 5,
		Effects: []EffectDescriptor{{EffectID: "root", Duration: 2, Chance: 80}},
	},
	{
		ID: "terrify", Name: "Terrify", Slot: model.SlotSkill, Target: TargetEnemy,
		UnlockLevel: 11, Cooldown: 5, Secondary: model.StatCrit,
		Effects: []EffectDescriptor{{EffectID: "fear", Duration: 1, Chance: 65}},
	},

	// Ультимейты
	{
		ID: "inferno", Name: "Inferno", Slot: model.SlotUltimate, Target: TargetAllEnemies,
		UnlockLevel: 41, Secondary: model.StatAtk,
		Effects: []EffectDescriptor{{EffectID: "burn", Magnitude: 50, Duration: 3}},
	},
	{
		ID: "tempest", Name: "Tempest", Slot: model.SlotUltimate, Target: TargetAllEnemies,
		UnlockLevel: 41, Secondary: model.StatSpeed,
		Effects: []EffectDescriptor{{EffectID: "speed_up", Magnitude: 0.25, Duration: 2, To: RecipientSelf}},
	},
	{
		ID: "thunderstorm", Name: "Thunderstorm", Slot: model.SlotUltimate, Target: TargetAllEnemies,
		UnlockLevel: 41, Secondary: model.StatAtk,
		Effects: []EffectDescriptor{{EffectID: "stun", Duration: 1, Chance: 25}},
	},
	{
		ID: "tsunami", Name: "Tsunami", Slot: model.SlotUltimate, Target: TargetAllEnemies,
		UnlockLevel: 41, Secondary: model.StatDef,
		Effects: []EffectDescriptor{{EffectID: "atk_down", Magnitude: 0.25, Duration: 2}},
	},
	{
		ID: "judgement", Name: "Judgement", Slot: model.SlotUltimate, Kind: KindHeal, Target: TargetAllAllies,
		UnlockLevel: 41, Secondary: model.StatDef,
		Effects: []EffectDescriptor{{EffectID: "regen", Magnitude: 40, Duration: 3}},
	},
	{
		ID: "eclipse", Name: "Eclipse", Slot: model.SlotUltimate, Target: TargetAllEnemies,
		UnlockLevel: 41, Secondary: model.StatCrit,
		Effects: []EffectDescriptor{
			{EffectID: "def_down", Magnitude: 0.2, Duration: 2},
			{EffectID: "poison", Magnitude: 25, Duration: 3},
		},
	},
	{
		ID: "bulwark", Name: "Bulwark", Slot: model.SlotUltimate, Kind: KindSupport, Target: TargetSelf,
		UnlockLevel: 41,
		Effects: []EffectDescriptor{
			{EffectID: "def_up", Magnitude: 0.35, Duration: 3, To: RecipientAllies},
			{EffectID: "regen", Magnitude: 60, Duration: 3, To: RecipientSelf},
		},
	},
}

// passiveDefs — пассивные способности.
var passiveDefs = []*PassiveDef{
	{
		ID: "battle_hymn", Name: "Battle Hymn", UnlockLevel: 1, Trigger: TriggerBattleStart,
		Effects: []EffectDescriptor{{EffectID: "speed_up", Magnitude: 0.1, Duration: 2, To: RecipientAllies}},
	},
	{
		ID: "last_stand", Name: "Last Stand", UnlockLevel: 81, Trigger: TriggerHPThreshold,
		Threshold: 30, Cooldown: 12, HealPercent: 20,
		Effects: []EffectDescriptor{{EffectID: "def_up", Magnitude: 0.3, Duration: 3, To: RecipientSelf}},
	},
	{
		ID: "second_wind", Name: "Second Wind", UnlockLevel: 121, Trigger: TriggerHPThreshold,
		Threshold: 50, Cooldown: 12, Dispel: true,
		Effects: []EffectDescriptor{{EffectID: "regen", Magnitude: 35, Duration: 3, To: RecipientSelf}},
	},
	{
		ID: "vengeance", Name: "Vengeance", UnlockLevel: 81, Trigger: TriggerAllyDown, Cooldown: 5,
		Effects: []EffectDescriptor{{EffectID: "atk_up", Magnitude: 0.3, Duration: 3, To: RecipientSelf}},
	},
	{
		ID: "bloodlust", Name: "Bloodlust", UnlockLevel: 151, Trigger: TriggerEnemyDown, Cooldown: 3,
		EnergyGain: 30,
	},
}
