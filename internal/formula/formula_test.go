package formula

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/model"
)

var allElements = []model.Element{
	model.ElementFire, model.ElementWind, model.ElementElectric,
	model.ElementWater, model.ElementLight, model.ElementDark,
}

func TestElementMultiplier(t *testing.T) {
	b := config.DefaultBalance()

	tests := []struct {
		attacker, defender model.Element
		want               float64
	}{
		{model.ElementFire, model.ElementWind, 1.5},
		{model.ElementWind, model.ElementElectric, 1.5},
		{model.ElementElectric, model.ElementWater, 1.5},
		{model.ElementWater, model.ElementFire, 1.5},
		{model.ElementWind, model.ElementFire, 0.75},
		{model.ElementFire, model.ElementWater, 0.75},
		{model.ElementLight, model.ElementDark, 1.5},
		{model.ElementDark, model.ElementLight, 1.5},
		{model.ElementFire, model.ElementElectric, 1.0},
		{model.ElementFire, model.ElementFire, 1.0},
		{model.ElementLight, model.ElementWater, 1.0},
	}

	for _, tt := range tests {
		got := ElementMultiplier(b, tt.attacker, tt.defender)
		if got != tt.want {
			t.Errorf("ElementMultiplier(%s, %s) = %v, want %v", tt.attacker, tt.defender, got, tt.want)
		}
	}
}

func TestElementMultiplier_AlwaysInSet(t *testing.T) {
	b := config.DefaultBalance()
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.SampledFrom(allElements).Draw(t, "attacker")
		d := rapid.SampledFrom(allElements).Draw(t, "defender")
		m := ElementMultiplier(b, a, d)
		if m != 1.5 && m != 0.75 && m != 1.0 {
			t.Fatalf("multiplier %v not in {1.5, 0.75, 1.0}", m)
		}
	})
}

func TestDamage_FireVsWindScenario(t *testing.T) {
	b := config.DefaultBalance()
	mult, ratio := SlotMultiplier(b, model.SlotAttack)

	dmg := Damage(b, DamageInput{
		Atk:            100,
		Multiplier:     mult,
		SecondaryRatio: ratio,
		Defense:        50,
		ElementMult:    ElementMultiplier(b, model.ElementFire, model.ElementWind),
	})

	// (100×1.0 − 50×0.5) × 1.5 = 112.5 → 112
	assert.Equal(t, int32(112), dmg)
}

func TestDamage_CritMultiplier(t *testing.T) {
	b := config.DefaultBalance()

	dmg := Damage(b, DamageInput{Atk: 100, Multiplier: 1, Defense: 0, ElementMult: 1, Crit: true})
	assert.Equal(t, int32(175), dmg)

	dmg = Damage(b, DamageInput{Atk: 100, Multiplier: 1, Defense: 0, ElementMult: 1, Crit: true, CritDamage: 25})
	assert.Equal(t, int32(200), dmg)
}

func TestDamage_FloorAtOne(t *testing.T) {
	b := config.DefaultBalance()
	rapid.Check(t, func(t *rapid.T) {
		in := DamageInput{
			Atk:         float64(rapid.IntRange(0, 10_000).Draw(t, "atk")),
			Multiplier:  rapid.SampledFrom([]float64{1.0, 1.6, 2.5}).Draw(t, "mult"),
			Defense:     float64(rapid.IntRange(0, 100_000).Draw(t, "def")),
			ElementMult: rapid.SampledFrom([]float64{0.75, 1.0, 1.5}).Draw(t, "elem"),
			Crit:        rapid.Bool().Draw(t, "crit"),
		}
		if got := Damage(b, in); got < 1 {
			t.Fatalf("Damage(%+v) = %d, want >= 1", in, got)
		}
	})
}

func TestSlotMultiplier(t *testing.T) {
	b := config.DefaultBalance()

	m, r := SlotMultiplier(b, model.SlotAttack)
	assert.Equal(t, 1.0, m)
	assert.Equal(t, 0.0, r)

	m, r = SlotMultiplier(b, model.SlotSkill)
	assert.Equal(t, 1.6, m)
	assert.Equal(t, 0.2, r)

	m, r = SlotMultiplier(b, model.SlotUltimate)
	assert.Equal(t, 2.5, m)
	assert.Equal(t, 0.5, r)
}

func TestCritChance(t *testing.T) {
	b := config.DefaultBalance()

	assert.InDelta(t, 18.0, CritChance(b, 0, 100, model.RarityCommon), 1e-9)
	assert.InDelta(t, 23.0, CritChance(b, 0, 100, model.RarityLegendary), 1e-9)
	assert.Equal(t, 100.0, CritChance(b, 50, 2000, model.RarityLegendary), "capped at 100")
	assert.Equal(t, 0.0, CritChance(b, -500, 0, model.RarityCommon), "never negative")
}

func TestHitChance(t *testing.T) {
	b := config.DefaultBalance()

	assert.Equal(t, 100.0, HitChance(b, 0, 0))
	assert.Equal(t, 80.0, HitChance(b, 0, 20))
	assert.Equal(t, 100.0, HitChance(b, 10, 5))
	assert.Equal(t, 5.0, HitChance(b, 0, 500))
}

func TestScaleStats(t *testing.T) {
	b := config.DefaultBalance()
	base := model.Stats{HP: 1000, Atk: 100, Def: 100, Speed: 100, CritRate: 7}

	got := ScaleStats(b, base, 1, 1, model.RarityCommon, model.RoleMeleeDPS)
	assert.Equal(t, int32(1000), got.HP)
	assert.Equal(t, int32(120), got.Atk)
	assert.Equal(t, int32(105), got.Speed)
	assert.Equal(t, 7.0, got.CritRate, "percent stats are not scaled")

	// level 11, 3 stars, rare tank:
	// HP: 1000 × 1.8 × 1.3 × 1.25 × 1.3 = 3802.5 → 3803
	got = ScaleStats(b, base, 11, 3, model.RarityRare, model.RoleTank)
	assert.Equal(t, int32(3803), got.HP)
	// Atk: 100 × 1.8 × 1.3 × 1.25 × 0.8 = 234
	assert.Equal(t, int32(234), got.Atk)
}

func TestScaleStats_Saturates(t *testing.T) {
	b := config.DefaultBalance()
	got := ScaleStats(b, model.Stats{HP: 2_000_000_000, Atk: -2_000_000_000}, model.MaxLevel, 1, model.RarityLegendary, model.RoleTank)
	assert.Equal(t, int32(math.MaxInt32), got.HP)
	assert.Equal(t, int32(math.MinInt32), got.Atk)
}

func TestScaleRecord(t *testing.T) {
	b := config.DefaultBalance()
	rec := model.Record{
		ID: "knight", Level: 11, Stars: 3, Rarity: model.RarityRare, Role: model.RoleTank,
		Base:      model.Stats{HP: 1000, Atk: 100},
		Equipment: model.Stats{HP: 200, Atk: 6},
	}

	got, err := ScaleRecord(b, rec)
	require.NoError(t, err)
	assert.Equal(t, int32(3803+200), got.HP)
	assert.Equal(t, int32(234+6), got.Atk)

	rec.Level = model.MaxLevel
	rec.Base.HP = 2_000_000_000
	_, err = ScaleRecord(b, rec)
	assert.ErrorIs(t, err, ErrStatOverflow)
	assert.ErrorIs(t, err, model.ErrMalformedRecord)

	rec.Level = 1
	rec.Base.HP = math.MaxInt32 / 4
	rec.Equipment.HP = math.MaxInt32
	_, err = ScaleRecord(b, rec)
	assert.ErrorIs(t, err, ErrStatOverflow)
}

func TestEnergyGain(t *testing.T) {
	b := config.DefaultBalance()

	assert.Equal(t, int32(20), EnergyGain(b, 0, 0))
	assert.Equal(t, int32(30), EnergyGain(b, 100, 0))
	assert.Equal(t, int32(25), EnergyGain(b, 50, 0))
	assert.Equal(t, int32(15), EnergyGain(b, 0, -5))
	assert.Equal(t, int32(0), EnergyGain(b, 0, -500))

	assert.InDelta(t, -5.0, EnergyVariance(b, 0), 1e-9)
	assert.InDelta(t, 0.0, EnergyVariance(b, 0.5), 1e-9)
}

func TestReward(t *testing.T) {
	b := config.DefaultBalance()

	tests := []struct {
		name       string
		difficulty Difficulty
		turns      int
		wantExp    int64
		wantGold   int64
	}{
		// base exp = 50×2 + 12×10 = 220, base gold = 30×2 + 5×10 = 110
		{"fast clear", DifficultyNormal, 10, 330, 165},
		{"quick clear", DifficultyNormal, 20, 264, 132},
		{"slow clear", DifficultyNormal, 21, 220, 110},
		{"hard slow", DifficultyHard, 50, 330, 165},
		{"nightmare fast", DifficultyNightmare, 3, 660, 330},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, gold := Reward(b, 2, 10, tt.difficulty, tt.turns)
			assert.Equal(t, tt.wantExp, exp)
			assert.Equal(t, tt.wantGold, gold)
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("")
	assert.NoError(t, err)
	assert.Equal(t, DifficultyNormal, d)

	d, err = ParseDifficulty("nightmare")
	assert.NoError(t, err)
	assert.Equal(t, DifficultyNightmare, d)

	_, err = ParseDifficulty("insane")
	assert.Error(t, err)
}
