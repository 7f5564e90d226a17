package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(id string) Record {
	return Record{
		ID:      id,
		Name:    "Test " + id,
		Role:    RoleMeleeDPS,
		Element: ElementFire,
		Rarity:  RarityCommon,
		Level:   1,
		Stars:   1,
		Base:    Stats{HP: 1000, Atk: 100, Def: 50, Speed: 100},
	}
}

func TestParticipant_HPClamped(t *testing.T) {
	p := NewParticipant(testRecord("a"), SideAlly, 0, Stats{HP: 1000, Atk: 100}, 100)

	assert.Equal(t, int32(1000), p.CurrentHP())

	assert.Equal(t, int32(300), p.ReduceHP(300))
	assert.Equal(t, int32(700), p.CurrentHP())

	assert.Equal(t, int32(700), p.ReduceHP(5000), "overkill only removes remaining HP")
	assert.Equal(t, int32(0), p.CurrentHP())
	assert.True(t, p.IsDead())

	assert.Equal(t, int32(0), p.RestoreHP(500), "dead participants are not healed")

	p.SetCurrentHP(990)
	assert.Equal(t, int32(10), p.RestoreHP(500))
	assert.Equal(t, int32(1000), p.CurrentHP())

	p.SetCurrentHP(-5)
	assert.Equal(t, int32(0), p.CurrentHP())
}

func TestParticipant_EnergyClamped(t *testing.T) {
	p := NewParticipant(testRecord("a"), SideAlly, 0, Stats{HP: 10}, 100)

	assert.Equal(t, int32(0), p.Energy())
	assert.Equal(t, int32(60), p.AddEnergy(60))
	assert.Equal(t, int32(100), p.AddEnergy(60))
	assert.True(t, p.IsFullEnergy())
	assert.Equal(t, int32(0), p.AddEnergy(-500))
}

func TestParticipant_Cooldowns(t *testing.T) {
	p := NewParticipant(testRecord("a"), SideAlly, 0, Stats{HP: 10}, 100)

	p.SetCooldown("flame_slash", 2)
	assert.Equal(t, int32(2), p.Cooldown("flame_slash"))

	p.TickCooldowns()
	assert.Equal(t, int32(1), p.Cooldown("flame_slash"))

	p.TickCooldowns()
	assert.Equal(t, int32(0), p.Cooldown("flame_slash"))

	p.TickCooldowns()
	assert.Equal(t, int32(0), p.Cooldown("flame_slash"))
}

func TestValidateFormations(t *testing.T) {
	tests := []struct {
		name    string
		allies  []Record
		enemies []Record
		wantErr error
	}{
		{
			name:    "valid",
			allies:  []Record{testRecord("a")},
			enemies: []Record{testRecord("b")},
		},
		{
			name:    "empty allies",
			enemies: []Record{testRecord("b")},
			wantErr: ErrEmptyFormation,
		},
		{
			name:    "empty enemies",
			allies:  []Record{testRecord("a")},
			wantErr: ErrEmptyFormation,
		},
		{
			name: "too large",
			allies: []Record{
				testRecord("a1"), testRecord("a2"), testRecord("a3"),
				testRecord("a4"), testRecord("a5"), testRecord("a6"),
			},
			enemies: []Record{testRecord("b")},
			wantErr: ErrFormationTooLarge,
		},
		{
			name:    "duplicate across sides",
			allies:  []Record{testRecord("x")},
			enemies: []Record{testRecord("x")},
			wantErr: ErrDuplicateParticipant,
		},
		{
			name:    "malformed level",
			allies:  []Record{func() Record { r := testRecord("a"); r.Level = 0; return r }()},
			enemies: []Record{testRecord("b")},
			wantErr: ErrMalformedRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormations(tt.allies, tt.enemies)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRecordValidate_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
		ok     bool
	}{
		{"valid", func(*Record) {}, true},
		{"max level", func(r *Record) { r.Level = MaxLevel }, true},
		{"level zero", func(r *Record) { r.Level = 0 }, false},
		{"level too high", func(r *Record) { r.Level = math.MaxInt32 }, false},
		{"stars zero", func(r *Record) { r.Stars = 0 }, false},
		{"stars too high", func(r *Record) { r.Stars = MaxStars + 1 }, false},
		{"equipment overflow", func(r *Record) {
			r.Base.Def = math.MaxInt32
			r.Equipment.Def = 1
		}, false},
		{"equipment drains hp", func(r *Record) { r.Equipment.HP = -1000 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord("a")
			tt.mutate(&rec)
			err := rec.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestStats_CheckedAdd(t *testing.T) {
	sum, ok := Stats{HP: 10, Atk: 5, CritRate: 1}.CheckedAdd(Stats{HP: 5, Atk: -2, CritRate: 2})
	assert.True(t, ok)
	assert.Equal(t, Stats{HP: 15, Atk: 3, CritRate: 3}, sum)

	sum, ok = Stats{Atk: math.MaxInt32}.CheckedAdd(Stats{Atk: 1})
	assert.False(t, ok)
	assert.Equal(t, int32(math.MaxInt32), sum.Atk, "saturates")
	assert.Equal(t, int32(math.MinInt32), Stats{Def: math.MinInt32}.Add(Stats{Def: -1}).Def)
}

func TestParseEnums(t *testing.T) {
	role, err := ParseRole("ranged_dps")
	require.NoError(t, err)
	assert.Equal(t, RoleRangedDPS, role)

	el, err := ParseElement("electric")
	require.NoError(t, err)
	assert.Equal(t, ElementElectric, el)

	r, err := ParseRarity("legendary")
	require.NoError(t, err)
	assert.Equal(t, RarityLegendary, r)

	line, err := ParseLine("")
	require.NoError(t, err)
	assert.Equal(t, LineFront, line)

	_, err = ParseElement("ice")
	assert.Error(t, err)
}
