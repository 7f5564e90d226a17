package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/model"
)

func TestApply_Stacking(t *testing.T) {
	reg := testRegistry(t)

	t.Run("replace", func(t *testing.T) {
		m := NewEffectManager()
		bleed := effectDef(t, reg, "bleed")

		assert.Equal(t, ApplyAdded, m.Apply(bleed, 15, 2, "a"))
		assert.Equal(t, ApplyReplaced, m.Apply(bleed, 30, 1, "b"))

		se, ok := m.Find("bleed")
		require.True(t, ok)
		assert.Equal(t, 30.0, se.Magnitude)
		assert.Equal(t, int32(1), se.Remaining)
		assert.Equal(t, "b", se.SourceID)
		assert.Equal(t, 1, m.Count())
	})

	t.Run("refresh keeps magnitude", func(t *testing.T) {
		m := NewEffectManager()
		burn := effectDef(t, reg, "burn")

		m.Apply(burn, 30, 2, "a")
		assert.Equal(t, ApplyRefreshed, m.Apply(burn, 50, 4, "b"))
		m.Apply(burn, 10, 1, "c")

		se, _ := m.Find("burn")
		assert.Equal(t, 30.0, se.Magnitude)
		assert.Equal(t, int32(4), se.Remaining)
	})

	t.Run("additive capped at max stacks", func(t *testing.T) {
		m := NewEffectManager()
		poison := effectDef(t, reg, "poison")

		for range 5 {
			m.Apply(poison, 20, 3, "a")
		}

		se, _ := m.Find("poison")
		assert.Equal(t, int32(3), se.Stacks)
		assert.Equal(t, 60.0, se.Magnitude)
		assert.Equal(t, 1, m.Count())
	})

	t.Run("zero duration rejected", func(t *testing.T) {
		m := NewEffectManager()
		assert.Equal(t, ApplyRejected, m.Apply(effectDef(t, reg, "stun"), 0, 0, "a"))
		assert.Zero(t, m.Count())
	})
}

func TestTick_DoTAndExpiry(t *testing.T) {
	reg := testRegistry(t)
	holder := newTestParticipant("h", model.SideAlly, 1, model.Stats{HP: 1000}, model.Loadout{})
	m := NewEffectManager()
	m.Apply(effectDef(t, reg, "burn"), 30, 2, "src")

	r1 := m.Tick(holder)
	assert.Equal(t, int32(30), r1.Damage)
	assert.Equal(t, int32(970), holder.CurrentHP())
	assert.Empty(t, r1.Expired)
	require.Len(t, r1.Entries, 1)
	assert.Equal(t, "src", r1.Entries[0].SourceID)

	r2 := m.Tick(holder)
	assert.Equal(t, int32(940), holder.CurrentHP())
	assert.Equal(t, []string{"burn"}, r2.Expired)
	assert.Zero(t, m.Count())

	r3 := m.Tick(holder)
	assert.Zero(t, r3.Damage)
}

func TestTick_RegenClampedToMax(t *testing.T) {
	reg := testRegistry(t)
	holder := newTestParticipant("h", model.SideAlly, 1, model.Stats{HP: 100}, model.Loadout{})
	holder.SetCurrentHP(90)

	m := NewEffectManager()
	m.Apply(effectDef(t, reg, "regen"), 40, 2, "h")
	r := m.Tick(holder)

	assert.Equal(t, int32(10), r.Healed)
	assert.Equal(t, int32(100), holder.CurrentHP())
}

func TestTick_LatchesOneTurnStun(t *testing.T) {
	reg := testRegistry(t)
	holder := newTestParticipant("h", model.SideAlly, 1, model.Stats{HP: 100}, model.Loadout{})
	m := NewEffectManager()
	m.Apply(effectDef(t, reg, "stun"), 0, 1, "x")
	assert.True(t, m.IsControlled())

	r := m.Tick(holder)
	assert.Equal(t, []string{"stun"}, r.Expired)
	assert.False(t, m.Has("stun"))
	assert.True(t, m.Restriction().Has(RestrictAll), "stun must block the turn it expires in")

	m.EndTurn()
	assert.False(t, m.IsControlled())
}

func TestRestriction_Scopes(t *testing.T) {
	reg := testRegistry(t)
	m := NewEffectManager()
	m.Apply(effectDef(t, reg, "silence"), 0, 2, "x")
	m.Apply(effectDef(t, reg, "root"), 0, 2, "x")

	r := m.Restriction()
	assert.True(t, r.Has(RestrictAbility))
	assert.True(t, r.Has(RestrictMovement))
	assert.False(t, r.Has(RestrictAll))
	assert.False(t, r.Has(RestrictBasic))
}

func TestStatMultiplier(t *testing.T) {
	reg := testRegistry(t)
	m := NewEffectManager()
	assert.Equal(t, 1.0, m.StatMultiplier(model.StatAtk))

	m.Apply(effectDef(t, reg, "atk_up"), 0.2, 2, "x")
	m.Apply(effectDef(t, reg, "atk_down"), 0.5, 2, "y")
	assert.InDelta(t, 0.6, m.StatMultiplier(model.StatAtk), 1e-9)
	assert.Equal(t, 1.0, m.StatMultiplier(model.StatDef))

	defDown := effectDef(t, reg, "def_down")
	m.Apply(defDown, 0.6, 2, "y")
	m.Apply(defDown, 0.6, 2, "y")
	assert.Equal(t, minStatMultiplier, m.StatMultiplier(model.StatDef))
}

func TestBreakOnDamage_OnlySleep(t *testing.T) {
	reg := testRegistry(t)
	m := NewEffectManager()
	m.Apply(effectDef(t, reg, "sleep"), 0, 2, "x")
	m.Apply(effectDef(t, reg, "stun"), 0, 2, "x")

	assert.Equal(t, []string{"sleep"}, m.BreakOnDamage())
	assert.True(t, m.Has("stun"))
	assert.Nil(t, m.BreakOnDamage())
}

func TestDispel_KeepsBuffs(t *testing.T) {
	reg := testRegistry(t)
	m := NewEffectManager()
	m.Apply(effectDef(t, reg, "poison"), 20, 3, "x")
	m.Apply(effectDef(t, reg, "fear"), 0, 1, "x")
	m.Apply(effectDef(t, reg, "def_down"), 0.2, 2, "x")
	m.Apply(effectDef(t, reg, "atk_up"), 0.2, 2, "y")
	m.Apply(effectDef(t, reg, "regen"), 10, 2, "y")

	removed := m.Dispel()
	assert.ElementsMatch(t, []string{"poison", "fear", "def_down"}, removed)

	ids := make([]string, 0, m.Count())
	for _, se := range m.Active() {
		ids = append(ids, se.ID())
	}
	assert.Equal(t, []string{"atk_up", "regen"}, ids)
	assert.False(t, m.IsControlled())
}
