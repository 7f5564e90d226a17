package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/model"
)

func TestEvaluate_HPThresholdEdge(t *testing.T) {
	pm := NewPassiveManager(testRegistry(t))
	owner := newTestParticipant("o", model.SideAlly, 121, model.Stats{HP: 100}, model.Loadout{Passives: []string{"second_wind"}})
	arena := newTestArena(1, owner)

	owner.SetCurrentHP(60)
	assert.Empty(t, pm.Evaluate(arena, owner, EventHPChanged))

	owner.SetCurrentHP(40)
	firings := pm.Evaluate(arena, owner, EventHPChanged)
	require.Len(t, firings, 1)
	assert.Equal(t, "second_wind", firings[0].PassiveID)
	assert.True(t, arena.Effects(owner).Has("regen"))

	// Condition still true: no re-fire.
	arena.turn = 2
	assert.Empty(t, pm.Evaluate(arena, owner, EventHPChanged))

	// New edge inside the 12-round cooldown is consumed.
	owner.SetCurrentHP(60)
	pm.Evaluate(arena, owner, EventHPChanged)
	arena.turn = 5
	owner.SetCurrentHP(40)
	assert.Empty(t, pm.Evaluate(arena, owner, EventHPChanged))

	arena.turn = 20
	assert.Empty(t, pm.Evaluate(arena, owner, EventHPChanged), "consumed edge must not fire later")

	owner.SetCurrentHP(70)
	pm.Evaluate(arena, owner, EventHPChanged)
	owner.SetCurrentHP(30)
	assert.Len(t, pm.Evaluate(arena, owner, EventHPChanged), 1)
}

func TestEvaluate_SecondWindDispels(t *testing.T) {
	reg := testRegistry(t)
	pm := NewPassiveManager(reg)
	owner := newTestParticipant("o", model.SideAlly, 121, model.Stats{HP: 100}, model.Loadout{Passives: []string{"second_wind"}})
	arena := newTestArena(1, owner)

	arena.Effects(owner).Apply(effectDef(t, reg, "poison"), 10, 3, "x")
	owner.SetCurrentHP(50)

	firings := pm.Evaluate(arena, owner, EventHPChanged)
	require.Len(t, firings, 1)
	assert.Equal(t, []string{"poison"}, firings[0].Dispelled)
	assert.False(t, arena.Effects(owner).Has("poison"))
}

func TestEvaluate_LastStandHeals(t *testing.T) {
	pm := NewPassiveManager(testRegistry(t))
	owner := newTestParticipant("o", model.SideAlly, 81, model.Stats{HP: 1000}, model.Loadout{Passives: []string{"last_stand"}})
	arena := newTestArena(1, owner)

	owner.SetCurrentHP(250)
	firings := pm.Evaluate(arena, owner, EventHPChanged)
	require.Len(t, firings, 1)
	assert.Equal(t, int32(200), firings[0].Healed)
	assert.Equal(t, int32(450), owner.CurrentHP())
	assert.True(t, arena.Effects(owner).Has("def_up"))
}

func TestEvaluate_BattleStartOnce(t *testing.T) {
	pm := NewPassiveManager(testRegistry(t))
	owner := newTestParticipant("o", model.SideAlly, 1, model.Stats{HP: 100}, model.Loadout{Passives: []string{"battle_hymn"}})
	ally := newTestParticipant("a", model.SideAlly, 1, model.Stats{HP: 100}, model.Loadout{})
	arena := newTestArena(1, owner, ally)

	require.Len(t, pm.Evaluate(arena, owner, EventBattleStart), 1)
	assert.True(t, arena.Effects(ally).Has("speed_up"))

	assert.Empty(t, pm.Evaluate(arena, owner, EventHPChanged))
	assert.Empty(t, pm.Evaluate(arena, owner, EventBattleStart))
}

func TestEvaluate_DownTriggers(t *testing.T) {
	pm := NewPassiveManager(testRegistry(t))
	avenger := newTestParticipant("v", model.SideAlly, 81, model.Stats{HP: 100}, model.Loadout{Passives: []string{"vengeance"}})
	hunter := newTestParticipant("h", model.SideAlly, 151, model.Stats{HP: 100}, model.Loadout{Passives: []string{"bloodlust"}})
	friend := newTestParticipant("f", model.SideAlly, 1, model.Stats{HP: 100}, model.Loadout{})
	e1 := newTestParticipant("e1", model.SideEnemy, 1, model.Stats{HP: 100}, model.Loadout{})
	e2 := newTestParticipant("e2", model.SideEnemy, 1, model.Stats{HP: 100}, model.Loadout{})
	arena := newTestArena(1, avenger, hunter, friend, e1, e2)

	assert.Empty(t, pm.Evaluate(arena, avenger, EventHPChanged))
	assert.Empty(t, pm.Evaluate(arena, hunter, EventHPChanged))

	friend.SetCurrentHP(0)
	e1.SetCurrentHP(0)

	fv := pm.Evaluate(arena, avenger, EventHPChanged)
	require.Len(t, fv, 1)
	assert.Equal(t, "vengeance", fv[0].PassiveID)

	fh := pm.Evaluate(arena, hunter, EventHPChanged)
	require.Len(t, fh, 1)
	assert.Equal(t, int32(30), fh[0].Energy)
	assert.Equal(t, int32(30), hunter.Energy())

	// Second enemy falls after the 3-round cooldown.
	arena.turn = 4
	e2.SetCurrentHP(0)
	assert.Len(t, pm.Evaluate(arena, hunter, EventHPChanged), 1)
	assert.Empty(t, pm.Evaluate(arena, avenger, EventHPChanged))
}

func TestEvaluate_LockedAndUnknownPassives(t *testing.T) {
	pm := NewPassiveManager(testRegistry(t))
	owner := newTestParticipant("o", model.SideAlly, 80, model.Stats{HP: 100}, model.Loadout{Passives: []string{"last_stand", "no_such_passive"}})
	arena := newTestArena(1, owner)

	owner.SetCurrentHP(10)
	assert.Empty(t, pm.Evaluate(arena, owner, EventHPChanged))
	assert.Equal(t, int32(10), owner.CurrentHP())
}

func TestEvaluate_DeadOwnerNeverFires(t *testing.T) {
	pm := NewPassiveManager(testRegistry(t))
	owner := newTestParticipant("o", model.SideAlly, 81, model.Stats{HP: 100}, model.Loadout{Passives: []string{"last_stand"}})
	arena := newTestArena(1, owner)

	owner.SetCurrentHP(0)
	assert.Nil(t, pm.Evaluate(arena, owner, EventHPChanged))
}
