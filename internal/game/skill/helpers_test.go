package skill

import (
	"math/rand/v2"
	"testing"

	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
)

// testArena is a minimal battle view for manager tests.
type testArena struct {
	effects map[string]*EffectManager
	sides   map[model.Side][]*model.Participant
	rng     *rand.Rand
	turn    int
}

func newTestArena(seed uint64, ps ...*model.Participant) *testArena {
	a := &testArena{
		effects: make(map[string]*EffectManager),
		sides:   make(map[model.Side][]*model.Participant),
		rng:     rand.New(rand.NewPCG(seed, seed)),
		turn:    1,
	}
	for _, p := range ps {
		a.sides[p.Side] = append(a.sides[p.Side], p)
		a.effects[p.ID] = NewEffectManager()
	}
	return a
}

func (a *testArena) Effects(p *model.Participant) *EffectManager { return a.effects[p.ID] }
func (a *testArena) Side(side model.Side) []*model.Participant   { return a.sides[side] }
func (a *testArena) Rand() *rand.Rand                            { return a.rng }
func (a *testArena) Turn() int                                   { return a.turn }

// neutralBalance removes randomness from crits and energy.
func neutralBalance() config.Balance {
	b := config.DefaultBalance()
	b.CritBase = 0
	b.CritSpeedFactor = 0
	b.CritRarityBonus = config.RarityTable{}
	b.EnergyVariance = 0
	return b
}

func newTestParticipant(id string, side model.Side, level int32, stats model.Stats, loadout model.Loadout) *model.Participant {
	rec := model.Record{
		ID:      id,
		Name:    id,
		Level:   level,
		Stars:   1,
		Base:    stats,
		Loadout: loadout,
	}
	return model.NewParticipant(rec, side, 0, stats, 100)
}

func testRegistry(t *testing.T) *data.Registry {
	t.Helper()
	reg, err := data.DefaultRegistry()
	if err != nil {
		t.Fatalf("loading registry: %v", err)
	}
	return reg
}

func effectDef(t *testing.T, reg *data.Registry, id string) *data.EffectDef {
	t.Helper()
	def, err := reg.Effect(id)
	if err != nil {
		t.Fatalf("effect %s: %v", id, err)
	}
	return def
}
