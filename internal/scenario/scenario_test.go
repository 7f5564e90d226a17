package scenario

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/formula"
	"github.com/udisondev/battlecore/internal/model"
)

var errMissing = errors.New("missing")

type fakeRoster map[string]model.Record

func (f fakeRoster) Record(_ context.Context, id string) (model.Record, error) {
	rec, ok := f[id]
	if !ok {
		return model.Record{}, errMissing
	}
	return rec, nil
}

const duel = `
name: duel
seed: 42
stage:
  world: 2
  level: 5
  difficulty: hard
allies:
  - id: blade
    role: melee_dps
    element: fire
    rarity: epic
    level: 41
    stars: 2
    base: {hp: 1200, atk: 150, def: 40, speed: 30}
    loadout: {basic: strike, skill: flame_slash, ultimate: inferno, passives: [bloodlust]}
enemies:
  - ref: goblin
    id: goblin_1
  - ref: goblin
    id: goblin_2
    line: back
    level: 20
`

func TestParseAndSetup(t *testing.T) {
	s, err := Parse([]byte(duel))
	require.NoError(t, err)
	assert.Equal(t, "duel", s.Name)
	assert.Equal(t, []string{"goblin"}, s.Refs())

	roster := fakeRoster{"goblin": {
		ID: "goblin", Name: "Goblin", Role: model.RoleMeleeDPS, Element: model.ElementWind,
		Level: 10, Stars: 1, Base: model.Stats{HP: 500, Atk: 60},
		Loadout: model.Loadout{Basic: "strike"},
	}}

	setup, stage, err := s.Setup(context.Background(), roster)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), setup.Seed)
	assert.Equal(t, int32(2), stage.World)
	assert.Equal(t, formula.DifficultyHard, stage.Difficulty)

	require.Len(t, setup.Allies, 1)
	blade := setup.Allies[0]
	assert.Equal(t, "blade", blade.Name)
	assert.Equal(t, model.RoleMeleeDPS, blade.Role)
	assert.Equal(t, model.RarityEpic, blade.Rarity)
	assert.Equal(t, int32(150), blade.Base.Atk)
	assert.Equal(t, []string{"bloodlust"}, blade.Loadout.Passives)

	require.Len(t, setup.Enemies, 2)
	assert.Equal(t, "goblin_1", setup.Enemies[0].ID)
	assert.Equal(t, "Goblin", setup.Enemies[0].Name)
	assert.Equal(t, int32(10), setup.Enemies[0].Level)
	assert.Equal(t, model.LineFront, setup.Enemies[0].Line)
	assert.Equal(t, "goblin_2", setup.Enemies[1].ID)
	assert.Equal(t, int32(20), setup.Enemies[1].Level)
	assert.Equal(t, model.LineBack, setup.Enemies[1].Line)

	require.NoError(t, model.ValidateFormations(setup.Allies, setup.Enemies))
}

func TestSetup_Errors(t *testing.T) {
	s, err := Parse([]byte(duel))
	require.NoError(t, err)

	_, _, err = s.Setup(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoRoster)

	_, _, err = s.Setup(context.Background(), fakeRoster{})
	assert.ErrorIs(t, err, errMissing)

	bad, err := Parse([]byte("allies:\n  - id: x\n    role: wizard\n"))
	require.NoError(t, err)
	_, _, err = bad.Setup(context.Background(), nil)
	assert.Error(t, err)

	_, err = Parse([]byte("allies: [:"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(duel), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Enemies, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
