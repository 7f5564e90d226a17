// Package scenario loads battle scenarios from YAML files.
//
// A scenario lists both formations either inline or by reference to a
// roster record (heroes and monsters stored in the database), plus the seed
// and the stage used for rewards.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/battlecore/internal/formula"
	"github.com/udisondev/battlecore/internal/game/combat"
	"github.com/udisondev/battlecore/internal/model"
)

// ErrNoRoster is returned when a scenario references roster records but no
// RecordSource was given.
var ErrNoRoster = errors.New("scenario references roster records but no roster is configured")

// RecordSource looks up stored hero/monster records by id.
type RecordSource interface {
	Record(ctx context.Context, id string) (model.Record, error)
}

// Scenario is a parsed scenario file.
type Scenario struct {
	Name    string  `yaml:"name"`
	Seed    uint64  `yaml:"seed"`
	Stage   Stage   `yaml:"stage"`
	Allies  []Entry `yaml:"allies"`
	Enemies []Entry `yaml:"enemies"`
}

// Stage is the reward context of a scenario.
type Stage struct {
	World      int32  `yaml:"world"`
	Level      int32  `yaml:"level"`
	Difficulty string `yaml:"difficulty"`
}

// Entry is one formation slot. With Ref set, the record is loaded from the
// roster and non-zero inline fields override it.
type Entry struct {
	Ref       string        `yaml:"ref"`
	ID        string        `yaml:"id"`
	Name      string        `yaml:"name"`
	Role      string        `yaml:"role"`
	Element   string        `yaml:"element"`
	Rarity    string        `yaml:"rarity"`
	Level     int32         `yaml:"level"`
	Stars     int32         `yaml:"stars"`
	Line      string        `yaml:"line"`
	Base      model.Stats   `yaml:"base"`
	Equipment model.Stats   `yaml:"equipment"`
	Loadout   model.Loadout `yaml:"loadout"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &s, nil
}

// Refs returns the distinct roster ids the scenario references, in order.
func (s *Scenario) Refs() []string {
	seen := make(map[string]bool)
	var refs []string
	for _, e := range append(append([]Entry(nil), s.Allies...), s.Enemies...) {
		if e.Ref != "" && !seen[e.Ref] {
			seen[e.Ref] = true
			refs = append(refs, e.Ref)
		}
	}
	return refs
}

// Setup resolves the scenario into a battle setup and a reward stage.
// src may be nil if no entry uses Ref.
func (s *Scenario) Setup(ctx context.Context, src RecordSource) (combat.Setup, combat.Stage, error) {
	allies, err := resolveAll(ctx, src, s.Allies)
	if err != nil {
		return combat.Setup{}, combat.Stage{}, fmt.Errorf("allies: %w", err)
	}
	enemies, err := resolveAll(ctx, src, s.Enemies)
	if err != nil {
		return combat.Setup{}, combat.Stage{}, fmt.Errorf("enemies: %w", err)
	}

	difficulty, err := formula.ParseDifficulty(s.Stage.Difficulty)
	if err != nil {
		return combat.Setup{}, combat.Stage{}, fmt.Errorf("stage: %w", err)
	}

	setup := combat.Setup{Allies: allies, Enemies: enemies, Seed: s.Seed}
	stage := combat.Stage{World: s.Stage.World, Level: s.Stage.Level, Difficulty: difficulty}
	return setup, stage, nil
}

func resolveAll(ctx context.Context, src RecordSource, entries []Entry) ([]model.Record, error) {
	out := make([]model.Record, 0, len(entries))
	for i, e := range entries {
		rec, err := e.resolve(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (e Entry) resolve(ctx context.Context, src RecordSource) (model.Record, error) {
	var rec model.Record
	if e.Ref != "" {
		if src == nil {
			return rec, fmt.Errorf("%w: %s", ErrNoRoster, e.Ref)
		}
		var err error
		if rec, err = src.Record(ctx, e.Ref); err != nil {
			return rec, fmt.Errorf("loading %s: %w", e.Ref, err)
		}
	}

	if e.ID != "" {
		rec.ID = e.ID
	}
	if e.Name != "" {
		rec.Name = e.Name
	}
	if rec.Name == "" {
		rec.Name = rec.ID
	}
	if e.Level != 0 {
		rec.Level = e.Level
	}
	if e.Stars != 0 {
		rec.Stars = e.Stars
	}
	if e.Base != (model.Stats{}) {
		rec.Base = e.Base
	}
	if e.Equipment != (model.Stats{}) {
		rec.Equipment = e.Equipment
	}
	if e.Loadout.Basic != "" {
		rec.Loadout.Basic = e.Loadout.Basic
	}
	if e.Loadout.Skill != "" {
		rec.Loadout.Skill = e.Loadout.Skill
	}
	if e.Loadout.Ultimate != "" {
		rec.Loadout.Ultimate = e.Loadout.Ultimate
	}
	if e.Loadout.Passives != nil {
		rec.Loadout.Passives = e.Loadout.Passives
	}

	var err error
	if e.Role != "" {
		if rec.Role, err = model.ParseRole(e.Role); err != nil {
			return rec, err
		}
	}
	if e.Element != "" {
		if rec.Element, err = model.ParseElement(e.Element); err != nil {
			return rec, err
		}
	}
	if e.Rarity != "" {
		if rec.Rarity, err = model.ParseRarity(e.Rarity); err != nil {
			return rec, err
		}
	}
	if e.Line != "" {
		if rec.Line, err = model.ParseLine(e.Line); err != nil {
			return rec, err
		}
	}
	if rec.Stars == 0 {
		rec.Stars = 1
	}
	return rec, nil
}
