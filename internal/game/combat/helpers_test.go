package combat

import (
	"testing"

	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
)

// flatBalance disables scaling, crits and energy variance so that
// damage is exactly atk − def×0.5.
func flatBalance() config.Balance {
	b := config.DefaultBalance()
	flat := config.StatScale{HP: 1, Atk: 1, Def: 1, Speed: 1}
	b.Roles = config.RoleTable{Tank: flat, MeleeDPS: flat, RangedDPS: flat, Support: flat}
	b.Rarity = config.RarityTable{Common: 1, Uncommon: 1, Rare: 1, Epic: 1, Legendary: 1}
	b.CritBase = 0
	b.CritSpeedFactor = 0
	b.CritRarityBonus = config.RarityTable{}
	b.EnergyVariance = 0
	return b
}

func record(id string, level int32, stats model.Stats, loadout model.Loadout) model.Record {
	return model.Record{
		ID:      id,
		Name:    id,
		Level:   level,
		Stars:   1,
		Base:    stats,
		Loadout: loadout,
	}
}

func basic() model.Loadout { return model.Loadout{Basic: "strike"} }

func testRegistry(tb testing.TB) *data.Registry {
	tb.Helper()
	reg, err := data.DefaultRegistry()
	if err != nil {
		tb.Fatalf("loading registry: %v", err)
	}
	return reg
}

// showcase returns two full formations using most of the catalog.
func showcase() (allies, enemies []model.Record) {
	hero := func(id string, role model.Role, el model.Element, line model.Line, lo model.Loadout) model.Record {
		return model.Record{
			ID: id, Name: id, Role: role, Element: el, Rarity: model.RarityEpic,
			Level: 151, Stars: 3, Line: line,
			Base:    model.Stats{HP: 1200, Atk: 140, Def: 60, Speed: 30, CritRate: 5, Dodge: 5, Morale: 50},
			Loadout: lo,
		}
	}
	allies = []model.Record{
		hero("knight", model.RoleTank, model.ElementWater, model.LineFront,
			model.Loadout{Basic: "shield_slam", Skill: "shield_bash", Ultimate: "bulwark", Passives: []string{"last_stand", "vengeance"}}),
		hero("blade", model.RoleMeleeDPS, model.ElementFire, model.LineFront,
			model.Loadout{Basic: "strike", Skill: "flame_slash", Ultimate: "inferno", Passives: []string{"bloodlust"}}),
		hero("archer", model.RoleRangedDPS, model.ElementWind, model.LineBack,
			model.Loadout{Basic: "quick_shot", Skill: "gale_arrows", Ultimate: "tempest"}),
		hero("cleric", model.RoleSupport, model.ElementLight, model.LineBack,
			model.Loadout{Basic: "smite", Skill: "holy_light", Ultimate: "judgement", Passives: []string{"battle_hymn", "second_wind"}}),
	}
	enemies = []model.Record{
		hero("golem", model.RoleTank, model.ElementElectric, model.LineFront,
			model.Loadout{Basic: "shield_slam", Skill: "entangle", Ultimate: "thunderstorm", Passives: []string{"last_stand"}}),
		hero("shade", model.RoleMeleeDPS, model.ElementDark, model.LineFront,
			model.Loadout{Basic: "strike", Skill: "shadow_bite", Ultimate: "eclipse", Passives: []string{"bloodlust"}}),
		hero("siren", model.RoleSupport, model.ElementWater, model.LineBack,
			model.Loadout{Basic: "smite", Skill: "lullaby", Ultimate: "tsunami"}),
		hero("hexer", model.RoleRangedDPS, model.ElementDark, model.LineBack,
			model.Loadout{Basic: "quick_shot", Skill: "hex", Ultimate: "eclipse", Passives: []string{"vengeance"}}),
		hero("imp", model.RoleMeleeDPS, model.ElementFire, model.LineBack,
			model.Loadout{Basic: "strike", Skill: "terrify", Ultimate: "inferno"}),
	}
	return allies, enemies
}
