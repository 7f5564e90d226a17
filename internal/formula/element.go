package formula

import (
	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/model"
)

// beats lists the element each element is strong against.
// Fire→Wind→Electric→Water→Fire; Light and Dark beat each other.
var beats = map[model.Element]model.Element{
	model.ElementFire:     model.ElementWind,
	model.ElementWind:     model.ElementElectric,
	model.ElementElectric: model.ElementWater,
	model.ElementWater:    model.ElementFire,
	model.ElementLight:    model.ElementDark,
	model.ElementDark:     model.ElementLight,
}

// HasAdvantage reports whether attacker is favored against defender.
func HasAdvantage(attacker, defender model.Element) bool {
	target, ok := beats[attacker]
	return ok && target == defender
}

// ElementMultiplier returns the advantage multiplier of attacker vs defender.
// The result is always one of ElementAdvantage, ElementDisadvantage or 1.0.
func ElementMultiplier(b config.Balance, attacker, defender model.Element) float64 {
	switch {
	case HasAdvantage(attacker, defender):
		return b.ElementAdvantage
	case HasAdvantage(defender, attacker):
		return b.ElementDisadvantage
	default:
		return 1.0
	}
}
