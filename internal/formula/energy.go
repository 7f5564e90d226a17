package formula

import (
	"math"

	"github.com/udisondev/battlecore/internal/config"
)

// EnergyGain returns the energy generated by one action:
// base + morale×factor + variance, where variance is already drawn from
// [-EnergyVariance, +EnergyVariance] by the caller. Never negative.
func EnergyGain(b config.Balance, morale, variance float64) int32 {
	v := b.EnergyBase + morale*b.EnergyMoraleFactor + variance
	if v < 0 {
		return 0
	}
	return int32(math.Round(v))
}

// EnergyVariance maps a uniform sample u ∈ [0, 1) onto [-EnergyVariance, +EnergyVariance).
func EnergyVariance(b config.Balance, u float64) float64 {
	return (u*2 - 1) * b.EnergyVariance
}
