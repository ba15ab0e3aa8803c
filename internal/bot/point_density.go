package bot

import "github.com/saudibaloot/engine/pkg/baloot"

// PointDensityOf classifies how many Abnat points sit on the table in the
// current, possibly-incomplete trick. calibrated raises the HIGH threshold
// from 16 to 18; Decide always calls it with calibrated set to true.
func PointDensityOf(table []baloot.Play, mode baloot.Mode, trump baloot.Suit, calibrated bool) (PointDensity, bool) {
	if len(table) == 0 {
		return DensityEmpty, false
	}
	points := 0
	for _, p := range table {
		points += baloot.CardPoints(p.Card, mode, trump)
	}
	high := 16
	if calibrated {
		high = 18
	}
	switch {
	case points >= 26:
		return DensityCritical, true
	case points >= high:
		return DensityHigh, true
	case points >= 15:
		return DensityMedium, false
	case points > 0:
		return DensityLow, false
	default:
		return DensityEmpty, false
	}
}
