package strategy

import "math"

// DefaultUnit is the flat bet placed by a basic-strategy player.
const DefaultUnit = 100

// FlatBet returns the perfect-blackjack bet: always one unit.
func FlatBet(unit int) int {
	return unit
}

// CountingBetConfig shapes the bet ramp of a counting player.
type CountingBetConfig struct {
	Unit int
	// Threshold is the true count at or below which the minimum bet is used.
	Threshold float64
	// MaxUnits caps the ramp. Zero means uncapped.
	MaxUnits int
}

// DefaultCountingBet ramps one unit per true count above +1, up to eight units.
var DefaultCountingBet = CountingBetConfig{
	Unit:      DefaultUnit,
	Threshold: 1,
	MaxUnits:  8,
}

// CountingBet sizes a bet from the count. The true count is
// runningCount / max(decksRemaining, 1); the bet is one unit at or below the
// threshold and grows by a unit for every whole true count above it.
// A higher true count never produces a smaller bet.
func CountingBet(runningCount int, decksRemaining float64, cfg CountingBetConfig) int {
	trueCount := float64(runningCount) / math.Max(decksRemaining, 1)
	return cfg.Unit * CountingUnits(trueCount, cfg)
}

// CountingUnits returns the number of units bet at trueCount.
func CountingUnits(trueCount float64, cfg CountingBetConfig) int {
	if trueCount <= cfg.Threshold {
		return 1
	}
	units := 1 + int(math.Ceil(trueCount-cfg.Threshold))
	if cfg.MaxUnits > 0 && units > cfg.MaxUnits {
		units = cfg.MaxUnits
	}
	return units
}
