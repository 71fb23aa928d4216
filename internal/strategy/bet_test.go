package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatBet(t *testing.T) {
	assert.Equal(t, 100, FlatBet(DefaultUnit))
}

func TestCountingBet(t *testing.T) {
	cfg := DefaultCountingBet

	assert.Equal(t, 100, CountingBet(0, 6, cfg))
	assert.Equal(t, 100, CountingBet(-12, 6, cfg))
	assert.Equal(t, 100, CountingBet(6, 6, cfg), "true count at threshold is the minimum")
	assert.Equal(t, 200, CountingBet(12, 6, cfg), "true count 2")
	assert.Equal(t, 300, CountingBet(15, 5, cfg), "true count 3")
	assert.Equal(t, 800, CountingBet(60, 2, cfg), "capped")
	assert.Equal(t, 300, CountingBet(3, 0.5, cfg), "decks remaining floored at one")
}

func TestCountingBetIsMonotonic(t *testing.T) {
	cfg := DefaultCountingBet
	prev := 0
	for tc := -10.0; tc <= 15; tc += 0.25 {
		units := CountingUnits(tc, cfg)
		assert.GreaterOrEqual(t, units, prev, "true count %.2f", tc)
		assert.GreaterOrEqual(t, units, 1)
		prev = units
	}

	uncapped := CountingBetConfig{Unit: 10, Threshold: 1}
	assert.Equal(t, 10*21, CountingBet(21, 1, uncapped))
}
