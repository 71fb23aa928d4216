// Package count keeps a Hi-Lo running count of the cards seen since the last
// shuffle.
package count

import (
	"math"

	"github.com/lox/blackjack/internal/deck"
)

// Weight returns the Hi-Lo weight of a card: +1 for 2-6, 0 for 7-9 and -1
// for tens and aces.
func Weight(c deck.Card) int {
	switch {
	case c.Rank >= deck.Two && c.Rank <= deck.Six:
		return 1
	case c.Rank >= deck.Seven && c.Rank <= deck.Nine:
		return 0
	default:
		return -1
	}
}

// Tracker accumulates the running count. It satisfies deck.Counter.
type Tracker struct {
	running int
}

// NewTracker returns a tracker with a zero count
func NewTracker() *Tracker {
	return &Tracker{}
}

// Update adds the card's weight to the running count
func (t *Tracker) Update(c deck.Card) {
	t.running += Weight(c)
}

// Reset zeroes the running count. Called on every reshuffle.
func (t *Tracker) Reset() {
	t.running = 0
}

// RunningCount returns the current running count
func (t *Tracker) RunningCount() int {
	return t.running
}

// Clone returns an independent copy of the tracker
func (t *Tracker) Clone() *Tracker {
	return &Tracker{running: t.running}
}

// State returns the count derived for a shoe with shoeLen undealt cards.
func (t *Tracker) State(shoeLen int) State {
	return NewState(t.running, shoeLen)
}

// State is a read-only view of the count.
type State struct {
	Running        int
	DecksRemaining float64
	TrueCount      float64
}

// NewState derives decks remaining and the true count from a running count.
func NewState(running, shoeLen int) State {
	decks := DecksRemaining(shoeLen)
	return State{
		Running:        running,
		DecksRemaining: decks,
		TrueCount:      TrueCount(running, decks),
	}
}

// DecksRemaining estimates the decks left in the shoe.
func DecksRemaining(shoeLen int) float64 {
	return float64(shoeLen) / deck.CardsPerDeck
}

// TrueCount normalises the running count by decks remaining, never dividing
// by less than one deck.
func TrueCount(running int, decksRemaining float64) float64 {
	return float64(running) / math.Max(decksRemaining, 1)
}
