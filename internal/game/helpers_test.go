package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func seats(balances ...int) []Seat {
	out := make([]Seat, len(balances))
	for i, b := range balances {
		id := string(rune('a' + i))
		out[i] = Seat{ID: "p" + id, Name: "player " + id, Balance: b, Archetype: bot.PerfectBlackjack}
	}
	return out
}

// newStackedEngine creates an engine whose shoe deals cards in the given
// order first. With two seats the deal order is p1, p2, dealer up, p1, p2,
// dealer hole.
func newStackedEngine(t *testing.T, s []Seat, cards string, opts ...Option) *Engine {
	t.Helper()
	opts = append(opts, WithStackedCards(deck.MustParseCards(cards)...))
	return NewEngine(randutil.New(42), s, testLogger(), opts...)
}

func betAll(t *testing.T, e *Engine, amount int) Snapshot {
	t.Helper()
	var snap Snapshot
	for _, p := range e.Snapshot().Players {
		var err error
		snap, err = e.Send(PlaceBet{PlayerID: p.ID, Amount: amount, Mode: Override, SetReady: true})
		require.NoError(t, err)
	}
	return snap
}

func send(t *testing.T, e *Engine, ev Event) Snapshot {
	t.Helper()
	snap, err := e.Send(ev)
	require.NoError(t, err, "sending %v", ev)
	return snap
}

func cardsInPlay(s Snapshot) int {
	n := len(s.Dealer.Hand.Cards)
	for _, p := range s.Players {
		for _, h := range p.Hands {
			n += len(h.Cards)
		}
	}
	return n
}
