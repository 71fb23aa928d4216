package tui

import (
	"bytes"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestModel(t *testing.T, cards string) (*Model, *game.Engine) {
	t.Helper()
	seats := []game.Seat{{ID: "me", Name: "Me", Balance: 1_000, Archetype: bot.Interactive}}
	var opts []game.Option
	if cards != "" {
		opts = append(opts, game.WithStackedCards(deck.MustParseCards(cards)...))
	}
	e := game.NewEngine(randutil.New(8), seats, testLogger(), opts...)
	return NewModel(e, "me", display.NewRenderer(&bytes.Buffer{}, true), testLogger()), e
}

func TestParseCommand(t *testing.T) {
	snap := game.Snapshot{Turn: game.Turn{Kind: game.TurnPlayer, PlayerID: "me", HandIdx: 1}}

	tests := []struct {
		input string
		want  Command
	}{
		{"", Command{}},
		{"20", Command{Event: game.PlaceBet{PlayerID: "me", Amount: 20}}},
		{"bet 35", Command{Event: game.PlaceBet{PlayerID: "me", Amount: 35}}},
		{"reset", Command{Event: game.PlaceBet{PlayerID: "me", Mode: game.Override}}},
		{"ready", Command{Event: game.PlaceBet{PlayerID: "me", SetReady: true}}},
		{"deal", Command{Event: game.StartGame{}}},
		{"n", Command{Event: game.DealAnotherRound{}}},
		{"HIT", Command{Event: game.Hit{Target: game.Target{PlayerID: "me", HandIdx: 1}}}},
		{"s", Command{Event: game.Stand{Target: game.Target{PlayerID: "me", HandIdx: 1}}}},
		{"double", Command{Event: game.Double{Target: game.Target{PlayerID: "me", HandIdx: 1}}}},
		{"p", Command{Event: game.Split{Target: game.Target{PlayerID: "me", HandIdx: 1}}}},
		{"hint", Command{Hint: true}},
		{"quit", Command{Quit: true}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCommand(tt.input, snap, "me")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"bet", "bet x", "-5", "fold"} {
		_, err := ParseCommand(bad, snap, "me")
		assert.Error(t, err, bad)
	}

	_, err := ParseCommand("hit", game.Snapshot{}, "me")
	assert.ErrorContains(t, err, "not your turn")
	_, err = ParseCommand("10", snap, "")
	assert.Error(t, err, "spectators cannot bet")
}

func TestModelPlaysARound(t *testing.T) {
	// me: T 9, dealer: 7 up, T hole
	m, e := newTestModel(t, "Ts7h9dTc")

	for _, button := range []string{"50", "20", "ready"} {
		assert.False(t, m.Submit(button))
	}
	me, _ := m.Snapshot().Player("me")
	assert.Equal(t, 70, me.Hands[0].Bet)
	assert.True(t, me.Hands[0].IsReady)

	m.Submit("deal")
	assert.True(t, m.Snapshot().IsPlayersTurn())

	m.Submit("hint")
	assert.Contains(t, m.Log(), "Basic strategy says stand")

	m.Submit("stand")
	snap := m.Snapshot()
	require.True(t, snap.IsRoundFinished())
	assert.Equal(t, e.Snapshot(), snap)
	assert.Contains(t, m.Log(), "  Me #1 win +70")

	m.Submit("next")
	assert.True(t, m.Snapshot().IsWaitingForBets())
}

func TestModelReportsErrors(t *testing.T) {
	m, _ := newTestModel(t, "")
	m.Submit("ready")
	require.NotEmpty(t, m.Log())
	assert.Contains(t, m.Log()[len(m.Log())-1], "cannot mark a hand ready without a bet")

	m.Submit("bet 5000")
	assert.Contains(t, m.Log()[len(m.Log())-1], "insufficient balance")
}

func TestModelIgnoresStaleSnapshots(t *testing.T) {
	m, e := newTestModel(t, "")
	stale := e.Snapshot()
	m.Submit("10")
	fresh := m.Snapshot()

	m.Update(SnapshotMsg(stale))
	assert.Equal(t, fresh, m.Snapshot())
}

func TestModelKeys(t *testing.T) {
	m, _ := newTestModel(t, "")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	assert.Contains(t, m.View(), "Round 1")

	for _, r := range "10" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	me, _ := m.Snapshot().Player("me")
	assert.Equal(t, 10, me.Hands[0].Bet)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Empty(t, m.View())
}
