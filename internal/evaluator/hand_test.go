package evaluator

import (
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		valid []int
		bust  int
	}{
		{"two aces and a nine", "AsAh9d", []int{21, 11}, 11},
		{"hard bust", "Ts10h5d", []int{}, 25},
		{"soft seventeen", "As6h", []int{17, 7}, 7},
		{"blackjack", "AsKh", []int{21, 11}, 11},
		{"hard twelve", "Ts2h", []int{12}, 12},
		{"single ace", "Ac", []int{11, 1}, 1},
		{"four aces", "AsAhAdAc", []int{14, 4}, 4},
		{"ace forced low", "As9hKd", []int{20}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Evaluate(deck.MustParseCards(tt.cards))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, r.ValidCounts)
			assert.Equal(t, tt.bust, r.BustCount)
			assert.Equal(t, len(tt.valid) == 0, r.IsBust())
		})
	}
}

func TestEvaluateEmptyHand(t *testing.T) {
	_, err := Evaluate(nil)
	assert.ErrorIs(t, err, ErrInvalidHand)
	assert.Panics(t, func() { MustEvaluate(nil) })
}

func TestValidCountsStrictlyDescending(t *testing.T) {
	shoe := deck.NewShoe(randutil.New(11), 8, nil)
	shoe.Shuffle()

	for shoe.Len() >= 6 {
		size := 1 + shoe.Len()%6
		cards := make([]deck.Card, 0, size)
		for range size {
			c, err := shoe.Draw(true)
			require.NoError(t, err)
			cards = append(cards, c)
		}

		r, err := Evaluate(cards)
		require.NoError(t, err)
		for i, v := range r.ValidCounts {
			assert.LessOrEqual(t, v, Blackjack, "cards %v", cards)
			if i > 0 {
				assert.Less(t, v, r.ValidCounts[i-1], "cards %v", cards)
			}
		}
		if len(r.ValidCounts) > 0 {
			assert.Equal(t, r.BustCount, r.ValidCounts[len(r.ValidCounts)-1])
		}
	}
}

func TestIsBlackjack(t *testing.T) {
	assert.True(t, IsBlackjack(deck.MustParseCards("AsKh")))
	assert.True(t, IsBlackjack(deck.MustParseCards("TdAc")))
	assert.False(t, IsBlackjack(deck.MustParseCards("7s7h7d")), "three-card 21")
	assert.False(t, IsBlackjack(deck.MustParseCards("AsAh9d")))
	assert.False(t, IsBlackjack(deck.MustParseCards("KsQh")))
}

func TestIsPairHand(t *testing.T) {
	assert.True(t, IsPairHand(deck.MustParseCards("8s8h")))
	assert.True(t, IsPairHand(deck.MustParseCards("KsQh")), "ten-value cards pair")
	assert.False(t, IsPairHand(deck.MustParseCards("8s9h")))
	assert.False(t, IsPairHand(deck.MustParseCards("8s8h8d")))
}

func TestIsSoftHand(t *testing.T) {
	assert.True(t, IsSoftHand(deck.MustParseCards("As6h")))
	assert.True(t, IsSoftHand(deck.MustParseCards("As2h")))
	assert.True(t, IsSoftHand(deck.MustParseCards("As9h")))
	assert.False(t, IsSoftHand(deck.MustParseCards("AsKh")), "soft 21 has no table entry")
	assert.False(t, IsSoftHand(deck.MustParseCards("AsAh")), "soft 12 has no table entry")
	assert.False(t, IsSoftHand(deck.MustParseCards("As9hKd")), "ace forced low")
	assert.False(t, IsSoftHand(deck.MustParseCards("Ts6h")))
}
