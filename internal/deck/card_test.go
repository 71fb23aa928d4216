package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "blackjack",
			input: "AsKh",
			expected: []Card{
				{Rank: Ace, Suit: Spades, Visible: true},
				{Rank: King, Suit: Hearts, Visible: true},
			},
		},
		{
			name:  "ten as digits",
			input: "10d 5c",
			expected: []Card{
				{Rank: Ten, Suit: Diamonds, Visible: true},
				{Rank: Five, Suit: Clubs, Visible: true},
			},
		},
		{
			name:  "case insensitive",
			input: "tDjc",
			expected: []Card{
				{Rank: Ten, Suit: Diamonds, Visible: true},
				{Rank: Jack, Suit: Clubs, Visible: true},
			},
		},
		{name: "invalid rank", input: "Xs", wantErr: true},
		{name: "invalid suit", input: "Ax", wantErr: true},
		{name: "odd length", input: "AsK", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := ParseCards(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cards)
		})
	}
}

func TestRankValues(t *testing.T) {
	assert.Equal(t, []int{1, 11}, Ace.Values())
	assert.Equal(t, []int{7}, Seven.Values())
	for _, r := range []Rank{Ten, Jack, Queen, King} {
		assert.Equal(t, []int{10}, r.Values(), r.String())
		assert.True(t, r.IsTenValue())
		assert.Equal(t, 10, r.Value())
	}
	assert.Equal(t, 11, Ace.Value())
	assert.False(t, Nine.IsTenValue())
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", NewCard(Ace, Spades).String())
	assert.Equal(t, "10♥", NewCard(Ten, Hearts).String())
	assert.True(t, NewCard(Two, Diamonds).Suit.IsRed())
	assert.False(t, NewCard(Two, Clubs).Suit.IsRed())
}
