package strategy

import (
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	das := Options{CanDouble: true, DoubleAfterSplit: true}
	noDouble := Options{CanDouble: false, DoubleAfterSplit: true}

	tests := []struct {
		name   string
		cards  string
		upcard int
		opts   Options
		want   Action
	}{
		{"eights against ten split", "8s8h", 10, das, Split},
		{"aces always split", "AsAh", 11, das, Split},
		{"tens never split", "KsQh", 6, das, Stand},
		{"fives play as hard ten", "5s5h", 6, das, Double},
		{"sixes against two need das", "6s6h", 2, das, Split},
		{"sixes against two without das", "6s6h", 2, Options{CanDouble: true}, Hit},
		{"fours against five with das", "4s4h", 5, das, Split},
		{"fours against five without das", "4s4h", 5, Options{CanDouble: true}, Hit},
		{"nines against seven stand", "9s9h", 7, das, Stand},
		{"hard sixteen against seven", "Ts6h", 7, das, Hit},
		{"hard sixteen against six", "Ts6h", 6, das, Stand},
		{"three card sixteen", "5s4h7d", 7, das, Hit},
		{"hard eleven doubles", "6s5h", 11, das, Double},
		{"hard eleven without double hits", "6s5h", 11, noDouble, Hit},
		{"hard twelve against four", "Ts2h", 4, das, Stand},
		{"hard twelve against two", "Ts2h", 2, das, Hit},
		{"hard eight always hits", "5s3h", 6, das, Hit},
		{"hard seven hits", "4s3h", 6, das, Hit},
		{"hard eighteen stands", "Ts8h", 11, das, Stand},
		{"hard seventeen stands", "Ts7h", 11, das, Stand},
		{"soft twenty stands", "As9h", 6, das, Stand},
		{"soft eighteen against six doubles", "As7h", 6, das, Double},
		{"soft eighteen against six without double stands", "As7h", 6, noDouble, Stand},
		{"soft eighteen against nine hits", "As7h", 9, das, Hit},
		{"soft seventeen against three doubles", "As6h", 3, das, Double},
		{"soft seventeen against three without double hits", "As6h", 3, noDouble, Hit},
		{"soft nineteen against six doubles", "As8h", 6, das, Double},
		{"soft thirteen against five", "As2h", 5, das, Double},
		{"blackjack stands", "AsKh", 10, das, Stand},
		{"three card twenty one stands", "7s7h7d", 10, das, Stand},
		{"bust hand stands", "TsTh5d", 10, das, Stand},
		{"soft twelve plays hard", "AsAh", 6, Options{NoSplit: true, CanDouble: true}, Stand},
		{"split suppressed plays total", "8s8h", 10, Options{NoSplit: true, CanDouble: true}, Hit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decide(deck.MustParseCards(tt.cards), tt.upcard, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecideInvalidUpcard(t *testing.T) {
	for _, up := range []int{0, 1, 12, -3} {
		_, err := Decide(deck.MustParseCards("Ts6h"), up, Options{})
		assert.ErrorIs(t, err, ErrInvalidDealerUpcard, "upcard %d", up)
	}
}

func TestDecideEmptyHand(t *testing.T) {
	_, err := Decide(nil, 10, Options{})
	assert.Error(t, err)
}

func TestTablesAreComplete(t *testing.T) {
	require.NoError(t, validateTables())
}

func TestLookupOutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { lookupHard(7, 0) })
	assert.Panics(t, func() { lookupSoft(21, 0) })
	assert.Panics(t, func() { lookupPair(NumPairCategories, 0) })
	assert.Panics(t, func() { lookupHard(12, NumBuckets) })
}

func TestPairCategoryOf(t *testing.T) {
	assert.Equal(t, PairAces, PairCategoryOf(deck.Ace))
	assert.Equal(t, PairTens, PairCategoryOf(deck.King))
	assert.Equal(t, PairTens, PairCategoryOf(deck.Ten))
	assert.Equal(t, PairNines, PairCategoryOf(deck.Nine))
	assert.Equal(t, PairTwos, PairCategoryOf(deck.Two))
	assert.Equal(t, "8,8", PairCategoryOf(deck.Eight).String())
	assert.Equal(t, "A,A", PairAces.String())
}

func TestEveryHandHasADecision(t *testing.T) {
	ranks := []deck.Rank{deck.Ace, deck.Two, deck.Three, deck.Four, deck.Five, deck.Six,
		deck.Seven, deck.Eight, deck.Nine, deck.Ten, deck.Jack, deck.Queen, deck.King}

	for _, a := range ranks {
		for _, b := range ranks {
			for up := MinUpcard; up <= MaxUpcard; up++ {
				cards := []deck.Card{deck.NewCard(a, deck.Spades), deck.NewCard(b, deck.Hearts)}
				for _, opts := range []Options{{}, {CanDouble: true}, {CanDouble: true, DoubleAfterSplit: true}, {NoSplit: true}} {
					assert.NotPanics(t, func() {
						action, err := Decide(cards, up, opts)
						require.NoError(t, err)
						if !opts.CanDouble {
							assert.NotEqual(t, Double, action)
						}
						if opts.NoSplit {
							assert.NotEqual(t, Split, action)
						}
					})
				}
			}
		}
	}
}
