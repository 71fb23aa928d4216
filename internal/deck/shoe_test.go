package deck

import (
	"testing"

	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCounter struct {
	seen   []Card
	resets int
}

func (r *recordingCounter) Update(c Card) { r.seen = append(r.seen, c) }
func (r *recordingCounter) Reset()        { r.resets++; r.seen = nil }

func TestNewShoeBuildsEveryCard(t *testing.T) {
	for _, decks := range []int{1, 2, 6, 8} {
		shoe := NewShoe(randutil.New(1), decks, nil)
		require.Equal(t, decks*CardsPerDeck, shoe.Len())
		assert.Equal(t, shoe.Size(), shoe.Len())

		counts := map[Card]int{}
		for shoe.Len() > 0 {
			c, err := shoe.Draw(false)
			require.NoError(t, err)
			counts[c]++
		}
		assert.Len(t, counts, CardsPerDeck)
		for c, n := range counts {
			assert.Equal(t, decks, n, "card %s", c)
		}
	}
}

func TestShuffleIsSeeded(t *testing.T) {
	a := NewShoe(randutil.New(42), 6, nil)
	b := NewShoe(randutil.New(42), 6, nil)
	c := NewShoe(randutil.New(43), 6, nil)
	a.Shuffle()
	b.Shuffle()
	c.Shuffle()

	assert.Equal(t, a.cards, b.cards)
	assert.NotEqual(t, a.cards, c.cards)
	assert.Equal(t, 312, a.Len())
}

func TestShuffleResetsCounter(t *testing.T) {
	counter := &recordingCounter{}
	shoe := NewShoe(randutil.New(1), 1, counter)
	shoe.Shuffle()
	_, err := shoe.Draw(true)
	require.NoError(t, err)
	require.Len(t, counter.seen, 1)

	shoe.Shuffle()
	assert.Equal(t, 2, counter.resets)
	assert.Empty(t, counter.seen)
	assert.Equal(t, CardsPerDeck, shoe.Len())
}

func TestDrawFromEmptyShoe(t *testing.T) {
	shoe := NewShoe(randutil.New(1), 1, nil)
	for range CardsPerDeck {
		_, err := shoe.Draw(true)
		require.NoError(t, err)
	}
	_, err := shoe.Draw(true)
	assert.ErrorIs(t, err, ErrEmptyShoe)
	assert.Equal(t, 0, shoe.Len())
}

func TestHiddenCardsAreCountedOnReveal(t *testing.T) {
	counter := &recordingCounter{}
	shoe := NewShoe(randutil.New(1), 1, counter)

	up, err := shoe.Draw(true)
	require.NoError(t, err)
	assert.True(t, up.Visible)

	hole, err := shoe.Draw(false)
	require.NoError(t, err)
	assert.False(t, hole.Visible)
	assert.Len(t, counter.seen, 1)

	shoe.Reveal(&hole)
	assert.True(t, hole.Visible)
	assert.Len(t, counter.seen, 2)

	shoe.Reveal(&hole)
	assert.Len(t, counter.seen, 2, "revealing twice must not count twice")
}

func TestStack(t *testing.T) {
	shoe := NewShoe(randutil.New(3), 2, nil)
	shoe.Shuffle()
	want := MustParseCards("AsKhAs")
	require.NoError(t, shoe.Stack(want...))
	assert.Equal(t, 104, shoe.Len())

	for _, w := range want {
		got, err := shoe.Draw(true)
		require.NoError(t, err)
		assert.True(t, got.Same(w), "want %s got %s", w, got)
	}

	err := shoe.Stack(MustParseCards("AsAsAs")...)
	assert.Error(t, err, "both ace of spades copies were already dealt")
}

func TestPenetration(t *testing.T) {
	shoe := NewShoe(randutil.New(1), 1, nil)
	assert.Equal(t, 0.0, shoe.Penetration())
	assert.False(t, shoe.NeedsReshuffle(0.75))

	for range 39 {
		_, err := shoe.Draw(true)
		require.NoError(t, err)
	}
	assert.InDelta(t, 0.75, shoe.Penetration(), 1e-9)
	assert.True(t, shoe.NeedsReshuffle(0.75))
}

func TestCloneIsIndependent(t *testing.T) {
	shoe := NewShoe(randutil.New(1), 1, nil)
	clone := shoe.Clone(nil)
	_, err := clone.Draw(true)
	require.NoError(t, err)
	assert.Equal(t, 52, shoe.Len())
	assert.Equal(t, 51, clone.Len())
}

func TestCloneShuffleLeavesOriginalOrder(t *testing.T) {
	shoe := NewShoe(randutil.New(7), 2, nil)
	twin := NewShoe(randutil.New(7), 2, nil)

	clone := shoe.Clone(nil)
	clone.Shuffle()
	clone.Shuffle()

	shoe.Shuffle()
	twin.Shuffle()
	assert.Equal(t, twin.cards, shoe.cards, "shuffling a discarded clone must not advance the original")
	assert.Equal(t, shoe.cards, shoe.Clone(nil).cards)
}

func TestShuffleExcluding(t *testing.T) {
	counter := &recordingCounter{}
	shoe := NewShoe(randutil.New(3), 1, counter)
	shoe.Shuffle()
	for shoe.Len() > 0 {
		_, err := shoe.Draw(true)
		require.NoError(t, err)
	}

	inPlay := MustParseCards("AsKh5d")
	for i := range inPlay {
		inPlay[i].Visible = true
	}
	inPlay = append(inPlay, NewCard(Two, Clubs)) // face-down hole card

	shoe.ShuffleExcluding(inPlay)
	require.Equal(t, CardsPerDeck-len(inPlay), shoe.Len())
	for _, c := range shoe.cards {
		for _, p := range inPlay {
			assert.False(t, c.Same(p), "%s is on the table", c)
		}
	}
	assert.Len(t, counter.seen, 3, "only visible cards in play are counted")
}
