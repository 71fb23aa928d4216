package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

// CardsPerDeck is the number of cards in a standard deck.
const CardsPerDeck = 52

// ErrEmptyShoe is returned when Draw is attempted and no cards remain.
// The shoe never reshuffles on its own; callers decide the policy.
var ErrEmptyShoe = errors.New("no cards left in shoe")

// Counter observes cards as they become visible. The count tracker
// implements it.
type Counter interface {
	Update(card Card)
	Reset()
}

// Shoe holds the undealt cards for a number of standard decks.
type Shoe struct {
	cards   []Card
	decks   int
	src     *rand.PCG // owned by this shoe, copied on Clone
	counter Counter
}

// NewShoe creates an unshuffled shoe of the given number of decks. The RNG is
// required so that a fixed seed reproduces the same card order; the shoe
// seeds its own generator from it. The counter may be nil.
func NewShoe(rng *rand.Rand, decks int, counter Counter) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	s := &Shoe{src: rand.NewPCG(rng.Uint64(), rng.Uint64()), counter: counter}
	s.Initialize(decks)
	return s
}

// Initialize rebuilds the shoe as decks×52 face-down cards in rank/suit order.
func (s *Shoe) Initialize(decks int) {
	if decks < 1 {
		panic(fmt.Sprintf("invalid number of decks: %d", decks))
	}
	s.decks = decks
	s.cards = make([]Card, 0, decks*CardsPerDeck)
	for range decks {
		for _, suit := range Suits {
			for rank := Ace; rank <= King; rank++ {
				s.cards = append(s.cards, NewCard(rank, suit))
			}
		}
	}
}

// Shuffle rebuilds the full shoe and applies a Fisher-Yates permutation.
// The running count is reset.
func (s *Shoe) Shuffle() {
	s.Initialize(s.decks)
	s.permute()
	if s.counter != nil {
		s.counter.Reset()
	}
}

// ShuffleExcluding rebuilds the shoe without the given cards, which are
// still on the table, and shuffles it. The count restarts from the visible
// cards in play.
func (s *Shoe) ShuffleExcluding(inPlay []Card) {
	s.Initialize(s.decks)
	for _, c := range inPlay {
		if i := slices.IndexFunc(s.cards, c.Same); i >= 0 {
			s.cards = slices.Delete(s.cards, i, i+1)
		}
	}
	s.permute()
	if s.counter == nil {
		return
	}
	s.counter.Reset()
	for _, c := range inPlay {
		if c.Visible {
			s.counter.Update(c)
		}
	}
}

// permute applies a Fisher-Yates shuffle to the cards in the shoe.
func (s *Shoe) permute() {
	rng := rand.New(s.src)
	for i := len(s.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the front card. Visible cards are fed to the
// counter; a hidden card is counted later through Reveal.
func (s *Shoe) Draw(visible bool) (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrEmptyShoe
	}

	card := s.cards[0]
	s.cards = s.cards[1:]
	card.Visible = visible
	if visible && s.counter != nil {
		s.counter.Update(card)
	}
	return card, nil
}

// Reveal turns a hidden card face up and counts it. Already visible cards
// are left alone so a card is never counted twice.
func (s *Shoe) Reveal(card *Card) {
	if card.Visible {
		return
	}
	card.Visible = true
	if s.counter != nil {
		s.counter.Update(*card)
	}
}

// Stack moves the given cards to the front of the shoe in order, taking one
// matching copy for each. It is used to script deterministic deals.
func (s *Shoe) Stack(cards ...Card) error {
	rest := make([]Card, len(s.cards))
	copy(rest, s.cards)

	front := make([]Card, 0, len(cards))
	for _, want := range cards {
		idx := -1
		for i, c := range rest {
			if c.Same(want) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("card %s not in shoe", want)
		}
		front = append(front, rest[idx])
		rest = append(rest[:idx], rest[idx+1:]...)
	}

	s.cards = append(front, rest...)
	return nil
}

// Len returns the number of undealt cards
func (s *Shoe) Len() int {
	return len(s.cards)
}

// Size returns the number of cards in a full shoe
func (s *Shoe) Size() int {
	return s.decks * CardsPerDeck
}

// Decks returns the number of decks the shoe is built from
func (s *Shoe) Decks() int {
	return s.decks
}

// Penetration returns the fraction of the shoe already dealt.
func (s *Shoe) Penetration() float64 {
	return 1 - float64(len(s.cards))/float64(s.Size())
}

// NeedsReshuffle reports whether the dealt fraction has reached threshold.
func (s *Shoe) NeedsReshuffle(threshold float64) bool {
	return s.Penetration() >= threshold
}

// Peek returns the front card without removing it
func (s *Shoe) Peek() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}
	return s.cards[0], true
}

// Clone copies the shoe, attaching the given counter. The generator state
// is copied too, so shuffling the clone leaves the original's future order
// untouched.
func (s *Shoe) Clone(counter Counter) *Shoe {
	src := *s.src
	return &Shoe{
		cards:   slices.Clone(s.cards),
		decks:   s.decks,
		src:     &src,
		counter: counter,
	}
}
