package deck

import "fmt"

// Suit represents a card suit. Suits carry no value in blackjack.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists every suit in shoe build order.
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Ace is low in the ordering; its dual value
// is handled by Values.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r >= Two && r <= Nine {
		return fmt.Sprintf("%d", int(r))
	}
	return "?"
}

// Values returns every value the rank can take in a hand total.
func (r Rank) Values() []int {
	switch {
	case r == Ace:
		return []int{1, 11}
	case r >= Ten:
		return []int{10}
	default:
		return []int{int(r)}
	}
}

// Value returns the rank's value with an Ace counted high. This is the value
// used for dealer upcards and pair categories.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// IsTenValue reports whether the rank counts as ten (10, J, Q, K).
func (r Rank) IsTenValue() bool {
	return r >= Ten && r <= King
}

// Card represents a playing card and whether it is face up.
type Card struct {
	Rank    Rank
	Suit    Suit
	Visible bool
}

// NewCard creates a new face-down card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// Value returns the blackjack value of the card with an Ace counted as 11.
func (c Card) Value() int {
	return c.Rank.Value()
}

// Same reports whether two cards have the same rank and suit, ignoring visibility.
func (c Card) Same(other Card) bool {
	return c.Rank == other.Rank && c.Suit == other.Suit
}
