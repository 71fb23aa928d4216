package deck

import (
	"fmt"
	"strings"
)

// ParseCards parses a string of card notation into a slice of cards.
// Format: "AsKd9h" where each card is [Rank][Suit]; "T" and "10" both mean ten.
// Ranks: A, K, Q, J, T, 10, 9, 8, 7, 6, 5, 4, 3, 2
// Suits: s (spades), h (hearts), d (diamonds), c (clubs)
// Parsed cards are face up.
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "10", "T")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d (must be even)", len(s))
	}

	var cards []Card
	for i := 0; i < len(s); i += 2 {
		rank, err := parseRank(s[i])
		if err != nil {
			return nil, fmt.Errorf("invalid rank '%c' at position %d: %w", s[i], i, err)
		}
		suit, err := parseSuit(s[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid suit '%c' at position %d: %w", s[i+1], i+1, err)
		}
		cards = append(cards, Card{Rank: rank, Suit: suit, Visible: true})
	}

	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

func parseRank(c byte) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	}
	if c >= '2' && c <= '9' {
		return Rank(c - '0'), nil
	}
	return 0, fmt.Errorf("unknown rank")
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 's', 'S':
		return Spades, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("unknown suit")
	}
}
