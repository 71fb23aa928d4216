// Package evaluator computes blackjack hand totals.
//
// A hand has a set of achievable totals: every Ace may count as 1 or 11.
// Evaluate enumerates that set and splits it into the totals that do not bust
// and the unavoidable minimum.
package evaluator

import (
	"errors"
	"slices"

	"github.com/lox/blackjack/internal/deck"
)

// Blackjack is the best possible hand total.
const Blackjack = 21

// Soft totals that have a basic-strategy entry.
const (
	SoftTotalMin = 13
	SoftTotalMax = 20
)

// ErrInvalidHand is returned when evaluating a hand without cards.
var ErrInvalidHand = errors.New("hand must have at least one card")

// Result holds the totals of a hand.
type Result struct {
	// ValidCounts are the totals of 21 or less, best first.
	ValidCounts []int
	// BustCount is the minimum achievable total, every Ace counted low.
	// It is reported even when it does not bust.
	BustCount int
}

// IsBust reports whether every total exceeds 21.
func (r Result) IsBust() bool {
	return len(r.ValidCounts) == 0
}

// Best returns the top valid total, or the bust count when the hand is bust.
func (r Result) Best() int {
	if r.IsBust() {
		return r.BustCount
	}
	return r.ValidCounts[0]
}

// IsSoft reports whether more than one total survives, which means an Ace is
// being counted as 11 in the best total.
func (r Result) IsSoft() bool {
	return len(r.ValidCounts) > 1
}

// Evaluate computes every achievable total for cards.
func Evaluate(cards []deck.Card) (Result, error) {
	if len(cards) == 0 {
		return Result{}, ErrInvalidHand
	}

	totals := []int{0}
	for _, card := range cards {
		values := card.Rank.Values()
		next := make([]int, 0, len(totals)*len(values))
		for _, total := range totals {
			for _, v := range values {
				next = append(next, total+v)
			}
		}
		slices.Sort(next)
		totals = slices.Compact(next)
	}

	valid := make([]int, 0, len(totals))
	for i := len(totals) - 1; i >= 0; i-- {
		if totals[i] <= Blackjack {
			valid = append(valid, totals[i])
		}
	}

	return Result{ValidCounts: valid, BustCount: totals[0]}, nil
}

// MustEvaluate evaluates cards and panics on an empty hand. The engine uses it
// on hands it owns, where an empty hand is a modelling defect.
func MustEvaluate(cards []deck.Card) Result {
	r, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return r
}

// IsBlackjack reports whether cards are a two-card 21.
func IsBlackjack(cards []deck.Card) bool {
	if len(cards) != 2 {
		return false
	}
	r := MustEvaluate(cards)
	return slices.Contains(r.ValidCounts, Blackjack)
}

// IsPairHand reports whether cards are exactly two cards of equal value.
func IsPairHand(cards []deck.Card) bool {
	return len(cards) == 2 && cards[0].Value() == cards[1].Value()
}

// IsSoftHand reports whether cards contain an Ace, have more than one valid
// total and the top total falls in the soft strategy range.
func IsSoftHand(cards []deck.Card) bool {
	if len(cards) == 0 || !slices.ContainsFunc(cards, deck.Card.IsAce) {
		return false
	}
	r := MustEvaluate(cards)
	if !r.IsSoft() {
		return false
	}
	top := r.ValidCounts[0]
	return top >= SoftTotalMin && top <= SoftTotalMax
}

// BestTotal returns the best total of a non-empty hand.
func BestTotal(cards []deck.Card) int {
	return MustEvaluate(cards).Best()
}
