// Package strategy holds the basic-strategy charts and bet sizing used by
// automated players.
package strategy

import (
	"errors"
	"fmt"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/evaluator"
)

// ErrInvalidDealerUpcard is returned for an upcard outside 2..11.
var ErrInvalidDealerUpcard = errors.New("invalid dealer upcard")

// Options describe what the table allows for the hand being decided.
type Options struct {
	// CanDouble is true when doubling is legal for this hand right now.
	CanDouble bool
	// DoubleAfterSplit resolves the "split if double after split" entries.
	DoubleAfterSplit bool
	// NoSplit suppresses split decisions, e.g. when the player cannot
	// afford to match the bet.
	NoSplit bool
}

// DealerBucket maps an upcard value (2..11, Ace as 11) to a table column.
func DealerBucket(upcard int) (int, error) {
	if upcard < MinUpcard || upcard > MaxUpcard {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDealerUpcard, upcard)
	}
	return upcard - MinUpcard, nil
}

// Decide returns the basic-strategy action for cards against dealerUpcard.
func Decide(cards []deck.Card, dealerUpcard int, opts Options) (Action, error) {
	bucket, err := DealerBucket(dealerUpcard)
	if err != nil {
		return 0, err
	}
	result, err := evaluator.Evaluate(cards)
	if err != nil {
		return 0, err
	}

	if evaluator.IsBlackjack(cards) {
		return Stand, nil
	}

	if !opts.NoSplit && evaluator.IsPairHand(cards) && shouldSplit(cards[0].Rank, bucket, opts.DoubleAfterSplit) {
		return Split, nil
	}

	valid := result.ValidCounts
	if len(valid) == 0 || valid[0] == 20 || (len(valid) == 1 && valid[0] >= 17) {
		return Stand, nil
	}

	if evaluator.IsSoftHand(cards) {
		return softAction(valid[0], bucket, opts.CanDouble), nil
	}
	return hardAction(valid[0], bucket, opts.CanDouble), nil
}

func shouldSplit(rank deck.Rank, bucket int, doubleAfterSplit bool) bool {
	switch lookupPair(PairCategoryOf(rank), bucket) {
	case PairSplit:
		return true
	case PairSplitIfDoubleAfterSplit:
		return doubleAfterSplit
	default:
		return false
	}
}

func softAction(total, bucket int, canDouble bool) Action {
	switch lookupSoft(total, bucket) {
	case SoftHit:
		return Hit
	case SoftStand:
		return Stand
	case SoftDoubleElseHit:
		if canDouble {
			return Double
		}
		return Hit
	case SoftDoubleElseStand:
		if canDouble {
			return Double
		}
		return Stand
	}
	panic(fmt.Errorf("%w: soft total %d bucket %d", ErrInvalidTableLookup, total, bucket))
}

func hardAction(total, bucket int, canDouble bool) Action {
	if total >= 18 {
		return Stand
	}
	if total <= MinHardTotal {
		return Hit
	}
	switch lookupHard(total, bucket) {
	case HardHit:
		return Hit
	case HardStand:
		return Stand
	case HardDoubleElseHit:
		if canDouble {
			return Double
		}
		return Hit
	}
	panic(fmt.Errorf("%w: hard total %d bucket %d", ErrInvalidTableLookup, total, bucket))
}
