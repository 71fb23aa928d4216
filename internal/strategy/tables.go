package strategy

import (
	"errors"
	"fmt"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/evaluator"
)

// ErrInvalidTableLookup marks a table miss for a key that should be in range.
// It is only ever raised through a panic.
var ErrInvalidTableLookup = errors.New("invalid strategy table lookup")

// Dealer upcards 2 through 11 (Ace) map to buckets 0 through 9.
const (
	MinUpcard  = 2
	MaxUpcard  = 11
	NumBuckets = MaxUpcard - MinUpcard + 1
)

// PairCategory identifies a pair for the splitting table
type PairCategory int

const (
	PairAces PairCategory = iota
	PairTens
	PairNines
	PairEights
	PairSevens
	PairSixes
	PairFives
	PairFours
	PairThrees
	PairTwos
	NumPairCategories
)

func (p PairCategory) String() string {
	switch {
	case p == PairAces:
		return "A,A"
	case p == PairTens:
		return "T,T"
	case p > PairTens && p < NumPairCategories:
		v := 11 - int(p)
		return fmt.Sprintf("%d,%d", v, v)
	default:
		return "?"
	}
}

// PairCategoryOf returns the category of a pair of cards of the given rank.
func PairCategoryOf(rank deck.Rank) PairCategory {
	switch v := rank.Value(); v {
	case 11:
		return PairAces
	case 10:
		return PairTens
	default:
		return PairCategory(11 - v)
	}
}

const (
	NumSoftTotals = evaluator.SoftTotalMax - evaluator.SoftTotalMin + 1
	MinHardTotal  = 8
	MaxHardTotal  = 17
	NumHardTotals = MaxHardTotal - MinHardTotal + 1
)

const (
	pY  = PairSplit
	pYN = PairSplitIfDoubleAfterSplit
	pN  = PairNoSplit

	sH  = SoftHit
	sS  = SoftStand
	sD  = SoftDoubleElseHit
	sDs = SoftDoubleElseStand

	hH = HardHit
	hS = HardStand
	hD = HardDoubleElseHit
)

// PairSplitTable is indexed by PairCategory and dealer bucket.
var PairSplitTable = [NumPairCategories][NumBuckets]PairAction{
	PairAces:   {pY, pY, pY, pY, pY, pY, pY, pY, pY, pY},
	PairTens:   {pN, pN, pN, pN, pN, pN, pN, pN, pN, pN},
	PairNines:  {pN, pN, pN, pN, pN, pN, pY, pY, pN, pN},
	PairEights: {pY, pY, pY, pY, pY, pY, pY, pY, pY, pY},
	PairSevens: {pY, pY, pY, pY, pY, pY, pN, pN, pN, pN},
	PairSixes:  {pYN, pY, pY, pY, pY, pN, pN, pN, pN, pN},
	PairFives:  {pN, pN, pN, pN, pN, pN, pN, pN, pN, pN},
	PairFours:  {pN, pN, pN, pYN, pYN, pN, pN, pN, pN, pN},
	PairThrees: {pYN, pYN, pY, pY, pY, pY, pN, pN, pN, pN},
	PairTwos:   {pYN, pYN, pY, pY, pY, pY, pN, pN, pN, pN},
}

// SoftTotalTable is indexed by soft total minus 13 and dealer bucket.
var SoftTotalTable = [NumSoftTotals][NumBuckets]SoftAction{
	13 - evaluator.SoftTotalMin: {sH, sH, sH, sD, sD, sH, sH, sH, sH, sH},
	14 - evaluator.SoftTotalMin: {sH, sH, sH, sD, sD, sH, sH, sH, sH, sH},
	15 - evaluator.SoftTotalMin: {sH, sH, sH, sD, sD, sH, sH, sH, sH, sH},
	16 - evaluator.SoftTotalMin: {sH, sH, sD, sD, sD, sH, sH, sH, sH, sH},
	17 - evaluator.SoftTotalMin: {sH, sD, sD, sD, sD, sH, sH, sH, sH, sH},
	18 - evaluator.SoftTotalMin: {sDs, sDs, sDs, sDs, sDs, sS, sS, sH, sH, sH},
	19 - evaluator.SoftTotalMin: {sS, sS, sS, sS, sDs, sS, sS, sS, sS, sS},
	20 - evaluator.SoftTotalMin: {sS, sS, sS, sS, sS, sS, sS, sS, sS, sS},
}

// HardTotalTable is indexed by hard total minus 8 and dealer bucket.
var HardTotalTable = [NumHardTotals][NumBuckets]HardAction{
	8 - MinHardTotal:  {hH, hH, hH, hH, hH, hH, hH, hH, hH, hH},
	9 - MinHardTotal:  {hH, hD, hD, hD, hD, hH, hH, hH, hH, hH},
	10 - MinHardTotal: {hD, hD, hD, hD, hD, hD, hD, hD, hH, hH},
	11 - MinHardTotal: {hD, hD, hD, hD, hD, hD, hD, hD, hD, hD},
	12 - MinHardTotal: {hH, hH, hS, hS, hS, hH, hH, hH, hH, hH},
	13 - MinHardTotal: {hS, hS, hS, hS, hS, hH, hH, hH, hH, hH},
	14 - MinHardTotal: {hS, hS, hS, hS, hS, hH, hH, hH, hH, hH},
	15 - MinHardTotal: {hS, hS, hS, hS, hS, hH, hH, hH, hH, hH},
	16 - MinHardTotal: {hS, hS, hS, hS, hS, hH, hH, hH, hH, hH},
	17 - MinHardTotal: {hS, hS, hS, hS, hS, hS, hS, hS, hS, hS},
}

func init() {
	if err := validateTables(); err != nil {
		panic(err)
	}
}

// validateTables checks that every table entry is populated.
func validateTables() error {
	for cat, row := range PairSplitTable {
		for b, a := range row {
			if a == pairUnset {
				return fmt.Errorf("%w: pair table %s bucket %d unset", ErrInvalidTableLookup, PairCategory(cat), b)
			}
		}
	}
	for i, row := range SoftTotalTable {
		for b, a := range row {
			if a == softUnset {
				return fmt.Errorf("%w: soft table %d bucket %d unset", ErrInvalidTableLookup, i+evaluator.SoftTotalMin, b)
			}
		}
	}
	for i, row := range HardTotalTable {
		for b, a := range row {
			if a == hardUnset {
				return fmt.Errorf("%w: hard table %d bucket %d unset", ErrInvalidTableLookup, i+MinHardTotal, b)
			}
		}
	}
	return nil
}

func lookupPair(cat PairCategory, bucket int) PairAction {
	if cat < 0 || cat >= NumPairCategories || bucket < 0 || bucket >= NumBuckets {
		panic(fmt.Errorf("%w: pair %s bucket %d", ErrInvalidTableLookup, cat, bucket))
	}
	return PairSplitTable[cat][bucket]
}

func lookupSoft(total, bucket int) SoftAction {
	i := total - evaluator.SoftTotalMin
	if i < 0 || i >= NumSoftTotals || bucket < 0 || bucket >= NumBuckets {
		panic(fmt.Errorf("%w: soft total %d bucket %d", ErrInvalidTableLookup, total, bucket))
	}
	return SoftTotalTable[i][bucket]
}

func lookupHard(total, bucket int) HardAction {
	i := total - MinHardTotal
	if i < 0 || i >= NumHardTotals || bucket < 0 || bucket >= NumBuckets {
		panic(fmt.Errorf("%w: hard total %d bucket %d", ErrInvalidTableLookup, total, bucket))
	}
	return HardTotalTable[i][bucket]
}
