package strategy

import "fmt"

// Action is the decision returned by the advisor
type Action int

const (
	Hit Action = iota + 1
	Stand
	Double
	Split
)

func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// PairAction is an entry of the pair splitting table
type PairAction int

const (
	pairUnset PairAction = iota
	PairSplit
	PairSplitIfDoubleAfterSplit
	PairNoSplit
)

// Code returns the short chart notation for the entry
func (a PairAction) Code() string {
	switch a {
	case PairSplit:
		return "Y"
	case PairSplitIfDoubleAfterSplit:
		return "Y/N"
	case PairNoSplit:
		return "N"
	default:
		return "?"
	}
}

// SoftAction is an entry of the soft totals table
type SoftAction int

const (
	softUnset SoftAction = iota
	SoftHit
	SoftStand
	SoftDoubleElseHit
	SoftDoubleElseStand
)

// Code returns the short chart notation for the entry
func (a SoftAction) Code() string {
	switch a {
	case SoftHit:
		return "H"
	case SoftStand:
		return "S"
	case SoftDoubleElseHit:
		return "D"
	case SoftDoubleElseStand:
		return "Ds"
	default:
		return "?"
	}
}

// HardAction is an entry of the hard totals table
type HardAction int

const (
	hardUnset HardAction = iota
	HardHit
	HardStand
	HardDoubleElseHit
)

// Code returns the short chart notation for the entry
func (a HardAction) Code() string {
	switch a {
	case HardHit:
		return "H"
	case HardStand:
		return "S"
	case HardDoubleElseHit:
		return "D"
	default:
		return "?"
	}
}
