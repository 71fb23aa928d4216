package game

import (
	"fmt"

	"github.com/lox/blackjack/internal/strategy"
)

// EventType names an event the engine accepts
type EventType string

const (
	EventStartGame        EventType = "START_GAME"
	EventPlaceBet         EventType = "PLACE_BET"
	EventHit              EventType = "HIT"
	EventStand            EventType = "STAND"
	EventDouble           EventType = "DOUBLE"
	EventSplit            EventType = "SPLIT"
	EventDealAnotherRound EventType = "DEAL_ANOTHER_ROUND"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is an input to the round state machine
type Event interface {
	Type() EventType
}

// BetMode selects how PlaceBet combines with an existing bet
type BetMode int

const (
	// Aggregate adds the amount to the hand's current bet.
	Aggregate BetMode = iota
	// Override replaces the hand's bet with the amount.
	Override
)

func (m BetMode) String() string {
	if m == Override {
		return "override"
	}
	return "aggregate"
}

// StartGame deals the round once every seated player is ready.
type StartGame struct{}

func (StartGame) Type() EventType { return EventStartGame }

// PlaceBet sets the wager on one of a player's hands. An Override of zero
// clears the bet and the ready flag.
type PlaceBet struct {
	PlayerID string
	HandIdx  int
	Amount   int
	Mode     BetMode
	SetReady bool
}

func (PlaceBet) Type() EventType { return EventPlaceBet }

func (e PlaceBet) String() string {
	return fmt.Sprintf("%s{%s[%d] %s %d ready=%t}", e.Type(), e.PlayerID, e.HandIdx, e.Mode, e.Amount, e.SetReady)
}

// Target names a specific hand. The zero Target means the active hand.
type Target struct {
	PlayerID string
	HandIdx  int
}

func (t Target) targeted() bool {
	return t.PlayerID != ""
}

func (t Target) String() string {
	if !t.targeted() {
		return "active"
	}
	return fmt.Sprintf("%s[%d]", t.PlayerID, t.HandIdx)
}

// Hit draws a card into the hand.
type Hit struct{ Target }

// Stand finishes the hand.
type Stand struct{ Target }

// Double doubles the bet, draws one card and finishes the hand.
type Double struct{ Target }

// Split turns a pair into two hands.
type Split struct{ Target }

func (Hit) Type() EventType    { return EventHit }
func (Stand) Type() EventType  { return EventStand }
func (Double) Type() EventType { return EventDouble }
func (Split) Type() EventType  { return EventSplit }

func (e Hit) String() string    { return fmt.Sprintf("%s{%s}", e.Type(), e.Target) }
func (e Stand) String() string  { return fmt.Sprintf("%s{%s}", e.Type(), e.Target) }
func (e Double) String() string { return fmt.Sprintf("%s{%s}", e.Type(), e.Target) }
func (e Split) String() string  { return fmt.Sprintf("%s{%s}", e.Type(), e.Target) }

// DealAnotherRound clears the table after settlement and opens betting.
type DealAnotherRound struct{}

func (DealAnotherRound) Type() EventType { return EventDealAnotherRound }

// ActionEvent builds the event that carries out a strategy action.
func ActionEvent(a strategy.Action, t Target) (Event, error) {
	switch a {
	case strategy.Hit:
		return Hit{t}, nil
	case strategy.Stand:
		return Stand{t}, nil
	case strategy.Double:
		return Double{t}, nil
	case strategy.Split:
		return Split{t}, nil
	default:
		return nil, fmt.Errorf("unknown action %v", a)
	}
}
