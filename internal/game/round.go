package game

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/count"
	"github.com/lox/blackjack/internal/deck"
)

// Phase of a round
type Phase int

const (
	Idle Phase = iota
	PlaceBets
	InitialDeal
	PlayersTurn
	DealerTurn
	Settlement
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case PlaceBets:
		return "place-bets"
	case InitialDeal:
		return "initial-deal"
	case PlayersTurn:
		return "players-turn"
	case DealerTurn:
		return "dealer-turn"
	case Settlement:
		return "settlement"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Outcome of a settled hand
type Outcome int

const (
	Pending Outcome = iota
	Win
	Natural
	Push
	Lose
	Bust
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Win:
		return "win"
	case Natural:
		return "blackjack"
	case Push:
		return "push"
	case Lose:
		return "lose"
	case Bust:
		return "bust"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Hand is one set of cards with its wager. Players hold more than one hand
// only after a split.
type Hand struct {
	Cards      []deck.Card
	Bet        int
	IsFinished bool
	IsReady    bool
	FromSplit  bool
	Doubled    bool
	Outcome    Outcome
	Payout     int // net balance change at settlement
}

func (h Hand) clone() Hand {
	h.Cards = slices.Clone(h.Cards)
	return h
}

// Player is a seat at the table
type Player struct {
	ID        string
	Name      string
	Balance   int
	Archetype bot.Archetype
	Hands     []Hand
}

func (p Player) clone() Player {
	hands := make([]Hand, len(p.Hands))
	for i, h := range p.Hands {
		hands[i] = h.clone()
	}
	p.Hands = hands
	return p
}

// Committed is the total wagered across the player's hands.
func (p Player) Committed() int {
	total := 0
	for _, h := range p.Hands {
		total += h.Bet
	}
	return total
}

// Available is the balance not yet committed to a bet.
func (p Player) Available() int {
	return p.Balance - p.Committed()
}

// Seated reports whether the player takes part in rounds. A player whose
// balance is exhausted sits out.
func (p Player) Seated() bool {
	return p.Balance > 0
}

// Dealer holds the house hand. Its second card is dealt face down.
type Dealer struct {
	Hand       Hand
	FinalCount int // zero until the dealer has played
}

// TurnKind says who is acting
type TurnKind int

const (
	TurnNone TurnKind = iota
	TurnPlayer
	TurnDealer
)

// Turn points at the hand that acts next.
type Turn struct {
	Kind     TurnKind
	PlayerID string
	HandIdx  int
}

func (t Turn) String() string {
	switch t.Kind {
	case TurnPlayer:
		return fmt.Sprintf("%s[%d]", t.PlayerID, t.HandIdx)
	case TurnDealer:
		return "dealer"
	default:
		return "none"
	}
}

// Rules are the table rules for a session
type Rules struct {
	Decks            int
	Penetration      float64 // dealt fraction that triggers a reshuffle
	DealerHitsSoft17 bool
	DoubleAfterSplit bool
	MaxHands         int // per player, after splits
}

// DefaultRules returns a six-deck shoe reshuffled at 75% penetration
func DefaultRules() Rules {
	return Rules{
		Decks:            6,
		Penetration:      0.75,
		DealerHitsSoft17: false,
		DoubleAfterSplit: true,
		MaxHands:         4,
	}
}

// DealerStandsOn is the lowest total the dealer stands on
const DealerStandsOn = 17

// cardsPerHandReserve is how many cards the shoe keeps per hand before a
// deal. A shorter shoe is reshuffled first.
const cardsPerHandReserve = 6

// Seat describes a player joining the table
type Seat struct {
	ID        string
	Name      string
	Balance   int
	Archetype bot.Archetype
}

// round is the mutable round context owned by the Engine.
type round struct {
	number  int
	version uint64
	phase   Phase
	shoe    *deck.Shoe
	tracker *count.Tracker
	players []Player
	dealer  Dealer
	turn    Turn
	rules   Rules
	logger  *log.Logger
}

func (r *round) clone() *round {
	c := *r
	c.tracker = r.tracker.Clone()
	c.shoe = r.shoe.Clone(c.tracker)
	c.players = make([]Player, len(r.players))
	for i, p := range r.players {
		c.players[i] = p.clone()
	}
	c.dealer.Hand = r.dealer.Hand.clone()
	return &c
}

func (r *round) player(id string) (*Player, error) {
	for i := range r.players {
		if r.players[i].ID == id {
			return &r.players[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, id)
}

func (r *round) snapshot() Snapshot {
	players := make([]Player, len(r.players))
	for i, p := range r.players {
		players[i] = p.clone()
	}
	return Snapshot{
		Round:         r.number,
		Version:       r.version,
		Phase:         r.phase,
		Players:       players,
		Dealer:        Dealer{Hand: r.dealer.Hand.clone(), FinalCount: r.dealer.FinalCount},
		Turn:          r.turn,
		Rules:         r.rules,
		ShoeRemaining: r.shoe.Len(),
		ShoeSize:      r.shoe.Size(),
		Count:         r.tracker.State(r.shoe.Len()),
	}
}
