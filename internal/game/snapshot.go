package game

import (
	"github.com/lox/blackjack/internal/count"
	"github.com/lox/blackjack/internal/evaluator"
)

// Snapshot is a read-only deep copy of the round context. Mutating it has
// no effect on the engine.
type Snapshot struct {
	Round         int
	Version       uint64 // bumped on every change
	Phase         Phase
	Players       []Player
	Dealer        Dealer
	Turn          Turn
	Rules         Rules
	ShoeRemaining int
	ShoeSize      int
	Count         count.State
}

// Player returns the player with the given id
func (s Snapshot) Player(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// AllPlayersReady reports whether every seated player's first hand is
// marked ready.
func (s Snapshot) AllPlayersReady() bool {
	return allPlayersReady(s.Players)
}

// AllPlayersSetBets reports whether every seated player has a bet on every
// hand.
func (s Snapshot) AllPlayersSetBets() bool {
	seated := 0
	for _, p := range s.Players {
		if !p.Seated() {
			continue
		}
		seated++
		for _, h := range p.Hands {
			if h.Bet == 0 {
				return false
			}
		}
	}
	return seated > 0
}

// IsRoundFinished reports whether the dealer has played and the round is
// settled.
func (s Snapshot) IsRoundFinished() bool {
	return s.Phase == Settlement && s.Dealer.FinalCount > 0
}

func (s Snapshot) IsPlayersTurn() bool {
	return s.Phase == PlayersTurn
}

func (s Snapshot) IsWaitingForBets() bool {
	return s.Phase == Idle || s.Phase == PlaceBets
}

// ActiveHand returns the player and hand the turn points at.
func (s Snapshot) ActiveHand() (Player, Hand, bool) {
	if s.Turn.Kind != TurnPlayer {
		return Player{}, Hand{}, false
	}
	p, ok := s.Player(s.Turn.PlayerID)
	if !ok || s.Turn.HandIdx >= len(p.Hands) {
		return Player{}, Hand{}, false
	}
	return p, p.Hands[s.Turn.HandIdx], true
}

// DealerUpcard returns the strategy value (2-11) of the dealer's face-up
// card, or 0 before the deal.
func (s Snapshot) DealerUpcard() int {
	if len(s.Dealer.Hand.Cards) == 0 {
		return 0
	}
	return s.Dealer.Hand.Cards[0].Value()
}

// DealerTotal returns the dealer's best visible total.
func (s Snapshot) DealerTotal() int {
	visible := s.Dealer.Hand.Cards[:0:0]
	for _, c := range s.Dealer.Hand.Cards {
		if c.Visible {
			visible = append(visible, c)
		}
	}
	if len(visible) == 0 {
		return 0
	}
	return evaluator.BestTotal(visible)
}

// CanDouble reports whether the active hand may double.
func (s Snapshot) CanDouble() bool {
	p, _, ok := s.ActiveHand()
	return ok && canDouble(p, s.Turn.HandIdx, s.Rules) == nil
}

// CanSplit reports whether the active hand may split.
func (s Snapshot) CanSplit() bool {
	p, _, ok := s.ActiveHand()
	return ok && canSplit(p, s.Turn.HandIdx, s.Rules) == nil
}
