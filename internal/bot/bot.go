// Package bot implements the player archetypes that can bet and play a hand
// without a human: basic strategy and Hi-Lo counting. Interactive players
// share the interface and only act when automation is switched on.
package bot

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/count"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/strategy"
)

// ErrNeedsInput is returned by an interactive player that is not automated.
var ErrNeedsInput = errors.New("interactive player must act")

// Archetype identifies a player's strategy
type Archetype int

const (
	Interactive Archetype = iota
	PerfectBlackjack
	Counting
)

func (a Archetype) String() string {
	switch a {
	case Interactive:
		return "interactive"
	case PerfectBlackjack:
		return "perfect-blackjack"
	case Counting:
		return "counting"
	default:
		return fmt.Sprintf("archetype(%d)", int(a))
	}
}

// ParseArchetype parses the names used in configuration files
func ParseArchetype(s string) (Archetype, error) {
	switch s {
	case "interactive":
		return Interactive, nil
	case "perfect-blackjack", "perfect":
		return PerfectBlackjack, nil
	case "counting":
		return Counting, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", s)
	}
}

// BetContext is what a strategy sees when sizing a bet.
type BetContext struct {
	PlayerID  string
	Available int // balance not yet committed to a bet
	Count     count.State
}

// DecisionContext is what a strategy sees when playing a hand.
type DecisionContext struct {
	PlayerID         string
	Cards            []deck.Card
	DealerUpcard     int
	CanDouble        bool
	CanSplit         bool
	DoubleAfterSplit bool
}

// Strategy bets and plays for one player. Implementations are pure: they
// return decisions and never touch game state.
type Strategy interface {
	Archetype() Archetype
	Bet(ctx BetContext) (int, error)
	Decide(ctx DecisionContext) (strategy.Action, error)
}

// New returns the strategy for an archetype. automateInteractive makes an
// interactive player play basic strategy.
func New(a Archetype, logger *log.Logger, automateInteractive bool) (Strategy, error) {
	switch a {
	case Interactive:
		var fallback Strategy
		if automateInteractive {
			fallback = NewPerfect(logger)
		}
		return NewInteractive(fallback), nil
	case PerfectBlackjack:
		return NewPerfect(logger), nil
	case Counting:
		return NewCounting(logger, strategy.DefaultCountingBet), nil
	default:
		return nil, fmt.Errorf("no strategy for %s", a)
	}
}

func clampBet(bet, available int) int {
	if bet > available {
		return available
	}
	return bet
}

func decide(logger *log.Logger, ctx DecisionContext) (strategy.Action, error) {
	action, err := strategy.Decide(ctx.Cards, ctx.DealerUpcard, strategy.Options{
		CanDouble:        ctx.CanDouble,
		DoubleAfterSplit: ctx.DoubleAfterSplit,
		NoSplit:          !ctx.CanSplit,
	})
	if err != nil {
		return 0, err
	}
	logger.Debug("Decision", "player", ctx.PlayerID, "cards", ctx.Cards, "upcard", ctx.DealerUpcard, "action", action)
	return action, nil
}
