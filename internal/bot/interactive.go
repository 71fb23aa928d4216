package bot

import "github.com/lox/blackjack/internal/strategy"

// InteractivePlayer waits for a human. With a fallback it plays that
// strategy instead, which is how "automate interactive player" works.
type InteractivePlayer struct {
	fallback Strategy
}

// NewInteractive creates an interactive player; fallback may be nil
func NewInteractive(fallback Strategy) *InteractivePlayer {
	return &InteractivePlayer{fallback: fallback}
}

func (i *InteractivePlayer) Archetype() Archetype { return Interactive }

// Automated reports whether the player acts without input
func (i *InteractivePlayer) Automated() bool { return i.fallback != nil }

func (i *InteractivePlayer) Bet(ctx BetContext) (int, error) {
	if i.fallback == nil {
		return 0, ErrNeedsInput
	}
	return i.fallback.Bet(ctx)
}

func (i *InteractivePlayer) Decide(ctx DecisionContext) (strategy.Action, error) {
	if i.fallback == nil {
		return 0, ErrNeedsInput
	}
	return i.fallback.Decide(ctx)
}
