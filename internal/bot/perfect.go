package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/strategy"
)

// Perfect plays the basic-strategy charts with a flat bet.
type Perfect struct {
	unit   int
	logger *log.Logger
}

// NewPerfect creates a basic-strategy player betting strategy.DefaultUnit
func NewPerfect(logger *log.Logger) *Perfect {
	return &Perfect{
		unit:   strategy.DefaultUnit,
		logger: logger.WithPrefix("perfect"),
	}
}

func (p *Perfect) Archetype() Archetype { return PerfectBlackjack }

// Bet returns the flat unit, limited to what the player can cover.
func (p *Perfect) Bet(ctx BetContext) (int, error) {
	return clampBet(strategy.FlatBet(p.unit), ctx.Available), nil
}

// Decide looks the hand up in the basic-strategy charts.
func (p *Perfect) Decide(ctx DecisionContext) (strategy.Action, error) {
	return decide(p.logger, ctx)
}
