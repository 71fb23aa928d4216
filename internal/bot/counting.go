package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/strategy"
)

// CountingBot plays basic strategy and ramps its bet with the Hi-Lo true count.
type CountingBot struct {
	cfg    strategy.CountingBetConfig
	logger *log.Logger
}

// NewCounting creates a counting player with the given bet ramp
func NewCounting(logger *log.Logger, cfg strategy.CountingBetConfig) *CountingBot {
	return &CountingBot{
		cfg:    cfg,
		logger: logger.WithPrefix("counting"),
	}
}

func (c *CountingBot) Archetype() Archetype { return Counting }

// Bet sizes the wager from the running count and decks remaining.
func (c *CountingBot) Bet(ctx BetContext) (int, error) {
	bet := strategy.CountingBet(ctx.Count.Running, ctx.Count.DecksRemaining, c.cfg)
	c.logger.Debug("Bet sized",
		"player", ctx.PlayerID,
		"running", ctx.Count.Running,
		"trueCount", ctx.Count.TrueCount,
		"bet", bet)
	return clampBet(bet, ctx.Available), nil
}

// Decide plays the same charts as the basic-strategy player.
func (c *CountingBot) Decide(ctx DecisionContext) (strategy.Action, error) {
	return decide(c.logger, ctx)
}
