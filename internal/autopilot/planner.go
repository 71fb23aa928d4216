// Package autopilot submits events for automated players. The Planner
// computes the next event from a snapshot without side effects; the
// Scheduler sends planned events after a delay for presentation pacing.
// Dropping the delay changes no outcome.
package autopilot

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/game"
)

// maxEventsPerRun bounds Run in case a strategy never finishes a round.
const maxEventsPerRun = 10_000

// ErrStalled is returned by Run when it exceeds its event budget.
var ErrStalled = errors.New("autopilot made no progress")

// Sender is the part of the engine the autopilot drives.
type Sender interface {
	Send(ev game.Event) (game.Snapshot, error)
	Snapshot() game.Snapshot
}

// PlannerOption configures a Planner
type PlannerOption func(*Planner)

// WithAutoStart sends START_GAME once every player is ready. Default true.
func WithAutoStart(enabled bool) PlannerOption {
	return func(p *Planner) { p.autoStart = enabled }
}

// WithAutoDeal sends DEAL_ANOTHER_ROUND once a round is settled. Default false.
func WithAutoDeal(enabled bool) PlannerOption {
	return func(p *Planner) { p.autoDeal = enabled }
}

// Planner decides the next event for automated players.
type Planner struct {
	strategies map[string]bot.Strategy
	autoStart  bool
	autoDeal   bool
	logger     *log.Logger
}

// NewPlanner creates a planner for the given strategies, keyed by player id.
// Players without a strategy are left to a human.
func NewPlanner(strategies map[string]bot.Strategy, logger *log.Logger, opts ...PlannerOption) *Planner {
	p := &Planner{
		strategies: strategies,
		autoStart:  true,
		logger:     logger.WithPrefix("autopilot"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Next returns the event an automated player or the table would submit
// now. ok is false when the round is waiting on a human or nothing is due.
func (p *Planner) Next(s game.Snapshot) (ev game.Event, ok bool, err error) {
	switch {
	case s.IsWaitingForBets():
		return p.nextBet(s)
	case s.IsPlayersTurn():
		return p.nextAction(s)
	case s.IsRoundFinished() && p.autoDeal:
		return game.DealAnotherRound{}, true, nil
	}
	return nil, false, nil
}

func (p *Planner) nextBet(s game.Snapshot) (game.Event, bool, error) {
	for _, player := range s.Players {
		if !player.Seated() || player.Hands[0].IsReady {
			continue
		}
		strat, found := p.strategies[player.ID]
		if !found {
			continue
		}
		bet, err := strat.Bet(bot.BetContext{
			PlayerID:  player.ID,
			Available: player.Available() + player.Hands[0].Bet,
			Count:     s.Count,
		})
		if errors.Is(err, bot.ErrNeedsInput) {
			continue
		}
		if err != nil {
			return nil, false, fmt.Errorf("bet for %s: %w", player.ID, err)
		}
		if bet <= 0 {
			continue
		}
		return game.PlaceBet{
			PlayerID: player.ID,
			Amount:   bet,
			Mode:     game.Override,
			SetReady: true,
		}, true, nil
	}

	if p.autoStart && s.AllPlayersReady() {
		return game.StartGame{}, true, nil
	}
	return nil, false, nil
}

func (p *Planner) nextAction(s game.Snapshot) (game.Event, bool, error) {
	player, hand, active := s.ActiveHand()
	if !active {
		return nil, false, nil
	}
	strat, found := p.strategies[player.ID]
	if !found {
		return nil, false, nil
	}

	action, err := strat.Decide(bot.DecisionContext{
		PlayerID:         player.ID,
		Cards:            hand.Cards,
		DealerUpcard:     s.DealerUpcard(),
		CanDouble:        s.CanDouble(),
		CanSplit:         s.CanSplit(),
		DoubleAfterSplit: s.Rules.DoubleAfterSplit,
	})
	if errors.Is(err, bot.ErrNeedsInput) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("decision for %s: %w", player.ID, err)
	}

	ev, err := game.ActionEvent(action, game.Target{PlayerID: player.ID, HandIdx: s.Turn.HandIdx})
	if err != nil {
		return nil, false, err
	}
	return ev, true, nil
}

// Run sends planned events synchronously until nothing is due, and returns
// the last snapshot. With auto deal enabled it never runs dry, so callers
// should leave auto deal off and deal rounds themselves.
func (p *Planner) Run(e Sender) (game.Snapshot, error) {
	snap := e.Snapshot()
	for range maxEventsPerRun {
		ev, ok, err := p.Next(snap)
		if err != nil {
			return snap, err
		}
		if !ok {
			return snap, nil
		}
		snap, err = e.Send(ev)
		if err != nil {
			return snap, err
		}
	}
	return snap, ErrStalled
}
