// Package simulator plays many automated blackjack sessions in parallel and
// aggregates per-player results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/autopilot"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// ErrNoSeats is returned when the simulation has no players
var ErrNoSeats = errors.New("simulation needs at least one seat")

// Config holds configuration for running simulations
type Config struct {
	Rounds   int // per session
	Sessions int
	Workers  int // defaults to GOMAXPROCS
	Seed     int64
	Rules    game.Rules
	Seats    []game.Seat
	Logger   *log.Logger
}

// PlayerReport summarizes one seat across all sessions
type PlayerReport struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Archetype string                 `json:"archetype"`
	Stats     *statistics.Statistics `json:"-"`
	Broke     int                    `json:"broke"` // sessions that ended with no balance

	Rounds    int       `json:"rounds"`
	Net       int       `json:"net"`
	Wagered   int       `json:"wagered"`
	Mean      float64   `json:"mean"`
	StdDev    float64   `json:"stddev"`
	CI95Low   float64   `json:"ci95_low"`
	CI95High  float64   `json:"ci95_high"`
	Edge      float64   `json:"edge"`
	Wins      int       `json:"wins"`
	Naturals  int       `json:"naturals"`
	Pushes    int       `json:"pushes"`
	Losses    int       `json:"losses"`
	Busts     int       `json:"busts"`
	Doubles   int       `json:"doubles"`
	Splits    int       `json:"splits"`
	CountMean []float64 `json:"count_mean"`
}

// Report is the result of a simulation run
type Report struct {
	Seed     int64          `json:"seed"`
	Sessions int            `json:"sessions"`
	Rounds   int            `json:"rounds"`
	Rules    game.Rules     `json:"rules"`
	Players  []PlayerReport `json:"players"`
}

// session holds the results of one session, indexed by seat
type session struct {
	stats []*statistics.Statistics
	broke []bool
}

// Run plays cfg.Sessions independent sessions of cfg.Rounds rounds each.
// Session i is seeded from the base seed so results do not depend on the
// number of workers.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if len(cfg.Seats) == 0 {
		return nil, ErrNoSeats
	}
	if cfg.Sessions < 1 || cfg.Rounds < 1 {
		return nil, fmt.Errorf("sessions and rounds must be positive, got %d and %d", cfg.Sessions, cfg.Rounds)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]session, cfg.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range cfg.Sessions {
		g.Go(func() error {
			res, err := playSession(ctx, cfg, randutil.Derive(cfg.Seed, i))
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildReport(cfg, results)
}

func playSession(ctx context.Context, cfg Config, seed int64) (session, error) {
	logger := cfg.Logger.With("seed", seed)

	strategies := make(map[string]bot.Strategy, len(cfg.Seats))
	for _, seat := range cfg.Seats {
		s, err := bot.New(seat.Archetype, logger, true)
		if err != nil {
			return session{}, err
		}
		strategies[seat.ID] = s
	}

	engine := game.NewEngine(randutil.New(seed), cfg.Seats, logger, game.WithRules(cfg.Rules))
	planner := autopilot.NewPlanner(strategies, logger)

	res := session{
		stats: make([]*statistics.Statistics, len(cfg.Seats)),
		broke: make([]bool, len(cfg.Seats)),
	}
	for i := range res.stats {
		res.stats[i] = &statistics.Statistics{}
	}

	for range cfg.Rounds {
		if err := ctx.Err(); err != nil {
			return session{}, err
		}

		before := engine.Snapshot()
		if !anySeated(before) {
			break
		}

		snap, err := planner.Run(engine)
		if err != nil {
			return session{}, err
		}
		if !snap.IsRoundFinished() {
			return session{}, fmt.Errorf("round %d stopped in phase %s", snap.Round, snap.Phase)
		}

		for i, p := range snap.Players {
			result, played := roundResult(p, before.Count.TrueCount)
			if played {
				res.stats[i].Add(result)
			}
		}

		if _, err := engine.Send(game.DealAnotherRound{}); err != nil {
			return session{}, err
		}
	}

	for i, p := range engine.Snapshot().Players {
		res.broke[i] = !p.Seated()
	}
	return res, nil
}

// roundResult converts a settled player's hands into a round result.
// played is false when the player had no bet in the round.
func roundResult(p game.Player, trueCount float64) (statistics.RoundResult, bool) {
	result := statistics.RoundResult{TrueCount: trueCount}
	hands, split := 0, false
	for _, h := range p.Hands {
		if h.Bet == 0 {
			continue
		}
		hands++
		split = split || h.FromSplit
		result.Net += h.Payout
		result.Wagered += h.Bet
		if h.Doubled {
			result.Doubles++
		}
		switch h.Outcome {
		case game.Win:
			result.Outcome.Wins++
		case game.Natural:
			result.Outcome.Naturals++
		case game.Push:
			result.Outcome.Pushes++
		case game.Lose:
			result.Outcome.Losses++
		case game.Bust:
			result.Outcome.Busts++
		}
	}
	// each split adds one hand
	if split {
		result.Splits = hands - 1
	}
	return result, result.Wagered > 0
}

func anySeated(s game.Snapshot) bool {
	for _, p := range s.Players {
		if p.Seated() {
			return true
		}
	}
	return false
}

func buildReport(cfg Config, results []session) (*Report, error) {
	report := &Report{
		Seed:     cfg.Seed,
		Sessions: cfg.Sessions,
		Rounds:   cfg.Rounds,
		Rules:    cfg.Rules,
		Players:  make([]PlayerReport, len(cfg.Seats)),
	}

	for i, seat := range cfg.Seats {
		stats := &statistics.Statistics{}
		broke := 0
		for _, res := range results {
			stats.Merge(res.stats[i])
			if res.broke[i] {
				broke++
			}
		}
		if stats.Rounds > 0 {
			if err := stats.Validate(); err != nil {
				return nil, fmt.Errorf("player %s: statistics validation failed: %w", seat.ID, err)
			}
		}

		low, high := stats.ConfidenceInterval95()
		pr := PlayerReport{
			ID:        seat.ID,
			Name:      seat.Name,
			Archetype: seat.Archetype.String(),
			Stats:     stats,
			Broke:     broke,
			Rounds:    stats.Rounds,
			Net:       stats.NetTotal,
			Wagered:   stats.Wagered,
			Mean:      stats.Mean(),
			StdDev:    stats.StdDev(),
			CI95Low:   low,
			CI95High:  high,
			Edge:      stats.Edge(),
			Wins:      stats.Outcomes.Wins,
			Naturals:  stats.Outcomes.Naturals,
			Pushes:    stats.Outcomes.Pushes,
			Losses:    stats.Outcomes.Losses,
			Busts:     stats.Outcomes.Busts,
			Doubles:   stats.Doubles,
			Splits:    stats.Splits,
			CountMean: make([]float64, statistics.NumCountBuckets),
		}
		for b := range pr.CountMean {
			pr.CountMean[b] = stats.CountMean(b)
		}
		report.Players[i] = pr
	}
	return report, nil
}
