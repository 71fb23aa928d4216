package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd plays automated sessions without a terminal UI
type SimulateCmd struct {
	Rounds   int    `default:"1000" help:"Rounds per session"`
	Sessions int    `default:"8" help:"Independent sessions, each with a fresh shoe and balances"`
	Workers  int    `help:"Sessions played in parallel (defaults to GOMAXPROCS)"`
	Seed     int64  `help:"Base seed (0 uses the configured seed, or a random one)"`
	Output   string `short:"o" help:"Write the report as JSON to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	seats, err := cfg.Seats()
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = cfg.Table.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting simulation", "sessions", c.Sessions, "rounds", c.Rounds, "seed", seed)
	start := time.Now()
	report, err := simulator.Run(ctx, simulator.Config{
		Rounds:   c.Rounds,
		Sessions: c.Sessions,
		Workers:  c.Workers,
		Seed:     seed,
		Rules:    cfg.Rules(),
		Seats:    seats,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	logger.Info("Simulation complete", "duration", time.Since(start).Round(time.Millisecond))

	fmt.Println(display.NewRenderer(os.Stdout, g.NoColor).SimulationReport(report))

	if c.Output != "" {
		if err := fileutil.WriteJSON(c.Output, report, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Report written", "file", c.Output)
	}
	return nil
}
