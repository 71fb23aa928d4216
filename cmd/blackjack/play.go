package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/autopilot"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/spectate"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs the interactive table
type PlayCmd struct {
	Player       string `help:"Player id to control from the keyboard (defaults to the first interactive player)"`
	Watch        bool   `help:"Only watch, every player is automated"`
	LogFile      string `default:"blackjack.log" help:"Log file, the terminal is taken by the table"`
	SpectateAddr string `help:"Serve a read-only websocket feed of the table on this address"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, cfg.LogLevel)
	if err != nil {
		return err
	}

	if c.Watch {
		enabled := true
		cfg.Automation.Enabled = &enabled
		cfg.Automation.AutomateInteractive = true
	}

	seats, err := cfg.Seats()
	if err != nil {
		return err
	}
	strategies, err := cfg.Strategies(logger)
	if err != nil {
		return err
	}

	human := ""
	if !c.Watch {
		human, err = pickHuman(cfg, c.Player)
		if err != nil {
			return err
		}
		// the keyboard plays this seat
		delete(strategies, human)
	}

	rng, seed := randutil.FromSeed(cfg.Table.Seed)
	logger.Info("Opening table", "seed", seed, "players", len(seats), "human", human)
	engine := game.NewEngine(rng, seats, logger, game.WithRules(cfg.Rules()))

	var scheduler *autopilot.Scheduler
	if len(strategies) > 0 {
		planner := autopilot.NewPlanner(strategies, logger,
			autopilot.WithAutoStart(*cfg.Automation.AutoStart),
			autopilot.WithAutoDeal(c.Watch))
		scheduler = autopilot.NewScheduler(engine, planner, quartz.NewReal(), logger,
			autopilot.WithPlayerDelay(cfg.PlayerDelay()),
			autopilot.WithStartDelay(cfg.StartDelay()))
	}

	addr := c.SpectateAddr
	if addr == "" {
		addr = cfg.SpectateAddr
	}
	if addr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		hub := spectate.NewHub(logger)
		hub.OnSnapshot(engine.Snapshot())
		defer engine.Subscribe(hub)()
		go func() {
			if err := hub.Serve(ctx, addr); err != nil {
				logger.Error("Spectator feed stopped", "error", err)
			}
		}()
	}

	renderer := display.NewRenderer(os.Stdout, g.NoColor)
	model := tui.NewModel(engine, human, renderer, logger)
	model.AddLogEntry(fmt.Sprintf("Table open, seed %d", seed))
	return tui.Run(engine, scheduler, model)
}

// pickHuman returns the requested player, or the first interactive player
// when none is requested, or the first player at a table of bots.
func pickHuman(cfg *config.Config, requested string) (string, error) {
	if requested != "" {
		if !slices.ContainsFunc(cfg.Players, func(p config.PlayerConfig) bool { return p.ID == requested }) {
			return "", fmt.Errorf("no player %q in %d configured players", requested, len(cfg.Players))
		}
		return requested, nil
	}
	for _, p := range cfg.Players {
		if a, err := bot.ParseArchetype(p.Strategy); err == nil && a == bot.Interactive {
			return p.ID, nil
		}
	}
	return cfg.Players[0].ID, nil
}
