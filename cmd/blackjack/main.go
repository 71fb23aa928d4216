package main

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"blackjack.hcl" help:"Table configuration file (defaults apply when missing)"`
	LogLevel string `help:"Override the configured log level (debug, info, warn, error)"`
	NoColor  bool   `help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play at the table in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate automated players over many rounds"`
	Strategy StrategyCmd      `cmd:"" help:"Print the basic strategy charts"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Multi-player blackjack table with basic-strategy and card-counting bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// loadConfig reads and validates the configuration, applying flag overrides.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", g.Config, err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	}), nil
}
