package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, game.DefaultRules(), cfg.Rules())
	assert.Equal(t, 500*time.Millisecond, cfg.PlayerDelay())
	assert.Equal(t, 300*time.Millisecond, cfg.StartDelay())

	seats, err := cfg.Seats()
	require.NoError(t, err)
	require.Len(t, seats, 3)
	assert.Equal(t, game.Seat{ID: "player1", Name: "player interactive", Balance: 10_000, Archetype: bot.Interactive}, seats[0])
	assert.Equal(t, bot.PerfectBlackjack, seats[1].Archetype)
	assert.Equal(t, bot.Counting, seats[2].Archetype)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "debug"
spectate_addr = "localhost:8090"

table {
  decks              = 2
  penetration        = 0.5
  dealer_hits_soft17 = true
  double_after_split = false
  seed               = 42
}

automation {
  automate_interactive = true
  player_delay_ms      = 100
  auto_start           = false
}

player "alice" {
  strategy = "interactive"
  balance  = 500
}

player "bob" {
  name     = "Bob"
  strategy = "counting"
}
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "localhost:8090", cfg.SpectateAddr)
	assert.Equal(t, game.Rules{
		Decks:            2,
		Penetration:      0.5,
		DealerHitsSoft17: true,
		DoubleAfterSplit: false,
		MaxHands:         4,
	}, cfg.Rules())
	assert.Equal(t, int64(42), cfg.Table.Seed)
	assert.False(t, *cfg.Automation.AutoStart)
	assert.True(t, *cfg.Automation.Enabled)
	assert.Equal(t, 100*time.Millisecond, cfg.PlayerDelay())
	assert.Equal(t, 300*time.Millisecond, cfg.StartDelay())

	seats, err := cfg.Seats()
	require.NoError(t, err)
	assert.Equal(t, []game.Seat{
		{ID: "alice", Name: "player interactive", Balance: 500, Archetype: bot.Interactive},
		{ID: "bob", Name: "Bob", Balance: 10_000, Archetype: bot.Counting},
	}, seats)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`table {`), "broken.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`player "x" { balance = 10 }`), "missing.hcl")
	assert.Error(t, err, "strategy is required")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no decks", func(c *Config) { c.Table.Decks = -1 }},
		{"penetration above one", func(c *Config) { c.Table.Penetration = 1.5 }},
		{"negative penetration", func(c *Config) { c.Table.Penetration = -0.1 }},
		{"no hands", func(c *Config) { c.Table.MaxHands = -1 }},
		{"unknown strategy", func(c *Config) { c.Players[0].Strategy = "martingale" }},
		{"negative balance", func(c *Config) { c.Players[1].Balance = -5 }},
		{"duplicate ids", func(c *Config) { c.Players[1].ID = c.Players[0].ID }},
		{"no players", func(c *Config) { c.Players = nil }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"negative delay", func(c *Config) { c.Automation.PlayerDelayMs = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestStrategies(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})

	cfg := DefaultConfig()
	strategies, err := cfg.Strategies(logger)
	require.NoError(t, err)
	require.Len(t, strategies, 3)
	_, err = strategies["player1"].Bet(bot.BetContext{Available: 100})
	assert.ErrorIs(t, err, bot.ErrNeedsInput)

	cfg.Automation.AutomateInteractive = true
	strategies, err = cfg.Strategies(logger)
	require.NoError(t, err)
	bet, err := strategies["player1"].Bet(bot.BetContext{Available: 1_000})
	require.NoError(t, err)
	assert.Positive(t, bet)

	cfg.Automation.Enabled = ptr(false)
	strategies, err = cfg.Strategies(logger)
	require.NoError(t, err)
	assert.Empty(t, strategies)
}
