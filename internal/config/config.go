// Package config loads the table configuration from HCL.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/game"
)

// Config represents the complete table configuration
type Config struct {
	LogLevel     string              `hcl:"log_level,optional"`
	SpectateAddr string              `hcl:"spectate_addr,optional"` // websocket feed, off when empty
	Table        *TableSettings      `hcl:"table,block"`
	Automation   *AutomationSettings `hcl:"automation,block"`
	Players      []PlayerConfig      `hcl:"player,block"`
}

// TableSettings are the house rules
type TableSettings struct {
	Decks            int     `hcl:"decks,optional"`
	Penetration      float64 `hcl:"penetration,optional"`
	DealerHitsSoft17 bool    `hcl:"dealer_hits_soft17,optional"`
	DoubleAfterSplit *bool   `hcl:"double_after_split,optional"`
	MaxHands         int     `hcl:"max_hands,optional"`
	Seed             int64   `hcl:"seed,optional"` // 0 picks a time-based seed
}

// AutomationSettings control automated players and pacing
type AutomationSettings struct {
	Enabled             *bool `hcl:"enabled,optional"`
	AutomateInteractive bool  `hcl:"automate_interactive,optional"`
	PlayerDelayMs       int   `hcl:"player_delay_ms,optional"`
	AutoStart           *bool `hcl:"auto_start,optional"`
	StartDelayMs        int   `hcl:"start_delay_ms,optional"`
}

// PlayerConfig seats one player
type PlayerConfig struct {
	ID       string `hcl:"id,label"`
	Name     string `hcl:"name,optional"`
	Strategy string `hcl:"strategy"`
	Balance  int    `hcl:"balance,optional"`
}

const (
	defaultBalance       = 10_000
	defaultPlayerDelayMs = 500
	defaultStartDelayMs  = 300
)

// DefaultConfig returns a six-deck table with an interactive player, a
// basic-strategy player and a counter.
func DefaultConfig() *Config {
	cfg := &Config{
		Players: []PlayerConfig{
			{ID: "player1", Strategy: "interactive"},
			{ID: "player2", Strategy: "perfect-blackjack"},
			{ID: "player3", Strategy: "counting"},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if len(cfg.Players) == 0 {
		cfg.Players = DefaultConfig().Players
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	rules := game.DefaultRules()
	if c.Table.Decks == 0 {
		c.Table.Decks = rules.Decks
	}
	if c.Table.Penetration == 0 {
		c.Table.Penetration = rules.Penetration
	}
	if c.Table.DoubleAfterSplit == nil {
		c.Table.DoubleAfterSplit = ptr(rules.DoubleAfterSplit)
	}
	if c.Table.MaxHands == 0 {
		c.Table.MaxHands = rules.MaxHands
	}

	if c.Automation == nil {
		c.Automation = &AutomationSettings{}
	}
	if c.Automation.Enabled == nil {
		c.Automation.Enabled = ptr(true)
	}
	if c.Automation.AutoStart == nil {
		c.Automation.AutoStart = ptr(true)
	}
	if c.Automation.PlayerDelayMs == 0 {
		c.Automation.PlayerDelayMs = defaultPlayerDelayMs
	}
	if c.Automation.StartDelayMs == 0 {
		c.Automation.StartDelayMs = defaultStartDelayMs
	}

	for i := range c.Players {
		p := &c.Players[i]
		if p.Balance == 0 {
			p.Balance = defaultBalance
		}
		if p.Name == "" {
			p.Name = "player " + p.Strategy
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.Table.Decks < 1 {
		return fmt.Errorf("decks must be at least 1, got %d", c.Table.Decks)
	}
	if c.Table.Penetration <= 0 || c.Table.Penetration > 1 {
		return fmt.Errorf("penetration must be in (0, 1], got %v", c.Table.Penetration)
	}
	if c.Table.MaxHands < 1 {
		return fmt.Errorf("max hands must be at least 1, got %d", c.Table.MaxHands)
	}
	if c.Automation.PlayerDelayMs < 0 || c.Automation.StartDelayMs < 0 {
		return fmt.Errorf("automation delays must not be negative")
	}

	if len(c.Players) == 0 {
		return fmt.Errorf("at least one player must be configured")
	}
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if seen[p.ID] {
			return fmt.Errorf("player %s: duplicate id", p.ID)
		}
		seen[p.ID] = true
		if _, err := bot.ParseArchetype(p.Strategy); err != nil {
			return fmt.Errorf("player %s: %w", p.ID, err)
		}
		if p.Balance <= 0 {
			return fmt.Errorf("player %s: balance must be positive", p.ID)
		}
	}
	return nil
}

// Rules returns the table rules
func (c *Config) Rules() game.Rules {
	return game.Rules{
		Decks:            c.Table.Decks,
		Penetration:      c.Table.Penetration,
		DealerHitsSoft17: c.Table.DealerHitsSoft17,
		DoubleAfterSplit: *c.Table.DoubleAfterSplit,
		MaxHands:         c.Table.MaxHands,
	}
}

// Seats returns the configured players in seat order
func (c *Config) Seats() ([]game.Seat, error) {
	seats := make([]game.Seat, len(c.Players))
	for i, p := range c.Players {
		a, err := bot.ParseArchetype(p.Strategy)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", p.ID, err)
		}
		seats[i] = game.Seat{ID: p.ID, Name: p.Name, Balance: p.Balance, Archetype: a}
	}
	return seats, nil
}

// Strategies returns the strategy for each player id, or none when
// automation is disabled. Interactive players only play on their own when
// automate_interactive is set.
func (c *Config) Strategies(logger *log.Logger) (map[string]bot.Strategy, error) {
	strategies := make(map[string]bot.Strategy, len(c.Players))
	if !*c.Automation.Enabled {
		return strategies, nil
	}
	for _, p := range c.Players {
		a, err := bot.ParseArchetype(p.Strategy)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", p.ID, err)
		}
		s, err := bot.New(a, logger, c.Automation.AutomateInteractive)
		if err != nil {
			return nil, err
		}
		strategies[p.ID] = s
	}
	return strategies, nil
}

// PlayerDelay is the pause before an automated player acts
func (c *Config) PlayerDelay() time.Duration {
	return time.Duration(c.Automation.PlayerDelayMs) * time.Millisecond
}

// StartDelay is the pause before dealing once everyone is ready
func (c *Config) StartDelay() time.Duration {
	return time.Duration(c.Automation.StartDelayMs) * time.Millisecond
}

func ptr[T any](v T) *T {
	return &v
}
