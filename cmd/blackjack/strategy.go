package main

import (
	"fmt"
	"os"

	"github.com/lox/blackjack/internal/display"
)

// StrategyCmd prints the basic strategy charts the bots play by
type StrategyCmd struct{}

func (c *StrategyCmd) Run(g *Globals) error {
	fmt.Println(display.NewRenderer(os.Stdout, g.NoColor).StrategyCharts())
	return nil
}
