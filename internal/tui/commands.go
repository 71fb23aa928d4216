package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// BetButtons are the chip amounts a player can add with a single key.
var BetButtons = []int{1, 5, 10, 20, 50, 100}

// Command is a parsed line of user input. Event is nil for commands that
// only affect the interface.
type Command struct {
	Event game.Event
	Hint  bool
	Quit  bool
}

// ParseCommand turns user input into an engine event for player.
func ParseCommand(input string, s game.Snapshot, player string) (Command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{}, nil
	}
	verb, args := fields[0], fields[1:]

	if amount, err := strconv.Atoi(verb); err == nil {
		return betCommand(player, amount)
	}

	switch verb {
	case "quit", "q", "exit":
		return Command{Quit: true}, nil
	case "bet", "b":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("usage: bet <amount>")
		}
		amount, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("invalid amount %q", args[0])
		}
		return betCommand(player, amount)
	case "reset":
		return Command{Event: game.PlaceBet{PlayerID: player, Amount: 0, Mode: game.Override}}, nil
	case "ready", "r":
		return Command{Event: game.PlaceBet{PlayerID: player, SetReady: true}}, nil
	case "deal", "start":
		return Command{Event: game.StartGame{}}, nil
	case "next", "n":
		return Command{Event: game.DealAnotherRound{}}, nil
	case "hint", "?":
		return Command{Hint: true}, nil
	case "hit", "h":
		return actionCommand(s, player, func(t game.Target) game.Event { return game.Hit{Target: t} })
	case "stand", "s":
		return actionCommand(s, player, func(t game.Target) game.Event { return game.Stand{Target: t} })
	case "double", "d":
		return actionCommand(s, player, func(t game.Target) game.Event { return game.Double{Target: t} })
	case "split", "p":
		return actionCommand(s, player, func(t game.Target) game.Event { return game.Split{Target: t} })
	default:
		return Command{}, fmt.Errorf("unknown command %q", verb)
	}
}

func betCommand(player string, amount int) (Command, error) {
	if player == "" {
		return Command{}, fmt.Errorf("no interactive player at this table")
	}
	if amount <= 0 {
		return Command{}, fmt.Errorf("bet must be positive")
	}
	return Command{Event: game.PlaceBet{PlayerID: player, Amount: amount, Mode: game.Aggregate}}, nil
}

func actionCommand(s game.Snapshot, player string, build func(game.Target) game.Event) (Command, error) {
	if player == "" {
		return Command{}, fmt.Errorf("no interactive player at this table")
	}
	if s.Turn.Kind != game.TurnPlayer || s.Turn.PlayerID != player {
		return Command{}, fmt.Errorf("not your turn (waiting for %s)", s.Turn)
	}
	return Command{Event: build(game.Target{PlayerID: player, HandIdx: s.Turn.HandIdx})}, nil
}
