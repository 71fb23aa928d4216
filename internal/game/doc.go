// Package game implements the blackjack round state machine.
//
// The Engine owns a single round context (shoe, count, players, dealer,
// turn pointer and phase) and is the only thing that mutates it. Callers
// drive it with events:
//
//	engine := game.NewEngine(randutil.New(42), seats, logger)
//	engine.Send(game.PlaceBet{PlayerID: "p1", Amount: 100, Mode: game.Override, SetReady: true})
//	engine.Send(game.StartGame{})
//	engine.Send(game.Stand{})
//
// Each event is applied to a copy of the round and committed only if it
// succeeds, so a rejected event leaves the round exactly as it was. The
// engine never sleeps or blocks; pacing of automated players lives in the
// autopilot package.
//
// # Phases
//
//	Idle -> PlaceBets -> InitialDeal -> PlayersTurn -> DealerTurn -> Settlement -> PlaceBets
//
// InitialDeal and DealerTurn run to completion inside the event that enters
// them, so snapshots only ever observe them transiently through logs.
package game
