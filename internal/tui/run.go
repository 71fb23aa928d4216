package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/blackjack/internal/autopilot"
	"github.com/lox/blackjack/internal/game"
)

// Run shows the table until the user quits. The scheduler, when given, is
// started once the program is running and stopped on exit.
func Run(engine *game.Engine, scheduler *autopilot.Scheduler, model *Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen())

	// Send blocks until the event loop reads the message, and commands typed
	// by the user reach the engine from inside Update.
	unsubscribe := engine.Subscribe(game.ObserverFunc(func(s game.Snapshot) {
		go program.Send(SnapshotMsg(s))
	}))
	defer unsubscribe()

	if scheduler != nil {
		unsubscribeScheduler := engine.Subscribe(scheduler)
		defer unsubscribeScheduler()
		defer scheduler.Stop()
		go scheduler.Start()
	}

	_, err := program.Run()
	return err
}
