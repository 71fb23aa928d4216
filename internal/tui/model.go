// Package tui is the interactive table: a Bubble Tea program that renders
// engine snapshots and turns typed commands into engine events.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/autopilot"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/strategy"
)

// SnapshotMsg carries a snapshot published by the engine
type SnapshotMsg game.Snapshot

// Model is the Bubble Tea model for a blackjack table
type Model struct {
	engine   autopilot.Sender
	player   string // interactive player id, empty when spectating
	renderer *display.Renderer
	logger   *log.Logger

	logViewport viewport.Model
	input       textinput.Model

	snap        game.Snapshot
	gameLog     []string
	settledSeen int
	quitting    bool
	width       int
	height      int
}

// NewModel creates a model driving engine on behalf of player.
func NewModel(engine autopilot.Sender, player string, renderer *display.Renderer, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "bet 10, ready, hit, stand, double, split, next, hint, quit"
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "> "

	return &Model{
		engine:      engine,
		player:      player,
		renderer:    renderer,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		snap:        engine.Snapshot(),
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case SnapshotMsg:
		m.applySnapshot(game.Snapshot(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if m.Submit(line) {
				m.quitting = true
				return m, tea.Quit
			}
		case "pgup":
			m.logViewport.HalfPageUp()
		case "pgdown":
			m.logViewport.HalfPageDown()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// Submit runs one line of input and reports whether the user asked to quit.
func (m *Model) Submit(line string) bool {
	cmd, err := ParseCommand(line, m.snap, m.player)
	if err != nil {
		m.AddLogEntry(m.renderer.Styles().Error.Render(err.Error()))
		return false
	}
	switch {
	case cmd.Quit:
		return true
	case cmd.Hint:
		m.AddLogEntry(m.hint())
	case cmd.Event != nil:
		snap, err := m.engine.Send(cmd.Event)
		if err != nil {
			m.logger.Debug("Command rejected", "input", line, "error", err)
			m.AddLogEntry(m.renderer.Styles().Error.Render(err.Error()))
		}
		m.applySnapshot(snap)
	}
	return false
}

func (m *Model) applySnapshot(s game.Snapshot) {
	if s.Version < m.snap.Version {
		return
	}
	m.snap = s
	if s.IsRoundFinished() && m.settledSeen != s.Round {
		m.settledSeen = s.Round
		m.logSettlement(s)
	}
}

func (m *Model) logSettlement(s game.Snapshot) {
	m.AddLogEntry(fmt.Sprintf("Round %d: dealer %s (%d)",
		s.Round, m.renderer.Cards(s.Dealer.Hand.Cards), s.Dealer.FinalCount))
	for _, p := range s.Players {
		for i, h := range p.Hands {
			if h.Bet == 0 {
				continue
			}
			m.AddLogEntry(fmt.Sprintf("  %s #%d %s %+d", p.Name, i+1, h.Outcome, h.Payout))
		}
	}
}

func (m *Model) hint() string {
	p, hand, ok := m.snap.ActiveHand()
	if !ok || p.ID != m.player {
		return "No hand to advise on"
	}
	action, err := strategy.Decide(hand.Cards, m.snap.DealerUpcard(), strategy.Options{
		CanDouble:        m.snap.CanDouble(),
		DoubleAfterSplit: m.snap.Rules.DoubleAfterSplit,
		NoSplit:          !m.snap.CanSplit(),
	})
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("Basic strategy says %s", action)
}

// AddLogEntry adds an entry to the game log and scrolls to it
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns the game log entries
func (m *Model) Log() []string {
	return append([]string(nil), m.gameLog...)
}

// Snapshot returns the snapshot currently shown
func (m *Model) Snapshot() game.Snapshot {
	return m.snap
}

// View renders the table above the log and input panes
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	tableContent := m.renderer.Render(m.snap)
	width := max(m.width-2, 20)

	tablePane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(width).
		Render(tableContent)

	help := m.renderer.Styles().Info.Render(fmt.Sprintf(
		"Bets: %s · PgUp/PgDn scroll log · Ctrl+C to quit", betButtonsLabel()))
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(width).
		Render(m.input.View() + "\n" + help)

	logHeight := m.height - lipgloss.Height(tablePane) - lipgloss.Height(actionPane) - 2
	m.logViewport.Width = width
	m.logViewport.Height = max(logHeight, 1)
	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(width).
		Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Top, tablePane, logPane, actionPane)
}

func betButtonsLabel() string {
	labels := make([]string, len(BetButtons))
	for i, b := range BetButtons {
		labels[i] = fmt.Sprintf("[%d]", b)
	}
	return strings.Join(labels, " ")
}
