package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles used to render the table
type Styles struct {
	Header    lipgloss.Style
	Dealer    lipgloss.Style
	Player    lipgloss.Style
	Active    lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Hidden    lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
}

// NewStyles builds styles bound to a renderer for w. With noColor the
// output is plain text.
func NewStyles(w io.Writer, noColor bool) Styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		Dealer: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Player: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Active: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Hidden: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}
