package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/blackjack/internal/simulator"
	"github.com/lox/blackjack/internal/statistics"
)

// SimulationReport renders per-player results and a breakdown of the mean
// result by true count.
func (r *Renderer) SimulationReport(rep *simulator.Report) string {
	var b strings.Builder

	b.WriteString(r.styles.Header.Render(fmt.Sprintf(" %d sessions × %d rounds · seed %d ",
		rep.Sessions, rep.Rounds, rep.Seed)))
	b.WriteString("\n")

	rows := make([][]string, len(rep.Players))
	for i, p := range rep.Players {
		rows[i] = []string{
			p.Name,
			p.Archetype,
			fmt.Sprintf("%d", p.Rounds),
			fmt.Sprintf("%+d", p.Net),
			fmt.Sprintf("%+.2f", p.Mean),
			fmt.Sprintf("[%+.2f, %+.2f]", p.CI95Low, p.CI95High),
			fmt.Sprintf("%+.2f%%", p.Edge*100),
			fmt.Sprintf("%d/%d/%d/%d/%d", p.Wins, p.Naturals, p.Pushes, p.Losses, p.Busts),
			fmt.Sprintf("%d", p.Broke),
		}
	}
	b.WriteString(r.table(
		[]string{"player", "strategy", "rounds", "net", "mean", "95% CI", "edge", "W/BJ/P/L/B", "broke"},
		rows, func(row, col int) lipgloss.Style {
			if col == 3 && strings.HasPrefix(rows[row][col], "-") {
				return r.styles.Error
			}
			if col == 3 {
				return r.styles.Success
			}
			return r.styles.Player
		}))
	b.WriteString("\n")

	b.WriteString(r.styles.Header.Render(" Mean per round by true count "))
	b.WriteString("\n")
	headers := []string{"player"}
	for i := range statistics.NumCountBuckets {
		headers = append(headers, countLabel(i+statistics.MinCountBucket))
	}
	countRows := make([][]string, len(rep.Players))
	for i, p := range rep.Players {
		row := []string{p.Name}
		for _, m := range p.CountMean {
			row = append(row, fmt.Sprintf("%+.1f", m))
		}
		countRows[i] = row
	}
	b.WriteString(r.table(headers, countRows, func(int, int) lipgloss.Style { return r.styles.Player }))

	return b.String()
}

func (r *Renderer) table(headers []string, rows [][]string, cell func(row, col int) lipgloss.Style) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.Info).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.Dealer.Padding(0, 1)
			}
			if row < 0 || row >= len(rows) || col >= len(rows[row]) {
				return r.styles.Player.Padding(0, 1)
			}
			return cell(row, col).Padding(0, 1)
		}).
		String()
}

func countLabel(tc int) string {
	switch tc {
	case statistics.MinCountBucket:
		return fmt.Sprintf("≤%d", tc)
	case statistics.MaxCountBucket:
		return fmt.Sprintf("≥%+d", tc)
	default:
		return fmt.Sprintf("%+d", tc)
	}
}
