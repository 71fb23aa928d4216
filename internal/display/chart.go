package display

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/blackjack/internal/evaluator"
	"github.com/lox/blackjack/internal/strategy"
)

// StrategyCharts renders the pair, soft and hard basic-strategy tables.
func (r *Renderer) StrategyCharts() string {
	var pairs, soft, hard [][]string

	for cat := strategy.PairCategory(0); cat < strategy.NumPairCategories; cat++ {
		row := []string{cat.String()}
		for _, a := range strategy.PairSplitTable[cat] {
			row = append(row, a.Code())
		}
		pairs = append(pairs, row)
	}
	for i, entries := range strategy.SoftTotalTable {
		row := []string{"A," + strconv.Itoa(i+evaluator.SoftTotalMin-11)}
		for _, a := range entries {
			row = append(row, a.Code())
		}
		soft = append(soft, row)
	}
	for i, entries := range strategy.HardTotalTable {
		row := []string{strconv.Itoa(i + strategy.MinHardTotal)}
		for _, a := range entries {
			row = append(row, a.Code())
		}
		hard = append(hard, row)
	}

	return strings.Join([]string{
		r.styles.Header.Render(" Pair splitting "),
		r.chart(pairs),
		r.styles.Header.Render(" Soft totals "),
		r.chart(soft),
		r.styles.Header.Render(" Hard totals "),
		r.chart(hard),
	}, "\n")
}

func (r *Renderer) chart(rows [][]string) string {
	headers := []string{"hand"}
	for up := strategy.MinUpcard; up <= strategy.MaxUpcard; up++ {
		headers = append(headers, upcardLabel(up))
	}

	return r.table(headers, rows, func(row, col int) lipgloss.Style {
		if col == 0 {
			return r.styles.Player
		}
		return r.cellStyle(rows[row][col])
	})
}

func (r *Renderer) cellStyle(code string) lipgloss.Style {
	switch code {
	case "Y", "D", "Ds":
		return r.styles.Success
	case "Y/N":
		return r.styles.Warning
	case "S":
		return r.styles.Active
	default:
		return r.styles.Player
	}
}

func upcardLabel(up int) string {
	switch up {
	case 10:
		return "T"
	case 11:
		return "A"
	default:
		return strconv.Itoa(up)
	}
}
