// Package display renders round snapshots and strategy charts for a
// terminal. It only reads snapshots; nothing here touches the engine.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/evaluator"
	"github.com/lox/blackjack/internal/game"
)

// Renderer turns snapshots into text
type Renderer struct {
	styles Styles
}

// NewRenderer creates a renderer for output written to w
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	return &Renderer{styles: NewStyles(w, noColor)}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Card renders a single card, "??" when face down.
func (r *Renderer) Card(c deck.Card) string {
	if !c.Visible {
		return r.styles.Hidden.Render("??")
	}
	if c.Suit.IsRed() {
		return r.styles.RedCard.Render(c.String())
	}
	return r.styles.BlackCard.Render(c.String())
}

// Cards renders cards separated by spaces
func (r *Renderer) Cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.Card(c)
	}
	return strings.Join(parts, " ")
}

// Render draws the whole table: header, dealer, then each player's hands.
func (r *Renderer) Render(s game.Snapshot) string {
	var b strings.Builder

	b.WriteString(r.styles.Header.Render(fmt.Sprintf(" Round %d · %s ", s.Round, s.Phase)))
	b.WriteString("\n")
	b.WriteString(r.styles.Info.Render(fmt.Sprintf("Shoe %d/%d  Running %+d  True %+.1f",
		s.ShoeRemaining, s.ShoeSize, s.Count.Running, s.Count.TrueCount)))
	b.WriteString("\n\n")

	b.WriteString(r.styles.Dealer.Render("Dealer"))
	if len(s.Dealer.Hand.Cards) > 0 {
		fmt.Fprintf(&b, "  %s  %s", r.Cards(s.Dealer.Hand.Cards), r.dealerTotal(s))
	}
	b.WriteString("\n")

	for _, p := range s.Players {
		b.WriteString(r.player(s, p))
	}
	return b.String()
}

func (r *Renderer) dealerTotal(s game.Snapshot) string {
	if s.Dealer.FinalCount > 0 {
		if s.Dealer.FinalCount > evaluator.Blackjack {
			return r.styles.Error.Render(fmt.Sprintf("(bust %d)", s.Dealer.FinalCount))
		}
		return fmt.Sprintf("(%d)", s.Dealer.FinalCount)
	}
	return fmt.Sprintf("(%d)", s.DealerTotal())
}

func (r *Renderer) player(s game.Snapshot, p game.Player) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n",
		r.styles.Player.Render(fmt.Sprintf("%s [%s]", p.Name, p.Archetype)),
		r.styles.Info.Render(fmt.Sprintf("$%d", p.Balance)))

	for i, h := range p.Hands {
		active := s.Turn.Kind == game.TurnPlayer && s.Turn.PlayerID == p.ID && s.Turn.HandIdx == i
		marker := "  "
		if active {
			marker = r.styles.Active.Render("> ")
		}
		fmt.Fprintf(&b, "%s#%d bet $%d", marker, i+1, h.Bet)
		if h.IsReady && len(h.Cards) == 0 {
			b.WriteString(r.styles.Success.Render(" ready"))
		}
		if len(h.Cards) > 0 {
			fmt.Fprintf(&b, "  %s  %s", r.Cards(h.Cards), r.handTotal(h))
		}
		if h.Outcome != game.Pending {
			fmt.Fprintf(&b, "  %s", r.outcome(h))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) handTotal(h game.Hand) string {
	res := evaluator.MustEvaluate(h.Cards)
	switch {
	case res.IsBust():
		return r.styles.Error.Render(fmt.Sprintf("(bust %d)", res.BustCount))
	case evaluator.IsBlackjack(h.Cards) && !h.FromSplit:
		return r.styles.Success.Render("(blackjack)")
	case res.IsSoft():
		return fmt.Sprintf("(%d/%d)", res.ValidCounts[1], res.ValidCounts[0])
	default:
		return fmt.Sprintf("(%d)", res.Best())
	}
}

func (r *Renderer) outcome(h game.Hand) string {
	text := fmt.Sprintf("%s %+d", h.Outcome, h.Payout)
	switch h.Outcome {
	case game.Win, game.Natural:
		return r.styles.Success.Render(text)
	case game.Push:
		return r.styles.Warning.Render(text)
	default:
		return r.styles.Error.Render(text)
	}
}
