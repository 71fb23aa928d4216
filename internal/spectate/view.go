// Package spectate streams table snapshots to read-only websocket clients.
// Spectators receive every change but cannot submit events.
package spectate

import (
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// HiddenCard is sent in place of a face-down card
const HiddenCard = "??"

// TableView is the JSON form of a snapshot sent to spectators
type TableView struct {
	Round   int          `json:"round"`
	Version uint64       `json:"version"`
	Phase   string       `json:"phase"`
	Turn    string       `json:"turn,omitempty"`
	Dealer  DealerView   `json:"dealer"`
	Players []PlayerView `json:"players"`
	Shoe    ShoeView     `json:"shoe"`
	Count   CountView    `json:"count"`
}

type DealerView struct {
	Cards []string `json:"cards"`
	Total int      `json:"total"`          // visible cards only
	Final int      `json:"final,omitzero"` // set once the dealer has played
}

type PlayerView struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Balance   int        `json:"balance"`
	Archetype string     `json:"archetype"`
	Hands     []HandView `json:"hands"`
}

type HandView struct {
	Cards    []string `json:"cards"`
	Bet      int      `json:"bet"`
	Ready    bool     `json:"ready"`
	Finished bool     `json:"finished"`
	Doubled  bool     `json:"doubled,omitempty"`
	Outcome  string   `json:"outcome,omitempty"`
	Payout   int      `json:"payout,omitempty"`
}

type ShoeView struct {
	Remaining int `json:"remaining"`
	Size      int `json:"size"`
}

type CountView struct {
	Running        int     `json:"running"`
	DecksRemaining float64 `json:"decks_remaining"`
	True           float64 `json:"true"`
}

// NewTableView converts a snapshot, masking face-down cards.
func NewTableView(s game.Snapshot) TableView {
	v := TableView{
		Round:   s.Round,
		Version: s.Version,
		Phase:   s.Phase.String(),
		Dealer: DealerView{
			Cards: cardStrings(s.Dealer.Hand.Cards),
			Total: s.DealerTotal(),
			Final: s.Dealer.FinalCount,
		},
		Players: make([]PlayerView, len(s.Players)),
		Shoe:    ShoeView{Remaining: s.ShoeRemaining, Size: s.ShoeSize},
		Count: CountView{
			Running:        s.Count.Running,
			DecksRemaining: s.Count.DecksRemaining,
			True:           s.Count.TrueCount,
		},
	}
	if s.Turn.Kind != game.TurnNone {
		v.Turn = s.Turn.String()
	}

	for i, p := range s.Players {
		pv := PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			Balance:   p.Balance,
			Archetype: p.Archetype.String(),
			Hands:     make([]HandView, len(p.Hands)),
		}
		for h, hand := range p.Hands {
			hv := HandView{
				Cards:    cardStrings(hand.Cards),
				Bet:      hand.Bet,
				Ready:    hand.IsReady,
				Finished: hand.IsFinished,
				Doubled:  hand.Doubled,
				Payout:   hand.Payout,
			}
			if hand.Outcome != game.Pending {
				hv.Outcome = hand.Outcome.String()
			}
			pv.Hands[h] = hv
		}
		v.Players[i] = pv
	}
	return v
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		if c.Visible {
			out[i] = c.String()
		} else {
			out[i] = HiddenCard
		}
	}
	return out
}
