package game

import "github.com/lox/blackjack/internal/evaluator"

// enterSettlement pays every betting hand against the dealer's final hand
// and moves the balances.
func (r *round) enterSettlement() error {
	r.phase = Settlement
	r.turn = Turn{}

	dealer := evaluator.MustEvaluate(r.dealer.Hand.Cards)
	dealerNatural := evaluator.IsBlackjack(r.dealer.Hand.Cards)

	for i := range r.players {
		p := &r.players[i]
		net := 0
		for h := range p.Hands {
			hand := &p.Hands[h]
			if hand.Bet == 0 {
				continue
			}
			hand.Outcome, hand.Payout = settleHand(*hand, dealer, dealerNatural)
			net += hand.Payout
		}
		p.Balance += net
		if p.Committed() > 0 {
			r.logger.Debug("Player settled", "player", p.ID, "net", net, "balance", p.Balance)
		}
	}

	r.logger.Info("Round settled",
		"round", r.number,
		"dealer", r.dealer.FinalCount,
		"dealerCards", r.dealer.Hand.Cards)
	return nil
}

// settleHand returns the outcome for one hand and its net payout.
func settleHand(hand Hand, dealer evaluator.Result, dealerNatural bool) (Outcome, int) {
	player := evaluator.MustEvaluate(hand.Cards)
	natural := !hand.FromSplit && evaluator.IsBlackjack(hand.Cards)

	switch {
	case player.IsBust():
		return Bust, -hand.Bet
	case natural && dealerNatural:
		return Push, 0
	case natural:
		return Natural, hand.Bet * 3 / 2
	case dealer.IsBust():
		return Win, hand.Bet
	case player.Best() == dealer.Best():
		return Push, 0
	case player.Best() > dealer.Best():
		return Win, hand.Bet
	default:
		return Lose, -hand.Bet
	}
}
