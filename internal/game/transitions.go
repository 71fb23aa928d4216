package game

import (
	"fmt"
	"slices"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/evaluator"
)

// apply runs one event against the round. It reports whether anything
// changed; a targeted action on a finished hand is accepted but changes
// nothing.
func (r *round) apply(ev Event) (bool, error) {
	switch e := ev.(type) {
	case StartGame:
		return true, r.startGame()
	case PlaceBet:
		return true, r.placeBet(e)
	case Hit:
		return r.playerAction(e.Target, r.hit)
	case Stand:
		return r.playerAction(e.Target, r.stand)
	case Double:
		return r.playerAction(e.Target, r.double)
	case Split:
		return r.playerAction(e.Target, r.split)
	case DealAnotherRound:
		return true, r.dealAnotherRound()
	default:
		return false, fmt.Errorf("unsupported event %T", ev)
	}
}

func (r *round) placeBet(e PlaceBet) error {
	if r.phase != Idle && r.phase != PlaceBets {
		return fmt.Errorf("%w: %s", ErrInvalidPhase, r.phase)
	}
	p, err := r.player(e.PlayerID)
	if err != nil {
		return err
	}
	if e.HandIdx < 0 || e.HandIdx >= len(p.Hands) {
		return fmt.Errorf("%w: no hand %d", ErrInvalidBet, e.HandIdx)
	}
	if e.Amount < 0 {
		return fmt.Errorf("%w: negative amount %d", ErrInvalidBet, e.Amount)
	}

	hand := &p.Hands[e.HandIdx]
	bet := e.Amount
	if e.Mode == Aggregate {
		bet += hand.Bet
	}
	if p.Committed()-hand.Bet+bet > p.Balance {
		return fmt.Errorf("%w: bet %d with balance %d", ErrInsufficientBalance, bet, p.Balance)
	}
	if e.SetReady && bet == 0 {
		return ErrInvalidBetState
	}

	hand.Bet = bet
	if e.SetReady {
		hand.IsReady = true
	}
	if bet == 0 {
		hand.IsReady = false
	}
	r.phase = PlaceBets
	return nil
}

func (r *round) startGame() error {
	if r.phase != Idle && r.phase != PlaceBets {
		return fmt.Errorf("%w: %s", ErrInvalidPhase, r.phase)
	}
	if !allPlayersReady(r.players) {
		return ErrPlayersNotReady
	}
	return r.enterInitialDeal()
}

// enterInitialDeal deals one card to each betting hand, the dealer upcard,
// a second card to each hand, then the dealer's hole card face down.
func (r *round) enterInitialDeal() error {
	r.phase = InitialDeal
	r.reshuffleIfNeeded()
	if need := r.cardsReserved(); r.shoe.Len() < need {
		r.logger.Info("Reshuffling short shoe", "remaining", r.shoe.Len(), "need", need)
		r.shoe.Shuffle()
	}

	for pass := range 2 {
		for i := range r.players {
			p := &r.players[i]
			for h := range p.Hands {
				if p.Hands[h].Bet == 0 {
					continue
				}
				if err := r.drawInto(&p.Hands[h], true); err != nil {
					return err
				}
			}
		}
		if err := r.drawInto(&r.dealer.Hand, pass == 0); err != nil {
			return err
		}
	}

	for i := range r.players {
		for h := range r.players[i].Hands {
			hand := &r.players[i].Hands[h]
			if hand.Bet == 0 || evaluator.IsBlackjack(hand.Cards) {
				hand.IsFinished = true
			}
		}
	}
	return r.enterPlayersTurn()
}

// enterPlayersTurn points the turn at the first unfinished hand, walking
// players in seat order and each player's hands in order. With none left
// the dealer plays.
func (r *round) enterPlayersTurn() error {
	r.phase = PlayersTurn
	for _, p := range r.players {
		for h, hand := range p.Hands {
			if !hand.IsFinished {
				r.turn = Turn{Kind: TurnPlayer, PlayerID: p.ID, HandIdx: h}
				return nil
			}
		}
	}
	return r.enterDealerTurn()
}

type handAction func(p *Player, idx int) error

func (r *round) playerAction(t Target, act handAction) (bool, error) {
	if r.phase != PlayersTurn {
		return false, fmt.Errorf("%w: %s", ErrInvalidPhase, r.phase)
	}

	if !t.targeted() {
		t = Target{PlayerID: r.turn.PlayerID, HandIdx: r.turn.HandIdx}
	}
	p, err := r.player(t.PlayerID)
	if err != nil {
		return false, err
	}
	if t.HandIdx < 0 || t.HandIdx >= len(p.Hands) {
		return false, fmt.Errorf("%w: no hand %d", ErrIllegalAction, t.HandIdx)
	}
	if p.Hands[t.HandIdx].IsFinished {
		return false, nil
	}
	if r.turn.Kind != TurnPlayer || r.turn.PlayerID != t.PlayerID || r.turn.HandIdx != t.HandIdx {
		return false, fmt.Errorf("%w: %s, active is %s", ErrNotYourTurn, t, r.turn)
	}

	if err := act(p, t.HandIdx); err != nil {
		return false, err
	}
	return true, r.enterPlayersTurn()
}

func (r *round) hit(p *Player, idx int) error {
	hand := &p.Hands[idx]
	if err := r.drawInto(hand, true); err != nil {
		return err
	}
	if evaluator.MustEvaluate(hand.Cards).IsBust() {
		hand.IsFinished = true
	}
	return nil
}

func (r *round) stand(p *Player, idx int) error {
	p.Hands[idx].IsFinished = true
	return nil
}

func (r *round) double(p *Player, idx int) error {
	if err := canDouble(*p, idx, r.rules); err != nil {
		return err
	}
	hand := &p.Hands[idx]
	hand.Bet *= 2
	hand.Doubled = true
	if err := r.drawInto(hand, true); err != nil {
		return err
	}
	hand.IsFinished = true
	return nil
}

func (r *round) split(p *Player, idx int) error {
	if err := canSplit(*p, idx, r.rules); err != nil {
		return err
	}
	orig := &p.Hands[idx]
	second := Hand{
		Cards:     []deck.Card{orig.Cards[1]},
		Bet:       orig.Bet,
		IsReady:   true,
		FromSplit: true,
	}
	orig.Cards = orig.Cards[:1]
	orig.FromSplit = true

	p.Hands = slices.Insert(p.Hands, idx+1, second)
	for _, h := range []int{idx, idx + 1} {
		if err := r.drawInto(&p.Hands[h], true); err != nil {
			return err
		}
	}
	return nil
}

// canDouble checks that a hand may double: first decision on the hand,
// double after split allowed by the rules, and enough balance to match.
func canDouble(p Player, idx int, rules Rules) error {
	hand := p.Hands[idx]
	if hand.IsFinished || len(hand.Cards) != 2 || hand.Doubled {
		return fmt.Errorf("%w: double is only allowed on the first two cards", ErrIllegalAction)
	}
	if hand.FromSplit && !rules.DoubleAfterSplit {
		return fmt.Errorf("%w: double after split not allowed", ErrIllegalAction)
	}
	if p.Available() < hand.Bet {
		return fmt.Errorf("%w: double needs %d, available %d", ErrInsufficientBalance, hand.Bet, p.Available())
	}
	return nil
}

// canSplit checks that a hand is a pair, the player has room for another
// hand, and enough balance to match the bet.
func canSplit(p Player, idx int, rules Rules) error {
	hand := p.Hands[idx]
	if hand.IsFinished || !evaluator.IsPairHand(hand.Cards) {
		return fmt.Errorf("%w: split needs a pair", ErrIllegalAction)
	}
	if len(p.Hands) >= rules.MaxHands {
		return fmt.Errorf("%w: at most %d hands", ErrIllegalAction, rules.MaxHands)
	}
	if p.Available() < hand.Bet {
		return fmt.Errorf("%w: split needs %d, available %d", ErrInsufficientBalance, hand.Bet, p.Available())
	}
	return nil
}

// enterDealerTurn reveals the hole card and draws to the stand total.
func (r *round) enterDealerTurn() error {
	r.phase = DealerTurn
	r.turn = Turn{Kind: TurnDealer}

	hand := &r.dealer.Hand
	for i := range hand.Cards {
		r.shoe.Reveal(&hand.Cards[i])
	}

	for {
		res := evaluator.MustEvaluate(hand.Cards)
		if res.IsBust() {
			r.dealer.FinalCount = res.BustCount
			break
		}
		if !r.dealerHits(res) {
			r.dealer.FinalCount = res.Best()
			break
		}
		if err := r.drawInto(hand, true); err != nil {
			return err
		}
	}
	hand.IsFinished = true
	return r.enterSettlement()
}

func (r *round) dealerHits(res evaluator.Result) bool {
	best := res.Best()
	if best < DealerStandsOn {
		return true
	}
	return best == DealerStandsOn && res.IsSoft() && r.rules.DealerHitsSoft17
}

func (r *round) dealAnotherRound() error {
	if r.phase != Settlement {
		return fmt.Errorf("%w: %s", ErrInvalidPhase, r.phase)
	}
	for i := range r.players {
		r.players[i].Hands = []Hand{{}}
	}
	r.dealer = Dealer{}
	r.turn = Turn{}
	r.number++
	r.reshuffleIfNeeded()
	r.phase = PlaceBets
	return nil
}

func (r *round) reshuffleIfNeeded() {
	if !r.shoe.NeedsReshuffle(r.rules.Penetration) {
		return
	}
	r.logger.Info("Reshuffling shoe",
		"remaining", r.shoe.Len(),
		"penetration", fmt.Sprintf("%.2f", r.shoe.Penetration()))
	r.shoe.Shuffle()
}

// cardsReserved is the number of cards a round is expected to need: a
// reserve for every betting hand and the dealer.
func (r *round) cardsReserved() int {
	hands := 1
	for _, p := range r.players {
		for _, h := range p.Hands {
			if h.Bet > 0 {
				hands++
			}
		}
	}
	return hands * cardsPerHandReserve
}

// drawInto deals the next card into hand. A shoe that runs dry mid-round is
// rebuilt from every card not on the table.
func (r *round) drawInto(hand *Hand, visible bool) error {
	if r.shoe.Len() == 0 {
		inPlay := r.cardsInPlay()
		r.logger.Info("Shoe ran out mid-round, reshuffling discards", "inPlay", len(inPlay))
		r.shoe.ShuffleExcluding(inPlay)
	}
	card, err := r.shoe.Draw(visible)
	if err != nil {
		return err
	}
	hand.Cards = append(hand.Cards, card)
	return nil
}

func (r *round) cardsInPlay() []deck.Card {
	cards := slices.Clone(r.dealer.Hand.Cards)
	for _, p := range r.players {
		for _, h := range p.Hands {
			cards = append(cards, h.Cards...)
		}
	}
	return cards
}

func allPlayersReady(players []Player) bool {
	ready := 0
	for _, p := range players {
		if !p.Seated() {
			continue
		}
		if len(p.Hands) == 0 || !p.Hands[0].IsReady {
			return false
		}
		ready++
	}
	return ready > 0
}
