package game

import "errors"

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidBetState     = errors.New("cannot mark a hand ready without a bet")
	ErrInvalidBet          = errors.New("invalid bet")
	ErrInvalidPhase        = errors.New("event not allowed in this phase")
	ErrNotYourTurn         = errors.New("hand is not the active hand")
	ErrIllegalAction       = errors.New("action not allowed for this hand")
	ErrUnknownPlayer       = errors.New("unknown player")
	ErrPlayersNotReady     = errors.New("not every player is ready")
)
