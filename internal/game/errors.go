package game

import "errors"

var (
	// ErrIllegalAction is returned when an action is outside the hand's legal set.
	ErrIllegalAction = errors.New("illegal action")
	// ErrInsufficientFunds is returned when a bet, double or split exceeds the bankroll.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrHandLocked is returned when acting on a hand that can take no more actions.
	ErrHandLocked = errors.New("hand is locked")
	// ErrInvalidBet is returned for non-positive bets.
	ErrInvalidBet = errors.New("invalid bet")
	// ErrUnknownHand is returned when a hand is not owned by the acting player.
	ErrUnknownHand = errors.New("hand does not belong to player")
	// ErrNoPlayers is returned when a game is started with nobody seated.
	ErrNoPlayers = errors.New("no players seated")
	// ErrTableFull is returned when seating a player beyond the table limit.
	ErrTableFull = errors.New("table is full")
)
