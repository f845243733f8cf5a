package game

import (
	"context"

	"github.com/lox/blackjack/internal/deck"
)

// BetRequest asks a player for their stake at the start of a round.
type BetRequest struct {
	Player   string
	Bankroll float64
}

// BetDecision is either a stake or a request to leave the table.
type BetDecision struct {
	Amount float64
	Leave  bool
}

// LeaveTable is the bet decision for a player who wants to cash out.
var LeaveTable = BetDecision{Leave: true}

// InsuranceRequest offers insurance while the dealer shows an Ace.
type InsuranceRequest struct {
	Player   string
	Bankroll float64
	Stake    float64
}

// ActionRequest asks for a decision on one hand.
type ActionRequest struct {
	Player       string
	Bankroll     float64
	Hand         HandView
	HandCount    int
	DealerUpcard deck.Card
	Legal        []Action
}

// RebuyRequest offers a broke player the buy-in again.
type RebuyRequest struct {
	Player string
	Amount float64
}

// DecisionSource supplies player decisions to the table. Implementations
// block until they have a value; the table validates every answer before
// applying it. Returning an error aborts the game.
type DecisionSource interface {
	Bet(ctx context.Context, req BetRequest) (BetDecision, error)
	Insurance(ctx context.Context, req InsuranceRequest) (bool, error)
	Action(ctx context.Context, req ActionRequest) (Action, error)
	Rebuy(ctx context.Context, req RebuyRequest) (bool, error)
}
