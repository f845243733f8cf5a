// Package game implements the round lifecycle of a blackjack table.
//
// The main type is Table, which owns the shoe, the seated players and the
// dealer, and plays rounds until every player has left.
//
// # Basic Usage
//
// Decisions come from a DecisionSource. The table validates every answer
// against the legal set before touching any hand:
//
//	t, err := game.NewTable(source, game.WithRules(game.NewConfig(game.WithDecks(6))))
//	if err != nil {
//	    return err
//	}
//	t.AddPlayer("Alice")
//	err = t.Run(ctx)
//
// # Deterministic Testing
//
// Inject a seeded RNG, or a stacked shoe for complete control over the
// cards dealt:
//
//	t, _ := game.NewTable(source, game.WithRNG(randutil.New(42)))
//	t, _ := game.NewTable(source, game.WithShoe(shoe.NewStacked(cards...)))
//
// # Architecture
//
//   - Hand: the per-hand state machine (hit, stand, double, split, surrender)
//   - Player / Dealer: bankroll, insurance and the dealer's drawing rule
//   - Settle / SettleDealerBlackjack: payouts against the finalized dealer hand
//   - EventBus: synchronous, typed events for renderers and statistics
//
// The table is single-threaded; every suspension point is a call into the
// DecisionSource.
package game
