package game

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/shoe"
)

// maxDecisionAttempts bounds how often an invalid decision is re-requested
// before the table falls back to a safe default.
const maxDecisionAttempts = 3

// Table runs rounds of blackjack for a set of players against the dealer.
// It owns the shoe, the players and the dealer; nothing is shared globally.
type Table struct {
	cfg     Config
	shoe    *shoe.Shoe
	players []*Player
	dealer  *Dealer
	source  DecisionSource
	logger  *log.Logger
	bus     EventBus
	clock   quartz.Clock
	round   int
}

// NewTable creates a table that asks source for every player decision.
func NewTable(source DecisionSource, opts ...TableOption) (*Table, error) {
	if source == nil {
		panic("decision source is required for table creation")
	}

	tc := defaultTableConfig()
	for _, opt := range opts {
		opt(tc)
	}

	if err := tc.rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table rules: %w", err)
	}

	s := tc.shoe
	if s == nil {
		rng := tc.rng
		if rng == nil {
			rng = randutil.New(randutil.Seed(0))
		}
		var err error
		s, err = shoe.New(tc.rules.Deck, tc.rules.Decks, rng, tc.logger.WithPrefix("shoe"))
		if err != nil {
			return nil, fmt.Errorf("failed to build shoe: %w", err)
		}
	}

	return &Table{
		cfg:     tc.rules,
		shoe:    s,
		players: make([]*Player, 0, tc.rules.MaxPlayers),
		dealer:  NewDealer(tc.rules.DealerStandsOn),
		source:  source,
		logger:  tc.logger,
		bus:     tc.eventBus,
		clock:   tc.clock,
	}, nil
}

// AddPlayer seats a player with the buy-in. An empty name becomes "Player N".
func (t *Table) AddPlayer(name string) (*Player, error) {
	if len(t.players) >= t.cfg.MaxPlayers {
		return nil, fmt.Errorf("%w: %d seats", ErrTableFull, t.cfg.MaxPlayers)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Player %d", len(t.players)+1)
	}
	p := NewPlayer(name, t.cfg.BuyIn)
	t.players = append(t.players, p)
	t.logger.Info("Player seated", "player", name, "bankroll", p.Bankroll)
	return p, nil
}

// Players returns the players currently seated.
func (t *Table) Players() []*Player {
	return slices.Clone(t.players)
}

// Dealer returns the dealer.
func (t *Table) Dealer() *Dealer {
	return t.dealer
}

// Shoe returns the shoe the table deals from.
func (t *Table) Shoe() *shoe.Shoe {
	return t.shoe
}

// Rules returns the table configuration.
func (t *Table) Rules() Config {
	return t.cfg
}

// Round returns the number of rounds started.
func (t *Table) Round() int {
	return t.round
}

// Run plays rounds until every player has left. Cancelling ctx stops the game
// between rounds.
func (t *Table) Run(ctx context.Context) error {
	if len(t.players) == 0 {
		return ErrNoPlayers
	}
	for len(t.players) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := t.PlayRound(ctx); err != nil {
			return err
		}
	}
	t.logger.Info("Table empty, game over", "rounds", t.round)
	t.bus.Publish(GameEndEvent{stamp: t.now(), Rounds: t.round})
	return nil
}

// PlayRound plays one full round and reports whether any players remain.
func (t *Table) PlayRound(ctx context.Context) (bool, error) {
	if len(t.players) == 0 {
		return false, nil
	}
	t.round++

	t.ensureShoe()
	t.bus.Publish(RoundStartEvent{
		stamp:     t.now(),
		Round:     t.round,
		Players:   t.playerNames(),
		ShoeValue: t.shoe.Value(),
	})
	t.logger.Info("Round started", "round", t.round, "players", len(t.players), "shoeValue", t.shoe.Value())

	t.startHands()
	if err := t.collectBets(ctx); err != nil {
		return false, err
	}

	if len(t.players) > 0 {
		t.initialDeal()

		cont, err := t.dealerChecks(ctx)
		if err != nil {
			return false, err
		}
		if cont {
			for _, p := range t.players {
				if err := t.playerTurn(ctx, p); err != nil {
					return false, err
				}
			}
			t.dealerTurn()
			t.settle()
		}
		t.reportResults()
	}

	if err := t.cleanup(ctx); err != nil {
		return false, err
	}

	t.bus.Publish(RoundEndEvent{
		stamp:     t.now(),
		Round:     t.round,
		Players:   len(t.players),
		ShoeValue: t.shoe.Value(),
	})
	t.logger.Debug("Round complete", "round", t.round, "players", len(t.players), "shoeValue", t.shoe.Value())
	return len(t.players) > 0, nil
}

// ensureShoe replenishes until the shoe can cover a worst-case round.
func (t *Table) ensureShoe() {
	minimum := MinimumShoeValue(t.cfg, len(t.players))
	for t.shoe.NeedsReplenish(minimum) {
		wasEmpty := t.shoe.Value() <= 0
		added := t.shoe.Replenish()
		t.logger.Debug("Added decks to shoe", "added", added, "minimum", minimum, "shoeValue", t.shoe.Value())
		t.bus.Publish(ShoeReplenishedEvent{
			stamp:     t.now(),
			Added:     added,
			ShoeValue: t.shoe.Value(),
			WasEmpty:  wasEmpty,
		})
	}
}

func (t *Table) startHands() {
	for _, p := range t.players {
		p.Hands = []*Hand{NewHand(1)}
	}
	t.dealer.Hand = NewHand(1)
}

func (t *Table) collectBets(ctx context.Context) error {
	var leaving []*Player
	for _, p := range t.players {
		d, err := t.requestBet(ctx, p)
		if err != nil {
			return err
		}
		if d.Leave {
			t.logger.Info("Player left the table", "player", p.Name, "bankroll", p.Bankroll)
			t.bus.Publish(PlayerLeftEvent{
				stamp:    t.now(),
				Player:   p.Name,
				Bankroll: p.Bankroll,
				Reason:   LeaveDeclinedBet,
			})
			leaving = append(leaving, p)
		}
	}
	t.removePlayers(leaving)
	return nil
}

func (t *Table) requestBet(ctx context.Context, p *Player) (BetDecision, error) {
	for attempt := 1; attempt <= maxDecisionAttempts; attempt++ {
		d, err := t.source.Bet(ctx, BetRequest{Player: p.Name, Bankroll: p.Bankroll})
		if err != nil {
			return BetDecision{}, fmt.Errorf("bet for %s: %w", p.Name, err)
		}
		if d.Leave {
			return d, nil
		}
		if err := p.PlaceBet(d.Amount); err != nil {
			t.logger.Warn("Rejected bet", "player", p.Name, "amount", d.Amount, "attempt", attempt, "error", err)
			continue
		}
		t.logger.Debug("Bet placed", "player", p.Name, "amount", d.Amount, "bankroll", p.Bankroll)
		t.bus.Publish(BetPlacedEvent{
			stamp:    t.now(),
			Player:   p.Name,
			Amount:   d.Amount,
			Bankroll: p.Bankroll,
		})
		return d, nil
	}
	t.logger.Error("No valid bet received, removing player", "player", p.Name)
	return LeaveTable, nil
}

// initialDeal deals two cards to each player and the dealer, one at a time.
func (t *Table) initialDeal() {
	for range 2 {
		for _, p := range t.players {
			p.Hands[0].Deal(t.shoe)
		}
		t.dealer.Hand.Deal(t.shoe)
	}

	for _, p := range t.players {
		h := p.Hands[0]
		t.logger.Debug("Dealt hand", "player", p.Name, "cards", h.String(), "total", h.Total)
		t.publishHandDealt(p, h)
		if h.CheckBlackjack() {
			t.publishLocked(p, h)
		}
	}

	t.dealer.Hand.CheckBlackjack()
	t.logger.Debug("Dealer hand", "cards", t.dealer.Hand.String(), "total", t.dealer.Hand.Total)
	t.bus.Publish(DealerUpcardEvent{stamp: t.now(), Card: t.dealer.Upcard()})
}

// dealerChecks offers insurance against an Ace and ends the round early on a
// dealer blackjack. It reports whether play continues.
func (t *Table) dealerChecks(ctx context.Context) (bool, error) {
	offered := t.dealer.ShowsAce()
	if offered {
		if err := t.offerInsurance(ctx); err != nil {
			return false, err
		}
	}

	blackjack := t.dealer.Hand.IsBlackjack()
	if offered || blackjack {
		peek := DealerPeekEvent{
			stamp:            t.now(),
			Blackjack:        blackjack,
			InsuranceOffered: offered,
		}
		if blackjack {
			peek.Hand = t.dealer.Hand.View()
		}
		t.bus.Publish(peek)
	}

	if blackjack {
		t.logger.Info("Dealer has blackjack", "round", t.round)
		t.settleDealerBlackjack()
		return false, nil
	}
	return true, nil
}

func (t *Table) offerInsurance(ctx context.Context) error {
	for _, p := range t.players {
		stake := p.Hands[0].Bet / 2
		if !p.CanInsure() {
			t.bus.Publish(InsuranceEvent{stamp: t.now(), Player: p.Name, Stake: stake})
			continue
		}
		buy, err := t.source.Insurance(ctx, InsuranceRequest{
			Player:   p.Name,
			Bankroll: p.Bankroll,
			Stake:    stake,
		})
		if err != nil {
			return fmt.Errorf("insurance for %s: %w", p.Name, err)
		}
		if buy {
			if err := p.BuyInsurance(); err != nil {
				t.logger.Warn("Insurance rejected", "player", p.Name, "error", err)
				buy = false
			}
		}
		t.logger.Debug("Insurance decision", "player", p.Name, "bought", buy, "stake", stake)
		t.bus.Publish(InsuranceEvent{
			stamp:     t.now(),
			Player:    p.Name,
			CanAfford: true,
			Bought:    buy,
			Stake:     stake,
		})
	}
	return nil
}

// playerTurn works through the player's hands as a queue so hands created by
// splitting are played after the hand they came from.
func (t *Table) playerTurn(ctx context.Context, p *Player) error {
	queue := slices.Clone(p.Hands)
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]

		if !h.Locked() {
			t.bus.Publish(TurnStartEvent{
				stamp:        t.now(),
				Player:       p.Name,
				HandCount:    len(p.Hands),
				Hand:         h.View(),
				DealerUpcard: t.dealer.Upcard(),
			})
		}

		for !h.Locked() {
			a, err := t.requestAction(ctx, p, h)
			if err != nil {
				return err
			}

			res, err := p.Apply(h, a, t.shoe, t.cfg)
			if err != nil {
				// Only reachable if the legal set changed underneath us.
				t.logger.Error("Failed to apply action, standing", "player", p.Name, "action", a, "error", err)
				h.FirstTurn = false
				_ = h.Stand()
				t.publishLocked(p, h)
				continue
			}
			t.logger.Debug("Player action", "player", p.Name, "hand", h.ID, "action", a, "total", h.Total, "bankroll", p.Bankroll)

			t.bus.Publish(PlayerActionEvent{
				stamp:     t.now(),
				Player:    p.Name,
				HandCount: len(p.Hands),
				Action:    a,
				Hand:      h.View(),
				Refund:    res.Refund,
			})

			if res.NewHand != nil {
				queue = append(queue, res.NewHand)
				for _, split := range []*Hand{h, res.NewHand} {
					t.publishHandDealt(p, split)
				}
				if res.NewHand.Locked() {
					t.publishLocked(p, res.NewHand)
				}
			} else {
				for _, c := range res.Drawn {
					t.bus.Publish(CardDrawnEvent{
						stamp:     t.now(),
						Owner:     p.Name,
						HandCount: len(p.Hands),
						Card:      c,
						Hand:      h.View(),
					})
				}
			}

			if h.Locked() {
				t.publishLocked(p, h)
			}
		}
	}
	return nil
}

func (t *Table) requestAction(ctx context.Context, p *Player, h *Hand) (Action, error) {
	legal := p.LegalActions(h, t.cfg)
	req := ActionRequest{
		Player:       p.Name,
		Bankroll:     p.Bankroll,
		Hand:         h.View(),
		HandCount:    len(p.Hands),
		DealerUpcard: t.dealer.Upcard(),
		Legal:        legal,
	}
	for attempt := 1; attempt <= maxDecisionAttempts; attempt++ {
		a, err := t.source.Action(ctx, req)
		if err != nil {
			return Stand, fmt.Errorf("action for %s: %w", p.Name, err)
		}
		if ActionsContain(legal, a) {
			return a, nil
		}
		t.logger.Warn("Rejected action", "player", p.Name, "action", a, "attempt", attempt, "error", ErrIllegalAction)
	}
	t.logger.Error("No legal action received, standing", "player", p.Name, "hand", h.ID)
	return Stand, nil
}

// dealerTurn plays the dealer hand unless every player hand is already bust.
func (t *Table) dealerTurn() {
	if !t.anyLiveHand() {
		t.logger.Debug("All player hands bust, dealer does not draw")
		return
	}

	h := t.dealer.Hand
	t.bus.Publish(DealerTurnEvent{stamp: t.now(), Hand: h.View()})
	t.dealer.Play(t.shoe, func(c deck.Card) {
		t.logger.Debug("Dealer draws", "card", c, "total", h.Total)
		t.bus.Publish(CardDrawnEvent{
			stamp:     t.now(),
			Owner:     "Dealer",
			Dealer:    true,
			HandCount: 1,
			Card:      c,
			Hand:      h.View(),
		})
	})
	t.bus.Publish(HandLockedEvent{
		stamp:     t.now(),
		Owner:     "Dealer",
		Dealer:    true,
		HandCount: 1,
		Hand:      h.View(),
	})
}

func (t *Table) anyLiveHand() bool {
	for _, p := range t.players {
		for _, h := range p.Hands {
			if !h.IsBust() {
				return true
			}
		}
	}
	return false
}

func (t *Table) settle() {
	dealer := t.dealer.Hand
	for _, p := range t.players {
		for _, h := range p.Hands {
			outcome, payout := Settle(h, dealer)
			p.Bankroll += payout
			t.logger.Debug("Hand settled", "player", p.Name, "hand", h.ID, "outcome", outcome, "payout", payout)
			t.bus.Publish(SettlementEvent{
				stamp:      t.now(),
				Player:     p.Name,
				HandCount:  len(p.Hands),
				Hand:       h.View(),
				DealerHand: dealer.View(),
				Outcome:    outcome,
				Payout:     payout,
			})
		}
	}
}

func (t *Table) settleDealerBlackjack() {
	dealer := t.dealer.Hand
	for _, p := range t.players {
		outcome, payout, insurance := SettleDealerBlackjack(p)
		p.Bankroll += payout
		t.logger.Debug("Hand settled against dealer blackjack", "player", p.Name, "outcome", outcome, "payout", payout, "insurance", insurance)
		t.bus.Publish(SettlementEvent{
			stamp:           t.now(),
			Player:          p.Name,
			HandCount:       len(p.Hands),
			Hand:            p.Hands[0].View(),
			DealerHand:      dealer.View(),
			Outcome:         outcome,
			Payout:          payout,
			InsurancePayout: insurance,
			DealerBlackjack: true,
		})
	}
}

func (t *Table) reportResults() {
	for _, p := range t.players {
		t.bus.Publish(PlayerResultEvent{
			stamp:    t.now(),
			Round:    t.round,
			Player:   p.Name,
			Net:      p.RoundNet(),
			Bankroll: p.Bankroll,
		})
	}
}

// cleanup discards the round's hands, takes the dealt cards out of the shoe
// value and offers broke players a rebuy.
func (t *Table) cleanup(ctx context.Context) error {
	dealt := 0
	if t.dealer.Hand != nil {
		dealt += t.dealer.Hand.MinValue()
	}

	var broke []*Player
	var rebuyErr error
	for _, p := range t.players {
		for _, h := range p.Hands {
			dealt += h.MinValue()
		}
		p.clearRound()

		if p.Bankroll >= 1 || rebuyErr != nil {
			continue
		}
		rebuy, err := t.source.Rebuy(ctx, RebuyRequest{Player: p.Name, Amount: t.cfg.BuyIn})
		if err != nil {
			rebuyErr = fmt.Errorf("rebuy for %s: %w", p.Name, err)
			continue
		}
		if rebuy {
			p.Bankroll += t.cfg.BuyIn
			t.logger.Info("Player rebought", "player", p.Name, "amount", t.cfg.BuyIn)
			t.bus.Publish(RebuyEvent{stamp: t.now(), Player: p.Name, Amount: t.cfg.BuyIn, Bankroll: p.Bankroll})
			continue
		}
		t.logger.Info("Player left after going broke", "player", p.Name)
		t.bus.Publish(PlayerLeftEvent{
			stamp:    t.now(),
			Player:   p.Name,
			Bankroll: p.Bankroll,
			Reason:   LeaveDeclinedRebuy,
		})
		broke = append(broke, p)
	}
	t.removePlayers(broke)

	t.dealer.Hand = nil
	t.shoe.Discard(dealt)
	return rebuyErr
}

func (t *Table) removePlayers(leaving []*Player) {
	if len(leaving) == 0 {
		return
	}
	t.players = slices.DeleteFunc(t.players, func(p *Player) bool {
		return slices.Contains(leaving, p)
	})
}

func (t *Table) publishHandDealt(p *Player, h *Hand) {
	t.bus.Publish(HandDealtEvent{
		stamp:     t.now(),
		Owner:     p.Name,
		HandCount: len(p.Hands),
		Hand:      h.View(),
	})
}

func (t *Table) publishLocked(p *Player, h *Hand) {
	t.bus.Publish(HandLockedEvent{
		stamp:     t.now(),
		Owner:     p.Name,
		HandCount: len(p.Hands),
		Hand:      h.View(),
	})
}

func (t *Table) playerNames() []string {
	names := make([]string, len(t.players))
	for i, p := range t.players {
		names[i] = p.Name
	}
	return names
}

// now stamps an event with the table clock.
func (t *Table) now() stamp {
	return stamp{at: t.clock.Now()}
}

// IsGameOver reports whether err ended the game because the context was
// cancelled rather than because of a table fault.
func IsGameOver(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
