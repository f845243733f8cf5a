package game

import (
	"fmt"
	"slices"

	"github.com/lox/blackjack/internal/deck"
)

// Player is a seat at the table. Players persist across rounds; their hands
// are discarded at the end of each round.
type Player struct {
	Name         string
	Bankroll     float64
	Hands        []*Hand
	HasInsurance bool

	insuranceStake float64
	roundStart     float64 // Bankroll before the round's bet
}

// NewPlayer creates a player with the given bankroll and no hands.
func NewPlayer(name string, bankroll float64) *Player {
	return &Player{
		Name:     name,
		Bankroll: bankroll,
	}
}

// PlaceBet stakes amount on the player's first hand.
func (p *Player) PlaceBet(amount float64) error {
	if len(p.Hands) == 0 {
		p.Hands = append(p.Hands, NewHand(1))
	}
	if amount <= 0 {
		return fmt.Errorf("%w: %.2f", ErrInvalidBet, amount)
	}
	if amount > p.Bankroll {
		return fmt.Errorf("%w: bet %.2f with bankroll %.2f", ErrInsufficientFunds, amount, p.Bankroll)
	}
	p.roundStart = p.Bankroll
	p.Hands[0].Bet = amount
	p.Bankroll -= amount
	return nil
}

// CanInsure reports whether the player can afford half their bet as insurance.
func (p *Player) CanInsure() bool {
	return len(p.Hands) > 0 && p.Bankroll >= p.Hands[0].Bet/2
}

// BuyInsurance stakes half of the first hand's bet on a dealer blackjack.
func (p *Player) BuyInsurance() error {
	if !p.CanInsure() {
		return ErrInsufficientFunds
	}
	p.insuranceStake = p.Hands[0].Bet / 2
	p.Bankroll -= p.insuranceStake
	p.HasInsurance = true
	return nil
}

// InsuranceStake returns the amount staked on insurance this round.
func (p *Player) InsuranceStake() float64 {
	return p.insuranceStake
}

// LegalActions returns the actions the player may take on h.
func (p *Player) LegalActions(h *Hand, cfg Config) []Action {
	return h.LegalActions(cfg, p.Bankroll, len(p.Hands))
}

// ActionResult describes the effect of an applied action.
type ActionResult struct {
	Action  Action
	Drawn   []deck.Card // Cards dealt to the acting hand
	NewHand *Hand       // Hand created by a split
	Refund  float64     // Amount returned by a surrender
}

// Apply resolves action a on hand h. Actions outside the legal set are
// rejected before the hand or bankroll is touched.
func (p *Player) Apply(h *Hand, a Action, src CardSource, cfg Config) (ActionResult, error) {
	result := ActionResult{Action: a}
	if !slices.Contains(p.Hands, h) {
		return result, ErrUnknownHand
	}
	if h.Locked() {
		return result, ErrHandLocked
	}
	if !ActionsContain(p.LegalActions(h, cfg), a) {
		return result, fmt.Errorf("%w: %s", ErrIllegalAction, a)
	}

	if a != Split {
		h.FirstTurn = false
	}

	switch a {
	case Hit:
		c, err := h.Hit(src, Blackjack)
		if err != nil {
			return result, err
		}
		result.Drawn = append(result.Drawn, c)
	case Stand:
		if err := h.Stand(); err != nil {
			return result, err
		}
	case Double:
		c, err := p.double(h, src)
		if err != nil {
			return result, err
		}
		result.Drawn = append(result.Drawn, c)
	case Split:
		nh, err := p.split(h, src)
		if err != nil {
			return result, err
		}
		result.NewHand = nh
		result.Drawn = append(result.Drawn, h.Cards[1])
	case Surrender:
		result.Refund = p.surrender(h)
	}
	return result, nil
}

func (p *Player) double(h *Hand, src CardSource) (deck.Card, error) {
	p.Bankroll -= h.Bet
	h.Bet += h.Bet
	c, err := h.Hit(src, Blackjack)
	if err != nil {
		return c, err
	}
	if !h.Locked() {
		h.Status = Standing
	}
	return c, nil
}

// split moves the second card of h into a new hand with a matching bet and
// deals one fresh card to each.
func (p *Player) split(h *Hand, src CardSource) (*Hand, error) {
	if !h.CanSplit() {
		return nil, fmt.Errorf("%w: cards do not pair", ErrIllegalAction)
	}
	if p.Bankroll < h.Bet {
		return nil, ErrInsufficientFunds
	}

	nh := NewHand(len(p.Hands) + 1)
	p.Hands = append(p.Hands, nh)
	p.Bankroll -= h.Bet
	nh.Bet = h.Bet

	first, second := h.Cards[0], h.Cards[1]
	h.reset(first)
	nh.reset(second)

	for _, hand := range []*Hand{h, nh} {
		hand.Deal(src)
		hand.CheckBlackjack()
	}
	return nh, nil
}

// surrender refunds half the bet and forfeits the hand.
func (p *Player) surrender(h *Hand) float64 {
	refund := h.Bet / 2
	p.Bankroll += refund
	h.Bet = refund
	h.Status = Surrendered
	return refund
}

// RoundNet returns the bankroll change since the round's bet was placed.
func (p *Player) RoundNet() float64 {
	return p.Bankroll - p.roundStart
}

// clearRound resets round-specific state.
func (p *Player) clearRound() {
	p.HasInsurance = false
	p.insuranceStake = 0
	p.Hands = nil
}

// PlayerView is a read-only snapshot of a player.
type PlayerView struct {
	Name         string
	Bankroll     float64
	Hands        []HandView
	HasInsurance bool
}

// View returns a snapshot of the player.
func (p *Player) View() PlayerView {
	hands := make([]HandView, len(p.Hands))
	for i, h := range p.Hands {
		hands[i] = h.View()
	}
	return PlayerView{
		Name:         p.Name,
		Bankroll:     p.Bankroll,
		Hands:        hands,
		HasInsurance: p.HasInsurance,
	}
}

// Dealer plays a single hand per round. It never bets or splits and draws to
// a fixed stand value regardless of soft Aces.
type Dealer struct {
	Hand    *Hand
	StandOn int
}

// NewDealer creates a dealer that stands on standOn or higher.
func NewDealer(standOn int) *Dealer {
	return &Dealer{StandOn: standOn}
}

// Upcard returns the first card dealt to the dealer.
func (d *Dealer) Upcard() deck.Card {
	return d.Hand.Cards[0]
}

// ShowsAce reports whether the upcard is an Ace.
func (d *Dealer) ShowsAce() bool {
	return d.Hand != nil && len(d.Hand.Cards) > 0 && d.Upcard().IsAce()
}

// Play draws until the hand stands or busts, calling onDraw for each card.
func (d *Dealer) Play(src CardSource, onDraw func(deck.Card)) {
	for !d.Hand.Locked() {
		if d.Hand.Total < d.StandOn {
			c, err := d.Hand.Hit(src, d.StandOn)
			if err != nil {
				return
			}
			if onDraw != nil {
				onDraw(c)
			}
			continue
		}
		_ = d.Hand.Stand()
	}
}
