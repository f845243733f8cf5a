package game

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Blackjack is the best possible hand total.
const Blackjack = 21

// HandStatus is the position of a hand in its state machine. Every status
// other than Open is terminal.
type HandStatus int

const (
	Open HandStatus = iota
	Standing
	Bust
	Surrendered
	BlackjackHand
)

// String returns the string representation of a hand status
func (s HandStatus) String() string {
	switch s {
	case Open:
		return "open"
	case Standing:
		return "standing"
	case Bust:
		return "bust"
	case Surrendered:
		return "surrendered"
	case BlackjackHand:
		return "blackjack"
	default:
		return "unknown"
	}
}

// CardSource supplies cards to hands. *shoe.Shoe implements it.
type CardSource interface {
	Draw() deck.Card
}

// Hand is a set of cards owned by one player (or the dealer) for one round.
type Hand struct {
	ID        int
	Cards     []deck.Card
	Total     int // Aces count 11 until demoted
	SoftAces  int // Aces still counted as 11
	Bet       float64
	Status    HandStatus
	FirstTurn bool // Double, split and surrender are only legal on the first turn
}

// NewHand creates an empty open hand with no bet.
func NewHand(id int) *Hand {
	return &Hand{
		ID:        id,
		Cards:     make([]deck.Card, 0, 4),
		FirstTurn: true,
	}
}

// Locked reports whether the hand can take more actions.
func (h *Hand) Locked() bool {
	return h.Status != Open
}

// IsBust reports whether the hand lost outright. Surrendered hands count as bust.
func (h *Hand) IsBust() bool {
	return h.Status == Bust || h.Status == Surrendered
}

// IsBlackjack reports whether the hand is a two-card 21.
func (h *Hand) IsBlackjack() bool {
	return h.Status == BlackjackHand
}

// IsSoft reports whether an Ace is still counted as 11.
func (h *Hand) IsSoft() bool {
	return h.SoftAces > 0
}

// AddCard appends c and brings the total back under 21 by demoting soft Aces
// where possible.
func (h *Hand) AddCard(c deck.Card) {
	h.Cards = append(h.Cards, c)
	if c.IsAce() {
		h.SoftAces++
	}
	h.Total += c.Value()
	h.demoteAces()
}

// Deal draws one card from src into the hand. It is the only way cards move
// from the shoe into a hand.
func (h *Hand) Deal(src CardSource) deck.Card {
	c := src.Draw()
	h.AddCard(c)
	return c
}

func (h *Hand) demoteAces() {
	for h.Total > Blackjack && h.SoftAces > 0 {
		h.Total -= 10
		h.SoftAces--
	}
}

// CheckBlackjack locks a two-card 21 as a blackjack. It never matches a hand
// holding any other number of cards.
func (h *Hand) CheckBlackjack() bool {
	if len(h.Cards) == 2 && h.Total == Blackjack && h.Status == Open {
		h.Status = BlackjackHand
	}
	return h.IsBlackjack()
}

// Hit deals a card and locks the hand once it passes 21 (bust) or reaches
// standAt (automatic stand). Players stand at 21, the dealer at 17.
func (h *Hand) Hit(src CardSource, standAt int) (deck.Card, error) {
	if h.Locked() {
		return deck.Card{}, ErrHandLocked
	}
	c := h.Deal(src)
	switch {
	case h.Total > Blackjack:
		h.Status = Bust
	case h.Total >= standAt:
		h.Status = Standing
	}
	return c, nil
}

// Stand locks the hand at its current total.
func (h *Hand) Stand() error {
	if h.Locked() {
		return ErrHandLocked
	}
	h.Status = Standing
	return nil
}

// CanSplit reports whether the hand holds exactly two cards of equal rank.
func (h *Hand) CanSplit() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// LegalActions computes what the owner may do with the hand given their
// bankroll and how many hands they already hold.
func (h *Hand) LegalActions(cfg Config, bankroll float64, handCount int) []Action {
	if h.Locked() {
		return nil
	}
	actions := []Action{Hit, Stand}
	if h.FirstTurn && bankroll >= h.Bet {
		if h.CanSplit() && handCount < cfg.MaxHands {
			actions = append(actions, Split)
		}
		actions = append(actions, Double)
	}
	if h.FirstTurn && cfg.SurrenderAllowed {
		actions = append(actions, Surrender)
	}
	return actions
}

// reset replaces the cards of the hand and recomputes its totals.
func (h *Hand) reset(cards ...deck.Card) {
	h.Cards = h.Cards[:0]
	h.Total = 0
	h.SoftAces = 0
	for _, c := range cards {
		h.AddCard(c)
	}
}

// MinValue returns the sum of minimum card values held. Round cleanup uses it
// to keep the shoe value in step with the cards dealt.
func (h *Hand) MinValue() int {
	total := 0
	for _, c := range h.Cards {
		total += c.MinValue()
	}
	return total
}

// String returns the cards separated by spaces
func (h *Hand) String() string {
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// HandView is a read-only snapshot of a hand.
type HandView struct {
	ID        int
	Cards     []deck.Card
	Total     int
	Soft      bool
	Bet       float64
	Status    HandStatus
	FirstTurn bool
}

// View returns a snapshot of the hand that is safe to hand to observers.
func (h *Hand) View() HandView {
	cards := make([]deck.Card, len(h.Cards))
	copy(cards, h.Cards)
	return HandView{
		ID:        h.ID,
		Cards:     cards,
		Total:     h.Total,
		Soft:      h.IsSoft(),
		Bet:       h.Bet,
		Status:    h.Status,
		FirstTurn: h.FirstTurn,
	}
}

// String returns the cards of the snapshot separated by spaces
func (v HandView) String() string {
	parts := make([]string, len(v.Cards))
	for i, c := range v.Cards {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s (%d)", strings.Join(parts, " "), v.Total)
}
