// Package shoe implements the replenishable stack of cards that every hand
// at the table is dealt from.
package shoe

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
)

// Shoe is an ordered stack of cards dealt from the end. It tracks the sum of
// the minimum values of the cards it holds (Aces count 1) as a cheap measure of
// how much play is left before it must be replenished.
type Shoe struct {
	canonical []deck.Card
	deckValue int
	cards     []deck.Card
	value     int
	rng       *rand.Rand
	logger    *log.Logger
}

// Build returns decks copies of the definition in canonical order together
// with their aggregate minimum value.
func Build(def deck.Definition, decks int) ([]deck.Card, int) {
	one := def.Cards()
	cards := make([]deck.Card, 0, len(one)*decks)
	for range decks {
		cards = append(cards, one...)
	}
	return cards, def.MinValue() * decks
}

// New creates an empty shoe that replenishes from decks copies of def.
func New(def deck.Definition, decks int, rng *rand.Rand, logger *log.Logger) (*Shoe, error) {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if decks < 1 {
		return nil, fmt.Errorf("shoe needs at least one deck, got %d", decks)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	canonical, value := Build(def, decks)
	return &Shoe{
		canonical: canonical,
		deckValue: value,
		rng:       rng,
		logger:    logger,
	}, nil
}

// NewStacked creates a shoe that deals exactly the given cards in order, the
// first argument being dealt first. Once exhausted it falls back to
// replenishing from a single standard deck. Intended for deterministic tests.
func NewStacked(cards ...deck.Card) *Shoe {
	s, _ := New(deck.Standard(), 1, rand.New(rand.NewPCG(1, 2)), nil)
	s.cards = make([]deck.Card, len(cards))
	for i, c := range cards {
		s.cards[len(cards)-1-i] = c
		s.value += c.MinValue()
	}
	return s
}

// Replenish shuffles a fresh copy of the canonical decks and slides it under
// the remaining cards, so every old card is dealt before any new one. It
// returns the minimum value added to the shoe.
func (s *Shoe) Replenish() int {
	fresh := make([]deck.Card, len(s.canonical), len(s.canonical)+len(s.cards))
	copy(fresh, s.canonical)
	s.rng.Shuffle(len(fresh), func(i, j int) {
		fresh[i], fresh[j] = fresh[j], fresh[i]
	})
	s.cards = append(fresh, s.cards...)
	s.value += s.deckValue
	s.logger.Debug("Replenished shoe", "added", len(fresh), "remaining", len(s.cards), "value", s.value)
	return s.deckValue
}

// Draw removes and returns the next card. An empty shoe is replenished first;
// with correct sizing that never happens mid-round.
func (s *Shoe) Draw() deck.Card {
	if len(s.cards) == 0 {
		s.logger.Warn("Shoe ran dry mid-round, replenishing")
		s.Replenish()
	}
	last := len(s.cards) - 1
	c := s.cards[last]
	s.cards = s.cards[:last]
	return c
}

// NeedsReplenish reports whether the shoe value has fallen below minimum.
func (s *Shoe) NeedsReplenish(minimum int) bool {
	return s.value < minimum
}

// Discard removes value from the running shoe value. The table calls it at
// round cleanup with the minimum value of every card dealt that round.
func (s *Shoe) Discard(value int) {
	s.value -= value
}

// Value returns the running minimum value of the shoe.
func (s *Shoe) Value() int {
	return s.value
}

// DeckValue returns the minimum value added by one replenishment.
func (s *Shoe) DeckValue() int {
	return s.deckValue
}

// Remaining returns the number of cards left in the shoe.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// PhysicalValue recomputes the shoe value from the cards present.
func (s *Shoe) PhysicalValue() int {
	total := 0
	for _, c := range s.cards {
		total += c.MinValue()
	}
	return total
}
