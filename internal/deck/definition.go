package deck

import "errors"

// Definition describes the rank and suit sets that make up one deck.
// Custom definitions (e.g. a deck with the tens stripped) are supported; every
// card still derives its value from its rank.
type Definition struct {
	Ranks []Rank
	Suits []Suit
}

// Standard returns the 52-card French deck definition.
func Standard() Definition {
	ranks := make([]Rank, 0, 13)
	for r := Ace; r <= King; r++ {
		ranks = append(ranks, r)
	}
	return Definition{
		Ranks: ranks,
		Suits: []Suit{Spades, Hearts, Clubs, Diamonds},
	}
}

// Validate reports whether the definition can produce at least one card.
func (d Definition) Validate() error {
	if len(d.Ranks) == 0 {
		return errors.New("deck definition has no ranks")
	}
	if len(d.Suits) == 0 {
		return errors.New("deck definition has no suits")
	}
	return nil
}

// Cards returns one copy of the deck in canonical (unshuffled) order.
func (d Definition) Cards() []Card {
	cards := make([]Card, 0, len(d.Ranks)*len(d.Suits))
	for _, s := range d.Suits {
		for _, r := range d.Ranks {
			cards = append(cards, NewCard(r, s))
		}
	}
	return cards
}

// MinValue returns the sum of minimum card values for one deck (340 for a
// standard deck).
func (d Definition) MinValue() int {
	total := 0
	for _, r := range d.Ranks {
		total += r.MinValue()
	}
	return total * len(d.Suits)
}
