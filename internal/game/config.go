package game

import (
	"fmt"

	"github.com/lox/blackjack/internal/deck"
)

// Config holds the table rules. It is fixed when the table is created.
type Config struct {
	CasinoName string

	Decks      int
	MaxPlayers int
	MaxHands   int // Hands per player, reached by splitting

	// Worst-case hand values used to size the shoe before each round.
	MaxDealerHand int
	MaxPlayerHand int

	BuyIn            float64 // Starting bankroll and rebuy amount
	SurrenderAllowed bool
	DealerStandsOn   int

	Deck deck.Definition
}

// ConfigOption configures a Config during creation.
type ConfigOption func(*Config)

// DefaultConfig returns single-deck rules with surrender allowed.
func DefaultConfig() Config {
	return Config{
		CasinoName:       "Moonshadow Casino",
		Decks:            1,
		MaxPlayers:       5,
		MaxHands:         2,
		MaxDealerHand:    26,
		MaxPlayerHand:    30,
		BuyIn:            1000,
		SurrenderAllowed: true,
		DealerStandsOn:   17,
		Deck:             deck.Standard(),
	}
}

// NewConfig returns DefaultConfig with opts applied.
func NewConfig(opts ...ConfigOption) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithDecks sets the number of decks shuffled into the shoe.
func WithDecks(n int) ConfigOption {
	return func(c *Config) { c.Decks = n }
}

// WithMaxPlayers sets the number of seats.
func WithMaxPlayers(n int) ConfigOption {
	return func(c *Config) { c.MaxPlayers = n }
}

// WithMaxHands sets how many hands a player may hold after splitting.
func WithMaxHands(n int) ConfigOption {
	return func(c *Config) { c.MaxHands = n }
}

// WithBuyIn sets the starting bankroll and rebuy amount.
func WithBuyIn(amount float64) ConfigOption {
	return func(c *Config) { c.BuyIn = amount }
}

// WithSurrender enables or disables surrender.
func WithSurrender(allowed bool) ConfigOption {
	return func(c *Config) { c.SurrenderAllowed = allowed }
}

// WithCasinoName sets the name shown in the welcome banner.
func WithCasinoName(name string) ConfigOption {
	return func(c *Config) { c.CasinoName = name }
}

// WithDeck replaces the standard deck with a custom definition.
func WithDeck(def deck.Definition) ConfigOption {
	return func(c *Config) { c.Deck = def }
}

// Validate checks the configuration for values the table cannot play with.
func (c Config) Validate() error {
	switch {
	case c.Decks < 1:
		return fmt.Errorf("decks must be at least 1, got %d", c.Decks)
	case c.MaxPlayers < 1:
		return fmt.Errorf("max players must be at least 1, got %d", c.MaxPlayers)
	case c.MaxHands < 1:
		return fmt.Errorf("max hands must be at least 1, got %d", c.MaxHands)
	case c.BuyIn < 1:
		return fmt.Errorf("buy-in must be at least 1, got %.2f", c.BuyIn)
	case c.DealerStandsOn < 2 || c.DealerStandsOn > 21:
		return fmt.Errorf("dealer stand value must be between 2 and 21, got %d", c.DealerStandsOn)
	case c.MaxDealerHand < 0 || c.MaxPlayerHand < 0:
		return fmt.Errorf("max hand values must not be negative")
	}
	if err := c.Deck.Validate(); err != nil {
		return fmt.Errorf("invalid deck: %w", err)
	}
	return nil
}

// MinimumShoeValue is the shoe value required before a round with the given
// number of players may start. It assumes every hand reaches its worst case.
func MinimumShoeValue(cfg Config, players int) int {
	return cfg.MaxDealerHand + players*cfg.MaxHands*cfg.MaxPlayerHand
}
