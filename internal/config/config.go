// Package config loads table rules from HCL files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// File represents the complete configuration file
type File struct {
	Table *TableBlock `hcl:"table,block"`
	Deck  *DeckBlock  `hcl:"deck,block"`
}

// TableBlock overrides the table rules. Omitted attributes keep their defaults.
type TableBlock struct {
	Name          string   `hcl:"name,label"`
	Decks         *int     `hcl:"decks,optional"`
	MaxPlayers    *int     `hcl:"max_players,optional"`
	MaxHands      *int     `hcl:"max_hands,optional"`
	BuyIn         *float64 `hcl:"buy_in,optional"`
	Surrender     *bool    `hcl:"surrender,optional"`
	DealerStandOn *int     `hcl:"dealer_stands_on,optional"`
	MaxDealerHand *int     `hcl:"max_dealer_hand,optional"`
	MaxPlayerHand *int     `hcl:"max_player_hand,optional"`
}

// DeckBlock replaces the standard deck. Ranks and suits use the card
// notation accepted by deck.ParseRank and deck.ParseSuit.
type DeckBlock struct {
	Ranks []string `hcl:"ranks"`
	Suits []string `hcl:"suits"`
}

// Load reads filename and applies it over game.DefaultConfig. A missing file
// returns the defaults.
func Load(filename string) (game.Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return game.DefaultConfig(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return game.Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and applies it over game.DefaultConfig.
func Parse(src []byte, filename string) (game.Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return game.Config{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var f File
	diags = gohcl.DecodeBody(file.Body, nil, &f)
	if diags.HasErrors() {
		return game.Config{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg, err := f.Apply(game.DefaultConfig())
	if err != nil {
		return game.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// Apply overlays the file on cfg.
func (f File) Apply(cfg game.Config) (game.Config, error) {
	if t := f.Table; t != nil {
		if t.Name != "" {
			game.WithCasinoName(t.Name)(&cfg)
		}
		setIfPresent(&cfg.Decks, t.Decks)
		setIfPresent(&cfg.MaxPlayers, t.MaxPlayers)
		setIfPresent(&cfg.MaxHands, t.MaxHands)
		setIfPresent(&cfg.BuyIn, t.BuyIn)
		setIfPresent(&cfg.SurrenderAllowed, t.Surrender)
		setIfPresent(&cfg.DealerStandsOn, t.DealerStandOn)
		setIfPresent(&cfg.MaxDealerHand, t.MaxDealerHand)
		setIfPresent(&cfg.MaxPlayerHand, t.MaxPlayerHand)
	}

	if d := f.Deck; d != nil {
		def, err := d.Definition()
		if err != nil {
			return cfg, err
		}
		game.WithDeck(def)(&cfg)
	}
	return cfg, nil
}

// Definition parses the block into a deck definition.
func (d DeckBlock) Definition() (deck.Definition, error) {
	var def deck.Definition
	for _, s := range d.Ranks {
		r, err := deck.ParseRank(s)
		if err != nil {
			return def, fmt.Errorf("deck block: %w", err)
		}
		def.Ranks = append(def.Ranks, r)
	}
	for _, s := range d.Suits {
		suit, err := deck.ParseSuit(s)
		if err != nil {
			return def, fmt.Errorf("deck block: %w", err)
		}
		def.Suits = append(def.Suits, suit)
	}
	return def, def.Validate()
}

func setIfPresent[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
