package game

import (
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/shoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handOf(cards string) *Hand {
	h := NewHand(1)
	for _, c := range deck.MustParseCards(cards) {
		h.AddCard(c)
	}
	return h
}

func TestAceDemotion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cards    string
		total    int
		softAces int
	}{
		{"single soft ace", "As 6h", 17, 1},
		{"pair of aces", "As Ah", 12, 1},
		{"aces and nine", "As Ah 9c", 21, 1},
		{"aces demoted by ten", "As Ah 9c Kd", 21, 0},
		{"four aces", "As Ah Ac Ad", 14, 1},
		{"hard hand", "Kd 7c 5h", 22, 0},
		{"soft to hard", "As 6h 9d", 16, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handOf(tt.cards)
			assert.Equal(t, tt.total, h.Total)
			assert.Equal(t, tt.softAces, h.SoftAces)
		})
	}
}

func TestDemotionSubtractsTenPerSoftAce(t *testing.T) {
	t.Parallel()
	h := NewHand(1)
	h.Cards = deck.MustParseCards("As Ah 9c")
	h.Total = 31
	h.SoftAces = 2

	h.demoteAces()
	assert.Equal(t, 21, h.Total)
	assert.Equal(t, 1, h.SoftAces)

	h.demoteAces()
	assert.Equal(t, 21, h.Total, "demotion is idempotent once at or under 21")
}

func TestCheckBlackjack(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards string
		want  bool
	}{
		{"ace king", "As Kh", true},
		{"ten ace", "10d Ac", true},
		{"three card 21", "7s 3h Ad", false},
		{"twenty", "Ks Qh", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handOf(tt.cards)
			assert.Equal(t, tt.want, h.CheckBlackjack())
			assert.Equal(t, tt.want, h.Locked())
		})
	}
}

func TestHitReaching21Stands(t *testing.T) {
	t.Parallel()
	h := handOf("7s 3h")
	c, err := h.Hit(shoe.NewStacked(deck.MustParseCards("Ad")...), Blackjack)
	require.NoError(t, err)

	assert.Equal(t, deck.Ace, c.Rank)
	assert.Equal(t, 21, h.Total)
	assert.Equal(t, Standing, h.Status)
	assert.False(t, h.IsBlackjack())
}

func TestHitBusts(t *testing.T) {
	t.Parallel()
	h := handOf("Ks 6h")
	_, err := h.Hit(shoe.NewStacked(deck.MustParseCards("9c")...), Blackjack)
	require.NoError(t, err)
	assert.Equal(t, Bust, h.Status)
	assert.True(t, h.IsBust())

	_, err = h.Hit(shoe.NewStacked(deck.MustParseCards("2c")...), Blackjack)
	assert.ErrorIs(t, err, ErrHandLocked)
	assert.ErrorIs(t, h.Stand(), ErrHandLocked)
	assert.Len(t, h.Cards, 3)
}

func TestDealerStandThreshold(t *testing.T) {
	t.Parallel()
	h := handOf("10s 5h")
	_, err := h.Hit(shoe.NewStacked(deck.MustParseCards("2c")...), 17)
	require.NoError(t, err)
	assert.Equal(t, Standing, h.Status, "dealer stands once it reaches 17")
}

func TestLegalActions(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	noSurrender := NewConfig(WithSurrender(false))

	tests := []struct {
		name      string
		cards     string
		bet       float64
		bankroll  float64
		handCount int
		firstTurn bool
		cfg       Config
		want      []Action
	}{
		{"pair on first turn", "8s 8h", 100, 900, 1, true, cfg, []Action{Hit, Stand, Split, Double, Surrender}},
		{"no pair", "8s 9h", 100, 900, 1, true, cfg, []Action{Hit, Stand, Double, Surrender}},
		{"pair at hand limit", "8s 8h", 100, 900, 2, true, cfg, []Action{Hit, Stand, Double, Surrender}},
		{"short bankroll", "8s 8h", 100, 50, 1, true, cfg, []Action{Hit, Stand, Surrender}},
		{"surrender disabled", "8s 9h", 100, 900, 1, true, noSurrender, []Action{Hit, Stand, Double}},
		{"after first turn", "8s 8h", 100, 900, 1, false, cfg, []Action{Hit, Stand}},
		{"face cards of different rank do not pair", "Ks Qh", 100, 900, 1, true, cfg, []Action{Hit, Stand, Double, Surrender}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handOf(tt.cards)
			h.Bet = tt.bet
			h.FirstTurn = tt.firstTurn
			assert.Equal(t, tt.want, h.LegalActions(tt.cfg, tt.bankroll, tt.handCount))
		})
	}

	t.Run("locked hand", func(t *testing.T) {
		h := handOf("Ks 9h")
		require.NoError(t, h.Stand())
		assert.Empty(t, h.LegalActions(cfg, 1000, 1))
	})
}

func TestHandView(t *testing.T) {
	t.Parallel()
	h := handOf("As 6h")
	h.Bet = 25
	v := h.View()
	h.AddCard(deck.NewCard(deck.King, deck.Clubs))

	assert.Len(t, v.Cards, 2, "view is a snapshot")
	assert.Equal(t, 17, v.Total)
	assert.True(t, v.Soft)
	assert.Equal(t, "A♠ 6♥ (17)", v.String())
	assert.Equal(t, 1+6+10, h.MinValue())
}
