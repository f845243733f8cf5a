package game

import (
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/shoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seatedPlayer(t *testing.T, cards string, bet float64) (*Player, *Hand) {
	t.Helper()
	p := NewPlayer("Alice", 1000)
	require.NoError(t, p.PlaceBet(bet))
	h := p.Hands[0]
	for _, c := range deck.MustParseCards(cards) {
		h.AddCard(c)
	}
	return p, h
}

func TestPlaceBet(t *testing.T) {
	t.Parallel()
	p := NewPlayer("Alice", 100)
	assert.ErrorIs(t, p.PlaceBet(0), ErrInvalidBet)
	assert.ErrorIs(t, p.PlaceBet(-5), ErrInvalidBet)
	assert.ErrorIs(t, p.PlaceBet(101), ErrInsufficientFunds)
	assert.Equal(t, 100.0, p.Bankroll)

	require.NoError(t, p.PlaceBet(100))
	assert.Equal(t, 0.0, p.Bankroll)
	assert.Equal(t, 100.0, p.Hands[0].Bet)
}

func TestApplyRejectsIllegalActionBeforeMutation(t *testing.T) {
	t.Parallel()
	p, h := seatedPlayer(t, "8s 9h", 100)
	before := h.View()

	_, err := p.Apply(h, Split, shoe.NewStacked(), DefaultConfig())
	assert.ErrorIs(t, err, ErrIllegalAction)
	assert.Equal(t, before, h.View())
	assert.Equal(t, 900.0, p.Bankroll)

	_, err = p.Apply(h, Surrender, shoe.NewStacked(), NewConfig(WithSurrender(false)))
	assert.ErrorIs(t, err, ErrIllegalAction)
	assert.True(t, h.FirstTurn)

	_, err = p.Apply(NewHand(9), Hit, shoe.NewStacked(), DefaultConfig())
	assert.ErrorIs(t, err, ErrUnknownHand)
}

func TestDouble(t *testing.T) {
	t.Parallel()

	t.Run("draws one card and stands", func(t *testing.T) {
		p, h := seatedPlayer(t, "5s 6h", 100)
		res, err := p.Apply(h, Double, shoe.NewStacked(deck.MustParseCards("4c")...), DefaultConfig())
		require.NoError(t, err)

		assert.Equal(t, 800.0, p.Bankroll)
		assert.Equal(t, 200.0, h.Bet)
		assert.Len(t, res.Drawn, 1)
		assert.Equal(t, 15, h.Total)
		assert.Equal(t, Standing, h.Status)
		assert.False(t, h.FirstTurn)
	})

	t.Run("bust on double", func(t *testing.T) {
		p, h := seatedPlayer(t, "Ks 6h", 100)
		_, err := p.Apply(h, Double, shoe.NewStacked(deck.MustParseCards("Qc")...), DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, Bust, h.Status)
	})

	t.Run("not enough bankroll", func(t *testing.T) {
		p, h := seatedPlayer(t, "5s 6h", 600)
		_, err := p.Apply(h, Double, shoe.NewStacked(), DefaultConfig())
		assert.ErrorIs(t, err, ErrIllegalAction)
		assert.Equal(t, 400.0, p.Bankroll)
	})
}

func TestSurrender(t *testing.T) {
	t.Parallel()
	p, h := seatedPlayer(t, "Ks 6h", 100)
	res, err := p.Apply(h, Surrender, shoe.NewStacked(), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 50.0, res.Refund)
	assert.Equal(t, 950.0, p.Bankroll)
	assert.Equal(t, 50.0, h.Bet)
	assert.Equal(t, Surrendered, h.Status)
	assert.True(t, h.IsBust())

	outcome, payout := Settle(h, handOf("Ks 8h 9d"))
	assert.Equal(t, Lose, outcome, "a surrendered hand loses even if the dealer busts")
	assert.Zero(t, payout)
}

func TestSplit(t *testing.T) {
	t.Parallel()

	t.Run("pair of eights", func(t *testing.T) {
		p, h := seatedPlayer(t, "8s 8h", 100)
		res, err := p.Apply(h, Split, shoe.NewStacked(deck.MustParseCards("3c 10d")...), DefaultConfig())
		require.NoError(t, err)
		require.NotNil(t, res.NewHand)

		assert.Len(t, p.Hands, 2)
		assert.Equal(t, 800.0, p.Bankroll)
		assert.Equal(t, 100.0, res.NewHand.Bet)
		assert.Equal(t, 2, res.NewHand.ID)

		assert.Equal(t, deck.MustParseCards("8s 3c"), h.Cards)
		assert.Equal(t, 11, h.Total)
		assert.Equal(t, deck.MustParseCards("8h 10d"), res.NewHand.Cards)
		assert.Equal(t, 18, res.NewHand.Total)

		assert.True(t, h.FirstTurn, "split hands may still double")
		assert.True(t, res.NewHand.FirstTurn)
	})

	t.Run("aces are each soft", func(t *testing.T) {
		p, h := seatedPlayer(t, "As Ah", 100)
		require.Equal(t, 12, h.Total)

		// Inspect the hands before the post-split deal.
		nh := NewHand(2)
		first, second := h.Cards[0], h.Cards[1]
		h2 := NewHand(1)
		h2.reset(first)
		nh.reset(second)
		assert.Equal(t, 1, h2.SoftAces)
		assert.Equal(t, 11, h2.Total)
		assert.Equal(t, 1, nh.SoftAces)
		assert.Equal(t, 11, nh.Total)
		assert.Len(t, nh.Cards, 1)

		res, err := p.Apply(h, Split, shoe.NewStacked(deck.MustParseCards("9c Kd")...), DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, 20, h.Total)
		assert.Equal(t, 1, h.SoftAces)
		assert.Equal(t, 21, res.NewHand.Total)
		assert.True(t, res.NewHand.IsBlackjack(), "two-card 21 after a split counts as blackjack")
	})

	t.Run("hand limit reached", func(t *testing.T) {
		p, h := seatedPlayer(t, "8s 8h", 100)
		_, err := p.Apply(h, Split, shoe.NewStacked(deck.MustParseCards("8c 2d")...), DefaultConfig())
		require.NoError(t, err)
		require.True(t, h.CanSplit())

		_, err = p.Apply(h, Split, shoe.NewStacked(), DefaultConfig())
		assert.ErrorIs(t, err, ErrIllegalAction)
		assert.Len(t, p.Hands, 2)
	})

	t.Run("resplit up to the configured maximum", func(t *testing.T) {
		cfg := NewConfig(WithMaxHands(3))
		p, h := seatedPlayer(t, "8s 8h", 100)
		_, err := p.Apply(h, Split, shoe.NewStacked(deck.MustParseCards("8c 2d")...), cfg)
		require.NoError(t, err)
		_, err = p.Apply(h, Split, shoe.NewStacked(deck.MustParseCards("5c 6d")...), cfg)
		require.NoError(t, err)
		assert.Len(t, p.Hands, 3)
		assert.Equal(t, 700.0, p.Bankroll)
	})
}

func TestInsurance(t *testing.T) {
	t.Parallel()
	p, _ := seatedPlayer(t, "Ks 6h", 100)
	require.True(t, p.CanInsure())
	require.NoError(t, p.BuyInsurance())
	assert.Equal(t, 850.0, p.Bankroll)
	assert.Equal(t, 50.0, p.InsuranceStake())

	broke := NewPlayer("Bob", 100)
	require.NoError(t, broke.PlaceBet(100))
	assert.False(t, broke.CanInsure())
	assert.ErrorIs(t, broke.BuyInsurance(), ErrInsufficientFunds)
}

func TestDealerPlay(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		hand   string
		draws  string
		total  int
		status HandStatus
	}{
		{"stands on hard 17", "10s 7h", "", 17, Standing},
		{"stands on soft 17", "As 6h", "", 17, Standing},
		{"draws to 17", "10s 2h", "3c 2d", 17, Standing},
		{"busts", "10s 6h", "Kc", 26, Bust},
		{"soft hand demotes", "As 5h", "Kc 4d", 20, Standing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDealer(17)
			d.Hand = handOf(tt.hand)
			drawn := make([]deck.Card, 0)
			d.Play(shoe.NewStacked(deck.MustParseCards(tt.draws)...), func(c deck.Card) {
				drawn = append(drawn, c)
			})
			assert.Equal(t, tt.total, d.Hand.Total)
			assert.Equal(t, tt.status, d.Hand.Status)
			assert.Equal(t, deck.MustParseCards(tt.draws), drawn)
		})
	}
}
