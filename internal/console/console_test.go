package console

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/statistics"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestParseBet(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    game.BetDecision
		wantErr error
	}{
		{"100", game.BetDecision{Amount: 100}, nil},
		{" 1000 \n", game.BetDecision{Amount: 1000}, nil},
		{"0", game.LeaveTable, nil},
		{"LEAVE", game.LeaveTable, nil},
		{"1001", game.BetDecision{}, game.ErrInsufficientFunds},
		{"-5", game.BetDecision{}, ErrInvalidInput},
		{"12.5", game.BetDecision{}, ErrInvalidInput},
		{"lots", game.BetDecision{}, ErrInvalidInput},
		{"", game.BetDecision{}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBet(tt.input, 1000)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseYesNo(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"yes", "Y", "  YES "} {
		got, err := ParseYesNo(in)
		require.NoError(t, err, in)
		assert.True(t, got, in)
	}
	for _, in := range []string{"no", "N"} {
		got, err := ParseYesNo(in)
		require.NoError(t, err, in)
		assert.False(t, got, in)
	}
	for _, in := range []string{"", "maybe", "yess"} {
		_, err := ParseYesNo(in)
		assert.ErrorIs(t, err, ErrInvalidInput, in)
	}
}

func TestParseAction(t *testing.T) {
	t.Parallel()
	legal := []game.Action{game.Hit, game.Stand, game.Double}

	a, err := ParseAction(" Double ", legal)
	require.NoError(t, err)
	assert.Equal(t, game.Double, a)

	_, err = ParseAction("split", legal)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseAction("h", legal)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParsePlayerCount(t *testing.T) {
	t.Parallel()
	n, err := ParsePlayerCount("3", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ParsePlayerCount("6", 5)
	assert.ErrorIs(t, err, ErrTooManyPlayers)
	_, err = ParsePlayerCount("0", 5)
	assert.ErrorIs(t, err, ErrNoPlayers)
	_, err = ParsePlayerCount("three", 5)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestActionPrompt(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		handCount int
		legal     []game.Action
		want      string
	}{
		{"two actions", 1, []game.Action{game.Hit, game.Stand}, "Will Alice hit or stand?"},
		{"first turn", 1, []game.Action{game.Hit, game.Stand, game.Double, game.Surrender}, "Will Alice hit, stand, double or surrender?"},
		{"split hand", 2, []game.Action{game.Hit, game.Stand}, "Will Alice hit or stand for hand 2?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActionPrompt("Alice", 2, tt.handCount, tt.legal))
		})
	}
}

func TestConsoleRepromptsUntilValid(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	c := New(strings.NewReader("lots\n5000\n250\n"), &out, nil)

	d, err := c.Bet(context.Background(), game.BetRequest{Player: "Alice", Bankroll: 1000})
	require.NoError(t, err)
	assert.Equal(t, 250.0, d.Amount)

	text := out.String()
	assert.Contains(t, text, `Alice has $1000 remaining. How much will Alice bet? Enter 0 or "leave" to leave.`)
	assert.Contains(t, text, "Please enter a valid amount.")
	assert.Contains(t, text, "You don't have that much left!")
	assert.Equal(t, 3, strings.Count(text, "How much will Alice bet?"))
}

func TestConsoleDecisions(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	c := New(strings.NewReader("perhaps\ny\nsplit\nSTAND\nn"), &out, nil)
	ctx := context.Background()

	insure, err := c.Insurance(ctx, game.InsuranceRequest{Player: "Alice", Stake: 50})
	require.NoError(t, err)
	assert.True(t, insure)

	a, err := c.Action(ctx, game.ActionRequest{
		Player:    "Alice",
		Hand:      game.HandView{ID: 1},
		HandCount: 1,
		Legal:     []game.Action{game.Hit, game.Stand},
	})
	require.NoError(t, err)
	assert.Equal(t, game.Stand, a)

	// The last answer has no trailing newline.
	rebuy, err := c.Rebuy(ctx, game.RebuyRequest{Player: "Alice", Amount: 1000})
	require.NoError(t, err)
	assert.False(t, rebuy)

	text := out.String()
	assert.Contains(t, text, "It's a yes or no question.")
	assert.Contains(t, text, "That is not a valid selection.")
	assert.Contains(t, text, "Alice has gone broke. Rebuy for $1000?")
}

func TestConsoleReturnsEOF(t *testing.T) {
	t.Parallel()
	c := New(strings.NewReader(""), io.Discard, nil)
	_, err := c.Bet(context.Background(), game.BetRequest{Player: "Alice", Bankroll: 10})
	assert.ErrorIs(t, err, io.EOF)
}

func TestConsoleHonoursCancelledContext(t *testing.T) {
	t.Parallel()
	c := New(strings.NewReader("10\n"), io.Discard, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Bet(ctx, game.BetRequest{Player: "Alice", Bankroll: 10})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConsoleSetup(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	c := New(strings.NewReader("nine\n9\n0\n2\nAlice\n\n"), &out, nil)
	ctx := context.Background()

	c.Welcome(game.NewConfig(game.WithSurrender(false)))
	n, err := c.PlayerCount(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	names, err := c.PlayerNames(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", ""}, names)

	text := out.String()
	assert.Contains(t, text, "Welcome to Moonshadow Casino! Decks shuffled into the shoe: 1.")
	assert.Contains(t, text, "Surrenders are not allowed.")
	assert.Contains(t, text, "That's not a number.")
	assert.Contains(t, text, "The table can't hold that many players!")
	assert.Contains(t, text, "At least one person needs to be playing for a game to happen.")
	assert.Contains(t, text, "What is the name for player 2?")
}

func TestPlayConsoleRound(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	c := New(strings.NewReader("100\nhit\nstand\n0\n"), &out, nil)

	bus := game.NewEventBus()
	bus.Subscribe(NewRenderer(&out, game.FormattingOptions{}))
	collector := statistics.NewCollector()
	bus.Subscribe(collector)

	// Alice 10+4, hits a 5 for 19; dealer 10+8 stands.
	table, _ := game.NewTestTable(c, deck.MustParseCards("10h 10d 4c 8s 5h"), []string{"Alice"}, game.WithEventBus(bus))
	require.NoError(t, table.Run(context.Background()))

	NewRenderer(&out, game.FormattingOptions{}).Summary(collector)

	text := out.String()
	for _, want := range []string{
		"Alice's hand: 10♥ 4♣ (14)",
		"Dealer's upcard: 10♦",
		"Will Alice hit, stand, double or surrender?",
		"Alice takes a card.",
		"Alice's hand: 10♥ 4♣ 5♥ (19)",
		"Will Alice hit or stand?",
		"Alice stands at 19.",
		"Alice wins $100!",
		"Alice left the table with $1100 remaining.",
		"Session summary",
		"Alice: 1 rounds, 1 hands (1 won, 0 lost, 0 pushed, 0 blackjacks), net +$100",
	} {
		assert.Contains(t, text, want)
	}
}

func TestSummaryReportsSessionStatistics(t *testing.T) {
	t.Parallel()
	collector := statistics.NewCollector()
	collector.OnEvent(game.SettlementEvent{Player: "Alice", Hand: game.HandView{Bet: 100, Status: game.Standing}, Outcome: game.Lose})
	collector.OnEvent(game.PlayerResultEvent{Player: "Alice", Net: -100})
	collector.OnEvent(game.SettlementEvent{Player: "Alice", Hand: game.HandView{Bet: 100, Status: game.BlackjackHand}, Outcome: game.BlackjackWin, Payout: 250})
	collector.OnEvent(game.PlayerResultEvent{Player: "Alice", Net: 150})

	var out bytes.Buffer
	NewRenderer(&out, game.FormattingOptions{}).Summary(collector)

	text := out.String()
	for _, want := range []string{
		"Alice: 2 rounds, 2 hands (1 won, 1 lost, 0 pushed, 1 blackjacks), net +$50",
		"won 50% of hands, wagered $200, returned $250",
		"per round: mean +25.00 (95% CI -220.00 to +270.00), median +25.00, std dev 176.78",
		"middle 80% of rounds -75.00 to +125.00, best $150, worst -$100",
	} {
		assert.Contains(t, text, want)
	}
}

func TestSummaryEmptyCollector(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	NewRenderer(&out, game.FormattingOptions{}).Summary(statistics.NewCollector())
	assert.Empty(t, out.String())
}
