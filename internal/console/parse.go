package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

var (
	// ErrInvalidInput is returned for input that does not parse.
	ErrInvalidInput = errors.New("invalid input")
	// ErrTooManyPlayers is returned when the player count exceeds the seats.
	ErrTooManyPlayers = errors.New("too many players")
	// ErrNoPlayers is returned when the player count is below one.
	ErrNoPlayers = errors.New("no players")
)

// ParseBet parses a stake. "leave" or 0 leaves the table; anything other
// than a whole number up to the bankroll is rejected.
func ParseBet(input string, bankroll float64) (game.BetDecision, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "leave" {
		return game.LeaveTable, nil
	}
	if !isDigits(s) {
		return game.BetDecision{}, fmt.Errorf("%w: bet %q", ErrInvalidInput, input)
	}
	amount, err := strconv.Atoi(s)
	if err != nil {
		return game.BetDecision{}, fmt.Errorf("%w: bet %q", ErrInvalidInput, input)
	}
	if float64(amount) > bankroll {
		return game.BetDecision{}, fmt.Errorf("%w: bet %d with %s", game.ErrInsufficientFunds, amount, game.FormatMoney(bankroll))
	}
	if amount == 0 {
		return game.LeaveTable, nil
	}
	return game.BetDecision{Amount: float64(amount)}, nil
}

// ParseYesNo accepts yes, y, no or n in any case.
func ParseYesNo(input string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("%w: expected yes or no, got %q", ErrInvalidInput, input)
}

// ParseAction accepts the name of one of the legal actions.
func ParseAction(input string, legal []game.Action) (game.Action, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	for _, a := range legal {
		if a.String() == s {
			return a, nil
		}
	}
	return game.Stand, fmt.Errorf("%w: %q is not one of %s", ErrInvalidInput, input, joinActions(legal, ", "))
}

// ParsePlayerCount parses a player count between 1 and maxPlayers.
func ParsePlayerCount(input string, maxPlayers int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, input)
	}
	switch {
	case n > maxPlayers:
		return 0, fmt.Errorf("%w: %d seats", ErrTooManyPlayers, maxPlayers)
	case n < 1:
		return 0, ErrNoPlayers
	}
	return n, nil
}

// ActionPrompt renders the question asked for a hand, e.g.
// "Will Alice hit, stand, double or surrender?". The hand id is mentioned
// when the player holds more than one hand.
func ActionPrompt(player string, handID, handCount int, legal []game.Action) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Will %s ", player)

	switch n := len(legal); n {
	case 0:
	case 1:
		b.WriteString(legal[0].String())
	default:
		b.WriteString(joinActions(legal[:n-1], ", "))
		b.WriteString(" or ")
		b.WriteString(legal[n-1].String())
	}

	if handCount > 1 {
		fmt.Fprintf(&b, " for hand %d", handID)
	}
	b.WriteString("?")
	return b.String()
}

func joinActions(actions []game.Action, sep string) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, sep)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
