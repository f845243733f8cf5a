// Package console plays the table over a line-oriented terminal: it prompts
// for decisions, re-asking until the input parses, and renders table events.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// Console implements game.DecisionSource by prompting on out and reading
// answers from in.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	logger *log.Logger
}

// New creates a console. A nil logger discards output.
func New(in io.Reader, out io.Writer, logger *log.Logger) *Console {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
	}
}

// Welcome prints the casino banner and the table rules.
func (c *Console) Welcome(cfg game.Config) {
	surrender := "allowed"
	if !cfg.SurrenderAllowed {
		surrender = "not allowed"
	}
	fmt.Fprintln(c.out, BannerStyle.Render(fmt.Sprintf("♠ ♥ %s ♦ ♣", cfg.CasinoName)))
	fmt.Fprintln(c.out, WelcomeStyle.Render(fmt.Sprintf(
		"Welcome to %s! Decks shuffled into the shoe: %d. Max players per table: %d. Max number of hands per player: %d. Surrenders are %s.",
		cfg.CasinoName, cfg.Decks, cfg.MaxPlayers, cfg.MaxHands, surrender)))
}

// PlayerCount asks how many players will sit down.
func (c *Console) PlayerCount(ctx context.Context, maxPlayers int) (int, error) {
	for {
		input, err := c.ask(ctx, fmt.Sprintf("Choose the number of players (1-%d):", maxPlayers))
		if err != nil {
			return 0, err
		}
		n, err := ParsePlayerCount(input, maxPlayers)
		if err == nil {
			return n, nil
		}
		switch {
		case errors.Is(err, ErrTooManyPlayers):
			c.retry(err, "The table can't hold that many players!")
		case errors.Is(err, ErrNoPlayers):
			c.retry(err, "At least one person needs to be playing for a game to happen.")
		default:
			c.retry(err, "That's not a number.")
		}
	}
}

// PlayerNames asks for a name for each player. Empty answers are returned
// as empty strings so the table assigns "Player N".
func (c *Console) PlayerNames(ctx context.Context, count int) ([]string, error) {
	names := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		name, err := c.ask(ctx, fmt.Sprintf("What is the name for player %d?", i))
		if err != nil {
			return nil, err
		}
		names = append(names, strings.TrimSpace(name))
	}
	return names, nil
}

// Bet implements game.DecisionSource
func (c *Console) Bet(ctx context.Context, req game.BetRequest) (game.BetDecision, error) {
	prompt := fmt.Sprintf("%s has %s remaining. How much will %s bet? Enter 0 or \"leave\" to leave.",
		req.Player, game.FormatMoney(req.Bankroll), req.Player)
	for {
		input, err := c.ask(ctx, prompt)
		if err != nil {
			return game.BetDecision{}, err
		}
		d, err := ParseBet(input, req.Bankroll)
		if err == nil {
			return d, nil
		}
		if errors.Is(err, game.ErrInsufficientFunds) {
			c.retry(err, "You don't have that much left!")
			continue
		}
		c.retry(err, "Please enter a valid amount.")
	}
}

// Insurance implements game.DecisionSource
func (c *Console) Insurance(ctx context.Context, req game.InsuranceRequest) (bool, error) {
	return c.askYesNo(ctx, fmt.Sprintf("Would %s like to buy insurance for %s?", req.Player, game.FormatMoney(req.Stake)))
}

// Action implements game.DecisionSource
func (c *Console) Action(ctx context.Context, req game.ActionRequest) (game.Action, error) {
	prompt := ActionPrompt(req.Player, req.Hand.ID, req.HandCount, req.Legal)
	for {
		input, err := c.ask(ctx, prompt)
		if err != nil {
			return game.Stand, err
		}
		a, err := ParseAction(input, req.Legal)
		if err == nil {
			return a, nil
		}
		c.retry(err, "That is not a valid selection.")
	}
}

// Rebuy implements game.DecisionSource
func (c *Console) Rebuy(ctx context.Context, req game.RebuyRequest) (bool, error) {
	return c.askYesNo(ctx, fmt.Sprintf("%s has gone broke. Rebuy for %s?", req.Player, game.FormatMoney(req.Amount)))
}

func (c *Console) askYesNo(ctx context.Context, prompt string) (bool, error) {
	for {
		input, err := c.ask(ctx, prompt)
		if err != nil {
			return false, err
		}
		yes, err := ParseYesNo(input)
		if err == nil {
			return yes, nil
		}
		c.retry(err, "It's a yes or no question.")
	}
}

// ask prints the prompt and reads one line. Input ending without a newline
// is still returned; a closed input with nothing left returns io.EOF.
func (c *Console) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.out, PromptStyle.Render(prompt)+" ")

	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) retry(err error, message string) {
	c.logger.Debug("Re-prompting", "error", err)
	fmt.Fprintln(c.out, ErrorStyle.Render(message))
}
