package console

import (
	"fmt"
	"io"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/statistics"
)

// Renderer prints formatted table events.
type Renderer struct {
	out       io.Writer
	formatter *game.EventFormatter
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, opts game.FormattingOptions) *Renderer {
	return &Renderer{out: out, formatter: game.NewEventFormatter(opts)}
}

// OnEvent implements game.EventSubscriber
func (r *Renderer) OnEvent(event game.GameEvent) {
	for _, line := range r.formatter.Format(event) {
		fmt.Fprintln(r.out, StyleFor(line.Tone).Render(line.Text))
	}
}

// Summary prints the session statistics for every player who played a round.
func (r *Renderer) Summary(c *statistics.Collector) {
	players := c.Players()
	if len(players) == 0 {
		return
	}
	fmt.Fprintln(r.out, BannerStyle.Render("Session summary"))
	for _, name := range players {
		s := c.For(name)
		tone := game.ToneNeutral
		switch {
		case s.SumNet > 0:
			tone = game.ToneGood
		case s.SumNet < 0:
			tone = game.ToneBad
		}
		fmt.Fprintln(r.out, StyleFor(tone).Render(fmt.Sprintf(
			"%s: %d rounds, %d hands (%d won, %d lost, %d pushed, %d blackjacks), net %s",
			name, s.Rounds, s.Hands, s.Wins, s.Losses, s.Pushes, s.Blackjacks, signedMoney(s.SumNet))))
		if s.Hands > 0 {
			fmt.Fprintln(r.out, InfoStyle.Render(fmt.Sprintf(
				"  won %.0f%% of hands, wagered %s, returned %s",
				100*s.WinRate(), game.FormatMoney(s.Wagered), game.FormatMoney(s.Returned))))
		}
		if s.Rounds > 1 {
			low, high := s.ConfidenceInterval95()
			fmt.Fprintln(r.out, InfoStyle.Render(fmt.Sprintf(
				"  per round: mean %+.2f (95%% CI %+.2f to %+.2f), median %+.2f, std dev %.2f",
				s.Mean(), low, high, s.Median(), s.StdDev())))
			fmt.Fprintln(r.out, InfoStyle.Render(fmt.Sprintf(
				"  middle 80%% of rounds %+.2f to %+.2f, best %s, worst -%s",
				s.Percentile(0.1), s.Percentile(0.9), game.FormatMoney(s.BiggestWin), game.FormatMoney(s.BiggestLoss))))
		}
	}
}

func signedMoney(v float64) string {
	if v < 0 {
		return "-" + game.FormatMoney(-v)
	}
	return "+" + game.FormatMoney(v)
}
