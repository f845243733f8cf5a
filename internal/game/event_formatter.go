package game

import (
	"fmt"
	"strconv"
)

// Tone classifies a formatted line so renderers can colour it.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneGood
	ToneBad
	ToneNotice
)

// Line is one formatted line of table narration.
type Line struct {
	Text string
	Tone Tone
}

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowShoe   bool // Include shoe value in round headers
	ShowRounds bool // Include round headers and per-round results
}

// EventFormatter turns table events into the narration shown to players.
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format returns the lines for an event. Events with nothing to say return nil.
func (ef *EventFormatter) Format(event GameEvent) []Line {
	switch e := event.(type) {
	case RoundStartEvent:
		return ef.formatRoundStart(e)
	case ShoeReplenishedEvent:
		if e.WasEmpty {
			return neutral("The dealer adds a deck to the shoe.")
		}
		return neutral("The dealer adds another deck to the shoe.")
	case BetPlacedEvent:
		return neutral(fmt.Sprintf("%s bets %s.", e.Player, FormatMoney(e.Amount)))
	case PlayerLeftEvent:
		if e.Reason == LeaveDeclinedRebuy {
			return neutral(fmt.Sprintf("%s leaves the table after going broke.", e.Player))
		}
		return neutral(fmt.Sprintf("%s left the table with %s remaining.", e.Player, FormatMoney(e.Bankroll)))
	case RebuyEvent:
		return neutral(fmt.Sprintf("%s rebuys into the game for %s.", e.Player, FormatMoney(e.Amount)))
	case HandDealtEvent:
		return neutral(ef.handLine(e.Owner, e.HandCount, e.Hand))
	case DealerUpcardEvent:
		return neutral(fmt.Sprintf("Dealer's upcard: %s", e.Card))
	case InsuranceEvent:
		return ef.formatInsurance(e)
	case DealerPeekEvent:
		if e.Blackjack {
			return []Line{
				{Text: ef.handLine("Dealer", 1, e.Hand)},
				{Text: "The dealer has blackjack!", Tone: ToneBad},
			}
		}
		return neutral("The dealer does not have blackjack. The round continues.")
	case TurnStartEvent:
		return []Line{
			{Text: ef.handLine(e.Player, e.HandCount, e.Hand), Tone: ToneNotice},
			{Text: fmt.Sprintf("Dealer's upcard: %s", e.DealerUpcard)},
		}
	case PlayerActionEvent:
		return ef.formatAction(e)
	case CardDrawnEvent:
		if e.Dealer {
			return []Line{
				{Text: "Dealer takes a card."},
				{Text: ef.handLine("Dealer", 1, e.Hand)},
			}
		}
		return neutral(ef.handLine(e.Owner, e.HandCount, e.Hand))
	case HandLockedEvent:
		return ef.formatLocked(e)
	case DealerTurnEvent:
		return neutral(ef.handLine("Dealer", 1, e.Hand))
	case SettlementEvent:
		return ef.formatSettlement(e)
	case PlayerResultEvent:
		if !ef.opts.ShowRounds {
			return nil
		}
		return ef.formatResult(e)
	case RoundEndEvent:
		return neutral("-------------------------------------------------")
	case GameEndEvent:
		return neutral(fmt.Sprintf("The table is empty after %d rounds.", e.Rounds))
	}
	return nil
}

func (ef *EventFormatter) formatRoundStart(e RoundStartEvent) []Line {
	if !ef.opts.ShowRounds {
		return nil
	}
	text := fmt.Sprintf("Round %d", e.Round)
	if ef.opts.ShowShoe {
		text += fmt.Sprintf(" (shoe value %d)", e.ShoeValue)
	}
	return []Line{{Text: text, Tone: ToneNotice}}
}

func (ef *EventFormatter) formatInsurance(e InsuranceEvent) []Line {
	switch {
	case !e.CanAfford:
		return neutral(fmt.Sprintf("%s does not have the funds to buy insurance.", e.Player))
	case e.Bought:
		return neutral(fmt.Sprintf("%s buys insurance for %s.", e.Player, FormatMoney(e.Stake)))
	}
	return nil
}

func (ef *EventFormatter) formatAction(e PlayerActionEvent) []Line {
	switch e.Action {
	case Hit:
		return neutral(fmt.Sprintf("%s takes a card.", e.Player))
	case Double:
		return neutral(fmt.Sprintf("%s doubles down, risking it all on one more card!", e.Player))
	case Split:
		return neutral(fmt.Sprintf("%s splits their hand.", e.Player))
	case Surrender:
		return []Line{{Text: fmt.Sprintf("%s surrenders, forfeiting %s.", e.Player, FormatMoney(e.Refund)), Tone: ToneBad}}
	}
	return nil
}

func (ef *EventFormatter) formatLocked(e HandLockedEvent) []Line {
	if e.Dealer {
		switch e.Hand.Status {
		case Bust:
			return []Line{{Text: "Dealer busts!", Tone: ToneGood}}
		case Standing:
			return neutral(fmt.Sprintf("Dealer stands at %d.", e.Hand.Total))
		}
		return nil
	}

	switch e.Hand.Status {
	case BlackjackHand:
		return []Line{{Text: fmt.Sprintf("%s has a blackjack!", e.Owner), Tone: ToneGood}}
	case Bust:
		return []Line{{Text: fmt.Sprintf("%s busts out!", e.Owner), Tone: ToneBad}}
	case Standing:
		return []Line{{Text: fmt.Sprintf("%s stands at %d.", e.Owner, e.Hand.Total), Tone: ToneNotice}}
	}
	return nil
}

func (ef *EventFormatter) formatSettlement(e SettlementEvent) []Line {
	who := e.Player
	if e.HandCount > 1 {
		who = fmt.Sprintf("%s's hand %d", e.Player, e.Hand.ID)
	}

	var lines []Line
	if e.DealerBlackjack && e.InsurancePayout > 0 {
		lines = append(lines, Line{Text: fmt.Sprintf("%s's insurance bet pays off.", e.Player), Tone: ToneGood})
	}

	switch e.Outcome {
	case BlackjackWin:
		lines = append(lines, Line{
			Text: fmt.Sprintf("%s wins with a blackjack, winning %s!", who, FormatMoney(e.Payout-e.Hand.Bet)),
			Tone: ToneGood,
		})
	case Win:
		lines = append(lines, Line{Text: fmt.Sprintf("%s wins %s!", who, FormatMoney(e.Payout-e.Hand.Bet)), Tone: ToneGood})
	case Push:
		lines = append(lines, Line{Text: fmt.Sprintf("%s's hand is a push.", e.Player)})
		if e.HandCount > 1 {
			lines[len(lines)-1].Text = fmt.Sprintf("%s is a push.", who)
		}
	default:
		lines = append(lines, Line{Text: fmt.Sprintf("%s loses the %s bet.", who, FormatMoney(e.Hand.Bet)), Tone: ToneBad})
	}
	return lines
}

func (ef *EventFormatter) formatResult(e PlayerResultEvent) []Line {
	switch {
	case e.Net > 0:
		return []Line{{Text: fmt.Sprintf("%s is up %s this round (%s).", e.Player, FormatMoney(e.Net), FormatMoney(e.Bankroll)), Tone: ToneGood}}
	case e.Net < 0:
		return []Line{{Text: fmt.Sprintf("%s is down %s this round (%s).", e.Player, FormatMoney(-e.Net), FormatMoney(e.Bankroll)), Tone: ToneBad}}
	}
	return neutral(fmt.Sprintf("%s breaks even this round (%s).", e.Player, FormatMoney(e.Bankroll)))
}

// handLine renders "Alice's hand: A♠ K♥ (21)", numbering the hand when the
// owner holds more than one.
func (ef *EventFormatter) handLine(owner string, handCount int, h HandView) string {
	if handCount > 1 {
		return fmt.Sprintf("%s's hand %d: %s", owner, h.ID, h)
	}
	return fmt.Sprintf("%s's hand: %s", owner, h)
}

func neutral(text string) []Line {
	return []Line{{Text: text}}
}

// FormatMoney renders an amount as dollars, dropping a zero fraction.
func FormatMoney(amount float64) string {
	return "$" + strconv.FormatFloat(amount, 'f', -1, 64)
}
