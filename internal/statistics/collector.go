package statistics

import (
	"fmt"

	"github.com/lox/blackjack/internal/game"
)

// Collector subscribes to table events and keeps statistics for every player
// seen during the session, including players who have left.
type Collector struct {
	order []string
	stats map[string]*Statistics
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{stats: make(map[string]*Statistics)}
}

// OnEvent implements game.EventSubscriber
func (c *Collector) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.SettlementEvent:
		c.player(e.Player).AddHand(HandResult{
			Outcome:   e.Outcome,
			Bet:       e.Hand.Bet,
			Payout:    e.Payout - e.InsurancePayout,
			Status:    e.Hand.Status,
			Insurance: e.InsurancePayout,
		})
	case game.PlayerResultEvent:
		c.player(e.Player).AddRound(e.Net)
	}
}

// Players returns player names in the order they first played.
func (c *Collector) Players() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// For returns the statistics for a player, or nil if they never played.
func (c *Collector) For(name string) *Statistics {
	return c.stats[name]
}

// Validate checks every player's tallies.
func (c *Collector) Validate() error {
	for _, name := range c.order {
		if err := c.stats[name].Validate(); err != nil {
			return fmt.Errorf("statistics for %s: %w", name, err)
		}
	}
	return nil
}

func (c *Collector) player(name string) *Statistics {
	s, ok := c.stats[name]
	if !ok {
		s = &Statistics{}
		c.stats[name] = s
		c.order = append(c.order, name)
	}
	return s
}
