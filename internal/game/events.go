package game

import (
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for table events
const (
	EventTypeRoundStart      EventType = "round_start"
	EventTypeRoundEnd        EventType = "round_end"
	EventTypeShoeReplenished EventType = "shoe_replenished"
	EventTypeBetPlaced       EventType = "bet_placed"
	EventTypePlayerLeft      EventType = "player_left"
	EventTypeRebuy           EventType = "rebuy"
	EventTypeHandDealt       EventType = "hand_dealt"
	EventTypeDealerUpcard    EventType = "dealer_upcard"
	EventTypeInsurance       EventType = "insurance"
	EventTypeDealerPeek      EventType = "dealer_peek"
	EventTypeTurnStart       EventType = "turn_start"
	EventTypePlayerAction    EventType = "player_action"
	EventTypeCardDrawn       EventType = "card_drawn"
	EventTypeHandLocked      EventType = "hand_locked"
	EventTypeDealerTurn      EventType = "dealer_turn"
	EventTypeSettlement      EventType = "settlement"
	EventTypePlayerResult    EventType = "player_result"
	EventTypeGameEnd         EventType = "game_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens at the table
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// stamp carries the time an event was published.
type stamp struct {
	at time.Time
}

func (s stamp) Timestamp() time.Time { return s.at }

// RoundStartEvent is published before bets are collected
type RoundStartEvent struct {
	stamp
	Round     int
	Players   []string
	ShoeValue int
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }

// ShoeReplenishedEvent is published when a fresh set of decks goes under the shoe
type ShoeReplenishedEvent struct {
	stamp
	Added     int  // Minimum value added
	ShoeValue int  // Value after replenishment
	WasEmpty  bool // The shoe held nothing before
}

func (e ShoeReplenishedEvent) EventType() EventType { return EventTypeShoeReplenished }

// BetPlacedEvent is published when a player's stake is accepted
type BetPlacedEvent struct {
	stamp
	Player   string
	Amount   float64
	Bankroll float64
}

func (e BetPlacedEvent) EventType() EventType { return EventTypeBetPlaced }

// LeaveReason explains why a player left the table
type LeaveReason string

const (
	LeaveDeclinedBet   LeaveReason = "declined_bet"
	LeaveDeclinedRebuy LeaveReason = "declined_rebuy"
)

// PlayerLeftEvent is published when a player is removed from the table
type PlayerLeftEvent struct {
	stamp
	Player   string
	Bankroll float64
	Reason   LeaveReason
}

func (e PlayerLeftEvent) EventType() EventType { return EventTypePlayerLeft }

// RebuyEvent is published when a broke player buys back in
type RebuyEvent struct {
	stamp
	Player   string
	Amount   float64
	Bankroll float64
}

func (e RebuyEvent) EventType() EventType { return EventTypeRebuy }

// HandDealtEvent is published for each hand after the initial deal and after a split
type HandDealtEvent struct {
	stamp
	Owner     string
	Dealer    bool
	HandCount int
	Hand      HandView
}

func (e HandDealtEvent) EventType() EventType { return EventTypeHandDealt }

// DealerUpcardEvent shows the dealer's face-up card
type DealerUpcardEvent struct {
	stamp
	Card deck.Card
}

func (e DealerUpcardEvent) EventType() EventType { return EventTypeDealerUpcard }

// InsuranceEvent records a player's insurance decision
type InsuranceEvent struct {
	stamp
	Player    string
	CanAfford bool
	Bought    bool
	Stake     float64
}

func (e InsuranceEvent) EventType() EventType { return EventTypeInsurance }

// DealerPeekEvent is published after the dealer checks for blackjack
type DealerPeekEvent struct {
	stamp
	Blackjack        bool
	InsuranceOffered bool
	Hand             HandView // Only populated on blackjack
}

func (e DealerPeekEvent) EventType() EventType { return EventTypeDealerPeek }

// TurnStartEvent is published when a hand becomes the acting hand
type TurnStartEvent struct {
	stamp
	Player       string
	HandCount    int
	Hand         HandView
	DealerUpcard deck.Card
}

func (e TurnStartEvent) EventType() EventType { return EventTypeTurnStart }

// PlayerActionEvent is published after an action has been applied
type PlayerActionEvent struct {
	stamp
	Player    string
	HandCount int
	Action    Action
	Hand      HandView
	Refund    float64
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }

// CardDrawnEvent is published for every card dealt after the initial deal
type CardDrawnEvent struct {
	stamp
	Owner     string
	Dealer    bool
	HandCount int
	Card      deck.Card
	Hand      HandView
}

func (e CardDrawnEvent) EventType() EventType { return EventTypeCardDrawn }

// HandLockedEvent is published when a hand reaches a terminal status
type HandLockedEvent struct {
	stamp
	Owner     string
	Dealer    bool
	HandCount int
	Hand      HandView
}

func (e HandLockedEvent) EventType() EventType { return EventTypeHandLocked }

// DealerTurnEvent reveals the hole card before the dealer draws
type DealerTurnEvent struct {
	stamp
	Hand HandView
}

func (e DealerTurnEvent) EventType() EventType { return EventTypeDealerTurn }

// SettlementEvent reports the outcome of one player hand
type SettlementEvent struct {
	stamp
	Player          string
	HandCount       int
	Hand            HandView
	DealerHand      HandView
	Outcome         Outcome
	Payout          float64 // Total returned, including insurance
	InsurancePayout float64
	DealerBlackjack bool
}

func (e SettlementEvent) EventType() EventType { return EventTypeSettlement }

// PlayerResultEvent reports a player's net result for the round
type PlayerResultEvent struct {
	stamp
	Round    int
	Player   string
	Net      float64
	Bankroll float64
}

func (e PlayerResultEvent) EventType() EventType { return EventTypePlayerResult }

// RoundEndEvent is published after cleanup
type RoundEndEvent struct {
	stamp
	Round     int
	Players   int
	ShoeValue int
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }

// GameEndEvent is published when the last player leaves
type GameEndEvent struct {
	stamp
	Rounds int
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish delivers an event to every subscriber in subscription order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
