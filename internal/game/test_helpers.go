package game

import (
	"context"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/shoe"
)

// ScriptedSource answers decisions from per-player queues. Exhausted queues
// fall back to leaving the table, declining insurance, standing and
// declining rebuys.
type ScriptedSource struct {
	bets      map[string][]BetDecision
	insurance map[string][]bool
	actions   map[string][]Action
	rebuys    map[string][]bool

	// Requests records every action request in order.
	Requests []ActionRequest
}

// NewScriptedSource creates an empty script.
func NewScriptedSource() *ScriptedSource {
	return &ScriptedSource{
		bets:      make(map[string][]BetDecision),
		insurance: make(map[string][]bool),
		actions:   make(map[string][]Action),
		rebuys:    make(map[string][]bool),
	}
}

// BetAmounts queues stakes for a player. Zero means leave.
func (s *ScriptedSource) BetAmounts(player string, amounts ...float64) *ScriptedSource {
	for _, a := range amounts {
		if a == 0 {
			s.bets[player] = append(s.bets[player], LeaveTable)
			continue
		}
		s.bets[player] = append(s.bets[player], BetDecision{Amount: a})
	}
	return s
}

// Play queues actions for a player.
func (s *ScriptedSource) Play(player string, actions ...Action) *ScriptedSource {
	s.actions[player] = append(s.actions[player], actions...)
	return s
}

// Insure queues insurance answers for a player.
func (s *ScriptedSource) Insure(player string, answers ...bool) *ScriptedSource {
	s.insurance[player] = append(s.insurance[player], answers...)
	return s
}

// Rebuys queues rebuy answers for a player.
func (s *ScriptedSource) Rebuys(player string, answers ...bool) *ScriptedSource {
	s.rebuys[player] = append(s.rebuys[player], answers...)
	return s
}

func (s *ScriptedSource) Bet(_ context.Context, req BetRequest) (BetDecision, error) {
	q := s.bets[req.Player]
	if len(q) == 0 {
		return LeaveTable, nil
	}
	s.bets[req.Player] = q[1:]
	return q[0], nil
}

func (s *ScriptedSource) Insurance(_ context.Context, req InsuranceRequest) (bool, error) {
	return pop(s.insurance, req.Player, false), nil
}

func (s *ScriptedSource) Action(_ context.Context, req ActionRequest) (Action, error) {
	s.Requests = append(s.Requests, req)
	return pop(s.actions, req.Player, Stand), nil
}

func (s *ScriptedSource) Rebuy(_ context.Context, req RebuyRequest) (bool, error) {
	return pop(s.rebuys, req.Player, false), nil
}

func pop[T any](queues map[string][]T, key string, fallback T) T {
	q := queues[key]
	if len(q) == 0 {
		return fallback
	}
	queues[key] = q[1:]
	return q[0]
}

// EventRecorder collects every published event.
type EventRecorder struct {
	Events []GameEvent
}

// OnEvent records the event
func (r *EventRecorder) OnEvent(event GameEvent) {
	r.Events = append(r.Events, event)
}

// OfType returns the recorded events of type et.
func (r *EventRecorder) OfType(et EventType) []GameEvent {
	var out []GameEvent
	for _, e := range r.Events {
		if e.EventType() == et {
			out = append(out, e)
		}
	}
	return out
}

// NewTestTable creates a table dealing the given cards first (in order) and
// seats the named players. It panics on invalid rules.
func NewTestTable(source DecisionSource, cards []deck.Card, players []string, opts ...TableOption) (*Table, *EventRecorder) {
	recorder := &EventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(recorder)

	all := append([]TableOption{WithShoe(shoe.NewStacked(cards...)), WithEventBus(bus)}, opts...)
	t, err := NewTable(source, all...)
	if err != nil {
		panic(err)
	}
	for _, name := range players {
		if _, err := t.AddPlayer(name); err != nil {
			panic(err)
		}
	}
	return t, recorder
}
