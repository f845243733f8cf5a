package game

import "slices"

// Action is a decision a player can make for one of their hands.
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
	Surrender
)

// String returns the lowercase name of the action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	case Surrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// AllActions returns every action in prompt order.
func AllActions() []Action {
	return []Action{Hit, Stand, Split, Double, Surrender}
}

// ActionsContain reports whether a is present in actions.
func ActionsContain(actions []Action, a Action) bool {
	return slices.Contains(actions, a)
}
