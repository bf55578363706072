package radial

// State is the lifecycle state of a menu instance.
type State int

const (
	// StateClosed is the initial state: nothing is rendered.
	StateClosed State = iota
	// StateOpening waits for the root menu's open transition.
	StateOpening
	// StateOpen accepts every navigation operation.
	StateOpen
	// StateTransitioning waits for a drill-in or drill-out transition.
	StateTransitioning
	// StateClosing waits for the close transition; all navigation is ignored.
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateTransitioning:
		return "transitioning"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// transitions is the state machine's edge table.
var transitions = map[State][]State{
	StateClosed:        {StateOpening},
	StateOpening:       {StateOpen, StateClosing},
	StateOpen:          {StateTransitioning, StateClosing},
	StateTransitioning: {StateOpen, StateClosing},
	StateClosing:       {StateClosed},
}

// CanTransition reports whether the state machine has an edge from -> to.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
