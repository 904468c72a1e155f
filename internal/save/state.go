// Package save drives the confirmation step and the single persisting write of
// an editing session.
//
// State graph:
//
//	IDLE ──► AWAITING_CONFIRMATION ──► SAVING ──► CLEARED
//	  ▲               │    ▲              │
//	  └───────────────┘    └──────────────┘
//	      cancel               failure
//
// CLEARED is terminal.
package save

// State is the coordinator's position in the save flow.
type State string

const (
	StateIdle                 State = "IDLE"
	StateAwaitingConfirmation State = "AWAITING_CONFIRMATION"
	StateSaving               State = "SAVING"
	StateCleared              State = "CLEARED"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[State][]State{
	StateIdle:                 {StateAwaitingConfirmation},
	StateAwaitingConfirmation: {StateIdle, StateSaving},
	StateSaving:               {StateAwaitingConfirmation, StateCleared},
	// CLEARED is terminal
}

// IsTransitionAllowed reports whether moving from → to is permitted.
func IsTransitionAllowed(from, to State) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
