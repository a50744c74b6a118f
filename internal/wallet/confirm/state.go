package confirm

import "github.com/pkg/errors"

// State of a single sign request
type State int

const (
	StateIdle State = iota
	StateAwaitingApproval
	StateApproved
	StateRejected
	StateDerivingKey
	StateSigning
	StateCompleted
	StateAborted
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:             "idle",
	StateAwaitingApproval: "awaiting_approval",
	StateApproved:         "approved",
	StateRejected:         "rejected",
	StateDerivingKey:      "deriving_key",
	StateSigning:          "signing",
	StateCompleted:        "completed",
	StateAborted:          "aborted",
	StateFailed:           "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transitions are possible
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateAborted || s == StateFailed
}

// Signing is only reachable through Approved, and Rejected only leads to Aborted.
// Idle may fail directly when the transaction can't be encoded.
var allowedTransitions = map[State][]State{
	StateIdle:             {StateAwaitingApproval, StateFailed},
	StateAwaitingApproval: {StateApproved, StateRejected},
	StateApproved:         {StateDerivingKey},
	StateRejected:         {StateAborted},
	StateDerivingKey:      {StateSigning, StateFailed},
	StateSigning:          {StateCompleted, StateFailed},
}

// CanTransition reports whether from -> to is a legal transition
func CanTransition(from State, to State) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func checkTransition(from State, to State) error {
	if !CanTransition(from, to) {
		return errors.Wrapf(ErrIllegalTransition, "%s -> %s", from, to)
	}
	return nil
}
