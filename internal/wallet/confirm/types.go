package confirm

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/wallet/keys"
	"github/chapool/go-txsigner/internal/wallet/summary"
)

var (
	// ErrUserRejected is returned when the approver declined the request or the
	// request was cancelled while awaiting approval
	ErrUserRejected = errors.New("user rejected the request")
	// ErrEntropyUnavailable is returned when the key source has nothing to derive from
	ErrEntropyUnavailable = keys.ErrEntropyUnavailable
	// ErrIllegalTransition signals a bug in the gate, never a user decision
	ErrIllegalTransition = errors.New("illegal state transition")
)

// Approver obtains an explicit decision for a prompt. It must block until the
// decision is made or ctx is done.
type Approver interface {
	Approve(ctx context.Context, prompt Prompt) (bool, error)
}

// KeySource hands out the material keys are derived from
type KeySource interface {
	// Entropy returns a fresh copy the caller may wipe
	Entropy(ctx context.Context) (keys.Entropy, error)
}

// Observer is notified of every state transition of every request
type Observer interface {
	OnTransition(transition Transition)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(transition Transition)

func (f ObserverFunc) OnTransition(transition Transition) {
	f(transition)
}

// Prompt is what an approver gets to see before deciding
type Prompt struct {
	RequestID string        `json:"request_id"`
	Header    []summary.Row `json:"header"`
	Rows      []summary.Row `json:"rows"`
}

// Account is the public identity of the key a gate signs with
type Account struct {
	// compressed secp256k1 public key
	PublicKey []byte
	Address   string
}

// Transition describes a single state change of a request
type Transition struct {
	RequestID string
	From      State
	To        State
	At        time.Time
	// Err is set when entering Aborted or Failed
	Err error
}
