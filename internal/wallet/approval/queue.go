package approval

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/go-txsigner/internal/wallet/confirm"
)

// ErrNotFound is returned when resolving a request that is not pending
var ErrNotFound = errors.New("approval request not found")

// Request is a prompt waiting for a decision
type Request struct {
	Prompt    confirm.Prompt `json:"prompt"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
}

type pending struct {
	request  Request
	decision chan bool
}

// Queue parks prompts until someone resolves them, typically over HTTP.
// Prompts nobody resolves within the timeout are rejected.
type Queue struct {
	mu      sync.Mutex
	pending map[string]*pending
	timeout time.Duration
	clock   time2.Clock
}

var _ confirm.Approver = (*Queue)(nil)

// NewQueue creates a Queue. A zero timeout waits until the caller's context is done.
func NewQueue(timeout time.Duration, clock time2.Clock) *Queue {
	return &Queue{
		pending: make(map[string]*pending),
		timeout: timeout,
		clock:   clock,
	}
}

// Approve blocks until the prompt is resolved, the timeout expires or ctx is done
func (q *Queue) Approve(ctx context.Context, prompt confirm.Prompt) (bool, error) {
	log := log.With().Str("component", "approval_queue").Str("request_id", prompt.RequestID).Logger()

	now := q.clock.Now()
	p := &pending{
		request:  Request{Prompt: prompt, CreatedAt: now},
		decision: make(chan bool, 1),
	}

	if q.timeout > 0 {
		expiresAt := now.Add(q.timeout)
		p.request.ExpiresAt = &expiresAt

		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	q.mu.Lock()
	if _, exists := q.pending[prompt.RequestID]; exists {
		q.mu.Unlock()
		return false, errors.Errorf("approval request %s is already pending", prompt.RequestID)
	}
	q.pending[prompt.RequestID] = p
	q.mu.Unlock()

	defer q.remove(prompt.RequestID, p)

	log.Info().Msg("Waiting for approval")

	select {
	case approved := <-p.decision:
		log.Info().Bool("approved", approved).Msg("Approval request resolved")
		return approved, nil
	case <-ctx.Done():
		log.Warn().Err(ctx.Err()).Msg("Approval request expired")
		return false, errors.Wrap(ctx.Err(), "approval request expired")
	}
}

// List returns the pending requests, oldest first
func (q *Queue) List() []Request {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Request, 0, len(q.pending))
	for _, p := range q.pending {
		out = append(out, p.request)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Prompt.RequestID < out[j].Prompt.RequestID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out
}

// Get returns a single pending request
func (q *Queue) Get(id string) (Request, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	p, ok := q.pending[id]
	if !ok {
		return Request{}, ErrNotFound
	}
	return p.request, nil
}

// Resolve delivers a decision. Every request can be resolved once.
func (q *Queue) Resolve(id string, approve bool) error {
	q.mu.Lock()
	p, ok := q.pending[id]
	if ok {
		delete(q.pending, id)
	}
	q.mu.Unlock()

	if !ok {
		return ErrNotFound
	}

	p.decision <- approve
	return nil
}

func (q *Queue) remove(id string, p *pending) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if current, ok := q.pending[id]; ok && current == p {
		delete(q.pending, id)
	}
}
