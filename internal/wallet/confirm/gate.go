package confirm

import (
	"context"

	"github.com/dropbox/godropbox/time2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github/chapool/go-txsigner/internal/util"
	"github/chapool/go-txsigner/internal/wallet/keys"
	"github/chapool/go-txsigner/internal/wallet/signer"
	"github/chapool/go-txsigner/internal/wallet/summary"
	"github/chapool/go-txsigner/internal/wallet/tx"
)

// Gate sequences a sign request through approval, key derivation and signing.
// A Gate holds no per-request state and may be shared across goroutines.
type Gate struct {
	approver  Approver
	keySource KeySource
	deriver   keys.Deriver
	signer    signer.Service
	clock     time2.Clock
	observers []Observer
}

// Option configures a Gate
type Option func(g *Gate)

// WithObserver registers an observer for state transitions
func WithObserver(observer Observer) Option {
	return func(g *Gate) {
		g.observers = append(g.observers, observer)
	}
}

// WithClock sets the clock used to timestamp transitions
func WithClock(clock time2.Clock) Option {
	return func(g *Gate) {
		g.clock = clock
	}
}

// NewGate creates a new Gate
func NewGate(approver Approver, keySource KeySource, deriver keys.Deriver, signerService signer.Service, opts ...Option) *Gate {
	g := &Gate{
		approver:  approver,
		keySource: keySource,
		deriver:   deriver,
		signer:    signerService,
		clock:     time2.DefaultClock,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// SignTransaction asks for approval and, only once approved, derives the key
// and signs the transaction digest
func (g *Gate) SignTransaction(ctx context.Context, t *tx.Tx) (signer.Signature, error) {
	var sig signer.Signature

	err := g.run(ctx, t, func(ctx context.Context, km *keys.KeyMaterial) error {
		var err error
		sig, err = g.signer.SignTransaction(ctx, km, t.Msgs, t.Sender, t.ChainID, t.Sequence)
		return err
	})
	if err != nil {
		return signer.Signature{}, err
	}

	return sig, nil
}

// CreateAndSignTx works like SignTransaction but returns the signed transaction
// with the signature attached as credential
func (g *Gate) CreateAndSignTx(ctx context.Context, t *tx.Tx) (*tx.SignedTransaction, error) {
	var signed *tx.SignedTransaction

	err := g.run(ctx, t, func(ctx context.Context, km *keys.KeyMaterial) error {
		var err error
		signed, err = g.signer.BuildSignedTransaction(ctx, km, t.Msgs, t.Sender, t.ChainID, t.Sequence)
		return err
	})
	if err != nil {
		return nil, err
	}

	return signed, nil
}

// PublicKey derives the current key and returns its compressed public key.
// Nothing is signed, so no approval is requested.
func (g *Gate) PublicKey(ctx context.Context) ([]byte, error) {
	account, err := g.Account(ctx)
	if err != nil {
		return nil, err
	}

	return account.PublicKey, nil
}

// Account derives the current key and returns its public identity
func (g *Gate) Account(ctx context.Context) (Account, error) {
	return g.account(ctx, nil)
}

// AccountForCoinType works like Account but derives along the path of the
// given coin type. Key sources holding a raw private key ignore the coin type.
func (g *Gate) AccountForCoinType(ctx context.Context, coinType uint32) (Account, error) {
	return g.account(ctx, func(entropy *keys.Entropy) {
		entropy.CoinType = coinType
	})
}

func (g *Gate) account(ctx context.Context, adjust func(entropy *keys.Entropy)) (Account, error) {
	km, err := g.deriveKey(ctx, adjust)
	if err != nil {
		return Account{}, err
	}
	defer km.Zero()

	address, err := km.Address()
	if err != nil {
		return Account{}, errors.Wrap(err, "failed to compute address")
	}

	return Account{PublicKey: km.PublicKey(), Address: address}, nil
}

type signFunc func(ctx context.Context, km *keys.KeyMaterial) error

func (g *Gate) run(ctx context.Context, t *tx.Tx, sign signFunc) error {
	req := g.newRequest(ctx)

	if t == nil {
		return req.fail(errors.Wrap(tx.ErrEncoding, "transaction is nil"))
	}

	// Encoding errors must surface before anything is shown for approval
	if _, err := t.SignBytes(); err != nil {
		return req.fail(err)
	}

	rows, err := summary.Summarize(t.Msgs)
	if err != nil {
		return req.fail(err)
	}

	if err := req.transition(StateAwaitingApproval, nil); err != nil {
		return err
	}

	approved, err := g.approver.Approve(ctx, Prompt{
		RequestID: req.id,
		Header:    summary.Header(t.Sender, t.ChainID, t.Sequence),
		Rows:      rows,
	})
	if err == nil && !approved {
		err = ErrUserRejected
	}
	if err != nil {
		return req.reject(err)
	}

	if err := req.transition(StateApproved, nil); err != nil {
		return err
	}
	if err := req.transition(StateDerivingKey, nil); err != nil {
		return err
	}

	km, err := g.deriveKey(ctx, nil)
	if err != nil {
		return req.fail(err)
	}
	defer km.Zero()

	if err := req.transition(StateSigning, nil); err != nil {
		return err
	}

	if err := sign(ctx, km); err != nil {
		return req.fail(err)
	}

	return req.transition(StateCompleted, nil)
}

func (g *Gate) deriveKey(ctx context.Context, adjust func(entropy *keys.Entropy)) (*keys.KeyMaterial, error) {
	entropy, err := g.keySource.Entropy(ctx)
	if err != nil {
		if errors.Is(err, ErrEntropyUnavailable) {
			return nil, err
		}
		return nil, errors.Wrap(ErrEntropyUnavailable, err.Error())
	}
	defer entropy.Wipe()

	if adjust != nil {
		adjust(&entropy)
	}

	km, err := g.deriver.Derive(entropy)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}

	return km, nil
}

// request is the state of a single sign request. It is owned by one goroutine.
type request struct {
	id    string
	state State
	gate  *Gate
	log   zerolog.Logger
}

func (g *Gate) newRequest(ctx context.Context) *request {
	id := uuid.NewString()

	return &request{
		id:    id,
		state: StateIdle,
		gate:  g,
		log:   util.LogFromContext(ctx).With().Str("component", "confirm_gate").Str("request_id", id).Logger(),
	}
}

func (r *request) transition(to State, cause error) error {
	if err := checkTransition(r.state, to); err != nil {
		r.log.Error().Err(err).Msg("Refusing state transition")
		return err
	}

	transition := Transition{
		RequestID: r.id,
		From:      r.state,
		To:        to,
		At:        r.gate.clock.Now(),
		Err:       cause,
	}
	r.state = to

	r.log.Debug().Str("from", transition.From.String()).Str("to", to.String()).Msg("Sign request state changed")

	for _, observer := range r.gate.observers {
		observer.OnTransition(transition)
	}

	return nil
}

// reject moves the request to Aborted. Approver errors and cancellation are
// treated like an explicit "no".
func (r *request) reject(cause error) error {
	err := ErrUserRejected
	if !errors.Is(cause, ErrUserRejected) {
		err = errors.Wrap(ErrUserRejected, cause.Error())
	}

	if terr := r.transition(StateRejected, err); terr != nil {
		return terr
	}
	if terr := r.transition(StateAborted, err); terr != nil {
		return terr
	}

	r.log.Info().Err(cause).Msg("Sign request rejected")

	return err
}

// fail moves the request to Failed and returns cause unchanged
func (r *request) fail(cause error) error {
	if terr := r.transition(StateFailed, cause); terr != nil {
		return errors.Wrap(cause, terr.Error())
	}

	r.log.Error().Err(cause).Msg("Sign request failed")

	return cause
}
