package confirm_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-txsigner/internal/wallet/confirm"
	"github/chapool/go-txsigner/internal/wallet/keys"
	"github/chapool/go-txsigner/internal/wallet/signer"
	"github/chapool/go-txsigner/internal/wallet/tx"
)

//nolint:gosec // well known development mnemonic
const testMnemonic = "test test test test test test test test test test test junk"

type fakeApprover struct {
	calls    atomic.Int32
	decision bool
	err      error
	prompts  chan confirm.Prompt
}

func (a *fakeApprover) Approve(_ context.Context, prompt confirm.Prompt) (bool, error) {
	a.calls.Add(1)
	if a.prompts != nil {
		a.prompts <- prompt
	}
	return a.decision, a.err
}

type blockingApprover struct{}

func (blockingApprover) Approve(ctx context.Context, _ confirm.Prompt) (bool, error) {
	<-ctx.Done()
	return false, ctx.Err()
}

type fakeKeySource struct {
	calls   atomic.Int32
	entropy keys.Entropy
	err     error
}

func (k *fakeKeySource) Entropy(_ context.Context) (keys.Entropy, error) {
	k.calls.Add(1)
	if k.err != nil {
		return keys.Entropy{}, k.err
	}
	return k.entropy, nil
}

type countingDeriver struct {
	calls atomic.Int32
	inner keys.Deriver
}

func (d *countingDeriver) Derive(entropy keys.Entropy) (*keys.KeyMaterial, error) {
	d.calls.Add(1)
	return d.inner.Derive(entropy)
}

type countingSigner struct {
	signer.Service
	calls atomic.Int32
	err   error
}

func (s *countingSigner) SignTransaction(ctx context.Context, km *keys.KeyMaterial, msgs tx.Messages, sender tx.Addr, chainID string, sequence uint32) (signer.Signature, error) {
	s.calls.Add(1)
	if s.err != nil {
		return signer.Signature{}, s.err
	}
	return s.Service.SignTransaction(ctx, km, msgs, sender, chainID, sequence)
}

func (s *countingSigner) BuildSignedTransaction(ctx context.Context, km *keys.KeyMaterial, msgs tx.Messages, sender tx.Addr, chainID string, sequence uint32) (*tx.SignedTransaction, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.Service.BuildSignedTransaction(ctx, km, msgs, sender, chainID, sequence)
}

type recorder struct {
	mu          sync.Mutex
	transitions []confirm.Transition
}

func (r *recorder) OnTransition(transition confirm.Transition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, transition)
}

func (r *recorder) states() []confirm.State {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]confirm.State, 0, len(r.transitions))
	for _, transition := range r.transitions {
		out = append(out, transition.To)
	}
	return out
}

type fixture struct {
	approver  *fakeApprover
	keySource *fakeKeySource
	deriver   *countingDeriver
	signer    *countingSigner
	recorder  *recorder
	gate      *confirm.Gate
}

func newFixture(t *testing.T, decision bool) *fixture {
	t.Helper()

	f := &fixture{
		approver:  &fakeApprover{decision: decision},
		keySource: &fakeKeySource{entropy: keys.Entropy{Mnemonic: testMnemonic, CoinType: keys.DefaultCoinType}},
		deriver:   &countingDeriver{inner: keys.NewDeriver()},
		signer:    &countingSigner{Service: signer.NewService()},
		recorder:  &recorder{},
	}
	f.gate = confirm.NewGate(f.approver, f.keySource, f.deriver, f.signer,
		confirm.WithObserver(f.recorder),
		confirm.WithClock(time2.NewMockClock(time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC))),
	)

	return f
}

func testTx() *tx.Tx {
	return &tx.Tx{
		Sender:   "wasm1sender",
		Msgs:     tx.Messages{tx.Transfer{To: "wasm1recipient", Coins: tx.Coins{{Denom: "u", Amount: "100"}}}},
		ChainID:  "dev-1",
		Sequence: 3,
	}
}

func referencePublicKey(t *testing.T) []byte {
	t.Helper()

	km, err := keys.FromMnemonic(testMnemonic, keys.DefaultCoinType)
	require.NoError(t, err)
	defer km.Zero()

	return km.PublicKey()
}

func TestSignTransactionApproved(t *testing.T) {
	f := newFixture(t, true)
	f.approver.prompts = make(chan confirm.Prompt, 1)
	transaction := testTx()

	sig, err := f.gate.SignTransaction(t.Context(), transaction)
	require.NoError(t, err)

	digest, err := transaction.Digest()
	require.NoError(t, err)
	assert.True(t, signer.Verify(referencePublicKey(t), digest[:], sig))

	assert.Equal(t, []confirm.State{
		confirm.StateAwaitingApproval,
		confirm.StateApproved,
		confirm.StateDerivingKey,
		confirm.StateSigning,
		confirm.StateCompleted,
	}, f.recorder.states())

	prompt := <-f.approver.prompts
	assert.NotEmpty(t, prompt.RequestID)
	assert.Equal(t, "wasm1sender", prompt.Header[0].Value)
	require.NotEmpty(t, prompt.Rows)
	assert.Equal(t, "100 u", prompt.Rows[len(prompt.Rows)-1].Value)

	for _, transition := range f.recorder.transitions {
		assert.Equal(t, prompt.RequestID, transition.RequestID)
		assert.Equal(t, time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC), transition.At)
	}

	assert.Equal(t, int32(1), f.keySource.calls.Load())
	assert.Equal(t, int32(1), f.deriver.calls.Load())
	assert.Equal(t, int32(1), f.signer.calls.Load())
}

func TestSignTransactionRejectedNeverDerives(t *testing.T) {
	f := newFixture(t, false)

	sig, err := f.gate.SignTransaction(t.Context(), testTx())
	require.Error(t, err)
	assert.True(t, errors.Is(err, confirm.ErrUserRejected))
	assert.Equal(t, signer.Signature{}, sig)

	assert.Equal(t, int32(1), f.approver.calls.Load())
	assert.Equal(t, int32(0), f.keySource.calls.Load())
	assert.Equal(t, int32(0), f.deriver.calls.Load())
	assert.Equal(t, int32(0), f.signer.calls.Load())

	assert.Equal(t, []confirm.State{
		confirm.StateAwaitingApproval,
		confirm.StateRejected,
		confirm.StateAborted,
	}, f.recorder.states())
}

func TestSignTransactionApproverError(t *testing.T) {
	f := newFixture(t, true)
	f.approver.err = errors.New("dialog crashed")

	_, err := f.gate.SignTransaction(t.Context(), testTx())
	require.Error(t, err)
	assert.True(t, errors.Is(err, confirm.ErrUserRejected))
	assert.Contains(t, err.Error(), "dialog crashed")
	assert.Equal(t, int32(0), f.deriver.calls.Load())
	assert.Equal(t, int32(0), f.signer.calls.Load())
}

func TestSignTransactionCancelledWhileAwaitingApproval(t *testing.T) {
	f := newFixture(t, true)
	rec := &recorder{}
	gate := confirm.NewGate(blockingApprover{}, f.keySource, f.deriver, f.signer, confirm.WithObserver(rec))

	ctx, cancel := context.WithCancel(t.Context())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := gate.SignTransaction(ctx, testTx())
	require.Error(t, err)
	assert.True(t, errors.Is(err, confirm.ErrUserRejected))
	assert.Equal(t, []confirm.State{
		confirm.StateAwaitingApproval,
		confirm.StateRejected,
		confirm.StateAborted,
	}, rec.states())
	assert.Equal(t, int32(0), f.deriver.calls.Load())
}

func TestSignTransactionEncodingErrorBeforeApproval(t *testing.T) {
	f := newFixture(t, true)
	transaction := testTx()
	transaction.ChainID = ""

	_, err := f.gate.SignTransaction(t.Context(), transaction)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tx.ErrEncoding))
	assert.Equal(t, int32(0), f.approver.calls.Load())
	assert.Equal(t, []confirm.State{confirm.StateFailed}, f.recorder.states())

	_, err = f.gate.SignTransaction(t.Context(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tx.ErrEncoding))
}

func TestSignTransactionEntropyUnavailable(t *testing.T) {
	f := newFixture(t, true)
	f.keySource.err = errors.New("host refused")

	_, err := f.gate.SignTransaction(t.Context(), testTx())
	require.Error(t, err)
	assert.True(t, errors.Is(err, confirm.ErrEntropyUnavailable))
	assert.Equal(t, int32(0), f.deriver.calls.Load())
	assert.Equal(t, int32(0), f.signer.calls.Load())
	assert.Equal(t, confirm.StateFailed, f.recorder.states()[len(f.recorder.states())-1])
}

func TestSignTransactionDeriveFailure(t *testing.T) {
	f := newFixture(t, true)
	f.keySource.entropy = keys.Entropy{Mnemonic: "not a valid mnemonic"}

	_, err := f.gate.SignTransaction(t.Context(), testTx())
	require.Error(t, err)
	assert.True(t, errors.Is(err, keys.ErrInvalidMnemonic))
	assert.Equal(t, int32(1), f.deriver.calls.Load())
	assert.Equal(t, int32(0), f.signer.calls.Load())
	assert.Equal(t, []confirm.State{
		confirm.StateAwaitingApproval,
		confirm.StateApproved,
		confirm.StateDerivingKey,
		confirm.StateFailed,
	}, f.recorder.states())
}

func TestSignTransactionSignerFailureIsNotRetried(t *testing.T) {
	f := newFixture(t, true)
	f.signer.err = errors.Wrap(signer.ErrSigning, "primitive failed")

	_, err := f.gate.SignTransaction(t.Context(), testTx())
	require.Error(t, err)
	assert.True(t, errors.Is(err, signer.ErrSigning))
	assert.Equal(t, int32(1), f.signer.calls.Load())

	states := f.recorder.states()
	assert.Equal(t, confirm.StateFailed, states[len(states)-1])

	var failed confirm.Transition
	for _, transition := range f.recorder.transitions {
		if transition.To == confirm.StateFailed {
			failed = transition
		}
	}
	assert.True(t, errors.Is(failed.Err, signer.ErrSigning))
}

func TestCreateAndSignTx(t *testing.T) {
	f := newFixture(t, true)
	transaction := testTx()

	signed, err := f.gate.CreateAndSignTx(t.Context(), transaction)
	require.NoError(t, err)
	assert.Equal(t, transaction.Sender, signed.Sender)
	assert.Equal(t, transaction.Msgs, signed.Msgs)

	var sig signer.Signature
	require.Len(t, []byte(signed.Credential), signer.SignatureSize)
	copy(sig[:], signed.Credential)

	digest, err := transaction.Digest()
	require.NoError(t, err)
	assert.True(t, signer.Verify(referencePublicKey(t), digest[:], sig))

	f.approver.decision = false
	signed, err = f.gate.CreateAndSignTx(t.Context(), transaction)
	require.Error(t, err)
	assert.Nil(t, signed)
	assert.True(t, errors.Is(err, confirm.ErrUserRejected))
}

func TestPublicKey(t *testing.T) {
	f := newFixture(t, true)

	publicKey, err := f.gate.PublicKey(t.Context())
	require.NoError(t, err)
	assert.Equal(t, referencePublicKey(t), publicKey)
	assert.Equal(t, int32(0), f.approver.calls.Load())
	assert.Empty(t, f.recorder.states())

	account, err := f.gate.Account(t.Context())
	require.NoError(t, err)
	assert.Equal(t, referencePublicKey(t), account.PublicKey)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", account.Address)

	same, err := f.gate.AccountForCoinType(t.Context(), keys.DefaultCoinType)
	require.NoError(t, err)
	assert.Equal(t, account, same)

	other, err := f.gate.AccountForCoinType(t.Context(), 118)
	require.NoError(t, err)
	assert.NotEqual(t, account.PublicKey, other.PublicKey)
	assert.Equal(t, int32(0), f.approver.calls.Load())
}

func TestGateSoundness(t *testing.T) {
	f := newFixture(t, true)

	decisions := []bool{true, false, true, false, false, true}
	for _, decision := range decisions {
		f.approver.decision = decision
		_, _ = f.gate.SignTransaction(t.Context(), testTx())
	}

	byRequest := make(map[string][]confirm.Transition)
	for _, transition := range f.recorder.transitions {
		byRequest[transition.RequestID] = append(byRequest[transition.RequestID], transition)
	}
	require.Len(t, byRequest, len(decisions))

	for id, transitions := range byRequest {
		state := confirm.StateIdle
		approved := false
		for _, transition := range transitions {
			assert.Equal(t, state, transition.From, "request %s", id)
			assert.True(t, confirm.CanTransition(transition.From, transition.To), "request %s: %s -> %s", id, transition.From, transition.To)
			if transition.To == confirm.StateApproved {
				approved = true
			}
			if transition.To == confirm.StateSigning {
				assert.True(t, approved, "request %s signed without approval", id)
			}
			state = transition.To
		}
		assert.True(t, state.Terminal(), "request %s ended in %s", id, state)
	}
}

func TestGateConcurrentRequests(t *testing.T) {
	f := newFixture(t, true)
	transaction := testTx()
	digest, err := transaction.Digest()
	require.NoError(t, err)
	publicKey := referencePublicKey(t)

	const workers = 8
	var wg sync.WaitGroup
	sigs := make([]signer.Signature, workers)
	errs := make([]error, workers)

	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sigs[i], errs[i] = f.gate.SignTransaction(t.Context(), transaction)
		}(i)
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.True(t, signer.Verify(publicKey, digest[:], sigs[i]))
	}
	assert.Equal(t, int32(workers), f.deriver.calls.Load())
}

func TestCanTransition(t *testing.T) {
	assert.True(t, confirm.CanTransition(confirm.StateIdle, confirm.StateAwaitingApproval))
	assert.True(t, confirm.CanTransition(confirm.StateApproved, confirm.StateDerivingKey))
	assert.True(t, confirm.CanTransition(confirm.StateRejected, confirm.StateAborted))

	assert.False(t, confirm.CanTransition(confirm.StateAwaitingApproval, confirm.StateSigning))
	assert.False(t, confirm.CanTransition(confirm.StateRejected, confirm.StateDerivingKey))
	assert.False(t, confirm.CanTransition(confirm.StateRejected, confirm.StateSigning))
	assert.False(t, confirm.CanTransition(confirm.StateIdle, confirm.StateSigning))
	assert.False(t, confirm.CanTransition(confirm.StateAborted, confirm.StateApproved))
	assert.False(t, confirm.CanTransition(confirm.StateCompleted, confirm.StateSigning))

	assert.Equal(t, "awaiting_approval", confirm.StateAwaitingApproval.String())
	assert.True(t, confirm.StateAborted.Terminal())
	assert.False(t, confirm.StateSigning.Terminal())
}
