package verify_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-txsigner/cmd/verify"
	"github/chapool/go-txsigner/internal/wallet/keys"
	"github/chapool/go-txsigner/internal/wallet/signer"
	"github/chapool/go-txsigner/internal/wallet/tx"
)

//nolint:gosec // well known development mnemonic
const testMnemonic = "test test test test test test test test test test test junk"

func TestVerify(t *testing.T) {
	km, err := keys.FromMnemonic(testMnemonic, keys.DefaultCoinType)
	require.NoError(t, err)
	defer km.Zero()

	transaction := &tx.Tx{
		Sender:   "sender1",
		Msgs:     tx.Messages{tx.Transfer{To: "addr1", Coins: tx.Coins{{Denom: "u", Amount: "100"}}}},
		ChainID:  "dev-1",
		Sequence: 7,
	}

	sig, err := signer.NewService().SignTransaction(t.Context(), km, transaction.Msgs, transaction.Sender, transaction.ChainID, transaction.Sequence)
	require.NoError(t, err)

	publicKey := hex.EncodeToString(km.PublicKey())

	var out bytes.Buffer
	require.NoError(t, verify.Verify(transaction, publicKey, sig.String(), &out))
	assert.Equal(t, "Signature is valid.\n", out.String())

	transaction.Sequence = 8
	err = verify.Verify(transaction, publicKey, sig.String(), &out)
	assert.True(t, errors.Is(err, verify.ErrInvalidSignature))

	assert.Error(t, verify.Verify(transaction, "zz", sig.String(), &out))
	assert.Error(t, verify.Verify(transaction, publicKey, "AAAA", &out))
}
