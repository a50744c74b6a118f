package seed_test

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-txsigner/internal/wallet/keys"
	"github/chapool/go-txsigner/internal/wallet/seed"
)

//nolint:gosec // well known development mnemonic and its first key
const (
	testMnemonic   = "test test test test test test test test test test test junk"
	testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
)

func TestManagerUninitialized(t *testing.T) {
	m := seed.NewManager()
	assert.False(t, m.IsInitialized())

	_, err := m.Entropy(t.Context())
	require.Error(t, err)
	assert.True(t, errors.Is(err, keys.ErrEntropyUnavailable))
}

func TestManagerMnemonic(t *testing.T) {
	m := seed.NewManager()
	require.NoError(t, m.Initialize("  test test test test test test\ttest test test test test junk ", "", keys.DefaultCoinType))
	assert.True(t, m.IsInitialized())

	entropy, err := m.Entropy(t.Context())
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, entropy.Mnemonic)
	assert.Equal(t, keys.DefaultCoinType, entropy.CoinType)
	assert.Nil(t, entropy.PrivateKey)

	km, err := keys.NewDeriver().Derive(entropy)
	require.NoError(t, err)
	defer km.Zero()
	assert.Equal(t, testPrivateKey, hex.EncodeToString(km.PrivateKey()))

	m.Clear()
	assert.False(t, m.IsInitialized())
	_, err = m.Entropy(t.Context())
	assert.True(t, errors.Is(err, keys.ErrEntropyUnavailable))
}

func TestManagerPrivateKey(t *testing.T) {
	raw, err := hex.DecodeString(testPrivateKey)
	require.NoError(t, err)

	m := seed.NewManager()
	require.NoError(t, m.InitializePrivateKey(raw))

	entropy, err := m.Entropy(t.Context())
	require.NoError(t, err)
	assert.Equal(t, raw, entropy.PrivateKey)
	assert.Empty(t, entropy.Mnemonic)

	// wiping the copy leaves the stored key intact
	entropy.Wipe()
	again, err := m.Entropy(t.Context())
	require.NoError(t, err)
	assert.Equal(t, raw, again.PrivateKey)

	// re-initializing replaces the secret
	require.NoError(t, m.Initialize(testMnemonic, "", keys.DefaultCoinType))
	entropy, err = m.Entropy(t.Context())
	require.NoError(t, err)
	assert.Nil(t, entropy.PrivateKey)
	assert.Equal(t, testMnemonic, entropy.Mnemonic)
}

func TestManagerRejectsInvalidSecrets(t *testing.T) {
	m := seed.NewManager()

	err := m.Initialize("test test test", "", keys.DefaultCoinType)
	assert.True(t, errors.Is(err, keys.ErrInvalidMnemonic))

	//nolint:dupword // checksum mismatch on purpose
	err = m.Initialize("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon", "", keys.DefaultCoinType)
	assert.True(t, errors.Is(err, keys.ErrInvalidMnemonic))

	err = m.Initialize(testMnemonic, "", 1<<31)
	assert.True(t, errors.Is(err, keys.ErrInvalidPath))

	err = m.InitializePrivateKey(make([]byte, keys.PrivateKeySize))
	assert.True(t, errors.Is(err, keys.ErrInvalidKey))

	assert.False(t, m.IsInitialized())
}

func TestManagerCancelledContext(t *testing.T) {
	m := seed.NewManager()
	require.NoError(t, m.Initialize(testMnemonic, "", keys.DefaultCoinType))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := m.Entropy(ctx)
	assert.True(t, errors.Is(err, keys.ErrEntropyUnavailable))
}
