package keys_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-txsigner/internal/wallet/keys"
)

//nolint:dupword // standard BIP-39 test vector
const testMnemonic = "test test test test test test test test test test test junk"

const (
	testPrivateKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testPublicKeyHex  = "038318535b54105d4a7aae60c08fc45f9687181b4fdfc625bd1a753fa7397fed75"
	testAddress       = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	// secp256k1 group order
	curveOrderHex = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
)

func TestFromMnemonicReferenceVector(t *testing.T) {
	km, err := keys.FromMnemonic(testMnemonic, keys.DefaultCoinType)
	require.NoError(t, err)

	assert.Equal(t, testPrivateKeyHex, hex.EncodeToString(km.PrivateKey()))
	assert.Equal(t, testPublicKeyHex, hex.EncodeToString(km.PublicKey()))

	address, err := km.Address()
	require.NoError(t, err)
	assert.Equal(t, testAddress, address)
}

func TestFromMnemonicIsStable(t *testing.T) {
	first, err := keys.FromMnemonic(testMnemonic, keys.DefaultCoinType)
	require.NoError(t, err)
	second, err := keys.FromMnemonic(testMnemonic, keys.DefaultCoinType)
	require.NoError(t, err)

	assert.Equal(t, first.PrivateKey(), second.PrivateKey())
	assert.Equal(t, first.PublicKey(), second.PublicKey())

	// whitespace around and between words is not significant
	padded := "  " + strings.ReplaceAll(testMnemonic, " ", "   ") + "\n"
	third, err := keys.FromMnemonic(padded, keys.DefaultCoinType)
	require.NoError(t, err)
	assert.Equal(t, first.PrivateKey(), third.PrivateKey())
}

func TestFromMnemonicCoinTypeChangesKey(t *testing.T) {
	eth, err := keys.FromMnemonic(testMnemonic, 60)
	require.NoError(t, err)
	cosmos, err := keys.FromMnemonic(testMnemonic, 118)
	require.NoError(t, err)

	assert.NotEqual(t, eth.PrivateKey(), cosmos.PrivateKey())
	assert.NotEqual(t, eth.PublicKey(), cosmos.PublicKey())
}

func TestFromMnemonicPassphraseChangesKey(t *testing.T) {
	plain, err := keys.FromMnemonic(testMnemonic, keys.DefaultCoinType)
	require.NoError(t, err)
	withPassphrase, err := keys.FromMnemonicWithPassphrase(testMnemonic, "TREZOR", keys.DefaultCoinType)
	require.NoError(t, err)

	assert.NotEqual(t, plain.PrivateKey(), withPassphrase.PrivateKey())
}

func TestFromMnemonicInvalid(t *testing.T) {
	//nolint:dupword // invalid phrases on purpose
	tests := map[string]string{
		"empty":         "",
		"unknown word":  "test test test test test test test test test test test notaword",
		"bad checksum":  "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon",
		"too few words": "test test test test test test test test test test junk",
	}

	for name, mnemonic := range tests {
		t.Run(name, func(t *testing.T) {
			km, err := keys.FromMnemonic(mnemonic, keys.DefaultCoinType)
			require.Error(t, err)
			assert.Nil(t, km)
			assert.True(t, errors.Is(err, keys.ErrInvalidMnemonic), "unexpected error: %v", err)
		})
	}
}

func TestFromMnemonicCoinTypeOutOfRange(t *testing.T) {
	_, err := keys.FromMnemonic(testMnemonic, 0x80000000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, keys.ErrInvalidPath))
}

func TestFromPrivateKeyInvalid(t *testing.T) {
	order, err := hex.DecodeString(curveOrderHex)
	require.NoError(t, err)

	tests := map[string][]byte{
		"nil":         nil,
		"short":       make([]byte, 31),
		"long":        make([]byte, 33),
		"zero":        make([]byte, 32),
		"curve order": order,
	}

	for name, privateKey := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := keys.FromPrivateKey(privateKey)
			require.Error(t, err)
			assert.True(t, errors.Is(err, keys.ErrInvalidKey), "unexpected error: %v", err)
		})
	}
}

func TestPublicKeyMatchesPrivateKey(t *testing.T) {
	privateKeys := []string{
		testPrivateKeyHex,
		"0000000000000000000000000000000000000000000000000000000000000001",
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140",
		"00ff00ff00ff00ff00ff00ff00ff00ff00ff00ff00ff00ff00ff00ff00ff00ff",
	}

	for _, privateKeyHex := range privateKeys {
		privateKey, err := hex.DecodeString(privateKeyHex)
		require.NoError(t, err)

		km, err := keys.FromPrivateKey(privateKey)
		require.NoError(t, err)

		expected := secp256k1.PrivKeyFromBytes(privateKey).PubKey().SerializeCompressed()
		assert.Len(t, km.PublicKey(), keys.PublicKeySize)
		assert.Equal(t, expected, km.PublicKey(), privateKeyHex)
		assert.Equal(t, privateKey, km.PrivateKey())
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	km, err := keys.FromMnemonic(testMnemonic, keys.DefaultCoinType)
	require.NoError(t, err)

	privateKey := km.PrivateKey()
	privateKey[0] ^= 0xff
	publicKey := km.PublicKey()
	publicKey[0] = 0

	assert.Equal(t, testPrivateKeyHex, hex.EncodeToString(km.PrivateKey()))
	assert.Equal(t, testPublicKeyHex, hex.EncodeToString(km.PublicKey()))
}

func TestZero(t *testing.T) {
	km, err := keys.FromMnemonic(testMnemonic, keys.DefaultCoinType)
	require.NoError(t, err)

	km.Zero()

	assert.Equal(t, make([]byte, keys.PrivateKeySize), km.PrivateKey())
	_, err = km.ECDSA()
	assert.True(t, errors.Is(err, keys.ErrInvalidKey))
}

func TestDeriver(t *testing.T) {
	deriver := keys.NewDeriver()

	fromMnemonic, err := deriver.Derive(keys.Entropy{Mnemonic: testMnemonic, CoinType: keys.DefaultCoinType})
	require.NoError(t, err)
	assert.Equal(t, testPrivateKeyHex, hex.EncodeToString(fromMnemonic.PrivateKey()))

	privateKey, err := hex.DecodeString(testPrivateKeyHex)
	require.NoError(t, err)
	fromKey, err := deriver.Derive(keys.Entropy{PrivateKey: privateKey})
	require.NoError(t, err)
	assert.Equal(t, fromMnemonic.PublicKey(), fromKey.PublicKey())

	_, err = deriver.Derive(keys.Entropy{})
	assert.True(t, errors.Is(err, keys.ErrEntropyUnavailable))

	_, err = deriver.Derive(keys.Entropy{PrivateKey: privateKey, Mnemonic: testMnemonic})
	assert.True(t, errors.Is(err, keys.ErrEntropyUnavailable))
}

func TestEntropyWipe(t *testing.T) {
	privateKey, err := hex.DecodeString(testPrivateKeyHex)
	require.NoError(t, err)
	backing := privateKey

	entropy := keys.Entropy{PrivateKey: privateKey, Mnemonic: testMnemonic}
	entropy.Wipe()

	assert.Nil(t, entropy.PrivateKey)
	assert.Empty(t, entropy.Mnemonic)
	assert.Equal(t, make([]byte, keys.PrivateKeySize), backing)
}

func TestValidateMnemonicChecksum(t *testing.T) {
	//nolint:dupword // reference phrases
	valid := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	require.NoError(t, keys.ValidateMnemonic(valid))
	require.NoError(t, keys.ValidateMnemonic("  "+valid+"\n"))

	// every word is in the list, only the checksum word differs
	//nolint:dupword // reference phrases
	for _, mnemonic := range []string{
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon",
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon zoo",
		"test test test test test test test test test test test test",
	} {
		err := keys.ValidateMnemonic(mnemonic)
		require.Error(t, err, mnemonic)
		assert.True(t, errors.Is(err, keys.ErrInvalidMnemonic), "unexpected error: %v", err)

		km, err := keys.FromMnemonic(mnemonic, keys.DefaultCoinType)
		assert.Nil(t, km)
		assert.True(t, errors.Is(err, keys.ErrInvalidMnemonic), "unexpected error: %v", err)
	}
}

func TestNewMnemonic(t *testing.T) {
	for bits, words := range map[int]int{128: 12, 256: 24} {
		mnemonic, err := keys.NewMnemonic(bits)
		require.NoError(t, err)
		assert.Len(t, strings.Fields(mnemonic), words)
		require.NoError(t, keys.ValidateMnemonic(mnemonic))

		_, err = keys.FromMnemonic(mnemonic, keys.DefaultCoinType)
		require.NoError(t, err)
	}

	_, err := keys.NewMnemonic(100)
	require.Error(t, err)
}
