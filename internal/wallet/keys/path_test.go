package keys_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-txsigner/internal/wallet/keys"
)

func TestNewHDPath(t *testing.T) {
	path, err := keys.NewHDPath(60)
	require.NoError(t, err)

	assert.Equal(t, keys.HDPath{0x8000002c, 0x8000003c, 0x80000000, 0, 0}, path)
	assert.Equal(t, "m/44'/60'/0'/0/0", path.String())
	assert.Equal(t, uint32(60), path.CoinType())

	_, err = keys.NewHDPath(0x80000000)
	assert.True(t, errors.Is(err, keys.ErrInvalidPath))
}

func TestParseHDPath(t *testing.T) {
	for _, s := range []string{"m/44'/60'/0'/0/0", "m/44'/118'/0'/0/0", "m/44h/0h/0h/0/0"} {
		path, err := keys.ParseHDPath(s)
		require.NoError(t, err, s)

		reparsed, err := keys.ParseHDPath(path.String())
		require.NoError(t, err)
		assert.Equal(t, path, reparsed)
	}
}

func TestParseHDPathRejectsOtherLayouts(t *testing.T) {
	invalid := []string{
		"",
		"44'/60'/0'/0/0",
		"m/44'/60'/0'/0",
		"m/44'/60'/0'/0/0/0",
		"m/44/60'/0'/0/0",
		"m/44'/60/0'/0/0",
		"m/44'/60'/0/0/0",
		"m/44'/60'/0'/0'/0",
		"m/44'/60'/0'/0/0'",
		"m/44'/60'/1'/0/0",
		"m/44'/60'/0'/1/0",
		"m/44'/60'/0'/0/1",
		"m/49'/60'/0'/0/0",
		"m/44'/x'/0'/0/0",
		"m/44'/2147483648'/0'/0/0",
	}

	for _, s := range invalid {
		_, err := keys.ParseHDPath(s)
		require.Error(t, err, s)
		assert.True(t, errors.Is(err, keys.ErrInvalidPath), s)
	}
}
