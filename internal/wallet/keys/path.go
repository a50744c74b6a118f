package keys

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
)

const (
	bip44Purpose = 44
	hdPathDepth  = 5
)

// HDPath is a BIP-44 derivation path m/44'/coinType'/0'/0/0.
// Indices 0-2 are hardened, 3-4 are not.
type HDPath [hdPathDepth]uint32

// NewHDPath builds the derivation path for the given coin type
func NewHDPath(coinType uint32) (HDPath, error) {
	if coinType >= bip32.FirstHardenedChild {
		return HDPath{}, errors.Wrapf(ErrInvalidPath, "coin type %d out of range", coinType)
	}

	return HDPath{
		bip32.FirstHardenedChild + bip44Purpose,
		bip32.FirstHardenedChild + coinType,
		bip32.FirstHardenedChild + 0,
		0,
		0,
	}, nil
}

// CoinType returns the coin type encoded in the path
func (p HDPath) CoinType() uint32 {
	return p[1] - bip32.FirstHardenedChild
}

// String renders the path, e.g. "m/44'/60'/0'/0/0"
func (p HDPath) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, index := range p {
		sb.WriteString("/")
		if index >= bip32.FirstHardenedChild {
			sb.WriteString(strconv.FormatUint(uint64(index-bip32.FirstHardenedChild), 10))
			sb.WriteString("'")
		} else {
			sb.WriteString(strconv.FormatUint(uint64(index), 10))
		}
	}
	return sb.String()
}

// ParseHDPath parses a BIP-44 path string. Only paths of the form
// m/44'/coinType'/0'/0/0 are accepted; any other hardening or index pattern
// would silently derive a different key.
// Example: "m/44'/60'/0'/0/0" -> [2147483692, 2147483708, 2147483648, 0, 0]
func ParseHDPath(path string) (HDPath, error) {
	if !strings.HasPrefix(path, "m/") {
		return HDPath{}, errors.Wrapf(ErrInvalidPath, "path must start with m/: %q", path)
	}

	parts := strings.Split(path[2:], "/")
	if len(parts) != hdPathDepth {
		return HDPath{}, errors.Wrapf(ErrInvalidPath, "expected %d segments, got %d", hdPathDepth, len(parts))
	}

	var parsed HDPath
	for i, part := range parts {
		hardened := false
		if strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h") {
			hardened = true
			part = part[:len(part)-1]
		}

		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil || index >= uint64(bip32.FirstHardenedChild) {
			return HDPath{}, errors.Wrapf(ErrInvalidPath, "invalid path segment: %q", parts[i])
		}

		// Add hardened flag (0x80000000)
		if hardened {
			index += uint64(bip32.FirstHardenedChild)
		}
		parsed[i] = uint32(index)
	}

	expected, err := NewHDPath(parsed.CoinType())
	if err != nil || expected != parsed {
		return HDPath{}, errors.Wrap(ErrInvalidPath, fmt.Sprintf("%q does not match m/44'/coinType'/0'/0/0", path))
	}

	return parsed, nil
}

// deriveKeyFromPath walks the path from the master key of the seed
func deriveKeyFromPath(seed []byte, path HDPath) ([]byte, error) {
	// Create master key from seed
	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	// Derive key step by step
	key := masterKey
	for _, index := range path {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
	}

	if len(key.Key) > PrivateKeySize {
		return nil, errors.Errorf("derived key has unexpected length %d", len(key.Key))
	}

	// left-pad to a fixed-size scalar
	privateKey := make([]byte, PrivateKeySize)
	copy(privateKey[PrivateKeySize-len(key.Key):], key.Key)
	wipe(key.Key)
	wipe(masterKey.Key)

	return privateKey, nil
}
