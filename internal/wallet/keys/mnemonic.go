package keys

import (
	"crypto/sha512"
	"strings"

	"github.com/cosmos/go-bip39"
	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

// BIP39: seed = PBKDF2(mnemonic, "mnemonic" + passphrase, 2048, 64, SHA512)
const (
	pbkdf2Iterations = 2048
	pbkdf2KeyLength  = 64
	pbkdf2SaltPrefix = "mnemonic"
)

// FromMnemonic derives KeyMaterial at m/44'/coinType'/0'/0/0 from a BIP-39 phrase
func FromMnemonic(mnemonic string, coinType uint32) (*KeyMaterial, error) {
	return FromMnemonicWithPassphrase(mnemonic, "", coinType)
}

// FromMnemonicWithPassphrase is FromMnemonic with an optional BIP-39 passphrase
func FromMnemonicWithPassphrase(mnemonic string, passphrase string, coinType uint32) (*KeyMaterial, error) {
	path, err := NewHDPath(coinType)
	if err != nil {
		return nil, err
	}

	seed, err := mnemonicToSeed(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	defer wipe(seed)

	privateKey, err := deriveKeyFromPath(seed, path)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}
	defer wipe(privateKey)

	return FromPrivateKey(privateKey)
}

// ValidateMnemonic checks the phrase against the English word list and its checksum
func ValidateMnemonic(mnemonic string) error {
	// IsMnemonicValid only checks the word list; decoding verifies the checksum
	entropy, err := bip39.MnemonicToByteArray(NormalizeMnemonic(mnemonic))
	if err != nil {
		return errors.Wrap(ErrInvalidMnemonic, err.Error())
	}
	wipe(entropy)

	return nil
}

// NormalizeMnemonic applies NFKD and collapses whitespace to single spaces
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(norm.NFKD.String(mnemonic)), " ")
}

// NewMnemonic generates a fresh phrase from bitSize bits of entropy (128 -> 12 words, 256 -> 24 words)
func NewMnemonic(bitSize int) (string, error) {
	entropy, err := bip39.NewEntropy(bitSize)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}
	defer wipe(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to build mnemonic")
	}

	return mnemonic, nil
}

func mnemonicToSeed(mnemonic string, passphrase string) ([]byte, error) {
	normalized := NormalizeMnemonic(mnemonic)
	if err := ValidateMnemonic(normalized); err != nil {
		return nil, err
	}

	seed := pbkdf2.Key(
		[]byte(normalized),
		[]byte(pbkdf2SaltPrefix+norm.NFKD.String(passphrase)),
		pbkdf2Iterations,
		pbkdf2KeyLength,
		sha512.New,
	)

	return seed, nil
}
