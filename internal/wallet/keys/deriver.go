package keys

import "github.com/pkg/errors"

type deriver struct{}

// NewDeriver returns the default Deriver backed by FromPrivateKey and FromMnemonicWithPassphrase
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewDeriver() Deriver {
	return deriver{}
}

func (deriver) Derive(entropy Entropy) (*KeyMaterial, error) {
	hasKey := len(entropy.PrivateKey) > 0
	hasMnemonic := entropy.Mnemonic != ""

	switch {
	case hasKey && hasMnemonic:
		return nil, errors.Wrap(ErrEntropyUnavailable, "entropy carries both a private key and a mnemonic")
	case hasKey:
		return FromPrivateKey(entropy.PrivateKey)
	case hasMnemonic:
		return FromMnemonicWithPassphrase(entropy.Mnemonic, entropy.Passphrase, entropy.CoinType)
	default:
		return nil, errors.Wrap(ErrEntropyUnavailable, "entropy is empty")
	}
}
