package command

import (
	"bytes"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/util"
	"github/chapool/go-txsigner/internal/wallet/seed"
)

// SecretPrompter reads a secret without echoing it
type SecretPrompter func(prompt string) (string, error)

// EnsureKeySource prompts for a mnemonic (and optional BIP-39 passphrase) if
// manager is not initialized yet. Without a terminal to prompt on, the manager
// is left untouched and signing fails with ErrEntropyUnavailable.
func EnsureKeySource(manager seed.Manager, cfg config.SignerServer, prompt SecretPrompter) error {
	log := log.With().Str("component", "key_source").Logger()

	if manager.IsInitialized() {
		return nil
	}

	if prompt == nil {
		if !util.IsTerminal() {
			log.Warn().Msg("No signing key configured and no terminal to ask for one")
			return nil
		}
		prompt = util.PromptSecret
	}

	mnemonic, err := prompt("Enter mnemonic: ")
	if err != nil {
		return errors.Wrap(err, "failed to read mnemonic")
	}

	passphrase := cfg.Passphrase
	if passphrase == "" {
		passphrase, err = prompt("Enter BIP-39 passphrase (empty for none): ")
		if err != nil {
			return errors.Wrap(err, "failed to read passphrase")
		}
	}

	if err := manager.Initialize(strings.TrimSpace(mnemonic), passphrase, cfg.CoinType); err != nil {
		return errors.Wrap(err, "failed to initialize key source")
	}

	log.Info().Uint32("coin_type", cfg.CoinType).Msg("Key source initialized")

	return nil
}

// OverrideKeySource lets a mnemonic or private key file given on the command
// line take precedence over the SIGNER_* ENV variables
func OverrideKeySource(cfg *config.SignerServer, mnemonicFile string, privateKeyFile string) error {
	switch {
	case mnemonicFile != "" && privateKeyFile != "":
		return errors.New("a mnemonic file and a private key file are mutually exclusive")
	case mnemonicFile != "":
		cfg.Mnemonic = ""
		cfg.PrivateKey = ""
		cfg.MnemonicFile = mnemonicFile
	case privateKeyFile != "":
		content, err := os.ReadFile(privateKeyFile)
		if err != nil {
			return errors.Wrap(err, "failed to read private key file")
		}

		cfg.Mnemonic = ""
		cfg.MnemonicFile = ""
		cfg.PrivateKey = string(bytes.TrimSpace(content))
	}

	return nil
}
