package keys

import (
	"context"
	"encoding/hex"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/util/command"
	"github/chapool/go-txsigner/internal/wallet/approval"
	"github/chapool/go-txsigner/internal/wallet/confirm"
	"github/chapool/go-txsigner/internal/wallet/keys"
	"github/chapool/go-txsigner/internal/wallet/signer"
	"github/chapool/go-txsigner/internal/wallet/summary"
)

func newDerive() *cobra.Command {
	var (
		coinType       uint32
		mnemonicFile   string
		privateKeyFile string
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Prints the public key and address of a key",
		Long: `Derives the key at m/44'/<coin-type>'/0'/0/0 and prints its public key and address.

The key is read from --mnemonic-file, --private-key-file or the SIGNER_* ENV
variables. Otherwise the mnemonic is prompted for.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.DefaultServiceConfigFromEnv()
			if cmd.Flags().Changed(coinTypeFlag) {
				cfg.Signer.CoinType = coinType
			}

			if err := command.OverrideKeySource(&cfg.Signer, mnemonicFile, privateKeyFile); err != nil {
				return err
			}

			return runDerive(cmd.Context(), cfg)
		},
	}

	cmd.Flags().Uint32Var(&coinType, coinTypeFlag, keys.DefaultCoinType, "BIP-44 coin type.")
	cmd.Flags().StringVar(&mnemonicFile, mnemonicFileFlag, "", "File holding the mnemonic.")
	cmd.Flags().StringVar(&privateKeyFile, privateKeyFileFlag, "", "File holding the hex encoded private key.")

	return cmd
}

func runDerive(ctx context.Context, cfg config.Server) error {
	manager, err := api.NewSeedManager(cfg)
	if err != nil {
		return err
	}
	defer manager.Clear()

	if err := command.EnsureKeySource(manager, cfg.Signer, nil); err != nil {
		return err
	}

	// nothing is signed here, every sign request would be rejected
	gate := confirm.NewGate(approval.AlwaysReject, manager, keys.NewDeriver(), signer.NewService())

	account, err := gate.Account(ctx)
	if err != nil {
		return err
	}

	path, err := keys.NewHDPath(cfg.Signer.CoinType)
	if err != nil {
		return err
	}

	summary.Render(os.Stdout, []summary.Row{
		summary.TextRow("coin type", strconv.FormatUint(uint64(cfg.Signer.CoinType), 10)),
		summary.TextRow("path", path.String()),
		summary.TextRow("public key", hex.EncodeToString(account.PublicKey)),
		summary.AddressRow("address", account.Address),
	})

	return nil
}
