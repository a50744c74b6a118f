package keys

import (
	"encoding/hex"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/go-txsigner/internal/wallet/keys"
	"github/chapool/go-txsigner/internal/wallet/summary"
)

func newNew() *cobra.Command {
	var (
		words    int
		coinType uint32
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generates a new mnemonic",
		Long: `Generates a new BIP-39 mnemonic and prints it together with the
public key and address at m/44'/<coin-type>'/0'/0/0.

Store the mnemonic offline, it is never written anywhere by this command.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runNew(words, coinType)
		},
	}

	cmd.Flags().IntVar(&words, wordsFlag, 24, "Number of words, 12 or 24.")
	cmd.Flags().Uint32Var(&coinType, coinTypeFlag, keys.DefaultCoinType, "BIP-44 coin type.")

	return cmd
}

func runNew(words int, coinType uint32) error {
	var bitSize int
	switch words {
	case 12:
		bitSize = 128
	case 24:
		bitSize = 256
	default:
		return errors.Errorf("unsupported number of words %d, use 12 or 24", words)
	}

	mnemonic, err := keys.NewMnemonic(bitSize)
	if err != nil {
		return err
	}

	km, err := keys.FromMnemonic(mnemonic, coinType)
	if err != nil {
		return err
	}
	defer km.Zero()

	path, err := keys.NewHDPath(coinType)
	if err != nil {
		return err
	}

	address, err := km.Address()
	if err != nil {
		return err
	}

	summary.Render(os.Stdout, []summary.Row{
		summary.TextRow("mnemonic", mnemonic),
		summary.TextRow("words", strconv.Itoa(words)),
		summary.TextRow("path", path.String()),
		summary.TextRow("public key", hex.EncodeToString(km.PublicKey())),
		summary.AddressRow("address", address),
	})

	return nil
}
