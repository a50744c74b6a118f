package sign

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/types"
	"github/chapool/go-txsigner/internal/util"
	"github/chapool/go-txsigner/internal/util/command"
	"github/chapool/go-txsigner/internal/wallet/approval"
	"github/chapool/go-txsigner/internal/wallet/confirm"
	"github/chapool/go-txsigner/internal/wallet/keys"
	"github/chapool/go-txsigner/internal/wallet/signer"
	"github/chapool/go-txsigner/internal/wallet/tx"
)

const (
	txFlag             string = "tx"
	yesFlag            string = "yes"
	signedFlag         string = "signed"
	coinTypeFlag       string = "coin-type"
	mnemonicFileFlag   string = "mnemonic-file"
	privateKeyFileFlag string = "private-key-file"
)

type flags struct {
	txFile         string
	yes            bool
	signed         bool
	coinType       uint32
	mnemonicFile   string
	privateKeyFile string
}

func New() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Signs a transaction after asking for approval",
		Long: `Shows a summary of the transaction and signs it once approved on the terminal.

The transaction is read as JSON from --tx ("-" for stdin, which requires --yes).
Prints {"signature": "<base64>"} or, with --signed, the signed transaction.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSign(cmd.Context(), f, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&f.txFile, txFlag, "", "File holding the transaction JSON.")
	cmd.Flags().BoolVarP(&f.yes, yesFlag, "y", false, "Approve without asking.")
	cmd.Flags().BoolVar(&f.signed, signedFlag, false, "Print the signed transaction instead of the bare signature.")
	cmd.Flags().Uint32Var(&f.coinType, coinTypeFlag, keys.DefaultCoinType, "BIP-44 coin type.")
	cmd.Flags().StringVar(&f.mnemonicFile, mnemonicFileFlag, "", "File holding the mnemonic.")
	cmd.Flags().StringVar(&f.privateKeyFile, privateKeyFileFlag, "", "File holding the hex encoded private key.")

	if err := cmd.MarkFlagRequired(txFlag); err != nil {
		panic(err)
	}

	return cmd
}

func runSign(ctx context.Context, f flags, out io.Writer) error {
	cfg := config.DefaultServiceConfigFromEnv()
	util.ConfigureGlobalLogger(cfg.Logger.Level, cfg.Logger.PrettyPrintConsole)

	cfg.Signer.CoinType = f.coinType
	if err := command.OverrideKeySource(&cfg.Signer, f.mnemonicFile, f.privateKeyFile); err != nil {
		return err
	}

	var approver confirm.Approver = approval.NewTerminal(os.Stdin, os.Stderr)
	if f.yes {
		approver = approval.AlwaysApprove
	} else if f.txFile == "-" {
		return errors.Errorf("reading the transaction from stdin requires --%s", yesFlag)
	}

	transaction, err := readTx(f.txFile)
	if err != nil {
		return err
	}

	manager, err := api.NewSeedManager(cfg)
	if err != nil {
		return err
	}
	defer manager.Clear()

	if err := command.EnsureKeySource(manager, cfg.Signer, nil); err != nil {
		return err
	}

	gate := confirm.NewGate(approver, manager, keys.NewDeriver(), signer.NewService())

	var result any
	if f.signed {
		result, err = gate.CreateAndSignTx(ctx, transaction)
	} else {
		var sig signer.Signature
		sig, err = gate.SignTransaction(ctx, transaction)
		result = &types.SignTransactionResult{Signature: sig.String()}
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return errors.Wrap(enc.Encode(result), "failed to write result")
}

func readTx(file string) (*tx.Tx, error) {
	var (
		raw []byte
		err error
	)
	if file == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read transaction")
	}

	var transaction tx.Tx
	if err := json.Unmarshal(raw, &transaction); err != nil {
		return nil, errors.Wrap(err, "failed to parse transaction")
	}

	return &transaction, nil
}
