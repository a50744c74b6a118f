package verify

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/go-txsigner/internal/wallet/signer"
	"github/chapool/go-txsigner/internal/wallet/tx"
)

const (
	txFlag        string = "tx"
	publicKeyFlag string = "public-key"
	signatureFlag string = "signature"
)

// ErrInvalidSignature is returned when a signature doesn't match the transaction
var ErrInvalidSignature = errors.New("signature is invalid")

func New() *cobra.Command {
	var (
		txFile    string
		publicKey string
		signature string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verifies a transaction signature",
		Long: `Recomputes the sign digest of the transaction in --tx and checks the
base64 r||s signature against the hex encoded compressed public key.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(txFile, publicKey, signature, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&txFile, txFlag, "", "File holding the transaction JSON.")
	cmd.Flags().StringVar(&publicKey, publicKeyFlag, "", "Hex encoded compressed public key.")
	cmd.Flags().StringVar(&signature, signatureFlag, "", "Base64 encoded signature.")

	for _, flag := range []string{txFlag, publicKeyFlag, signatureFlag} {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}

	return cmd
}

func runVerify(txFile string, publicKeyHex string, signature string, out io.Writer) error {
	raw, err := os.ReadFile(txFile)
	if err != nil {
		return errors.Wrap(err, "failed to read transaction")
	}

	var transaction tx.Tx
	if err := json.Unmarshal(raw, &transaction); err != nil {
		return errors.Wrap(err, "failed to parse transaction")
	}

	return Verify(&transaction, publicKeyHex, signature, out)
}

// Verify checks signature over the digest of transaction
func Verify(transaction *tx.Tx, publicKeyHex string, signature string, out io.Writer) error {
	publicKey, err := hex.DecodeString(strings.TrimPrefix(publicKeyHex, "0x"))
	if err != nil {
		return errors.Wrap(err, "public key is not hex")
	}

	sig, err := signer.ParseSignature(signature)
	if err != nil {
		return err
	}

	digest, err := transaction.Digest()
	if err != nil {
		return err
	}

	if !signer.Verify(publicKey, digest[:], sig) {
		return ErrInvalidSignature
	}

	//nolint:forbidigo // command output
	fmt.Fprintln(out, "Signature is valid.")

	return nil
}
