package keys

import (
	"github.com/spf13/cobra"
	"github/chapool/go-txsigner/internal/util/command"
)

const (
	coinTypeFlag       string = "coin-type"
	mnemonicFileFlag   string = "mnemonic-file"
	privateKeyFileFlag string = "private-key-file"
	wordsFlag          string = "words"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("keys",
		newNew(),
		newDerive(),
	)
}
