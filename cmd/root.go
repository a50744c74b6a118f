package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-txsigner/cmd/env"
	"github/chapool/go-txsigner/cmd/keys"
	"github/chapool/go-txsigner/cmd/probe"
	"github/chapool/go-txsigner/cmd/server"
	"github/chapool/go-txsigner/cmd/sign"
	"github/chapool/go-txsigner/cmd/verify"
	"github/chapool/go-txsigner/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "app",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

Derives secp256k1 keys from a BIP-39 mnemonic and signs transactions only
after they were explicitly approved.
Requires configuration through ENV.`, config.ModuleName),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	// attach the subcommands
	rootCmd.AddCommand(
		env.New(),
		keys.New(),
		probe.New(),
		server.New(),
		sign.New(),
		verify.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
