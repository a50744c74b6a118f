package probe

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/api/handlers/common"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/util/command"
)

func newReadiness() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs readiness probes",
		Long: `Runs the readiness probes of the server

Exits with code 1 if any probe fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProbe(cmd.Context(), verbose, false)
		},
	}

	cmd.Flags().BoolVarP(&verbose, verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func runProbe(ctx context.Context, verbose bool, liveness bool) error {
	cfg := config.DefaultServiceConfigFromEnv()

	probe := common.ProbeReadiness
	timeout := cfg.Management.ReadinessTimeout
	if liveness {
		probe = common.ProbeLiveness
		timeout = cfg.Management.LivenessTimeout
	}

	return command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		str, errs := probe(ctx, s)

		if verbose {
			for _, line := range str {
				//nolint:forbidigo // command output
				fmt.Println(line)
			}
		}

		if len(errs) > 0 {
			for _, err := range errs {
				//nolint:forbidigo // command output
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(1)
		}

		return nil
	})
}
