package probe

import (
	"github.com/spf13/cobra"
)

func newLiveness() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Runs liveness probes",
		Long: `Runs the liveness probes of the server, which include the readiness probes
plus checks that the configured paths are writeable.

Exits with code 1 if any probe fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProbe(cmd.Context(), verbose, true)
		},
	}

	cmd.Flags().BoolVarP(&verbose, verboseFlag, "v", false, "Show verbose output.")

	return cmd
}
