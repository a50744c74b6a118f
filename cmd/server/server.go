package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/util/command"
)

const shutdownTimeout = 10 * time.Second

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Long: `Starts the JSON-RPC signing server

The signing key is taken from SIGNER_MNEMONIC, SIGNER_MNEMONIC_FILE or
SIGNER_PRIVATE_KEY. If none is set and a terminal is attached, the mnemonic is
prompted for. Requires configuration through ENV.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	cfg := config.DefaultServiceConfigFromEnv()

	return command.WithServer(ctx, cfg, func(_ context.Context, s *api.Server) error {
		if err := command.EnsureKeySource(s.Seed, s.Config.Signer, nil); err != nil {
			return err
		}

		go func() {
			if err := s.Start(); err != nil {
				if errors.Is(err, http.ErrServerClosed) {
					log.Info().Msg("Server closed")
				} else {
					log.Fatal().Err(err).Msg("Failed to start server")
				}
			}
		}()

		log.Info().
			Str("listen_address", s.Config.Echo.ListenAddress).
			Str("approval_mode", string(s.Config.Signer.ApprovalMode)).
			Bool("key_source_initialized", s.Seed.IsInitialized()).
			Msg("Server started")

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if errs := s.Shutdown(ctx); len(errs) > 0 {
			log.Error().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
		}

		return nil
	})
}
