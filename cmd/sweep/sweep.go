// Package sweep implements the expiry sweeper command driving overdue open
// signing requests into the expired state.
package sweep

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/config"
	"github/vaultbridge/hw-wallet/internal/util/command"
)

const (
	intervalFlag = "interval"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Expires overdue signing requests",
		Long: `Runs the signing request expiry sweep.
With --interval 0 the sweep runs once and exits, otherwise it keeps
sweeping on the given interval until terminated.`,
		Run: func(cmd *cobra.Command, _ []string) {
			runSweep(cmd.Context())
		},
	}

	cmd.Flags().Duration(intervalFlag, 0, "Sweep interval; 0 runs a single sweep")
	_ = viper.BindPFlag(intervalFlag, cmd.Flags().Lookup(intervalFlag))

	return cmd
}

func runSweep(ctx context.Context) {
	cfg := config.DefaultServiceConfigFromEnv()
	interval := viper.GetDuration(intervalFlag)

	err := command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
		if interval <= 0 {
			return sweepOnce(ctx, s)
		}

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if err := sweepOnce(ctx, s); err != nil {
				log.Error().Err(err).Msg("Sweep run failed")
			}

			select {
			case <-ticker.C:
			case <-stop:
				log.Info().Msg("Sweeper stopped")
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to run sweep")
	}
}

func sweepOnce(ctx context.Context, s *api.Server) error {
	count, err := s.Hardware.ExpireOldRequests(ctx)
	if err != nil {
		return err
	}

	log.Info().Int("expired", count).Msg("Sweep finished")

	return nil
}
