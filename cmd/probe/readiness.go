package probe

import (
	"context"
	"net"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/vaultbridge/hw-wallet/internal/config"
)

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Checks whether the server has all components initialized",
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool(verboseFlag)

			if err := probeReadiness(cmd.Context(), verbose); err != nil {
				log.Fatal().Err(err).Msg("Readiness probe failed")
			}
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Prints the probe response body")

	return cmd
}

func probeReadiness(ctx context.Context, verbose bool) error {
	cfg := config.DefaultServiceConfigFromEnv()

	_, port, err := net.SplitHostPort(cfg.Echo.ListenAddress)
	if err != nil {
		return errors.Wrap(err, "failed to parse listen address")
	}

	return probeEndpoint(ctx, "http://127.0.0.1:"+port+"/-/ready", verbose)
}
