package probe

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/vaultbridge/hw-wallet/internal/config"
)

const probeTimeout = 5 * time.Second

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Checks whether the server process accepts connections",
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool(verboseFlag)

			if err := probeLiveness(cmd.Context(), verbose); err != nil {
				log.Fatal().Err(err).Msg("Liveness probe failed")
			}
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Prints the probe response body")

	return cmd
}

func probeLiveness(ctx context.Context, verbose bool) error {
	cfg := config.DefaultServiceConfigFromEnv()

	// the server binds 0.0.0.0, the probe dials loopback on the same port
	_, port, err := net.SplitHostPort(cfg.Echo.ListenAddress)
	if err != nil {
		return errors.Wrap(err, "failed to parse listen address")
	}

	return probeEndpoint(ctx, "http://127.0.0.1:"+port+"/-/healthy?mgmt-secret="+cfg.Management.Secret, verbose)
}

func probeEndpoint(ctx context.Context, url string, verbose bool) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if verbose {
		log.Info().Int("status", res.StatusCode).Str("body", string(body)).Str("url", url).Msg("Probe response")
	}

	if res.StatusCode != http.StatusOK {
		return errors.Errorf("probe of %s returned status %d", url, res.StatusCode)
	}

	return nil
}
