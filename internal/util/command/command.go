// Package command holds shared helpers for the cobra subcommands.
package command

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/config"
)

// NewSubcommandGroup returns a command that only exists to group its
// subcommands, printing usage when invoked bare.
func NewSubcommandGroup(name string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use: name,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Error().Err(err).Msg("Failed to print help")
			}
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// ServerFn runs against a fully initialized server.
type ServerFn func(ctx context.Context, s *api.Server) error

// WithServer initializes the server via wire, runs the closure and shuts the
// server down again. Used by one-shot commands that need the full component
// graph without serving HTTP.
func WithServer(ctx context.Context, cfg config.Server, fn ServerFn) error {
	s, err := api.InitNewServer(cfg)
	if err != nil {
		return err
	}

	defer func() {
		for _, err := range s.Shutdown(ctx) {
			log.Error().Err(err).Msg("Error during server shutdown")
		}
	}()

	return fn(ctx, s)
}
