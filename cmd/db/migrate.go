package db

import (
	"database/sql"

	"github.com/rs/zerolog/log"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github/vaultbridge/hw-wallet/internal/config"

	_ "github.com/lib/pq"
)

const (
	pathFlag        = "path"
	defaultMigrPath = "/app/migrations"
)

func newMigrate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Executes all pending database migrations",
		Run: func(cmd *cobra.Command, _ []string) {
			applied, err := applyMigrations(viper.GetString(pathFlag))
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to apply migrations")
			}

			log.Info().Int("applied", applied).Msg("Finished applying migrations")
		},
	}

	cmd.Flags().String(pathFlag, defaultMigrPath, "Directory holding the SQL migration files")
	_ = viper.BindPFlag(pathFlag, cmd.Flags().Lookup(pathFlag))

	return cmd
}

func applyMigrations(path string) (int, error) {
	cfg := config.DefaultServiceConfigFromEnv()

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return 0, err
	}

	return migrate.Exec(db, "postgres", migrate.FileMigrationSource{Dir: path}, migrate.Up)
}
