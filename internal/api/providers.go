package api

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dlmiddlecote/sqlstats"
	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github/vaultbridge/hw-wallet/internal/config"
	"github/vaultbridge/hw-wallet/internal/hardware"
	"github/vaultbridge/hw-wallet/internal/hardware/manager"
	"github/vaultbridge/hw-wallet/internal/hardware/pgstore"
	"github/vaultbridge/hw-wallet/internal/hardware/signer"
	"github/vaultbridge/hw-wallet/internal/metrics"
	"github/vaultbridge/hw-wallet/internal/push"
	"github/vaultbridge/hw-wallet/internal/push/provider"
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic dependency) can't live in their corresponding packages
// or for wrapping providers that only accept sub-configs to prevent the requirements for defining providers for sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

// NewPush creates an instance of the push service and registers the configured providers.
func NewPush(cfg config.Server) *push.Service {
	pusher := push.New()

	if cfg.Push.UseMockProvider {
		log.Warn().Msg("Initializing mock push provider")
		pusher.RegisterProvider(provider.NewMock())
	}

	if cfg.Push.UseLogProvider {
		pusher.RegisterProvider(provider.NewLog())
	}

	if pusher.GetProviderCount() < 1 {
		log.Warn().Msg("No providers registered for push service")
	}

	return pusher
}

func NewClock(t ...*testing.T) time2.Clock {
	var clock time2.Clock

	useMock := len(t) > 0 && t[0] != nil

	if useMock {
		clock = time2.NewMockClock(time.Now())
	} else {
		clock = time2.DefaultClock
	}

	return clock
}

// NewDB opens the postgres connection pool and registers its stats collector.
func NewDB(cfg config.Server) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	collector := sqlstats.NewStatsCollector(cfg.Database.Database, db)
	if err := prometheus.Register(collector); err != nil {
		// duplicate registration only happens on re-init, keep the first collector
		if !errors.As(err, &prometheus.AlreadyRegisteredError{}) {
			log.Warn().Err(err).Msg("Failed to register database stats collector")
		}
	}

	return db, nil
}

func NewHardwareStore(db *sql.DB, clock time2.Clock) hardware.Store {
	return pgstore.New(db, clock)
}

func NewSignerRegistry(cfg config.Server) *signer.Registry {
	return signer.NewRegistry(signer.ConfigFromServer(cfg.HardwareWallet))
}

func NewHardwareManager(
	cfg config.Server,
	store hardware.Store,
	registry *signer.Registry,
	pusher *push.Service,
	m *metrics.Service,
	clock time2.Clock,
) HardwareService {
	return manager.NewService(cfg.HardwareWallet, store, registry, pusher, m, clock)
}

func NoTest() []*testing.T {
	return nil
}
