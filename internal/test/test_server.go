package test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/prometheus/client_golang/prometheus"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/api/router"
	"github/vaultbridge/hw-wallet/internal/config"
	"github/vaultbridge/hw-wallet/internal/hardware/manager"
	"github/vaultbridge/hw-wallet/internal/hardware/memstore"
	"github/vaultbridge/hw-wallet/internal/hardware/signer"
	"github/vaultbridge/hw-wallet/internal/metrics"
	"github/vaultbridge/hw-wallet/internal/push"
	"github/vaultbridge/hw-wallet/internal/push/provider"
)

// DefaultTestConfig returns the server config used by WithTestServer, tuned
// for fast deterministic tests.
func DefaultTestConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()

	cfg.Echo.ListenAddress = ":0"
	cfg.Echo.EnableLoggerMiddleware = false
	cfg.Push.UseMockProvider = true
	cfg.Push.UseLogProvider = false
	cfg.Management.Secret = "test-mgmt-secret"

	return cfg
}

// WithTestServer runs the closure against a fully routed server backed by the
// in-memory store, a mock push provider, a mock clock and an isolated metrics
// registry. No database is required.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, DefaultTestConfig(), closure)
}

// WithTestServerConfigurable is WithTestServer with a caller-supplied config.
func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server)) {
	t.Helper()

	s := NewTestServer(t, cfg)
	closure(s)
}

// NewTestServer assembles the server by hand instead of through wire, swapping
// the postgres store for the in-memory one.
func NewTestServer(t *testing.T, cfg config.Server) *api.Server {
	t.Helper()

	clock := time2.NewMockClock(time.Now())
	store := memstore.New()
	registry := signer.NewRegistry(signer.ConfigFromServer(cfg.HardwareWallet))
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())

	pusher := push.New()
	pusher.RegisterProvider(provider.NewMock())

	// sql.Open is lazy, the handle satisfies readiness without a live postgres
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		t.Fatalf("failed to open database handle: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	s := &api.Server{
		Config:   cfg,
		DB:       db,
		Push:     pusher,
		Clock:    clock,
		Metrics:  m,
		Store:    store,
		Registry: registry,
		Hardware: manager.NewService(cfg.HardwareWallet, store, registry, pusher, m, clock),
	}

	router.Init(s)

	return s
}

// MockClock returns the server's clock as a mock clock, failing the test if
// the server was not built by NewTestServer.
func MockClock(t *testing.T, s *api.Server) *time2.MockClock {
	t.Helper()

	clock, ok := s.Clock.(*time2.MockClock)
	if !ok {
		t.Fatalf("server clock is %T, not a mock clock", s.Clock)
	}

	return clock
}

// MockPushProvider returns the server's recording push provider, failing the
// test if none is registered.
func MockPushProvider(t *testing.T, s *api.Server) *provider.Mock {
	t.Helper()

	mock := FindMockProvider(s.Push)
	if mock == nil {
		t.Fatal("server push service has no mock provider registered")
	}

	return mock
}
