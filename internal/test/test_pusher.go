package test

import (
	"testing"

	"github/vaultbridge/hw-wallet/internal/push"
	"github/vaultbridge/hw-wallet/internal/push/provider"
)

// WithTestPusher runs the closure with a push service backed by a recording
// mock provider.
func WithTestPusher(t *testing.T, closure func(p *push.Service, mock *provider.Mock)) {
	t.Helper()

	closure(NewTestPusher(t))
}

// NewTestPusher creates a push service with a single recording mock provider.
func NewTestPusher(t *testing.T) (*push.Service, *provider.Mock) {
	t.Helper()

	pushService := push.New()
	mockProvider := provider.NewMock()
	pushService.RegisterProvider(mockProvider)

	return pushService, mockProvider
}

// FindMockProvider returns the first registered mock provider, nil if none.
func FindMockProvider(p *push.Service) *provider.Mock {
	for _, registered := range p.GetProviders() {
		if mock, ok := registered.(*provider.Mock); ok {
			return mock
		}
	}

	return nil
}
