package provider

import (
	"context"

	"github/vaultbridge/hw-wallet/internal/push"
	"github/vaultbridge/hw-wallet/internal/util"
)

// Log writes events to the service log. Default provider for environments
// without a configured pub/sub mechanism.
type Log struct{}

// NewLog creates a log provider.
func NewLog() *Log {
	return &Log{}
}

// GetProviderType implements push.Provider.
func (p *Log) GetProviderType() push.ProviderType {
	return push.ProviderTypeLog
}

// Send implements push.Provider.
func (p *Log) Send(ctx context.Context, event push.Event) error {
	util.LogFromContext(ctx).Info().
		Str("event_id", event.ID).
		Str("event_type", event.Type).
		Interface("payload", event.Payload).
		Msg("Event published")
	return nil
}
