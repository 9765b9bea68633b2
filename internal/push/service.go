package push

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github/vaultbridge/hw-wallet/internal/util"
)

// ProviderType identifies a notification delivery mechanism.
type ProviderType string

const (
	ProviderTypeMock ProviderType = "mock"
	ProviderTypeLog  ProviderType = "log"
)

// Event is one lifecycle notification handed to the pub/sub boundary.
type Event struct {
	ID      string      `json:"id"`
	Type    string      `json:"type"`
	Time    time.Time   `json:"time"`
	Payload interface{} `json:"payload"`
}

// Provider delivers events to one external mechanism.
type Provider interface {
	GetProviderType() ProviderType
	Send(ctx context.Context, event Event) error
}

// Service fans lifecycle events out to the registered providers. Delivery
// failures are logged and swallowed: event delivery is explicitly not the
// concern of the emitting subsystem.
type Service struct {
	providers []Provider
}

// New creates an empty push service; register providers before use.
func New() *Service {
	return &Service{}
}

// RegisterProvider adds a delivery provider.
func (s *Service) RegisterProvider(p Provider) {
	s.providers = append(s.providers, p)
}

// GetProviderCount returns the number of registered providers.
func (s *Service) GetProviderCount() int {
	return len(s.providers)
}

// GetProviders returns the registered providers.
func (s *Service) GetProviders() []Provider {
	return s.providers
}

// Publish delivers the payload as an event of the given type to all providers.
func (s *Service) Publish(ctx context.Context, eventType string, payload interface{}) {
	event := Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Time:    time.Now(),
		Payload: payload,
	}

	log := util.LogFromContext(ctx)
	for _, p := range s.providers {
		if err := p.Send(ctx, event); err != nil {
			log.Warn().
				Err(err).
				Str("provider", string(p.GetProviderType())).
				Str("event_type", eventType).
				Msg("Failed to deliver event")
		}
	}
}
