package provider

import (
	"context"
	"sync"

	"github/vaultbridge/hw-wallet/internal/push"
)

// Mock records every event for test assertions.
type Mock struct {
	mu     sync.Mutex
	events []push.Event
	fail   error
}

// NewMock creates a recording mock provider.
func NewMock() *Mock {
	return &Mock{}
}

// GetProviderType implements push.Provider.
func (p *Mock) GetProviderType() push.ProviderType {
	return push.ProviderTypeMock
}

// Send implements push.Provider.
func (p *Mock) Send(_ context.Context, event push.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return p.fail
	}
	p.events = append(p.events, event)
	return nil
}

// SetError makes every subsequent Send fail with the given error.
func (p *Mock) SetError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = err
}

// Events returns a copy of all recorded events.
func (p *Mock) Events() []push.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]push.Event, len(p.events))
	copy(out, p.events)
	return out
}

// EventsOfType returns the recorded events matching the given type.
func (p *Mock) EventsOfType(eventType string) []push.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []push.Event
	for _, e := range p.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
