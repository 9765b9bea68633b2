package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Service holds the prometheus collectors of the signing subsystem.
type Service struct {
	AssociationsRegistered prometheus.Counter
	SigningRequestsCreated prometheus.Counter
	SigningCompleted       *prometheus.CounterVec
	SigningExpired         prometheus.Counter
	SigningCancelled       prometheus.Counter
}

// New registers and returns the subsystem collectors on the default registry.
func New() *Service {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the collectors on the given registerer; tests use
// a fresh registry to avoid duplicate registration across instances.
func NewWithRegisterer(reg prometheus.Registerer) *Service {
	factory := promauto.With(reg)
	return &Service{
		AssociationsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "hw_wallet_associations_registered_total",
			Help: "Number of hardware wallet associations registered.",
		}),
		SigningRequestsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "hw_wallet_signing_requests_created_total",
			Help: "Number of signing requests created.",
		}),
		SigningCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hw_wallet_signing_completed_total",
			Help: "Number of signature submissions finished, by outcome.",
		}, []string{"success"}),
		SigningExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "hw_wallet_signing_requests_expired_total",
			Help: "Number of signing requests swept into expired state.",
		}),
		SigningCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "hw_wallet_signing_requests_cancelled_total",
			Help: "Number of signing requests cancelled.",
		}),
	}
}
