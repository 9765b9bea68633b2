package hardware

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Association is the durable binding of (user, device, chain, derivation path).
// Associations are soft-deleted: IsActive flips to false, the row stays.
type Association struct {
	ID              string
	UserID          string
	DeviceType      DeviceType
	DeviceID        string
	DeviceLabel     string
	FirmwareVersion string
	PublicKey       string
	Address         string
	Chain           Chain
	DerivationPath  string
	SupportedChains []Chain
	Metadata        map[string]string

	IsActive   bool
	IsVerified bool
	LastUsedAt null.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SupportsChain reports whether the physical device class behind this
// association claims support for the given chain.
func (a *Association) SupportsChain(chain Chain) bool {
	for _, c := range a.SupportedChains {
		if c == chain {
			return true
		}
	}
	return false
}
