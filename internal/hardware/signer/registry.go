package signer

import (
	"github.com/pkg/errors"

	"github/vaultbridge/hw-wallet/internal/hardware"
)

// Registry resolves the signer implementation for a stored device type. The
// family mapping is the single place where device types meet signer variants;
// adding a device family means extending the switch below and nothing else.
type Registry struct {
	ledger *LedgerSigner
	trezor *TrezorSigner
	mock   *MockSigner
}

// NewRegistry creates a registry with one signer instance per family, all
// sharing the injected defaults.
func NewRegistry(cfg Config) *Registry {
	return &Registry{
		ledger: NewLedgerSigner(cfg),
		trezor: NewTrezorSigner(cfg),
		mock:   NewMockSigner(),
	}
}

// ForDeviceType returns the signer for the device type's family. Unknown
// device types are a programmer error and yield ErrUnsupportedDeviceType.
func (r *Registry) ForDeviceType(deviceType hardware.DeviceType) (ExternalSigner, error) {
	family, ok := deviceType.Family()
	if !ok {
		return nil, errors.Wrapf(hardware.ErrUnsupportedDeviceType, "no signer family for device type %q", deviceType)
	}

	switch family {
	case hardware.SignerFamilyLedger:
		return r.ledger, nil
	case hardware.SignerFamilyTrezor:
		return r.trezor, nil
	case hardware.SignerFamilyMock:
		return r.mock, nil
	default:
		return nil, errors.Wrapf(hardware.ErrUnsupportedDeviceType, "no signer family for device type %q", deviceType)
	}
}

// Mock exposes the shared mock signer instance for test configuration.
func (r *Registry) Mock() *MockSigner {
	return r.mock
}

// SupportedChains returns the chains available for a device type, or an empty
// set for unknown device types. This is a UI capability query and must not error.
func (r *Registry) SupportedChains(deviceType hardware.DeviceType) []hardware.Chain {
	s, err := r.ForDeviceType(deviceType)
	if err != nil {
		return []hardware.Chain{}
	}
	return s.SupportedChains()
}
