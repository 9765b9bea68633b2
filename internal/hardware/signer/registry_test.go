package signer

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/vaultbridge/hw-wallet/internal/hardware"
)

func TestRegistryForDeviceType(t *testing.T) {
	r := NewRegistry(DefaultConfig())

	tests := []struct {
		deviceType hardware.DeviceType
		expected   ExternalSigner
	}{
		{hardware.DeviceTypeLedgerNanoS, r.ledger},
		{hardware.DeviceTypeLedgerNanoX, r.ledger},
		{hardware.DeviceTypeTrezorOne, r.trezor},
		{hardware.DeviceTypeTrezorModelT, r.trezor},
		{hardware.DeviceTypeMock, r.mock},
	}

	for _, tc := range tests {
		s, err := r.ForDeviceType(tc.deviceType)
		require.NoError(t, err, string(tc.deviceType))
		assert.Same(t, tc.expected, s)
	}
}

func TestRegistryUnknownDeviceType(t *testing.T) {
	r := NewRegistry(DefaultConfig())

	_, err := r.ForDeviceType(hardware.DeviceType("keepkey"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, hardware.ErrUnsupportedDeviceType))
}

func TestRegistrySupportedChains(t *testing.T) {
	r := NewRegistry(DefaultConfig())

	chains := r.SupportedChains(hardware.DeviceTypeLedgerNanoX)
	assert.ElementsMatch(t, []hardware.Chain{
		hardware.ChainEthereum,
		hardware.ChainPolygon,
		hardware.ChainBSC,
		hardware.ChainBitcoin,
	}, chains)

	assert.Empty(t, r.SupportedChains(hardware.DeviceType("keepkey")), "unknown device types yield an empty set, not an error")
}
