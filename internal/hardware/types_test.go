package hardware_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/vaultbridge/hw-wallet/internal/hardware"
)

func TestChainIsEVM(t *testing.T) {
	assert.True(t, hardware.ChainEthereum.IsEVM())
	assert.True(t, hardware.ChainPolygon.IsEVM())
	assert.True(t, hardware.ChainBSC.IsEVM())
	assert.False(t, hardware.ChainBitcoin.IsEVM())
	assert.False(t, hardware.Chain("solana").IsEVM())
}

func TestDeviceTypeFamily(t *testing.T) {
	tests := []struct {
		deviceType hardware.DeviceType
		family     hardware.SignerFamily
	}{
		{hardware.DeviceTypeLedgerNanoS, hardware.SignerFamilyLedger},
		{hardware.DeviceTypeLedgerNanoX, hardware.SignerFamilyLedger},
		{hardware.DeviceTypeTrezorOne, hardware.SignerFamilyTrezor},
		{hardware.DeviceTypeTrezorModelT, hardware.SignerFamilyTrezor},
		{hardware.DeviceTypeMock, hardware.SignerFamilyMock},
	}

	for _, tc := range tests {
		family, ok := tc.deviceType.Family()
		require.True(t, ok, string(tc.deviceType))
		assert.Equal(t, tc.family, family)
	}

	_, ok := hardware.DeviceType("keepkey").Family()
	assert.False(t, ok)
}

func TestTransactionDataValidate(t *testing.T) {
	base := hardware.TransactionData{
		Chain: hardware.ChainEthereum,
		To:    "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		Value: "1000000000000000000",
	}

	t.Run("legacy pricing", func(t *testing.T) {
		tx := base
		tx.GasPrice = "2000000000"
		assert.NoError(t, tx.Validate())
	})

	t.Run("fee market pair", func(t *testing.T) {
		tx := base
		tx.MaxFeePerGas = "3000000000"
		tx.MaxPriorityFeePerGas = "1000000000"
		assert.NoError(t, tx.Validate())
	})

	t.Run("mixed pricing rejected", func(t *testing.T) {
		tx := base
		tx.GasPrice = "2000000000"
		tx.MaxFeePerGas = "3000000000"
		tx.MaxPriorityFeePerGas = "1000000000"
		assert.Error(t, tx.Validate())
	})

	t.Run("partial fee market pair rejected", func(t *testing.T) {
		tx := base
		tx.MaxFeePerGas = "3000000000"
		assert.Error(t, tx.Validate())

		tx = base
		tx.MaxPriorityFeePerGas = "1000000000"
		assert.Error(t, tx.Validate())
	})

	t.Run("bitcoin skips gas invariant", func(t *testing.T) {
		tx := hardware.TransactionData{
			Chain: hardware.ChainBitcoin,
			To:    "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh",
			Value: "150000000",
		}
		assert.NoError(t, tx.Validate())
	})

	t.Run("missing recipient or value", func(t *testing.T) {
		tx := base
		tx.To = ""
		assert.Error(t, tx.Validate())

		tx = base
		tx.Value = ""
		assert.Error(t, tx.Validate())
	})
}

func TestAssociationSupportsChain(t *testing.T) {
	association := &hardware.Association{
		SupportedChains: []hardware.Chain{hardware.ChainEthereum, hardware.ChainBitcoin},
	}

	assert.True(t, association.SupportsChain(hardware.ChainEthereum))
	assert.True(t, association.SupportsChain(hardware.ChainBitcoin))
	assert.False(t, association.SupportsChain(hardware.ChainPolygon))
}
