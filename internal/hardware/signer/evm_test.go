package signer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/vaultbridge/hw-wallet/internal/hardware"
)

func uintPtr(v uint64) *uint64 { return &v }

func TestFormatNativeAmount(t *testing.T) {
	tests := []struct {
		value    string
		decimals int
		expected string
	}{
		{"1000000000000000000", 18, "1"},
		{"1500000000000000000", 18, "1.5"},
		{"1", 18, "0.000000000000000001"},
		{"0", 18, "0"},
		{"1234567890000000000", 18, "1.23456789"},
		{"150000000", 8, "1.5"},
		{"100000000", 8, "1"},
		{"1", 8, "0.00000001"},
	}

	for _, tc := range tests {
		got, err := formatNativeAmount(tc.value, tc.decimals)
		require.NoError(t, err, tc.value)
		assert.Equal(t, tc.expected, got, tc.value)
	}

	_, err := formatNativeAmount("not-a-number", 18)
	assert.Error(t, err)
}

func TestBuildUnsignedEVMPayloadLegacy(t *testing.T) {
	cfg := DefaultConfig()
	tx := &hardware.TransactionData{
		Chain:    hardware.ChainEthereum,
		To:       "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		Value:    "1000000000000000000",
		Nonce:    uintPtr(7),
		GasPrice: "2000000000",
	}

	payload, err := cfg.buildUnsignedEVMPayload(tx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(payload, "0x"))
	assert.False(t, strings.HasPrefix(payload, "0x02"), "legacy payload must not carry the typed tag")

	again, err := cfg.buildUnsignedEVMPayload(tx)
	require.NoError(t, err)
	assert.Equal(t, payload, again, "payload generation must be deterministic")
}

func TestBuildUnsignedEVMPayloadFeeMarket(t *testing.T) {
	cfg := DefaultConfig()
	tx := &hardware.TransactionData{
		Chain:                hardware.ChainEthereum,
		To:                   "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		Value:                "1000000000000000000",
		Nonce:                uintPtr(7),
		MaxFeePerGas:         "3000000000",
		MaxPriorityFeePerGas: "1000000000",
	}

	payload, err := cfg.buildUnsignedEVMPayload(tx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(payload, "0x02"), "fee-market payload carries the 0x02 type tag")
}

func TestBuildUnsignedEVMPayloadValueSensitivity(t *testing.T) {
	cfg := DefaultConfig()
	tx := &hardware.TransactionData{
		Chain:    hardware.ChainEthereum,
		To:       "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		Value:    "1000000000000000000",
		GasPrice: "2000000000",
	}

	first, err := cfg.buildUnsignedEVMPayload(tx)
	require.NoError(t, err)

	tx.Value = "1000000000000000001"
	second, err := cfg.buildUnsignedEVMPayload(tx)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "changing the value must change the payload")
}

func TestAssembleEVMTransaction(t *testing.T) {
	cfg := DefaultConfig()
	tx := &hardware.TransactionData{
		Chain:    hardware.ChainEthereum,
		To:       "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		Value:    "1000000000000000000",
		Nonce:    uintPtr(7),
		GasPrice: "2000000000",
	}

	comp, err := parseCompactSignature(compactSig("1b"))
	require.NoError(t, err)

	signed, err := cfg.assembleEVMTransaction(tx, comp)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(signed.RawTransaction, "0x"))
	assert.Len(t, signed.Hash, 66, "hash is a 0x-prefixed 32 byte digest")
	assert.Equal(t, *tx, signed.Transaction)

	again, err := cfg.assembleEVMTransaction(tx, comp)
	require.NoError(t, err)
	assert.Equal(t, signed.Hash, again.Hash, "assembly must be deterministic")
}

func TestAssembleEVMTransactionFeeMarket(t *testing.T) {
	cfg := DefaultConfig()
	tx := &hardware.TransactionData{
		Chain:                hardware.ChainPolygon,
		To:                   "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		Value:                "5000000000000000000",
		MaxFeePerGas:         "3000000000",
		MaxPriorityFeePerGas: "1000000000",
	}

	comp, err := parseCompactSignature(compactSig("00"))
	require.NoError(t, err)

	signed, err := cfg.assembleEVMTransaction(tx, comp)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(signed.RawTransaction, "0x02"), "typed transaction serialization keeps the tag")
}

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, int64(1), cfg.chainID(hardware.ChainEthereum))
	assert.Equal(t, int64(137), cfg.chainID(hardware.ChainPolygon))
	assert.Equal(t, int64(56), cfg.chainID(hardware.ChainBSC))
	assert.Equal(t, int64(1), cfg.chainID(hardware.Chain("unknown")), "unknown chains fall back to mainnet")

	tx := &hardware.TransactionData{}
	assert.Equal(t, uint64(21000), cfg.gasLimit(tx))
	assert.Equal(t, uint64(0), cfg.nonce(tx))

	tx.GasLimit = uintPtr(90000)
	tx.Nonce = uintPtr(12)
	assert.Equal(t, uint64(90000), cfg.gasLimit(tx))
	assert.Equal(t, uint64(12), cfg.nonce(tx))

	assert.Equal(t, "1000000000", cfg.defaultGasPrice(hardware.ChainEthereum).String())
}
