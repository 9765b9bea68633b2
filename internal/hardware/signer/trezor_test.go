package signer

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/vaultbridge/hw-wallet/internal/hardware"
)

func TestTrezorPrepareEVM(t *testing.T) {
	s := NewTrezorSigner(DefaultConfig())
	tx := &hardware.TransactionData{
		Chain: hardware.ChainEthereum,
		To:    "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		Value: "1000000000000000000",
		Nonce: uintPtr(5),
	}

	prepared, err := s.PrepareForSigning(tx)
	require.NoError(t, err)
	assert.Equal(t, hardware.EncodingJSON, prepared.Encoding)

	decoded, err := hex.DecodeString(prepared.RawData)
	require.NoError(t, err)

	var envelope trezorTxEnvelope
	require.NoError(t, json.Unmarshal(decoded, &envelope))
	assert.Equal(t, tx.To, envelope.To)
	assert.Equal(t, tx.Value, envelope.Value)
	assert.Equal(t, uint64(5), envelope.Nonce)
	assert.Equal(t, uint64(21000), envelope.GasLimit, "gas limit defaults when absent")
	assert.Equal(t, "1000000000", envelope.GasPrice, "gas price defaults to 1 gwei")
	assert.Equal(t, int64(1), envelope.ChainID)
	assert.Empty(t, envelope.MaxFeePerGas)
}

func TestTrezorPrepareEVMFeeMarket(t *testing.T) {
	s := NewTrezorSigner(DefaultConfig())
	tx := &hardware.TransactionData{
		Chain:                hardware.ChainPolygon,
		To:                   "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		Value:                "1000000000000000000",
		MaxFeePerGas:         "3000000000",
		MaxPriorityFeePerGas: "1000000000",
	}

	prepared, err := s.PrepareForSigning(tx)
	require.NoError(t, err)

	decoded, err := hex.DecodeString(prepared.RawData)
	require.NoError(t, err)

	var envelope trezorTxEnvelope
	require.NoError(t, json.Unmarshal(decoded, &envelope))
	assert.Equal(t, "3000000000", envelope.MaxFeePerGas)
	assert.Equal(t, "1000000000", envelope.MaxPriorityFeePerGas)
	assert.Empty(t, envelope.GasPrice)
	assert.Equal(t, int64(137), envelope.ChainID)
}

func TestTrezorPrepareBitcoin(t *testing.T) {
	s := NewTrezorSigner(DefaultConfig())
	tx := &hardware.TransactionData{
		Chain: hardware.ChainBitcoin,
		To:    "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh",
		Value: "100000000",
	}

	prepared, err := s.PrepareForSigning(tx)
	require.NoError(t, err)
	assert.Equal(t, hardware.EncodingUTXO, prepared.Encoding)
	assert.Equal(t, "1 BTC", prepared.DisplayData["amount"])
}

func TestTrezorParseSignatureObject(t *testing.T) {
	s := NewTrezorSigner(DefaultConfig())

	r := strings.Repeat("11", 32)
	sComp := strings.Repeat("22", 32)
	obj := fmt.Sprintf(`{"v": 28, "r": "0x%s", "s": "0x%s"}`, r, sComp)

	comp, err := s.parseSignature(obj)
	require.NoError(t, err)
	assert.Equal(t, byte(1), comp.V)
	assert.Equal(t, r, hex.EncodeToString(comp.R))
	assert.Equal(t, sComp, hex.EncodeToString(comp.S))
}

func TestTrezorParseSignatureObjectMalformed(t *testing.T) {
	s := NewTrezorSigner(DefaultConfig())

	tests := []string{
		`{"v": 28, "r": "0xshort", "s": "0x22"}`,
		`{"v": "not-a-number", "r": "0x11", "s": "0x22"}`,
		`{not json`,
		fmt.Sprintf(`{"v": 35, "r": "0x%s", "s": "0x%s"}`, strings.Repeat("11", 32), strings.Repeat("22", 32)),
	}

	for _, sig := range tests {
		_, err := s.parseSignature(sig)
		require.Error(t, err, sig)
		assert.True(t, errors.Is(err, hardware.ErrMalformedSignature), sig)
	}
}

func TestTrezorSignatureFormatsAgree(t *testing.T) {
	s := NewTrezorSigner(DefaultConfig())
	tx := &hardware.TransactionData{
		Chain:    hardware.ChainEthereum,
		To:       "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		Value:    "1000000000000000000",
		GasPrice: "2000000000",
	}
	publicKey := strings.Repeat("04", 33)

	r := strings.Repeat("11", 32)
	sComp := strings.Repeat("22", 32)
	object := fmt.Sprintf(`{"v": 27, "r": "0x%s", "s": "0x%s"}`, r, sComp)
	compact := "0x" + r + sComp + "1b"

	assert.True(t, s.ValidateSignature(tx, object, publicKey))
	assert.True(t, s.ValidateSignature(tx, compact, publicKey))

	fromObject, err := s.ConstructSignedTransaction(tx, object, publicKey)
	require.NoError(t, err)
	fromCompact, err := s.ConstructSignedTransaction(tx, compact, publicKey)
	require.NoError(t, err)

	assert.Equal(t, fromCompact.RawTransaction, fromObject.RawTransaction, "both return formats must assemble identically")
	assert.Equal(t, fromCompact.Hash, fromObject.Hash)
}

func TestTrezorValidateSignatureRejectsEmpty(t *testing.T) {
	s := NewTrezorSigner(DefaultConfig())
	tx := &hardware.TransactionData{Chain: hardware.ChainEthereum, To: "0x1", Value: "1"}

	assert.False(t, s.ValidateSignature(tx, "", strings.Repeat("04", 33)))
	assert.False(t, s.ValidateSignature(tx, compactSig("1b"), ""))
	assert.False(t, s.ValidateSignature(tx, `{broken`, strings.Repeat("04", 33)))
}

func TestTrezorConstructUnsupportedChain(t *testing.T) {
	s := NewTrezorSigner(DefaultConfig())
	tx := &hardware.TransactionData{Chain: hardware.Chain("solana"), To: "x", Value: "1"}

	_, err := s.ConstructSignedTransaction(tx, compactSig("1b"), "04")
	require.Error(t, err)
	assert.True(t, errors.Is(err, hardware.ErrUnsupportedChain))
}
