package signer

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/vaultbridge/hw-wallet/internal/hardware"
)

func TestLedgerPrepareEVM(t *testing.T) {
	s := NewLedgerSigner(DefaultConfig())
	tx := &hardware.TransactionData{
		Chain:    hardware.ChainEthereum,
		From:     "0x3535353535353535353535353535353535353535",
		To:       "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		Value:    "1500000000000000000",
		GasPrice: "2000000000",
	}

	prepared, err := s.PrepareForSigning(tx)
	require.NoError(t, err)

	assert.Equal(t, hardware.EncodingRLP, prepared.Encoding)
	assert.True(t, strings.HasPrefix(prepared.RawData, "0x"))
	assert.Equal(t, "1.5 ETH", prepared.DisplayData["amount"])
	assert.Equal(t, tx.To, prepared.DisplayData["to"])
	assert.Equal(t, "2000000000", prepared.DisplayData["gasPrice"])

	again, err := s.PrepareForSigning(tx)
	require.NoError(t, err)
	assert.Equal(t, prepared.RawData, again.RawData, "preparation must be deterministic")
}

func TestLedgerPrepareBitcoin(t *testing.T) {
	s := NewLedgerSigner(DefaultConfig())
	tx := &hardware.TransactionData{
		Chain: hardware.ChainBitcoin,
		To:    "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh",
		Value: "150000000",
	}

	prepared, err := s.PrepareForSigning(tx)
	require.NoError(t, err)
	assert.Equal(t, hardware.EncodingUTXO, prepared.Encoding)
	assert.Equal(t, "1.5 BTC", prepared.DisplayData["amount"])

	decoded, err := hex.DecodeString(prepared.RawData)
	require.NoError(t, err)

	var payload utxoPayload
	require.NoError(t, json.Unmarshal(decoded, &payload))
	assert.Empty(t, payload.Inputs)
	require.Len(t, payload.Outputs, 1)
	assert.Equal(t, tx.To, payload.Outputs[0].Address)
	assert.Equal(t, tx.Value, payload.Outputs[0].Value)
}

func TestLedgerPrepareUnsupportedChain(t *testing.T) {
	s := NewLedgerSigner(DefaultConfig())
	tx := &hardware.TransactionData{Chain: hardware.Chain("solana"), To: "x", Value: "1"}

	_, err := s.PrepareForSigning(tx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, hardware.ErrUnsupportedChain))
}

func TestLedgerPrepareInvalidTransaction(t *testing.T) {
	s := NewLedgerSigner(DefaultConfig())
	tx := &hardware.TransactionData{
		Chain:        hardware.ChainEthereum,
		To:           "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		Value:        "1",
		GasPrice:     "1",
		MaxFeePerGas: "1",
	}

	_, err := s.PrepareForSigning(tx)
	assert.Error(t, err)
}

func TestLedgerValidateSignature(t *testing.T) {
	s := NewLedgerSigner(DefaultConfig())
	tx := &hardware.TransactionData{Chain: hardware.ChainEthereum, To: "0x1", Value: "1"}
	publicKey := strings.Repeat("04", 33)

	assert.True(t, s.ValidateSignature(tx, compactSig("1b"), publicKey))
	assert.False(t, s.ValidateSignature(tx, "", publicKey))
	assert.False(t, s.ValidateSignature(tx, compactSig("1b"), ""))
	assert.False(t, s.ValidateSignature(tx, "0xdead", publicKey))
}

func TestLedgerConstructSignedTransaction(t *testing.T) {
	s := NewLedgerSigner(DefaultConfig())
	tx := &hardware.TransactionData{
		Chain:    hardware.ChainEthereum,
		To:       "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		Value:    "1000000000000000000",
		GasPrice: "2000000000",
	}

	signed, err := s.ConstructSignedTransaction(tx, compactSig("1b"), strings.Repeat("04", 33))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(signed.RawTransaction, "0x"))
	assert.Len(t, signed.Hash, 66)

	_, err = s.ConstructSignedTransaction(tx, "0xdead", strings.Repeat("04", 33))
	require.Error(t, err)
	assert.True(t, errors.Is(err, hardware.ErrMalformedSignature))
}

func TestLedgerConstructBitcoin(t *testing.T) {
	s := NewLedgerSigner(DefaultConfig())
	tx := &hardware.TransactionData{
		Chain: hardware.ChainBitcoin,
		To:    "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh",
		Value: "150000000",
	}

	// the device bridge returns a complete raw transaction for UTXO chains
	raw := "0100000001abcdef"
	signed, err := s.ConstructSignedTransaction(tx, raw, strings.Repeat("04", 33))
	require.NoError(t, err)
	assert.Equal(t, raw, signed.RawTransaction)
	assert.Len(t, signed.Hash, 64, "txid is the hex double sha256 of the raw bytes")

	_, err = s.ConstructSignedTransaction(tx, "not-hex", strings.Repeat("04", 33))
	require.Error(t, err)
	assert.True(t, errors.Is(err, hardware.ErrMalformedSignature))

	_, err = s.ConstructSignedTransaction(tx, "", strings.Repeat("04", 33))
	require.Error(t, err)
	assert.True(t, errors.Is(err, hardware.ErrMalformedSignature))
}

func TestLedgerDerivationPath(t *testing.T) {
	s := NewLedgerSigner(DefaultConfig())

	assert.Equal(t, "m/44'/60'/0'/0/0", s.DerivationPath(hardware.ChainEthereum, 0))
	assert.Equal(t, "m/44'/60'/0'/0/3", s.DerivationPath(hardware.ChainPolygon, 3))
	assert.Equal(t, "m/44'/0'/0'/0/0", s.DerivationPath(hardware.ChainBitcoin, 0))
}

func TestLedgerConfirmationSteps(t *testing.T) {
	s := NewLedgerSigner(DefaultConfig())
	steps := s.ConfirmationSteps()
	require.NotEmpty(t, steps)
	assert.Contains(t, steps[0], "Ledger")
}
