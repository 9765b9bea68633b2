package signer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/vaultbridge/hw-wallet/internal/hardware"
)

func mockTx() *hardware.TransactionData {
	return &hardware.TransactionData{
		Chain: hardware.ChainEthereum,
		To:    "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		Value: "1000000000000000000",
	}
}

func TestMockPrepareDeterministic(t *testing.T) {
	s := NewMockSigner()
	tx := mockTx()

	first, err := s.PrepareForSigning(tx)
	require.NoError(t, err)
	assert.Equal(t, hardware.EncodingMock, first.Encoding)
	assert.Equal(t, "1 ETH", first.DisplayData["amount"])

	second, err := s.PrepareForSigning(tx)
	require.NoError(t, err)
	assert.Equal(t, first.RawData, second.RawData, "identical inputs yield identical payloads")
}

func TestMockConstructHashSensitivity(t *testing.T) {
	s := NewMockSigner()
	signature := strings.Repeat("ab", 32)
	publicKey := strings.Repeat("cd", 32)

	signed, err := s.ConstructSignedTransaction(mockTx(), signature, publicKey)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(signed.Hash, "0x"))

	again, err := s.ConstructSignedTransaction(mockTx(), signature, publicKey)
	require.NoError(t, err)
	assert.Equal(t, signed.Hash, again.Hash, "hash is deterministic for identical inputs")

	changed := mockTx()
	changed.Value = "2000000000000000000"
	other, err := s.ConstructSignedTransaction(changed, signature, publicKey)
	require.NoError(t, err)
	assert.NotEqual(t, signed.Hash, other.Hash, "hash must change with the transaction")
}

func TestMockValidateSignature(t *testing.T) {
	s := NewMockSigner()
	tx := mockTx()
	long := strings.Repeat("ab", 32)

	assert.True(t, s.ValidateSignature(tx, long, long))
	assert.False(t, s.ValidateSignature(tx, "short", long))
	assert.False(t, s.ValidateSignature(tx, long, "short"))
	assert.False(t, s.ValidateSignature(tx, "", ""))
}

func TestMockShouldFail(t *testing.T) {
	s := NewMockSigner()
	s.SetShouldFail(true)

	_, err := s.PrepareForSigning(mockTx())
	assert.Error(t, err)

	_, err = s.ConstructSignedTransaction(mockTx(), strings.Repeat("ab", 32), strings.Repeat("cd", 32))
	assert.Error(t, err)

	s.SetShouldFail(false)
	_, err = s.PrepareForSigning(mockTx())
	assert.NoError(t, err)
}

func TestMockRecordsCalls(t *testing.T) {
	s := NewMockSigner()
	tx := mockTx()

	_, err := s.PrepareForSigning(tx)
	require.NoError(t, err)
	s.ValidateSignature(tx, strings.Repeat("ab", 32), strings.Repeat("cd", 32))

	calls := s.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "PrepareForSigning", calls[0].Method)
	assert.Equal(t, "ValidateSignature", calls[1].Method)
	assert.Equal(t, tx.To, calls[0].To)
	assert.Equal(t, tx.Value, calls[0].Value)
}
