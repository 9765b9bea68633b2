package signer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github/vaultbridge/hw-wallet/internal/hardware"
)

// utxoInput and utxoOutput form the simplified unsigned structure for the
// Bitcoin-like chain. Inputs are resolved upstream by the bridge; this layer
// only pins down the outputs the user confirms on the device.
type utxoInput struct {
	TxID string `json:"txid"`
	Vout uint32 `json:"vout"`
}

type utxoOutput struct {
	Address string `json:"address"`
	Value   string `json:"value"` // satoshi, decimal string
}

type utxoPayload struct {
	Inputs  []utxoInput  `json:"inputs"`
	Outputs []utxoOutput `json:"outputs"`
}

// buildUnsignedUTXOPayload builds the minimal one-output, zero-input payload.
func buildUnsignedUTXOPayload(tx *hardware.TransactionData) (string, error) {
	if _, err := parseAmount(tx.Value, "value"); err != nil {
		return "", err
	}

	payload := utxoPayload{
		Inputs: []utxoInput{},
		Outputs: []utxoOutput{
			{Address: tx.To, Value: tx.Value},
		},
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode utxo payload")
	}

	return hex.EncodeToString(encoded), nil
}

func utxoDisplayData(tx *hardware.TransactionData) (map[string]string, error) {
	symbol, decimals := nativeUnits(tx.Chain)
	amount, err := formatNativeAmount(tx.Value, decimals)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"chain":  string(tx.Chain),
		"to":     tx.To,
		"amount": fmt.Sprintf("%s %s", amount, symbol),
	}, nil
}

// assembleUTXOTransaction handles the protocol asymmetry of UTXO-style chains:
// the device bridge returns a complete signed raw transaction rather than a
// bare signature. The transaction id is the double SHA-256 of the raw bytes.
func assembleUTXOTransaction(tx *hardware.TransactionData, rawTransaction string) (*hardware.SignedTransaction, error) {
	trimmed := strings.TrimPrefix(rawTransaction, "0x")
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, errors.Wrap(hardware.ErrMalformedSignature, "raw transaction is not valid hex")
	}
	if len(raw) == 0 {
		return nil, errors.Wrap(hardware.ErrMalformedSignature, "raw transaction is empty")
	}

	first := sha256.Sum256(raw)
	second := sha256.Sum256(first[:])

	return &hardware.SignedTransaction{
		RawTransaction: trimmed,
		Hash:           hex.EncodeToString(second[:]),
		Transaction:    *tx,
	}, nil
}
