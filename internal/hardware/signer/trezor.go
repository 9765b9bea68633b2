package signer

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github/vaultbridge/hw-wallet/internal/hardware"
)

// TrezorSigner produces payloads for the Trezor device family. The Trezor
// bridge performs its own wire encoding, so EVM transactions travel as a
// hex-encoded JSON parameter envelope with field names preserved rather than
// as raw RLP. The Bitcoin-like chain uses the shared UTXO path.
type TrezorSigner struct {
	cfg Config
}

// NewTrezorSigner creates a Trezor family signer with the given defaults.
func NewTrezorSigner(cfg Config) *TrezorSigner {
	return &TrezorSigner{cfg: cfg}
}

// trezorTxEnvelope mirrors the semantic transaction shape as a parameter map
// for the device bridge.
type trezorTxEnvelope struct {
	To                   string `json:"to"`
	Value                string `json:"value"`
	Data                 string `json:"data,omitempty"`
	Nonce                uint64 `json:"nonce"`
	GasLimit             uint64 `json:"gasLimit"`
	GasPrice             string `json:"gasPrice,omitempty"`
	MaxFeePerGas         string `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas,omitempty"`
	ChainID              int64  `json:"chainId"`
}

// trezorSignatureObject is the structured signature return format some bridge
// versions produce in place of the compact hex layout.
type trezorSignatureObject struct {
	V json.Number `json:"v"`
	R string      `json:"r"`
	S string      `json:"s"`
}

// SupportedChains implements ExternalSigner.
func (s *TrezorSigner) SupportedChains() []hardware.Chain {
	return []hardware.Chain{hardware.ChainEthereum, hardware.ChainPolygon, hardware.ChainBSC, hardware.ChainBitcoin}
}

// SupportsChain implements ExternalSigner.
func (s *TrezorSigner) SupportsChain(chain hardware.Chain) bool {
	for _, c := range s.SupportedChains() {
		if c == chain {
			return true
		}
	}
	return false
}

// PrepareForSigning implements ExternalSigner.
func (s *TrezorSigner) PrepareForSigning(tx *hardware.TransactionData) (*Prepared, error) {
	if !s.SupportsChain(tx.Chain) {
		return nil, errors.Wrapf(hardware.ErrUnsupportedChain, "trezor family does not handle %q", tx.Chain)
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if !tx.Chain.IsEVM() {
		rawData, err := buildUnsignedUTXOPayload(tx)
		if err != nil {
			return nil, err
		}
		display, err := utxoDisplayData(tx)
		if err != nil {
			return nil, err
		}
		return &Prepared{RawData: rawData, DisplayData: display, Encoding: hardware.EncodingUTXO}, nil
	}

	fees, err := s.cfg.fees(tx)
	if err != nil {
		return nil, err
	}

	envelope := trezorTxEnvelope{
		To:       tx.To,
		Value:    tx.Value,
		Nonce:    s.cfg.nonce(tx),
		GasLimit: s.cfg.gasLimit(tx),
		ChainID:  s.cfg.chainID(tx.Chain),
	}
	if len(tx.Data) > 0 {
		envelope.Data = hex.EncodeToString(tx.Data)
	}
	if fees.FeeMarket {
		envelope.MaxFeePerGas = fees.MaxFeePerGas.String()
		envelope.MaxPriorityFeePerGas = fees.MaxPriorityFeePerGas.String()
	} else {
		envelope.GasPrice = fees.GasPrice.String()
	}

	encoded, err := json.Marshal(envelope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode trezor envelope")
	}

	display, err := s.cfg.evmDisplayData(tx)
	if err != nil {
		return nil, err
	}

	return &Prepared{
		RawData:     hex.EncodeToString(encoded),
		DisplayData: display,
		Encoding:    hardware.EncodingJSON,
	}, nil
}

// parseSignature normalizes both accepted return formats into the compact
// r/s/v components: the 130-hex-character layout, or a structured JSON object
// carrying v, r and s fields directly.
func (s *TrezorSigner) parseSignature(signature string) (*signatureComponents, error) {
	if strings.HasPrefix(strings.TrimSpace(signature), "{") {
		var obj trezorSignatureObject
		if err := json.Unmarshal([]byte(signature), &obj); err != nil {
			return nil, errors.Wrap(hardware.ErrMalformedSignature, "signature object is not valid JSON")
		}

		r, err := hex.DecodeString(strings.TrimPrefix(obj.R, "0x"))
		if err != nil || len(r) != 32 {
			return nil, errors.Wrap(hardware.ErrMalformedSignature, "invalid r component")
		}
		sComp, err := hex.DecodeString(strings.TrimPrefix(obj.S, "0x"))
		if err != nil || len(sComp) != 32 {
			return nil, errors.Wrap(hardware.ErrMalformedSignature, "invalid s component")
		}
		v, err := obj.V.Int64()
		if err != nil {
			return nil, errors.Wrap(hardware.ErrMalformedSignature, "invalid v component")
		}
		if v >= 27 {
			v -= 27
		}
		if v < 0 || v > 1 {
			return nil, errors.Wrapf(hardware.ErrMalformedSignature, "recovery id %s out of range", obj.V.String())
		}

		return &signatureComponents{R: r, S: sComp, V: byte(v)}, nil
	}

	return parseCompactSignature(signature)
}

// ValidateSignature implements ExternalSigner.
func (s *TrezorSigner) ValidateSignature(tx *hardware.TransactionData, signature, publicKey string) bool {
	if signature == "" || publicKey == "" {
		return false
	}

	if tx.Chain.IsEVM() {
		// accept both return formats before delegating to the verifier
		comp, err := s.parseSignature(signature)
		if err != nil {
			return false
		}
		compact := "0x" + hex.EncodeToString(comp.compact())
		return s.cfg.Verifier.Verify(tx, compact, publicKey) == nil
	}

	return s.cfg.Verifier.Verify(tx, signature, publicKey) == nil
}

// ConstructSignedTransaction implements ExternalSigner.
func (s *TrezorSigner) ConstructSignedTransaction(tx *hardware.TransactionData, signature, publicKey string) (*hardware.SignedTransaction, error) {
	if !s.SupportsChain(tx.Chain) {
		return nil, errors.Wrapf(hardware.ErrUnsupportedChain, "trezor family does not handle %q", tx.Chain)
	}

	if !tx.Chain.IsEVM() {
		return assembleUTXOTransaction(tx, signature)
	}

	comp, err := s.parseSignature(signature)
	if err != nil {
		return nil, err
	}
	return s.cfg.assembleEVMTransaction(tx, comp)
}

// DerivationPath implements ExternalSigner.
func (s *TrezorSigner) DerivationPath(chain hardware.Chain, accountIndex int) string {
	coinType := 60
	if !chain.IsEVM() {
		coinType = 0
	}
	return fmt.Sprintf("m/44'/%d'/0'/0/%d", coinType, accountIndex)
}

// ConfirmationSteps implements ExternalSigner.
func (s *TrezorSigner) ConfirmationSteps() []string {
	return []string{
		"Connect your Trezor device",
		"Enter your PIN on the device or host, depending on model",
		"Check the transaction details on the device display",
		"Confirm the transaction by holding the button",
	}
}
