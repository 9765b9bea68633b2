package signer

import (
	"fmt"

	"github.com/pkg/errors"

	"github/vaultbridge/hw-wallet/internal/hardware"
)

// LedgerSigner produces payloads for the Ledger device family. EVM chains are
// encoded as raw RLP (the Ledger Ethereum app signs the serialized unsigned
// transaction directly); the Bitcoin-like chain uses the shared UTXO path.
type LedgerSigner struct {
	cfg Config
}

// NewLedgerSigner creates a Ledger family signer with the given defaults.
func NewLedgerSigner(cfg Config) *LedgerSigner {
	return &LedgerSigner{cfg: cfg}
}

// SupportedChains implements ExternalSigner.
func (s *LedgerSigner) SupportedChains() []hardware.Chain {
	return []hardware.Chain{hardware.ChainEthereum, hardware.ChainPolygon, hardware.ChainBSC, hardware.ChainBitcoin}
}

// SupportsChain implements ExternalSigner.
func (s *LedgerSigner) SupportsChain(chain hardware.Chain) bool {
	for _, c := range s.SupportedChains() {
		if c == chain {
			return true
		}
	}
	return false
}

// PrepareForSigning implements ExternalSigner.
func (s *LedgerSigner) PrepareForSigning(tx *hardware.TransactionData) (*Prepared, error) {
	if !s.SupportsChain(tx.Chain) {
		return nil, errors.Wrapf(hardware.ErrUnsupportedChain, "ledger family does not handle %q", tx.Chain)
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if tx.Chain.IsEVM() {
		rawData, err := s.cfg.buildUnsignedEVMPayload(tx)
		if err != nil {
			return nil, err
		}
		display, err := s.cfg.evmDisplayData(tx)
		if err != nil {
			return nil, err
		}
		return &Prepared{RawData: rawData, DisplayData: display, Encoding: hardware.EncodingRLP}, nil
	}

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

// ValidateSignature implements ExternalSigner.
func (s *LedgerSigner) ValidateSignature(tx *hardware.TransactionData, signature, publicKey string) bool {
	if signature == "" || publicKey == "" {
		return false
	}
	return s.cfg.Verifier.Verify(tx, signature, publicKey) == nil
}

// ConstructSignedTransaction implements ExternalSigner.
func (s *LedgerSigner) ConstructSignedTransaction(tx *hardware.TransactionData, signature, publicKey string) (*hardware.SignedTransaction, error) {
	if !s.SupportsChain(tx.Chain) {
		return nil, errors.Wrapf(hardware.ErrUnsupportedChain, "ledger family does not handle %q", tx.Chain)
	}

	if !tx.Chain.IsEVM() {
		return assembleUTXOTransaction(tx, signature)
	}

	comp, err := parseCompactSignature(signature)
	if err != nil {
		return nil, err
	}
	return s.cfg.assembleEVMTransaction(tx, comp)
}

// DerivationPath implements ExternalSigner.
func (s *LedgerSigner) DerivationPath(chain hardware.Chain, accountIndex int) string {
	coinType := 60
	if !chain.IsEVM() {
		coinType = 0
	}
	return fmt.Sprintf("m/44'/%d'/0'/0/%d", coinType, accountIndex)
}

// ConfirmationSteps implements ExternalSigner.
func (s *LedgerSigner) ConfirmationSteps() []string {
	return []string{
		"Connect your Ledger device and unlock it with your PIN",
		"Open the app for the selected chain on the device",
		"Review the recipient address and amount on the device screen",
		"Press both buttons to approve the transaction",
	}
}
