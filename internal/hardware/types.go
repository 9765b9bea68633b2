package hardware

import (
	"github.com/pkg/errors"
)

// Chain identifies a blockchain a transaction is destined for.
type Chain string

const (
	ChainEthereum Chain = "ethereum"
	ChainPolygon  Chain = "polygon"
	ChainBSC      Chain = "bsc"
	ChainBitcoin  Chain = "bitcoin"
)

// IsEVM reports whether the chain uses the account/balance EVM transaction model.
func (c Chain) IsEVM() bool {
	switch c {
	case ChainEthereum, ChainPolygon, ChainBSC:
		return true
	case ChainBitcoin:
		return false
	default:
		return false
	}
}

// DeviceType enumerates the supported hardware device models.
type DeviceType string

const (
	DeviceTypeLedgerNanoS  DeviceType = "ledger_nano_s"
	DeviceTypeLedgerNanoX  DeviceType = "ledger_nano_x"
	DeviceTypeTrezorOne    DeviceType = "trezor_one"
	DeviceTypeTrezorModelT DeviceType = "trezor_model_t"
	DeviceTypeMock         DeviceType = "mock"
)

// SignerFamily is the closed set of signer implementations a device type maps to.
type SignerFamily string

const (
	SignerFamilyLedger SignerFamily = "ledger"
	SignerFamilyTrezor SignerFamily = "trezor"
	SignerFamilyMock   SignerFamily = "mock"
)

// Family maps a device type to its signer family. The bool result is false for
// unknown device types so callers can distinguish a programmer error from a
// valid mapping.
func (d DeviceType) Family() (SignerFamily, bool) {
	switch d {
	case DeviceTypeLedgerNanoS, DeviceTypeLedgerNanoX:
		return SignerFamilyLedger, true
	case DeviceTypeTrezorOne, DeviceTypeTrezorModelT:
		return SignerFamilyTrezor, true
	case DeviceTypeMock:
		return SignerFamilyMock, true
	default:
		return "", false
	}
}

// Encoding describes the wire format of the payload a device is asked to sign.
type Encoding string

const (
	EncodingRLP  Encoding = "rlp"
	EncodingJSON Encoding = "json"
	EncodingUTXO Encoding = "utxo"
	EncodingMock Encoding = "mock"
)

// TransactionData is the immutable description of an unsigned transaction.
// Numeric amounts are decimal strings in the chain's smallest unit to avoid
// precision loss.
type TransactionData struct {
	Chain Chain
	From  string
	To    string
	Value string
	Data  []byte

	// Nonce and GasLimit are optional; nil means "defaulted by the signer".
	Nonce    *uint64
	GasLimit *uint64

	// Legacy gas pricing. Mutually exclusive with the fee-market pair below.
	GasPrice string

	// EIP-1559 fee-market pricing. Both must be set together.
	MaxFeePerGas         string
	MaxPriorityFeePerGas string
}

// HasFeeMarketFields reports whether the EIP-1559 pair is present.
func (t *TransactionData) HasFeeMarketFields() bool {
	return t.MaxFeePerGas != "" || t.MaxPriorityFeePerGas != ""
}

// Validate checks the gas pricing invariant for EVM-style chains: either legacy
// pricing or a complete fee-market pair, never a partially filled mix.
func (t *TransactionData) Validate() error {
	if t.To == "" {
		return errors.New("transaction recipient is empty")
	}
	if t.Value == "" {
		return errors.New("transaction value is empty")
	}

	if !t.Chain.IsEVM() {
		return nil
	}

	if t.HasFeeMarketFields() {
		if t.GasPrice != "" {
			return errors.New("gasPrice and maxFeePerGas/maxPriorityFeePerGas are mutually exclusive")
		}
		if t.MaxFeePerGas == "" || t.MaxPriorityFeePerGas == "" {
			return errors.New("maxFeePerGas and maxPriorityFeePerGas must be set together")
		}
	}

	return nil
}

// SignedTransaction is the broadcast-ready counterpart of a TransactionData.
// Only an ExternalSigner constructs these.
type SignedTransaction struct {
	RawTransaction string // hex-encoded wire bytes, 0x prefixed
	Hash           string
	Transaction    TransactionData
}
