package signer

import (
	"math/big"

	"github/vaultbridge/hw-wallet/internal/hardware"
)

// Prepared is the device-specific unsigned payload produced for one transaction.
type Prepared struct {
	// RawData is the exact hex-encoded payload the device must sign. It is
	// computed once per request and never recomputed afterwards.
	RawData string

	// DisplayData is a human-readable projection of the payload, amounts
	// formatted in the chain's native unit. It never carries more precision
	// than what is actually signed.
	DisplayData map[string]string

	Encoding hardware.Encoding
}

// ExternalSigner is the capability interface implemented per device family.
// Implementations never talk to a physical device: they only encode unsigned
// payloads and validate/assemble what the caller relayed back from the device.
type ExternalSigner interface {
	// SupportedChains returns the chains this family can produce payloads for.
	SupportedChains() []hardware.Chain

	// SupportsChain reports whether the family handles the given chain.
	SupportsChain(chain hardware.Chain) bool

	// PrepareForSigning builds the unsigned payload for the transaction.
	// Returns hardware.ErrUnsupportedChain for chains outside SupportedChains.
	PrepareForSigning(tx *hardware.TransactionData) (*Prepared, error)

	// ValidateSignature checks the structural well-formedness of a returned
	// signature. Empty signature or public key is rejected immediately. This is
	// not cryptographic verification; see Verifier.
	ValidateSignature(tx *hardware.TransactionData, signature, publicKey string) bool

	// ConstructSignedTransaction assembles the broadcast-ready transaction from
	// the device signature. Returns hardware.ErrUnsupportedChain or
	// hardware.ErrMalformedSignature.
	ConstructSignedTransaction(tx *hardware.TransactionData, signature, publicKey string) (*hardware.SignedTransaction, error)

	// DerivationPath returns the BIP44 path for the chain and account index.
	DerivationPath(chain hardware.Chain, accountIndex int) string

	// ConfirmationSteps returns the ordered user instructions for this family.
	ConfirmationSteps() []string
}

// Verifier is the pluggable signature verification strategy.
//
// The shipped StructuralVerifier checks format and length only. Full
// ecrecover-based verification binding the signature to the public key can be
// swapped in here without touching the request state machine.
type Verifier interface {
	Verify(tx *hardware.TransactionData, signature, publicKey string) error
}

// Config carries the injected per-chain defaults. It is read-only after
// construction so tests can substitute values without shared state.
type Config struct {
	// ChainIDs maps EVM chains to their chain ID.
	ChainIDs map[hardware.Chain]int64

	// DefaultGasLimit is used when the transaction carries no gas limit.
	DefaultGasLimit uint64

	// DefaultGasPrice is the legacy gas price fallback in wei.
	DefaultGasPrice *big.Int

	// GasPrices optionally overrides the legacy gas price per chain.
	GasPrices map[hardware.Chain]*big.Int

	Verifier Verifier
}

const (
	defaultGasLimit = 21000
	defaultGasPrice = 1_000_000_000 // 1 gwei
)

// DefaultConfig returns the built-in chain ID and gas defaults.
func DefaultConfig() Config {
	return Config{
		ChainIDs: map[hardware.Chain]int64{
			hardware.ChainEthereum: 1,
			hardware.ChainPolygon:  137,
			hardware.ChainBSC:      56,
		},
		DefaultGasLimit: defaultGasLimit,
		DefaultGasPrice: big.NewInt(defaultGasPrice),
		Verifier:        &StructuralVerifier{},
	}
}

// chainID resolves the EVM chain ID for a chain, falling back to ethereum
// mainnet when unconfigured.
func (c Config) chainID(chain hardware.Chain) int64 {
	if id, ok := c.ChainIDs[chain]; ok {
		return id
	}
	return 1
}

func (c Config) gasLimit(tx *hardware.TransactionData) uint64 {
	if tx.GasLimit != nil {
		return *tx.GasLimit
	}
	if c.DefaultGasLimit > 0 {
		return c.DefaultGasLimit
	}
	return defaultGasLimit
}

func (c Config) nonce(tx *hardware.TransactionData) uint64 {
	if tx.Nonce != nil {
		return *tx.Nonce
	}
	return 0
}

func (c Config) defaultGasPrice(chain hardware.Chain) *big.Int {
	if p, ok := c.GasPrices[chain]; ok && p != nil {
		return p
	}
	if c.DefaultGasPrice != nil {
		return c.DefaultGasPrice
	}
	return big.NewInt(defaultGasPrice)
}
