package signer

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github/vaultbridge/hw-wallet/internal/hardware"
)

// MockSigner is the deterministic test double. It produces stable payloads
// without real cryptography so the orchestrator's control flow can be
// exercised in isolation, and records every signing call for assertions.
type MockSigner struct {
	mu         sync.Mutex
	shouldFail bool
	delay      time.Duration
	calls      []MockCall
}

// MockCall records one invocation of a signing-related method.
type MockCall struct {
	Method string
	Chain  hardware.Chain
	To     string
	Value  string
}

// NewMockSigner creates a mock signer.
func NewMockSigner() *MockSigner {
	return &MockSigner{}
}

// SetShouldFail makes PrepareForSigning and ConstructSignedTransaction fail.
func (s *MockSigner) SetShouldFail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shouldFail = fail
}

// SetSigningDelay introduces a synthetic delay on every signing call.
func (s *MockSigner) SetSigningDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Calls returns a copy of all recorded signing calls.
func (s *MockSigner) Calls() []MockCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]MockCall, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *MockSigner) record(method string, tx *hardware.TransactionData) (fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, MockCall{Method: method, Chain: tx.Chain, To: tx.To, Value: tx.Value})
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.shouldFail
}

// SupportedChains implements ExternalSigner.
func (s *MockSigner) SupportedChains() []hardware.Chain {
	return []hardware.Chain{hardware.ChainEthereum, hardware.ChainPolygon, hardware.ChainBSC, hardware.ChainBitcoin}
}

// SupportsChain implements ExternalSigner.
func (s *MockSigner) SupportsChain(chain hardware.Chain) bool {
	for _, c := range s.SupportedChains() {
		if c == chain {
			return true
		}
	}
	return false
}

// PrepareForSigning implements ExternalSigner. The payload is a canonical JSON
// projection of the transaction, hex-encoded, so identical inputs always yield
// identical raw data.
func (s *MockSigner) PrepareForSigning(tx *hardware.TransactionData) (*Prepared, error) {
	if !s.SupportsChain(tx.Chain) {
		return nil, errors.Wrapf(hardware.ErrUnsupportedChain, "mock signer does not handle %q", tx.Chain)
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	if s.record("PrepareForSigning", tx) {
		return nil, errors.New("mock signer: forced failure")
	}

	encoded, err := json.Marshal(tx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode mock payload")
	}

	symbol, decimals := nativeUnits(tx.Chain)
	amount, err := formatNativeAmount(tx.Value, decimals)
	if err != nil {
		return nil, err
	}

	return &Prepared{
		RawData: hex.EncodeToString(encoded),
		DisplayData: map[string]string{
			"chain":  string(tx.Chain),
			"to":     tx.To,
			"amount": fmt.Sprintf("%s %s", amount, symbol),
		},
		Encoding: hardware.EncodingMock,
	}, nil
}

// ValidateSignature implements ExternalSigner: true iff both inputs are
// non-empty and each is at least 64 characters long.
func (s *MockSigner) ValidateSignature(tx *hardware.TransactionData, signature, publicKey string) bool {
	s.record("ValidateSignature", tx)
	return len(signature) >= minMockCredentialLen && len(publicKey) >= minMockCredentialLen
}

// ConstructSignedTransaction implements ExternalSigner. The hash is a keccak
// digest over payload and signature, deterministic for identical inputs and
// sensitive to any change of the transaction fields.
func (s *MockSigner) ConstructSignedTransaction(tx *hardware.TransactionData, signature, publicKey string) (*hardware.SignedTransaction, error) {
	if !s.SupportsChain(tx.Chain) {
		return nil, errors.Wrapf(hardware.ErrUnsupportedChain, "mock signer does not handle %q", tx.Chain)
	}
	if s.record("ConstructSignedTransaction", tx) {
		return nil, errors.New("mock signer: forced failure")
	}

	encoded, err := json.Marshal(tx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode mock payload")
	}

	raw := hex.EncodeToString(encoded) + signature
	digest := crypto.Keccak256([]byte(raw))

	return &hardware.SignedTransaction{
		RawTransaction: "0x" + raw,
		Hash:           "0x" + hex.EncodeToString(digest),
		Transaction:    *tx,
	}, nil
}

// DerivationPath implements ExternalSigner.
func (s *MockSigner) DerivationPath(chain hardware.Chain, accountIndex int) string {
	coinType := 60
	if !chain.IsEVM() {
		coinType = 0
	}
	return fmt.Sprintf("m/44'/%d'/0'/0/%d", coinType, accountIndex)
}

// ConfirmationSteps implements ExternalSigner.
func (s *MockSigner) ConfirmationSteps() []string {
	return []string{"Mock signer: no device interaction required"}
}
