package signer

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"

	"github/vaultbridge/hw-wallet/internal/hardware"
)

const (
	compactSignatureHexLen = 130 // r (64) + s (64) + v (2)
	minMockCredentialLen   = 64
)

// StructuralVerifier is the reference verification strategy: it checks that a
// signature parses into its components and has plausible shape. It does not
// perform ECDSA recovery and does not bind the signature to the public key.
//
// TODO: production deployments should replace this with ecrecover-based
// verification once the bridge contract for public key delivery is settled.
type StructuralVerifier struct{}

// Verify implements Verifier.
func (v *StructuralVerifier) Verify(tx *hardware.TransactionData, signature, publicKey string) error {
	if signature == "" {
		return errors.Wrap(hardware.ErrInvalidSignature, "signature is empty")
	}
	if publicKey == "" {
		return errors.Wrap(hardware.ErrInvalidSignature, "public key is empty")
	}

	if tx.Chain.IsEVM() {
		if _, err := parseCompactSignature(signature); err != nil {
			return err
		}
		return nil
	}

	// UTXO-style chains return a fully assembled raw transaction in place of a
	// bare signature; hex-decodability is the only structural property here.
	if _, err := hex.DecodeString(strings.TrimPrefix(signature, "0x")); err != nil {
		return errors.Wrap(hardware.ErrMalformedSignature, "raw transaction is not valid hex")
	}
	return nil
}

// signatureComponents is a parsed 65-byte compact ECDSA signature with the
// recovery identifier normalized to 0/1.
type signatureComponents struct {
	R []byte
	S []byte
	V byte
}

// compact returns the 65-byte r||s||v layout expected by go-ethereum.
func (c signatureComponents) compact() []byte {
	sig := make([]byte, 65)
	copy(sig[0:32], c.R)
	copy(sig[32:64], c.S)
	sig[64] = c.V
	return sig
}

// parseCompactSignature parses the 130-hex-character r||s||v layout, removing
// an optional 0x prefix and normalizing v from 27/28 to 0/1.
func parseCompactSignature(signature string) (*signatureComponents, error) {
	trimmed := strings.TrimPrefix(signature, "0x")
	if len(trimmed) != compactSignatureHexLen {
		return nil, errors.Wrapf(hardware.ErrMalformedSignature, "expected %d hex characters, got %d", compactSignatureHexLen, len(trimmed))
	}

	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, errors.Wrap(hardware.ErrMalformedSignature, "signature is not valid hex")
	}

	comp := &signatureComponents{
		R: raw[0:32],
		S: raw[32:64],
		V: raw[64],
	}
	if comp.V >= 27 {
		comp.V -= 27
	}
	if comp.V > 1 {
		return nil, errors.Wrapf(hardware.ErrMalformedSignature, "recovery id %d out of range", raw[64])
	}

	return comp, nil
}
