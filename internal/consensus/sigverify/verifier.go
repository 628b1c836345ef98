// Package sigverify provides the ECDSA signature verification primitive used by the
// script engine.
package sigverify

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// Verifier checks secp256k1 ECDSA signatures. Encoding strictness is enforced by the
// script engine, so signatures are parsed leniently here.
type Verifier struct{}

// New creates a Verifier.
func New() *Verifier {
	return &Verifier{}
}

// Verify reports whether signature is valid for message under pubKey. Unparseable keys or
// signatures are invalid rather than errors.
func (Verifier) Verify(message, signature, pubKey []byte) bool {
	key, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseSignature(signature)
	if err != nil {
		return false
	}
	return sig.Verify(message, key)
}
