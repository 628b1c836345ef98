package script

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

var halfOrder = new(big.Int).Rsh(btcec.S256().N, 1)

// scriptCode returns the script a signature commits to: everything after the last
// executed OP_CODESEPARATOR. Legacy scripts additionally drop pushes of the signatures
// being checked, since a signature cannot sign itself.
func (e *engine) scriptCode(sigs ...[]byte) []byte {
	code := e.stack.script[e.stack.codeSepPos:]
	if e.vctx.Mode != Legacy {
		return code
	}
	for _, sig := range sigs {
		code = findAndDelete(code, PushData(sig))
	}
	return code
}

// checkSig verifies sig, whose last byte is the hash type, against pubKey. Badly encoded
// signatures are errors when the encoding rules are active; a well formed signature that
// does not verify is only a false result.
func (e *engine) checkSig(sig, pubKey, scriptCode []byte) (bool, error) {
	if err := checkSignatureEncoding(sig, e.vctx.Flags); err != nil {
		return false, err
	}
	if len(sig) == 0 {
		return false, nil
	}
	tx := e.vctx.Tx
	if tx == nil || e.vctx.InputIndex < 0 || e.vctx.InputIndex >= len(tx.TxIn) {
		return false, ErrNoTransaction
	}
	if e.vctx.Verifier == nil {
		return false, ErrNoSignatureVerifier
	}

	hashType := SigHashType(sig[len(sig)-1])
	var digest []byte
	if e.vctx.Mode == WitnessV0 {
		digest = WitnessV0SigHash(scriptCode, e.vctx.SigHashes, tx, e.vctx.InputIndex, e.vctx.Amount, hashType)
	} else {
		digest = LegacySigHash(scriptCode, tx, e.vctx.InputIndex, hashType)
	}
	return e.vctx.Verifier.Verify(digest, sig[:len(sig)-1], pubKey), nil
}

func checkSignatureEncoding(sig []byte, flags VerifyFlags) error {
	if len(sig) == 0 {
		return nil
	}
	if (flags.Has(VerifyStrictDER) || flags.Has(VerifyLowS)) && !IsStrictDER(sig) {
		return ErrSigDER
	}
	if flags.Has(VerifyLowS) && !IsLowS(sig) {
		return ErrSigHighS
	}
	return nil
}

// IsStrictDER reports whether sig, including its trailing hash type byte, is a minimal DER
// encoded ECDSA signature (BIP66).
func IsStrictDER(sig []byte) bool {
	if len(sig) < 9 || len(sig) > 73 {
		return false
	}
	if sig[0] != 0x30 || int(sig[1]) != len(sig)-3 {
		return false
	}

	lenR := int(sig[3])
	if 5+lenR >= len(sig) {
		return false
	}
	lenS := int(sig[5+lenR])
	if lenR+lenS+7 != len(sig) {
		return false
	}

	if sig[2] != 0x02 || lenR == 0 || sig[4]&0x80 != 0 {
		return false
	}
	if lenR > 1 && sig[4] == 0x00 && sig[5]&0x80 == 0 {
		return false
	}

	if sig[lenR+4] != 0x02 || lenS == 0 || sig[lenR+6]&0x80 != 0 {
		return false
	}
	if lenS > 1 && sig[lenR+6] == 0x00 && sig[lenR+7]&0x80 == 0 {
		return false
	}
	return true
}

// IsLowS reports whether a strictly DER encoded signature has S in the lower half of the
// curve order.
func IsLowS(sig []byte) bool {
	if !IsStrictDER(sig) {
		return false
	}
	lenR := int(sig[3])
	lenS := int(sig[5+lenR])
	s := new(big.Int).SetBytes(sig[6+lenR : 6+lenR+lenS])
	return s.Cmp(halfOrder) <= 0
}
