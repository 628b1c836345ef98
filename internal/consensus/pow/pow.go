// Package pow implements the compact target encoding, the proof-of-work check and the
// difficulty retarget arithmetic.
package pow

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var (
	ErrNegativeTarget = errors.New("target is negative")
	ErrZeroTarget     = errors.New("target is zero")
	ErrTargetOverflow = errors.New("target overflows 256 bits")
	ErrTargetAboveMax = errors.New("target is above the proof-of-work limit")
	ErrHighHash       = errors.New("block hash is above the target")
)

var bigOne = big.NewInt(1)

// Target is a proof-of-work threshold held in both of its representations.
type Target struct {
	bits  uint32
	value *big.Int
}

// TargetFromBits decodes a compact nBits value, rejecting encodings that are negative, zero
// or wider than 256 bits.
func TargetFromBits(bits uint32) (Target, error) {
	if bits&0x00800000 != 0 && bits&0x007fffff != 0 {
		return Target{}, fmt.Errorf("bits %08x: %w", bits, ErrNegativeTarget)
	}
	if compactOverflows(bits) {
		return Target{}, fmt.Errorf("bits %08x: %w", bits, ErrTargetOverflow)
	}
	value := CompactToBig(bits)
	if value.Sign() <= 0 {
		return Target{}, fmt.Errorf("bits %08x: %w", bits, ErrZeroTarget)
	}
	return Target{bits: bits, value: value}, nil
}

// TargetFromBig builds a target from a full integer, normalizing it through the compact form.
func TargetFromBig(value *big.Int) Target {
	bits := BigToCompact(value)
	return Target{bits: bits, value: CompactToBig(bits)}
}

// Bits returns the compact representation.
func (t Target) Bits() uint32 { return t.bits }

// Big returns a copy of the full integer representation.
func (t Target) Big() *big.Int {
	if t.value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(t.value)
}

// Clamp caps the target at limit.
func (t Target) Clamp(limit *big.Int) Target {
	if t.value != nil && t.value.Cmp(limit) > 0 {
		return TargetFromBig(limit)
	}
	return t
}

// CompactToBig decodes the nBits float-like encoding: the high byte is a base-256 exponent,
// the low 23 bits the mantissa and bit 23 the sign.
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	negative := compact&0x00800000 != 0
	exponent := uint(compact >> 24)

	var n *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		n = big.NewInt(int64(mantissa))
	} else {
		n = big.NewInt(int64(mantissa))
		n.Lsh(n, 8*(exponent-3))
	}
	if negative {
		n = n.Neg(n)
	}
	return n
}

// BigToCompact encodes n in the nBits form, shifting the mantissa when its top bit would
// collide with the sign bit.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	var mantissa uint32
	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}
	return compact
}

func compactOverflows(bits uint32) bool {
	size := bits >> 24
	word := bits & 0x007fffff
	return word != 0 && (size > 34 || (word > 0xff && size > 33) || (word > 0xffff && size > 32))
}

// HashToBig interprets a block hash as a little-endian 256-bit integer.
func HashToBig(hash *chainhash.Hash) *big.Int {
	var buf [chainhash.HashSize]byte
	for i := 0; i < chainhash.HashSize; i++ {
		buf[i] = hash[chainhash.HashSize-1-i]
	}
	return new(big.Int).SetBytes(buf[:])
}

// CheckProofOfWork verifies that bits decodes to a target within powLimit and that hash does
// not exceed it. A hash equal to the target passes.
func CheckProofOfWork(hash *chainhash.Hash, bits uint32, powLimit *big.Int) error {
	target, err := TargetFromBits(bits)
	if err != nil {
		return err
	}
	if target.value.Cmp(powLimit) > 0 {
		return fmt.Errorf("bits %08x: %w", bits, ErrTargetAboveMax)
	}
	if HashToBig(hash).Cmp(target.value) > 0 {
		return fmt.Errorf("hash %s bits %08x: %w", hash, bits, ErrHighHash)
	}
	return nil
}

// CalcRetarget scales the previous target by the observed interval duration, clamped to a
// quarter and four times the expected duration, and caps the result at powLimit.
func CalcRetarget(lastBits uint32, actualTimespan, targetTimespan int64, powLimit *big.Int) uint32 {
	minTimespan := targetTimespan / 4
	maxTimespan := targetTimespan * 4
	if actualTimespan < minTimespan {
		actualTimespan = minTimespan
	} else if actualTimespan > maxTimespan {
		actualTimespan = maxTimespan
	}

	next := CompactToBig(lastBits)
	next.Mul(next, big.NewInt(actualTimespan))
	next.Div(next, big.NewInt(targetTimespan))
	if next.Cmp(powLimit) > 0 {
		next.Set(powLimit)
	}
	return BigToCompact(next)
}

// CalcWork returns the expected number of hashes needed to find a block at bits.
func CalcWork(bits uint32) *big.Int {
	target := CompactToBig(bits)
	if target.Sign() <= 0 {
		return new(big.Int)
	}
	denominator := new(big.Int).Add(target, bigOne)
	return new(big.Int).Div(new(big.Int).Lsh(bigOne, 256), denominator)
}
