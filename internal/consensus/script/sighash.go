package script

import (
	"bytes"
	"encoding/binary"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// SigHashType is the trailing byte of a signature selecting which parts of the
// transaction it commits to.
type SigHashType uint32

const (
	SigHashAll          SigHashType = 0x1
	SigHashNone         SigHashType = 0x2
	SigHashSingle       SigHashType = 0x3
	SigHashAnyOneCanPay SigHashType = 0x80

	sigHashMask = 0x1f
)

func (t SigHashType) base() SigHashType { return t & sigHashMask }

func (t SigHashType) anyoneCanPay() bool { return t&SigHashAnyOneCanPay != 0 }

// LegacySigHash computes the pre-segwit signature digest of input idx. scriptCode is the
// part of the executing script after the last executed OP_CODESEPARATOR with the signature
// pushes already removed; remaining separators are dropped here.
func LegacySigHash(scriptCode []byte, tx *wire.MsgTx, idx int, hashType SigHashType) []byte {
	if hashType.base() == SigHashSingle && idx >= len(tx.TxOut) {
		// Signing an output that does not exist commits to the number one.
		var one chainhash.Hash
		one[0] = 0x01
		return one[:]
	}

	txCopy := wire.MsgTx{Version: tx.Version, LockTime: tx.LockTime}
	txCopy.TxIn = make([]*wire.TxIn, 0, len(tx.TxIn))
	for i, in := range tx.TxIn {
		if hashType.anyoneCanPay() && i != idx {
			continue
		}
		cp := &wire.TxIn{PreviousOutPoint: in.PreviousOutPoint, Sequence: in.Sequence}
		if i == idx {
			cp.SignatureScript = removeCodeSeparators(scriptCode)
		} else if hashType.base() == SigHashNone || hashType.base() == SigHashSingle {
			cp.Sequence = 0
		}
		txCopy.TxIn = append(txCopy.TxIn, cp)
	}

	switch hashType.base() {
	case SigHashNone:
		txCopy.TxOut = nil
	case SigHashSingle:
		txCopy.TxOut = make([]*wire.TxOut, idx+1)
		for i := 0; i < idx; i++ {
			txCopy.TxOut[i] = &wire.TxOut{Value: -1}
		}
		txCopy.TxOut[idx] = tx.TxOut[idx]
	default:
		txCopy.TxOut = tx.TxOut
	}

	var buf bytes.Buffer
	buf.Grow(txCopy.SerializeSizeStripped() + 4)
	_ = txCopy.SerializeNoWitness(&buf)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(hashType))
	return chainhash.DoubleHashB(buf.Bytes())
}

// SigHashCache holds the per-transaction midstate hashes of the segwit v0 digest. It is
// safe for concurrent use by the inputs of one transaction.
type SigHashCache struct {
	tx   *wire.MsgTx
	once sync.Once

	hashPrevouts chainhash.Hash
	hashSequence chainhash.Hash
	hashOutputs  chainhash.Hash
}

// NewSigHashCache prepares a cache for tx. The hashes are computed on first use.
func NewSigHashCache(tx *wire.MsgTx) *SigHashCache {
	return &SigHashCache{tx: tx}
}

func (c *SigHashCache) compute() {
	c.once.Do(func() {
		var prevouts, sequences, outputs bytes.Buffer
		for _, in := range c.tx.TxIn {
			writeOutPoint(&prevouts, &in.PreviousOutPoint)
			_ = binary.Write(&sequences, binary.LittleEndian, in.Sequence)
		}
		for _, out := range c.tx.TxOut {
			_ = wire.WriteTxOut(&outputs, 0, 0, out)
		}
		c.hashPrevouts = chainhash.DoubleHashH(prevouts.Bytes())
		c.hashSequence = chainhash.DoubleHashH(sequences.Bytes())
		c.hashOutputs = chainhash.DoubleHashH(outputs.Bytes())
	})
}

// WitnessV0SigHash computes the segwit v0 digest of input idx spending amount.
func WitnessV0SigHash(scriptCode []byte, cache *SigHashCache, tx *wire.MsgTx, idx int, amount int64, hashType SigHashType) []byte {
	if cache == nil || cache.tx != tx {
		cache = NewSigHashCache(tx)
	}
	cache.compute()

	var zero chainhash.Hash
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, tx.Version)

	if hashType.anyoneCanPay() {
		buf.Write(zero[:])
	} else {
		buf.Write(cache.hashPrevouts[:])
	}

	if hashType.anyoneCanPay() || hashType.base() == SigHashSingle || hashType.base() == SigHashNone {
		buf.Write(zero[:])
	} else {
		buf.Write(cache.hashSequence[:])
	}

	in := tx.TxIn[idx]
	writeOutPoint(&buf, &in.PreviousOutPoint)
	_ = wire.WriteVarBytes(&buf, 0, scriptCode)
	_ = binary.Write(&buf, binary.LittleEndian, amount)
	_ = binary.Write(&buf, binary.LittleEndian, in.Sequence)

	switch {
	case hashType.base() != SigHashSingle && hashType.base() != SigHashNone:
		buf.Write(cache.hashOutputs[:])
	case hashType.base() == SigHashSingle && idx < len(tx.TxOut):
		var out bytes.Buffer
		_ = wire.WriteTxOut(&out, 0, 0, tx.TxOut[idx])
		h := chainhash.DoubleHashH(out.Bytes())
		buf.Write(h[:])
	default:
		buf.Write(zero[:])
	}

	_ = binary.Write(&buf, binary.LittleEndian, tx.LockTime)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(hashType))
	return chainhash.DoubleHashB(buf.Bytes())
}

func writeOutPoint(buf *bytes.Buffer, op *wire.OutPoint) {
	buf.Write(op.Hash[:])
	_ = binary.Write(buf, binary.LittleEndian, op.Index)
}

// P2PKHScript returns the pay-to-pubkey-hash locking script for a 20-byte hash. It doubles
// as the segwit v0 script code of a P2WPKH spend.
func P2PKHScript(pubKeyHash []byte) []byte {
	out := make([]byte, 0, 25)
	out = append(out, OP_DUP, OP_HASH160, OP_DATA_20)
	out = append(out, pubKeyHash...)
	return append(out, OP_EQUALVERIFY, OP_CHECKSIG)
}

// findAndDelete removes every occurrence of pattern that starts on an opcode boundary.
// The input is left untouched.
func findAndDelete(script, pattern []byte) []byte {
	if len(pattern) == 0 {
		return script
	}

	var out []byte
	found := false
	pc, kept := 0, 0
	for {
		out = append(out, script[kept:pc]...)
		for len(script)-pc >= len(pattern) && bytes.Equal(script[pc:pc+len(pattern)], pattern) {
			pc += len(pattern)
			found = true
		}
		kept = pc

		next, ok := nextOpcode(script, pc)
		if !ok {
			break
		}
		pc = next
	}
	if !found {
		return script
	}
	return append(out, script[kept:]...)
}

func removeCodeSeparators(script []byte) []byte {
	if bytes.IndexByte(script, OP_CODESEPARATOR) < 0 {
		return script
	}

	out := make([]byte, 0, len(script))
	pc := 0
	for pc < len(script) {
		next, ok := nextOpcode(script, pc)
		if !ok {
			return append(out, script[pc:]...)
		}
		if script[pc] != OP_CODESEPARATOR {
			out = append(out, script[pc:next]...)
		}
		pc = next
	}
	return out
}

// nextOpcode returns the position after the opcode at pc.
func nextOpcode(script []byte, pc int) (int, bool) {
	if pc >= len(script) {
		return pc, false
	}
	opcode := script[pc]
	pos := pc + 1
	if opcode <= OP_PUSHDATA4 {
		size, err := readPushSize(script, &pos, opcode)
		if err != nil {
			return pc, false
		}
		pos += size
	}
	return pos, true
}
