package transaction

import (
	"bytes"
	"fmt"
	"math"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/params"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/script"
)

const (
	minCoinbaseScriptLen = 2
	maxCoinbaseScriptLen = 100
	lockTimeThreshold    = 500_000_000
)

// IsCoinbase reports whether tx has the shape of a coinbase: one input spending the null
// outpoint.
func IsCoinbase(tx *wire.MsgTx) bool {
	return len(tx.TxIn) == 1 && isNullOutPoint(&tx.TxIn[0].PreviousOutPoint)
}

func isNullOutPoint(op *wire.OutPoint) bool {
	return op.Index == math.MaxUint32 && op.Hash == (wire.OutPoint{}).Hash
}

// CheckSanity applies the context-free rules every transaction must satisfy.
func CheckSanity(tx *wire.MsgTx) error {
	if len(tx.TxIn) == 0 {
		return ErrNoInputs
	}
	if len(tx.TxOut) == 0 {
		return ErrNoOutputs
	}
	if size := tx.SerializeSizeStripped(); size*params.WitnessScaleFactor > params.MaxBlockWeight {
		return fmt.Errorf("%d bytes: %w", size, ErrOversize)
	}

	var total uint64
	for i, out := range tx.TxOut {
		if out.Value < 0 || out.Value > params.MaxSatoshi {
			return fmt.Errorf("output %d value %d: %w", i, out.Value, ErrOutputValue)
		}
		total += uint64(out.Value)
		if total > params.MaxSatoshi {
			return fmt.Errorf("output %d total %d: %w", i, total, ErrOutputTotal)
		}
	}

	seen := make(map[wire.OutPoint]struct{}, len(tx.TxIn))
	for _, in := range tx.TxIn {
		if _, ok := seen[in.PreviousOutPoint]; ok {
			return fmt.Errorf("%s: %w", in.PreviousOutPoint, ErrDuplicateInput)
		}
		seen[in.PreviousOutPoint] = struct{}{}
	}

	if IsCoinbase(tx) {
		if n := len(tx.TxIn[0].SignatureScript); n < minCoinbaseScriptLen || n > maxCoinbaseScriptLen {
			return fmt.Errorf("%d bytes: %w", n, ErrCoinbaseScriptLength)
		}
		return nil
	}
	for i, in := range tx.TxIn {
		if isNullOutPoint(&in.PreviousOutPoint) {
			return fmt.Errorf("input %d: %w", i, ErrNullPrevOut)
		}
	}
	return nil
}

// IsFinal reports whether tx may be included in a block at height whose lock-time cutoff
// (median time past once CSV is active, block time before) is lockTimeCutoff.
func IsFinal(tx *wire.MsgTx, height uint32, lockTimeCutoff int64) bool {
	if tx.LockTime == 0 {
		return true
	}
	limit := int64(height)
	if tx.LockTime >= lockTimeThreshold {
		limit = lockTimeCutoff
	}
	if int64(tx.LockTime) < limit {
		return true
	}
	for _, in := range tx.TxIn {
		if in.Sequence != wire.MaxTxInSequenceNum {
			return false
		}
	}
	return true
}

// checkCoinbaseHeight requires the coinbase script to open with the minimal push of the
// block height.
func checkCoinbaseHeight(tx *wire.MsgTx, height uint32) error {
	want := script.PushNumber(int64(height))
	if !bytes.HasPrefix(tx.TxIn[0].SignatureScript, want) {
		return fmt.Errorf("height %d: %w", height, ErrBadCoinbaseHeight)
	}
	return nil
}
