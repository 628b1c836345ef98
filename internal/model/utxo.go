// Package model defines the records exchanged between the consensus core and its collaborators.
package model

import (
	"github.com/btcsuite/btcd/wire"
)

// SpendKind tells which of the two spent flags of a UTXO an operation touches.
type SpendKind uint8

const (
	// BlockSpend marks an output consumed by a transaction confirmed in a block.
	BlockSpend SpendKind = iota
	// MempoolSpend marks an output consumed by a transaction that is only in the mempool.
	MempoolSpend
)

func (k SpendKind) String() string {
	if k == MempoolSpend {
		return "mempool"
	}
	return "block"
}

// UTXO is a transaction output as seen by the verifier. The two spent flags are
// independent so speculative mempool spends never corrupt the confirmed view.
type UTXO struct {
	OutPoint     wire.OutPoint
	Amount       uint64
	PkScript     []byte
	Height       uint32
	Coinbase     bool
	MempoolSpent bool
	BlockSpent   bool
}

// SpentBy reports whether the output is already consumed from the point of view of kind.
// Mempool checks see both flags; block checks only see confirmed spends.
func (u *UTXO) SpentBy(kind SpendKind) bool {
	if kind == BlockSpend {
		return u.BlockSpent
	}
	return u.MempoolSpent || u.BlockSpent
}

// SetSpent sets or clears the flag of kind.
func (u *UTXO) SetSpent(kind SpendKind, spent bool) {
	if kind == BlockSpend {
		u.BlockSpent = spent
		return
	}
	u.MempoolSpent = spent
}

// OutputsOf returns the UTXOs created by tx at height.
func OutputsOf(tx *wire.MsgTx, height uint32, coinbase bool) []UTXO {
	hash := tx.TxHash()
	out := make([]UTXO, 0, len(tx.TxOut))
	for i, txOut := range tx.TxOut {
		out = append(out, UTXO{
			OutPoint: wire.OutPoint{Hash: hash, Index: uint32(i)},
			Amount:   uint64(txOut.Value),
			PkScript: txOut.PkScript,
			Height:   height,
			Coinbase: coinbase,
		})
	}
	return out
}
