package model

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// MempoolEntry is a transaction that already passed full verification against the
// mempool view, with the totals that verification produced.
type MempoolEntry struct {
	TxHash    chainhash.Hash
	Inputs    []wire.OutPoint
	Fee       uint64
	SigOpCost int64
	AddedAt   time.Time
}
