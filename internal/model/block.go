package model

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// BlockStatus describes how far a block got through verification.
type BlockStatus string

var (
	// BlockVerified marks a block that passed full verification and extended the chain.
	BlockVerified BlockStatus = "verified"
	// BlockRejected marks a block that failed verification.
	BlockRejected BlockStatus = "rejected"
)

// BlockInfo is the summary the block store keeps for every applied block.
type BlockInfo struct {
	Network    Network
	Height     uint32
	Hash       chainhash.Hash
	PrevHash   chainhash.Hash
	Timestamp  time.Time
	Bits       uint32
	TxCount    uint32
	Fee        uint64
	SigOpCost  int64
	Weight     int64
	Status     BlockStatus
	Reason     string
	VerifiedAt time.Time
}
