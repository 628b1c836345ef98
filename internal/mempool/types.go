package mempool

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/transaction"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// TxVerifier authorizes a transaction against a view. It must be configured with the
	// mempool spend kind and without a mempool of its own.
	TxVerifier interface {
		Reset(height uint32, lockTimeCutoff int64)
		Check(ctx context.Context, view transaction.UTXOView, tx *wire.MsgTx) (transaction.Result, error)
	}
	Metrics interface {
		ObserveAccept(err error, started time.Time)
		ObserveEviction(reason string)
		SetSize(n int)
	}
)
