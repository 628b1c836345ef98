package transaction

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// UTXOView resolves and updates the outputs spent by transactions.
	UTXOView interface {
		Find(ctx context.Context, outpoint wire.OutPoint) (model.UTXO, bool, error)
		MarkSpent(ctx context.Context, outpoint wire.OutPoint, kind model.SpendKind) error
		Undo(ctx context.Context, outpoint wire.OutPoint, kind model.SpendKind) error
	}
	// Mempool answers whether a transaction was already fully validated.
	Mempool interface {
		Lookup(txHash chainhash.Hash) (model.MempoolEntry, bool)
	}
	Metrics interface {
		ObserveInput(path string, err error, started time.Time)
		ObserveTransaction(cached bool, err error, started time.Time)
	}
)
