package block

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/transaction"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// UTXOSet is the confirmed UTXO set a verified block is committed to.
	UTXOSet interface {
		transaction.UTXOView
		Add(ctx context.Context, utxos ...model.UTXO) error
	}
	Metrics interface {
		ObserveBlock(err error, txCount int, started time.Time)
	}
)
