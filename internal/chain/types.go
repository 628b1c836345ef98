package chain

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/block"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// HeaderStore persists accepted headers in height order.
	HeaderStore interface {
		ReadHeaders(ctx context.Context) ([]wire.BlockHeader, error)
		AppendHeaders(ctx context.Context, headers ...wire.BlockHeader) error
	}
	// BlockStore persists applied blocks.
	BlockStore interface {
		ReadBlockInfo(ctx context.Context, hash chainhash.Hash) (model.BlockInfo, bool, error)
		WriteBlock(ctx context.Context, block *wire.MsgBlock, info model.BlockInfo) error
	}
	BlockVerifier interface {
		VerifyHeader(header *wire.BlockHeader, expectedBits uint32) error
		Verify(ctx context.Context, block *wire.MsgBlock, chain block.ChainContext) (block.Result, error)
	}
	Metrics interface {
		ObserveHeaders(outcome string, accepted int, started time.Time)
		ObserveBlock(err error, started time.Time)
		ObservePenalty(reason string)
		SetHeights(headers, blocks uint32)
		SetState(state string)
	}
)
