package replay

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Chain is the chain state the service drives as a single peer.
	Chain interface {
		StartSync(ctx context.Context) chain.SyncState
		State() chain.SyncState
		HeaderHeight() uint32
		HeaderTip() chainhash.Hash
		BlockHeight() uint32
		HeightOf(hash chainhash.Hash) (uint32, bool)
		ProcessHeaders(ctx context.Context, headers []wire.BlockHeader) (chain.HeadersResult, error)
		SetMissingBlockHashes(peer *chain.PeerState) []chainhash.Hash
		ReleasePeer(peer *chain.PeerState) int
		ProcessBlock(ctx context.Context, blk *wire.MsgBlock, peer *chain.PeerState) (chain.BlockResult, error)
		NextLockTimeCutoff() (uint32, int64)
	}
	// Source serves the node's best chain and mempool.
	Source interface {
		TipHeight(ctx context.Context) (uint32, error)
		Headers(ctx context.Context, from uint32, limit int) ([]wire.BlockHeader, error)
		Blocks(ctx context.Context, hashes []chainhash.Hash) ([]*wire.MsgBlock, error)
		MempoolTransactions(ctx context.Context, known func(chainhash.Hash) bool, limit int) ([]*wire.MsgTx, error)
	}
	Mempool interface {
		Accept(ctx context.Context, tx *wire.MsgTx, height uint32, lockTimeCutoff int64) (model.MempoolEntry, error)
		Lookup(txHash chainhash.Hash) (model.MempoolEntry, bool)
		RemoveBlock(ctx context.Context, blk *wire.MsgBlock) int
	}
	// Recorder keeps block records outside the chain state, rejected blocks included.
	Recorder interface {
		Record(ctx context.Context, info model.BlockInfo) error
		Reconcile(ctx context.Context, localHeight uint32) error
	}
	// BlockSink is the analytics store behind a BlockRecorder.
	BlockSink interface {
		InsertBlocks(ctx context.Context, blocks []model.BlockInfo) error
		MaxVerifiedHeight(ctx context.Context) (uint32, bool, error)
	}
	Metrics interface {
		ObserveStage(stage string, err error, items int, started time.Time)
		SetNodeHeight(height uint32)
	}
)
