package replay

import (
	"context"
	"errors"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-consensus/pkg/batcher"
	"go.uber.org/zap"
)

const (
	recorderBatchSize     = 500
	recorderFlushInterval = 5 * time.Second
	recorderFlushRPS      = 10
)

// BlockRecorder is a chain block store that mirrors every written block record into a
// BlockSink. Records are batched, so a crash can lose the last unflushed batch; Reconcile
// reports the resulting gap on startup.
type BlockRecorder struct {
	store   chain.BlockStore
	sink    BlockSink
	batcher *batcher.Batcher[model.BlockInfo]
	logger  *zap.Logger
}

// NewBlockRecorder wraps store. Start must be called before blocks are written.
func NewBlockRecorder(store chain.BlockStore, sink BlockSink, logger *zap.Logger) (*BlockRecorder, error) {
	if store == nil {
		return nil, errors.New("block store is required")
	}
	if sink == nil {
		return nil, errors.New("block sink is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("recorder")
	return &BlockRecorder{
		store:  store,
		sink:   sink,
		logger: logger,
		batcher: batcher.New[model.BlockInfo](
			logger.Named("batcher"),
			sink.InsertBlocks,
			recorderBatchSize,
			recorderFlushInterval,
			recorderFlushRPS,
		),
	}, nil
}

// Start begins background flushing.
func (r *BlockRecorder) Start(ctx context.Context) {
	r.batcher.Start(ctx)
}

// Stop flushes queued records and stops background flushing.
func (r *BlockRecorder) Stop() {
	r.batcher.Stop()
}

// ReadBlockInfo reads from the wrapped store.
func (r *BlockRecorder) ReadBlockInfo(ctx context.Context, hash chainhash.Hash) (model.BlockInfo, bool, error) {
	return r.store.ReadBlockInfo(ctx, hash)
}

// WriteBlock writes to the wrapped store and queues the record. A record that cannot be
// queued is logged, not returned: the sink is a mirror and must not hold back the chain.
func (r *BlockRecorder) WriteBlock(ctx context.Context, blk *wire.MsgBlock, info model.BlockInfo) error {
	if err := r.store.WriteBlock(ctx, blk, info); err != nil {
		return err
	}
	if err := r.batcher.Add(ctx, info); err != nil {
		r.logger.Warn("block record not queued",
			zap.Uint32("height", info.Height),
			zap.Stringer("hash", info.Hash),
			zap.Error(err),
		)
	}
	return nil
}

// Record queues a record that does not go through the chain, such as a rejected block.
func (r *BlockRecorder) Record(ctx context.Context, info model.BlockInfo) error {
	return r.batcher.Add(ctx, info)
}

// Reconcile compares the sink's highest verified block with the local chain.
func (r *BlockRecorder) Reconcile(ctx context.Context, localHeight uint32) error {
	height, found, err := r.sink.MaxVerifiedHeight(ctx)
	if err != nil {
		return err
	}
	switch {
	case !found:
		r.logger.Info("block sink is empty", zap.Uint32("local_height", localHeight))
	case height > localHeight:
		r.logger.Warn("block sink is ahead of the local chain; records above the local tip will be rewritten",
			zap.Uint32("sink_height", height),
			zap.Uint32("local_height", localHeight),
		)
	case height < localHeight:
		r.logger.Warn("block sink lags the local chain; records in between are missing",
			zap.Uint32("sink_height", height),
			zap.Uint32("local_height", localHeight),
		)
	default:
		r.logger.Info("block sink matches the local chain", zap.Uint32("height", height))
	}
	return nil
}
