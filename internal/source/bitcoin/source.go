package bitcoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/pkg/safe"
	"github.com/goodnatureofminers/blockinsight7000-consensus/pkg/workerpool"
	"go.uber.org/zap"
)

var (
	// ErrChainMoved is returned when the node's best chain changed while a range was being fetched.
	ErrChainMoved = errors.New("node chain moved during fetch")
	// ErrUnexpectedBlock is returned when the node answers with a block other than the requested one.
	ErrUnexpectedBlock = errors.New("node returned unexpected block")
)

// Source reads chain data from a node over RPC.
type Source struct {
	client  RPCClient
	workers int
	logger  *zap.Logger
}

// NewSource constructs a Source fetching with up to workers concurrent RPC calls.
func NewSource(client RPCClient, workers int, logger *zap.Logger) (*Source, error) {
	if client == nil {
		return nil, errors.New("rpc client is required")
	}
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{
		client:  client,
		workers: workers,
		logger:  logger.Named("source"),
	}, nil
}

// TipHeight returns the height of the node's best block.
func (s *Source) TipHeight(ctx context.Context) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := s.client.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	height, err := safe.Uint32(count)
	if err != nil {
		return 0, fmt.Errorf("block count: %w", err)
	}
	return height, nil
}

// HashAt returns the hash of the node's best-chain block at height.
func (s *Source) HashAt(ctx context.Context, height uint32) (chainhash.Hash, error) {
	if err := ctx.Err(); err != nil {
		return chainhash.Hash{}, err
	}
	hash, err := s.client.GetBlockHash(int64(height))
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("get block hash %d: %w", height, err)
	}
	return *hash, nil
}

// Headers returns up to limit consecutive best-chain headers starting at height from.
// An empty result means the node has nothing past from-1.
func (s *Source) Headers(ctx context.Context, from uint32, limit int) ([]wire.BlockHeader, error) {
	if limit <= 0 {
		return nil, nil
	}
	tip, err := s.TipHeight(ctx)
	if err != nil {
		return nil, err
	}
	if from > tip {
		return nil, nil
	}

	last := tip
	if uint64(from)+uint64(limit)-1 < uint64(tip) {
		last = from + uint32(limit) - 1
	}
	heights := make([]uint32, 0, last-from+1)
	for h := from; h <= last; h++ {
		heights = append(heights, h)
	}

	headers, err := workerpool.Map(ctx, s.workers, heights, func(ctx context.Context, height uint32) (wire.BlockHeader, error) {
		hash, err := s.HashAt(ctx, height)
		if err != nil {
			return wire.BlockHeader{}, err
		}
		header, err := s.client.GetBlockHeader(&hash)
		if err != nil {
			return wire.BlockHeader{}, fmt.Errorf("get block header %s: %w", hash, err)
		}
		return *header, nil
	})
	if err != nil {
		return nil, err
	}

	for i := 1; i < len(headers); i++ {
		if headers[i].PrevBlock != headers[i-1].BlockHash() {
			return nil, fmt.Errorf("%w: header at height %d", ErrChainMoved, from+uint32(i))
		}
	}
	return headers, nil
}

// Blocks fetches the given blocks concurrently, returning them in request order.
func (s *Source) Blocks(ctx context.Context, hashes []chainhash.Hash) ([]*wire.MsgBlock, error) {
	if len(hashes) == 0 {
		return nil, nil
	}
	return workerpool.Map(ctx, s.workers, hashes, func(ctx context.Context, hash chainhash.Hash) (*wire.MsgBlock, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		blk, err := s.client.GetBlock(&hash)
		if err != nil {
			return nil, fmt.Errorf("get block %s: %w", hash, err)
		}
		if got := blk.BlockHash(); got != hash {
			return nil, fmt.Errorf("%w: requested %s, got %s", ErrUnexpectedBlock, hash, got)
		}
		return blk, nil
	})
}

// MempoolTransactions returns up to limit node mempool transactions for which known reports false.
// Transactions that leave the node's mempool before they are fetched are skipped.
func (s *Source) MempoolTransactions(ctx context.Context, known func(chainhash.Hash) bool, limit int) ([]*wire.MsgTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hashes, err := s.client.GetRawMempool()
	if err != nil {
		return nil, fmt.Errorf("get raw mempool: %w", err)
	}

	wanted := make([]*chainhash.Hash, 0, len(hashes))
	for _, hash := range hashes {
		if limit > 0 && len(wanted) == limit {
			break
		}
		if known != nil && known(*hash) {
			continue
		}
		wanted = append(wanted, hash)
	}
	if len(wanted) == 0 {
		return nil, nil
	}

	fetched, err := workerpool.Map(ctx, s.workers, wanted, func(ctx context.Context, hash *chainhash.Hash) (*wire.MsgTx, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tx, err := s.client.GetRawTransaction(hash)
		if err != nil {
			s.logger.Debug("skip mempool transaction", zap.Stringer("txid", hash), zap.Error(err))
			return nil, nil
		}
		return tx.MsgTx(), nil
	})
	if err != nil {
		return nil, err
	}

	txs := fetched[:0]
	for _, tx := range fetched {
		if tx != nil {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}
