// Package replay verifies a node's best chain by feeding its headers, blocks and mempool
// through the chain state as a single peer.
package replay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/chain"
	internalclock "github.com/goodnatureofminers/blockinsight7000-consensus/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
	"github.com/lightningnetwork/lnd/clock"
	"go.uber.org/zap"
)

const (
	peerID = "rpc"

	defaultPollInterval  = 10 * time.Second
	defaultRetryInterval = 5 * time.Second
	defaultMempoolLimit  = 5_000

	stageTip     = "tip"
	stageHeaders = "headers"
	stageBlocks  = "blocks"
	stageMempool = "mempool"
)

var (
	// ErrBlockRejected is returned when the node serves a block that fails verification.
	ErrBlockRejected = errors.New("node block rejected")
	// ErrHeaderRejected is returned when the node serves a header that breaks a header rule.
	ErrHeaderRejected = errors.New("node header rejected")
	// ErrNodeFork is returned when the node's best chain no longer extends the local headers.
	ErrNodeFork = errors.New("node chain forks from local headers")
)

// Config wires the service. Mempool and Recorder are optional.
type Config struct {
	Chain    Chain
	Source   Source
	Mempool  Mempool
	Recorder Recorder
	Metrics  Metrics
	Clock    clock.Clock
	Network  model.Network

	// HeadersPage is the header batch size; it should match the chain's page size so short
	// batches end header sync.
	HeadersPage   int
	MempoolLimit  int
	PollInterval  time.Duration
	RetryInterval time.Duration
	// BlockSignal, when set, cuts the poll wait short on new block notifications.
	BlockSignal <-chan struct{}
}

// Service runs the replay loop.
type Service struct {
	cfg    Config
	logger *zap.Logger
	peer   *chain.PeerState
	sleep  func(ctx context.Context, d time.Duration, signal <-chan struct{}) error
}

// NewService builds a Service with dependencies.
func NewService(cfg Config, logger *zap.Logger) (*Service, error) {
	if cfg.Chain == nil {
		return nil, errors.New("chain is required")
	}
	if cfg.Source == nil {
		return nil, errors.New("source is required")
	}
	if cfg.Metrics == nil {
		return nil, errors.New("replay metrics is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewDefaultClock()
	}
	if cfg.HeadersPage <= 0 {
		cfg.HeadersPage = chain.DefaultMaxHeadersPage
	}
	if cfg.MempoolLimit <= 0 {
		cfg.MempoolLimit = defaultMempoolLimit
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultRetryInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		cfg:    cfg,
		logger: logger.Named("replay").With(zap.String("network", string(cfg.Network))),
		peer:   chain.NewPeerState(peerID),
		sleep: func(ctx context.Context, d time.Duration, signal <-chan struct{}) error {
			return internalclock.WaitWithSignal(ctx, cfg.Clock, d, signal)
		},
	}, nil
}

// Run replays the node's chain until the context is canceled or the node serves data the
// chain rejects. Transient failures are retried after RetryInterval.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Recorder != nil {
		if err := s.cfg.Recorder.Reconcile(ctx, s.cfg.Chain.BlockHeight()); err != nil {
			s.logger.Warn("reconcile block records failed", zap.Error(err))
		}
	}

	state := s.cfg.Chain.StartSync(ctx)
	s.logger.Info("replay started",
		zap.String("state", string(state)),
		zap.Uint32("header_height", s.cfg.Chain.HeaderHeight()),
		zap.Uint32("block_height", s.cfg.Chain.BlockHeight()),
	)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		progressed, err := s.run(ctx)
		if err != nil {
			if fatal(err) {
				s.logger.Error("replay stopped", zap.Error(err))
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.cfg.RetryInterval))
			if sleepErr := s.sleep(ctx, s.cfg.RetryInterval, nil); sleepErr != nil {
				return sleepErr
			}
			continue
		}
		if !progressed {
			if err := s.sleep(ctx, s.cfg.PollInterval, s.cfg.BlockSignal); err != nil {
				return err
			}
		}
	}
}

func fatal(err error) bool {
	return errors.Is(err, ErrBlockRejected) || errors.Is(err, ErrHeaderRejected) || errors.Is(err, ErrNodeFork)
}

// run performs one pass over the stages and reports whether headers or blocks advanced.
func (s *Service) run(ctx context.Context) (bool, error) {
	started := time.Now()
	tip, err := s.cfg.Source.TipHeight(ctx)
	s.cfg.Metrics.ObserveStage(stageTip, err, 1, started)
	if err != nil {
		return false, err
	}
	s.cfg.Metrics.SetNodeHeight(tip)

	started = time.Now()
	headers, err := s.syncHeaders(ctx)
	s.cfg.Metrics.ObserveStage(stageHeaders, err, headers, started)
	if err != nil {
		return headers > 0, err
	}

	started = time.Now()
	blocks, err := s.syncBlocks(ctx)
	s.cfg.Metrics.ObserveStage(stageBlocks, err, blocks, started)
	if err != nil {
		return headers+blocks > 0, err
	}

	if headers+blocks > 0 {
		s.logger.Info("chain advanced",
			zap.Int("headers", headers),
			zap.Int("blocks", blocks),
			zap.Uint32("node_height", tip),
			zap.Uint32("block_height", s.cfg.Chain.BlockHeight()),
			zap.String("state", string(s.cfg.Chain.State())),
		)
	}

	if s.cfg.Mempool != nil && s.cfg.Chain.State() == chain.StateSynchronized {
		started = time.Now()
		accepted, err := s.syncMempool(ctx)
		s.cfg.Metrics.ObserveStage(stageMempool, err, accepted, started)
		if err != nil {
			return headers+blocks > 0, err
		}
	}
	return headers+blocks > 0, nil
}

// syncHeaders pulls header pages past the local header tip until the node returns a short
// page. An empty page is still handed to the chain so it can leave header sync.
func (s *Service) syncHeaders(ctx context.Context) (int, error) {
	total := 0
	for {
		from := s.cfg.Chain.HeaderHeight() + 1
		headers, err := s.cfg.Source.Headers(ctx, from, s.cfg.HeadersPage)
		if err != nil {
			return total, fmt.Errorf("fetch headers from %d: %w", from, err)
		}
		res, err := s.cfg.Chain.ProcessHeaders(ctx, headers)
		if err != nil {
			return total, err
		}
		total += res.Accepted

		switch res.Outcome {
		case chain.InvalidBlocks:
			s.recordRejectedHeader(ctx, headers, res.Reason)
			return total, fmt.Errorf("%w: %w", ErrHeaderRejected, res.Reason)
		case chain.ForkBlocks, chain.UnknownBlocks:
			return total, fmt.Errorf("%w: batch from height %d is %s", ErrNodeFork, from, res.Outcome)
		}
		if res.StateChanged {
			s.logger.Info("sync state changed", zap.String("state", string(res.State)))
		}
		if len(headers) < s.cfg.HeadersPage {
			return total, nil
		}
	}
}

// syncBlocks downloads and delivers the blocks the chain asks for, in request order.
func (s *Service) syncBlocks(ctx context.Context) (int, error) {
	total := 0
	for {
		hashes := s.cfg.Chain.SetMissingBlockHashes(s.peer)
		if len(hashes) == 0 {
			return total, nil
		}
		blocks, err := s.cfg.Source.Blocks(ctx, hashes)
		if err != nil {
			s.cfg.Chain.ReleasePeer(s.peer)
			return total, fmt.Errorf("fetch %d blocks: %w", len(hashes), err)
		}

		for _, blk := range blocks {
			res, err := s.cfg.Chain.ProcessBlock(ctx, blk, s.peer)
			total += res.Applied
			if err != nil {
				return total, s.blockFailed(ctx, blk, err)
			}
			if res.Outcome == chain.BlockApplied && s.cfg.Mempool != nil {
				if n := s.cfg.Mempool.RemoveBlock(ctx, blk); n > 0 {
					s.logger.Debug("mempool entries confirmed", zap.Int("count", n))
				}
			}
		}
	}
}

// blockFailed tells a rejected block apart from a transient failure: the chain bans the
// peer for consensus and decoding faults only.
func (s *Service) blockFailed(ctx context.Context, blk *wire.MsgBlock, cause error) error {
	s.cfg.Chain.ReleasePeer(s.peer)
	if !s.peer.Banned(s.cfg.Clock.Now()) {
		return cause
	}

	var height uint32
	if parent, ok := s.cfg.Chain.HeightOf(blk.Header.PrevBlock); ok {
		height = parent + 1
	}
	s.record(ctx, s.rejectedInfo(height, blk.Header, uint32(len(blk.Transactions)), cause))
	return fmt.Errorf("%w: %w", ErrBlockRejected, cause)
}

func (s *Service) recordRejectedHeader(ctx context.Context, headers []wire.BlockHeader, reason error) {
	tip := s.cfg.Chain.HeaderTip()
	for _, header := range headers {
		if header.PrevBlock == tip {
			s.record(ctx, s.rejectedInfo(s.cfg.Chain.HeaderHeight()+1, header, 0, reason))
			return
		}
	}
}

func (s *Service) rejectedInfo(height uint32, header wire.BlockHeader, txCount uint32, reason error) model.BlockInfo {
	return model.BlockInfo{
		Network:    s.cfg.Network,
		Height:     height,
		Hash:       header.BlockHash(),
		PrevHash:   header.PrevBlock,
		Timestamp:  header.Timestamp,
		Bits:       header.Bits,
		TxCount:    txCount,
		Status:     model.BlockRejected,
		Reason:     reason.Error(),
		VerifiedAt: s.cfg.Clock.Now(),
	}
}

func (s *Service) record(ctx context.Context, info model.BlockInfo) {
	if s.cfg.Recorder == nil {
		return
	}
	if err := s.cfg.Recorder.Record(ctx, info); err != nil {
		s.logger.Warn("rejected block not recorded", zap.Stringer("hash", info.Hash), zap.Error(err))
	}
}

// syncMempool admits node mempool transactions the pool does not hold yet. Rejections are
// expected for transactions whose parents are not admitted yet and are retried next pass.
func (s *Service) syncMempool(ctx context.Context) (int, error) {
	known := func(hash chainhash.Hash) bool {
		_, ok := s.cfg.Mempool.Lookup(hash)
		return ok
	}
	txs, err := s.cfg.Source.MempoolTransactions(ctx, known, s.cfg.MempoolLimit)
	if err != nil {
		return 0, fmt.Errorf("fetch mempool: %w", err)
	}

	height, cutoff := s.cfg.Chain.NextLockTimeCutoff()
	accepted := 0
	for _, tx := range txs {
		if _, err := s.cfg.Mempool.Accept(ctx, tx, height, cutoff); err != nil {
			if ctx.Err() != nil {
				return accepted, ctx.Err()
			}
			s.logger.Debug("mempool transaction rejected", zap.Stringer("txid", tx.TxHash()), zap.Error(err))
			continue
		}
		accepted++
	}
	return accepted, nil
}
