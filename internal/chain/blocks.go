package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/block"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/script"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
	"go.uber.org/zap"
)

// BlockOutcome is what happened to a delivered block.
type BlockOutcome int

const (
	// BlockIgnored means the block's parent is not in the header chain yet.
	BlockIgnored BlockOutcome = iota
	// BlockQueued means the block waits for its parent to be connected.
	BlockQueued
	// BlockApplied means the block is part of the verified chain.
	BlockApplied
)

func (o BlockOutcome) String() string {
	switch o {
	case BlockIgnored:
		return "ignored"
	case BlockQueued:
		return "queued"
	case BlockApplied:
		return "applied"
	default:
		return "unknown"
	}
}

// BlockResult describes a processed block.
type BlockResult struct {
	Outcome BlockOutcome
	// Applied counts the blocks connected during the call, queued successors included.
	Applied int
	// Height is the verified block height after the call.
	Height uint32
	State  SyncState
}

// ProcessBlock accepts a block delivered by peer. A block for the next height is verified
// and connected together with any queued successors; others wait in the pending queue.
// Sequencing faults and verification failures penalize the delivering peer.
func (c *Chain) ProcessBlock(ctx context.Context, blk *wire.MsgBlock, peer *PeerState) (BlockResult, error) {
	if peer == nil {
		return BlockResult{}, ErrNilPeer
	}
	hash := blk.BlockHash()

	c.mu.Lock()
	res, height, err := c.admitLocked(blk, hash, peer)
	c.mu.Unlock()
	if err != nil {
		c.penalize(peer, MisbehaviorSequencing, err)
		return res, fmt.Errorf("block %s from %s: %w", hash, peer.ID, err)
	}
	if res.Outcome == BlockIgnored {
		return res, nil
	}

	applied, err := c.applyPending(ctx)
	res.Applied = applied

	c.mu.Lock()
	res.Height = c.blockHeight
	res.State = SyncState(c.state.Current())
	if c.blockHeight >= height {
		res.Outcome = BlockApplied
	}
	c.mu.Unlock()
	return res, err
}

// admitLocked runs the sequencing checks and queues the block.
func (c *Chain) admitLocked(blk *wire.MsgBlock, hash chainhash.Hash, peer *PeerState) (BlockResult, uint32, error) {
	res := BlockResult{Height: c.blockHeight, State: SyncState(c.state.Current())}

	parent, ok := c.index[blk.Header.PrevBlock]
	if !ok {
		c.logger.Debug("block with unknown parent ignored", zap.Stringer("hash", hash))
		return res, 0, nil
	}
	height := parent + 1
	if height <= c.blockHeight {
		return res, height, fmt.Errorf("height %d, verified %d: %w", height, c.blockHeight, ErrDuplicateBlock)
	}
	if err := peer.deliver(hash); err != nil {
		if errors.Is(err, ErrOutOfOrderBlock) {
			c.putBackLocked(peer.release())
		}
		return res, height, err
	}
	if height > c.headerHeightLocked() || c.entries[height].hash != hash {
		c.putBackLocked([]chainhash.Hash{hash})
		return res, height, ErrUnknownBlock
	}

	c.pending = append(c.pending, pendingBlock{block: blk, hash: hash, height: height, peer: peer})
	res.Outcome = BlockQueued
	return res, height, nil
}

// applyPending connects queued blocks while one is ready. Only one pass runs at a time; a
// caller that finds a pass in progress leaves its block to that pass, which rechecks the
// queue before it stops.
func (c *Chain) applyPending(ctx context.Context) (int, error) {
	applied := 0
	for {
		if !c.applyMu.TryLock() {
			return applied, nil
		}
		n, err := c.drain(ctx)
		c.applyMu.Unlock()
		applied += n
		if err != nil || !c.hasReady() {
			return applied, err
		}
	}
}

func (c *Chain) drain(ctx context.Context) (int, error) {
	applied := 0
	for {
		c.mu.Lock()
		next, ok := c.takeReadyLocked()
		var chainCtx block.ChainContext
		if ok {
			chainCtx = c.chainContextLocked(next.height)
		}
		c.mu.Unlock()
		if !ok {
			return applied, nil
		}

		if err := c.apply(ctx, next, chainCtx); err != nil {
			return applied, err
		}
		applied++
	}
}

func (c *Chain) apply(ctx context.Context, p pendingBlock, chainCtx block.ChainContext) error {
	started := time.Now()
	res, err := c.cfg.Verifier.Verify(ctx, p.block, chainCtx)
	if c.cfg.Metrics != nil {
		c.cfg.Metrics.ObserveBlock(err, started)
	}
	if err != nil {
		c.mu.Lock()
		c.putBackLocked(append([]chainhash.Hash{p.hash}, p.peer.release()...))
		c.mu.Unlock()
		if errors.Is(err, block.ErrCommit) {
			return fmt.Errorf("connect block %s at %d: %w", p.hash, p.height, err)
		}
		c.penalize(p.peer, misbehaviorOf(err), err)
		return fmt.Errorf("block %s at %d from %s: %w", p.hash, p.height, p.peer.ID, err)
	}

	c.mu.Lock()
	c.blockHeight = p.height
	c.advanceLocked(ctx, -1)
	c.observeHeightsLocked()
	c.mu.Unlock()

	info := model.BlockInfo{
		Network:    model.Network(c.cfg.Params.Network.String()),
		Height:     p.height,
		Hash:       p.hash,
		PrevHash:   p.block.Header.PrevBlock,
		Timestamp:  p.block.Header.Timestamp,
		Bits:       p.block.Header.Bits,
		TxCount:    uint32(res.TxCount),
		Fee:        res.Fee,
		SigOpCost:  res.SigOpCost,
		Weight:     res.Weight,
		Status:     model.BlockVerified,
		VerifiedAt: c.cfg.Clock.Now(),
	}
	// The UTXO set already reflects the block, so the tip advances even when the record
	// cannot be written.
	if err := c.cfg.Blocks.WriteBlock(ctx, p.block, info); err != nil {
		return fmt.Errorf("write block %s at %d: %w", p.hash, p.height, err)
	}
	c.logger.Debug("block connected",
		zap.Uint32("height", p.height),
		zap.Stringer("hash", p.hash),
		zap.Uint64("fee", res.Fee),
	)
	return nil
}

// takeReadyLocked removes and returns the first queued block that extends the verified
// tip, dropping entries the tip has already passed.
func (c *Chain) takeReadyLocked() (pendingBlock, bool) {
	kept := c.pending[:0]
	var (
		ready pendingBlock
		found bool
	)
	for _, p := range c.pending {
		switch {
		case p.height <= c.blockHeight:
		case !found && p.height == c.blockHeight+1:
			ready, found = p, true
		default:
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(c.pending); i++ {
		c.pending[i] = pendingBlock{}
	}
	c.pending = kept
	return ready, found
}

func (c *Chain) hasReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.pending {
		if p.height == c.blockHeight+1 {
			return true
		}
	}
	return false
}

// PendingBlocks is the number of blocks waiting for their parent.
func (c *Chain) PendingBlocks() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.pending)
}

func (c *Chain) chainContextLocked(height uint32) block.ChainContext {
	return block.ChainContext{
		TipHeight:      height - 1,
		TipHash:        c.entries[height-1].hash,
		Height:         height,
		ExpectedBits:   c.entries[height].header.Bits,
		MedianTimePast: c.medianTimePastLocked(height),
	}
}

func (c *Chain) penalize(peer *PeerState, m Misbehavior, reason error) {
	banned := peer.Penalize(c.cfg.Clock.Now(), m)
	if c.cfg.Metrics != nil {
		c.cfg.Metrics.ObservePenalty(m.String())
	}
	c.logger.Warn("peer misbehaved",
		zap.String("peer", peer.ID),
		zap.Stringer("kind", m),
		zap.Bool("banned", banned),
		zap.Error(reason),
	)
	if banned {
		c.mu.Lock()
		c.putBackLocked(peer.release())
		c.mu.Unlock()
	}
}

// misbehaviorOf maps a verification failure to a penalty category.
func misbehaviorOf(err error) Misbehavior {
	for _, malformed := range []error{
		script.ErrEndOfStream,
		script.ErrScriptOverflow,
		script.ErrOpCountOverflow,
		script.ErrInvalidOp,
		script.ErrDisabledOp,
		script.ErrMissingOpEndIf,
		script.ErrUnbalancedConditional,
		script.ErrPushSize,
		script.ErrWitnessCountOverflow,
	} {
		if errors.Is(err, malformed) {
			return MisbehaviorMalformed
		}
	}
	return MisbehaviorConsensus
}
