// Package chain keeps the header chain, schedules block downloads during initial sync and
// connects blocks to the verified tip.
package chain

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/params"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

const (
	DefaultMaxHeadersPage    = 2000
	DefaultMaxBlocksInFlight = 16
	DefaultMaxFutureDrift    = 2 * time.Hour
	DefaultSyncWindow        = 24 * time.Hour

	medianTimeBlocks = 11
)

// Config wires a Chain to its collaborators.
type Config struct {
	Params   *params.Params
	Headers  HeaderStore
	Blocks   BlockStore
	Verifier BlockVerifier
	Clock    clock.Clock
	Metrics  Metrics

	// MaxHeadersPage is the size of a full headers message. A shorter batch means the peer
	// has no more headers.
	MaxHeadersPage int
	// MaxBlocksInFlight caps the hashes outstanding per peer.
	MaxBlocksInFlight int
	// MaxFutureDrift is how far ahead of the clock a header time may be.
	MaxFutureDrift time.Duration
	// SyncWindow is the tip age below which the chain counts as caught up.
	SyncWindow time.Duration
}

type entry struct {
	header wire.BlockHeader
	hash   chainhash.Hash
}

type pendingBlock struct {
	block  *wire.MsgBlock
	hash   chainhash.Hash
	height uint32
	peer   *PeerState
}

// Chain is the header chain and the verified block tip. Every structural mutation happens
// under one lock; block verification runs outside it, one pass at a time.
type Chain struct {
	cfg    Config
	logger *zap.Logger

	mu          sync.Mutex
	entries     []entry
	index       map[chainhash.Hash]uint32
	blockHeight uint32
	nextRequest uint32
	putBack     []chainhash.Hash
	pending     []pendingBlock
	state       *fsm.FSM

	applyMu sync.Mutex
}

// New loads the stored header chain, seeding it with the network genesis when empty, and
// restores the verified block height from the block store.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Chain, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewDefaultClock()
	}
	if cfg.MaxHeadersPage <= 0 {
		cfg.MaxHeadersPage = DefaultMaxHeadersPage
	}
	if cfg.MaxBlocksInFlight <= 0 {
		cfg.MaxBlocksInFlight = DefaultMaxBlocksInFlight
	}
	if cfg.MaxFutureDrift <= 0 {
		cfg.MaxFutureDrift = DefaultMaxFutureDrift
	}
	if cfg.SyncWindow <= 0 {
		cfg.SyncWindow = DefaultSyncWindow
	}

	c := &Chain{
		cfg:    cfg,
		logger: logger.Named("chain").With(zap.String("network", cfg.Params.Network.String())),
		index:  make(map[chainhash.Hash]uint32),
		state:  newSyncFSM(),
	}

	headers, err := cfg.Headers.ReadHeaders(ctx)
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	if len(headers) == 0 {
		genesis := cfg.Params.GenesisBlock.Header
		if err := cfg.Headers.AppendHeaders(ctx, genesis); err != nil {
			return nil, fmt.Errorf("append genesis header: %w", err)
		}
		headers = []wire.BlockHeader{genesis}
	}
	if headers[0].BlockHash() != cfg.Params.GenesisHash {
		return nil, fmt.Errorf("first header %s: %w", headers[0].BlockHash(), ErrGenesisMismatch)
	}
	for i := range headers {
		if i > 0 && headers[i].PrevBlock != c.entries[i-1].hash {
			return nil, fmt.Errorf("stored header %d: %w", i, ErrBrokenLinkage)
		}
		c.appendLocked(headers[i])
	}

	for height := 1; height < len(c.entries); height++ {
		info, ok, err := cfg.Blocks.ReadBlockInfo(ctx, c.entries[height].hash)
		if err != nil {
			return nil, fmt.Errorf("read block info at %d: %w", height, err)
		}
		if !ok || info.Status != model.BlockVerified {
			break
		}
		c.blockHeight = uint32(height)
	}
	c.nextRequest = c.blockHeight + 1
	c.observeHeightsLocked()

	c.logger.Info("chain loaded",
		zap.Uint32("header_height", c.headerHeightLocked()),
		zap.Uint32("block_height", c.blockHeight),
	)
	return c, nil
}

// HeaderHeight is the height of the last accepted header.
func (c *Chain) HeaderHeight() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.headerHeightLocked()
}

// HeaderTip is the hash of the last accepted header.
func (c *Chain) HeaderTip() chainhash.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries[len(c.entries)-1].hash
}

// BlockHeight is the height of the last verified block.
func (c *Chain) BlockHeight() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.blockHeight
}

// BlockTip is the hash of the last verified block.
func (c *Chain) BlockTip() chainhash.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries[c.blockHeight].hash
}

// NextLockTimeCutoff returns the height of a block extending the verified tip and the time
// its transactions' lock times are checked against: the median time past once CSV is
// active, the current time before.
func (c *Chain) NextLockTimeCutoff() (uint32, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	height := c.blockHeight + 1
	if c.cfg.Params.IsCSVEnabled(height) {
		return height, c.medianTimePastLocked(height).Unix()
	}
	return height, c.cfg.Clock.Now().Unix()
}

// Header returns the accepted header at height.
func (c *Chain) Header(height uint32) (wire.BlockHeader, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if int(height) >= len(c.entries) {
		return wire.BlockHeader{}, false
	}
	return c.entries[height].header, true
}

// HeightOf returns the height of an accepted header.
func (c *Chain) HeightOf(hash chainhash.Hash) (uint32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	height, ok := c.index[hash]
	return height, ok
}

func (c *Chain) headerHeightLocked() uint32 {
	return uint32(len(c.entries) - 1)
}

func (c *Chain) appendLocked(header wire.BlockHeader) {
	hash := header.BlockHash()
	c.index[hash] = uint32(len(c.entries))
	c.entries = append(c.entries, entry{header: header, hash: hash})
}

func (c *Chain) truncateLocked(n int) {
	for _, e := range c.entries[n:] {
		delete(c.index, e.hash)
	}
	c.entries = c.entries[:n]
}

// recentLocked reports whether the header tip is younger than the sync window.
func (c *Chain) recentLocked() bool {
	tip := c.entries[len(c.entries)-1].header.Timestamp
	return c.cfg.Clock.Now().Sub(tip) < c.cfg.SyncWindow
}

// medianTimePastLocked is the median time of the up to eleven headers below height.
func (c *Chain) medianTimePastLocked(height uint32) time.Time {
	from := 0
	if int(height) > medianTimeBlocks {
		from = int(height) - medianTimeBlocks
	}
	times := make([]int64, 0, medianTimeBlocks)
	for _, e := range c.entries[from:height] {
		times = append(times, e.header.Timestamp.Unix())
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return time.Unix(times[len(times)/2], 0)
}

func (c *Chain) observeHeightsLocked() {
	if c.cfg.Metrics != nil {
		c.cfg.Metrics.SetHeights(c.headerHeightLocked(), c.blockHeight)
	}
}
