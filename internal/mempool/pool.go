// Package mempool remembers transactions that already passed full verification so block
// verification can skip their scripts.
package mempool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/transaction"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
	"github.com/jellydator/ttlcache/v3"
	"github.com/lightningnetwork/lnd/clock"
	"go.uber.org/zap"
)

// DefaultTTL matches the two week expiry bitcoind applies to its mempool.
const DefaultTTL = 14 * 24 * time.Hour

var ErrAlreadyKnown = errors.New("transaction is already in the mempool")

// Config wires a Pool to its collaborators.
type Config struct {
	Verifier TxVerifier
	UTXOs    transaction.UTXOView
	Clock    clock.Clock
	Metrics  Metrics
	TTL      time.Duration
	// Capacity bounds the number of entries; zero means unbounded.
	Capacity uint64
}

// Pool is a TTL-bounded set of verified transactions. Entries set the mempool spent flag
// of the outputs they consume, and the flags are cleared again when an entry leaves.
type Pool struct {
	cfg    Config
	logger *zap.Logger
	cache  *ttlcache.Cache[chainhash.Hash, model.MempoolEntry]

	// mu serializes Accept, which repositions the shared verifier.
	mu      sync.Mutex
	running atomic.Bool
}

func New(cfg Config, logger *zap.Logger) *Pool {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewDefaultClock()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	opts := []ttlcache.Option[chainhash.Hash, model.MempoolEntry]{
		ttlcache.WithTTL[chainhash.Hash, model.MempoolEntry](cfg.TTL),
		ttlcache.WithDisableTouchOnHit[chainhash.Hash, model.MempoolEntry](),
	}
	if cfg.Capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[chainhash.Hash, model.MempoolEntry](cfg.Capacity))
	}

	p := &Pool{
		cfg:    cfg,
		logger: logger.Named("mempool"),
		cache:  ttlcache.New[chainhash.Hash, model.MempoolEntry](opts...),
	}
	p.cache.OnEviction(p.onEviction)
	return p
}

// Start runs the expiry loop until Stop is called.
func (p *Pool) Start() {
	if p.running.CompareAndSwap(false, true) {
		go p.cache.Start()
	}
}

// Stop ends the expiry loop. It is a no-op when the loop is not running.
func (p *Pool) Stop() {
	if p.running.CompareAndSwap(true, false) {
		p.cache.Stop()
	}
}

// Accept verifies tx at height against the mempool view and remembers it.
func (p *Pool) Accept(ctx context.Context, tx *wire.MsgTx, height uint32, lockTimeCutoff int64) (entry model.MempoolEntry, err error) {
	started := time.Now()
	defer func() {
		if p.cfg.Metrics != nil {
			p.cfg.Metrics.ObserveAccept(err, started)
		}
	}()

	hash := tx.TxHash()
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cache.Has(hash) {
		return model.MempoolEntry{}, fmt.Errorf("%s: %w", hash, ErrAlreadyKnown)
	}

	p.cfg.Verifier.Reset(height, lockTimeCutoff)
	res, err := p.cfg.Verifier.Check(ctx, p.cfg.UTXOs, tx)
	if err != nil {
		return model.MempoolEntry{}, fmt.Errorf("verify %s: %w", hash, err)
	}

	entry = model.MempoolEntry{
		TxHash:    hash,
		Inputs:    res.Spent,
		Fee:       res.Fee,
		SigOpCost: res.SigOpCost,
		AddedAt:   p.cfg.Clock.Now(),
	}
	p.cache.Set(hash, entry, ttlcache.DefaultTTL)
	p.observeSize()

	p.logger.Debug("transaction accepted",
		zap.Stringer("tx", hash),
		zap.Uint64("fee", entry.Fee),
	)
	return entry, nil
}

// Lookup returns the entry of a transaction that passed verification.
func (p *Pool) Lookup(txHash chainhash.Hash) (model.MempoolEntry, bool) {
	item := p.cache.Get(txHash)
	if item == nil {
		return model.MempoolEntry{}, false
	}
	return item.Value(), true
}

// Remove drops a transaction and clears the mempool spent flags it set.
func (p *Pool) Remove(ctx context.Context, txHash chainhash.Hash) bool {
	item := p.cache.Get(txHash)
	if item == nil {
		return false
	}
	p.cache.Delete(txHash)
	p.release(ctx, item.Value())
	p.observeSize()
	return true
}

// RemoveBlock drops the transactions confirmed by blk and returns how many were pooled.
// Entries spending an output blk spent are evicted as conflicts.
func (p *Pool) RemoveBlock(ctx context.Context, blk *wire.MsgBlock) int {
	n := 0
	spent := make(map[wire.OutPoint]struct{})
	for _, tx := range blk.Transactions {
		if p.Remove(ctx, tx.TxHash()) {
			n++
		}
		for _, in := range tx.TxIn {
			spent[in.PreviousOutPoint] = struct{}{}
		}
	}
	if conflicts := p.removeConflicts(ctx, spent); conflicts > 0 {
		p.logger.Debug("conflicting entries evicted",
			zap.Stringer("block", blk.BlockHash()),
			zap.Int("count", conflicts),
		)
	}
	return n
}

// removeConflicts evicts the entries spending one of spent. Entries only spend confirmed
// outputs, so no pooled transaction depends on an evicted one.
func (p *Pool) removeConflicts(ctx context.Context, spent map[wire.OutPoint]struct{}) int {
	var conflicts []chainhash.Hash
	p.cache.Range(func(item *ttlcache.Item[chainhash.Hash, model.MempoolEntry]) bool {
		for _, op := range item.Value().Inputs {
			if _, ok := spent[op]; ok {
				conflicts = append(conflicts, item.Key())
				break
			}
		}
		return true
	})

	removed := 0
	for _, hash := range conflicts {
		if !p.Remove(ctx, hash) {
			continue
		}
		removed++
		if p.cfg.Metrics != nil {
			p.cfg.Metrics.ObserveEviction("conflict")
		}
	}
	return removed
}

// DeleteExpired evicts entries whose TTL passed.
func (p *Pool) DeleteExpired() {
	p.cache.DeleteExpired()
}

func (p *Pool) Len() int {
	return p.cache.Len()
}

// onEviction releases entries the cache dropped on its own. Explicit removals release
// their inputs in Remove.
func (p *Pool) onEviction(ctx context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[chainhash.Hash, model.MempoolEntry]) {
	if reason == ttlcache.EvictionReasonDeleted {
		return
	}
	label := "expired"
	if reason == ttlcache.EvictionReasonCapacityReached {
		label = "capacity"
	}
	if p.cfg.Metrics != nil {
		p.cfg.Metrics.ObserveEviction(label)
	}
	p.release(ctx, item.Value())
	p.observeSize()
}

func (p *Pool) release(ctx context.Context, entry model.MempoolEntry) {
	for _, op := range entry.Inputs {
		if err := p.cfg.UTXOs.Undo(ctx, op, model.MempoolSpend); err != nil {
			p.logger.Warn("clear mempool spend failed",
				zap.Stringer("tx", entry.TxHash),
				zap.Stringer("outpoint", op),
				zap.Error(err),
			)
		}
	}
}

func (p *Pool) observeSize() {
	if p.cfg.Metrics != nil {
		p.cfg.Metrics.SetSize(p.cache.Len())
	}
}
