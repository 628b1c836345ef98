package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/wire"
	"go.uber.org/zap"
)

// HeadersOutcome is how a header batch related to the local chain.
type HeadersOutcome int

const (
	// Success means the batch was consistent with the chain; new headers, if any, were
	// appended.
	Success HeadersOutcome = iota
	// UnknownBlocks means the batch does not connect to any local header and the peer
	// needs a broader locator.
	UnknownBlocks
	// ForkBlocks means the batch diverges from headers already stored. Forks are reported,
	// never applied.
	ForkBlocks
	// InvalidBlocks means a new header broke a rule. Headers before it were kept.
	InvalidBlocks
)

func (o HeadersOutcome) String() string {
	switch o {
	case Success:
		return "success"
	case UnknownBlocks:
		return "unknown_blocks"
	case ForkBlocks:
		return "fork_blocks"
	case InvalidBlocks:
		return "invalid_blocks"
	default:
		return "unknown"
	}
}

// HeadersResult describes a processed header batch.
type HeadersResult struct {
	Outcome  HeadersOutcome
	Accepted int
	// Reason is the rule the first rejected header broke, set with InvalidBlocks.
	Reason       error
	State        SyncState
	StateChanged bool
}

// ProcessHeaders connects an ordered header batch to the chain. New headers are checked
// one by one and appended until the first invalid one; the valid prefix stays persisted.
// The returned error is set only when persistence fails.
func (c *Chain) ProcessHeaders(ctx context.Context, headers []wire.BlockHeader) (res HeadersResult, err error) {
	started := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() {
		res.State = SyncState(c.state.Current())
		if c.cfg.Metrics != nil {
			c.cfg.Metrics.ObserveHeaders(res.Outcome.String(), res.Accepted, started)
		}
	}()

	if len(headers) == 0 {
		res.StateChanged = c.advanceLocked(ctx, 0)
		return res, nil
	}

	pos, ok := c.index[headers[0].PrevBlock]
	if !ok {
		res.Outcome = UnknownBlocks
		return res, nil
	}

	// Skip the part of the batch the chain already has.
	tip := c.headerHeightLocked()
	i := 0
	for ; pos < tip && i < len(headers); i++ {
		pos++
		if c.entries[pos].hash != headers[i].BlockHash() {
			c.logger.Warn("header batch forks from the stored chain",
				zap.Uint32("height", pos),
				zap.Stringer("stored", c.entries[pos].hash),
				zap.Stringer("received", headers[i].BlockHash()),
			)
			res.Outcome = ForkBlocks
			return res, nil
		}
	}
	fresh := headers[i:]
	if len(fresh) == 0 {
		res.StateChanged = c.advanceLocked(ctx, len(headers))
		return res, nil
	}

	before := len(c.entries)
	for j := range fresh {
		if err := c.checkHeaderLocked(&fresh[j]); err != nil {
			res.Outcome = InvalidBlocks
			res.Reason = fmt.Errorf("header %s at %d: %w", fresh[j].BlockHash(), len(c.entries), err)
			c.logger.Warn("invalid header", zap.Error(res.Reason))
			break
		}
		c.appendLocked(fresh[j])
	}

	accepted := make([]wire.BlockHeader, 0, len(c.entries)-before)
	for _, e := range c.entries[before:] {
		accepted = append(accepted, e.header)
	}
	if len(accepted) > 0 {
		if err := c.cfg.Headers.AppendHeaders(ctx, accepted...); err != nil {
			c.truncateLocked(before)
			return res, fmt.Errorf("append headers: %w", err)
		}
	}
	res.Accepted = len(accepted)
	c.observeHeightsLocked()

	if res.Outcome == Success {
		res.StateChanged = c.advanceLocked(ctx, len(headers))
	}
	return res, nil
}

// checkHeaderLocked validates header as the successor of the current header tip.
func (c *Chain) checkHeaderLocked(header *wire.BlockHeader) error {
	height := uint32(len(c.entries))
	if header.PrevBlock != c.entries[height-1].hash {
		return ErrBrokenLinkage
	}
	if mtp := c.medianTimePastLocked(height); !header.Timestamp.After(mtp) {
		return fmt.Errorf("time %s, median %s: %w", header.Timestamp, mtp, ErrTimeTooOld)
	}
	if limit := c.cfg.Clock.Now().Add(c.cfg.MaxFutureDrift); header.Timestamp.After(limit) {
		return fmt.Errorf("time %s, limit %s: %w", header.Timestamp, limit, ErrTimeTooNew)
	}
	return c.cfg.Verifier.VerifyHeader(header, c.nextBitsLocked(height, header.Timestamp))
}
