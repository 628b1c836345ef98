package chain

import (
	"context"

	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

// SyncState is the initial block download phase of the chain.
type SyncState string

const (
	StateNone         SyncState = "none"
	StateHeadersSync  SyncState = "headers_sync"
	StateBlocksSync   SyncState = "blocks_sync"
	StateSynchronized SyncState = "synchronized"
)

const (
	eventStartSync     = "start_sync"
	eventHeadersSynced = "headers_synced"
	eventBlocksSynced  = "blocks_synced"
)

// newSyncFSM builds the strictly forward state machine
// none -> headers_sync -> blocks_sync -> synchronized.
func newSyncFSM() *fsm.FSM {
	return fsm.NewFSM(
		string(StateNone),
		fsm.Events{
			{Name: eventStartSync, Src: []string{string(StateNone)}, Dst: string(StateHeadersSync)},
			{Name: eventHeadersSynced, Src: []string{string(StateHeadersSync)}, Dst: string(StateBlocksSync)},
			{Name: eventBlocksSynced, Src: []string{string(StateBlocksSync)}, Dst: string(StateSynchronized)},
		},
		fsm.Callbacks{},
	)
}

// fire applies event when the current state allows it and reports whether the state changed.
func (c *Chain) fire(ctx context.Context, event string) bool {
	if !c.state.Can(event) {
		return false
	}
	if err := c.state.Event(ctx, event); err != nil {
		return false
	}
	state := c.state.Current()
	c.logger.Info("sync state changed", zap.String("state", state))
	if c.cfg.Metrics != nil {
		c.cfg.Metrics.SetState(state)
	}
	return true
}

// advanceLocked moves the state machine forward as far as the current chain allows. A
// header batch shorter than a full page on a recent tip ends header sync, and a block
// height caught up with the header height on a recent tip ends block sync.
func (c *Chain) advanceLocked(ctx context.Context, headerBatch int) bool {
	changed := false
	if headerBatch >= 0 && headerBatch < c.cfg.MaxHeadersPage && c.recentLocked() {
		changed = c.fire(ctx, eventHeadersSynced) || changed
	}
	if c.blockHeight == c.headerHeightLocked() && c.recentLocked() {
		changed = c.fire(ctx, eventBlocksSynced) || changed
	}
	return changed
}

// StartSync enters header sync. It is a no-op once sync has started.
func (c *Chain) StartSync(ctx context.Context) SyncState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fire(ctx, eventStartSync)
	return SyncState(c.state.Current())
}

// State returns the current sync state.
func (c *Chain) State() SyncState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return SyncState(c.state.Current())
}
