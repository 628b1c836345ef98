// Package clock provides context-aware waits on an injectable clock.
package clock

import (
	"context"
	"time"

	"github.com/lightningnetwork/lnd/clock"
)

// SleepWithContext waits for d on clk or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, clk clock.Clock, d time.Duration) error {
	return WaitWithSignal(ctx, clk, d, nil)
}

// WaitWithSignal waits for d on clk, returning early with nil when signal fires and with the
// context error when ctx is canceled. A nil signal never fires.
func WaitWithSignal(ctx context.Context, clk clock.Clock, d time.Duration, signal <-chan struct{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-signal:
		return nil
	case <-clk.TickAfter(d):
		return nil
	}
}
