package chain

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// locatorDense is the number of consecutive heights at the top of a locator.
const locatorDense = 10

// GetBlockHeaderLocator lists header hashes from the tip back to genesis, dense at first
// and then with a doubling stride. On a recent tip the tip itself is left out so the peer
// answers with at least one header.
func (c *Chain) GetBlockHeaderLocator() []chainhash.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := c.headerHeightLocked()
	if start > 0 && c.recentLocked() {
		start--
	}
	heights := locatorHeights(start)
	out := make([]chainhash.Hash, len(heights))
	for i, h := range heights {
		out[i] = c.entries[h].hash
	}
	return out
}

func locatorHeights(start uint32) []uint32 {
	heights := make([]uint32, 0, locatorDense+32)
	step := uint32(1)
	for h := int64(start); h > 0; h -= int64(step) {
		heights = append(heights, uint32(h))
		if len(heights) >= locatorDense {
			step *= 2
		}
	}
	return append(heights, 0)
}

// GetMissingHeaders answers a peer's locator: headers after the first locator hash known
// locally, up to a full page or the stop hash. A locator with no known hash forks at
// genesis. An empty locator asks for the stop header alone.
func (c *Chain) GetMissingHeaders(locator []chainhash.Hash, stop chainhash.Hash) []wire.BlockHeader {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(locator) == 0 {
		if height, ok := c.index[stop]; ok {
			return []wire.BlockHeader{c.entries[height].header}
		}
		return []wire.BlockHeader{}
	}

	var start uint32
	for _, hash := range locator {
		if height, ok := c.index[hash]; ok {
			start = height
			break
		}
	}

	tip := c.headerHeightLocked()
	out := make([]wire.BlockHeader, 0)
	for h := start + 1; h <= tip && len(out) < c.cfg.MaxHeadersPage; h++ {
		out = append(out, c.entries[h].header)
		if c.entries[h].hash == stop {
			break
		}
	}
	return out
}
