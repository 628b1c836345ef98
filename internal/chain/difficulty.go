package chain

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/params"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/pow"
)

// nextBitsLocked returns the target a header at height must commit to. The target changes
// only on retarget boundaries, except on networks that allow minimum-difficulty blocks
// after a long gap.
func (c *Chain) nextBitsLocked(height uint32, timestamp time.Time) uint32 {
	p := c.cfg.Params
	prev := c.entries[height-1].header
	if p.NoRetargeting {
		return prev.Bits
	}

	if height%params.RetargetInterval != 0 {
		if !p.ReduceMinDifficulty {
			return prev.Bits
		}
		if timestamp.After(prev.Timestamp.Add(p.MinDiffReductionTime)) {
			return p.PowLimitBits
		}
		return c.lastRealBitsLocked(height - 1)
	}

	first := c.entries[height-params.RetargetInterval].header
	actual := prev.Timestamp.Unix() - first.Timestamp.Unix()
	return pow.CalcRetarget(prev.Bits, actual, p.RetargetTimespan(), p.PowLimit)
}

// lastRealBitsLocked walks back from height to the last header that was not mined under
// the minimum-difficulty exception, stopping at a retarget boundary.
func (c *Chain) lastRealBitsLocked(height uint32) uint32 {
	for height > 0 && height%params.RetargetInterval != 0 && c.entries[height].header.Bits == c.cfg.Params.PowLimitBits {
		height--
	}
	return c.entries[height].header.Bits
}
