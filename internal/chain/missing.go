package chain

import (
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// SetMissingBlockHashes tops up the peer's outstanding requests: hashes handed back after
// failures first, then the next headers without a block. The returned hashes are recorded
// on the peer in request order and the peer must deliver them in that order.
func (c *Chain) SetMissingBlockHashes(peer *PeerState) []chainhash.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()

	want := c.cfg.MaxBlocksInFlight - peer.inFlightCount()
	if want <= 0 {
		return nil
	}

	out := make([]chainhash.Hash, 0, want)
	for len(out) < want && len(c.putBack) > 0 {
		hash := c.putBack[len(c.putBack)-1]
		c.putBack = c.putBack[:len(c.putBack)-1]
		if height, ok := c.index[hash]; ok && height > c.blockHeight && !c.isPendingLocked(hash) {
			out = append(out, hash)
		}
	}

	if c.nextRequest <= c.blockHeight {
		c.nextRequest = c.blockHeight + 1
	}
	for tip := c.headerHeightLocked(); len(out) < want && c.nextRequest <= tip; c.nextRequest++ {
		out = append(out, c.entries[c.nextRequest].hash)
	}

	peer.request(out)
	return out
}

// PutBackMissingBlocks returns hashes to the download stack so another peer can fetch them.
// The lowest height is handed out first.
func (c *Chain) PutBackMissingBlocks(hashes []chainhash.Hash) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.putBackLocked(hashes)
}

func (c *Chain) putBackLocked(hashes []chainhash.Hash) {
	type candidate struct {
		hash   chainhash.Hash
		height uint32
	}
	candidates := make([]candidate, 0, len(hashes))
	for _, hash := range hashes {
		if height, ok := c.index[hash]; ok && height > c.blockHeight {
			candidates = append(candidates, candidate{hash: hash, height: height})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].height > candidates[j].height })
	for _, cand := range candidates {
		c.putBack = append(c.putBack, cand.hash)
	}
}

func (c *Chain) isPendingLocked(hash chainhash.Hash) bool {
	for _, p := range c.pending {
		if p.hash == hash {
			return true
		}
	}
	return false
}

// ReleasePeer hands every block still requested from peer back to the download stack, as
// when the peer disconnects. It returns the number of released hashes.
func (c *Chain) ReleasePeer(peer *PeerState) int {
	hashes := peer.release()
	c.PutBackMissingBlocks(hashes)
	return len(hashes)
}
