package chain

import (
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// BanThreshold is the score at which a peer should be disconnected.
	BanThreshold = 100
	// banScoreDecayPerMinute is subtracted from the score for every full minute without
	// misbehavior.
	banScoreDecayPerMinute = 1
)

// Misbehavior is a category of peer fault with a fixed penalty.
type Misbehavior int

const (
	// MisbehaviorSequencing is a block delivered out of request order, unrequested or for an
	// already applied height.
	MisbehaviorSequencing Misbehavior = iota
	// MisbehaviorMalformed is data that could not be decoded.
	MisbehaviorMalformed
	// MisbehaviorConsensus is well-formed data that breaks a consensus rule.
	MisbehaviorConsensus
)

func (m Misbehavior) String() string {
	switch m {
	case MisbehaviorSequencing:
		return "sequencing"
	case MisbehaviorMalformed:
		return "malformed"
	case MisbehaviorConsensus:
		return "consensus"
	default:
		return "unknown"
	}
}

func (m Misbehavior) penalty() int {
	switch m {
	case MisbehaviorSequencing:
		return 20
	default:
		return BanThreshold
	}
}

// PeerState is what the chain tracks about one remote peer: the block hashes it was asked
// for, in request order, and a decaying misbehavior score.
type PeerState struct {
	ID string

	mu          sync.Mutex
	requested   []chainhash.Hash
	score       int
	lastUpdated time.Time
}

func NewPeerState(id string) *PeerState {
	return &PeerState{ID: id}
}

// Penalize adds the penalty of m and reports whether the peer crossed the ban threshold.
func (p *PeerState) Penalize(now time.Time, m Misbehavior) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.decayTo(now)
	p.score += m.penalty()
	return p.score >= BanThreshold
}

// Score returns the decayed misbehavior score at now.
func (p *PeerState) Score(now time.Time) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.decayTo(now)
	return p.score
}

// Banned reports whether the decayed score is at or above the ban threshold.
func (p *PeerState) Banned(now time.Time) bool {
	return p.Score(now) >= BanThreshold
}

// InFlight returns the hashes requested from the peer and not delivered yet.
func (p *PeerState) InFlight() []chainhash.Hash {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]chainhash.Hash, len(p.requested))
	copy(out, p.requested)
	return out
}

func (p *PeerState) decayTo(now time.Time) {
	if p.lastUpdated.IsZero() || now.Before(p.lastUpdated) {
		p.lastUpdated = now
		return
	}
	minutes := int(now.Sub(p.lastUpdated) / time.Minute)
	if minutes <= 0 {
		return
	}
	p.score -= minutes * banScoreDecayPerMinute
	if p.score < 0 {
		p.score = 0
	}
	p.lastUpdated = p.lastUpdated.Add(time.Duration(minutes) * time.Minute)
}

func (p *PeerState) request(hashes []chainhash.Hash) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.requested = append(p.requested, hashes...)
}

func (p *PeerState) inFlightCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.requested)
}

// deliver removes hash from the request list. It fails when the hash was never requested or
// when earlier requests are still outstanding.
func (p *PeerState) deliver(hash chainhash.Hash) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, h := range p.requested {
		if h != hash {
			continue
		}
		if i != 0 {
			return ErrOutOfOrderBlock
		}
		p.requested = p.requested[1:]
		return nil
	}
	return ErrUnrequestedBlock
}

// release drops and returns every outstanding request.
func (p *PeerState) release() []chainhash.Hash {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := p.requested
	p.requested = nil
	return out
}
