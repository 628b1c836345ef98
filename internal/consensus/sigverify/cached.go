package sigverify

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/jellydator/ttlcache/v3"
)

// DefaultCacheTTL keeps a verified signature long enough to cover the gap between mempool
// acceptance and block inclusion.
const DefaultCacheTTL = 2 * time.Hour

// Cached remembers successful verifications so a signature checked once, typically while
// validating the mempool, is not verified again when its block arrives. Failures are
// never cached.
type Cached struct {
	next    SignatureVerifier
	cache   *ttlcache.Cache[chainhash.Hash, struct{}]
	metrics Metrics
}

// NewCached wraps next with a cache of at most capacity entries that expire after ttl.
func NewCached(next SignatureVerifier, capacity uint64, ttl time.Duration, metrics Metrics) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{
		next: next,
		cache: ttlcache.New[chainhash.Hash, struct{}](
			ttlcache.WithTTL[chainhash.Hash, struct{}](ttl),
			ttlcache.WithCapacity[chainhash.Hash, struct{}](capacity),
			ttlcache.WithDisableTouchOnHit[chainhash.Hash, struct{}](),
		),
		metrics: metrics,
	}
}

// Start runs the expiry loop until Stop is called.
func (c *Cached) Start() {
	c.cache.Start()
}

// Stop ends the expiry loop.
func (c *Cached) Stop() {
	c.cache.Stop()
}

// Len returns the number of cached verifications.
func (c *Cached) Len() int {
	return c.cache.Len()
}

// Verify consults the cache before delegating.
func (c *Cached) Verify(message, signature, pubKey []byte) bool {
	key := cacheKey(message, signature, pubKey)
	if c.cache.Has(key) {
		c.observe(true)
		return true
	}
	c.observe(false)

	if !c.next.Verify(message, signature, pubKey) {
		return false
	}
	c.cache.Set(key, struct{}{}, ttlcache.DefaultTTL)
	return true
}

func (c *Cached) observe(hit bool) {
	if c.metrics != nil {
		c.metrics.ObserveLookup(hit)
	}
}

func cacheKey(message, signature, pubKey []byte) chainhash.Hash {
	buf := make([]byte, 0, len(message)+len(signature)+len(pubKey)+2)
	buf = append(buf, message...)
	buf = append(buf, byte(len(signature)))
	buf = append(buf, signature...)
	buf = append(buf, byte(len(pubKey)))
	buf = append(buf, pubKey...)
	return chainhash.HashH(buf)
}
