package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mempoolAcceptTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "mempool",
		Name:      "accept_total",
		Help:      "Count of mempool acceptance attempts.",
	}, []string{"network", "status"})

	mempoolAcceptDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "mempool",
		Name:      "accept_duration_seconds",
		Help:      "Duration of mempool acceptance.",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
	}, []string{"network", "status"})

	mempoolEvictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "mempool",
		Name:      "evictions_total",
		Help:      "Count of mempool entries evicted by reason.",
	}, []string{"network", "reason"})

	mempoolSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "mempool",
		Name:      "entries",
		Help:      "Number of transactions held in the mempool.",
	}, []string{"network"})
)

// Mempool tracks metrics for the transaction pool.
type Mempool struct {
	network model.Network
}

// NewMempool constructs a Mempool metrics collector.
func NewMempool(network model.Network) *Mempool {
	return &Mempool{network: networkOf(network)}
}

// ObserveAccept records an acceptance attempt.
func (m Mempool) ObserveAccept(err error, started time.Time) {
	status := statusOf(err)
	mempoolAcceptTotal.WithLabelValues(string(m.network), status).Inc()
	mempoolAcceptDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
}

// ObserveEviction counts an eviction.
func (m Mempool) ObserveEviction(reason string) {
	mempoolEvictionsTotal.WithLabelValues(string(m.network), reason).Inc()
}

// SetSize publishes the pool size.
func (m Mempool) SetSize(n int) {
	mempoolSize.WithLabelValues(string(m.network)).Set(float64(n))
}
