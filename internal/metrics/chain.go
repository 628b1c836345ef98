package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chainHeadersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain",
		Name:      "header_batches_total",
		Help:      "Count of header batches processed by outcome.",
	}, []string{"network", "outcome"})

	chainHeadersAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain",
		Name:      "headers_accepted_total",
		Help:      "Count of headers appended to the header chain.",
	}, []string{"network"})

	chainHeadersDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain",
		Name:      "header_batch_duration_seconds",
		Help:      "Duration of header batch processing.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "outcome"})

	chainBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain",
		Name:      "blocks_total",
		Help:      "Count of blocks handed to the chain.",
	}, []string{"network", "status"})

	chainBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain",
		Name:      "block_duration_seconds",
		Help:      "Duration of block delivery handling, including verification of drained blocks.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"network", "status"})

	chainPenaltiesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain",
		Name:      "peer_penalties_total",
		Help:      "Count of misbehavior penalties applied to peers.",
	}, []string{"network", "reason"})

	chainHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain",
		Name:      "height",
		Help:      "Current header and block heights.",
	}, []string{"network", "kind"})

	chainState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain",
		Name:      "sync_state",
		Help:      "Current synchronization state, 1 for the active state.",
	}, []string{"network", "state"})
)

var syncStates = []string{"none", "headers_sync", "blocks_sync", "synchronized"}

// Chain tracks metrics for the chain state.
type Chain struct {
	network model.Network
}

// NewChain constructs a Chain metrics collector.
func NewChain(network model.Network) *Chain {
	return &Chain{network: networkOf(network)}
}

// ObserveHeaders records a header batch outcome.
func (m Chain) ObserveHeaders(outcome string, accepted int, started time.Time) {
	chainHeadersTotal.WithLabelValues(string(m.network), outcome).Inc()
	chainHeadersDuration.WithLabelValues(string(m.network), outcome).Observe(time.Since(started).Seconds())
	if accepted > 0 {
		chainHeadersAccepted.WithLabelValues(string(m.network)).Add(float64(accepted))
	}
}

// ObserveBlock records a block delivery outcome.
func (m Chain) ObserveBlock(err error, started time.Time) {
	status := statusOf(err)
	chainBlocksTotal.WithLabelValues(string(m.network), status).Inc()
	chainBlockDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
}

// ObservePenalty counts a penalty applied to a peer.
func (m Chain) ObservePenalty(reason string) {
	chainPenaltiesTotal.WithLabelValues(string(m.network), reason).Inc()
}

// SetHeights publishes the header and block tips.
func (m Chain) SetHeights(headers, blocks uint32) {
	chainHeight.WithLabelValues(string(m.network), "headers").Set(float64(headers))
	chainHeight.WithLabelValues(string(m.network), "blocks").Set(float64(blocks))
}

// SetState marks state as the active sync state.
func (m Chain) SetState(state string) {
	for _, s := range syncStates {
		v := 0.0
		if s == state {
			v = 1
		}
		chainState.WithLabelValues(string(m.network), s).Set(v)
	}
}
