package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	replayStageTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "replay",
		Name:      "stage_total",
		Help:      "Count of replay stage runs.",
	}, []string{"network", "stage", "status"})

	replayStageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "replay",
		Name:      "stage_duration_seconds",
		Help:      "Duration of replay stage runs.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"network", "stage", "status"})

	replayStageItems = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "replay",
		Name:      "stage_items",
		Help:      "Number of headers, blocks or transactions handled per stage run.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"network", "stage"})

	replayNodeHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "replay",
		Name:      "node_height",
		Help:      "Best height reported by the source node.",
	}, []string{"network"})
)

// Replay tracks metrics for the replay service.
type Replay struct {
	network model.Network
}

// NewReplay constructs a Replay metrics collector.
func NewReplay(network model.Network) *Replay {
	return &Replay{network: networkOf(network)}
}

// ObserveStage records a stage run outcome, duration and item count.
func (m Replay) ObserveStage(stage string, err error, items int, started time.Time) {
	status := statusOf(err)
	replayStageTotal.WithLabelValues(string(m.network), stage, status).Inc()
	replayStageDuration.WithLabelValues(string(m.network), stage, status).Observe(time.Since(started).Seconds())
	if err == nil {
		replayStageItems.WithLabelValues(string(m.network), stage).Observe(float64(items))
	}
}

// SetNodeHeight publishes the source node's best height.
func (m Replay) SetNodeHeight(height uint32) {
	replayNodeHeight.WithLabelValues(string(m.network)).Set(float64(height))
}
