package metrics

import (
	"strconv"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	blockVerifierTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "block_verifier",
		Name:      "blocks_total",
		Help:      "Count of full block verifications.",
	}, []string{"network", "status"})

	blockVerifierDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "block_verifier",
		Name:      "block_duration_seconds",
		Help:      "Duration of full block verification.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"network", "status"})

	blockVerifierTxCount = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "block_verifier",
		Name:      "block_transactions",
		Help:      "Number of transactions per verified block.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
	}, []string{"network"})

	txVerifierInputsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "tx_verifier",
		Name:      "inputs_total",
		Help:      "Count of input script verifications by spend path.",
	}, []string{"network", "path", "status"})

	txVerifierInputDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "tx_verifier",
		Name:      "input_duration_seconds",
		Help:      "Duration of input script verification by spend path.",
		Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .05, .1},
	}, []string{"network", "path", "status"})

	txVerifierTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "tx_verifier",
		Name:      "transactions_total",
		Help:      "Count of transaction verifications.",
	}, []string{"network", "cached", "status"})

	txVerifierTransactionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "tx_verifier",
		Name:      "transaction_duration_seconds",
		Help:      "Duration of transaction verification.",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
	}, []string{"network", "cached", "status"})

	sigCacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "signature_cache",
		Name:      "lookups_total",
		Help:      "Count of signature cache lookups by result.",
	}, []string{"network", "result"})
)

// BlockVerifier tracks metrics for full block verification.
type BlockVerifier struct {
	network model.Network
}

// NewBlockVerifier constructs a BlockVerifier metrics collector.
func NewBlockVerifier(network model.Network) *BlockVerifier {
	return &BlockVerifier{network: networkOf(network)}
}

// ObserveBlock records a block verification outcome.
func (m BlockVerifier) ObserveBlock(err error, txCount int, started time.Time) {
	status := statusOf(err)
	blockVerifierTotal.WithLabelValues(string(m.network), status).Inc()
	blockVerifierDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
	if err == nil {
		blockVerifierTxCount.WithLabelValues(string(m.network)).Observe(float64(txCount))
	}
}

// TransactionVerifier tracks metrics for transaction and input verification.
type TransactionVerifier struct {
	network model.Network
}

// NewTransactionVerifier constructs a TransactionVerifier metrics collector.
func NewTransactionVerifier(network model.Network) *TransactionVerifier {
	return &TransactionVerifier{network: networkOf(network)}
}

// ObserveInput records a single input script check.
func (m TransactionVerifier) ObserveInput(path string, err error, started time.Time) {
	status := statusOf(err)
	txVerifierInputsTotal.WithLabelValues(string(m.network), path, status).Inc()
	txVerifierInputDuration.WithLabelValues(string(m.network), path, status).Observe(time.Since(started).Seconds())
}

// ObserveTransaction records a transaction check.
func (m TransactionVerifier) ObserveTransaction(cached bool, err error, started time.Time) {
	status := statusOf(err)
	c := strconv.FormatBool(cached)
	txVerifierTransactionsTotal.WithLabelValues(string(m.network), c, status).Inc()
	txVerifierTransactionDuration.WithLabelValues(string(m.network), c, status).Observe(time.Since(started).Seconds())
}

// SignatureCache tracks hit rate of the signature cache.
type SignatureCache struct {
	network model.Network
}

// NewSignatureCache constructs a SignatureCache metrics collector.
func NewSignatureCache(network model.Network) *SignatureCache {
	return &SignatureCache{network: networkOf(network)}
}

// ObserveLookup counts a cache lookup.
func (m SignatureCache) ObserveLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	sigCacheLookupsTotal.WithLabelValues(string(m.network), result).Inc()
}
