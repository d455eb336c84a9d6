package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "wordex"

// Dictionary fetch and lookup Prometheus metrics.
var (
	FetchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "Total number of remote dictionary requests",
		},
		[]string{"kind", "status"}, // status: "success" / "not_found" / "unauthorized" / "error"
	)

	FetchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Remote dictionary request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"kind"},
	)

	FetchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_cache_total",
			Help:      "Fetch cache lookups by outcome",
		},
		[]string{"result"}, // "hit" / "miss" / "shared" / "store_hit"
	)

	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total number of lookup queries by handler",
		},
		[]string{"handler"},
	)
)

var lookupMetricsRegistered bool

// RegisterLookupMetrics registers the fetch and lookup metrics. Must be called once from main.
func RegisterLookupMetrics() {
	if lookupMetricsRegistered {
		return
	}
	prometheus.MustRegister(FetchRequestsTotal)
	prometheus.MustRegister(FetchRequestDuration)
	prometheus.MustRegister(FetchCacheTotal)
	prometheus.MustRegister(QueriesTotal)
	lookupMetricsRegistered = true
}
