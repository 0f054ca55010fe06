package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paperfind",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"sort", "outcome"}, // outcome: "hit" / "empty" / "error"
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "paperfind",
			Name:      "search_duration_seconds",
			Help:      "Search request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"sort"},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "paperfind",
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	SnapshotFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "paperfind",
			Name:      "snapshot_fetch_duration_seconds",
			Help:      "Corpus snapshot fetch duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	SnapshotRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paperfind",
			Name:      "snapshot_refresh_total",
			Help:      "Corpus snapshot refreshes by trigger",
		},
		[]string{"trigger"}, // "miss" / "invalidate"
	)

	CorrectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paperfind",
			Name:      "corrections_total",
			Help:      "Query corrections offered",
		},
		[]string{"kind"}, // "autocorrect" / "did_you_mean"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(SnapshotFetchDuration)
	prometheus.MustRegister(SnapshotRefreshTotal)
	prometheus.MustRegister(CorrectionsTotal)
	searchMetricsRegistered = true
}
