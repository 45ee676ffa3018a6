package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline Prometheus metrics.
var (
	OracleRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partscout",
			Name:      "oracle_requests_total",
			Help:      "Total number of classification oracle requests",
		},
		[]string{"call", "status"},
	)

	OracleRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "partscout",
			Name:      "oracle_request_duration_seconds",
			Help:      "Classification oracle request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"call"},
	)

	PlacesRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partscout",
			Name:      "places_requests_total",
			Help:      "Total number of places provider requests",
		},
		[]string{"status"},
	)

	PlacesRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "partscout",
			Name:      "places_request_duration_seconds",
			Help:      "Places provider request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partscout",
			Name:      "search_cache_total",
			Help:      "Search result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	FallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "partscout",
			Name:      "fallback_total",
			Help:      "Searches served by the synthetic fallback generator",
		},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partscout",
			Name:      "searches_total",
			Help:      "Total store searches by outcome",
		},
		[]string{"outcome"}, // "ok" / "degraded" / "empty"
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers Prometheus pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(OracleRequestsTotal)
	prometheus.MustRegister(OracleRequestDuration)
	prometheus.MustRegister(PlacesRequestsTotal)
	prometheus.MustRegister(PlacesRequestDuration)
	prometheus.MustRegister(SearchCacheTotal)
	prometheus.MustRegister(FallbackTotal)
	prometheus.MustRegister(SearchesTotal)
	pipelineMetricsRegistered = true
}
