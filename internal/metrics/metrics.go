// Package metrics defines the Prometheus instruments for the recommendation
// pipeline, its catalog collaborators, and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline
	Queries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodtunes_queries_total",
			Help: "Recommendation queries by outcome reason",
		},
		[]string{"reason"}, // ok, no_candidates, oracle_unavailable, canceled
	)

	QueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moodtunes_query_duration_seconds",
			Help:    "End-to-end duration of recommendation queries",
			Buckets: prometheus.DefBuckets,
		},
	)

	Resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodtunes_resolutions_total",
			Help: "Mood resolutions by method and category",
		},
		[]string{"method", "category"},
	)

	StrategyRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodtunes_retrieval_strategy_runs_total",
			Help: "Retrieval strategy attempts by result",
		},
		[]string{"strategy", "result"}, // result: hit, empty, error
	)

	Candidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moodtunes_candidates",
			Help:    "Number of candidates returned by retrieval",
			Buckets: []float64{0, 1, 5, 10, 15, 20, 30, 50},
		},
	)

	RankingModes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodtunes_ranking_mode_total",
			Help: "Rankings by scoring mode",
		},
		[]string{"mode"}, // feature, metadata
	)

	OracleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodtunes_oracle_errors_total",
			Help: "Errors returned by external oracles",
		},
		[]string{"oracle", "operation"},
	)

	// Feature cache
	FeatureCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodtunes_feature_cache_hits_total",
			Help: "Audio feature bundles served from the cache",
		},
	)

	FeatureCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodtunes_feature_cache_misses_total",
			Help: "Audio feature bundles fetched from the catalog",
		},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// HTTP
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodtunes_api_requests_total",
			Help: "HTTP API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodtunes_api_request_duration_seconds",
			Help:    "HTTP API request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordQuery records the outcome and duration of one recommendation query.
func RecordQuery(reason string, duration time.Duration) {
	if reason == "" {
		reason = "ok"
	}
	Queries.WithLabelValues(reason).Inc()
	QueryDuration.Observe(duration.Seconds())
}

// RecordStrategy records one retrieval strategy attempt.
func RecordStrategy(strategy string, found int, err error) {
	result := "hit"
	switch {
	case err != nil:
		result = "error"
	case found == 0:
		result = "empty"
	}
	StrategyRuns.WithLabelValues(strategy, result).Inc()
}

// RecordOracleError counts a failed call to an external oracle.
func RecordOracleError(oracle, operation string) {
	OracleErrors.WithLabelValues(oracle, operation).Inc()
}

// RecordAPIRequest records one HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
