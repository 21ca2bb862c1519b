// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vesparec_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vesparec_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vesparec_api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// Vector Store Metrics
	VespaQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vesparec_vespa_query_duration_seconds",
			Help:    "Duration of Vespa queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "schema"},
	)

	VespaQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vesparec_vespa_query_errors_total",
			Help: "Total number of failed Vespa queries",
		},
		[]string{"operation", "schema", "error_type"},
	)

	// Session Cache Metrics
	RedisCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vesparec_redis_command_duration_seconds",
			Help:    "Duration of Redis commands in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"command"},
	)

	RedisCommandErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vesparec_redis_command_errors_total",
			Help: "Total number of failed Redis commands",
		},
		[]string{"command", "error_type"},
	)

	// Recommendation Metrics
	RecommendOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vesparec_recommend_outcomes_total",
			Help: "Recommendation requests by flow and resolution path",
		},
		[]string{"flow", "path"}, // path: personalized, segment, cold_start, not_found, error
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vesparec_recommend_duration_seconds",
			Help:    "End-to-end orchestration latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"flow"},
	)

	RecommendResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vesparec_recommend_results",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"flow"},
	)

	BlendResolvedEvents = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vesparec_recommend_blend_resolved_events",
			Help:    "Recent interactions that resolved to an embedding per blend",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
	)

	// Dependency Metrics
	DependencyUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vesparec_dependency_up",
			Help: "Whether the last background ping of a dependency succeeded (1) or failed (0)",
		},
		[]string{"dependency"},
	)

	// Circuit Breaker Metrics
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
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// ErrorType buckets an error into a low-cardinality label value.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "upstream"
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordVespaQuery records a vector store query.
func RecordVespaQuery(operation, schema string, duration time.Duration, err error) {
	VespaQueryDuration.WithLabelValues(operation, schema).Observe(duration.Seconds())
	if err != nil {
		VespaQueryErrors.WithLabelValues(operation, schema, ErrorType(err)).Inc()
	}
}

// RecordRedisCommand records a session cache command.
func RecordRedisCommand(command string, duration time.Duration, err error) {
	RedisCommandDuration.WithLabelValues(command).Observe(duration.Seconds())
	if err != nil {
		RedisCommandErrors.WithLabelValues(command, ErrorType(err)).Inc()
	}
}

// RecordRecommendation records the outcome of one orchestration.
func RecordRecommendation(flow, path string, results int, duration time.Duration) {
	RecommendOutcomes.WithLabelValues(flow, path).Inc()
	RecommendDuration.WithLabelValues(flow).Observe(duration.Seconds())
	if path != "not_found" && path != "error" {
		RecommendResults.WithLabelValues(flow).Observe(float64(results))
	}
}

// RecordBlendResolved records how many recent interactions contributed to a blend.
func RecordBlendResolved(n int) {
	BlendResolvedEvents.Observe(float64(n))
}

// SetDependencyUp records the result of a dependency ping.
func SetDependencyUp(name string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	DependencyUp.WithLabelValues(name).Set(v)
}
