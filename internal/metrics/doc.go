// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

// Package metrics defines the Prometheus metrics exported at /metrics.
//
// Metrics are registered on the default registry through promauto and are
// recorded through the Record* helpers so label sets stay consistent:
//
//   - vesparec_api_*: HTTP request count, latency and in-flight gauge
//   - vesparec_vespa_*: vector store query latency and errors by operation and schema
//   - vesparec_redis_*: session cache command latency and errors
//   - vesparec_recommend_*: outcome per flow and resolution path, blend inputs
//   - circuit_breaker_*: state, requests and transitions per breaker
package metrics
