// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

// Package main is the entry point for the recommendation server.
//
// # Startup
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, optional config.yaml, then environment (Koanf v2)
//  2. Logging: zerolog, level and format from LOG_LEVEL / LOG_FORMAT
//  3. Upstreams: Vespa HTTP client behind a circuit breaker, Redis client
//  4. Dependency wait: exponential backoff until both answer or
//     STARTUP_WAIT_TIMEOUT passes; the server starts either way
//  5. Orchestrator and chi router
//  6. Supervisor tree: HTTP server and the dependency monitor
//
// # Configuration
//
// Frequently used environment variables:
//
//	HTTP_PORT=8000
//	VESPA_HOST=vespa VESPA_PORT=8080
//	REDIS_HOST=redis REDIS_PORT=6379
//	RECOMMEND_HITS=5 RECOMMEND_TARGET_HITS=10
//	RECOMMEND_HALF_LIFE=1h RECOMMEND_ALPHA=0.7 RECOMMEND_BETA=0.3
//	LATEST_MODEL_VERSION=latest COLD_START_STRATEGY=global
//	CORS_ORIGINS=https://shop.example.com
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The HTTP server drains
// in-flight requests for up to SHUTDOWN_TIMEOUT, then Redis is closed.
//
// # Example
//
//	docker run -d \
//	  -e VESPA_HOST=vespa \
//	  -e REDIS_HOST=redis \
//	  -p 8000:8000 \
//	  ghcr.io/tomtom215/vesparec
package main
