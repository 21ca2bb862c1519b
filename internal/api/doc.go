// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

/*
Package api provides the HTTP layer of the recommendation service.

Key Components:

  - Router: chi route table and middleware stack (SetupChi)
  - Handler: recommendation, health and service-info handlers
  - ChiMiddleware: CORS (go-chi/cors) and rate limiting (go-chi/httprate)
  - Error mapping: pipeline errors to HTTP status codes

Routes:

	GET /                          service metadata
	GET /health                    static liveness message
	GET /health/live               liveness probe
	GET /health/ready              pings Vespa and Redis; 503 if either fails
	GET /recommend/product/{uid}   products for a user
	GET /recommend/user/{pid}      target users for a product
	GET /metrics                   Prometheus exposition
	GET /docs/*                    Swagger UI

Error Mapping:

	invalid path id                400 VALIDATION_ERROR
	recommend.ErrNotFound          404
	context.DeadlineExceeded       504
	recommend.ErrUpstream          500 (operation and schema only)
	anything else                  500

Error bodies carry a human-readable "detail" plus a machine-readable
"code" and the request id. Upstream error text is logged, never returned.

Thread Safety:

Handlers hold no per-request state; the Recommender and dependency
pingers they wrap must be safe for concurrent use.
*/
package api
