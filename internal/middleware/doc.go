// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

/*
Package middleware provides the HTTP middleware shared by every route.

Key Components:

  - RequestID: X-Request-ID propagation, integrated with the logging context
  - PrometheusMetrics: request count, latency and in-flight instrumentation
  - RequestTimeout: per-request deadline for the recommendation pipeline

All middleware use the func(http.Handler) http.Handler shape so they plug
directly into chi's r.Use.

Middleware Stack:

	r.Use(middleware.RequestID)           // request id + request logger
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors)                           // go-chi/cors
	r.Use(middleware.PrometheusMetrics)
	r.Route("/recommend", func(r chi.Router) {
	    r.Use(rateLimit)                  // go-chi/httprate
	    r.Use(middleware.RequestTimeout(cfg.Server.RequestTimeout))
	    ...
	})

Metric Labels:

PrometheusMetrics labels requests by chi route pattern (for example
/recommend/product/{uid}) rather than the raw path, so per-id paths do not
create new series. Unmatched requests are labelled "unmatched".
*/
package middleware
