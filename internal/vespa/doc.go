// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

/*
Package vespa is the vector store client: a typed HTTP client for Vespa's
search and health APIs, guarded by a circuit breaker, plus the Store
adapter the recommendation pipeline queries through.

# Query Flow

	recommend.QuerySpec
	       |
	  BuildRequest      YQL + ranking inputs
	       |
	  Client.Query      POST /search/ (circuit breaker "vespa")
	       |
	  []recommend.Hit   root.children[].fields

# YQL

Identifiers (schemas, fields) come from code; only values are quoted.
Quote escapes backslashes, quotes and control characters, so request path
ids can never alter the query structure.

# Circuit Breaker

The breaker trips when the failure ratio over Interval reaches
FailureThreshold with at least MinRequests observed. Client-side
cancellations and 4xx responses do not count as failures. While open,
calls fail fast with gobreaker.ErrOpenState.
*/
package vespa
