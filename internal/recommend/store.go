// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package recommend

import "context"

// Query operation names, used for metrics and error context.
const (
	OpFetchVector     = "fetch_vector"
	OpFetchVectors    = "fetch_vectors"
	OpFetchSegment    = "fetch_segment_vector"
	OpFetchMetadata   = "fetch_metadata"
	OpColdStartList   = "cold_start_list"
	OpNearestNeighbor = "nearest_neighbor"
	OpRecentEvents    = "recent_events"
)

// Condition restricts a query to documents whose Field matches one of Values.
type Condition struct {
	Field  string
	Values []string
}

// Ordering sorts results by a numeric attribute.
type Ordering struct {
	Field      string
	Descending bool
}

// NearestNeighbor describes an approximate nearest-neighbor ranking.
type NearestNeighbor struct {
	// Field is the indexed tensor field searched.
	Field string
	// QueryName is the ranking input the vector is bound to, e.g. "q".
	QueryName string
	// Vector is the query vector.
	Vector Embedding
	// TargetHits is the candidate pool examined per search (breadth/accuracy knob).
	TargetHits int
	// Ranking is the rank profile, e.g. "default".
	Ranking string
}

// QuerySpec is a store query: filter, hit count and optional ANN ranking.
type QuerySpec struct {
	// Operation names the query for metrics and error context.
	Operation string
	Schema    string
	// Select lists returned fields; nil selects all.
	Select  []string
	Where   []Condition
	OrderBy []Ordering
	Nearest *NearestNeighbor
	// Summary selects a document summary class.
	Summary string
	Hits    int
}

// Hit is a single store result.
type Hit struct {
	ID        string
	Relevance float64
	Fields    map[string]any
}

// VectorStore executes queries against the vector/document store.
type VectorStore interface {
	Query(ctx context.Context, spec QuerySpec) ([]Hit, error)
}

// SessionCache reads recent-interaction lists, most recent first.
// A missing key yields an empty slice.
type SessionCache interface {
	RecentEvents(ctx context.Context, key string) ([]string, error)
}
