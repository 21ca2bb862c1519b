// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package recommend

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EntityType identifies one side of the user/product relationship.
type EntityType string

const (
	// EntityUser is a user, keyed by uid.
	EntityUser EntityType = "user"
	// EntityProduct is a product, keyed by pid.
	EntityProduct EntityType = "product"
)

// SegmentSchema holds cohort-level fallback embeddings keyed by segment_id.
const SegmentSchema = "segment_vector"

// Field names shared across schemas.
const (
	FieldEmbedding    = "embedding"
	FieldModelVersion = "model_version"
	FieldSegmentID    = "segment_id"
	FieldStrategyID   = "strategy_id"
	FieldRank         = "rank"
)

// Valid reports whether e is a known entity type.
func (e EntityType) Valid() bool {
	return e == EntityUser || e == EntityProduct
}

// Opposite returns the entity type recommendations are drawn from.
func (e EntityType) Opposite() EntityType {
	if e == EntityUser {
		return EntityProduct
	}
	return EntityUser
}

// IDField returns the identifier field name (uid or pid).
func (e EntityType) IDField() string {
	if e == EntityUser {
		return "uid"
	}
	return "pid"
}

// VectorSchema returns the schema holding versioned embeddings.
func (e EntityType) VectorSchema() string { return string(e) + "_vector" }

// MetadataSchema returns the schema holding entity attributes.
func (e EntityType) MetadataSchema() string { return string(e) + "_data" }

// SummaryName returns the document summary used for ANN results.
func (e EntityType) SummaryName() string { return string(e) + "_summary" }

// ColdStartSchema returns the schema holding pre-ranked fallback entries.
func (e EntityType) ColdStartSchema() string { return string(e) + "_cold_start" }

// Embedding is a dense vector in the shared similarity space. Components
// are float32 to match the tensor<float> fields they are stored in.
type Embedding []float32

// InteractionEvent is one entry of a user's recent-interaction list.
type InteractionEvent struct {
	// Timestamp is the event time in epoch seconds.
	Timestamp float64
	// ReferencedID is the id of the entity interacted with.
	ReferencedID string
}

// ParseInteractionEvent parses a serialized "timestamp:id" cache entry.
// The id may itself contain colons; only the first one separates.
func ParseInteractionEvent(raw string) (InteractionEvent, error) {
	idx := strings.IndexByte(raw, ':')
	if idx <= 0 || idx == len(raw)-1 {
		return InteractionEvent{}, fmt.Errorf("malformed interaction %q: want timestamp:id", raw)
	}

	ts, err := strconv.ParseFloat(strings.TrimSpace(raw[:idx]), 64)
	if err != nil || math.IsNaN(ts) || math.IsInf(ts, 0) {
		return InteractionEvent{}, fmt.Errorf("malformed interaction %q: bad timestamp", raw)
	}

	return InteractionEvent{Timestamp: ts, ReferencedID: raw[idx+1:]}, nil
}

// EntityMetadata holds the attributes of an entity.
type EntityMetadata struct {
	Fields map[string]any
	// SegmentID is set for users assigned to a cohort.
	SegmentID string
}

// Candidate is one nearest-neighbor hit, reduced to its field mapping.
type Candidate struct {
	Fields map[string]any
}

// ColdStartEntry is a pre-ranked fallback candidate.
type ColdStartEntry struct {
	Rank       int
	StrategyID string
	Fields     map[string]any
}

// Product is the public shape of a recommended product.
type Product struct {
	PID        string   `json:"pid"`
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

// User is the public shape of a targeted user.
type User struct {
	UID     string `json:"uid"`
	Country string `json:"country"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
}

// ProjectProduct maps raw fields to the public product shape.
// Missing fields are left at their zero value.
func ProjectProduct(fields map[string]any) Product {
	return Product{
		PID:        stringField(fields, "pid"),
		Name:       stringField(fields, "name"),
		Categories: stringSliceField(fields, "categories"),
	}
}

// ProjectUser maps raw fields to the public user shape.
// Missing fields are left at their zero value.
func ProjectUser(fields map[string]any) User {
	return User{
		UID:     stringField(fields, "uid"),
		Country: stringField(fields, "country"),
		State:   stringField(fields, "state"),
		Zipcode: stringField(fields, "zipcode"),
	}
}
