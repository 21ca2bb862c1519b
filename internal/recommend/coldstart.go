// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package recommend

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
)

// ColdStartResult is the outcome of cold-start resolution: either a
// segment-level base vector to continue the pipeline with, or a flat
// pre-ranked list (possibly empty).
type ColdStartResult struct {
	BaseVector Embedding
	SegmentID  string
	Entries    []ColdStartEntry
}

// HasVector reports whether a segment embedding was resolved.
func (r *ColdStartResult) HasVector() bool {
	return r.BaseVector != nil
}

// ColdStartResolver serves entities that have no stored embedding.
type ColdStartResolver struct {
	store    VectorStore
	vectors  *VectorResolver
	strategy string
	limit    int
	logger   zerolog.Logger
}

// NewColdStartResolver creates a resolver serving strategy lists of up to limit entries.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewColdStartResolver(store VectorStore, vectors *VectorResolver, strategy string, limit int, logger zerolog.Logger) *ColdStartResolver {
	return &ColdStartResolver{
		store:    store,
		vectors:  vectors,
		strategy: strategy,
		limit:    limit,
		logger:   logger,
	}
}

// Resolve confirms the entity exists and picks a fallback.
//
// Unknown ids fail with *NotFoundError. A user carrying a segment_id with a
// stored segment embedding yields that embedding. Everything else, including
// a segment whose embedding is missing, yields the flat strategy list of
// the opposite entity type.
func (c *ColdStartResolver) Resolve(ctx context.Context, entity EntityType, id string) (*ColdStartResult, error) {
	meta, found, err := c.lookupMetadata(ctx, entity, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NotFoundError{EntityType: entity, ID: id}
	}

	if entity == EntityUser && meta.SegmentID != "" {
		vec, ok, err := c.vectors.ResolveSegment(ctx, meta.SegmentID)
		if err != nil {
			return nil, err
		}
		if ok {
			return &ColdStartResult{BaseVector: vec, SegmentID: meta.SegmentID}, nil
		}
		c.logger.Debug().
			Str("segment_id", meta.SegmentID).
			Msg("segment embedding missing, serving strategy list")
	}

	entries, err := c.list(ctx, entity.Opposite())
	if err != nil {
		return nil, err
	}
	return &ColdStartResult{Entries: entries}, nil
}

func (c *ColdStartResolver) lookupMetadata(ctx context.Context, entity EntityType, id string) (*EntityMetadata, bool, error) {
	schema := entity.MetadataSchema()
	hits, err := c.store.Query(ctx, QuerySpec{
		Operation: OpFetchMetadata,
		Schema:    schema,
		Where:     []Condition{{Field: entity.IDField(), Values: []string{id}}},
		Hits:      1,
	})
	if err != nil {
		return nil, false, upstream(OpFetchMetadata, schema, err)
	}
	if len(hits) == 0 {
		return nil, false, nil
	}

	fields := make(map[string]any, len(hits[0].Fields))
	for k, v := range hits[0].Fields {
		fields[k] = v
	}
	segment := stringField(fields, FieldSegmentID)
	delete(fields, FieldSegmentID)

	return &EntityMetadata{Fields: fields, SegmentID: segment}, true, nil
}

// list loads the strategy list for target, ascending by rank.
func (c *ColdStartResolver) list(ctx context.Context, target EntityType) ([]ColdStartEntry, error) {
	schema := target.ColdStartSchema()
	hits, err := c.store.Query(ctx, QuerySpec{
		Operation: OpColdStartList,
		Schema:    schema,
		Where:     []Condition{{Field: FieldStrategyID, Values: []string{c.strategy}}},
		OrderBy:   []Ordering{{Field: FieldRank}},
		Hits:      c.limit,
	})
	if err != nil {
		return nil, upstream(OpColdStartList, schema, err)
	}

	entries := make([]ColdStartEntry, 0, len(hits))
	for _, hit := range hits {
		rank, ok := intField(hit.Fields, FieldRank)
		if !ok {
			continue
		}
		entries = append(entries, ColdStartEntry{
			Rank:       rank,
			StrategyID: stringField(hit.Fields, FieldStrategyID),
			Fields:     hit.Fields,
		})
	}

	// Store ordering is not relied on.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Rank < entries[j].Rank })
	if c.limit > 0 && len(entries) > c.limit {
		entries = entries[:c.limit]
	}
	return entries, nil
}
