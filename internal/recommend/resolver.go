// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package recommend

import (
	"context"
)

// VectorResolver reads stored embeddings from the vector store.
// It holds no state beyond its configuration, so repeated calls against an
// unchanged store return identical results.
type VectorResolver struct {
	store        VectorStore
	modelVersion string
}

// NewVectorResolver creates a resolver reading modelVersion by default.
func NewVectorResolver(store VectorStore, modelVersion string) *VectorResolver {
	return &VectorResolver{store: store, modelVersion: modelVersion}
}

func (r *VectorResolver) version(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return r.modelVersion
}

// Resolve returns the embedding of entity id at modelVersion ("" selects
// the configured version). A missing document is reported as found=false
// with a nil error; store failures return *UpstreamQueryError.
func (r *VectorResolver) Resolve(ctx context.Context, entity EntityType, id, modelVersion string) (Embedding, bool, error) {
	return r.fetchOne(ctx, OpFetchVector, entity.VectorSchema(), entity.IDField(), id, r.version(modelVersion))
}

// ResolveSegment returns the cohort embedding for segmentID.
func (r *VectorResolver) ResolveSegment(ctx context.Context, segmentID string) (Embedding, bool, error) {
	return r.fetchOne(ctx, OpFetchSegment, SegmentSchema, FieldSegmentID, segmentID, r.modelVersion)
}

func (r *VectorResolver) fetchOne(ctx context.Context, op, schema, idField, id, version string) (Embedding, bool, error) {
	hits, err := r.store.Query(ctx, QuerySpec{
		Operation: op,
		Schema:    schema,
		Select:    []string{FieldEmbedding},
		Where: []Condition{
			{Field: idField, Values: []string{id}},
			{Field: FieldModelVersion, Values: []string{version}},
		},
		Hits: 1,
	})
	if err != nil {
		return nil, false, upstream(op, schema, err)
	}
	if len(hits) == 0 {
		return nil, false, nil
	}

	emb, err := decodeEmbedding(hits[0].Fields[FieldEmbedding])
	if err != nil {
		return nil, false, upstream(op, schema, err)
	}
	return emb, true, nil
}

// ResolveMany fetches embeddings for ids in a single round trip.
// Ids without a decodable embedding are absent from the result.
func (r *VectorResolver) ResolveMany(ctx context.Context, entity EntityType, ids []string) (map[string]Embedding, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return map[string]Embedding{}, nil
	}

	idField := entity.IDField()
	schema := entity.VectorSchema()
	hits, err := r.store.Query(ctx, QuerySpec{
		Operation: OpFetchVectors,
		Schema:    schema,
		Select:    []string{idField, FieldEmbedding},
		Where: []Condition{
			{Field: idField, Values: unique},
			{Field: FieldModelVersion, Values: []string{r.modelVersion}},
		},
		Hits: len(unique),
	})
	if err != nil {
		return nil, upstream(OpFetchVectors, schema, err)
	}

	out := make(map[string]Embedding, len(hits))
	for _, hit := range hits {
		id := stringField(hit.Fields, idField)
		if id == "" {
			continue
		}
		if _, dup := out[id]; dup {
			continue
		}
		emb, err := decodeEmbedding(hit.Fields[FieldEmbedding])
		if err != nil {
			continue
		}
		out[id] = emb
	}
	return out, nil
}

// dedupe returns the distinct non-empty ids in first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
