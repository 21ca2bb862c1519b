// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package recommend

import "context"

// Nearest-neighbor query constants shared by all vector schemas.
const (
	annField     = FieldEmbedding
	annQueryName = "q"
	annRanking   = "default"
)

// NearestNeighborDispatcher runs ANN queries against a target vector index.
// Only documents of one model version are searched, so the query and the
// candidates share an embedding space. It never retries; retry policy
// belongs to the caller.
type NearestNeighborDispatcher struct {
	store             VectorStore
	modelVersion      string
	resultCount       int
	candidatePoolSize int
}

// NewNearestNeighborDispatcher creates a dispatcher with default hit counts.
func NewNearestNeighborDispatcher(store VectorStore, modelVersion string, resultCount, candidatePoolSize int) *NearestNeighborDispatcher {
	return &NearestNeighborDispatcher{
		store:             store,
		modelVersion:      modelVersion,
		resultCount:       resultCount,
		candidatePoolSize: candidatePoolSize,
	}
}

// Search returns up to resultCount candidates of type target nearest to
// query, examining candidatePoolSize candidates. Zero counts take the
// configured defaults. query is L2-normalized before dispatch. Each hit is
// reduced to its field mapping.
func (d *NearestNeighborDispatcher) Search(ctx context.Context, target EntityType, query Embedding, resultCount, candidatePoolSize int) ([]Candidate, error) {
	if resultCount <= 0 {
		resultCount = d.resultCount
	}
	if candidatePoolSize <= 0 {
		candidatePoolSize = d.candidatePoolSize
	}

	schema := target.VectorSchema()
	hits, err := d.store.Query(ctx, QuerySpec{
		Operation: OpNearestNeighbor,
		Schema:    schema,
		Nearest: &NearestNeighbor{
			Field:      annField,
			QueryName:  annQueryName,
			Vector:     Normalize(query),
			TargetHits: candidatePoolSize,
			Ranking:    annRanking,
		},
		Where: []Condition{
			{Field: FieldModelVersion, Values: []string{d.modelVersion}},
		},
		Summary: target.SummaryName(),
		Hits:    resultCount,
	})
	if err != nil {
		return nil, upstream(OpNearestNeighbor, schema, err)
	}

	candidates := make([]Candidate, 0, len(hits))
	for _, hit := range hits {
		fields := hit.Fields
		if fields == nil {
			fields = map[string]any{}
		}
		candidates = append(candidates, Candidate{Fields: fields})
	}
	return candidates, nil
}
