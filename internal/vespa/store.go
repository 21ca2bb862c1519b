// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package vespa

import (
	"context"
	"strings"
	"time"

	"github.com/tomtom215/vesparec/internal/metrics"
	"github.com/tomtom215/vesparec/internal/recommend"
)

// Searcher executes search requests. *Client implements it.
type Searcher interface {
	Query(ctx context.Context, req *Request) (*Result, error)
}

// Store adapts a Searcher to recommend.VectorStore.
type Store struct {
	searcher Searcher
}

// NewStore creates a Store over searcher.
func NewStore(searcher Searcher) *Store {
	return &Store{searcher: searcher}
}

// Query runs spec and returns its hits.
func (s *Store) Query(ctx context.Context, spec recommend.QuerySpec) ([]recommend.Hit, error) {
	req := BuildRequest(spec)

	start := time.Now()
	res, err := s.searcher.Query(ctx, req)
	metrics.RecordVespaQuery(spec.Operation, spec.Schema, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	hits := make([]recommend.Hit, len(res.Hits))
	for i, h := range res.Hits {
		hits[i] = recommend.Hit{
			ID:        h.ID,
			Relevance: h.Relevance,
			Fields:    flattenTensors(h.Fields),
		}
	}
	return hits, nil
}

// BuildRequest renders spec as YQL plus ranking inputs.
func BuildRequest(spec recommend.QuerySpec) *Request {
	selected := "*"
	if len(spec.Select) > 0 {
		selected = strings.Join(spec.Select, ", ")
	}

	clauses := make([]string, 0, len(spec.Where)+1)
	req := &Request{Hits: spec.Hits, Summary: spec.Summary}

	if nn := spec.Nearest; nn != nil {
		clauses = append(clauses, NearestNeighbor(nn.Field, nn.QueryName, nn.TargetHits))
		req.Ranking = nn.Ranking
		req.Inputs = map[string][]float32{nn.QueryName: nn.Vector}
	}
	for _, cond := range spec.Where {
		if len(cond.Values) == 0 {
			continue
		}
		clauses = append(clauses, In(cond.Field, cond.Values...))
	}

	var b strings.Builder
	b.WriteString("select ")
	b.WriteString(selected)
	b.WriteString(" from ")
	b.WriteString(spec.Schema)
	b.WriteString(" where ")
	b.WriteString(And(clauses...))

	if len(spec.OrderBy) > 0 {
		orders := make([]string, len(spec.OrderBy))
		for i, o := range spec.OrderBy {
			dir := "asc"
			if o.Descending {
				dir = "desc"
			}
			orders[i] = o.Field + " " + dir
		}
		b.WriteString(" order by ")
		b.WriteString(strings.Join(orders, ", "))
	}

	req.YQL = b.String()
	return req
}

// flattenTensors replaces short-form dense tensors ({"values": [...]})
// with plain float slices. Other fields pass through.
func flattenTensors(fields map[string]any) map[string]any {
	for k, v := range fields {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		values, ok := m["values"].([]any)
		if !ok {
			continue
		}
		vec := make([]float32, len(values))
		dense := true
		for i, x := range values {
			f, ok := x.(float64)
			if !ok {
				dense = false
				break
			}
			vec[i] = float32(f)
		}
		if dense {
			fields[k] = vec
		}
	}
	return fields
}
