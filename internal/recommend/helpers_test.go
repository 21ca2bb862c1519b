// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package recommend

import (
	"context"
	"math"
	"sync"
	"testing"
)

// fakeStore serves canned documents keyed by schema and id, and records
// every query it receives.
type fakeStore struct {
	mu sync.Mutex

	vectors   map[string]map[string]Embedding
	metadata  map[string]map[string]map[string]any
	coldStart map[string][]map[string]any
	neighbors map[string][]map[string]any
	errs      map[string]error

	calls []QuerySpec
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		vectors:   make(map[string]map[string]Embedding),
		metadata:  make(map[string]map[string]map[string]any),
		coldStart: make(map[string][]map[string]any),
		neighbors: make(map[string][]map[string]any),
		errs:      make(map[string]error),
	}
}

func (f *fakeStore) addVector(schema, id string, emb Embedding) {
	if f.vectors[schema] == nil {
		f.vectors[schema] = make(map[string]Embedding)
	}
	f.vectors[schema][id] = emb
}

func (f *fakeStore) addMetadata(schema, id string, fields map[string]any) {
	if f.metadata[schema] == nil {
		f.metadata[schema] = make(map[string]map[string]any)
	}
	f.metadata[schema][id] = fields
}

func (f *fakeStore) Query(_ context.Context, spec QuerySpec) ([]Hit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, spec)
	if err := f.errs[spec.Operation]; err != nil {
		return nil, err
	}

	var hits []Hit
	switch spec.Operation {
	case OpFetchVector, OpFetchSegment:
		id := spec.Where[0].Values[0]
		if emb, ok := f.vectors[spec.Schema][id]; ok {
			hits = append(hits, Hit{ID: id, Fields: map[string]any{
				FieldEmbedding: map[string]any{"values": toAnySlice(emb)},
			}})
		}
	case OpFetchVectors:
		idField := spec.Where[0].Field
		for _, id := range spec.Where[0].Values {
			if emb, ok := f.vectors[spec.Schema][id]; ok {
				hits = append(hits, Hit{ID: id, Fields: map[string]any{
					idField:        id,
					FieldEmbedding: toAnySlice(emb),
				}})
			}
		}
	case OpFetchMetadata:
		id := spec.Where[0].Values[0]
		if fields, ok := f.metadata[spec.Schema][id]; ok {
			hits = append(hits, Hit{ID: id, Fields: fields})
		}
	case OpColdStartList:
		strategy := spec.Where[0].Values[0]
		for _, entry := range f.coldStart[spec.Schema] {
			if entry[FieldStrategyID] == strategy {
				hits = append(hits, Hit{Fields: entry})
			}
		}
	case OpNearestNeighbor:
		for _, fields := range f.neighbors[spec.Schema] {
			hits = append(hits, Hit{Fields: fields})
		}
	}

	if spec.Hits > 0 && len(hits) > spec.Hits {
		hits = hits[:spec.Hits]
	}
	return hits, nil
}

func (f *fakeStore) callsFor(op string) []QuerySpec {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []QuerySpec
	for _, c := range f.calls {
		if c.Operation == op {
			out = append(out, c)
		}
	}
	return out
}

// fakeSessions serves recent-interaction lists keyed by cache key.
type fakeSessions struct {
	mu    sync.Mutex
	lists map[string][]string
	err   error
	keys  []string
}

func (f *fakeSessions) RecentEvents(_ context.Context, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.lists[key]...), nil
}

func toAnySlice(v Embedding) []any {
	out := make([]any, len(v))
	for i, x := range v {
		out[i] = x
	}
	return out
}

func assertVectorNear(t *testing.T, got, want Embedding) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("vector length = %d, want %d (got %v)", len(got), len(want), got)
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Fatalf("vector = %v, want %v", got, want)
		}
	}
}
