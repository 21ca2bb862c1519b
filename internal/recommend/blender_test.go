// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package recommend

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var blendNow = time.Unix(1_700_000_000, 0)

func newTestBlender(store *fakeStore) *RealtimeBlender {
	return NewRealtimeBlender(NewVectorResolver(store, "latest"), time.Hour, 0.7, 0.3, zerolog.Nop())
}

func TestDecayWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		elapsed float64
		want    float64
	}{
		{"now", 0, 1},
		{"one half-life", 3600, 0.5},
		{"two half-lives", 7200, 0.25},
		{"future", -600, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DecayWeight(tt.elapsed, time.Hour); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("DecayWeight(%v) = %v, want %v", tt.elapsed, got, tt.want)
			}
		})
	}
}

func TestDecayWeightMonotonic(t *testing.T) {
	t.Parallel()

	prev := DecayWeight(0, time.Hour)
	for elapsed := 60.0; elapsed <= 86400; elapsed += 60 {
		w := DecayWeight(elapsed, time.Hour)
		if w >= prev || w <= 0 {
			t.Fatalf("DecayWeight(%v) = %v, previous %v", elapsed, w, prev)
		}
		prev = w
	}
}

func TestBlendNoEvents(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	base := Embedding{0.6, 0.8}

	got, err := newTestBlender(store).Blend(context.Background(), base, nil, EntityProduct, blendNow)
	if err != nil {
		t.Fatalf("Blend: %v", err)
	}
	if !reflect.DeepEqual(got, base) {
		t.Errorf("Blend = %v, want base %v", got, base)
	}
	if n := len(store.calls); n != 0 {
		t.Errorf("store queried %d times with no events", n)
	}
}

func TestBlendDecayWeighted(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addVector("product_vector", "p1", Embedding{1, 0})
	store.addVector("product_vector", "p2", Embedding{0, 1})

	base := Embedding{0, 1}
	events := []InteractionEvent{
		{Timestamp: 1_700_000_000, ReferencedID: "p1"},
		{Timestamp: 1_700_000_000 - 3600, ReferencedID: "p2"},
	}

	got, err := newTestBlender(store).Blend(context.Background(), base, events, EntityProduct, blendNow)
	if err != nil {
		t.Fatalf("Blend: %v", err)
	}

	recent := Normalize(Embedding{1, 0.5})
	want := Normalize(Embedding{0.7*base[0] + 0.3*recent[0], 0.7*base[1] + 0.3*recent[1]})
	assertVectorNear(t, got, want)

	if math.Abs(Norm(got)-1) > 1e-6 {
		t.Errorf("Norm = %v, want 1", Norm(got))
	}
	if n := len(store.callsFor(OpFetchVectors)); n != 1 {
		t.Errorf("batched fetches = %d, want 1", n)
	}
}

func TestBlendDuplicateEvents(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addVector("product_vector", "p1", Embedding{1, 0})
	store.addVector("product_vector", "p2", Embedding{0, 1})

	// p1 appears twice: weight 1 now and 0.5 one half-life ago.
	events := []InteractionEvent{
		{Timestamp: 1_700_000_000, ReferencedID: "p1"},
		{Timestamp: 1_700_000_000 - 3600, ReferencedID: "p1"},
		{Timestamp: 1_700_000_000 - 3600, ReferencedID: "p2"},
	}
	base := Embedding{0, 1}

	got, err := newTestBlender(store).Blend(context.Background(), base, events, EntityProduct, blendNow)
	if err != nil {
		t.Fatalf("Blend: %v", err)
	}

	recent := Normalize(Embedding{1.5, 0.5})
	want := Normalize(Embedding{0.7*base[0] + 0.3*recent[0], 0.7*base[1] + 0.3*recent[1]})
	assertVectorNear(t, got, want)

	fetch := store.callsFor(OpFetchVectors)
	if len(fetch) != 1 {
		t.Fatalf("batched fetches = %d, want 1", len(fetch))
	}
	if ids := fetch[0].Where[0].Values; !reflect.DeepEqual(ids, []string{"p1", "p2"}) {
		t.Errorf("fetched ids = %v, want each id once", ids)
	}
}

func TestBlendDeterministic(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addVector("product_vector", "p1", Embedding{0.3, 0.1, 0.9})
	store.addVector("product_vector", "p2", Embedding{0.2, 0.7, 0.1})
	b := newTestBlender(store)

	events := []InteractionEvent{
		{Timestamp: 1_699_999_000, ReferencedID: "p1"},
		{Timestamp: 1_699_990_000, ReferencedID: "p2"},
		{Timestamp: 1_699_980_000, ReferencedID: "p1"},
	}
	base := Normalize(Embedding{1, 1, 1})

	first, err := b.Blend(context.Background(), base, events, EntityProduct, blendNow)
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.Blend(context.Background(), base, events, EntityProduct, blendNow)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Blend not deterministic: %v vs %v", first, second)
	}
}

func TestBlendFutureEvents(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addVector("product_vector", "p1", Embedding{1, 0})
	store.addVector("product_vector", "p2", Embedding{0, 1})

	// Both events weigh 1 when in the future or now.
	events := []InteractionEvent{
		{Timestamp: 1_700_000_500, ReferencedID: "p1"},
		{Timestamp: 1_700_000_000, ReferencedID: "p2"},
	}

	got, err := newTestBlender(store).Blend(context.Background(), Embedding{1, 0}, events, EntityProduct, blendNow)
	if err != nil {
		t.Fatal(err)
	}
	recent := Normalize(Embedding{1, 1})
	want := Normalize(Embedding{0.7 + 0.3*recent[0], 0.3 * recent[1]})
	assertVectorNear(t, got, want)
}

func TestBlendUnresolvedEvents(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	base := Embedding{0.6, 0.8}
	events := []InteractionEvent{{Timestamp: 1_700_000_000, ReferencedID: "gone"}}

	got, err := newTestBlender(store).Blend(context.Background(), base, events, EntityProduct, blendNow)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, base) {
		t.Errorf("Blend = %v, want base when nothing resolves", got)
	}
}

func TestBlendDimensionMismatch(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addVector("product_vector", "p1", Embedding{1, 0, 0})
	events := []InteractionEvent{{Timestamp: 1_700_000_000, ReferencedID: "p1"}}

	_, err := newTestBlender(store).Blend(context.Background(), Embedding{1, 0}, events, EntityProduct, blendNow)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("err = %v, want ErrDimensionMismatch", err)
	}
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("err = %v, want wrapped as upstream", err)
	}
}

func TestBlendUpstreamError(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.errs[OpFetchVectors] = errors.New("timeout")
	events := []InteractionEvent{{Timestamp: 1_700_000_000, ReferencedID: "p1"}}

	_, err := newTestBlender(store).Blend(context.Background(), Embedding{1, 0}, events, EntityProduct, blendNow)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream", err)
	}
}
