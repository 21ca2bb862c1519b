// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestVectorResolverResolve(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addVector("user_vector", "u1", Embedding{0.6, 0.8})
	r := NewVectorResolver(store, "v3")

	emb, found, err := r.Resolve(context.Background(), EntityUser, "u1", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !found {
		t.Fatal("found = false, want true")
	}
	assertVectorNear(t, emb, Embedding{0.6, 0.8})

	calls := store.callsFor(OpFetchVector)
	if len(calls) != 1 {
		t.Fatalf("fetch calls = %d, want 1", len(calls))
	}
	want := []Condition{
		{Field: "uid", Values: []string{"u1"}},
		{Field: FieldModelVersion, Values: []string{"v3"}},
	}
	if !reflect.DeepEqual(calls[0].Where, want) {
		t.Errorf("Where = %+v, want %+v", calls[0].Where, want)
	}
	if calls[0].Schema != "user_vector" || calls[0].Hits != 1 {
		t.Errorf("schema/hits = %s/%d, want user_vector/1", calls[0].Schema, calls[0].Hits)
	}
}

func TestVectorResolverExplicitVersion(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := NewVectorResolver(store, "latest")

	if _, _, err := r.Resolve(context.Background(), EntityProduct, "p1", "2024-01"); err != nil {
		t.Fatal(err)
	}
	calls := store.callsFor(OpFetchVector)
	if got := calls[0].Where[1].Values[0]; got != "2024-01" {
		t.Errorf("model version = %q, want 2024-01", got)
	}
	if calls[0].Where[0].Field != "pid" {
		t.Errorf("id field = %q, want pid", calls[0].Where[0].Field)
	}
}

func TestVectorResolverMissing(t *testing.T) {
	t.Parallel()

	r := NewVectorResolver(newFakeStore(), "latest")
	emb, found, err := r.Resolve(context.Background(), EntityUser, "ghost", "")
	if err != nil || found || emb != nil {
		t.Errorf("Resolve = (%v, %v, %v), want (nil, false, nil)", emb, found, err)
	}
}

func TestVectorResolverIdempotent(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addVector("product_vector", "p1", Embedding{0.1, 0.2, 0.3})
	r := NewVectorResolver(store, "latest")

	first, _, err := r.Resolve(context.Background(), EntityProduct, "p1", "")
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := r.Resolve(context.Background(), EntityProduct, "p1", "")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Resolve differs: %v vs %v", first, second)
	}
}

func TestVectorResolverUpstreamError(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.errs[OpFetchVector] = errors.New("connection refused")
	r := NewVectorResolver(store, "latest")

	_, _, err := r.Resolve(context.Background(), EntityUser, "u1", "")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	var uerr *UpstreamQueryError
	if !errors.As(err, &uerr) {
		t.Fatalf("err = %T, want *UpstreamQueryError", err)
	}
	if uerr.Op != OpFetchVector || uerr.Schema != "user_vector" {
		t.Errorf("op/schema = %s/%s", uerr.Op, uerr.Schema)
	}
	if got := uerr.PublicMessage(); got != "upstream query failed: fetch_vector on user_vector" {
		t.Errorf("PublicMessage = %q", got)
	}
}

func TestVectorResolverResolveSegment(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addVector(SegmentSchema, "S1", Embedding{1, 0})
	r := NewVectorResolver(store, "latest")

	emb, found, err := r.ResolveSegment(context.Background(), "S1")
	if err != nil || !found {
		t.Fatalf("ResolveSegment = (%v, %v)", found, err)
	}
	assertVectorNear(t, emb, Embedding{1, 0})

	calls := store.callsFor(OpFetchSegment)
	if len(calls) != 1 || calls[0].Where[0].Field != FieldSegmentID {
		t.Errorf("segment query = %+v", calls)
	}
}

func TestVectorResolverResolveMany(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addVector("product_vector", "p1", Embedding{1, 0})
	store.addVector("product_vector", "p2", Embedding{0, 1})
	r := NewVectorResolver(store, "latest")

	got, err := r.ResolveMany(context.Background(), EntityProduct, []string{"p1", "p2", "p1", "missing", ""})
	if err != nil {
		t.Fatalf("ResolveMany: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("resolved %d ids, want 2: %v", len(got), got)
	}
	assertVectorNear(t, got["p2"], Embedding{0, 1})

	calls := store.callsFor(OpFetchVectors)
	if len(calls) != 1 {
		t.Fatalf("round trips = %d, want 1", len(calls))
	}
	if want := []string{"p1", "p2", "missing"}; !reflect.DeepEqual(calls[0].Where[0].Values, want) {
		t.Errorf("ids = %v, want %v", calls[0].Where[0].Values, want)
	}
	if calls[0].Hits != 3 {
		t.Errorf("Hits = %d, want 3", calls[0].Hits)
	}
}

func TestVectorResolverResolveManyEmpty(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := NewVectorResolver(store, "latest")

	got, err := r.ResolveMany(context.Background(), EntityProduct, nil)
	if err != nil || len(got) != 0 {
		t.Errorf("ResolveMany(nil) = (%v, %v)", got, err)
	}
	if n := len(store.callsFor(OpFetchVectors)); n != 0 {
		t.Errorf("store queried %d times for no ids", n)
	}
}
