// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vesparec/internal/config"
	"github.com/tomtom215/vesparec/internal/recommend"
)

// fakeRecommender returns canned results and records the ids it was asked for.
type fakeRecommender struct {
	mu       sync.Mutex
	products []recommend.Product
	users    []recommend.User
	err      error
	uids     []string
	pids     []string
}

func (f *fakeRecommender) RecommendProductsFor(_ context.Context, uid string) ([]recommend.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uids = append(f.uids, uid)
	return f.products, f.err
}

func (f *fakeRecommender) RecommendUsersFor(_ context.Context, pid string) ([]recommend.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pids = append(f.pids, pid)
	return f.users, f.err
}

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error {
	return f.err
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           8000,
			RequestTimeout: 5 * time.Second,
		},
		API: config.APIConfig{
			Title:       "Recommendation Service API",
			Version:     "1.0.0",
			Description: "test",
		},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"https://shop.example.com"},
			RateLimitDisabled: true,
		},
	}
}

func newTestRouter(rec Recommender, deps ...Dependency) http.Handler {
	cfg := testConfig()
	return NewRouter(NewHandler(rec, cfg.API, deps...), cfg).SetupChi()
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}
