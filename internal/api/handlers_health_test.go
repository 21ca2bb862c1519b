// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package api

import (
	"errors"
	"net/http"
	"testing"
)

func TestRoot(t *testing.T) {
	t.Parallel()

	res := serve(t, newTestRouter(&fakeRecommender{}), http.MethodGet, "/")
	if res.Code != http.StatusOK {
		t.Fatalf("status = %d", res.Code)
	}

	var info ServiceInfo
	decodeBody(t, res, &info)
	if info.Service != "Recommendation Service API" || info.Version != "1.0.0" {
		t.Errorf("info = %+v", info)
	}
	if info.DocsURL != "/docs/index.html" {
		t.Errorf("docs_url = %q", info.DocsURL)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&fakeRecommender{})

	tests := []struct {
		target string
		status string
	}{
		{"/health", healthMessage},
		{"/health/live", "alive"},
	}
	for _, tt := range tests {
		res := serve(t, router, http.MethodGet, tt.target)
		if res.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", tt.target, res.Code)
		}
		var body HealthStatus
		decodeBody(t, res, &body)
		if body.Status != tt.status {
			t.Errorf("%s: status = %q, want %q", tt.target, body.Status, tt.status)
		}
	}
}

func TestHealthReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		vespaErr   error
		redisErr   error
		wantCode   int
		wantStatus string
		wantChecks map[string]string
	}{
		{
			name:       "all healthy",
			wantCode:   http.StatusOK,
			wantStatus: "ready",
			wantChecks: map[string]string{"vespa": "ok", "redis": "ok"},
		},
		{
			name:       "redis down",
			redisErr:   errors.New("dial tcp: connection refused"),
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "not_ready",
			wantChecks: map[string]string{"vespa": "ok", "redis": "unavailable"},
		},
		{
			name:       "both down",
			vespaErr:   errors.New("vespa status \"down\""),
			redisErr:   errors.New("timeout"),
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "not_ready",
			wantChecks: map[string]string{"vespa": "unavailable", "redis": "unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := newTestRouter(&fakeRecommender{},
				Dependency{Name: "vespa", Pinger: &fakePinger{err: tt.vespaErr}},
				Dependency{Name: "redis", Pinger: &fakePinger{err: tt.redisErr}},
			)
			res := serve(t, router, http.MethodGet, "/health/ready")

			if res.Code != tt.wantCode {
				t.Fatalf("status code = %d, want %d", res.Code, tt.wantCode)
			}
			var body ReadinessStatus
			decodeBody(t, res, &body)
			if body.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", body.Status, tt.wantStatus)
			}
			for name, want := range tt.wantChecks {
				if got := body.Checks[name]; got != want {
					t.Errorf("checks[%s] = %q, want %q", name, got, want)
				}
			}
			if body.Uptime < 0 {
				t.Errorf("uptime = %v", body.Uptime)
			}
		})
	}
}
