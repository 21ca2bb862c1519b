// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/tomtom215/vesparec/internal/logging"
)

// healthMessage is the static body of GET /health.
const healthMessage = "Recommendation Service API Server is Running"

// ServiceInfo is the response of GET /.
type ServiceInfo struct {
	Service     string `json:"service" example:"Recommendation Service API"`
	Version     string `json:"version" example:"1.0.0"`
	Description string `json:"description"`
	DocsURL     string `json:"docs_url" example:"/docs/index.html"`
}

// HealthStatus is the response of GET /health and /health/live.
type HealthStatus struct {
	Status string `json:"status"`
}

// ReadinessStatus is the response of GET /health/ready.
type ReadinessStatus struct {
	Status string `json:"status" example:"ready"`
	// Checks maps each dependency to "ok" or "unavailable".
	Checks map[string]string `json:"checks"`
	Uptime float64           `json:"uptime_seconds"`
}

// Root returns service metadata.
//
// @Summary Service metadata
// @Tags Core
// @Produce json
// @Success 200 {object} api.ServiceInfo
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &ServiceInfo{
		Service:     h.info.Title,
		Version:     h.info.Version,
		Description: h.info.Description,
		DocsURL:     "/docs/index.html",
	})
}

// Health reports that the API server is running.
//
// @Summary Health check
// @Tags Core
// @Produce json
// @Success 200 {object} api.HealthStatus
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &HealthStatus{Status: healthMessage})
}

// HealthLive is the liveness probe. It never checks dependencies.
//
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} api.HealthStatus
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &HealthStatus{Status: "alive"})
}

// HealthReady pings every dependency concurrently and returns 503 if any
// fails.
//
// @Summary Readiness probe
// @Description Pings Vespa and Redis. Returns 503 if either is unreachable.
// @Tags Core
// @Produce json
// @Success 200 {object} api.ReadinessStatus
// @Failure 503 {object} api.ReadinessStatus
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	checks := h.checkDependencies(r.Context())

	status, code := "ready", http.StatusOK
	for _, result := range checks {
		if result != "ok" {
			status, code = "not_ready", http.StatusServiceUnavailable
			break
		}
	}

	respondJSON(w, code, &ReadinessStatus{
		Status: status,
		Checks: checks,
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

func (h *Handler) checkDependencies(ctx context.Context) map[string]string {
	checks := make(map[string]string, len(h.dependencies))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, dep := range h.dependencies {
		wg.Add(1)
		go func(dep Dependency) {
			defer wg.Done()

			pingCtx, cancel := context.WithTimeout(ctx, h.readyTimeout)
			defer cancel()

			result := "ok"
			if err := dep.Pinger.Ping(pingCtx); err != nil {
				logging.Warn().Err(err).Str("dependency", dep.Name).Msg("readiness check failed")
				result = "unavailable"
			}

			mu.Lock()
			checks[dep.Name] = result
			mu.Unlock()
		}(dep)
	}
	wg.Wait()

	return checks
}
