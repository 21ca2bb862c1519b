// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package api

import (
	"context"
	"time"

	"github.com/tomtom215/vesparec/internal/config"
	"github.com/tomtom215/vesparec/internal/recommend"
)

// defaultReadyTimeout bounds each dependency ping in the readiness probe.
const defaultReadyTimeout = 2 * time.Second

// Recommender serves the two recommendation flows.
// *recommend.Orchestrator implements it.
type Recommender interface {
	RecommendProductsFor(ctx context.Context, uid string) ([]recommend.Product, error)
	RecommendUsersFor(ctx context.Context, pid string) ([]recommend.User, error)
}

// Pinger checks connectivity to a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency is a named upstream probed by the readiness check.
type Dependency struct {
	Name   string
	Pinger Pinger
}

// Handler holds the HTTP handlers.
type Handler struct {
	recommender  Recommender
	dependencies []Dependency
	info         config.APIConfig
	readyTimeout time.Duration
	startTime    time.Time
}

// NewHandler creates a Handler serving rec and probing deps for readiness.
func NewHandler(rec Recommender, info config.APIConfig, deps ...Dependency) *Handler {
	return &Handler{
		recommender:  rec,
		dependencies: deps,
		info:         info,
		readyTimeout: defaultReadyTimeout,
		startTime:    time.Now(),
	}
}
