// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vesparec/internal/logging"
	"github.com/tomtom215/vesparec/internal/metrics"
)

// Resolution paths, recorded per request.
const (
	PathPersonalized = "personalized"
	PathSegment      = "segment"
	PathColdStart    = "cold_start"
	PathNotFound     = "not_found"
	PathError        = "error"
)

// Flow labels.
const (
	FlowProductsForUser = "user_to_product"
	FlowUsersForProduct = "product_to_user"
)

// Orchestrator composes resolution, blending and dispatch into the two
// public recommendation operations. It is safe for concurrent use.
type Orchestrator struct {
	config *Config
	logger zerolog.Logger

	vectors    *VectorResolver
	coldStart  *ColdStartResolver
	blender    *RealtimeBlender
	dispatcher *NearestNeighborDispatcher
	sessions   SessionCache

	now func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock injects the reference clock used for interaction decay.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// NewOrchestrator wires the pipeline over the given store and session cache.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewOrchestrator(store VectorStore, sessions SessionCache, cfg *Config, logger zerolog.Logger, opts ...Option) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("vector store is required")
	}
	if sessions == nil {
		return nil, errors.New("session cache is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.Clone()

	vectors := NewVectorResolver(store, cfg.ModelVersion)

	o := &Orchestrator{
		config:     cfg,
		logger:     logger,
		vectors:    vectors,
		coldStart:  NewColdStartResolver(store, vectors, cfg.ColdStartStrategy, cfg.ResultCount, logger),
		blender:    NewRealtimeBlender(vectors, cfg.HalfLife, cfg.Alpha, cfg.Beta, logger),
		dispatcher: NewNearestNeighborDispatcher(store, cfg.ModelVersion, cfg.ResultCount, cfg.CandidatePoolSize),
		sessions:   sessions,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Config returns a copy of the active configuration.
func (o *Orchestrator) Config() *Config {
	return o.config.Clone()
}

// RecommendProductsFor returns products for user uid, personalized with the
// user's recent interactions.
func (o *Orchestrator) RecommendProductsFor(ctx context.Context, uid string) ([]Product, error) {
	fields, err := o.recommend(ctx, FlowProductsForUser, EntityUser, uid, true)
	if err != nil {
		return nil, err
	}
	out := make([]Product, len(fields))
	for i, f := range fields {
		out[i] = ProjectProduct(f)
	}
	return out, nil
}

// RecommendUsersFor returns target users for product pid. The stored product
// embedding is dispatched without blending.
func (o *Orchestrator) RecommendUsersFor(ctx context.Context, pid string) ([]User, error) {
	fields, err := o.recommend(ctx, FlowUsersForProduct, EntityProduct, pid, false)
	if err != nil {
		return nil, err
	}
	out := make([]User, len(fields))
	for i, f := range fields {
		out[i] = ProjectUser(f)
	}
	return out, nil
}

// recommend runs the per-request state machine and returns raw field maps
// of the target entities, in rank order.
func (o *Orchestrator) recommend(ctx context.Context, flow string, source EntityType, id string, blend bool) ([]map[string]any, error) {
	start := time.Now()
	logger := o.requestLogger(ctx, flow, source, id)

	fields, path, err := o.run(ctx, logger, source, id, blend)

	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		path = PathNotFound
	default:
		path = PathError
	}
	metrics.RecordRecommendation(flow, path, len(fields), time.Since(start))

	if err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("recommendation failed")
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("returned", len(fields)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")
	return fields, nil
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (o *Orchestrator) run(ctx context.Context, logger zerolog.Logger, source EntityType, id string, blend bool) ([]map[string]any, string, error) {
	target := source.Opposite()
	path := PathPersonalized

	base, found, err := o.vectors.Resolve(ctx, source, id, "")
	if err != nil {
		return nil, "", err
	}

	if !found {
		logger.Debug().Msg("no stored embedding, resolving cold start")

		cs, err := o.coldStart.Resolve(ctx, source, id)
		if err != nil {
			return nil, "", err
		}
		if !cs.HasVector() {
			out := make([]map[string]any, len(cs.Entries))
			for i, e := range cs.Entries {
				out[i] = e.Fields
			}
			return out, PathColdStart, nil
		}
		base = cs.BaseVector
		path = PathSegment
		logger.Debug().Str("segment_id", cs.SegmentID).Msg("using segment embedding")
	}

	query := base
	if blend {
		events, err := o.recentEvents(ctx, logger, id)
		if err != nil {
			return nil, "", err
		}
		query, err = o.blender.Blend(ctx, base, events, target, o.now())
		if err != nil {
			return nil, "", err
		}
	}

	candidates, err := o.dispatcher.Search(ctx, target, query, 0, 0)
	if err != nil {
		return nil, "", err
	}

	out := make([]map[string]any, len(candidates))
	for i, c := range candidates {
		out[i] = c.Fields
	}
	return out, path, nil
}

// recentEvents reads and parses the user's recent interactions.
// Malformed entries are skipped.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (o *Orchestrator) recentEvents(ctx context.Context, logger zerolog.Logger, uid string) ([]InteractionEvent, error) {
	raw, err := o.sessions.RecentEvents(ctx, o.config.SessionKeyPrefix+uid)
	if err != nil {
		return nil, upstream(OpRecentEvents, "session_cache", err)
	}
	if o.config.SessionWindow > 0 && len(raw) > o.config.SessionWindow {
		raw = raw[:o.config.SessionWindow]
	}

	events := make([]InteractionEvent, 0, len(raw))
	for _, entry := range raw {
		ev, err := ParseInteractionEvent(entry)
		if err != nil {
			logger.Debug().Err(err).Msg("skipping interaction")
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (o *Orchestrator) requestLogger(ctx context.Context, flow string, source EntityType, id string) zerolog.Logger {
	lc := o.logger.With().
		Str("flow", flow).
		Str(source.IDField(), id)
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		lc = lc.Str("request_id", requestID)
	}
	return lc.Logger()
}
