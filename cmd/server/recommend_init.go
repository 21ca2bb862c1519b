// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package main

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/vesparec/internal/config"
	"github.com/tomtom215/vesparec/internal/recommend"
)

// buildRecommendConfig maps the recommend config section onto the
// orchestrator's tuning parameters.
func buildRecommendConfig(cfg *config.Config) *recommend.Config {
	rc := cfg.Recommend
	return &recommend.Config{
		ResultCount:       rc.ResultCount,
		CandidatePoolSize: rc.CandidatePoolSize,
		HalfLife:          rc.HalfLife,
		Alpha:             rc.Alpha,
		Beta:              rc.Beta,
		ModelVersion:      rc.ModelVersion,
		ColdStartStrategy: rc.ColdStartStrategy,
		SessionWindow:     rc.SessionWindow,
		SessionKeyPrefix:  rc.SessionKeyPrefix,
	}
}

// initRecommend builds the orchestrator over the given upstreams.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, store recommend.VectorStore, sessions recommend.SessionCache, logger zerolog.Logger) (*recommend.Orchestrator, error) {
	recCfg := buildRecommendConfig(cfg)

	logger.Info().
		Int("hits", recCfg.ResultCount).
		Int("target_hits", recCfg.CandidatePoolSize).
		Dur("half_life", recCfg.HalfLife).
		Float64("alpha", recCfg.Alpha).
		Float64("beta", recCfg.Beta).
		Str("model_version", recCfg.ModelVersion).
		Str("cold_start_strategy", recCfg.ColdStartStrategy).
		Msg("initializing recommendation orchestrator")

	return recommend.NewOrchestrator(store, sessions, recCfg, logger)
}
