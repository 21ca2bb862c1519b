// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package recommend

import (
	"fmt"
	"time"
)

// Config contains the tuning parameters of the orchestration pipeline.
type Config struct {
	// ResultCount is the number of recommendations returned.
	// Default: 5.
	ResultCount int `json:"result_count"`

	// CandidatePoolSize is the ANN targetHits, the candidates examined per search.
	// Default: 10.
	CandidatePoolSize int `json:"candidate_pool_size"`

	// HalfLife is the interaction decay half-life.
	// Default: 1h.
	HalfLife time.Duration `json:"half_life"`

	// Alpha weights the stored embedding in the blend.
	// Default: 0.7.
	Alpha float64 `json:"alpha"`

	// Beta weights the recent-interaction vector in the blend.
	// Alpha and Beta need not sum to 1; the result is normalized.
	// Default: 0.3.
	Beta float64 `json:"beta"`

	// ModelVersion selects the embedding version read by default.
	// Default: "latest".
	ModelVersion string `json:"model_version"`

	// ColdStartStrategy is the strategy_id of the flat fallback list.
	// Default: "global".
	ColdStartStrategy string `json:"cold_start_strategy"`

	// SessionWindow caps the recent interactions considered per request.
	// Zero means no cap beyond what the cache returns.
	// Default: 10.
	SessionWindow int `json:"session_window"`

	// SessionKeyPrefix is prepended to the uid to form the cache key.
	// Default: "recent:user:".
	SessionKeyPrefix string `json:"session_key_prefix"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		ResultCount:       5,
		CandidatePoolSize: 10,
		HalfLife:          time.Hour,
		Alpha:             0.7,
		Beta:              0.3,
		ModelVersion:      "latest",
		ColdStartStrategy: "global",
		SessionWindow:     10,
		SessionKeyPrefix:  "recent:user:",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.ResultCount < 1 {
		return fmt.Errorf("result_count must be positive, got %d", c.ResultCount)
	}
	if c.CandidatePoolSize < 1 {
		return fmt.Errorf("candidate_pool_size must be positive, got %d", c.CandidatePoolSize)
	}
	if c.HalfLife <= 0 {
		return fmt.Errorf("half_life must be positive, got %v", c.HalfLife)
	}
	if c.Alpha < 0 || c.Beta < 0 {
		return fmt.Errorf("alpha and beta must be non-negative, got %f and %f", c.Alpha, c.Beta)
	}
	if c.Alpha == 0 && c.Beta == 0 {
		return fmt.Errorf("alpha and beta cannot both be zero")
	}
	if c.ModelVersion == "" {
		return fmt.Errorf("model_version is required")
	}
	if c.ColdStartStrategy == "" {
		return fmt.Errorf("cold_start_strategy is required")
	}
	if c.SessionWindow < 0 {
		return fmt.Errorf("session_window must be non-negative, got %d", c.SessionWindow)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
