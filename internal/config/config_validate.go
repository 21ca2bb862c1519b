// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package config

import (
	"fmt"
	"strings"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateVespa(); err != nil {
		return err
	}
	if err := c.validateRedis(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if c.Startup.WaitTimeout < 0 {
		return fmt.Errorf("STARTUP_WAIT_TIMEOUT must not be negative, got %v", c.Startup.WaitTimeout)
	}
	if c.Health.CheckInterval < 0 {
		return fmt.Errorf("HEALTH_CHECK_INTERVAL must not be negative, got %v", c.Health.CheckInterval)
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %v", c.Server.RequestTimeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateVespa() error {
	v := c.Vespa
	if v.Host == "" {
		return fmt.Errorf("VESPA_HOST is required")
	}
	if v.Port < 1 || v.Port > 65535 {
		return fmt.Errorf("VESPA_PORT must be between 1 and 65535, got %d", v.Port)
	}
	if v.Scheme != "http" && v.Scheme != "https" {
		return fmt.Errorf("VESPA_SCHEME must be 'http' or 'https', got %q", v.Scheme)
	}
	if v.Timeout <= 0 {
		return fmt.Errorf("VESPA_TIMEOUT must be positive, got %v", v.Timeout)
	}
	if v.Breaker.FailureThreshold <= 0 || v.Breaker.FailureThreshold > 1 {
		return fmt.Errorf("vespa.breaker.failure_threshold must be in (0, 1], got %v", v.Breaker.FailureThreshold)
	}
	if v.Breaker.Timeout <= 0 {
		return fmt.Errorf("vespa.breaker.timeout must be positive, got %v", v.Breaker.Timeout)
	}
	return nil
}

func (c *Config) validateRedis() error {
	r := c.Redis
	if r.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	if r.Port < 1 || r.Port > 65535 {
		return fmt.Errorf("REDIS_PORT must be between 1 and 65535, got %d", r.Port)
	}
	if r.DB < 0 {
		return fmt.Errorf("REDIS_DB must be non-negative, got %d", r.DB)
	}
	if r.PoolSize < 1 {
		return fmt.Errorf("REDIS_POOL_SIZE must be positive, got %d", r.PoolSize)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.ResultCount < 1 {
		return fmt.Errorf("RECOMMEND_HITS must be positive, got %d", r.ResultCount)
	}
	if r.CandidatePoolSize < r.ResultCount {
		return fmt.Errorf("RECOMMEND_TARGET_HITS (%d) must be >= RECOMMEND_HITS (%d)", r.CandidatePoolSize, r.ResultCount)
	}
	if r.HalfLife <= 0 {
		return fmt.Errorf("RECOMMEND_HALF_LIFE must be positive, got %v", r.HalfLife)
	}
	if r.Alpha < 0 || r.Beta < 0 {
		return fmt.Errorf("RECOMMEND_ALPHA and RECOMMEND_BETA must be non-negative, got %v and %v", r.Alpha, r.Beta)
	}
	if r.Alpha == 0 && r.Beta == 0 {
		return fmt.Errorf("RECOMMEND_ALPHA and RECOMMEND_BETA cannot both be zero")
	}
	if r.ModelVersion == "" {
		return fmt.Errorf("LATEST_MODEL_VERSION is required")
	}
	if r.ColdStartStrategy == "" {
		return fmt.Errorf("COLD_START_STRATEGY is required")
	}
	if r.SessionWindow < 0 {
		return fmt.Errorf("SESSION_WINDOW must be non-negative, got %d", r.SessionWindow)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be 'json' or 'console', got %q", c.Logging.Format)
	}
	return nil
}
