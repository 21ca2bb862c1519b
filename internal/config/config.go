// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
//
// Configuration Categories:
//
//  1. Upstreams: Vespa (vector store) and Redis (session cache)
//  2. Recommendation tuning: hit counts, decay half-life, blend weights
//  3. HTTP: server, API metadata, CORS and rate limiting
//  4. Observability: logging and dependency monitoring
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Vespa     VespaConfig     `koanf:"vespa"`
	Redis     RedisConfig     `koanf:"redis"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Startup   StartupConfig   `koanf:"startup"`
	Health    HealthConfig    `koanf:"health"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`

	// RequestTimeout bounds a single recommendation request end to end.
	// Default: 10s
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// APIConfig holds service metadata served at "/".
type APIConfig struct {
	Title       string `koanf:"title"`
	Version     string `koanf:"version"`
	Description string `koanf:"description"`
}

// VespaConfig holds the vector store connection settings.
type VespaConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	Scheme       string        `koanf:"scheme"`
	Timeout      time.Duration `koanf:"timeout"`
	MaxIdleConns int           `koanf:"max_idle_conns"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BaseURL returns scheme://host:port.
func (v VespaConfig) BaseURL() string {
	return fmt.Sprintf("%s://%s", v.Scheme, net.JoinHostPort(v.Host, strconv.Itoa(v.Port)))
}

// BreakerConfig configures the circuit breaker in front of Vespa.
type BreakerConfig struct {
	// MaxRequests allowed in half-open state.
	// Default: 3
	MaxRequests uint32 `koanf:"max_requests"`

	// Interval is the closed-state counter reset period.
	// Default: 1m
	Interval time.Duration `koanf:"interval"`

	// Timeout is how long the breaker stays open before probing.
	// Default: 2m
	Timeout time.Duration `koanf:"timeout"`

	// FailureThreshold is the failure ratio that trips the breaker (0, 1].
	// Default: 0.6
	FailureThreshold float64 `koanf:"failure_threshold"`

	// MinRequests before the ratio is considered.
	// Default: 10
	MinRequests uint32 `koanf:"min_requests"`
}

// RedisConfig holds session cache connection settings.
type RedisConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	DB           int           `koanf:"db"`
	Password     string        `koanf:"password"`
	PoolSize     int           `koanf:"pool_size"`
	DialTimeout  time.Duration `koanf:"dial_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
}

// RecommendConfig holds recommendation tuning parameters.
type RecommendConfig struct {
	// ResultCount is the number of recommendations returned (hits).
	// Default: 5
	ResultCount int `koanf:"result_count"`

	// CandidatePoolSize is the number of HNSW candidates examined (targetHits).
	// Default: 10
	CandidatePoolSize int `koanf:"candidate_pool_size"`

	// HalfLife is the decay half-life applied to recent interactions.
	// Default: 1h
	HalfLife time.Duration `koanf:"half_life"`

	// Alpha weights the stored embedding in the blend.
	// Default: 0.7
	Alpha float64 `koanf:"alpha"`

	// Beta weights the recent-interaction vector in the blend.
	// Default: 0.3
	Beta float64 `koanf:"beta"`

	// ModelVersion selects the embedding version to read.
	// Default: latest
	ModelVersion string `koanf:"model_version"`

	// ColdStartStrategy is the strategy_id of the flat fallback list.
	// Default: global
	ColdStartStrategy string `koanf:"cold_start_strategy"`

	// SessionWindow is how many recent interactions are read per user.
	// Default: 10
	SessionWindow int `koanf:"session_window"`

	// SessionKeyPrefix is prepended to the uid to form the Redis list key.
	// Default: recent:user:
	SessionKeyPrefix string `koanf:"session_key_prefix"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// StartupConfig controls the dependency wait performed before serving.
type StartupConfig struct {
	// WaitTimeout bounds how long startup waits for Vespa and Redis.
	// Zero disables the wait.
	// Default: 30s
	WaitTimeout time.Duration `koanf:"wait_timeout"`
}

// HealthConfig controls the background dependency monitor.
type HealthConfig struct {
	// CheckInterval is how often Vespa and Redis are pinged to refresh the
	// dependency_up gauge. Zero disables the monitor.
	// Default: 30s
	CheckInterval time.Duration `koanf:"check_interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, then validates it. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
