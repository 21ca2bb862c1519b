// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/vesparec/config.yaml",
	"/etc/vesparec/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config populated with defaults.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		API: APIConfig{
			Title:       "Recommendation Service API",
			Version:     "0.1.0",
			Description: "API for User & Product Recommendation backed by Vespa",
		},
		Vespa: VespaConfig{
			Host:         "vespa",
			Port:         8080,
			Scheme:       "http",
			Timeout:      5 * time.Second,
			MaxIdleConns: 100,
			Breaker: BreakerConfig{
				MaxRequests:      3,
				Interval:         time.Minute,
				Timeout:          2 * time.Minute,
				FailureThreshold: 0.6,
				MinRequests:      10,
			},
		},
		Redis: RedisConfig{
			Host:         "redis",
			Port:         6379,
			DB:           0,
			PoolSize:     10,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Recommend: RecommendConfig{
			ResultCount:       5,
			CandidatePoolSize: 10,
			HalfLife:          time.Hour,
			Alpha:             0.7,
			Beta:              0.3,
			ModelVersion:      "latest",
			ColdStartStrategy: "global",
			SessionWindow:     10,
			SessionKeyPrefix:  "recent:user:",
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Startup: StartupConfig{
			WaitTimeout: 30 * time.Second,
		},
		Health: HealthConfig{
			CheckInterval: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults
//  2. Config file (optional)
//  3. Environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"request_timeout":  "server.request_timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	// API metadata
	"api_title":       "api.title",
	"api_version":     "api.version",
	"api_description": "api.description",

	// Vespa
	"vespa_host":                      "vespa.host",
	"vespa_port":                      "vespa.port",
	"vespa_scheme":                    "vespa.scheme",
	"vespa_timeout":                   "vespa.timeout",
	"vespa_max_idle_conns":            "vespa.max_idle_conns",
	"vespa_breaker_max_requests":      "vespa.breaker.max_requests",
	"vespa_breaker_interval":          "vespa.breaker.interval",
	"vespa_breaker_timeout":           "vespa.breaker.timeout",
	"vespa_breaker_failure_threshold": "vespa.breaker.failure_threshold",
	"vespa_breaker_min_requests":      "vespa.breaker.min_requests",

	// Redis
	"redis_host":          "redis.host",
	"redis_port":          "redis.port",
	"redis_db":            "redis.db",
	"redis_password":      "redis.password",
	"redis_pool_size":     "redis.pool_size",
	"redis_dial_timeout":  "redis.dial_timeout",
	"redis_read_timeout":  "redis.read_timeout",
	"redis_write_timeout": "redis.write_timeout",

	// Recommendation tuning
	"recommend_hits":        "recommend.result_count",
	"recommend_target_hits": "recommend.candidate_pool_size",
	"recommend_half_life":   "recommend.half_life",
	"recommend_alpha":       "recommend.alpha",
	"recommend_beta":        "recommend.beta",
	"latest_model_version":  "recommend.model_version",
	"cold_start_strategy":   "recommend.cold_start_strategy",
	"session_window":        "recommend.session_window",
	"session_key_prefix":    "recommend.session_key_prefix",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Startup
	"startup_wait_timeout": "startup.wait_timeout",

	// Health
	"health_check_interval": "health.check_interval",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf paths.
//
// Examples:
//   - VESPA_HOST -> vespa.host
//   - RECOMMEND_TARGET_HITS -> recommend.candidate_pool_size
//   - LATEST_MODEL_VERSION -> recommend.model_version
//
// Unmapped keys return "" so unrelated environment variables are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
