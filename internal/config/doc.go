// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

// Package config loads Vesparec configuration with Koanf v2.
//
// Sources are layered, later layers overriding earlier ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/vesparec/config.yaml)
//  3. Environment variables
//
// Environment variable names are the flat names operators already use
// (VESPA_HOST, RECOMMEND_HITS, REDIS_PORT, ...); envTransformFunc maps them
// onto the nested koanf paths. Unknown variables are ignored.
//
// Example config.yaml:
//
//	vespa:
//	  host: vespa
//	  port: 8080
//	redis:
//	  host: redis
//	recommend:
//	  result_count: 5
//	  candidate_pool_size: 10
//	  half_life: 1h
//	  alpha: 0.7
//	  beta: 0.3
//
// Load validates the merged result and fails fast on bad values.
package config
