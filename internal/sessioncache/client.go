// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

// Package sessioncache reads users' recent-interaction lists from Redis.
//
// Each user has a list at <prefix><uid> holding "timestamp:id" entries,
// most recent first (writers LPUSH). Only the head of the list, up to the
// configured window, is read per request.
package sessioncache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/vesparec/internal/config"
	"github.com/tomtom215/vesparec/internal/metrics"
	"github.com/tomtom215/vesparec/internal/recommend"
)

var _ recommend.SessionCache = (*Client)(nil)

// Client is a read-only session cache client. It is safe for concurrent use.
type Client struct {
	rdb    *redis.Client
	window int
}

// NewClient creates a client for cfg reading at most window entries per key.
// A window of zero reads whole lists. No connection is made until first use.
func NewClient(cfg *config.RedisConfig, window int) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	return &Client{rdb: rdb, window: window}
}

// RecentEvents returns the raw entries stored at key, most recent first.
// A missing key yields an empty slice.
func (c *Client) RecentEvents(ctx context.Context, key string) ([]string, error) {
	stop := int64(-1)
	if c.window > 0 {
		stop = int64(c.window - 1)
	}

	start := time.Now()
	entries, err := c.rdb.LRange(ctx, key, 0, stop).Result()
	metrics.RecordRedisCommand("lrange", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", key, err)
	}
	if entries == nil {
		entries = []string{}
	}
	return entries, nil
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	start := time.Now()
	err := c.rdb.Ping(ctx).Err()
	metrics.RecordRedisCommand("ping", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
