// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/vesparec/internal/metrics"
)

// Pinger checks connectivity to an upstream.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency is a named upstream watched by the monitor.
type Dependency struct {
	Name   string
	Pinger Pinger
}

// DependencyMonitorConfig configures DependencyMonitorService.
type DependencyMonitorConfig struct {
	// Interval between checks. Default: 30s
	Interval time.Duration

	// PingTimeout bounds a single ping. Default: 2s
	PingTimeout time.Duration

	// DownLogInterval rate-limits the warning repeated while a dependency
	// stays down. Default: 5m
	DownLogInterval time.Duration
}

func (c DependencyMonitorConfig) withDefaults() DependencyMonitorConfig {
	if c.Interval <= 0 {
		c.Interval = 30 * time.Second
	}
	if c.PingTimeout <= 0 {
		c.PingTimeout = 2 * time.Second
	}
	if c.DownLogInterval <= 0 {
		c.DownLogInterval = 5 * time.Minute
	}
	return c
}

// dependencyState tracks one dependency between checks.
type dependencyState struct {
	dep     Dependency
	checked bool
	up      bool
	downLog *rate.Sometimes
}

// DependencyMonitorService pings every dependency on a fixed interval and
// publishes the result as the vesparec_dependency_up gauge.
type DependencyMonitorService struct {
	states []*dependencyState
	config DependencyMonitorConfig
	logger zerolog.Logger
	name   string
}

// NewDependencyMonitorService creates a monitor for deps.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewDependencyMonitorService(deps []Dependency, cfg DependencyMonitorConfig, logger zerolog.Logger) *DependencyMonitorService {
	cfg = cfg.withDefaults()

	states := make([]*dependencyState, 0, len(deps))
	for _, dep := range deps {
		states = append(states, &dependencyState{
			dep:     dep,
			downLog: &rate.Sometimes{Interval: cfg.DownLogInterval},
		})
	}

	return &DependencyMonitorService{
		states: states,
		config: cfg,
		logger: logger.With().Str("service", "dependency-monitor").Logger(),
		name:   "dependency-monitor",
	}
}

// Serve implements suture.Service. It checks once immediately, then on
// every tick until ctx is canceled.
func (s *DependencyMonitorService) Serve(ctx context.Context) error {
	s.logger.Info().
		Int("dependencies", len(s.states)).
		Dur("interval", s.config.Interval).
		Msg("dependency monitor starting")

	s.checkAll(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.checkAll(ctx)
		}
	}
}

// checkAll pings dependencies sequentially; there are only a handful.
func (s *DependencyMonitorService) checkAll(ctx context.Context) {
	for _, st := range s.states {
		if ctx.Err() != nil {
			return
		}
		s.check(ctx, st)
	}
}

func (s *DependencyMonitorService) check(ctx context.Context, st *dependencyState) {
	pingCtx, cancel := context.WithTimeout(ctx, s.config.PingTimeout)
	err := st.dep.Pinger.Ping(pingCtx)
	cancel()

	// Shutdown is not an outage.
	if err != nil && ctx.Err() != nil {
		return
	}

	up := err == nil
	metrics.SetDependencyUp(st.dep.Name, up)

	wasChecked, wasUp := st.checked, st.up
	st.checked, st.up = true, up

	switch {
	case up && wasChecked && !wasUp:
		s.logger.Info().Str("dependency", st.dep.Name).Msg("dependency recovered")
		st.downLog = &rate.Sometimes{Interval: s.config.DownLogInterval}
	case !up && (!wasChecked || wasUp):
		s.logger.Warn().Err(err).Str("dependency", st.dep.Name).Msg("dependency unavailable")
		// The transition warning counts as the first rate-limited one.
		st.downLog.Do(func() {})
	case !up:
		st.downLog.Do(func() {
			s.logger.Warn().Err(err).Str("dependency", st.dep.Name).Msg("dependency still unavailable")
		})
	}
}

func (s *DependencyMonitorService) String() string {
	return s.name
}
