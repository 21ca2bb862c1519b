// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package main

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/vesparec/internal/api"
)

// waitForDependencies pings each dependency with exponential backoff until
// it answers or timeout passes. It reports the dependencies still down;
// callers log and continue so readiness can report them later.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func waitForDependencies(ctx context.Context, deps []api.Dependency, timeout time.Duration, logger zerolog.Logger) []string {
	if timeout <= 0 {
		return nil
	}

	var down []string
	for _, dep := range deps {
		if err := waitFor(ctx, dep, timeout, logger); err != nil {
			logger.Warn().Err(err).Str("dependency", dep.Name).Dur("waited", timeout).
				Msg("dependency not reachable at startup, continuing")
			down = append(down, dep.Name)
			continue
		}
		logger.Info().Str("dependency", dep.Name).Msg("dependency reachable")
	}
	return down
}

//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func waitFor(ctx context.Context, dep api.Dependency, timeout time.Duration, logger zerolog.Logger) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = timeout

	attempt := 0
	op := func() error {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		err := dep.Pinger.Ping(pingCtx)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		logger.Debug().Err(err).Str("dependency", dep.Name).Int("attempt", attempt).
			Dur("retry_in", next).Msg("waiting for dependency")
	}

	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify)
}
