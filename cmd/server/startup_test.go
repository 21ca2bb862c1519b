// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vesparec/internal/api"
)

// flakyPinger fails the first failures calls.
type flakyPinger struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (p *flakyPinger) Ping(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.calls <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitForDependencies(t *testing.T) {
	t.Parallel()

	t.Run("retries until reachable", func(t *testing.T) {
		t.Parallel()

		vespa := &flakyPinger{failures: 2}
		redis := &flakyPinger{}
		down := waitForDependencies(context.Background(), []api.Dependency{
			{Name: "vespa", Pinger: vespa},
			{Name: "redis", Pinger: redis},
		}, 10*time.Second, zerolog.Nop())

		if len(down) != 0 {
			t.Errorf("down = %v, want none", down)
		}
		if vespa.calls != 3 {
			t.Errorf("vespa pings = %d, want 3", vespa.calls)
		}
		if redis.calls != 1 {
			t.Errorf("redis pings = %d, want 1", redis.calls)
		}
	})

	t.Run("gives up after timeout", func(t *testing.T) {
		t.Parallel()

		start := time.Now()
		down := waitForDependencies(context.Background(), []api.Dependency{
			{Name: "vespa", Pinger: &flakyPinger{failures: 1 << 30}},
			{Name: "redis", Pinger: &flakyPinger{}},
		}, 300*time.Millisecond, zerolog.Nop())

		if len(down) != 1 || down[0] != "vespa" {
			t.Errorf("down = %v, want [vespa]", down)
		}
		if elapsed := time.Since(start); elapsed > 5*time.Second {
			t.Errorf("wait took %v", elapsed)
		}
	})

	t.Run("zero timeout skips the wait", func(t *testing.T) {
		t.Parallel()

		p := &flakyPinger{}
		if down := waitForDependencies(context.Background(), []api.Dependency{{Name: "redis", Pinger: p}}, 0, zerolog.Nop()); down != nil {
			t.Errorf("down = %v, want nil", down)
		}
		if p.calls != 0 {
			t.Errorf("pings = %d, want 0", p.calls)
		}
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		down := waitForDependencies(ctx, []api.Dependency{
			{Name: "vespa", Pinger: &flakyPinger{failures: 1 << 30}},
		}, time.Minute, zerolog.Nop())
		if len(down) != 1 {
			t.Errorf("down = %v, want [vespa]", down)
		}
	})
}
