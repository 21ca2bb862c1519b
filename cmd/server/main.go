// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/vesparec/docs"
	"github.com/tomtom215/vesparec/internal/api"
	"github.com/tomtom215/vesparec/internal/config"
	"github.com/tomtom215/vesparec/internal/logging"
	"github.com/tomtom215/vesparec/internal/sessioncache"
	"github.com/tomtom215/vesparec/internal/supervisor"
	"github.com/tomtom215/vesparec/internal/supervisor/services"
	"github.com/tomtom215/vesparec/internal/vespa"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run wires the service and blocks until shutdown. Deferred cleanup runs
// before main decides the exit code.
func run(cfg *config.Config) error {
	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("vespa", cfg.Vespa.BaseURL()).
		Str("redis", cfg.Redis.Addr()).
		Str("model_version", cfg.Recommend.ModelVersion).
		Msg("Starting recommendation service")

	docs.SwaggerInfo.Title = cfg.API.Title
	docs.SwaggerInfo.Version = cfg.API.Version

	vespaClient := vespa.NewClient(&cfg.Vespa)
	redisClient := sessioncache.NewClient(&cfg.Redis, cfg.Recommend.SessionWindow)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing Redis client")
		}
	}()

	deps := []api.Dependency{
		{Name: "vespa", Pinger: vespaClient},
		{Name: "redis", Pinger: redisClient},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if down := waitForDependencies(ctx, deps, cfg.Startup.WaitTimeout, logging.WithComponent("startup")); len(down) > 0 {
		logging.Warn().Strs("dependencies", down).Msg("Serving before all dependencies are reachable")
	}

	orchestrator, err := initRecommend(cfg, vespa.NewStore(vespaClient), redisClient, logging.WithComponent("recommend"))
	if err != nil {
		return fmt.Errorf("initialize recommendation orchestrator: %w", err)
	}

	handler := api.NewHandler(orchestrator, cfg.API, deps...)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if cfg.Health.CheckInterval > 0 {
		tree.AddUpstreamService(services.NewDependencyMonitorService(
			monitorDependencies(deps),
			services.DependencyMonitorConfig{Interval: cfg.Health.CheckInterval},
			logging.WithComponent("supervisor"),
		))
	}

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	serveErr := tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", serveErr)
	}
	return nil
}

// monitorDependencies adapts the readiness dependencies for the monitor.
func monitorDependencies(deps []api.Dependency) []services.Dependency {
	out := make([]services.Dependency, len(deps))
	for i, dep := range deps {
		out[i] = services.Dependency{Name: dep.Name, Pinger: dep.Pinger}
	}
	return out
}
