// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

/*
Package supervisor runs the long-lived parts of the service under a suture v4
supervisor tree.

# Tree

	RootSupervisor ("vesparec")
	├── UpstreamSupervisor ("upstream-layer")
	│   └── DependencyMonitorService (if health.check_interval > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts failures independently, so a monitor that keeps failing
backs off without restarting the HTTP server.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}

	tree.AddUpstreamService(services.NewDependencyMonitorService(...))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog, which writes to the zerolog-backed slog logger.
*/
package supervisor
