// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

/*
Package services provides suture.Service wrappers for the server's
long-running components.

Each wrapper implements suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer, which suture uses to name the service in its events.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server and turns ListenAndServe into Serve
  - Shuts down gracefully when the context is canceled
  - A bind failure is returned so the supervisor can back off and retry

Dependency Monitor (DependencyMonitorService):
  - Pings Vespa and Redis on a fixed interval
  - Publishes vesparec_dependency_up for alerting
  - Logs transitions, and repeats the "still down" warning at most once
    per DownLogInterval
*/
package services
