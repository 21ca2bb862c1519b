// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

// Package logging provides the process-wide zerolog logger for Vesparec.
//
// All packages log through this package so that output format, level and
// request correlation are configured in exactly one place:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//
// Request-scoped logging picks up the request and correlation IDs that the
// HTTP middleware stores in the context:
//
//	logging.Ctx(ctx).Debug().Str("uid", uid).Msg("base vector resolved")
//
// Components that hold their own logger derive it once with
// WithComponent and pass it by value.
//
// # Configuration
//
// Environment Variables (read through internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
//
// The slog bridge (NewSlogLogger) exists for libraries that only accept a
// *slog.Logger, such as sutureslog in the supervisor tree.
package logging
