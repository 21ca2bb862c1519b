// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vesparec/internal/logging"
)

// Error codes for API responses.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeUpstream           = "UPSTREAM_ERROR"
	ErrCodeTimeout            = "TIMEOUT"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	// Detail is a human-readable message.
	Detail string `json:"detail" example:"user \"u42\" not found"`
	// Code is a machine-readable error code.
	Code string `json:"code,omitempty" example:"NOT_FOUND"`
	// Details carries structured context, e.g. the failing field.
	Details map[string]interface{} `json:"details,omitempty"`
	// RequestID echoes X-Request-ID for support correlation.
	RequestID string `json:"request_id,omitempty"`
}

// respondJSON writes data as JSON with the given status.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// respondError writes an ErrorResponse.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, detail string, details map[string]interface{}) {
	respondJSON(w, status, &ErrorResponse{
		Detail:    detail,
		Code:      code,
		Details:   details,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
}

// notFoundHandler answers unmatched routes.
func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Not Found", nil)
}

// methodNotAllowedHandler answers known routes hit with the wrong method.
func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method Not Allowed", nil)
}
