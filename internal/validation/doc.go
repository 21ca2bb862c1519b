// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

// Package validation provides request validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator and translates failures into
// the API's VALIDATION_ERROR shape.
//
// # Quick Start
//
//	req := validation.UserIDPath{UID: chi.URLParam(r, "uid")}
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// # Path Identifiers
//
// Entity ids are interpolated into store queries, so they are restricted
// to 1..128 printable ASCII characters before reaching the pipeline.
// Quoting in the query builder remains the actual injection boundary.
//
// # Field Names
//
// Error messages use the json tag name (uid, pid) rather than the Go
// field name, matching what clients send.
package validation
