// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches any *NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrUpstream matches any *UpstreamQueryError.
	ErrUpstream = errors.New("upstream query failed")

	// ErrDimensionMismatch is returned when vectors of different lengths meet.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrMalformedHit is returned when a store hit lacks a decodable embedding.
	ErrMalformedHit = errors.New("malformed hit")
)

// NotFoundError reports an id with no metadata at all.
type NotFoundError struct {
	EntityType EntityType
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.EntityType, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UpstreamQueryError wraps a vector store or session cache failure.
// Op and Schema identify the failing call; query text is never included.
type UpstreamQueryError struct {
	Op     string
	Schema string
	Err    error
}

func (e *UpstreamQueryError) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Op, e.Schema, e.Err)
}

// PublicMessage describes the failure without the underlying cause.
func (e *UpstreamQueryError) PublicMessage() string {
	return fmt.Sprintf("upstream query failed: %s on %s", e.Op, e.Schema)
}

func (e *UpstreamQueryError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrUpstream) hold.
func (e *UpstreamQueryError) Is(target error) bool {
	return target == ErrUpstream
}

func upstream(op, schema string, err error) error {
	return &UpstreamQueryError{Op: op, Schema: schema, Err: err}
}
