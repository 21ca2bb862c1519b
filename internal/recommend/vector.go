// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package recommend

import (
	"math"
	"slices"

	"github.com/hupe1980/vecgo/distance"
)

// Norm returns the L2 norm of v.
func Norm(v Embedding) float64 {
	if len(v) == 0 {
		return 0
	}
	return math.Sqrt(float64(distance.Dot(v, v)))
}

// Normalize returns v scaled to unit length. A zero vector is returned
// unchanged so callers never divide by zero.
func Normalize(v Embedding) Embedding {
	out, ok := distance.NormalizeL2Copy(v)
	if !ok {
		return slices.Clone(v)
	}
	return out
}

// Combine returns normalize(alpha*a + beta*b).
func Combine(a, b Embedding, alpha, beta float64) (Embedding, error) {
	if len(a) != len(b) {
		return nil, ErrDimensionMismatch
	}
	out := make(Embedding, len(a))
	for i := range a {
		out[i] = float32(alpha*float64(a[i]) + beta*float64(b[i]))
	}
	// A zero sum stays zero.
	distance.NormalizeL2InPlace(out)
	return out, nil
}
