// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

// Package recommend turns an entity id into a ranked list of related
// entities of the opposite type.
//
// # Architecture
//
// A request runs as a single, strictly ordered pipeline:
//
//	Orchestrator
//	  -> VectorResolver            stored embedding for (id, model version)
//	  -> SessionCache              recent "timestamp:id" interactions (users only)
//	  -> RealtimeBlender           time-decayed blend of stored and recent signal
//	  -> NearestNeighborDispatcher ANN query against the opposite entity type
//	  -> projection                fixed public shape per target type
//
// When no stored embedding exists the ColdStartResolver takes over:
//
//	metadata lookup -> NotFound           (unknown id)
//	                -> segment embedding  (user with segment_id; continues to blend/dispatch)
//	                -> flat ranked list   (strategy "global", ascending rank)
//
// # Blending
//
// Each recent interaction i with timestamp t_i gets weight
//
//	w_i = exp(-ln2/half_life * max(0, now - t_i))
//
// The weighted mean of the referenced embeddings is L2-normalized into the
// recent vector r, and the query vector is normalize(alpha*base + beta*r).
// now is always injected, so blending is a pure function of its inputs.
//
// Only the user to product flow blends. Product sessions carry no rolling
// interaction cache, so RecommendUsersFor dispatches the stored product
// embedding directly.
//
// # Dispatch
//
// Every query vector is L2-normalized before the ANN search, and the
// search only matches documents of the configured model version.
//
// # Errors
//
//   - *NotFoundError (errors.Is ErrNotFound): the id has no metadata at all.
//   - *UpstreamQueryError (errors.Is ErrUpstream): store or cache failure.
//   - An empty recommendation list is a valid result, never an error.
//
// # Thread Safety
//
// All types are safe for concurrent use. No state is shared between
// requests apart from the pooled clients behind VectorStore and SessionCache.
package recommend
