// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/vesparec/internal/logging"
	"github.com/tomtom215/vesparec/internal/recommend"
)

// statusClientClosedRequest is recorded when the client went away.
const statusClientClosedRequest = 499

// respondRecommendError maps a pipeline error to its HTTP response.
func respondRecommendError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.LoggerFromContext(r.Context())

	var notFound *recommend.NotFoundError
	var upstream *recommend.UpstreamQueryError

	switch {
	case errors.As(err, &notFound):
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, notFound.Error(), nil)

	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn().Err(err).Msg("recommendation timed out")
		respondError(w, r, http.StatusGatewayTimeout, ErrCodeTimeout, "recommendation timed out", nil)

	case errors.Is(err, context.Canceled):
		logger.Debug().Err(err).Msg("client canceled request")
		w.WriteHeader(statusClientClosedRequest)

	case errors.As(err, &upstream):
		logger.Error().Err(err).Str("op", upstream.Op).Str("schema", upstream.Schema).Msg("upstream query failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeUpstream, upstream.PublicMessage(), nil)

	default:
		logger.Error().Err(err).Msg("recommendation failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "internal server error", nil)
	}
}
