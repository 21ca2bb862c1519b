// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/vesparec/internal/recommend"
	"github.com/tomtom215/vesparec/internal/validation"
)

// ProductRecommendations is the response of GET /recommend/product/{uid}.
type ProductRecommendations struct {
	UID             string              `json:"uid" example:"u42"`
	Recommendations []recommend.Product `json:"recommendations"`
}

// UserTargets is the response of GET /recommend/user/{pid}.
type UserTargets struct {
	PID         string           `json:"pid" example:"p7"`
	TargetUsers []recommend.User `json:"target_users"`
}

// RecommendProducts returns products for a user, personalized with the
// user's recent interactions.
//
// @Summary Recommend products for a user
// @Description Returns products nearest to the user's embedding, blended with recent interactions. Users without an embedding are served from their segment or the cold-start list.
// @Tags Recommend
// @Produce json
// @Param uid path string true "User id"
// @Success 200 {object} api.ProductRecommendations
// @Failure 400 {object} api.ErrorResponse "Invalid user id"
// @Failure 404 {object} api.ErrorResponse "Unknown user"
// @Failure 500 {object} api.ErrorResponse "Upstream query failed"
// @Failure 504 {object} api.ErrorResponse "Request timed out"
// @Router /recommend/product/{uid} [get]
func (h *Handler) RecommendProducts(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	if verr := validation.ValidateUserID(uid); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	products, err := h.recommender.RecommendProductsFor(r.Context(), uid)
	if err != nil {
		respondRecommendError(w, r, err)
		return
	}
	if products == nil {
		products = []recommend.Product{}
	}

	respondJSON(w, http.StatusOK, &ProductRecommendations{UID: uid, Recommendations: products})
}

// RecommendUsers returns users to target with a product.
//
// @Summary Recommend target users for a product
// @Description Returns users nearest to the product's embedding. Products without an embedding are served from the cold-start list.
// @Tags Recommend
// @Produce json
// @Param pid path string true "Product id"
// @Success 200 {object} api.UserTargets
// @Failure 400 {object} api.ErrorResponse "Invalid product id"
// @Failure 404 {object} api.ErrorResponse "Unknown product"
// @Failure 500 {object} api.ErrorResponse "Upstream query failed"
// @Failure 504 {object} api.ErrorResponse "Request timed out"
// @Router /recommend/user/{pid} [get]
func (h *Handler) RecommendUsers(w http.ResponseWriter, r *http.Request) {
	pid := chi.URLParam(r, "pid")
	if verr := validation.ValidateProductID(pid); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	users, err := h.recommender.RecommendUsersFor(r.Context(), pid)
	if err != nil {
		respondRecommendError(w, r, err)
		return
	}
	if users == nil {
		users = []recommend.User{}
	}

	respondJSON(w, http.StatusOK, &UserTargets{PID: pid, TargetUsers: users})
}
