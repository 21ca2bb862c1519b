// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

// @title Recommendation Service API
// @version 1.0.0
// @description Real-time user/product recommendations over Vespa nearest-neighbor search, personalized with recent interactions from Redis.
// @description
// @description ## Flows
// @description
// @description - `GET /recommend/product/{uid}`: products for a user. Stored user embeddings are blended with the user's recent interactions; users without an embedding fall back to their segment, then the cold-start list.
// @description - `GET /recommend/user/{pid}`: target users for a product, with the same cold-start fallback.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description { "detail": "user \"u42\" not found", "code": "NOT_FOUND", "request_id": "..." }
// @description ```
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
//
// @tag.name Core
// @tag.description Service metadata and health probes
//
// @tag.name Recommend
// @tag.description Real-time recommendations
package main
