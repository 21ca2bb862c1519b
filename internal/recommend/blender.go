// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package recommend

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vesparec/internal/metrics"
)

// embeddingBatcher fetches many embeddings in one round trip.
type embeddingBatcher interface {
	ResolveMany(ctx context.Context, entity EntityType, ids []string) (map[string]Embedding, error)
}

// RealtimeBlender nudges a stored embedding toward recently observed behavior.
type RealtimeBlender struct {
	vectors  embeddingBatcher
	halfLife time.Duration
	alpha    float64
	beta     float64
	logger   zerolog.Logger
}

// NewRealtimeBlender creates a blender with the given decay half-life and weights.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRealtimeBlender(vectors embeddingBatcher, halfLife time.Duration, alpha, beta float64, logger zerolog.Logger) *RealtimeBlender {
	return &RealtimeBlender{
		vectors:  vectors,
		halfLife: halfLife,
		alpha:    alpha,
		beta:     beta,
		logger:   logger,
	}
}

// DecayWeight returns exp(-ln2/halfLife * max(0, elapsed)). Future events
// (negative elapsed) weigh 1.
func DecayWeight(elapsedSeconds float64, halfLife time.Duration) float64 {
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	rate := math.Ln2 / halfLife.Seconds()
	return math.Exp(-rate * elapsedSeconds)
}

// Blend returns the query vector for base given the recent events, whose
// ids reference entities of type target.
//
// base is returned unchanged when there are no events or none of them
// resolve. Otherwise the result is normalize(alpha*base + beta*recent),
// where recent is the normalized decay-weighted mean of the resolved
// embeddings. now is the reference instant for decay.
func (b *RealtimeBlender) Blend(ctx context.Context, base Embedding, events []InteractionEvent, target EntityType, now time.Time) (Embedding, error) {
	if len(events) == 0 {
		return base, nil
	}

	ids := make([]string, len(events))
	for i, ev := range events {
		ids[i] = ev.ReferencedID
	}

	embeddings, err := b.vectors.ResolveMany(ctx, target, ids)
	if err != nil {
		return nil, err
	}

	recent, used, err := b.recentVector(events, embeddings, now)
	if err != nil {
		return nil, upstream("blend", target.VectorSchema(), err)
	}
	metrics.RecordBlendResolved(used)
	if used == 0 || recent == nil {
		return base, nil
	}

	combined, err := Combine(base, recent, b.alpha, b.beta)
	if err != nil {
		return nil, upstream("blend", target.VectorSchema(), err)
	}

	b.logger.Debug().
		Int("events", len(events)).
		Int("resolved", used).
		Msg("blended recent interactions")

	return combined, nil
}

// recentVector computes the normalized decay-weighted mean of the event
// embeddings. Events are visited in the given order so the float sums are
// reproducible. It returns nil when nothing resolved or all weights
// underflowed to zero.
func (b *RealtimeBlender) recentVector(events []InteractionEvent, embeddings map[string]Embedding, now time.Time) (Embedding, int, error) {
	nowSec := float64(now.UnixNano()) / float64(time.Second)

	var (
		sum   []float64
		total float64
		used  int
	)
	for _, ev := range events {
		emb, ok := embeddings[ev.ReferencedID]
		if !ok {
			continue
		}
		if sum == nil {
			sum = make([]float64, len(emb))
		} else if len(emb) != len(sum) {
			return nil, 0, ErrDimensionMismatch
		}

		weight := DecayWeight(nowSec-ev.Timestamp, b.halfLife)
		for i, x := range emb {
			sum[i] += weight * float64(x)
		}
		total += weight
		used++
	}

	if used == 0 || total == 0 {
		return nil, used, nil
	}

	mean := make(Embedding, len(sum))
	for i, x := range sum {
		mean[i] = float32(x / total)
	}
	return Normalize(mean), used, nil
}
