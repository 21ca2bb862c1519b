// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package recommend

import (
	"fmt"
	"strconv"
)

// decodeEmbedding converts a tensor field as returned by the store into an
// Embedding. Accepted shapes:
//
//	[0.1, 0.2]                                      plain array
//	{"values": [0.1, 0.2]}                          short dense form
//	{"cells": [{"address": {"x": "0"}, "value": 0.1}]} cell form
func decodeEmbedding(v any) (Embedding, error) {
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedHit, FieldEmbedding)
	case Embedding:
		return append(Embedding(nil), t...), nil
	case []float32:
		return append(Embedding(nil), t...), nil
	case []float64:
		out := make(Embedding, len(t))
		for i, x := range t {
			out[i] = float32(x)
		}
		return out, nil
	case []any:
		out := make(Embedding, len(t))
		for i, x := range t {
			f, ok := toFloat(x)
			if !ok {
				return nil, fmt.Errorf("%w: non-numeric component at %d", ErrMalformedHit, i)
			}
			out[i] = float32(f)
		}
		return out, nil
	case map[string]any:
		if values, ok := t["values"]; ok {
			return decodeEmbedding(values)
		}
		if cells, ok := t["cells"].([]any); ok {
			return decodeCells(cells)
		}
	}
	return nil, fmt.Errorf("%w: unsupported tensor encoding %T", ErrMalformedHit, v)
}

func decodeCells(cells []any) (Embedding, error) {
	out := make(Embedding, len(cells))
	seen := make([]bool, len(cells))
	for _, c := range cells {
		cell, ok := c.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: bad tensor cell", ErrMalformedHit)
		}
		addr, _ := cell["address"].(map[string]any)
		var idx int
		for _, label := range addr {
			s, _ := label.(string)
			i, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("%w: bad tensor address %v", ErrMalformedHit, label)
			}
			idx = i
		}
		if idx < 0 || idx >= len(out) || seen[idx] {
			return nil, fmt.Errorf("%w: tensor address %d out of range", ErrMalformedHit, idx)
		}
		f, ok := toFloat(cell["value"])
		if !ok {
			return nil, fmt.Errorf("%w: non-numeric tensor cell", ErrMalformedHit)
		}
		out[idx] = float32(f)
		seen[idx] = true
	}
	return out, nil
}
