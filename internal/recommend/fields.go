// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package recommend

import (
	"fmt"
	"math"
	"strconv"
)

// floater matches json.Number from both encoding/json and goccy/go-json.
type floater interface {
	Float64() (float64, error)
}

// stringField reads fields[key] as a string. Numbers are formatted so that
// numeric ids and zipcodes survive; anything else yields "".
func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

// stringSliceField reads fields[key] as a list of strings.
func stringSliceField(fields map[string]any, key string) []string {
	switch v := fields[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	default:
		return nil
	}
}

// toFloat converts a decoded JSON number to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case floater:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// intField reads fields[key] as an integer.
func intField(fields map[string]any, key string) (int, bool) {
	if s, ok := fields[key].(string); ok {
		i, err := strconv.Atoi(s)
		return i, err == nil
	}
	f, ok := toFloat(fields[key])
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}
