// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package vespa

import (
	"fmt"
	"strings"
)

// Quote returns s as a double-quoted YQL string literal.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Contains returns `field contains "value"`.
func Contains(field, value string) string {
	return field + " contains " + Quote(value)
}

// In returns `field in ("a", "b")`. A single value falls back to Contains.
func In(field string, values ...string) string {
	if len(values) == 1 {
		return Contains(field, values[0])
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = Quote(v)
	}
	return field + " in (" + strings.Join(quoted, ", ") + ")"
}

// NearestNeighbor returns `{targetHits:N}nearestNeighbor(field, query)`.
func NearestNeighbor(field, queryName string, targetHits int) string {
	return fmt.Sprintf("{targetHits:%d}nearestNeighbor(%s, %s)", targetHits, field, queryName)
}

// And joins non-empty clauses. No clauses yields "true".
func And(clauses ...string) string {
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if c != "" {
			parts = append(parts, c)
		}
	}
	if len(parts) == 0 {
		return "true"
	}
	return strings.Join(parts, " and ")
}
