// Package formval normalizes loosely-typed request body fields.
//
// The API accepts the same field as a single value, a repeated form field,
// or a JSON array, and several numeric and boolean fields arrive as
// strings. These helpers collapse all of that into the shapes the domain
// model stores.
package formval

import (
	"strconv"
	"strings"
)

// First returns the first value for the field, or "" when absent.
func First(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// CleanList drops empty entries while preserving order. Entries are kept
// verbatim, so values containing commas (people names) survive intact.
// Duplicates are kept; the caller decides whether set semantics apply.
func CleanList(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// SplitList accepts a single comma-separated value or a pre-split list and
// returns trimmed, non-empty entries in order. Only id-list fields
// (genres, movieId) use this convention; free-text lists go through
// CleanList so embedded commas are not split.
func SplitList(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Int parses the first value as an integer, returning 0 when absent or
// malformed.
func Int(vals []string) int {
	n, _ := strconv.Atoi(First(vals))
	return n
}

// Bool reports whether the first value spells a true boolean. Clients send
// "true"/"false" strings from checkboxes.
func Bool(vals []string) bool {
	return First(vals) == "true" || First(vals) == "1" || First(vals) == "on"
}
