// Package query holds pure helpers for filtering, sorting and merging
// in-memory record sequences. They behave the same regardless of which
// backend produced the records.
package query

import (
	"sort"
	"strings"
	"time"
)

// MergeByID concatenates the sources in order and de-duplicates by
// record id, keeping the earliest occurrence. Sources are expected in
// seed, mirror, remote order, so a locally cached copy never shadows a
// seed record.
func MergeByID[T interface{ RecordID() string }](sources ...[]T) []T {
	var merged []T
	seen := map[string]struct{}{}
	for _, src := range sources {
		for _, rec := range src {
			id := rec.RecordID()
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, rec)
		}
	}
	return merged
}

// Filter returns the records for which keep reports true.
func Filter[T any](recs []T, keep func(T) bool) []T {
	var out []T
	for _, rec := range recs {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// SortByRecency returns a copy sorted by descending creation time.
// Ties keep their prior relative order.
func SortByRecency[T any](recs []T, createdAt func(T) time.Time) []T {
	out := make([]T, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		return createdAt(out[i]).After(createdAt(out[j]))
	})
	return out
}

// SortByScore returns a copy sorted by descending score. Ties keep
// their prior relative order.
func SortByScore[T any](recs []T, score func(T) float64) []T {
	out := make([]T, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		return score(out[i]) > score(out[j])
	})
	return out
}

// MatchKeyword reports whether any of the fields contains keyword,
// case-insensitively. An empty keyword matches everything.
func MatchKeyword(keyword string, fields ...string) bool {
	keyword = strings.TrimSpace(strings.ToLower(keyword))
	if keyword == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), keyword) {
			return true
		}
	}
	return false
}
