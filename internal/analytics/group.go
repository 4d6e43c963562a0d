// Package analytics implements the shared aggregation primitives every
// dashboard view composes: generic grouping, stage-duration averages,
// execution confidence, and renewal windowing. All functions are pure and
// never fail on empty input.
package analytics

import (
	"sort"

	"github.com/rotisserie/eris"
)

// ErrInvalidGroupingKey is returned when a key extractor yields an empty key
// for every element of a non-empty input and the caller disallowed the
// Unknown bucket.
var ErrInvalidGroupingKey = eris.New("analytics: grouping key empty for all elements")

// UnknownKey is the bucket label for elements whose key extractor returned
// an empty string.
const UnknownKey = "Unknown"

// SortBy selects the metric groups are ordered by.
type SortBy string

const (
	SortByCount SortBy = "count"
	SortBySum   SortBy = "sum"
)

// Group is one bucket of a grouping operation.
type Group struct {
	Key   string  `json:"key"`
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
}

// GroupOptions tunes a GroupBy call. TopN <= 0 means no truncation.
type GroupOptions struct {
	SortBy          SortBy
	TopN            int
	DisallowUnknown bool
}

// GroupBy buckets items by keyFn, accumulating count and the sum of valueFn
// per bucket. Output is sorted descending by the requested metric; ties keep
// first-encounter order. Elements with an empty key land in the Unknown
// bucket unless opts.DisallowUnknown, in which case they are skipped and the
// call fails only when every key was empty.
func GroupBy[T any](items []T, keyFn func(T) string, valueFn func(T) float64, opts GroupOptions) ([]Group, error) {
	if len(items) == 0 {
		return nil, nil
	}

	index := make(map[string]int)
	var groups []Group
	empties := 0

	for _, it := range items {
		key := keyFn(it)
		if key == "" {
			empties++
			if opts.DisallowUnknown {
				continue
			}
			key = UnknownKey
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Count++
		groups[i].Sum += valueFn(it)
	}

	if opts.DisallowUnknown && empties == len(items) {
		return nil, eris.Wrapf(ErrInvalidGroupingKey, "%d elements", len(items))
	}

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = SortBySum
	}
	sort.SliceStable(groups, func(a, b int) bool {
		if sortBy == SortByCount {
			return groups[a].Count > groups[b].Count
		}
		return groups[a].Sum > groups[b].Sum
	})

	if opts.TopN > 0 && len(groups) > opts.TopN {
		groups = groups[:opts.TopN]
	}
	return groups, nil
}

// SumBy is GroupBy sorted by sum with no truncation.
func SumBy[T any](items []T, keyFn func(T) string, valueFn func(T) float64) ([]Group, error) {
	return GroupBy(items, keyFn, valueFn, GroupOptions{SortBy: SortBySum})
}

// CountBy is GroupBy sorted by count, where every element contributes a
// value of zero.
func CountBy[T any](items []T, keyFn func(T) string) ([]Group, error) {
	return GroupBy(items, keyFn, func(T) float64 { return 0 }, GroupOptions{SortBy: SortByCount})
}
