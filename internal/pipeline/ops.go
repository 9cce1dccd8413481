package pipeline

import (
	"fmt"
	"math"
)

// Filter returns the elements of in for which keep returns true.
// The input slice is not modified.
func Filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Map applies fn to every element of in.
func Map[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

// Group is one key of a GroupSum result with its summed value.
type Group[K comparable] struct {
	Key K
	Sum int
}

// GroupSum groups in by key and sums value within each group.
// Groups are returned in first-seen order. An overflowing sum is an error.
func GroupSum[T any, K comparable](in []T, key func(T) K, value func(T) int) ([]Group[K], error) {
	index := make(map[K]int)
	groups := make([]Group[K], 0)

	for _, v := range in {
		k := key(v)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K]{Key: k})
		}

		n := value(v)
		if (n > 0 && groups[i].Sum > math.MaxInt-n) || (n < 0 && groups[i].Sum < math.MinInt-n) {
			return nil, fmt.Errorf("sum overflow for group %v", k)
		}
		groups[i].Sum += n
	}

	return groups, nil
}
