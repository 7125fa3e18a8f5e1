package bptree

import "golang.org/x/exp/constraints"

// Ordered builds a Cmp for any type with a natural ordering, so callers of
// New don't need to hand-write the obvious comparator for ints, strings,
// and the like.
func Ordered[K constraints.Ordered]() Cmp[K] {
	return func(a, b K) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
}
