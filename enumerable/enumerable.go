// Package enumerable provides lazy Filter/Map-style adapters over a
// bptree.Cursor. These sit outside the tree's core: the core promises
// ordered iteration and nothing more, and this package is where that gets
// turned into the filter/transform pipelines callers actually want.
package enumerable

import "github.com/MkazemAkhgary/bplustree/bptree"

// Pair is a (key, value) snapshot pulled from a Cursor.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// Source yields a sequence of Pair, stopping when ok is false.
type Source[K, V any] func() (pair Pair[K, V], ok bool)

// FromCursor adapts a bptree.Cursor into a Source, advancing it on every
// pull. Errors from the underlying cursor (e.g. ConcurrentModification)
// end the sequence; callers who need to observe the error should call
// cursor methods directly instead.
func FromCursor[K, V any](c *bptree.Cursor[K, V]) Source[K, V] {
	return func() (Pair[K, V], bool) {
		if !c.Valid() {
			return Pair[K, V]{}, false
		}
		p := Pair[K, V]{Key: c.Key(), Value: c.Value()}
		if err := c.Next(); err != nil {
			return p, true
		}
		return p, true
	}
}

// Filter returns a Source yielding only pairs for which keep returns true.
func Filter[K, V any](src Source[K, V], keep func(Pair[K, V]) bool) Source[K, V] {
	return func() (Pair[K, V], bool) {
		for {
			p, ok := src()
			if !ok {
				return Pair[K, V]{}, false
			}
			if keep(p) {
				return p, true
			}
		}
	}
}

// Map returns a pull function yielding fn applied to each pair from src.
func Map[K, V, R any](src Source[K, V], fn func(Pair[K, V]) R) func() (R, bool) {
	return func() (R, bool) {
		p, ok := src()
		if !ok {
			var zero R
			return zero, false
		}
		return fn(p), true
	}
}

// Collect drains src into a slice.
func Collect[K, V any](src Source[K, V]) []Pair[K, V] {
	var out []Pair[K, V]
	for {
		p, ok := src()
		if !ok {
			return out
		}
		out = append(out, p)
	}
}
