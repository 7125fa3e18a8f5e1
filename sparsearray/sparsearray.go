// Package sparsearray builds a multi-value-per-key container on top of
// bptree: each key maps to an ordered slice of values, appended to in O(1)
// amortized via AddOrUpdateFromArg's lazy value construction, so a key with
// no entries yet never pays for an allocation it doesn't need.
package sparsearray

import "github.com/MkazemAkhgary/bplustree/bptree"

// SparseArray maps each key to zero or more values, in insertion order.
type SparseArray[K, V any] struct {
	tree *bptree.Tree[K, []V]
}

// New creates an empty SparseArray ordered by cmp.
func New[K, V any](cmp bptree.Cmp[K]) (*SparseArray[K, V], error) {
	tr, err := bptree.New[K, []V](cmp)
	if err != nil {
		return nil, err
	}
	return &SparseArray[K, V]{tree: tr}, nil
}

// Append adds value to the slice stored under key, creating the slice if
// this is the first value for key.
func (s *SparseArray[K, V]) Append(key K, value V) error {
	_, err := bptree.AddOrUpdateFromArg(s.tree, key, value,
		func(_ K, v V) []V { return []V{v} },
		func(_ K, v V, old []V) []V { return append(old, v) },
	)
	return err
}

// Get returns the values stored under key, if any. The returned slice must
// not be mutated by the caller.
func (s *SparseArray[K, V]) Get(key K) ([]V, bool) {
	return s.tree.TryGet(key)
}

// ContainsKey reports whether key has any values.
func (s *SparseArray[K, V]) ContainsKey(key K) bool {
	return s.tree.ContainsKey(key)
}

// RemoveKey removes every value stored under key.
func (s *SparseArray[K, V]) RemoveKey(key K) (bool, error) {
	return s.tree.Remove(key)
}

// Len returns the number of distinct keys holding at least one value.
func (s *SparseArray[K, V]) Len() int { return s.tree.Len() }

// Keys returns every key with at least one value, in ascending order.
func (s *SparseArray[K, V]) Keys() []K { return s.tree.Keys() }
