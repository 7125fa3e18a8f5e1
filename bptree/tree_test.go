package bptree

import (
	"testing"

	"github.com/MkazemAkhgary/bplustree/bperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntTree(t *testing.T, leafCap, internalCap int) *Tree[int, string] {
	t.Helper()
	tr, err := New[int, string](Ordered[int](), WithLeafCapacity[int, string](leafCap), WithInternalCapacity[int, string](internalCap))
	require.NoError(t, err)
	return tr
}

// S1: sequential ascending inserts exercise the append fast path and, once
// a leaf fills, its split.
func TestSequentialAscendingInsertsSplitLeaves(t *testing.T) {
	tr := newIntTree(t, 3, 3)
	for i := 0; i < 20; i++ {
		require.NoError(t, tr.Add(i, "v"))
	}
	assert.Equal(t, 20, tr.Len())
	for i := 0; i < 20; i++ {
		v, ok := tr.TryGet(i)
		assert.True(t, ok)
		assert.Equal(t, "v", v)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, tr.Keys())
}

// S2: sequential descending inserts exercise the prepend fast path.
func TestSequentialDescendingInsertsSplitLeaves(t *testing.T) {
	tr := newIntTree(t, 3, 3)
	for i := 19; i >= 0; i-- {
		require.NoError(t, tr.Add(i, "v"))
	}
	assert.Equal(t, 20, tr.Len())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, tr.Keys())
}

// S3: duplicate Add fails with DuplicateKey and leaves the tree unchanged.
func TestAddDuplicateKeyFails(t *testing.T) {
	tr := newIntTree(t, 4, 4)
	require.NoError(t, tr.Add(1, "a"))
	err := tr.Add(1, "b")
	require.Error(t, err)
	var be *bperr.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, bperr.DuplicateKey, be.Kind)
	v, _ := tr.TryGet(1)
	assert.Equal(t, "a", v)
}

// S4: removing every key in random order collapses the tree back to empty
// without leaving any stale structure behind.
func TestRemoveAllKeysCollapsesToEmpty(t *testing.T) {
	tr := newIntTree(t, 3, 3)
	keys := []int{5, 1, 9, 3, 7, 2, 8, 4, 6, 0}
	for _, k := range keys {
		require.NoError(t, tr.Add(k, "v"))
	}
	removeOrder := []int{3, 7, 0, 9, 1, 5, 2, 8, 4, 6}
	for _, k := range removeOrder {
		removed, err := tr.Remove(k)
		require.NoError(t, err)
		assert.True(t, removed)
	}
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, 0, tr.Height())
	_, err := tr.First()
	require.Error(t, err)
}

// S5: removal triggers borrow-before-merge rebalancing; afterwards the
// count is right and the leaf chain holds exactly the surviving keys, in
// order.
func TestRemoveTriggersBorrowAndMerge(t *testing.T) {
	tr := newIntTree(t, 4, 4)
	for i := 0; i < 40; i++ {
		require.NoError(t, tr.Add(i, "v"))
	}
	for i := 0; i < 30; i++ {
		removed, err := tr.Remove(i)
		require.NoError(t, err)
		assert.True(t, removed)
	}
	assert.Equal(t, 10, tr.Len())
	assert.Equal(t, []int{30, 31, 32, 33, 34, 35, 36, 37, 38, 39}, tr.Keys())
}

// S6: bidirectional range iteration sees a consistent ordering, and a
// mutation mid-iteration is reported as ConcurrentModification.
func TestRangeIterationBidirectionalAndVersionGuarded(t *testing.T) {
	tr := newIntTree(t, 4, 4)
	for i := 0; i < 10; i++ {
		require.NoError(t, tr.Add(i, "v"))
	}

	lo, hi := 2, 7
	c := tr.Range(&lo, &hi)
	var got []int
	for c.Valid() {
		got = append(got, c.Key())
		require.NoError(t, c.Next())
	}
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7}, got)

	c2 := tr.RangeDescending(&lo, &hi)
	got = nil
	for c2.Valid() {
		got = append(got, c2.Key())
		require.NoError(t, c2.Prev())
	}
	assert.Equal(t, []int{7, 6, 5, 4, 3, 2}, got)

	stale := tr.SeekFirst()
	require.NoError(t, tr.Add(100, "v"))
	err := stale.Next()
	require.Error(t, err)
	var be *bperr.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, bperr.ConcurrentModification, be.Kind)
}

func TestTryAddAndAddOrReplace(t *testing.T) {
	tr := newIntTree(t, 4, 4)
	added, err := tr.TryAdd(1, "a")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = tr.TryAdd(1, "b")
	require.NoError(t, err)
	assert.False(t, added)
	v, _ := tr.TryGet(1)
	assert.Equal(t, "a", v)

	added, err = tr.AddOrReplace(1, "c")
	require.NoError(t, err)
	assert.False(t, added)
	v, _ = tr.TryGet(1)
	assert.Equal(t, "c", v)
}

func TestAddOrUpdateFromArgLazilyBuildsValue(t *testing.T) {
	tr := newIntTree(t, 4, 4)
	calls := 0
	add := func(key int, arg string) string {
		calls++
		return arg
	}
	update := func(key int, arg, old string) string { return old + arg }

	added, err := AddOrUpdateFromArg(tr, 1, "x", add, update)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 1, calls)

	added, err = AddOrUpdateFromArg(tr, 1, "y", add, update)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 1, calls) // add not called again
	v, _ := tr.TryGet(1)
	assert.Equal(t, "xy", v)
}

func TestNextNearestAndClear(t *testing.T) {
	tr := newIntTree(t, 4, 4)
	for _, k := range []int{2, 4, 6, 8} {
		require.NoError(t, tr.Add(k, "v"))
	}
	k, _, err := tr.NextNearest(5)
	require.NoError(t, err)
	assert.Equal(t, 6, k)

	k, _, err = tr.NextNearest(2)
	require.NoError(t, err)
	assert.Equal(t, 2, k)

	_, _, err = tr.NextNearest(9)
	require.Error(t, err)

	beforeVersion := tr.Version()
	tr.Clear()
	assert.Equal(t, 0, tr.Len())
	assert.Greater(t, tr.Version(), beforeVersion)

	tr.Clear()
	_, _, err = tr.NextNearest(0)
	var be *bperr.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, bperr.EmptyCollection, be.Kind)
}
