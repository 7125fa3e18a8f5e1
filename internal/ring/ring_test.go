package ring

import (
	"testing"

	"github.com/MkazemAkhgary/bplustree/bperr"
	"github.com/stretchr/testify/assert"
)

func cmpInt(key int) func(int) int {
	return func(candidate int) int { return key - candidate }
}

func TestInsertGrowsAndPreservesOrder(t *testing.T) {
	r := New[int]()
	for i := 0; i < 10; i++ {
		assert.NoError(t, r.Insert(i, i))
	}
	assert.Equal(t, 10, r.Len())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, r.Slice())
}

func TestInsertAtFrontAndMiddle(t *testing.T) {
	r, err := NewFixedCapacity[int](8)
	assert.NoError(t, err)

	assert.NoError(t, r.Insert(0, 10))
	assert.NoError(t, r.Insert(0, 20)) // front
	assert.NoError(t, r.Insert(2, 30)) // back
	assert.NoError(t, r.Insert(1, 25)) // middle

	assert.Equal(t, []int{20, 25, 10, 30}, r.Slice())
}

func TestFixedCapacityRejectsGrowth(t *testing.T) {
	r, err := NewFixedCapacity[int](2)
	assert.NoError(t, err)
	assert.NoError(t, r.Insert(0, 1))
	assert.NoError(t, r.Insert(1, 2))

	err = r.Insert(1, 3)
	assert.Error(t, err)
	var be *bperr.Error
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, bperr.FixedCapacityViolation, be.Kind)
}

func TestRemoveAtShiftsSmallerSide(t *testing.T) {
	r, err := NewFixedCapacity[int](8)
	assert.NoError(t, err)
	for i := 0; i < 6; i++ {
		assert.NoError(t, r.Insert(i, i))
	}

	v, err := r.RemoveAt(1)
	assert.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, []int{0, 2, 3, 4, 5}, r.Slice())

	v, err = r.RemoveAt(3)
	assert.NoError(t, err)
	assert.Equal(t, 4, v)
	assert.Equal(t, []int{0, 2, 3, 5}, r.Slice())
}

func TestPushPopBothEnds(t *testing.T) {
	r := New[int]()
	assert.NoError(t, r.PushFirst(2))
	assert.NoError(t, r.PushFirst(1))
	assert.NoError(t, r.PushLast(3))
	assert.NoError(t, r.PushLast(4))
	assert.Equal(t, []int{1, 2, 3, 4}, r.Slice())

	first, err := r.PopFirst()
	assert.NoError(t, err)
	assert.Equal(t, 1, first)

	last, err := r.PopLast()
	assert.NoError(t, err)
	assert.Equal(t, 4, last)

	assert.Equal(t, []int{2, 3}, r.Slice())
}

func TestPopEmptyIsEmptyCollection(t *testing.T) {
	r := New[int]()
	_, err := r.PopFirst()
	var be *bperr.Error
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, bperr.EmptyCollection, be.Kind)

	_, err = r.PopLast()
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, bperr.EmptyCollection, be.Kind)
}

func TestInsertPopFirstCapacityPreserving(t *testing.T) {
	r, err := NewFixedCapacity[int](4)
	assert.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.NoError(t, r.Insert(i, i*10))
	}

	evicted, err := r.InsertPopFirst(0, 999)
	assert.NoError(t, err)
	assert.Equal(t, 999, evicted) // index == 0: item unchanged, ring untouched
	assert.Equal(t, []int{0, 10, 20, 30}, r.Slice())

	evicted, err = r.InsertPopFirst(2, 15)
	assert.NoError(t, err)
	assert.Equal(t, 0, evicted) // old front evicted
	assert.Equal(t, []int{10, 15, 20, 30}, r.Slice())
	assert.Equal(t, 4, r.Len()) // count preserved
}

func TestInsertPopLastCapacityPreserving(t *testing.T) {
	r, err := NewFixedCapacity[int](4)
	assert.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.NoError(t, r.Insert(i, i*10))
	}

	evicted, err := r.InsertPopLast(4, 999)
	assert.NoError(t, err)
	assert.Equal(t, 999, evicted) // index == count: item unchanged
	assert.Equal(t, []int{0, 10, 20, 30}, r.Slice())

	evicted, err = r.InsertPopLast(1, 5)
	assert.NoError(t, err)
	assert.Equal(t, 30, evicted) // old back evicted
	assert.Equal(t, []int{0, 5, 10, 20}, r.Slice())
	assert.Equal(t, 4, r.Len())
}

func TestBinarySearchAroundRotation(t *testing.T) {
	r, err := NewFixedCapacity[int](6)
	assert.NoError(t, err)
	for _, v := range []int{10, 20, 30, 40} {
		assert.NoError(t, r.PushLast(v))
	}
	// Rotate the window by popping from the front and pushing to the back
	// until the logical sequence straddles the physical end of the array.
	_, _ = r.PopFirst()
	_, _ = r.PopFirst()
	assert.NoError(t, r.PushLast(50))
	assert.NoError(t, r.PushLast(60))
	assert.NoError(t, r.PushLast(70))
	assert.Equal(t, []int{30, 40, 50, 60, 70}, r.Slice())

	idx := r.BinarySearch(cmpInt(40))
	assert.Equal(t, 1, idx)

	idx = r.BinarySearch(cmpInt(70))
	assert.Equal(t, 4, idx)

	idx = r.BinarySearch(cmpInt(65))
	assert.Equal(t, ^4, idx)

	idx = r.BinarySearch(cmpInt(25))
	assert.Equal(t, ^0, idx)
}

func TestSplitRightBalancesHalves(t *testing.T) {
	r, err := NewFixedCapacity[int](8)
	assert.NoError(t, err)
	for i := 0; i < 7; i++ {
		assert.NoError(t, r.Insert(i, i))
	}

	right := r.SplitRight()
	assert.Equal(t, 4, r.Len())  // ceil(7/2)
	assert.Equal(t, 3, right.Len()) // floor(7/2)
	assert.Equal(t, []int{0, 1, 2, 3}, r.Slice())
	assert.Equal(t, []int{4, 5, 6}, right.Slice())
}

func TestMergeLeftAppendsInOrder(t *testing.T) {
	left, err := NewFixedCapacity[int](8)
	assert.NoError(t, err)
	right, err := NewFixedCapacity[int](8)
	assert.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.NoError(t, left.PushLast(i))
	}
	for i := 3; i < 6; i++ {
		assert.NoError(t, right.PushLast(i))
	}

	left.MergeLeft(right)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, left.Slice())
}

func TestReadOnlyRejectsMutation(t *testing.T) {
	r := NewReadOnly([]int{1, 2, 3})
	assert.Equal(t, 3, r.Len())

	err := r.Insert(0, 5)
	var be *bperr.Error
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, bperr.ReadOnlyViolation, be.Kind)

	err = r.Set(0, 9)
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, bperr.ReadOnlyViolation, be.Kind)
}

func TestFixedSizeAllowsSetOnly(t *testing.T) {
	r, err := NewFixedSize[int](3)
	assert.NoError(t, err)
	assert.Equal(t, 3, r.Len())

	assert.NoError(t, r.Set(1, 42))
	v, err := r.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)

	err = r.Insert(0, 1)
	var be *bperr.Error
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, bperr.FixedSizeViolation, be.Kind)

	_, err = r.RemoveAt(0)
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, bperr.FixedSizeViolation, be.Kind)
}

func TestNewFixedCapacityRejectsInvalidArgument(t *testing.T) {
	_, err := NewFixedCapacity[int](0)
	var be *bperr.Error
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, bperr.InvalidArgument, be.Kind)
}
