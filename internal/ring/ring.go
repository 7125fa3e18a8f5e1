// Package ring implements RingArray, the circular-buffer backing store used
// by every tree node. A Ring keeps its logical sequence in a fixed-length
// slice addressed through a rotating start index, so inserting or removing
// near either end never has to shift the whole buffer.
package ring

import (
	"github.com/MkazemAkhgary/bplustree/bperr"
)

// Variant constrains which mutations a Ring accepts.
type Variant int

const (
	// None rings grow on demand (capacity doubles, starting at 4).
	None Variant = iota
	// FixedCapacity rings never grow; an insert that would require growth
	// fails with FixedCapacityViolation. Tree nodes use this variant.
	FixedCapacity
	// FixedSize rings support neither Insert nor RemoveAt; only Set.
	FixedSize
	// ReadOnly rings reject every mutation.
	ReadOnly
)

const initialCapacity = 4

// Ring is a circular buffer of T with a logical start and count.
type Ring[T any] struct {
	data    []T
	start   int
	count   int
	variant Variant
	version int
}

func newRing[T any](variant Variant, capacity int) *Ring[T] {
	return &Ring[T]{data: make([]T, capacity), variant: variant}
}

// New creates a growable ring (Variant None).
func New[T any]() *Ring[T] {
	return newRing[T](None, initialCapacity)
}

// NewFixedCapacity creates a ring that never grows beyond capacity.
func NewFixedCapacity[T any](capacity int) (*Ring[T], error) {
	if capacity < 1 {
		return nil, bperr.New(bperr.InvalidArgument, "capacity must be >= 1, got %d", capacity)
	}
	return newRing[T](FixedCapacity, capacity), nil
}

// NewFixedSize creates a ring of exactly size slots, each holding the zero
// value of T, that permits Set but not Insert/RemoveAt/Push/Pop.
func NewFixedSize[T any](size int) (*Ring[T], error) {
	if size < 0 {
		return nil, bperr.New(bperr.InvalidArgument, "size must be >= 0, got %d", size)
	}
	r := newRing[T](FixedSize, size)
	r.count = size
	return r, nil
}

// NewReadOnly wraps items as a read-only ring; items is used directly, not
// copied, so callers must not mutate it afterwards.
func NewReadOnly[T any](items []T) *Ring[T] {
	return &Ring[T]{data: items, count: len(items), variant: ReadOnly}
}

// Len returns the number of logical elements currently stored.
func (r *Ring[T]) Len() int { return r.count }

// Capacity returns the size of the backing array.
func (r *Ring[T]) Capacity() int { return len(r.data) }

// IsFull reports whether the ring has no spare capacity.
func (r *Ring[T]) IsFull() bool { return r.count == len(r.data) }

// Variant reports the ring's mutation constraint.
func (r *Ring[T]) Variant() Variant { return r.variant }

// Version returns the current mutation counter. Every mutation bumps it;
// ForEach and Slice do not check it, so the ring has no enumerator that
// detects modification during iteration.
func (r *Ring[T]) Version() int { return r.version }

// phys maps a logical index in [0, count) to a physical slot.
func (r *Ring[T]) phys(i int) int {
	p := r.start + i
	if p >= len(r.data) {
		p -= len(r.data)
	}
	return p
}

func inc(i, cap int) int {
	i++
	if i == cap {
		i = 0
	}
	return i
}

func dec(i, cap int) int {
	if i == 0 {
		return cap - 1
	}
	return i - 1
}

// Get returns the logical element at index.
func (r *Ring[T]) Get(index int) (T, error) {
	var zero T
	if index < 0 || index >= r.count {
		return zero, bperr.New(bperr.IndexOutOfRange, "index %d out of range [0,%d)", index, r.count)
	}
	return r.data[r.phys(index)], nil
}

// Set replaces the logical element at index; it is the only mutation a
// FixedSize ring permits.
func (r *Ring[T]) Set(index int, item T) error {
	if index < 0 || index >= r.count {
		return bperr.New(bperr.IndexOutOfRange, "index %d out of range [0,%d)", index, r.count)
	}
	if r.variant == ReadOnly {
		return bperr.New(bperr.ReadOnlyViolation, "Set on read-only ring")
	}
	r.data[r.phys(index)] = item
	r.version++
	return nil
}

func (r *Ring[T]) checkStructuralMutation() error {
	switch r.variant {
	case ReadOnly:
		return bperr.New(bperr.ReadOnlyViolation, "structural mutation of read-only ring")
	case FixedSize:
		return bperr.New(bperr.FixedSizeViolation, "structural mutation of fixed-size ring")
	}
	return nil
}

func (r *Ring[T]) grow() {
	newCap := len(r.data) * 2
	if newCap == 0 {
		newCap = initialCapacity
	}
	nd := make([]T, newCap)
	for i := 0; i < r.count; i++ {
		nd[i] = r.data[r.phys(i)]
	}
	r.data = nd
	r.start = 0
}

func (r *Ring[T]) ensureRoom() error {
	if r.count < len(r.data) {
		return nil
	}
	if r.variant == FixedCapacity {
		return bperr.New(bperr.FixedCapacityViolation, "fixed-capacity ring (cap=%d) is full", len(r.data))
	}
	r.grow()
	return nil
}

// Insert places item at the given logical index, in [0, count]. It shifts
// whichever side (the index items before, or the count-index items after)
// is smaller.
func (r *Ring[T]) Insert(index int, item T) error {
	if index < 0 || index > r.count {
		return bperr.New(bperr.IndexOutOfRange, "index %d out of range [0,%d]", index, r.count)
	}
	if err := r.checkStructuralMutation(); err != nil {
		return err
	}
	if err := r.ensureRoom(); err != nil {
		return err
	}

	leftN := index
	rightN := r.count - index

	if leftN <= rightN {
		newStart := dec(r.start, len(r.data))
		for i := 0; i < leftN; i++ {
			r.data[r.physFrom(newStart, i)] = r.data[r.phys(i)]
		}
		r.data[r.physFrom(newStart, index)] = item
		r.start = newStart
	} else {
		for i := r.count; i > index; i-- {
			r.data[r.phys(i)] = r.data[r.phys(i - 1)]
		}
		r.data[r.phys(index)] = item
	}
	r.count++
	r.version++
	return nil
}

func (r *Ring[T]) physFrom(start, i int) int {
	p := start + i
	if p >= len(r.data) {
		p -= len(r.data)
	}
	return p
}

// RemoveAt removes and returns the logical element at index, shifting
// whichever side is smaller.
func (r *Ring[T]) RemoveAt(index int) (T, error) {
	var zero T
	if index < 0 || index >= r.count {
		return zero, bperr.New(bperr.IndexOutOfRange, "index %d out of range [0,%d)", index, r.count)
	}
	if err := r.checkStructuralMutation(); err != nil {
		return zero, err
	}

	removed := r.data[r.phys(index)]
	leftN := index
	rightN := r.count - index - 1

	if leftN <= rightN {
		for i := index; i > 0; i-- {
			r.data[r.phys(i)] = r.data[r.phys(i - 1)]
		}
		r.data[r.start] = zero
		r.start = inc(r.start, len(r.data))
	} else {
		for i := index; i < r.count-1; i++ {
			r.data[r.phys(i)] = r.data[r.phys(i + 1)]
		}
		r.data[r.phys(r.count-1)] = zero
	}
	r.count--
	r.version++
	return removed, nil
}

// PushFirst inserts item at the front in O(1).
func (r *Ring[T]) PushFirst(item T) error {
	if err := r.checkStructuralMutation(); err != nil {
		return err
	}
	if err := r.ensureRoom(); err != nil {
		return err
	}
	r.start = dec(r.start, len(r.data))
	r.data[r.start] = item
	r.count++
	r.version++
	return nil
}

// PushLast inserts item at the back in O(1).
func (r *Ring[T]) PushLast(item T) error {
	if err := r.checkStructuralMutation(); err != nil {
		return err
	}
	if err := r.ensureRoom(); err != nil {
		return err
	}
	r.data[r.phys(r.count)] = item
	r.count++
	r.version++
	return nil
}

// PopFirst removes and returns the front element in O(1).
func (r *Ring[T]) PopFirst() (T, error) {
	var zero T
	if r.count == 0 {
		return zero, bperr.New(bperr.EmptyCollection, "PopFirst on empty ring")
	}
	if err := r.checkStructuralMutation(); err != nil {
		return zero, err
	}
	item := r.data[r.start]
	r.data[r.start] = zero
	r.start = inc(r.start, len(r.data))
	r.count--
	r.version++
	return item, nil
}

// PopLast removes and returns the back element in O(1).
func (r *Ring[T]) PopLast() (T, error) {
	var zero T
	if r.count == 0 {
		return zero, bperr.New(bperr.EmptyCollection, "PopLast on empty ring")
	}
	if err := r.checkStructuralMutation(); err != nil {
		return zero, err
	}
	last := r.phys(r.count - 1)
	item := r.data[last]
	r.data[last] = zero
	r.count--
	r.version++
	return item, nil
}

// InsertPopFirst inserts item at index then evicts and returns the front
// element, leaving the ring's count unchanged. If index == 0, item itself
// is the one evicted, so it is returned unmutated and the ring is
// untouched.
func (r *Ring[T]) InsertPopFirst(index int, item T) (T, error) {
	var zero T
	if err := r.checkStructuralMutation(); err != nil {
		return zero, err
	}
	if index == 0 {
		return item, nil
	}
	evicted := r.data[r.start]
	for i := 1; i < index; i++ {
		r.data[r.phys(i - 1)] = r.data[r.phys(i)]
	}
	r.data[r.phys(index - 1)] = item
	r.version++
	return evicted, nil
}

// InsertPopLast is the symmetric counterpart of InsertPopFirst: it inserts
// item at index then evicts and returns the back element.
func (r *Ring[T]) InsertPopLast(index int, item T) (T, error) {
	var zero T
	if err := r.checkStructuralMutation(); err != nil {
		return zero, err
	}
	if index == r.count {
		return item, nil
	}
	evicted := r.data[r.phys(r.count-1)]
	for i := r.count - 1; i > index; i-- {
		r.data[r.phys(i)] = r.data[r.phys(i - 1)]
	}
	r.data[r.phys(index)] = item
	r.version++
	return evicted, nil
}

// BinarySearch searches the sorted ring using probe, which must return
// cmp(key, candidate): negative if key is less, zero if equal, positive if
// greater. It returns the logical index when found, or the bitwise
// complement of the insertion point when not. When the ring is rotated it
// first decides which physical half to search by comparing against the
// last physical slot, so the inner search runs over one contiguous slice.
func (r *Ring[T]) BinarySearch(probe func(T) int) int {
	n := len(r.data)
	if r.count == 0 {
		return ^0
	}
	if r.start+r.count <= n {
		return binarySearchSlice(r.data[r.start:r.start+r.count], probe, 0)
	}

	end := r.start + r.count - n
	if probe(r.data[n-1]) <= 0 {
		return binarySearchSlice(r.data[r.start:n], probe, 0)
	}
	return binarySearchSlice(r.data[0:end], probe, n-r.start)
}

func binarySearchSlice[T any](s []T, probe func(T) int, offset int) int {
	lo, hi := 0, len(s)
	for lo < hi {
		mid := (lo + hi) / 2
		c := probe(s[mid])
		switch {
		case c == 0:
			return offset + mid
		case c < 0:
			hi = mid
		default:
			lo = mid + 1
		}
	}
	return ^(offset + lo)
}

// SplitRight moves the upper half of this ring into a new ring of equal
// capacity and variant, keeping the lower ceiling-half here: after the
// split this.Len() == ceil(n/2) and right.Len() == floor(n/2).
func (r *Ring[T]) SplitRight() *Ring[T] {
	var zero T
	n := r.count
	rightCount := n / 2
	leftCount := n - rightCount

	right := newRing[T](r.variant, len(r.data))
	for i := 0; i < rightCount; i++ {
		p := r.phys(leftCount + i)
		right.data[i] = r.data[p]
		r.data[p] = zero
	}
	right.count = rightCount
	r.count = leftCount
	r.version++
	right.version++
	return right
}

// MergeLeft appends all of right onto the end of this ring. The caller
// (tree merge logic) is responsible for only calling this when the result
// fits; this is an internal invariant, not a user-facing precondition.
func (r *Ring[T]) MergeLeft(right *Ring[T]) {
	for i := 0; i < right.count; i++ {
		r.data[r.phys(r.count+i)] = right.data[right.phys(i)]
	}
	r.count += right.count
	r.version++
}

// ForEach calls fn for every logical element in order, stopping early if
// fn returns false.
func (r *Ring[T]) ForEach(fn func(i int, item T) bool) {
	for i := 0; i < r.count; i++ {
		if !fn(i, r.data[r.phys(i)]) {
			return
		}
	}
}

// Slice returns a fresh, ordered copy of the ring's logical contents.
func (r *Ring[T]) Slice() []T {
	out := make([]T, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.data[r.phys(i)]
	}
	return out
}
