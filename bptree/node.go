package bptree

import (
	"github.com/MkazemAkhgary/bplustree/internal/assert"
	"github.com/MkazemAkhgary/bplustree/internal/ring"
)

// Cmp is a total-order comparator: negative if a < b, zero if equal,
// positive if a > b.
type Cmp[K any] func(a, b K) int

type entry[K, V any] struct {
	key   K
	value V
}

type separator[K, V any] struct {
	key   K
	child node[K, V]
}

// node is the shared capability set leaves and internals both implement.
// There is no open-ended inheritance: exactly two concrete types satisfy
// it, dispatched on with a type switch at each recursion step.
type node[K, V any] interface {
	firstKey() K
}

type leaf[K, V any] struct {
	items      *ring.Ring[entry[K, V]]
	prev, next *leaf[K, V]
}

type internal[K, V any] struct {
	left  node[K, V]
	items *ring.Ring[separator[K, V]]
}

func newLeaf[K, V any](capacity int) *leaf[K, V] {
	r, err := ring.NewFixedCapacity[entry[K, V]](capacity)
	assert.Assert(err == nil, "leaf capacity must already be validated: %v", err)
	return &leaf[K, V]{items: r}
}

func newInternal[K, V any](capacity int) *internal[K, V] {
	r, err := ring.NewFixedCapacity[separator[K, V]](capacity)
	assert.Assert(err == nil, "internal capacity must already be validated: %v", err)
	return &internal[K, V]{items: r}
}

func (l *leaf[K, V]) firstKey() K {
	e, err := l.items.Get(0)
	assert.Assert(err == nil, "firstKey on empty leaf")
	return e.key
}

func (l *leaf[K, V]) lastKey() K {
	e, err := l.items.Get(l.items.Len() - 1)
	assert.Assert(err == nil, "lastKey on empty leaf")
	return e.key
}

func (n *internal[K, V]) firstKey() K {
	if n.left != nil {
		return n.left.firstKey()
	}
	s, err := n.items.Get(0)
	assert.Assert(err == nil, "firstKey on empty internal node")
	return s.key
}

func isHalfFull(length, capacity int) bool {
	return length >= capacity/2
}

func isOverHalfFull(length, capacity int) bool {
	return length > capacity/2
}

// find locates key in a leaf's ring, returning the logical index if
// present, or the bitwise complement of the insertion point otherwise.
func (l *leaf[K, V]) find(key K, cmp Cmp[K]) int {
	return l.items.BinarySearch(func(e entry[K, V]) int { return cmp(key, e.key) })
}

// find locates the separator governing key, using the same convention as
// find on a leaf.
func (n *internal[K, V]) find(key K, cmp Cmp[K]) int {
	return n.items.BinarySearch(func(s separator[K, V]) int { return cmp(key, s.key) })
}

// childSlot returns the slot index of the child key routes to: 0 means
// n.left, slot k+1 means the child of items[k].
func (n *internal[K, V]) childSlot(key K, cmp Cmp[K]) int {
	i := n.find(key, cmp)
	if i < 0 {
		i = ^i - 1
	}
	return i + 1
}

func (n *internal[K, V]) childAt(slot int) node[K, V] {
	if slot == 0 {
		return n.left
	}
	s, err := n.items.Get(slot - 1)
	assert.Assert(err == nil, "childAt: slot %d out of range", slot)
	return s.child
}

// GetNearestChild implements §4.3: the child whose subtree key routes to.
func (n *internal[K, V]) GetNearestChild(key K, cmp Cmp[K]) node[K, V] {
	return n.childAt(n.childSlot(key, cmp))
}

func (n *internal[K, V]) rightmostChild() node[K, V] {
	if n.items.Len() == 0 {
		return n.left
	}
	s, err := n.items.Get(n.items.Len() - 1)
	assert.Assert(err == nil, "rightmostChild: empty items after length check")
	return s.child
}

func (n *internal[K, V]) leftmostChild() node[K, V] {
	return n.left
}

// relatives carries the sibling/ancestor context a node needs to spill,
// borrow, or merge without re-walking the tree from the root. The root
// always recurses with the zero value: no siblings, nothing to rotate
// into, which is exactly what lets it sit below the half-full threshold.
type relatives[K, V any] struct {
	leftSibling, rightSibling   node[K, V]
	leftTrue, rightTrue         bool
	leftAncestor, rightAncestor *internal[K, V]
	leftAncestorIdx             int
	rightAncestorIdx            int
}

// childRelatives computes the relatives object for the child at slot cs,
// given n's own relatives rel. A child at either edge of n reaches its
// sibling through n's own sibling (a cousin) via the ancestor n was given;
// an interior child's sibling is a true sibling living in n itself.
func (n *internal[K, V]) childRelatives(rel relatives[K, V], cs int) relatives[K, V] {
	count := n.items.Len()
	var out relatives[K, V]

	if cs > 0 {
		out.leftSibling = n.childAt(cs - 1)
		out.leftTrue = true
		out.leftAncestor = n
		out.leftAncestorIdx = cs - 1
	} else if rel.leftSibling != nil {
		if ls, ok := rel.leftSibling.(*internal[K, V]); ok {
			out.leftSibling = ls.rightmostChild()
		}
		out.leftAncestor = rel.leftAncestor
		out.leftAncestorIdx = rel.leftAncestorIdx
	}

	if cs < count {
		out.rightSibling = n.childAt(cs + 1)
		out.rightTrue = true
		out.rightAncestor = n
		out.rightAncestorIdx = cs
	} else if rel.rightSibling != nil {
		if rs, ok := rel.rightSibling.(*internal[K, V]); ok {
			out.rightSibling = rs.leftmostChild()
		}
		out.rightAncestor = rel.rightAncestor
		out.rightAncestorIdx = rel.rightAncestorIdx
	}

	return out
}

// promotion is what a split returns upward: the key under which the new
// right-hand node must be filed, and the node itself.
type promotion[K, V any] struct {
	key   K
	child node[K, V]
}

// splitAndPlace splits full in two (the ceiling-half stays in full, the
// floor-half moves to the returned ring), places newItem on whichever side
// its position falls on, then corrects a boundary case where that leaves
// the halves more than one apart. Shared verbatim by leaf split (T =
// entry) and internal split (T = separator).
func splitAndPlace[T any](full *ring.Ring[T], newItem T, pos int) *ring.Ring[T] {
	right := full.SplitRight()
	leftCount := full.Len()

	if pos <= leftCount {
		assert.Assert(full.Insert(pos, newItem) == nil, "splitAndPlace: insert into left half")
	} else {
		assert.Assert(right.Insert(pos-leftCount, newItem) == nil, "splitAndPlace: insert into right half")
	}

	if full.Len()-right.Len() > 1 {
		last, _ := full.PopLast()
		_ = right.PushFirst(last)
	} else if right.Len()-full.Len() > 1 {
		first, _ := right.PopFirst()
		_ = full.PushLast(first)
	}
	return right
}

// demoteGiverFirstToTakerLast pops giver's first separator, installs its
// child as giver's new left (the subtree it used to route to is now
// giver's smallest), promotes its key into the shared ancestor, and
// files the ancestor's old key — together with giver's old left — as a
// new last separator on taker. Used both to spill this node's surplus
// left (giver=this, taker=leftSibling) and to borrow from a right sibling
// on delete (giver=rightSibling, taker=this).
func demoteGiverFirstToTakerLast[K, V any](giver, taker *internal[K, V], ancestor *internal[K, V], idx int) {
	first, err := giver.items.PopFirst()
	assert.Assert(err == nil, "demoteGiverFirstToTakerLast: giver has no items")

	oldGiverLeft := giver.left
	giver.left = first.child

	sep, err := ancestor.items.Get(idx)
	assert.Assert(err == nil, "demoteGiverFirstToTakerLast: ancestor separator missing")
	oldAncestorKey := sep.key
	sep.key = first.key
	_ = ancestor.items.Set(idx, sep)

	_ = taker.items.PushLast(separator[K, V]{key: oldAncestorKey, child: oldGiverLeft})
}

// demoteGiverLastToTakerFirst is the mirror of the above: it pops giver's
// last separator, installs its child as taker's new left, and files
// taker's old left as taker's new first separator. Used to spill this
// node's surplus right (giver=this, taker=rightSibling) and to borrow
// from a left sibling on delete (giver=leftSibling, taker=this).
func demoteGiverLastToTakerFirst[K, V any](giver, taker *internal[K, V], ancestor *internal[K, V], idx int) {
	last, err := giver.items.PopLast()
	assert.Assert(err == nil, "demoteGiverLastToTakerFirst: giver has no items")

	oldTakerLeft := taker.left
	taker.left = last.child

	sep, err := ancestor.items.Get(idx)
	assert.Assert(err == nil, "demoteGiverLastToTakerFirst: ancestor separator missing")
	oldAncestorKey := sep.key
	sep.key = last.key
	_ = ancestor.items.Set(idx, sep)

	_ = taker.items.PushFirst(separator[K, V]{key: oldAncestorKey, child: oldTakerLeft})
}

// demoteNewChildToLeftSibling handles a split of n's own left child: the
// new separator isn't inserted into n.items at all. Instead n's old left
// (the split's smaller half) moves over to the left sibling, and the new
// right half takes its place as n's left. newSep's child becomes n's new
// left, newSep's key is promoted into the shared ancestor, and the
// ancestor's old key together with n's old left file in as ls's new last
// separator.
func demoteNewChildToLeftSibling[K, V any](n, ls *internal[K, V], newSep separator[K, V], ancestor *internal[K, V], idx int) {
	oldLeft := n.left
	n.left = newSep.child

	sep, err := ancestor.items.Get(idx)
	assert.Assert(err == nil, "demoteNewChildToLeftSibling: ancestor separator missing")
	oldAncestorKey := sep.key
	sep.key = newSep.key
	_ = ancestor.items.Set(idx, sep)

	_ = ls.items.PushLast(separator[K, V]{key: oldAncestorKey, child: oldLeft})
}

// demoteNewChildToRightSibling is the mirror of the above for a split of
// n's own rightmost child: newSep's child becomes rs's new left, and rs's
// old left files in as rs's new first separator alongside the demoted
// ancestor key.
func demoteNewChildToRightSibling[K, V any](n, rs *internal[K, V], newSep separator[K, V], ancestor *internal[K, V], idx int) {
	oldRsLeft := rs.left
	rs.left = newSep.child

	sep, err := ancestor.items.Get(idx)
	assert.Assert(err == nil, "demoteNewChildToRightSibling: ancestor separator missing")
	oldAncestorKey := sep.key
	sep.key = newSep.key
	_ = ancestor.items.Set(idx, sep)

	_ = rs.items.PushFirst(separator[K, V]{key: oldAncestorKey, child: oldRsLeft})
}

// mergeInternalIntoLeft demotes the ancestor separator between this and
// left into a new last separator on left (paired with this.left, which
// otherwise has no separator key of its own), then appends all of this's
// items onto left.
func mergeInternalIntoLeft[K, V any](this, left *internal[K, V], ancestor *internal[K, V], idx int) {
	sep, err := ancestor.items.Get(idx)
	assert.Assert(err == nil, "mergeInternalIntoLeft: ancestor separator missing")
	_ = left.items.PushLast(separator[K, V]{key: sep.key, child: this.left})
	left.items.MergeLeft(this.items)
}

// mergeRightIntoInternal is the mirror: right vanishes into this.
func mergeRightIntoInternal[K, V any](this, right *internal[K, V], ancestor *internal[K, V], idx int) {
	sep, err := ancestor.items.Get(idx)
	assert.Assert(err == nil, "mergeRightIntoInternal: ancestor separator missing")
	_ = this.items.PushLast(separator[K, V]{key: sep.key, child: right.left})
	this.items.MergeLeft(right.items)
}
