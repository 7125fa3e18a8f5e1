package bptree

import "github.com/MkazemAkhgary/bplustree/bperr"

// Builder bulk-loads a tree from a sequence of strictly-increasing
// (key, value) pairs in O(n): it packs leaves directly, rather than
// inserting one key at a time. Once it observes a key that is not greater
// than the last one it saw, it gives up on the fast path and replays
// everything collected so far — plus every subsequent Add — through the
// tree's ordinary insert, so a Builder never produces anything other than
// a correct tree regardless of input order.
type Builder[K, V any] struct {
	tree    *Tree[K, V]
	entries []entry[K, V]
	mode    builderMode
	built   bool
}

type builderMode int

const (
	modeBulk builderMode = iota
	modeFallback
)

// NewBuilder creates a Builder that will produce a tree ordered by cmp.
func NewBuilder[K, V any](cmp Cmp[K], opts ...Option[K, V]) (*Builder[K, V], error) {
	t, err := New[K, V](cmp, opts...)
	if err != nil {
		return nil, err
	}
	return &Builder[K, V]{tree: t}, nil
}

// Add appends key/value. In bulk mode this is O(1); once the fast path has
// been abandoned it is an ordinary tree insert.
func (b *Builder[K, V]) Add(key K, value V) error {
	if b.built {
		return bperr.New(bperr.InvalidArgument, "Builder already built")
	}

	if b.mode == modeFallback {
		return b.tree.Add(key, value)
	}

	if len(b.entries) > 0 && b.tree.cmp(key, b.entries[len(b.entries)-1].key) <= 0 {
		b.switchToFallback()
		return b.tree.Add(key, value)
	}

	b.entries = append(b.entries, entry[K, V]{key: key, value: value})
	return nil
}

// switchToFallback replays every entry collected so far through ordinary
// insertion, then commits to inserting everything from here on the same
// way. It is idempotent: calling it again (it never is, internally, but a
// caller driving Add in a loop could in principle re-trigger the mode
// check) would simply find mode already set to modeFallback and no-op via
// Add's own guard.
func (b *Builder[K, V]) switchToFallback() {
	pending := b.entries
	b.entries = nil
	b.mode = modeFallback
	for _, e := range pending {
		_ = b.tree.Add(e.key, e.value)
	}
}

// Build finalizes the tree. It is idempotent: calling it more than once
// returns the same tree without rebuilding.
func (b *Builder[K, V]) Build() (*Tree[K, V], error) {
	if b.built {
		return b.tree, nil
	}
	b.built = true
	if b.mode == modeFallback || len(b.entries) == 0 {
		return b.tree, nil
	}
	b.bulkLoad()
	return b.tree, nil
}

// bulkLoad packs b.entries directly into a leaf chain, then builds the
// internal levels above it bottom-up, one level at a time. On every level
// the nodes are sized as evenly as possible (see packLeaves and
// packInternalLevel) rather than filled to capacity.
func (b *Builder[K, V]) bulkLoad() {
	t := b.tree
	leaves := packLeaves(b.entries, t.leafCap)

	for i, lf := range leaves {
		if i > 0 {
			lf.prev = leaves[i-1]
			leaves[i-1].next = lf
		}
	}
	t.head, t.tail = leaves[0], leaves[len(leaves)-1]
	t.count = len(b.entries)
	t.version++

	level := make([]node[K, V], len(leaves))
	for i, lf := range leaves {
		level[i] = lf
	}

	height := 1
	for len(level) > 1 {
		level = b.packInternalLevel(level)
		height++
	}

	t.root = level[0]
	t.height = height
}

// packLeaves distributes entries across the fewest leaves such that none
// exceeds capacity and, when more than one leaf is needed, none is less
// than half full — the same balance invariant ordinary splits maintain.
func packLeaves[K, V any](entries []entry[K, V], capacity int) []*leaf[K, V] {
	n := len(entries)
	count := (n + capacity - 1) / capacity
	if count < 1 {
		count = 1
	}
	base := n / count
	extra := n % count

	leaves := make([]*leaf[K, V], count)
	pos := 0
	for i := 0; i < count; i++ {
		size := base
		if i < extra {
			size++
		}
		lf := newLeaf[K, V](capacity)
		for _, e := range entries[pos : pos+size] {
			_ = lf.items.PushLast(e)
		}
		leaves[i] = lf
		pos += size
	}
	return leaves
}

// packInternalLevel builds the parents of level, one internal node at a
// time, distributing children the same way packLeaves distributes
// entries: as evenly as possible, none over the internal capacity.
func (b *Builder[K, V]) packInternalLevel(level []node[K, V]) []node[K, V] {
	capacity := b.tree.internalCap
	childrenPerNode := capacity + 1

	n := len(level)
	count := (n + childrenPerNode - 1) / childrenPerNode
	if count < 1 {
		count = 1
	}
	base := n / count
	extra := n % count

	parents := make([]node[K, V], count)
	pos := 0
	for i := 0; i < count; i++ {
		size := base
		if i < extra {
			size++
		}
		children := level[pos : pos+size]
		in := newInternal[K, V](capacity)
		in.left = children[0]
		for _, c := range children[1:] {
			_ = in.items.PushLast(separator[K, V]{key: c.firstKey(), child: c})
		}
		parents[i] = in
		pos += size
	}
	return parents
}
