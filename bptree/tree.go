// Package bptree implements an in-memory, ordered, associative B+ tree:
// ring-array-backed nodes, spill-before-split insertion, borrow-before-merge
// deletion, a doubly-linked leaf chain, and version-guarded bidirectional
// range iteration.
package bptree

import (
	"github.com/MkazemAkhgary/bplustree/bperr"
	"github.com/MkazemAkhgary/bplustree/internal/assert"
)

const (
	defaultLeafCapacity     = 32
	defaultInternalCapacity = 32
)

// Tree is an ordered K -> V associative container.
type Tree[K, V any] struct {
	root                 node[K, V]
	head, tail           *leaf[K, V]
	height               int
	count                int
	version              int
	cmp                  Cmp[K]
	leafCap, internalCap int
}

// Option configures a Tree at construction time.
type Option[K, V any] func(*Tree[K, V])

// WithLeafCapacity sets the maximum number of entries a leaf node holds.
func WithLeafCapacity[K, V any](capacity int) Option[K, V] {
	return func(t *Tree[K, V]) { t.leafCap = capacity }
}

// WithInternalCapacity sets the maximum number of separators an internal
// node holds.
func WithInternalCapacity[K, V any](capacity int) Option[K, V] {
	return func(t *Tree[K, V]) { t.internalCap = capacity }
}

// New builds an empty tree ordered by cmp.
func New[K, V any](cmp Cmp[K], opts ...Option[K, V]) (*Tree[K, V], error) {
	if cmp == nil {
		return nil, bperr.New(bperr.InvalidArgument, "comparator must not be nil")
	}
	t := &Tree[K, V]{
		cmp:         cmp,
		leafCap:     defaultLeafCapacity,
		internalCap: defaultInternalCapacity,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.leafCap < 1 {
		return nil, bperr.New(bperr.InvalidArgument, "leaf capacity must be >= 1, got %d", t.leafCap)
	}
	if t.internalCap < 2 {
		return nil, bperr.New(bperr.InvalidArgument, "internal capacity must be >= 2, got %d", t.internalCap)
	}
	return t, nil
}

// Len returns the number of keys stored.
func (t *Tree[K, V]) Len() int { return t.count }

// Height returns the number of levels in the tree (0 when empty, 1 when the
// root is a lone leaf).
func (t *Tree[K, V]) Height() int { return t.height }

// Version returns the current mutation counter, used by Range to detect
// concurrent modification.
func (t *Tree[K, V]) Version() int { return t.version }

// insert is the single internal insertion path. addFn builds the value for
// a new key; updateFn reconciles an existing key's value with the request,
// returning an error to veto the update (Add uses this to reject
// duplicates).
func (t *Tree[K, V]) insert(key K, addFn func(K) V, updateFn func(K, V) (V, error)) (bool, error) {
	if t.root == nil {
		lf := newLeaf[K, V](t.leafCap)
		_ = lf.items.PushLast(entry[K, V]{key: key, value: addFn(key)})
		t.root = lf
		t.head, t.tail = lf, lf
		t.height = 1
		t.count = 1
		t.version++
		return true, nil
	}

	if handled, added, err := t.fastPathInsert(key, addFn, updateFn); handled {
		if added {
			t.count++
			t.version++
		}
		return added, err
	}

	added, prom, err := t.insertNode(t.root, relatives[K, V]{}, key, addFn, updateFn)
	if err != nil {
		return false, err
	}
	if prom != nil {
		newRoot := newInternal[K, V](t.internalCap)
		newRoot.left = t.root
		_ = newRoot.items.PushLast(separator[K, V]{key: prom.key, child: prom.child})
		t.root = newRoot
		t.height++
	}
	if added {
		t.count++
		t.version++
	}
	if t.tail.next != nil {
		t.tail = t.tail.next
	}
	if t.head.prev != nil {
		t.head = t.head.prev
	}
	return added, nil
}

// fastPathInsert handles the common append/prepend case in O(1), bypassing
// the recursive descent entirely when the key lands at either end of an
// un-full boundary leaf.
func (t *Tree[K, V]) fastPathInsert(key K, addFn func(K) V, updateFn func(K, V) (V, error)) (handled, added bool, err error) {
	if c := t.cmp(key, t.tail.lastKey()); c > 0 {
		if t.tail.items.IsFull() {
			return false, false, nil
		}
		_ = t.tail.items.PushLast(entry[K, V]{key: key, value: addFn(key)})
		return true, true, nil
	} else if c == 0 {
		last := t.tail.items.Len() - 1
		e, _ := t.tail.items.Get(last)
		nv, uerr := updateFn(key, e.value)
		if uerr != nil {
			return true, false, uerr
		}
		e.value = nv
		_ = t.tail.items.Set(last, e)
		return true, false, nil
	}

	if c := t.cmp(key, t.head.firstKey()); c < 0 {
		if t.head.items.IsFull() {
			return false, false, nil
		}
		_ = t.head.items.PushFirst(entry[K, V]{key: key, value: addFn(key)})
		return true, true, nil
	} else if c == 0 && t.head != t.tail {
		e, _ := t.head.items.Get(0)
		nv, uerr := updateFn(key, e.value)
		if uerr != nil {
			return true, false, uerr
		}
		e.value = nv
		_ = t.head.items.Set(0, e)
		return true, false, nil
	}

	return false, false, nil
}

func (t *Tree[K, V]) insertNode(n node[K, V], rel relatives[K, V], key K, addFn func(K) V, updateFn func(K, V) (V, error)) (bool, *promotion[K, V], error) {
	switch nd := n.(type) {
	case *leaf[K, V]:
		return t.insertLeaf(nd, rel, key, addFn, updateFn)
	case *internal[K, V]:
		return t.insertInternal(nd, rel, key, addFn, updateFn)
	}
	panic("bptree: unreachable node type")
}

func (t *Tree[K, V]) insertLeaf(lf *leaf[K, V], rel relatives[K, V], key K, addFn func(K) V, updateFn func(K, V) (V, error)) (bool, *promotion[K, V], error) {
	i := lf.find(key, t.cmp)
	if i >= 0 {
		e, _ := lf.items.Get(i)
		nv, err := updateFn(key, e.value)
		if err != nil {
			return false, nil, err
		}
		e.value = nv
		_ = lf.items.Set(i, e)
		return false, nil, nil
	}
	i = ^i
	e := entry[K, V]{key: key, value: addFn(key)}

	if !lf.items.IsFull() {
		_ = lf.items.Insert(i, e)
		return true, nil, nil
	}

	if rel.leftSibling != nil {
		if ls, ok := rel.leftSibling.(*leaf[K, V]); ok && !ls.items.IsFull() {
			evicted, _ := lf.items.InsertPopFirst(i, e)
			_ = ls.items.PushLast(evicted)
			t.setAncestorKey(rel.leftAncestor, rel.leftAncestorIdx, lf.firstKey())
			return true, nil, nil
		}
	}
	if rel.rightSibling != nil {
		if rs, ok := rel.rightSibling.(*leaf[K, V]); ok && !rs.items.IsFull() {
			evicted, _ := lf.items.InsertPopLast(i, e)
			_ = rs.items.PushFirst(evicted)
			t.setAncestorKey(rel.rightAncestor, rel.rightAncestorIdx, rs.firstKey())
			return true, nil, nil
		}
	}

	right := newLeaf[K, V](t.leafCap)
	right.items = splitAndPlace(lf.items, e, i)

	right.next = lf.next
	if lf.next != nil {
		lf.next.prev = right
	}
	right.prev = lf
	lf.next = right

	return true, &promotion[K, V]{key: right.firstKey(), child: right}, nil
}

func (t *Tree[K, V]) insertInternal(n *internal[K, V], rel relatives[K, V], key K, addFn func(K) V, updateFn func(K, V) (V, error)) (bool, *promotion[K, V], error) {
	cs := n.childSlot(key, t.cmp)
	i := cs - 1
	child := n.childAt(cs)
	childRel := n.childRelatives(rel, cs)

	added, prom, err := t.insertNode(child, childRel, key, addFn, updateFn)
	if err != nil || prom == nil {
		return added, nil, err
	}

	pos := i + 1
	newSep := separator[K, V]{key: prom.key, child: prom.child}

	if !n.items.IsFull() {
		_ = n.items.Insert(pos, newSep)
		return added, nil, nil
	}

	if rel.leftSibling != nil {
		if ls, ok := rel.leftSibling.(*internal[K, V]); ok && !ls.items.IsFull() {
			if cs == 0 {
				// The split child is n.left itself: its smaller half moves
				// to ls as ls's new last child, and newSep's child becomes
				// n's new left — nothing is inserted into n.items.
				demoteNewChildToLeftSibling(n, ls, newSep, rel.leftAncestor, rel.leftAncestorIdx)
				return added, nil, nil
			}
			demoteGiverFirstToTakerLast(n, ls, rel.leftAncestor, rel.leftAncestorIdx)
			_ = n.items.Insert(pos-1, newSep)
			return added, nil, nil
		}
	}
	if rel.rightSibling != nil {
		if rs, ok := rel.rightSibling.(*internal[K, V]); ok && !rs.items.IsFull() {
			if cs == n.items.Len() {
				// The split child is n's rightmost child: n.items stays
				// (its last entry still correctly routes to the shrunk
				// child), and newSep's child becomes rs's new left.
				demoteNewChildToRightSibling(n, rs, newSep, rel.rightAncestor, rel.rightAncestorIdx)
				return added, nil, nil
			}
			demoteGiverLastToTakerFirst(n, rs, rel.rightAncestor, rel.rightAncestorIdx)
			_ = n.items.Insert(pos, newSep)
			return added, nil, nil
		}
	}

	rightNode := &internal[K, V]{}
	rightNode.items = splitAndPlace(n.items, newSep, pos)
	// Promote the middle separator from the larger half, so both halves keep
	// at least capacity/2 separators.
	var middle separator[K, V]
	if n.items.Len() > rightNode.items.Len() {
		middle, _ = n.items.PopLast()
	} else {
		middle, _ = rightNode.items.PopFirst()
	}
	rightNode.left = middle.child

	return added, &promotion[K, V]{key: rightNode.firstKey(), child: rightNode}, nil
}

func (t *Tree[K, V]) setAncestorKey(ancestor *internal[K, V], idx int, key K) {
	if ancestor == nil {
		return
	}
	sep, err := ancestor.items.Get(idx)
	assert.Assert(err == nil, "setAncestorKey: separator %d missing", idx)
	sep.key = key
	_ = ancestor.items.Set(idx, sep)
}

// Add inserts key with value, failing with DuplicateKey if key is present.
func (t *Tree[K, V]) Add(key K, value V) error {
	_, err := t.insert(key,
		func(K) V { return value },
		func(K, V) (V, error) {
			var zero V
			return zero, bperr.New(bperr.DuplicateKey, "key already present")
		},
	)
	return err
}

// TryAdd inserts key with value if absent, reporting whether it was added.
func (t *Tree[K, V]) TryAdd(key K, value V) (bool, error) {
	return t.insert(key,
		func(K) V { return value },
		func(_ K, old V) (V, error) { return old, nil },
	)
}

// AddOrReplace inserts key with value, overwriting any existing value.
func (t *Tree[K, V]) AddOrReplace(key K, value V) (bool, error) {
	return t.insert(key,
		func(K) V { return value },
		func(_ K, _ V) (V, error) { return value, nil },
	)
}

// AddOrUpdate inserts key with value if absent, or calls update with the
// existing value to compute the replacement.
func (t *Tree[K, V]) AddOrUpdate(key K, value V, update func(key K, newValue, oldValue V) V) (bool, error) {
	return t.insert(key,
		func(K) V { return value },
		func(k K, old V) (V, error) { return update(k, value, old), nil },
	)
}

// AddOrUpdateFromArg lazily builds the value from arg only when needed: add
// is called on insert, update on an existing key. This avoids constructing
// a candidate value before knowing whether it will be used.
func AddOrUpdateFromArg[K, V, A any](t *Tree[K, V], key K, arg A, add func(key K, arg A) V, update func(key K, arg A, old V) V) (bool, error) {
	return t.insert(key,
		func(k K) V { return add(k, arg) },
		func(k K, old V) (V, error) { return update(k, arg, old), nil },
	)
}

// ValueFactory is the interface form of AddOrUpdateFromArg's callbacks,
// useful when the construction logic needs to be a mockable collaborator
// rather than a closure.
type ValueFactory[K, V, A any] interface {
	Add(key K, arg A) V
	Update(key K, arg A, old V) V
}

// AddOrUpdateFromFactory is AddOrUpdateFromArg taking a ValueFactory.
func AddOrUpdateFromFactory[K, V, A any](t *Tree[K, V], key K, arg A, f ValueFactory[K, V, A]) (bool, error) {
	return AddOrUpdateFromArg(t, key, arg, f.Add, f.Update)
}

// TryGet reports the value stored for key, if any.
func (t *Tree[K, V]) TryGet(key K) (V, bool) {
	var zero V
	if t.root == nil {
		return zero, false
	}
	n := t.root
	for {
		switch nd := n.(type) {
		case *leaf[K, V]:
			i := nd.find(key, t.cmp)
			if i < 0 {
				return zero, false
			}
			e, _ := nd.items.Get(i)
			return e.value, true
		case *internal[K, V]:
			n = nd.GetNearestChild(key, t.cmp)
		}
	}
}

// ContainsKey reports whether key is present.
func (t *Tree[K, V]) ContainsKey(key K) bool {
	_, ok := t.TryGet(key)
	return ok
}

// First returns the smallest key and its value.
func (t *Tree[K, V]) First() (K, V, error) {
	var zk K
	var zv V
	if t.head == nil {
		return zk, zv, bperr.New(bperr.EmptyCollection, "First on empty tree")
	}
	e, _ := t.head.items.Get(0)
	return e.key, e.value, nil
}

// Last returns the largest key and its value.
func (t *Tree[K, V]) Last() (K, V, error) {
	var zk K
	var zv V
	if t.tail == nil {
		return zk, zv, bperr.New(bperr.EmptyCollection, "Last on empty tree")
	}
	e, _ := t.tail.items.Get(t.tail.items.Len() - 1)
	return e.key, e.value, nil
}

// NextNearest returns the smallest key >= key (and its value), or
// EmptyCollection if no such key exists.
func (t *Tree[K, V]) NextNearest(key K) (K, V, error) {
	var zk K
	var zv V
	if t.root == nil {
		return zk, zv, bperr.New(bperr.EmptyCollection, "NextNearest on empty tree")
	}
	n := t.root
	for {
		switch nd := n.(type) {
		case *leaf[K, V]:
			i := nd.find(key, t.cmp)
			if i < 0 {
				i = ^i
			}
			for i >= nd.items.Len() {
				if nd.next == nil {
					return zk, zv, bperr.New(bperr.EmptyCollection, "no key >= given key")
				}
				nd = nd.next
				i = 0
			}
			e, _ := nd.items.Get(i)
			return e.key, e.value, nil
		case *internal[K, V]:
			n = nd.GetNearestChild(key, t.cmp)
		}
	}
}

// Clear empties the tree. It bumps the version even when already empty, so
// a Range started just before observes the change.
func (t *Tree[K, V]) Clear() {
	t.root = nil
	t.head, t.tail = nil, nil
	t.height = 0
	t.count = 0
	t.version++
}

// Remove deletes key, reporting whether it was present.
func (t *Tree[K, V]) Remove(key K) (bool, error) {
	if t.root == nil {
		return false, nil
	}
	removed, _, _, err := t.removeNode(t.root, relatives[K, V]{}, key)
	if err != nil || !removed {
		return removed, err
	}
	t.collapseRoot()
	t.count--
	t.version++
	return true, nil
}

// RemoveFirst removes and returns the smallest key and its value.
func (t *Tree[K, V]) RemoveFirst() (K, V, error) {
	k, v, err := t.First()
	if err != nil {
		return k, v, err
	}
	_, err = t.Remove(k)
	return k, v, err
}

// RemoveLast removes and returns the largest key and its value.
func (t *Tree[K, V]) RemoveLast() (K, V, error) {
	k, v, err := t.Last()
	if err != nil {
		return k, v, err
	}
	_, err = t.Remove(k)
	return k, v, err
}

// collapseRoot promotes an internal root's sole child to root whenever a
// root-level merge leaves it with zero separators, and clears the tree
// entirely when the last leaf entry was removed.
func (t *Tree[K, V]) collapseRoot() {
	for {
		in, ok := t.root.(*internal[K, V])
		if !ok {
			break
		}
		if in.items.Len() > 0 {
			break
		}
		t.root = in.left
		t.height--
	}
	if lf, ok := t.root.(*leaf[K, V]); ok && lf.items.Len() == 0 {
		t.root = nil
		t.head, t.tail = nil, nil
		t.height = 0
	}
}

func (t *Tree[K, V]) removeNode(n node[K, V], rel relatives[K, V], key K) (removed bool, value V, mergeUp bool, err error) {
	switch nd := n.(type) {
	case *leaf[K, V]:
		return t.removeLeaf(nd, rel, key)
	case *internal[K, V]:
		return t.removeInternal(nd, rel, key)
	}
	panic("bptree: unreachable node type")
}

func (t *Tree[K, V]) removeLeaf(lf *leaf[K, V], rel relatives[K, V], key K) (bool, V, bool, error) {
	var zero V
	i := lf.find(key, t.cmp)
	if i < 0 {
		return false, zero, false, nil
	}
	removedEntry, _ := lf.items.RemoveAt(i)
	value := removedEntry.value
	if i == 0 {
		// lf lost its smallest key: once it is rebalanced, the separator
		// routing to it must equal its new smallest key again.
		defer func() {
			if lf.items.Len() > 0 {
				t.setAncestorKey(rel.leftAncestor, rel.leftAncestorIdx, lf.firstKey())
			}
		}()
	}

	if rel.leftSibling == nil && rel.rightSibling == nil {
		// root leaf: no siblings to rebalance against, and none required.
		return true, value, false, nil
	}
	if isHalfFull(lf.items.Len(), lf.items.Capacity()) {
		return true, value, false, nil
	}

	if rel.leftSibling != nil {
		if ls, ok := rel.leftSibling.(*leaf[K, V]); ok && isOverHalfFull(ls.items.Len(), ls.items.Capacity()) {
			last, _ := ls.items.PopLast()
			_ = lf.items.PushFirst(last)
			t.setAncestorKey(rel.leftAncestor, rel.leftAncestorIdx, lf.firstKey())
			return true, value, false, nil
		}
	}
	if rel.rightSibling != nil {
		if rs, ok := rel.rightSibling.(*leaf[K, V]); ok && isOverHalfFull(rs.items.Len(), rs.items.Capacity()) {
			first, _ := rs.items.PopFirst()
			_ = lf.items.PushLast(first)
			t.setAncestorKey(rel.rightAncestor, rel.rightAncestorIdx, rs.firstKey())
			return true, value, false, nil
		}
	}

	if rel.leftTrue && rel.leftSibling != nil {
		ls := rel.leftSibling.(*leaf[K, V])
		ls.items.MergeLeft(lf.items)
		ls.next = lf.next
		if lf.next != nil {
			lf.next.prev = ls
		}
		if t.head == lf {
			t.head = ls
		}
		if t.tail == lf {
			t.tail = ls
		}
		return true, value, true, nil
	}

	assert.Assert(rel.rightTrue && rel.rightSibling != nil, "leaf remove: no true sibling to merge with")
	rs := rel.rightSibling.(*leaf[K, V])
	lf.items.MergeLeft(rs.items)
	lf.next = rs.next
	if rs.next != nil {
		rs.next.prev = lf
	}
	if t.head == rs {
		t.head = lf
	}
	if t.tail == rs {
		t.tail = lf
	}
	return true, value, true, nil
}

func (t *Tree[K, V]) removeInternal(n *internal[K, V], rel relatives[K, V], key K) (bool, V, bool, error) {
	cs := n.childSlot(key, t.cmp)
	i := cs - 1
	child := n.childAt(cs)
	childRel := n.childRelatives(rel, cs)

	removed, value, childMerged, err := t.removeNode(child, childRel, key)
	if err != nil || !removed {
		return removed, value, false, err
	}

	if childMerged {
		idx := i
		if idx < 0 {
			idx = 0
		}
		_, _ = n.items.RemoveAt(idx)
	}

	if rel.leftSibling == nil && rel.rightSibling == nil {
		// root internal node: no siblings to rebalance against, and none required.
		return true, value, false, nil
	}
	if isHalfFull(n.items.Len(), n.items.Capacity()) {
		return true, value, false, nil
	}

	if rel.leftSibling != nil {
		if ls, ok := rel.leftSibling.(*internal[K, V]); ok && isOverHalfFull(ls.items.Len(), ls.items.Capacity()) {
			demoteGiverLastToTakerFirst(ls, n, rel.leftAncestor, rel.leftAncestorIdx)
			return true, value, false, nil
		}
	}
	if rel.rightSibling != nil {
		if rs, ok := rel.rightSibling.(*internal[K, V]); ok && isOverHalfFull(rs.items.Len(), rs.items.Capacity()) {
			demoteGiverFirstToTakerLast(rs, n, rel.rightAncestor, rel.rightAncestorIdx)
			return true, value, false, nil
		}
	}

	if rel.leftTrue && rel.leftSibling != nil {
		ls := rel.leftSibling.(*internal[K, V])
		mergeInternalIntoLeft(n, ls, rel.leftAncestor, rel.leftAncestorIdx)
		return true, value, true, nil
	}

	assert.Assert(rel.rightTrue && rel.rightSibling != nil, "internal remove: no true sibling to merge with")
	rs := rel.rightSibling.(*internal[K, V])
	mergeRightIntoInternal(n, rs, rel.rightAncestor, rel.rightAncestorIdx)
	return true, value, true, nil
}
