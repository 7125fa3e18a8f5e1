package bptree

import "github.com/MkazemAkhgary/bplustree/bperr"

// Cursor walks the leaf chain in either direction. It is positioned over a
// single (key, value) pair at a time; Next/Prev advance it. A Cursor is
// invalidated by any mutation of the tree it was created from — every move
// checks the tree's version and returns ConcurrentModification if it has
// changed, as §5 specifies for the tree's own iteration.
type Cursor[K, V any] struct {
	tree    *Tree[K, V]
	version int
	lf      *leaf[K, V]
	idx     int
	ok      bool

	hasLo, hasHi bool
	lo, hi       K
}

func (t *Tree[K, V]) newCursor() *Cursor[K, V] {
	return &Cursor[K, V]{tree: t, version: t.version}
}

// SeekFirst positions the cursor at the smallest key.
func (t *Tree[K, V]) SeekFirst() *Cursor[K, V] {
	c := t.newCursor()
	c.lf = t.head
	c.idx = 0
	c.ok = c.lf != nil && c.lf.items.Len() > 0
	return c
}

// SeekLast positions the cursor at the largest key.
func (t *Tree[K, V]) SeekLast() *Cursor[K, V] {
	c := t.newCursor()
	c.lf = t.tail
	if c.lf != nil {
		c.idx = c.lf.items.Len() - 1
	}
	c.ok = c.lf != nil && c.lf.items.Len() > 0
	return c
}

// Seek positions the cursor at the smallest key >= key.
func (t *Tree[K, V]) Seek(key K) *Cursor[K, V] {
	c := t.newCursor()
	if t.root == nil {
		return c
	}
	n := t.root
	for {
		switch nd := n.(type) {
		case *leaf[K, V]:
			i := nd.find(key, t.cmp)
			if i < 0 {
				i = ^i
			}
			c.lf, c.idx = nd, i
			c.ok = true
			c.normalizeForward()
			return c
		case *internal[K, V]:
			n = nd.GetNearestChild(key, t.cmp)
		}
	}
}

// Range returns a cursor over [lo, hi] in ascending order. A nil bound is
// open on that side.
func (t *Tree[K, V]) Range(lo, hi *K) *Cursor[K, V] {
	var c *Cursor[K, V]
	if lo != nil {
		c = t.Seek(*lo)
	} else {
		c = t.SeekFirst()
	}
	if hi != nil {
		c.hasHi = true
		c.hi = *hi
		if c.ok && t.cmp(c.Key(), c.hi) > 0 {
			c.ok = false
		}
	}
	return c
}

// RangeDescending returns a cursor over [lo, hi] in descending order. A nil
// bound is open on that side.
func (t *Tree[K, V]) RangeDescending(lo, hi *K) *Cursor[K, V] {
	var c *Cursor[K, V]
	if hi != nil {
		c = t.Seek(*hi)
		if !c.ok {
			// every key is below hi: start from the largest.
			c = t.SeekLast()
		} else if t.cmp(c.Key(), *hi) > 0 {
			_ = c.Prev()
		}
	} else {
		c = t.SeekLast()
	}
	if lo != nil {
		c.hasLo = true
		c.lo = *lo
		if c.ok && t.cmp(c.Key(), c.lo) < 0 {
			c.ok = false
		}
	}
	return c
}

func (c *Cursor[K, V]) checkVersion() error {
	if c.version != c.tree.version {
		return bperr.New(bperr.ConcurrentModification, "tree modified since cursor was created")
	}
	return nil
}

func (c *Cursor[K, V]) normalizeForward() {
	for c.lf != nil && c.idx >= c.lf.items.Len() {
		c.lf = c.lf.next
		c.idx = 0
	}
	c.ok = c.lf != nil && c.lf.items.Len() > 0
}

func (c *Cursor[K, V]) normalizeBackward() {
	for c.lf != nil && c.idx < 0 {
		c.lf = c.lf.prev
		if c.lf != nil {
			c.idx = c.lf.items.Len() - 1
		}
	}
	c.ok = c.lf != nil && c.idx >= 0
}

// Valid reports whether the cursor is positioned over an entry.
func (c *Cursor[K, V]) Valid() bool { return c.ok }

// Key returns the current entry's key. Valid must be true.
func (c *Cursor[K, V]) Key() K {
	e, _ := c.lf.items.Get(c.idx)
	return e.key
}

// Value returns the current entry's value. Valid must be true.
func (c *Cursor[K, V]) Value() V {
	e, _ := c.lf.items.Get(c.idx)
	return e.value
}

// Next advances the cursor to the next larger key.
func (c *Cursor[K, V]) Next() error {
	if err := c.checkVersion(); err != nil {
		c.ok = false
		return err
	}
	if !c.ok {
		return nil
	}
	c.idx++
	c.normalizeForward()
	if c.ok && c.hasHi && c.tree.cmp(c.Key(), c.hi) > 0 {
		c.ok = false
	}
	if c.ok && c.hasLo && c.tree.cmp(c.Key(), c.lo) < 0 {
		c.ok = false
	}
	return nil
}

// Prev moves the cursor to the next smaller key.
func (c *Cursor[K, V]) Prev() error {
	if err := c.checkVersion(); err != nil {
		c.ok = false
		return err
	}
	if !c.ok {
		return nil
	}
	c.idx--
	c.normalizeBackward()
	if c.ok && c.hasLo && c.tree.cmp(c.Key(), c.lo) < 0 {
		c.ok = false
	}
	if c.ok && c.hasHi && c.tree.cmp(c.Key(), c.hi) > 0 {
		c.ok = false
	}
	return nil
}
