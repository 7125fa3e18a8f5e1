package bptree

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable tree structure to w, one node per line,
// indented by depth, with each separator key on its own line ahead of the
// child it routes to. It is meant for debugging and tests, not for parsing.
func (t *Tree[K, V]) Dump(w io.Writer) {
	if t.root == nil {
		fmt.Fprintln(w, "(empty)")
		return
	}
	dumpNode[K, V](w, t.root, 0)
}

func dumpNode[K, V any](w io.Writer, n node[K, V], depth int) {
	indent := strings.Repeat("  ", depth)
	switch nd := n.(type) {
	case *leaf[K, V]:
		keys := make([]string, 0, nd.items.Len())
		nd.items.ForEach(func(_ int, e entry[K, V]) bool {
			keys = append(keys, fmt.Sprintf("%v", e.key))
			return true
		})
		fmt.Fprintf(w, "%sleaf[%s]\n", indent, strings.Join(keys, " "))
	case *internal[K, V]:
		fmt.Fprintf(w, "%sinternal\n", indent)
		dumpNode[K, V](w, nd.left, depth+1)
		nd.items.ForEach(func(_ int, s separator[K, V]) bool {
			fmt.Fprintf(w, "%s  -- %v -->\n", indent, s.key)
			dumpNode[K, V](w, s.child, depth+1)
			return true
		})
	}
}
