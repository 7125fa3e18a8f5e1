// Package assert provides the debug-only invariant checks used throughout
// the tree. Assertion failures indicate a code bug, never a caller error;
// they are never recovered and never surfaced as a returned error.
package assert

import "fmt"

// Assert panics with a formatted message if the given condition is false.
func Assert(condition bool, msg string, v ...any) {
	if !condition {
		panic(fmt.Sprintf("assertion failed: "+msg, v...))
	}
}
