// Package bperr defines the error kinds shared across the ring, tree,
// builder and outer layers. All caller-facing failures are values of
// *Error wrapping one of the Kind constants below; assertion failures on
// internal invariants are a different thing entirely (see package
// internal/assert) and never surface here.
package bperr

import "fmt"

// Kind identifies the condition that produced an *Error.
type Kind int

const (
	// DuplicateKey is returned by Add when the key is already present.
	DuplicateKey Kind = iota
	// KeyNotFound is returned by lookups that require the key to exist.
	KeyNotFound
	// EmptyCollection is returned by First/Last/NextNearest on an empty
	// tree, and by Pop on an empty ring.
	EmptyCollection
	// IndexOutOfRange is returned by ring access with an illegal index.
	IndexOutOfRange
	// InvalidArgument is returned for capacities below the minimum, or
	// negative sizes.
	InvalidArgument
	// ConcurrentModification is returned by an iterator whose underlying
	// collection changed since the iterator was created.
	ConcurrentModification
	// ReadOnlyViolation is returned by any mutation of a ReadOnly ring.
	ReadOnlyViolation
	// FixedSizeViolation is returned by a structural (insert/remove) ring
	// op on a FixedSize ring.
	FixedSizeViolation
	// FixedCapacityViolation is returned when a FixedCapacity ring would
	// need to grow to satisfy the request.
	FixedCapacityViolation
)

func (k Kind) String() string {
	switch k {
	case DuplicateKey:
		return "DuplicateKey"
	case KeyNotFound:
		return "KeyNotFound"
	case EmptyCollection:
		return "EmptyCollection"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case InvalidArgument:
		return "InvalidArgument"
	case ConcurrentModification:
		return "ConcurrentModification"
	case ReadOnlyViolation:
		return "ReadOnlyViolation"
	case FixedSizeViolation:
		return "FixedSizeViolation"
	case FixedCapacityViolation:
		return "FixedCapacityViolation"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by this module's public API.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is reports whether target is an *Error of the same Kind, so callers can
// write errors.Is(err, bperr.ErrDuplicateKey) regardless of message text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Sentinel values usable with errors.Is(err, bperr.ErrXxx).
var (
	ErrDuplicateKey            = &Error{Kind: DuplicateKey}
	ErrKeyNotFound             = &Error{Kind: KeyNotFound}
	ErrEmptyCollection         = &Error{Kind: EmptyCollection}
	ErrIndexOutOfRange         = &Error{Kind: IndexOutOfRange}
	ErrInvalidArgument         = &Error{Kind: InvalidArgument}
	ErrConcurrentModification = &Error{Kind: ConcurrentModification}
	ErrReadOnlyViolation       = &Error{Kind: ReadOnlyViolation}
	ErrFixedSizeViolation      = &Error{Kind: FixedSizeViolation}
	ErrFixedCapacityViolation  = &Error{Kind: FixedCapacityViolation}
)
