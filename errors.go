package frost

import "fmt"

// Kind is the flat error taxonomy every frost operation returns directly,
// mirroring the original frost_errcode_t enum.
type Kind int

const (
	// Ok indicates success.
	Ok Kind = iota
	// FatalError indicates an unrecoverable invariant violation, e.g.
	// reading a packet whose ref count has already reached zero.
	FatalError
	// TaskTimeout indicates an Await deadline elapsed.
	TaskTimeout
	// InvalidParameter indicates a nil or out-of-range argument.
	InvalidParameter
	// TaskCanceled indicates an Awaiter observed its task being deleted.
	TaskCanceled
	// OutOfMemory indicates an allocation failed.
	OutOfMemory
	// NeedInitialize indicates an engine operation was called before the
	// engine was ready, or after it was closed.
	NeedInitialize
	// Eof indicates a read against an empty source (inbox, enumeration).
	Eof
	// InvalidChan indicates a channel operation against a task lacking the
	// required channel or bind state.
	InvalidChan
	// Full indicates a ring buffer could not accept a write.
	Full
)

func (k Kind) String() string {
	switch k {
	case Ok:
		return "Ok"
	case FatalError:
		return "FatalError"
	case TaskTimeout:
		return "TaskTimeout"
	case InvalidParameter:
		return "InvalidParameter"
	case TaskCanceled:
		return "TaskCanceled"
	case OutOfMemory:
		return "OutOfMemory"
	case NeedInitialize:
		return "NeedInitialize"
	case Eof:
		return "Eof"
	case InvalidChan:
		return "InvalidChan"
	case Full:
		return "Full"
	default:
		return "Unknown"
	}
}

// Error decorates a Kind with the failing operation and, optionally, a
// lower-level cause. Most call sites can compare the bare Kind; Error exists
// for callers that want context attached, or that want to errors.Is against
// a sentinel such as ErrFull.
type Error struct {
	Op    string
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("frost: %s: %s: %v", e.Op, e.Kind, e.Cause)
	}
	return fmt.Sprintf("frost: %s: %s", e.Op, e.Kind)
}

// Unwrap exposes Cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is a *Error with the same Kind, so that
// errors.Is(err, frost.ErrFull) works regardless of Op or Cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(op string, kind Kind) *Error {
	return &Error{Op: op, Kind: kind}
}

func wrapError(op string, kind Kind, cause error) *Error {
	return &Error{Op: op, Kind: kind, Cause: cause}
}

// Err converts a non-Ok Kind into an *Error carrying op, for embedders that
// prefer the error interface (errors.Is/errors.As) over comparing Kind
// directly. Returns nil for Ok.
func (k Kind) Err(op string) error {
	if k == Ok {
		return nil
	}
	return newError(op, k)
}

// WrapErr is Err with an additional wrapped cause, for call sites that want
// to surface a lower-level error (e.g. a Port implementation's own failure)
// alongside the Kind.
func (k Kind) WrapErr(op string, cause error) error {
	if k == Ok {
		return nil
	}
	return wrapError(op, k, cause)
}

// Sentinel errors for errors.Is comparisons against the common failure
// kinds. Cause and Op are deliberately left zero; Error.Is only compares
// Kind.
var (
	ErrFatalError       = &Error{Kind: FatalError}
	ErrTaskTimeout      = &Error{Kind: TaskTimeout}
	ErrInvalidParameter = &Error{Kind: InvalidParameter}
	ErrTaskCanceled     = &Error{Kind: TaskCanceled}
	ErrOutOfMemory      = &Error{Kind: OutOfMemory}
	ErrNeedInitialize   = &Error{Kind: NeedInitialize}
	ErrEof              = &Error{Kind: Eof}
	ErrInvalidChan      = &Error{Kind: InvalidChan}
	ErrFull             = &Error{Kind: Full}
)
