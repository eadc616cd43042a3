package matching

import "github.com/grailbio/base/errors"

// Kind classifies why SortMatching failed. It implements the taxonomy of
// spec §7; this package only ever produces KindAllocation,
// KindInvalidInput, KindTooManyDimensions, and KindThreads (KindNone,
// KindUnhandled and KindGeneric exist for completeness of the taxonomy,
// matching the original's err_none/err_unhandled/err_generic, but this
// driver never returns them — File and OpenCL kinds belong to
// collaborators outside the core and have no constant here).
type Kind int

const (
	KindNone Kind = iota
	KindUnhandled
	KindGeneric
	KindAllocation
	KindInvalidInput
	KindTooManyDimensions
	KindThreads
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUnhandled:
		return "unhandled"
	case KindGeneric:
		return "generic"
	case KindAllocation:
		return "allocation"
	case KindInvalidInput:
		return "invalid input"
	case KindTooManyDimensions:
		return "too many dimensions"
	case KindThreads:
		return "threads"
	default:
		return "unknown"
	}
}

// Error is the value every fallible matching operation returns instead
// of consulting a process-wide error record (spec §9's Design Note on
// replacing the original's global ERR_VAR). Err carries whatever
// *errors.Error github.com/grailbio/base/errors built for the underlying
// cause, preserving its file/line/message context.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func invalidInput(msg string, args ...interface{}) *Error {
	allArgs := append([]interface{}{errors.Invalid, msg}, args...)
	return &Error{Kind: KindInvalidInput, Err: errors.E(allArgs...)}
}

func tooManyDimensions(got, max int) *Error {
	return &Error{Kind: KindTooManyDimensions, Err: errors.E(errors.Invalid, "dimensions exceeds MaxDimensions", got, max)}
}

func allocation(cause error) *Error {
	return &Error{Kind: KindAllocation, Err: errors.E(errors.Internal, "allocation failed", cause)}
}

func threads(cause error) *Error {
	return &Error{Kind: KindThreads, Err: errors.E(errors.Internal, "dimension worker failed", cause)}
}
