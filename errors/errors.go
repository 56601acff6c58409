package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode    Phase = "decode"    // signature blob to structure
	PhaseEncode    Phase = "encode"    // structure to signature blob
	PhaseBootstrap Phase = "bootstrap" // primitive type initialization
	PhaseRegistry  Phase = "registry"  // type registration and lookup
)

// Kind categorizes the error
type Kind string

const (
	KindMalformed      Kind = "malformed"       // unexpected tag or sub-tag byte
	KindOutOfBounds    Kind = "out_of_bounds"   // insufficient remaining bytes
	KindRecursionLimit Kind = "recursion_limit" // nesting exceeded the fixed cap
	KindNotFound       Kind = "not_found"       // token or primitive lookup miss
	KindInternal       Kind = "internal"        // invariant violation
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Malformed creates a malformed-encoding error carrying the offending byte
func Malformed(phase Phase, what string, offending byte) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMalformed,
		Detail: fmt.Sprintf("%s - unexpected byte 0x%02X", what, offending),
		Value:  offending,
	}
}

// OutOfBounds creates a bounds error for reads past the end of data
func OutOfBounds(phase Phase, want, remaining int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("need %d byte(s), %d remaining", want, remaining),
		Value:  want,
	}
}

// RecursionLimit creates a recursion-limit error carrying the configured cap
func RecursionLimit(phase Phase, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRecursionLimit,
		Detail: fmt.Sprintf("nesting exceeded the maximum depth of %d", limit),
		Value:  limit,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, key string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %s not found", what, key),
	}
}

// Internal creates an internal-consistency error
func Internal(phase Phase, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInternal,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
