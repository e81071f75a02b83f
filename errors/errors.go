package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates which step of a clipboard operation failed
type Phase string

const (
	PhaseResolve  Phase = "resolve"  // codepage -> converter spec
	PhaseSession  Phase = "session"  // converter construction
	PhaseConvert  Phase = "convert"  // buffer transcoding
	PhaseAlloc    Phase = "alloc"    // shared memory allocation
	PhasePublish  Phase = "publish"  // clipboard data placement
	PhaseAcquire  Phase = "acquire"  // exclusive clipboard access
	PhaseRegister Phase = "register" // format atom registration
	PhaseQuery    Phase = "query"    // clipboard data retrieval
)

// Kind categorizes the error
type Kind string

const (
	KindResolverFailed    Kind = "resolver_failed"
	KindSessionOpenFailed Kind = "session_open_failed"
	KindConversionFailed  Kind = "conversion_failed"
	KindAllocationFailed  Kind = "allocation_failed"
	KindPublishFailed     Kind = "publish_failed"
	KindAcquireFailed     Kind = "acquire_failed"
	KindInvalidInput      Kind = "invalid_input"
	KindNotFound          Kind = "not_found"
	KindClosed            Kind = "closed"
)

// Error is the structured error type used throughout the module
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	Format   string
	Detail   string
	Code     uint32
	Codepage uint32
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Format != "" {
		b.WriteString(" format ")
		b.WriteString(e.Format)
	}
	if e.Codepage != 0 {
		fmt.Fprintf(&b, " codepage %d", e.Codepage)
	}
	if e.Code != 0 {
		fmt.Fprintf(&b, " code %08X", e.Code)
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

// Code sets the numeric status code reported by the failing facility
func (b *Builder) Code(code uint32) *Builder {
	b.err.Code = code
	return b
}

// Codepage sets the codepage the operation ran under
func (b *Builder) Codepage(cp uint32) *Builder {
	b.err.Codepage = cp
	return b
}

// Format sets the clipboard format name
func (b *Builder) Format(name string) *Builder {
	b.err.Format = name
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

// Sentinels for errors.Is matching. Only Phase and Kind are compared.
var (
	ErrResolverFailed         = &Error{Phase: PhaseResolve, Kind: KindResolverFailed}
	ErrSessionOpenFailed      = &Error{Phase: PhaseSession, Kind: KindSessionOpenFailed}
	ErrConversionFailed       = &Error{Phase: PhaseConvert, Kind: KindConversionFailed}
	ErrAllocationFailed       = &Error{Phase: PhaseAlloc, Kind: KindAllocationFailed}
	ErrClipboardPublishFailed = &Error{Phase: PhasePublish, Kind: KindPublishFailed}
	ErrClipboardAcquireFailed = &Error{Phase: PhaseAcquire, Kind: KindAcquireFailed}
)

// ResolverFailed creates an error for a codepage with no wide-side mapping
func ResolverFailed(cp uint32) *Error {
	return &Error{
		Phase:    PhaseResolve,
		Kind:     KindResolverFailed,
		Codepage: cp,
		Detail:   fmt.Sprintf("no UCS mapping for codepage %d", cp),
	}
}

// SessionOpenFailed creates a converter construction error
func SessionOpenFailed(spec string, code uint32, cause error) *Error {
	return &Error{
		Phase:  PhaseSession,
		Kind:   KindSessionOpenFailed,
		Code:   code,
		Detail: fmt.Sprintf("open converter %q", spec),
		Cause:  cause,
	}
}

// ConversionFailed creates a transcoding error
func ConversionFailed(direction string, code uint32, cause error) *Error {
	return &Error{
		Phase:  PhaseConvert,
		Kind:   KindConversionFailed,
		Code:   code,
		Detail: direction,
		Cause:  cause,
	}
}

// AllocationFailed creates a shared memory allocation error
func AllocationFailed(size uint32, cause error) *Error {
	return &Error{
		Phase:  PhaseAlloc,
		Kind:   KindAllocationFailed,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
		Cause:  cause,
	}
}

// ClipboardPublishFailed creates an error for a refused clipboard placement
func ClipboardPublishFailed(format string, cause error) *Error {
	return &Error{
		Phase:  PhasePublish,
		Kind:   KindPublishFailed,
		Format: format,
		Cause:  cause,
	}
}

// ClipboardAcquireFailed creates an error for denied clipboard access
func ClipboardAcquireFailed(owner string) *Error {
	return &Error{
		Phase:  PhaseAcquire,
		Kind:   KindAcquireFailed,
		Detail: fmt.Sprintf("clipboard held by %s", owner),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Closed creates an error for use of a released resource
func Closed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s already closed", what),
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

// CodeOf returns the status code of the first *Error in err's chain that
// carries one, or 0.
func CodeOf(err error) uint32 {
	for err != nil {
		var e *Error
		if !stderrors.As(err, &e) {
			return 0
		}
		if e.Code != 0 {
			return e.Code
		}
		err = e.Cause
	}
	return 0
}
