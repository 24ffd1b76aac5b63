package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode  Phase = "decode"  // bytes to model
	PhaseResolve Phase = "resolve" // constant pool lookups
	PhaseRender  Phase = "render"  // model to dump
	PhaseConfig  Phase = "config"  // configuration loading
	PhaseLoad    Phase = "load"    // input acquisition
)

// Kind categorizes the error
type Kind string

const (
	KindBufferUnderrun          Kind = "buffer_underrun"
	KindUnknownConstantTag      Kind = "unknown_constant_tag"
	KindUnknownOpcode           Kind = "unknown_opcode"
	KindInvalidFrameType        Kind = "invalid_frame_type"
	KindInvalidVerificationType Kind = "invalid_verification_type"
	KindInvalidElementTag       Kind = "invalid_element_tag"
	KindInvalidTargetType       Kind = "invalid_target_type"
	KindAttributeLengthMismatch Kind = "attribute_length_mismatch"
	KindBadIndex                Kind = "bad_index"
	KindTagMismatch             Kind = "tag_mismatch"
	KindInvalidMagic            Kind = "invalid_magic"
	KindFixedOperand            Kind = "fixed_operand"
	KindInvalidData             Kind = "invalid_data"
	KindInvalidInput            Kind = "invalid_input"
	KindNotFound                Kind = "not_found"
)

// Error is the structured error type used throughout the decoder
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
	Offset int // byte offset in the input, -1 when unknown
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

	if e.Offset >= 0 {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
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

// Is reports whether target matches this error.
// Two errors match when phase and kind are equal, which lets
// package-level sentinels be used with errors.Is.
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
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Path sets the structural path, e.g. "methods[2]", "Code", "code[14]"
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Offset sets the byte offset in the input buffer
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
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

// Sentinel returns a matchable error carrying only phase and kind.
func Sentinel(phase Phase, kind Kind) *Error {
	return &Error{Phase: phase, Kind: kind, Offset: -1}
}

// Convenience constructors for common error patterns

// BufferUnderrun creates an error for a read past the end of the input
func BufferUnderrun(offset, want, remaining int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindBufferUnderrun,
		Offset: offset,
		Value:  want,
		Detail: fmt.Sprintf("need %d bytes, %d remaining", want, remaining),
	}
}

// UnknownDiscriminant creates an error for a tag byte outside a closed catalog
func UnknownDiscriminant(kind Kind, offset int, value any, what string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   kind,
		Offset: offset,
		Value:  value,
		Detail: fmt.Sprintf("unknown %s %v", what, value),
	}
}

// LengthMismatch creates an attribute length mismatch error
func LengthMismatch(name string, offset int, declared, consumed int, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindAttributeLengthMismatch,
		Path:   []string{name},
		Offset: offset,
		Value:  consumed,
		Detail: fmt.Sprintf("declared length %d, consumed %d", declared, consumed),
		Cause:  cause,
	}
}

// BadIndex creates an invalid constant pool index error
func BadIndex(index, count int, detail string) *Error {
	msg := fmt.Sprintf("index %d out of range (count %d)", index, count)
	if detail != "" {
		msg = fmt.Sprintf("index %d: %s", index, detail)
	}
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindBadIndex,
		Offset: -1,
		Value:  index,
		Detail: msg,
	}
}

// TagMismatch creates an error for a pool entry of the wrong kind
func TagMismatch(index int, want, got string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindTagMismatch,
		Offset: -1,
		Value:  index,
		Detail: fmt.Sprintf("index %d is %s, want %s", index, got, want),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Offset: -1,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Offset: -1,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Offset: -1,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Offset: -1,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates an input loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Offset: -1,
		Detail: detail,
		Cause:  cause,
	}
}

// Config creates a configuration error
func Config(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidInput,
		Offset: -1,
		Detail: detail,
		Cause:  cause,
	}
}
