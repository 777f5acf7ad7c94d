package notation

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values). Derived errors created with
// [Error.Wrap] and [Error.With] still match their sentinel with [errors.Is].
var (
	ErrMarkerSyntax       = NewError("marker syntax error")
	ErrUnmatchedBracket   = NewError("unmatched closing bracket")
	ErrUnclosedList       = NewError("unclosed list")
	ErrBlockBoundary      = NewError("missing closing marker")
	ErrStrayClosing       = NewError("closing marker without opening marker")
	ErrBlockFault         = NewError("block processing failed")
	ErrChunkProcessing    = NewError("chunk processing failed")
	ErrMemoryMonitoring   = NewError("memory monitoring failed")
	ErrParallelProcessing = NewError("parallel processing failed")
	ErrConfiguration      = NewError("invalid configuration")
	ErrReadInput          = NewError("failed to read input")
	ErrDocumentTimeout    = NewError("document processing timed out")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// "<msg>: <err>", "<msg>", "<err>", or ""
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error with the same message, so values
// derived from a sentinel compare equal to it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// Attrs returns a copy of the structured attributes attached to e.
func (e *Error) Attrs() []slog.Attr {
	return append([]slog.Attr(nil), e.attrs...)
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// describe renders e with its attributes as a single human-readable line,
// used for diagnostics stored in a ParseResult.
func (e *Error) describe() string {
	var sb strings.Builder

	sb.WriteString(e.Error())

	for i, a := range e.attrs {
		if i == 0 {
			sb.WriteString(" (")
		} else {
			sb.WriteString(", ")
		}

		sb.WriteString(a.Key)
		sb.WriteString("=")
		sb.WriteString(a.Value.String())

		if i == len(e.attrs)-1 {
			sb.WriteString(")")
		}
	}

	return sb.String()
}
