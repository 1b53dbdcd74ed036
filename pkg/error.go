package pkg

import (
	"errors"
	"log/slog"
	"strings"
)

// Error kinds. Every error produced by this module is derived from one of
// these, so callers can classify failures with [errors.Is].
var (
	// ErrReference reports a missing directory or file, or a circular
	// reference between configuration values.
	ErrReference = NewError("reference error")
	// ErrSyntax reports a malformed version string.
	ErrSyntax = NewError("syntax error")
	// ErrType reports a value of the wrong type, such as a missing transform
	// callback.
	ErrType = NewError("type error")
	// ErrIO reports a failed or refused filesystem operation.
	ErrIO = NewError("io error")
)

// Error represents an error with a kind and optional structured logging
// attributes. It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	kind  *Error      // Parent error kind (for errors.Is)
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new root Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Kind derives a new sentinel Error of kind e.
func (e *Error) Kind(msg string) *Error {
	return &Error{msg: msg, kind: e}
}

// Error implements the error interface.
//
// The message is "<msg>: <err>" when both are set, otherwise whichever one
// is non-empty.
func (e *Error) Error() string {
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

// Is reports whether target is e's sentinel or one of its kinds.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}

	for k := e; k != nil; k = k.kind {
		if k == t || (k.msg == t.msg && k.kind == t.kind && t.err == nil) {
			return true
		}
	}

	return false
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.kind != nil {
		attrs = append(attrs, slog.String("kind", e.kind.msg))
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
		kind:  e.kind,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{
		msg:   e.msg,
		kind:  e.kind,
		err:   e.err,
		attrs: append(e.attrs[:len(e.attrs):len(e.attrs)], attrs...),
	}
}
