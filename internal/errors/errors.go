// Package errors re-exports the error helpers the codebase relies on, so
// call sites import one package whether they need stdlib matching or a
// pkg/errors stack trace.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// New returns a plain error with the given text.
func New(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain matching target's type.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Wrap annotates err with a message and captures the call stack.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf is Wrap with a format specifier.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack captures the call stack without changing the message.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// Errorf builds a new error from a format specifier, stack included.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}
