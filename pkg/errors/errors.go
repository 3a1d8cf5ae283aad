// Copyright © 2018 One Concern

// Package errors augments the standard errors with error kinds
// that survive wrapping.
//
// A kind is declared once with New and decorated at the call site with Wrap
// or Wrapf. Every decorated value still matches its kind with Is.
package errors

import (
	stderr "errors"
	"fmt"
)

var _ error = New("")

// New declares a new error kind
func New(msg string) *Error {
	e := &Error{msg: msg}
	e.kind = e
	return e
}

// Error augments the standard error interface with a Wrap method.
//
// The main difference with github.com/pkg/errors is that we are wrapping
// errors from errors, not from text, and that the wrapped value keeps
// the identity of its kind.
type Error struct {
	msg  string
	err  error
	kind *Error
}

// Error message
func (e *Error) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

// Unwrap nested error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap a nested error. The receiver is left untouched.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:  e.msg,
		err:  err,
		kind: e.kind,
	}
}

// Wrapf wraps a formatted message
func (e *Error) Wrapf(format string, args ...interface{}) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Is of some error kind?
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == t.kind
}

// As finds the first error in err's chain that matches target, and if so, sets target to that error value and returns true.
// (a shortcut to standard lib errors.As)
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is reports whether any error in err's chain matches target
// (a shortcut to standard lib errors.Is)
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
