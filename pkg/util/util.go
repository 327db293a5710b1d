package util

import (
	"errors"
	"fmt"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s", e.msg)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

func (e *Error) Is(target error) bool {
	return errors.Is(e.code, target)
}

var (
	// ErrBadParamInput marks precondition violations: wrong mesh dimensionality,
	// out-of-range seed cells, mismatched metric field size.
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrInvariantViolation marks internal-consistency failures. A solve that
	// returns it produced no usable field; there is nothing to retry.
	ErrInvariantViolation = errors.New("internal invariant violation")
)
