// Package assert raises on violated invariants.
//
// A failed assertion is a broken programming contract, never a retryable
// condition, so OK panics instead of returning an error. Callers that embed a
// hooked component and want to survive a misbehaving render function recover
// the panic and test it with [Is].
package assert

import (
	"errors"
	"fmt"
)

// ErrAssertion is the sentinel every assertion failure unwraps to.
var ErrAssertion = errors.New("assertion failed")

// Error is the panic value raised by [OK].
type Error struct {
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return ErrAssertion.Error()
	}
	return fmt.Sprintf("%s: %s", ErrAssertion, e.Message)
}

func (e *Error) Unwrap() error {
	return ErrAssertion
}

// OK panics with an *Error when cond is false. The message is format
// applied to args, as with fmt.Sprintf.
func OK(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic(&Error{Message: fmt.Sprintf(format, args...)})
}

// Is reports whether v, typically a recovered panic value, is an assertion
// failure.
func Is(v any) bool {
	err, ok := v.(error)
	if !ok {
		return false
	}
	return errors.Is(err, ErrAssertion)
}
