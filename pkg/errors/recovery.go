// Panic recovery for user supplied functions that run on worker goroutines,
// where an unrecovered panic would take the whole process down.

package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError is an error created from a recovered panic.
type PanicError struct {
	// PanicValue is the value passed to panic().
	PanicValue interface{}

	// StackTrace is the goroutine stack at the time of recovery.
	StackTrace string

	// Operation identifies where the panic was recovered.
	Operation string

	// Err is the error the function had already set before panicking, if any.
	Err error
}

func (e *PanicError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("panic in %s: %v (original error: %v)", e.Operation, e.PanicValue, e.Err)
	}
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap returns the error that was set before the panic.
func (e *PanicError) Unwrap() error {
	return e.Err
}

// String includes the stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("%s\nStack trace:\n%s", e.Error(), e.StackTrace)
}

// NewPanicError creates a PanicError capturing the current stack.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover converts a panic into a *PanicError assigned to *err. It must be
// deferred directly:
//
//	func predictChunk() (err error) {
//	    defer Recover(&err, "predictChunk")
//	    ...
//	}
func Recover(err *error, operation string) {
	if r := recover(); r != nil {
		panicErr := NewPanicError(operation, r)
		panicErr.Err = *err
		*err = panicErr
	}
}

// SafeExecute runs fn and returns its error, or a *PanicError if it panicked.
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
