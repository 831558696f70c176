package emitter

import "errors"

// ErrHandlerPanic matches PanicError values via errors.Is.
var ErrHandlerPanic = errors.New("handler panicked")

// PanicError wraps a recovered handler panic as an error. It is what error
// listeners receive when a handler panics rather than returning an error.
type PanicError struct {
	// Event is the event name being dispatched when the panic occurred.
	Event string

	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace at the time of the panic.
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return "handler panic during dispatch of " + e.Event
}

// Is allows errors.Is to match PanicError with ErrHandlerPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrHandlerPanic
}
