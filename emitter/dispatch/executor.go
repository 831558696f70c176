package dispatch

import (
	"context"
	"runtime/debug"
)

// Result represents the outcome of a handler execution.
type Result struct {
	// Err is the error the handler settled with, if any.
	Err error

	// Panicked is true if the handler panicked.
	Panicked bool

	// PanicValue is the value passed to panic(), if Panicked is true.
	PanicValue any

	// PanicStack is the stack trace at the point of panic.
	PanicStack []byte

	// Unawaited is true if the handler returned a pending outcome and
	// the executor was not awaiting; the eventual error is dropped.
	Unawaited bool
}

// Failed reports whether the execution produced an error or panic.
func (r Result) Failed() bool {
	return r.Panicked || r.Err != nil
}

// PanicHandler is called when a handler panics during execution.
// It receives the invocation being processed, the panic value, and the
// stack trace.
type PanicHandler func(inv Invocation, panicValue any, stack []byte)

// Executor runs event handlers with panic recovery.
type Executor struct {
	panicHandler PanicHandler
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithPanicHandler sets the panic handler for the executor.
func WithPanicHandler(h PanicHandler) ExecutorOption {
	return func(e *Executor) {
		e.panicHandler = h
	}
}

// Execute runs a handler with the given invocation and returns the result.
// If the handler returns a pending outcome and await is true, Execute
// blocks until it settles or ctx is cancelled; with await false the pending
// outcome is recorded as unawaited and Execute returns immediately.
func (e *Executor) Execute(ctx context.Context, inv Invocation, handler Handler, await bool) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()

			result.Panicked = true
			result.PanicValue = r
			result.PanicStack = stack

			// Protect the panic handler call - don't let it crash the process
			if e.panicHandler != nil {
				func() {
					defer func() {
						_ = recover()
					}()
					e.panicHandler(inv, r, stack)
				}()
			}
		}
	}()

	switch out := handler.Handle(ctx, inv).(type) {
	case settled:
		result.Err = out.err
	case pending:
		if !await {
			result.Unawaited = true
			return result
		}
		select {
		case err := <-out.done:
			result.Err = err
		case <-ctx.Done():
			result.Err = ctx.Err()
		}
	case nil:
		// Treated as settled success.
	}

	return result
}
