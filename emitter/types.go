package emitter

import (
	"context"

	"github.com/dshills/pulse/emitter/dispatch"
)

// Wildcard is the event name that matches every triggered event.
// Listeners registered under it participate in the wildcard fan-out and
// receive the triggering event's name prepended to their arguments.
const Wildcard = "*"

// ErrorEvent is the dedicated event name listener errors are routed to.
// When a listener fails during dispatch, registered error listeners are
// invoked with (error, original event name, failing Handler).
const ErrorEvent = "error"

// Invocation is what a handler receives for a single dispatched event.
type Invocation = dispatch.Invocation

// Outcome is a handler's result: settled (Done) or pending (Await).
type Outcome = dispatch.Outcome

// Done returns a settled outcome carrying err (nil for success).
func Done(err error) Outcome {
	return dispatch.Done(err)
}

// Await returns a pending outcome that settles when done yields an error.
// The emitter awaits pending outcomes only when asynchronous mode is
// enabled; otherwise the eventual error is dropped.
func Await(done <-chan error) Outcome {
	return dispatch.Await(done)
}

// Handler is the interface for event handlers.
type Handler interface {
	// Handle processes a dispatched event and returns a settled or
	// pending outcome.
	Handle(ctx context.Context, inv Invocation) Outcome
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, inv Invocation) Outcome

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, inv Invocation) Outcome {
	return f(ctx, inv)
}

// Func adapts a plain error-returning function to a Handler whose outcome
// is always settled. Most synchronous listeners are written this way.
// Each call returns a distinct handler identity, so Func-built handlers
// can always be removed individually; raw HandlerFunc closures built from
// the same function literal share one code pointer and cannot.
func Func(fn func(ctx context.Context, inv Invocation) error) Handler {
	return &funcHandler{fn: fn}
}

type funcHandler struct {
	fn func(ctx context.Context, inv Invocation) error
}

func (h *funcHandler) Handle(ctx context.Context, inv Invocation) Outcome {
	return Done(h.fn(ctx, inv))
}

// Logf is a printf-style logging hook. The emitter routes advisory
// capacity warnings and, in debug mode, diagnostic output through it.
type Logf func(format string, args ...any)
