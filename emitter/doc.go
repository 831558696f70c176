// Package emitter provides an in-process publish/subscribe event
// dispatcher with priority ordering, wildcard listeners, one-shot
// semantics, and per-listener error isolation.
//
// # Registration and dispatch
//
// Listeners are registered under an event name (or the Wildcard token,
// which matches every event) and invoked when the event is triggered:
//
//	em := emitter.New()
//	em.On("task.done", emitter.Func(func(ctx context.Context, inv emitter.Invocation) error {
//	    fmt.Println("done:", inv.Args)
//	    return nil
//	}))
//	em.EmitSync(ctx, "task.done", 42)
//
// Within a fan-out, listeners run strictly in descending priority order;
// equal priorities keep registration order. Wildcard listeners receive the
// event name prepended as their first argument; specific listeners do not.
//
// # One-shot listeners
//
// Once registers a listener that is pruned after its first invocation
// completes, whether the handler succeeded, failed, or panicked.
//
// # Asynchronous mode
//
// With asynchronous mode enabled (the default), the wildcard and specific
// fan-outs of one Emit run concurrently, and a handler may return a
// pending outcome via Await that is fully settled before the next listener
// in its fan-out starts. With it disabled, dispatch is fully sequential:
// the wildcard fan-out settles, then the specific fan-out, and pending
// outcomes are not awaited.
//
// # Error isolation
//
// A failing or panicking listener never stops its fan-out and never fails
// the Emit call. Caught errors are routed to listeners of ErrorEvent,
// carrying (error, original event name, failing Handler); without an error
// listener they surface only through debug logging.
//
// # Snapshot discipline
//
// Every fan-out iterates over a copy of the listener sequence taken when
// the dispatch started, so listeners added or removed during dispatch do
// not affect the in-flight pass. This is the emitter's one mandatory
// synchronization rule; all public methods are safe for concurrent use.
//
// # Limits
//
// The listener limit is advisory: registrations at or above it log a
// warning and still succeed. There is no cancellation mechanism beyond the
// context handlers receive; a pending outcome that never settles stalls
// its fan-out and therefore the Emit awaiting it.
package emitter
