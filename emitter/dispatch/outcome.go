package dispatch

import "context"

// Invocation is what a handler receives for a single dispatched event.
type Invocation struct {
	// Event is the name the event was triggered under.
	Event string

	// Args are the trigger arguments. For wildcard listeners the event
	// name is prepended as Args[0].
	Args []any

	// Receiver is the value the listener was bound to at registration,
	// or the owning emitter when none was given.
	Receiver any
}

// Handler is the interface for event handlers.
// This mirrors the emitter package's Handler to avoid a circular import.
type Handler interface {
	Handle(ctx context.Context, inv Invocation) Outcome
}

// Outcome is the result of a handler invocation. It is a closed union of
// two cases: a settled result (Done) or a pending result (Await) that
// resolves later. A nil Outcome is treated as settled success.
type Outcome interface {
	outcome()
}

type settled struct {
	err error
}

func (settled) outcome() {}

type pending struct {
	done <-chan error
}

func (pending) outcome() {}

// Done returns a settled outcome carrying err (nil for success).
func Done(err error) Outcome {
	return settled{err: err}
}

// Await returns a pending outcome that settles when done yields an error
// (nil for success). The channel should be buffered or eventually written;
// a pending outcome that never settles stalls the fan-out awaiting it.
func Await(done <-chan error) Outcome {
	return pending{done: done}
}
