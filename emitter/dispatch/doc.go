// Package dispatch executes event handlers with panic isolation.
//
// The package separates handler execution mechanics from the emitter's
// registry logic. An Executor runs a single handler invocation, recovers
// panics, and resolves the handler's Outcome:
//
//   - A settled outcome (Done) carries an immediate error or nil.
//   - A pending outcome (Await) settles later on a channel; the executor
//     waits for it when awaiting is enabled, otherwise records it as
//     unawaited and moves on.
//
// Execution results are reported as a Result value rather than an error so
// the caller can distinguish handler errors, panics, and unawaited pending
// outcomes without losing detail.
package dispatch
