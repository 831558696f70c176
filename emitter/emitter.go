package emitter

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/dshills/pulse/emitter/dispatch"
)

// Emitter is an in-process publish/subscribe event dispatcher. Callers
// register named-event and wildcard listeners with priority and one-shot
// semantics, then trigger events that invoke matching listeners in
// descending priority order.
//
// All methods are safe for concurrent use. Registration and removal during
// a dispatch never affect the in-flight pass: each fan-out iterates over a
// snapshot taken when the dispatch started.
type Emitter struct {
	opts Options
	reg  *registry
	exec *dispatch.Executor

	// maxListeners is kept separately from opts so SetMaxListeners can
	// change it after construction.
	maxListeners atomic.Int64

	logPrefix string
}

// New creates an Emitter with the given options.
func New(opts ...Option) *Emitter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newEmitter(o)
}

func newEmitter(o Options) *Emitter {
	if o.Logf == nil {
		o.Logf = log.Printf
	}

	prefix := "pulse: "
	if o.Namespace != "" {
		prefix = "pulse[" + o.Namespace + "]: "
	}

	e := &Emitter{
		opts:      o,
		reg:       newRegistry(),
		exec:      dispatch.NewExecutor(),
		logPrefix: prefix,
	}
	e.maxListeners.Store(int64(o.MaxListeners))
	return e
}

// On registers a handler for the given event name. Registering under the
// wildcard token while wildcard support is disabled is a silent no-op, as
// is a nil handler. Exceeding the advisory listener limit logs a warning
// but never blocks registration. Returns the emitter for chaining.
func (e *Emitter) On(event string, h Handler, opts ...ListenOption) *Emitter {
	return e.register(event, h, false, opts...)
}

// Once registers a handler that is removed after its first invocation
// completes, whether it succeeded or failed.
func (e *Emitter) Once(event string, h Handler, opts ...ListenOption) *Emitter {
	return e.register(event, h, true, opts...)
}

func (e *Emitter) register(event string, h Handler, once bool, opts ...ListenOption) *Emitter {
	if h == nil {
		return e
	}
	if event == Wildcard && !e.opts.Wildcard {
		return e
	}

	if max := int(e.maxListeners.Load()); max > 0 {
		if n := e.reg.total(); n >= max {
			e.opts.Logf(e.logPrefix+"%d listeners already registered, advisory limit is %d (registering %q anyway)", n, max, event)
		}
	}

	e.reg.insert(event, newListener(h, once, opts...))
	e.debugf("registered listener for %q (once=%v)", event, once)
	return e
}

// Off deletes every listener for the given event name. The wildcard token
// clears the wildcard sequence when wildcard support is enabled and is
// ignored otherwise.
func (e *Emitter) Off(event string) *Emitter {
	if event == Wildcard && !e.opts.Wildcard {
		return e
	}
	e.reg.deleteEvent(event)
	return e
}

// RemoveHandler removes only the listeners for event whose handler is
// identical to h. Identity follows the handler's code or data pointer, so
// funcs and pointer-backed handlers can be removed; value-typed handlers
// cannot. Remaining listeners keep their relative order.
func (e *Emitter) RemoveHandler(event string, h Handler) *Emitter {
	if event == Wildcard && !e.opts.Wildcard {
		return e
	}
	e.reg.removeHandler(event, handlerID(h))
	return e
}

// Reset removes every listener, named and wildcard.
func (e *Emitter) Reset() *Emitter {
	e.reg.clear()
	return e
}

// Emit triggers an event. Matching wildcard listeners are invoked with the
// event name prepended to args; listeners registered for the exact name
// receive args as given. The returned channel receives true once both
// fan-outs have completed; listener failures are isolated and routed to
// the error event, never reported through the channel.
//
// With asynchronous mode enabled the two fan-outs run concurrently and a
// listener's pending outcome is fully awaited before the next listener in
// that fan-out starts. With it disabled, dispatch completes before Emit
// returns: the wildcard fan-out settles first, then the specific fan-out.
func (e *Emitter) Emit(ctx context.Context, event string, args ...any) <-chan bool {
	done := make(chan bool, 1)

	var wild []*listener
	if e.opts.Wildcard {
		wild = e.reg.snapshot(Wildcard)
	}
	named := e.reg.snapshot(event)

	e.debugf("emit %q (%d wildcard, %d specific)", event, len(wild), len(named))

	if !e.opts.Async {
		e.fanOut(ctx, event, args, wild, Wildcard, true, true)
		e.fanOut(ctx, event, args, named, event, false, true)
		done <- true
		return done
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		e.fanOut(ctx, event, args, wild, Wildcard, true, true)
	}()
	go func() {
		defer wg.Done()
		e.fanOut(ctx, event, args, named, event, false, true)
	}()
	go func() {
		wg.Wait()
		done <- true
	}()
	return done
}

// EmitSync triggers an event and blocks until dispatch completes.
func (e *Emitter) EmitSync(ctx context.Context, event string, args ...any) bool {
	return <-e.Emit(ctx, event, args...)
}

// fanOut invokes every record in the snapshot in order. key names the live
// sequence once-records are pruned from; prepend controls the wildcard
// argument convention; route controls error-event routing (off for the
// error dispatch itself, whose failures are swallowed).
func (e *Emitter) fanOut(ctx context.Context, event string, args []any, snap []*listener, key string, prepend, route bool) {
	for _, l := range snap {
		inv := Invocation{
			Event:    event,
			Args:     args,
			Receiver: l.receiver,
		}
		if prepend {
			inv.Args = append([]any{event}, args...)
		}
		if inv.Receiver == nil {
			inv.Receiver = e
		}

		res := e.exec.Execute(ctx, inv, l.handler, e.opts.Async)

		if l.once {
			e.reg.removeRecord(key, l)
		}

		if res.Failed() {
			err := res.Err
			if res.Panicked {
				err = &PanicError{Event: event, Value: res.PanicValue, Stack: res.PanicStack}
			}
			if route {
				e.routeError(ctx, err, event, l.handler)
			} else {
				e.debugf("error listener failed for %q: %v", event, err)
			}
		}
	}
}

// routeError delivers a caught listener error to the error event, or to
// the debug log when no error listener is registered. Failures from the
// secondary dispatch are swallowed.
func (e *Emitter) routeError(ctx context.Context, err error, event string, h Handler) {
	if event == ErrorEvent {
		e.debugf("error listener failed for %q: %v", event, err)
		return
	}
	if e.reg.count(ErrorEvent) == 0 {
		e.debugf("unhandled listener error for %q: %v", event, err)
		return
	}

	args := []any{err, event, h}

	var wild []*listener
	if e.opts.Wildcard {
		wild = e.reg.snapshot(Wildcard)
	}
	e.fanOut(ctx, ErrorEvent, args, wild, Wildcard, true, false)
	e.fanOut(ctx, ErrorEvent, args, e.reg.snapshot(ErrorEvent), ErrorEvent, false, false)
}

// HasEvent reports whether any listener is registered for the event name.
// The wildcard token consults the wildcard sequence only when wildcard
// support is enabled.
func (e *Emitter) HasEvent(event string) bool {
	return e.ListenerCount(event) > 0
}

// ListenerCount returns the number of listeners for the event name.
func (e *Emitter) ListenerCount(event string) int {
	if event == Wildcard && !e.opts.Wildcard {
		return 0
	}
	return e.reg.count(event)
}

// EventNames returns the names with at least one registered listener. The
// wildcard token is never included; query it with HasEvent.
func (e *Emitter) EventNames() []string {
	return e.reg.names()
}

// Len returns the total listener count across all events and the wildcard
// sequence.
func (e *Emitter) Len() int {
	return e.reg.total()
}

// SetMaxListeners changes the advisory listener limit (0 for no limit).
func (e *Emitter) SetMaxListeners(n int) *Emitter {
	if n >= 0 {
		e.maxListeners.Store(int64(n))
	}
	return e
}

// MaxListeners returns the current advisory listener limit.
func (e *Emitter) MaxListeners() int {
	return int(e.maxListeners.Load())
}

// Namespace returns a new Emitter sharing this one's configuration with an
// independent, empty registry. The child's namespace extends the parent's,
// dot-joined.
func (e *Emitter) Namespace(name string) *Emitter {
	o := e.opts
	o.MaxListeners = e.MaxListeners()
	if o.Namespace != "" && name != "" {
		o.Namespace = o.Namespace + "." + name
	} else if name != "" {
		o.Namespace = name
	}
	return newEmitter(o)
}

func (e *Emitter) debugf(format string, args ...any) {
	if e.opts.Debug {
		e.opts.Logf(e.logPrefix+format, args...)
	}
}
