package emitter

import "reflect"

// listener is a registered handler plus its one-shot flag, priority, and
// bound receiver. Records are immutable after creation; removal by handler
// matches on identity, not value.
type listener struct {
	handler  Handler
	once     bool
	priority int
	receiver any
	id       uintptr
}

// ListenOption configures a single registration.
type ListenOption func(*listener)

// WithPriority sets the listener priority. Higher values are invoked
// first; equal priorities keep registration order. The default is 0.
func WithPriority(p int) ListenOption {
	return func(l *listener) {
		l.priority = p
	}
}

// WithReceiver binds a receiver value to the listener. It is passed to the
// handler as Invocation.Receiver; without it the handler receives the
// emitter itself.
func WithReceiver(recv any) ListenOption {
	return func(l *listener) {
		l.receiver = recv
	}
}

func newListener(h Handler, once bool, opts ...ListenOption) *listener {
	l := &listener{
		handler: h,
		once:    once,
		id:      handlerID(h),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// handlerID derives an identity for a handler so it can be removed later.
// Funcs and pointer-backed handlers have a stable code/data pointer; other
// handler kinds report 0 and cannot be individually removed.
func handlerID(h Handler) uintptr {
	if h == nil {
		return 0
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.UnsafePointer, reflect.Chan, reflect.Map:
		return v.Pointer()
	default:
		return 0
	}
}
