package emitter

import "sync"

// defaultEmitter is the process-wide shared instance, created on first
// access with default options and never implicitly reset.
var defaultEmitter = sync.OnceValue(func() *Emitter {
	return New()
})

// Default returns the process-wide shared Emitter. The same instance is
// returned for the lifetime of the process; callers that want isolation
// should construct their own with New.
func Default() *Emitter {
	return defaultEmitter()
}
