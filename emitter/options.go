package emitter

// Options contains configuration for an Emitter. Values are fixed at
// construction except MaxListeners, which SetMaxListeners may change.
type Options struct {
	// MaxListeners is the advisory listener limit across all events.
	// Registrations at or above it log a warning but always succeed.
	// Zero means no limit.
	MaxListeners int

	// Wildcard enables the wildcard event token. When disabled, wildcard
	// registrations are silently ignored.
	Wildcard bool

	// Async enables concurrent fan-outs and awaiting of pending handler
	// outcomes during Emit.
	Async bool

	// Debug enables diagnostic logging through Logf.
	Debug bool

	// Namespace labels this emitter in diagnostics. Namespace children
	// extend it dot-joined.
	Namespace string

	// Logf receives advisory warnings and debug output.
	// Defaults to log.Printf.
	Logf Logf
}

func defaultOptions() Options {
	return Options{
		MaxListeners: 10,
		Wildcard:     true,
		Async:        true,
	}
}

// Option configures an Emitter at construction.
type Option func(*Options)

// WithMaxListeners sets the advisory listener limit (0 for no limit).
func WithMaxListeners(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MaxListeners = n
		}
	}
}

// WithWildcard enables or disables wildcard listener support.
func WithWildcard(enabled bool) Option {
	return func(o *Options) {
		o.Wildcard = enabled
	}
}

// WithAsync enables or disables asynchronous dispatch mode.
func WithAsync(enabled bool) Option {
	return func(o *Options) {
		o.Async = enabled
	}
}

// WithDebug enables diagnostic logging.
func WithDebug(enabled bool) Option {
	return func(o *Options) {
		o.Debug = enabled
	}
}

// WithNamespace sets the emitter's namespace label.
func WithNamespace(ns string) Option {
	return func(o *Options) {
		o.Namespace = ns
	}
}

// WithLogf sets the logging hook.
func WithLogf(logf Logf) Option {
	return func(o *Options) {
		if logf != nil {
			o.Logf = logf
		}
	}
}
