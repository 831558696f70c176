package script

import (
	"context"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/pulse/emitter"
)

// ModuleName is the name scripts require the binding under.
const ModuleName = "pulse"

// Engine binds an emitter into a Lua state. Scripts load the module with
// require and get access to the emitter's registration, trigger, and
// introspection operations:
//
//	local pulse = require("pulse")
//	pulse.on("task.done", function(n) print("done", n) end)
//	pulse.once("tick", handler, 10)       -- optional priority
//	pulse.off("task.done", handler)       -- handler optional
//	pulse.emit("task.done", 42)
//	pulse.count("task.done")
//	pulse.names()
//
// The Lua state is not safe for concurrent use, so every entry into it is
// serialized through the engine's mutex; Lua handlers therefore run one at
// a time even when the emitter dispatches asynchronously. Emits issued
// from inside a script are deferred until the running chunk or handler
// returns, which keeps a script that emits its own events from deadlocking
// against its own handlers.
type Engine struct {
	mu       sync.Mutex
	state    *lua.LState
	em       *emitter.Emitter
	handlers map[*lua.LFunction]*luaHandler
	pending  []emitCall
	closed   bool
}

type emitCall struct {
	event string
	args  []any
}

// NewEngine creates an engine bound to em with a fresh Lua state.
func NewEngine(em *emitter.Emitter) *Engine {
	e := &Engine{
		state:    lua.NewState(),
		em:       em,
		handlers: make(map[*lua.LFunction]*luaHandler),
	}
	e.state.PreloadModule(ModuleName, e.loader)
	return e
}

// Emitter returns the bound emitter.
func (e *Engine) Emitter() *emitter.Emitter {
	return e.em
}

// DoString runs a Lua chunk, then dispatches any emits the chunk queued.
func (e *Engine) DoString(src string) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return fmt.Errorf("script: engine is closed")
	}
	err := e.state.DoString(src)
	pend := e.takePending()
	e.mu.Unlock()

	e.flush(context.Background(), pend)
	if err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// DoFile runs a Lua file, then dispatches any emits the file queued.
func (e *Engine) DoFile(path string) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return fmt.Errorf("script: engine is closed")
	}
	err := e.state.DoFile(path)
	pend := e.takePending()
	e.mu.Unlock()

	e.flush(context.Background(), pend)
	if err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// Close releases the Lua state. Listeners registered by scripts stay in
// the emitter but fail with an error once the engine is closed.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.state.Close()
}

// takePending must be called with the mutex held.
func (e *Engine) takePending() []emitCall {
	pend := e.pending
	e.pending = nil
	return pend
}

// flush dispatches deferred emits outside the engine lock.
func (e *Engine) flush(ctx context.Context, pend []emitCall) {
	for _, call := range pend {
		e.em.EmitSync(ctx, call.event, call.args...)
	}
}

func (e *Engine) loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"on":    e.luaOn,
		"once":  e.luaOnce,
		"off":   e.luaOff,
		"emit":  e.luaEmit,
		"count": e.luaCount,
		"names": e.luaNames,
	})
	L.Push(mod)
	return 1
}

func (e *Engine) luaOn(L *lua.LState) int {
	return e.registerLua(L, false)
}

func (e *Engine) luaOnce(L *lua.LState) int {
	return e.registerLua(L, true)
}

// registerLua handles pulse.on(name, fn, priority?) and the once variant.
// It runs inside a script, so the engine mutex is already held by the
// caller that entered the Lua state.
func (e *Engine) registerLua(L *lua.LState, once bool) int {
	event := L.CheckString(1)
	fn := L.CheckFunction(2)
	priority := L.OptInt(3, 0)

	h := e.handlers[fn]
	if h == nil {
		h = &luaHandler{eng: e, fn: fn}
		e.handlers[fn] = h
	}

	if once {
		e.em.Once(event, h, emitter.WithPriority(priority))
	} else {
		e.em.On(event, h, emitter.WithPriority(priority))
	}
	return 0
}

// luaOff handles pulse.off(name, fn?): with a function it removes only
// that function's listeners, otherwise the whole event.
func (e *Engine) luaOff(L *lua.LState) int {
	event := L.CheckString(1)

	if L.GetTop() >= 2 {
		fn := L.CheckFunction(2)
		if h := e.handlers[fn]; h != nil {
			e.em.RemoveHandler(event, h)
		}
		return 0
	}

	e.em.Off(event)
	return 0
}

// luaEmit handles pulse.emit(name, ...). The dispatch is queued and runs
// after the current chunk or handler returns; it always reports true to
// the script, matching the emitter's resolve-true contract.
func (e *Engine) luaEmit(L *lua.LState) int {
	event := L.CheckString(1)

	var args []any
	for i := 2; i <= L.GetTop(); i++ {
		args = append(args, toGo(L.Get(i)))
	}

	e.pending = append(e.pending, emitCall{event: event, args: args})
	L.Push(lua.LTrue)
	return 1
}

func (e *Engine) luaCount(L *lua.LState) int {
	event := L.CheckString(1)
	L.Push(lua.LNumber(e.em.ListenerCount(event)))
	return 1
}

func (e *Engine) luaNames(L *lua.LState) int {
	t := L.NewTable()
	for i, name := range e.em.EventNames() {
		t.RawSetInt(i+1, lua.LString(name))
	}
	L.Push(t)
	return 1
}

// luaHandler adapts a Lua function to an emitter.Handler. One instance is
// reused per Lua function so pulse.off can remove it by identity.
type luaHandler struct {
	eng *Engine
	fn  *lua.LFunction
}

// Handle calls the Lua function under the engine lock, then flushes any
// emits the function queued. The outcome is always settled: Lua handlers
// have no pending form.
func (h *luaHandler) Handle(ctx context.Context, inv emitter.Invocation) emitter.Outcome {
	h.eng.mu.Lock()
	if h.eng.closed {
		h.eng.mu.Unlock()
		return emitter.Done(fmt.Errorf("script: engine is closed"))
	}

	L := h.eng.state
	lvals := make([]lua.LValue, 0, len(inv.Args))
	for _, a := range inv.Args {
		lvals = append(lvals, toLua(L, a))
	}

	err := L.CallByParam(lua.P{
		Fn:      h.fn,
		NRet:    0,
		Protect: true,
	}, lvals...)

	pend := h.eng.takePending()
	h.eng.mu.Unlock()

	h.eng.flush(ctx, pend)

	if err != nil {
		return emitter.Done(fmt.Errorf("script: %w", err))
	}
	return emitter.Done(nil)
}
