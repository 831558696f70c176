// Package script exposes an emitter to Lua scripts.
//
// An Engine owns one Lua state and preloads a "pulse" module giving
// scripts access to the bound emitter: registering listeners (with
// optional priority and once semantics), removing them, triggering events,
// and querying the registry. Values crossing the boundary are bridged in
// both directions, including nested tables.
//
//	em := emitter.New()
//	eng := script.NewEngine(em)
//	defer eng.Close()
//
//	err := eng.DoString(`
//	    local pulse = require("pulse")
//	    pulse.on("build.finished", function(status)
//	        print("build:", status)
//	    end)
//	`)
//
// Go-side emits then reach the Lua listeners like any other handler.
package script
