// Package core implements the facet entity constructor and its capability
// composition.
//
// A Constructor starts bare. NewConstructor applies the standard capability
// modules to its behaviour table (the Prototype) exactly once, in the total
// order:
//
//	init -> state -> events -> lifecycle -> render
//
// init establishes the per-instance containers (options, event handler lists,
// lifecycle flags) that the other four read and extend, so every capability
// after it declares Requires: ["init"]. ComposeWith rejects a capability whose
// requirements have not been applied yet; methods of state/events/lifecycle/
// render can never be observed before init ran.
//
// Construction:
//
//	ctor := core.NewConstructor("app")
//	vm := ctor.New(core.Options{Name: "counter", Data: ir.Object{"count": ir.Int(0)}})
//
// New delegates unconditionally to the _init method contributed by init.
// Initialising a Component value that did not come from New only warns and
// leaves the value degraded; it never panics.
//
// Plugins extend the constructor, not instances:
//
//	ctor.MustUse(router).MustUse(store, "option")
//
// THREAD-SAFETY:
// The behaviour table, plugin registry, global mixin options and scheduler
// are guarded by mutexes. A Component is confined to the goroutine that
// drives it (typically the one calling Flush); its methods are not
// synchronized.
package core
