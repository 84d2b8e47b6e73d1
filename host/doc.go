// Package host embeds counter modules in a wazero runtime.
//
// A counter module is any core wasm module exporting the functions declared
// in CounterWIT:
//
//	increment   ()        -> ()
//	get_counter ()        -> (i32)
//
// Usage:
//
//	rt, err := host.New(ctx, nil)
//	if err != nil {
//	    return err
//	}
//	defer rt.Close(ctx)
//
//	mod, err := rt.Load(ctx, wasmBytes)
//	if err != nil {
//	    return err
//	}
//
//	inst, err := mod.Instantiate(ctx)
//	if err != nil {
//	    return err
//	}
//	defer inst.Close(ctx)
//
//	inst.Increment(ctx)
//	v, _ := inst.GetCounter(ctx) // 1
//
// Load rejects modules that lack an export or export it with a different
// core signature, so calls on an Instance only fail when the embedding does:
// a closed instance or a trap.
//
// # Cancellation
//
// By default calls ignore the context's cancellation. With
// Config.CloseOnContextDone a call on a done context fails with
// KindCallFailed and closes the instance; later calls report
// KindNotInitialized.
//
// # Module shapes
//
// Modules built by Go or TinyGo as WASI reactors export _initialize, which
// runs on instantiation. wasi_snapshot_preview1 is instantiated once per
// Runtime, and only when a loaded module imports it. _start is never run.
//
// # Thread Safety
//
// Runtime and Module are safe for concurrent use. Instance serializes its
// calls, so it may be shared, but each Instance holds its own counter.
package host
