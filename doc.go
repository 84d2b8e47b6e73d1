// Package wasmcounter is a WebAssembly counter module and the Go host that
// embeds it.
//
// The module exposes one piece of state, a signed 32-bit counter, through
// two exports called by name:
//
//	increment   ()        increments the counter by one
//	get_counter () -> i32 returns the current value
//
// # Architecture Overview
//
//	wasmcounter/
//	├── counter/             Counter state object (atomic int32, wraps on overflow)
//	├── host/                wazero embedding: load, validate against WIT, call exports
//	├── errors/              Structured error types
//	├── internal/wasmgen/    Emits the reference counter module as a core wasm binary
//	├── cmd/counter/         CLI and interactive TUI driving a counter module
//	└── cmd/counter-guest/   The counter built with Go for GOOS=wasip1
//
// # Quick Start
//
//	rt, err := host.New(ctx, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close(ctx)
//
//	mod, err := rt.Load(ctx, wasmgen.Counter())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	inst, err := mod.Instantiate(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inst.Close(ctx)
//
//	inst.Increment(ctx)
//	v, _ := inst.GetCounter(ctx) // 1
//
// # Overflow
//
// The counter wraps: incrementing math.MaxInt32 yields math.MinInt32, which
// is what i32.add does in the guest.
//
// # Thread Safety
//
// counter.Counter is safe for concurrent use. A host.Instance serializes its
// calls into the guest, so it may be shared between goroutines; separate
// instances hold separate counters.
package wasmcounter
