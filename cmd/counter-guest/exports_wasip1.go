//go:build wasip1

package main

import "github.com/wippyai/wasm-counter/counter"

var state counter.Counter

//go:wasmexport increment
func increment() {
	state.Increment()
}

//go:wasmexport get_counter
func getCounter() int32 {
	return state.Get()
}
