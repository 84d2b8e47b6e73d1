// Command counter-guest is the counter module compiled for a wasm host.
//
// Build it as a WASI reactor so the exports stay callable after start-up:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o counter.wasm ./cmd/counter-guest
//
// The module exports:
//
//	increment   ()        increments the counter
//	get_counter () -> i32 returns the current value
//
// Each module instance owns its own counter, starting at zero.
package main

//go:generate env GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o counter.wasm .

// main is required by the toolchain; a reactor never runs it.
func main() {}
