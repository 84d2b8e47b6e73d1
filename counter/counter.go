// Package counter holds the state exposed by the counter wasm module.
//
// A Counter starts at zero and only ever moves forward by one. The value is
// an int32 so it matches the s32 result of the get-counter export; past
// math.MaxInt32 it wraps to math.MinInt32, the same as i32.add in the guest.
//
// Counter is safe for concurrent use. The zero value is ready to use.
package counter

import "sync/atomic"

type Counter struct {
	value atomic.Int32
}

// Increment adds one to the counter.
func (c *Counter) Increment() {
	c.value.Add(1)
}

// Get returns the current value.
func (c *Counter) Get() int32 {
	return c.value.Load()
}
