package once

import (
	"sync/atomic"
)

// AtomicOnce is Once, safe for concurrent use. A single atomic swap
// decides the winner: when multiple goroutines race into Do, the one
// that flipped the marker runs f and every other call is a no-op. No
// lock is taken and no caller ever waits. The zero value is ready.
type AtomicOnce struct {
	done atomic.Bool
}

// Do runs f only if this call performed the marker's false-to-true
// transition. A nil f marks the AtomicOnce done without running
// anything.
func (o *AtomicOnce) Do(f func()) {
	if o.done.Swap(true) {
		return
	}
	if f != nil {
		f()
	}
}

// Done reports whether the marker has been set.
func (o *AtomicOnce) Done() bool {
	return o.done.Load()
}
