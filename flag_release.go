//go:build !debug

package once

import (
	"sync/atomic"
)

// busyFlag is the try-only exclusion flag shared by Cell and Slot. It
// supports acquire-or-fail only; there is no waiting path. The owner
// goroutine id is recorded so a failed acquire can be told apart as
// reentrancy (same goroutine) or contention (another goroutine).
type busyFlag struct {
	held atomic.Bool
	gid  atomic.Int64
}

func (f *busyFlag) tryAcquire() bool {
	if f.held.Swap(true) {
		return false
	}
	f.gid.Store(int64(getGID()))
	return true
}

func (f *busyFlag) release() {
	f.gid.Store(0)
	f.held.Store(false)
}

func (f *busyFlag) heldByCaller() bool {
	return f.held.Load() && f.gid.Load() == int64(getGID())
}
