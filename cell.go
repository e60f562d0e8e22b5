package once

import (
	"fmt"
	"sync/atomic"
)

// Cell is a write-once, lazily initialized cell holding a value of type
// T. The zero value is an empty cell, so a Cell can live in a
// package-level var with no init cost:
//
//	var config once.Cell[Config]
//
// The value is supplied exactly once, by Initialize or by the first
// GetOrInit; every later read observes that same value. Once published
// the value never changes, so readers share it with no further
// synchronization. Methods never require exclusive access from the
// caller; a non-blocking internal flag arbitrates concurrent
// initialization.
//
// No IsInitialized query is provided: an accurate answer is stale by
// the time the caller acts on it. Use GetOrInit to initialize if
// needed, or TryGet if not.
type Cell[T any] struct {
	busy  busyFlag
	value atomic.Pointer[T]
}

// TryGet returns the contained value, or (nil, false) if the cell is
// empty or its flag is currently held by another operation. Never
// blocks and never fails fatally.
func (c *Cell[T]) TryGet() (*T, bool) {
	if !c.busy.tryAcquire() {
		return nil, false
	}
	p := c.value.Load()
	c.busy.release()
	if p == nil {
		return nil, false
	}
	return p, true
}

// Get returns the contained value without checking the flag. Panics if
// the cell is empty; it is for call sites where initialize-before-use
// is an invariant the caller already guarantees.
func (c *Cell[T]) Get() *T {
	p := c.value.Load()
	if p == nil {
		panic(fmt.Sprintf("once: %s accessed before initialization", cellName[T]()))
	}
	return p
}

// Initialize populates an empty cell with v. It returns
// *AlreadyInitializedError if the cell holds a value and
// *ContentionError if another goroutine holds the flag; the cell is
// unchanged in both cases. Reentrant use, i.e. calling Initialize from
// inside the same cell's GetOrInit initializer, panics: the flag is
// already held by the outer call and continuing would corrupt the slot.
func (c *Cell[T]) Initialize(v T) error {
	if !c.busy.tryAcquire() {
		if c.busy.heldByCaller() {
			panic(fmt.Sprintf("once: reentrant initialization of %s", cellName[T]()))
		}
		return &ContentionError{Type: cellName[T](), Op: "Initialize"}
	}
	defer c.busy.release()
	if c.value.Load() != nil {
		return &AlreadyInitializedError{Type: cellName[T]()}
	}
	c.value.Store(&v)
	return nil
}

// GetOrInit returns the contained value, first calling fn to produce it
// if the cell is empty. fn runs while the flag is held and must not
// call back into the same cell; doing so panics. Returns
// *ContentionError if another goroutine holds the flag, since in that
// instant neither initializing nor a checked read is possible. Always
// safe to ignore the error in single-goroutine use.
func (c *Cell[T]) GetOrInit(fn func() T) (*T, error) {
	if !c.busy.tryAcquire() {
		if c.busy.heldByCaller() {
			panic(fmt.Sprintf("once: reentrant initialization of %s", cellName[T]()))
		}
		return nil, &ContentionError{Type: cellName[T](), Op: "GetOrInit"}
	}
	defer c.busy.release()
	p := c.value.Load()
	if p == nil {
		v := fn()
		c.value.Store(&v)
		p = &v
	}
	return p, nil
}

func cellName[T any]() string {
	return "Cell[" + typeName[T]() + "]"
}
