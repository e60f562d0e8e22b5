// Package once provides one-time-execution and deferred-mutation
// primitives: a run-at-most-once marker in single-goroutine (Once) and
// concurrent (AtomicOnce, RedisOnce) flavors, a write-once lazily
// initialized cell (Cell), and a single-slot deferred state box (Slot).
//
// Nothing here ever blocks: the thread-safe primitives use a
// non-blocking exclusion flag that either acquires immediately or
// reports contention immediately. There is no spin-wait and no parked
// caller.
package once

// Once runs an action at most once. Not safe for concurrent use; it is
// meant for single-goroutine call sites, e.g. one iteration of a loop
// the goroutine owns. The zero value is ready.
type Once struct {
	done bool
}

// Do runs f and marks the Once done, only if it has not run before.
// A nil f marks the Once done without running anything.
func (o *Once) Do(f func()) {
	if o.done {
		return
	}
	if f != nil {
		f()
	}
	o.done = true
}

// Done reports whether Do has run.
func (o *Once) Done() bool {
	return o.done
}
