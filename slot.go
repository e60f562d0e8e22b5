package once

import (
	"fmt"
	"sync/atomic"
)

// Slot is a single-slot deferred state box holding at most one pending
// value of type S. The zero value is an empty slot.
//
// A Slot decouples recording that something should happen from acting
// on it. A routine that already holds exclusive access to its owner
// cannot re-acquire that access to call a second method on the same
// owner; instead it stores the pending state now and a later, separate
// call consumes it, yielding two sequential exclusive sections in place
// of one illegal nested one. Unlike Cell there is no single-assignment
// rule: the slot may cycle between empty and pending any number of
// times.
//
// The internal flag exists only to catch genuine multi-goroutine races
// on the slot itself. Under the intended single-goroutine use it is
// never contended, which is why Store and Consume treat contention as
// fatal and only the Try variants report it softly.
type Slot[S any] struct {
	busy  busyFlag
	state atomic.Pointer[S]
}

// IsPending reports whether a value is currently stored.
func (s *Slot[S]) IsPending() bool {
	return s.state.Load() != nil
}

// Store makes v the pending value, silently discarding any previously
// pending value (last write wins). Panics if the slot's flag is held by
// an in-flight operation.
func (s *Slot[S]) Store(v S) {
	if !s.busy.tryAcquire() {
		panic(fmt.Sprintf("once: Store on %s while another operation is in flight", slotName[S]()))
	}
	s.state.Store(&v)
	s.busy.release()
}

// TryStore is Store, reporting false instead of panicking when the flag
// is held. Returns true if v became the pending value.
func (s *Slot[S]) TryStore(v S) bool {
	if !s.busy.tryAcquire() {
		return false
	}
	s.state.Store(&v)
	s.busy.release()
	return true
}

// Consume removes the pending value, if any, and hands it to fn by
// move; the value must not escape fn. Reports whether fn ran: false
// means the slot was empty and fn was not invoked. fn runs while the
// flag is held, so it must not call back into the same slot. Panics if
// the flag is held by an in-flight operation.
func (s *Slot[S]) Consume(fn func(S)) bool {
	if !s.busy.tryAcquire() {
		panic(fmt.Sprintf("once: Consume on %s while another operation is in flight", slotName[S]()))
	}
	defer s.busy.release()
	p := s.state.Swap(nil)
	if p == nil {
		return false
	}
	fn(*p)
	return true
}

// TryConsume is Consume, returning *ContentionError instead of
// panicking when the flag is held; fn is not invoked in that case.
func (s *Slot[S]) TryConsume(fn func(S)) (bool, error) {
	if !s.busy.tryAcquire() {
		return false, &ContentionError{Type: slotName[S](), Op: "TryConsume"}
	}
	defer s.busy.release()
	p := s.state.Swap(nil)
	if p == nil {
		return false, nil
	}
	fn(*p)
	return true, nil
}

func slotName[S any]() string {
	return "Slot[" + typeName[S]() + "]"
}
