// Package spin provides a spinning mutual exclusion lock for guarding
// peripherals which have exactly one owner in the whole program.
//
// The firmware runs on a single core without interrupts, so a correct program
// never actually contends for a lock. The lock makes ownership explicit.
// Locking a Mutex twice from the same caller spins forever, there is no
// reentrancy detection. If interrupt handlers ever access a guarded value,
// interrupts must be disabled while the lock is held.
package spin

import (
	"sync/atomic"
)

const (
	unlocked uint32 = iota
	locked
)

// Mutex guards a value of type T. The zero value is an unlocked Mutex
// guarding the zero value of T.
type Mutex[T any] struct {
	state uint32
	v     T
}

// New returns a Mutex guarding v.
func New[T any](v T) *Mutex[T] {
	return &Mutex[T]{v: v}
}

// Lock busy-waits until m is unlocked and returns a Guard granting exclusive
// access to the guarded value. Release it with Guard.Unlock, usually
// deferred.
func (m *Mutex[T]) Lock() Guard[T] {
	for !atomic.CompareAndSwapUint32(&m.state, unlocked, locked) {
	}
	return Guard[T]{m}
}

// TryLock is like Lock but doesn't wait. It reports whether the lock was
// acquired.
func (m *Mutex[T]) TryLock() (Guard[T], bool) {
	if !atomic.CompareAndSwapUint32(&m.state, unlocked, locked) {
		return Guard[T]{}, false
	}
	return Guard[T]{m}, true
}

// Guard is the proof of holding a Mutex.
type Guard[T any] struct {
	m *Mutex[T]
}

// Value returns the guarded value. The pointer must not be retained after
// Unlock.
func (g *Guard[T]) Value() *T {
	if g.m == nil {
		panic("spin: use of released guard")
	}
	return &g.m.v
}

// Unlock releases the lock.
func (g *Guard[T]) Unlock() {
	if g.m == nil {
		panic("spin: unlock of released guard")
	}
	if !atomic.CompareAndSwapUint32(&g.m.state, locked, unlocked) {
		panic("spin: unlock of unlocked mutex")
	}
	g.m = nil
}
