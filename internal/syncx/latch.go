// Package syncx provides extended synchronization primitives
package syncx

import (
	"errors"
	"sync"
)

// ErrFrozen is returned by Write once the latch has been frozen.
var ErrFrozen = errors.New("syncx: latch is frozen")

// Latch guards a value that may be mutated until it is frozen. Freezing is
// one-way; afterwards the value is read-only.
type Latch[T any] struct {
	mu     sync.RWMutex
	value  T
	frozen bool
}

// NewLatch creates an unfrozen latch holding initial.
func NewLatch[T any](initial T) *Latch[T] {
	return &Latch[T]{value: initial}
}

// Read executes fn while holding the read lock.
func (l *Latch[T]) Read(fn func(T)) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn(l.value)
}

// Write executes fn with a pointer to the value while holding the write lock.
// It returns ErrFrozen without calling fn if the latch is frozen.
func (l *Latch[T]) Write(fn func(*T) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.frozen {
		return ErrFrozen
	}
	return fn(&l.value)
}

// Freeze freezes the latch. The first caller runs fn with the final value
// under the write lock and gets true; later callers get false and fn is not run.
func (l *Latch[T]) Freeze(fn func(T)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.frozen {
		return false
	}
	l.frozen = true
	if fn != nil {
		fn(l.value)
	}
	return true
}

// Frozen reports whether Freeze has been called.
func (l *Latch[T]) Frozen() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.frozen
}
