package reactive

import (
	"sync"
	"sync/atomic"
)

// Scope is a disposal scope that owns cleanup functions, typically watcher
// cancellations. Disposing a scope runs its cleanups in reverse registration
// order. A scope also carries a unique ID usable as a component-instance
// identity.
//
// Hosts with their own component lifecycle create one Scope per mounted
// instance and dispose it on unmount; everything registered against the
// scope is torn down with it.
type Scope struct {
	id uint64

	mu       sync.Mutex
	cleanups []func()

	disposed atomic.Bool
}

// NewScope creates a new scope.
func NewScope() *Scope {
	return &Scope{id: nextID()}
}

// ID returns the unique identifier for this scope.
func (s *Scope) ID() uint64 {
	return s.id
}

// OnCleanup registers a function to run when the scope is disposed.
// If the scope is already disposed, fn runs immediately.
func (s *Scope) OnCleanup(fn func()) {
	if fn == nil {
		return
	}
	if s.disposed.Load() {
		fn()
		return
	}
	s.mu.Lock()
	s.cleanups = append(s.cleanups, fn)
	s.mu.Unlock()
}

// Disposed reports whether the scope has been disposed.
func (s *Scope) Disposed() bool {
	return s.disposed.Load()
}

// Dispose runs all registered cleanups in reverse registration order.
// Subsequent calls are no-ops.
func (s *Scope) Dispose() {
	if s.disposed.Swap(true) {
		return
	}

	s.mu.Lock()
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
