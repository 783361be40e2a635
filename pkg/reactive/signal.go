package reactive

import (
	"reflect"
	"sync"
)

// watcher is a subscribed change callback with a unique identity for
// deduplication and removal.
type watcher[T any] struct {
	id uint64
	fn func(T)
}

// Signal is a reactive value container. Writes that change the value (per
// the signal's equality function) notify every subscribed watcher with the
// new value. Reads never block and never notify.
type Signal[T any] struct {
	id uint64

	// mu protects value.
	mu    sync.RWMutex
	value T

	// equal decides whether a write changed the value. If nil, a
	// type-appropriate default is used (== for common comparables,
	// reflect.DeepEqual for slices, maps, and structs).
	equal func(T, T) bool

	// subMu protects subs.
	subMu sync.RWMutex
	subs  []*watcher[T]
}

// NewSignal creates a signal holding the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		id:    nextID(),
		value: initial,
	}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies watchers if it changed.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.notify(value)
	}
}

// Update atomically reads and updates the value. The function receives the
// current value and returns the new one.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	next := fn(s.value)
	changed := !s.equals(s.value, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.notify(next)
	}
}

// Watch subscribes fn to value changes. The callback receives the new value
// after each change; it is not invoked with the current value at subscribe
// time. The returned cancel function removes the subscription and is safe
// to call more than once.
func (s *Signal[T]) Watch(fn func(T)) (cancel func()) {
	w := &watcher[T]{id: nextID(), fn: fn}

	s.subMu.Lock()
	s.subs = append(s.subs, w)
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, existing := range s.subs {
			if existing.id == w.id {
				s.subs[i] = s.subs[len(s.subs)-1]
				s.subs = s.subs[:len(s.subs)-1]
				return
			}
		}
	}
}

// Value returns the current value untyped. Together with Assign and
// Observe it lets heterogeneously typed signals travel through one
// interface.
func (s *Signal[T]) Value() any {
	return s.Get()
}

// Assign sets the value from an untyped source. nil assigns the zero
// value; any other type mismatch is a programming error and panics.
func (s *Signal[T]) Assign(v any) {
	if v == nil {
		var zero T
		s.Set(zero)
		return
	}
	s.Set(v.(T))
}

// Observe subscribes fn to value changes through the untyped view. Same
// semantics as Watch.
func (s *Signal[T]) Observe(fn func(any)) (cancel func()) {
	return s.Watch(func(v T) { fn(v) })
}

// WithEquals returns the signal configured with a custom equality function.
// Useful when reflect.DeepEqual is too expensive or has the wrong semantics
// for the value type.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.id
}

// notify invokes all watchers with the new value. Uses copy-before-notify
// so no lock is held while callbacks run; callbacks may subscribe,
// unsubscribe, or write other signals.
func (s *Signal[T]) notify(value T) {
	s.subMu.RLock()
	subs := make([]*watcher[T], len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	for _, w := range subs {
		w.fn(value)
	}
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals provides type-appropriate equality checking: == for common
// comparable types, reflect.DeepEqual for everything else.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int8:
		return av == any(b).(int8)
	case int16:
		return av == any(b).(int16)
	case int32:
		return av == any(b).(int32)
	case int64:
		return av == any(b).(int64)
	case uint:
		return av == any(b).(uint)
	case uint8:
		return av == any(b).(uint8)
	case uint16:
		return av == any(b).(uint16)
	case uint32:
		return av == any(b).(uint32)
	case uint64:
		return av == any(b).(uint64)
	case float32:
		return av == any(b).(float32)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
