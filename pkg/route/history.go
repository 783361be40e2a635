package route

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// History exposes the current Location as an observable value and the two
// ways of changing it. Push adds a history entry; Replace swaps the current
// one. Both may fail (a guard veto, a host bridge error); failures are the
// caller's to handle.
type History interface {
	// Current returns the current location.
	Current() Location

	// Push navigates to loc, adding a history entry.
	Push(loc Location) error

	// Replace navigates to loc, replacing the current entry.
	Replace(loc Location) error

	// Watch subscribes fn to location changes. The returned cancel
	// function removes the subscription.
	Watch(fn func(Location)) (cancel func())
}

// Guard is invoked before a MemoryHistory navigation commits. Returning an
// error vetoes the navigation; the error propagates to the Push/Replace
// caller unchanged.
type Guard func(from, to Location) error

// HistoryOption configures a MemoryHistory.
type HistoryOption func(*MemoryHistory)

// WithGuard installs a pre-navigation guard.
func WithGuard(g Guard) HistoryOption {
	return func(h *MemoryHistory) {
		h.guard = g
	}
}

// WithStackLimit bounds the back-stack depth. Oldest entries are discarded
// once the limit is reached. Zero or negative means unbounded.
func WithStackLimit(n int) HistoryOption {
	return func(h *MemoryHistory) {
		h.maxStack = n
	}
}

// locWatcher is a subscribed location-change callback.
type locWatcher struct {
	id uint64
	fn func(Location)
}

// MemoryHistory is an in-process History for hosts without a browser
// address bar, and for tests. It keeps a back-stack of locations; the top
// of the stack is the current location.
type MemoryHistory struct {
	mu       sync.RWMutex
	stack    []Location
	guard    Guard
	maxStack int

	subMu sync.RWMutex
	subs  []*locWatcher

	watchID atomic.Uint64
}

// NewMemoryHistory creates a history positioned at initial.
func NewMemoryHistory(initial Location, opts ...HistoryOption) *MemoryHistory {
	h := &MemoryHistory{
		stack: []Location{initial.Clone()},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Current returns the current location. The returned value is a copy;
// mutating it does not affect the history.
func (h *MemoryHistory) Current() Location {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.stack[len(h.stack)-1].Clone()
}

// Depth returns the number of entries on the back-stack.
func (h *MemoryHistory) Depth() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.stack)
}

// Push navigates to loc, adding a history entry.
func (h *MemoryHistory) Push(loc Location) error {
	return h.navigate(loc, false)
}

// Replace navigates to loc, replacing the current entry.
func (h *MemoryHistory) Replace(loc Location) error {
	return h.navigate(loc, true)
}

func (h *MemoryHistory) navigate(loc Location, replace bool) error {
	next := loc.Clone()

	h.mu.Lock()
	cur := h.stack[len(h.stack)-1]
	if h.guard != nil {
		if err := h.guard(cur.Clone(), next.Clone()); err != nil {
			h.mu.Unlock()
			return err
		}
	}
	if replace {
		h.stack[len(h.stack)-1] = next
	} else {
		h.stack = append(h.stack, next)
		if h.maxStack > 0 && len(h.stack) > h.maxStack {
			h.stack = h.stack[len(h.stack)-h.maxStack:]
		}
	}
	h.mu.Unlock()

	h.notify(next)
	return nil
}

// Back pops the current entry and returns to the previous one. Fails when
// the stack holds a single entry. Back bypasses the guard: it revisits a
// location the guard already admitted.
func (h *MemoryHistory) Back() error {
	h.mu.Lock()
	if len(h.stack) < 2 {
		h.mu.Unlock()
		return fmt.Errorf("route: history is at its first entry")
	}
	h.stack = h.stack[:len(h.stack)-1]
	cur := h.stack[len(h.stack)-1].Clone()
	h.mu.Unlock()

	h.notify(cur)
	return nil
}

// Watch subscribes fn to location changes.
func (h *MemoryHistory) Watch(fn func(Location)) (cancel func()) {
	w := &locWatcher{id: h.watchID.Add(1), fn: fn}

	h.subMu.Lock()
	h.subs = append(h.subs, w)
	h.subMu.Unlock()

	return func() {
		h.subMu.Lock()
		defer h.subMu.Unlock()
		for i, existing := range h.subs {
			if existing.id == w.id {
				h.subs[i] = h.subs[len(h.subs)-1]
				h.subs = h.subs[:len(h.subs)-1]
				return
			}
		}
	}
}

// notify invokes all watchers with a fresh copy of the new location.
// Copy-before-notify: no lock is held while callbacks run.
func (h *MemoryHistory) notify(loc Location) {
	h.subMu.RLock()
	subs := make([]*locWatcher, len(h.subs))
	copy(subs, h.subs)
	h.subMu.RUnlock()

	for _, w := range subs {
		w.fn(loc.Clone())
	}
}
