package reactive

import (
	"fmt"
	"reflect"
	"sync"
)

// fieldWatcher is a subscribed field-change callback.
type fieldWatcher struct {
	id uint64
	fn func(field string, value any)
}

// Object is a reactive aggregate of named fields. Every field write that
// changes the stored value emits an explicit (field, value) event to all
// watchers; there is no implicit deep polling. Field order is the order of
// Define calls and is preserved by Fields.
type Object struct {
	id uint64

	mu     sync.RWMutex
	order  []string
	fields map[string]any

	subMu sync.RWMutex
	subs  []*fieldWatcher
}

// NewObject creates an empty reactive object.
func NewObject() *Object {
	return &Object{
		id:     nextID(),
		fields: make(map[string]any),
	}
}

// Define adds a field with an initial value. Defining a field does not emit
// a change event. Redefining an existing field panics: field sets are fixed
// at construction time.
func (o *Object) Define(field string, initial any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.fields[field]; ok {
		panic(fmt.Sprintf("vireo: reactive: field %q already defined", field))
	}
	o.order = append(o.order, field)
	o.fields[field] = initial
}

// Get returns the current value of a field. Panics if the field was never
// defined.
func (o *Object) Get(field string) any {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.fields[field]
	if !ok {
		panic(fmt.Sprintf("vireo: reactive: unknown field %q", field))
	}
	return v
}

// Has reports whether the field is defined.
func (o *Object) Has(field string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.fields[field]
	return ok
}

// Set updates a field and notifies watchers if the value changed.
// Equality uses reflect.DeepEqual so slice- and map-valued fields trigger
// on structural change. Panics if the field was never defined.
func (o *Object) Set(field string, value any) {
	o.mu.Lock()
	cur, ok := o.fields[field]
	if !ok {
		o.mu.Unlock()
		panic(fmt.Sprintf("vireo: reactive: unknown field %q", field))
	}
	changed := !reflect.DeepEqual(cur, value)
	if changed {
		o.fields[field] = value
	}
	o.mu.Unlock()

	if changed {
		o.notify(field, value)
	}
}

// Fields returns the field names in definition order.
func (o *Object) Fields() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]string, len(o.order))
	copy(out, o.order)
	return out
}

// Watch subscribes fn to field changes. The returned cancel function
// removes the subscription.
func (o *Object) Watch(fn func(field string, value any)) (cancel func()) {
	w := &fieldWatcher{id: nextID(), fn: fn}

	o.subMu.Lock()
	o.subs = append(o.subs, w)
	o.subMu.Unlock()

	return func() {
		o.subMu.Lock()
		defer o.subMu.Unlock()
		for i, existing := range o.subs {
			if existing.id == w.id {
				o.subs[i] = o.subs[len(o.subs)-1]
				o.subs = o.subs[:len(o.subs)-1]
				return
			}
		}
	}
}

// ID returns the unique identifier for this object.
func (o *Object) ID() uint64 {
	return o.id
}

func (o *Object) notify(field string, value any) {
	o.subMu.RLock()
	subs := make([]*fieldWatcher, len(o.subs))
	copy(subs, o.subs)
	o.subMu.RUnlock()

	for _, w := range subs {
		w.fn(field, value)
	}
}
