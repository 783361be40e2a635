package reactive

import (
	"reflect"
	"testing"
)

func TestObjectDefineGetSet(t *testing.T) {
	o := NewObject()
	o.Define("search", "")
	o.Define("page", 1)

	if o.Get("search") != "" {
		t.Errorf("search: got %v, want empty", o.Get("search"))
	}
	if o.Get("page") != 1 {
		t.Errorf("page: got %v, want 1", o.Get("page"))
	}

	o.Set("page", 2)
	if o.Get("page") != 2 {
		t.Errorf("page after Set: got %v, want 2", o.Get("page"))
	}
}

func TestObjectFieldsOrder(t *testing.T) {
	o := NewObject()
	o.Define("c", 0)
	o.Define("a", 0)
	o.Define("b", 0)

	want := []string{"c", "a", "b"}
	if got := o.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Fields: got %v, want %v", got, want)
	}
}

func TestObjectWatch(t *testing.T) {
	t.Run("EmitsFieldAndValue", func(t *testing.T) {
		o := NewObject()
		o.Define("q", "")

		var gotField string
		var gotValue any
		o.Watch(func(field string, value any) {
			gotField, gotValue = field, value
		})

		o.Set("q", "term")

		if gotField != "q" || gotValue != "term" {
			t.Errorf("event: got (%q, %v), want (%q, %q)", gotField, gotValue, "q", "term")
		}
	})

	t.Run("NoEventOnEqualValue", func(t *testing.T) {
		o := NewObject()
		o.Define("tags", []string{"go"})

		calls := 0
		o.Watch(func(string, any) { calls++ })

		o.Set("tags", []string{"go"})
		if calls != 0 {
			t.Errorf("structurally equal Set emitted %d events, want 0", calls)
		}

		o.Set("tags", []string{"go", "web"})
		if calls != 1 {
			t.Errorf("structural change emitted %d events, want 1", calls)
		}
	})

	t.Run("Cancel", func(t *testing.T) {
		o := NewObject()
		o.Define("n", 0)

		calls := 0
		cancel := o.Watch(func(string, any) { calls++ })

		o.Set("n", 1)
		cancel()
		o.Set("n", 2)

		if calls != 1 {
			t.Errorf("calls after cancel: got %d, want 1", calls)
		}
	})

	t.Run("DefineDoesNotEmit", func(t *testing.T) {
		o := NewObject()

		calls := 0
		o.Watch(func(string, any) { calls++ })

		o.Define("late", "v")
		if calls != 0 {
			t.Errorf("Define emitted %d events, want 0", calls)
		}
	})
}

func TestObjectUnknownFieldPanics(t *testing.T) {
	o := NewObject()

	defer func() {
		if recover() == nil {
			t.Error("Set on unknown field did not panic")
		}
	}()
	o.Set("missing", 1)
}

func TestObjectRedefinePanics(t *testing.T) {
	o := NewObject()
	o.Define("x", 1)

	defer func() {
		if recover() == nil {
			t.Error("redefining a field did not panic")
		}
	}()
	o.Define("x", 2)
}
