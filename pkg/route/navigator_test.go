package route

import (
	"errors"
	"testing"
)

func TestNavigatorPush(t *testing.T) {
	h := NewMemoryHistory(Location{Name: "search", Query: map[string]string{"a": "1"}})
	nav := NewNavigator(h)

	if err := nav.Push(Set("b", "2"), Keep()); err != nil {
		t.Fatalf("Push: %v", err)
	}

	if h.Depth() != 2 {
		t.Errorf("depth: got %d, want 2 (exactly one history call)", h.Depth())
	}
	cur := nav.Location()
	if cur.Query["a"] != "1" || cur.Query["b"] != "2" {
		t.Errorf("query: got %v, want merged {a:1 b:2}", cur.Query)
	}
}

func TestNavigatorReplace(t *testing.T) {
	h := NewMemoryHistory(Location{Name: "search"})
	nav := NewNavigator(h)

	if err := nav.Replace(Set("q", "term"), Keep()); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if h.Depth() != 1 {
		t.Errorf("depth after Replace: got %d, want 1", h.Depth())
	}
	if nav.Location().Query["q"] != "term" {
		t.Errorf("query: got %v", nav.Location().Query)
	}
}

func TestNavigatorErrorPropagates(t *testing.T) {
	boom := errors.New("bridge down")
	h := NewMemoryHistory(Location{}, WithGuard(func(from, to Location) error {
		return boom
	}))
	nav := NewNavigator(h)

	if err := nav.Push(Set("a", "1"), Keep()); !errors.Is(err, boom) {
		t.Errorf("Push error: got %v, want %v", err, boom)
	}
}

func TestNewNavigatorNilHistoryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewNavigator(nil) did not panic")
		}
	}()
	NewNavigator(nil)
}
