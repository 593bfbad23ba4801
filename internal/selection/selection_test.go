package selection

import (
	"slices"
	"testing"

	"github.com/javiermolinar/overlap/internal/slot"
)

func TestAdd(t *testing.T) {
	s := New[slot.Slot]("2024-01-01 09:00:00")
	got := s.Add([]slot.Slot{"2024-01-01 09:00:00", "2024-01-01 09:30:00"})

	if got.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (no duplicates)", got.Len())
	}
	if s.Len() != 1 {
		t.Error("Add must not modify the receiver")
	}
}

func TestRemove(t *testing.T) {
	s := New("a", "b", "c")
	got := s.Remove([]string{"b", "z"})

	if !slices.Equal(got.Items(), []string{"a", "c"}) {
		t.Errorf("Items() = %v, want [a c]", got.Items())
	}
	if !s.Has("b") {
		t.Error("Remove must not modify the receiver")
	}
}

func TestRemove_ZeroValue(t *testing.T) {
	var s Set[string]
	got := s.Remove([]string{"a"})
	if got.Len() != 0 {
		t.Errorf("Len() = %d, want 0", got.Len())
	}
	got = got.Add([]string{"a"})
	if !got.Has("a") {
		t.Error("set derived from zero value should accept adds")
	}
}

func TestReplace(t *testing.T) {
	s := New("a", "b")
	got := s.Replace([]string{"x", "x", "y"})
	if !slices.Equal(got.Items(), []string{"x", "y"}) {
		t.Errorf("Items() = %v, want [x y]", got.Items())
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		base []string
		diff []string
	}{
		{"disjoint batch", []string{"a", "b"}, []string{"c", "d"}},
		{"empty base", nil, []string{"a"}},
		{"empty batch", []string{"a"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.base...)
			got := a.Add(tt.diff).Remove(tt.diff)
			if !got.Equal(a) {
				t.Errorf("remove(add(A, X), X) = %v, want %v", got.Items(), a.Items())
			}
			for _, x := range tt.diff {
				if got.Has(x) {
					t.Errorf("result should be disjoint from X, found %q", x)
				}
			}
		})
	}
}

func TestEqual(t *testing.T) {
	if !New("a", "b").Equal(New("b", "a")) {
		t.Error("sets with the same keys should be equal")
	}
	if New("a").Equal(New("b")) {
		t.Error("sets with different keys should differ")
	}
	if New("a").Equal(New("a", "b")) {
		t.Error("sets with different sizes should differ")
	}
}
