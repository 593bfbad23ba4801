package dragselect

import (
	"fmt"
	"slices"
	"testing"
)

// fakeSelection records commits and answers IsSelected from a map.
type fakeSelection struct {
	selected map[string]bool
	added    [][]string
	removed  [][]string

	// dragging observed by the engine at commit time
	engine      interface{ Dragging() bool }
	sawDragging bool
}

func newFakeSelection(keys ...string) *fakeSelection {
	f := &fakeSelection{selected: make(map[string]bool)}
	for _, k := range keys {
		f.selected[k] = true
	}
	return f
}

func (f *fakeSelection) IsSelected(key string) bool { return f.selected[key] }

func (f *fakeSelection) AddSelected(keys []string) {
	f.check()
	f.added = append(f.added, keys)
	for _, k := range keys {
		f.selected[k] = true
	}
}

func (f *fakeSelection) RemoveSelected(keys []string) {
	f.check()
	f.removed = append(f.removed, keys)
	for _, k := range keys {
		delete(f.selected, k)
	}
}

func (f *fakeSelection) check() {
	if f.engine != nil && f.engine.Dragging() {
		f.sawDragging = true
	}
}

func (f *fakeSelection) keys() []string {
	var out []string
	for k := range f.selected {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func combine(r, c int) string {
	return fmt.Sprintf("%d,%d", r, c)
}

// newGrid returns an n×n engine whose keys are "row,col".
func newGrid(n int, sel *fakeSelection) *Engine[int, int, string] {
	axis := make([]int, n)
	for i := range axis {
		axis[i] = i
	}
	e := New(axis, axis, combine, Selection[string](sel))
	sel.engine = e
	return e
}

func TestDrag_CommitsRectangle(t *testing.T) {
	sel := newFakeSelection()
	e := newGrid(3, sel)

	e.Start(0, 0)
	e.Move(1, 1)
	committed := e.End()

	want := []string{"0,0", "0,1", "1,0", "1,1"}
	if got := sel.keys(); !slices.Equal(got, want) {
		t.Errorf("selected = %v, want %v", got, want)
	}
	slices.Sort(committed)
	if !slices.Equal(committed, want) {
		t.Errorf("End() = %v, want %v", committed, want)
	}
	if e.Mode() != ModeNone {
		t.Errorf("Mode() = %v after End, want none", e.Mode())
	}
}

func TestDrag_OrderIndependent(t *testing.T) {
	forward := newFakeSelection()
	e := newGrid(4, forward)
	e.Start(0, 1)
	e.Move(2, 3)
	e.End()

	backward := newFakeSelection()
	e = newGrid(4, backward)
	e.Start(2, 3)
	e.Move(0, 1)
	e.End()

	if !slices.Equal(forward.keys(), backward.keys()) {
		t.Errorf("forward %v != backward %v", forward.keys(), backward.keys())
	}
	if len(forward.keys()) != 9 {
		t.Errorf("len = %d, want 9", len(forward.keys()))
	}
}

func TestDrag_SingleCell(t *testing.T) {
	sel := newFakeSelection()
	e := newGrid(3, sel)

	e.Start(2, 1)
	e.End()

	if got := sel.keys(); !slices.Equal(got, []string{"2,1"}) {
		t.Errorf("selected = %v, want [2,1]", got)
	}
}

func TestDrag_ModeFromStartCell(t *testing.T) {
	sel := newFakeSelection("1,1", "1,2", "2,2")
	e := newGrid(3, sel)

	e.Start(1, 1)
	if e.Mode() != ModeRemoving {
		t.Fatalf("Mode() = %v, want removing", e.Mode())
	}
	e.Move(1, 2)
	e.End()

	if got := sel.keys(); !slices.Equal(got, []string{"2,2"}) {
		t.Errorf("selected = %v, want [2,2]", got)
	}
	if len(sel.added) != 0 || len(sel.removed) != 1 {
		t.Errorf("added=%d removed=%d, want 0 and 1", len(sel.added), len(sel.removed))
	}

	e.Start(0, 0)
	if e.Mode() != ModeAdding {
		t.Errorf("Mode() = %v, want adding", e.Mode())
	}
}

func TestDrag_ClearedBeforeCommit(t *testing.T) {
	sel := newFakeSelection()
	e := newGrid(3, sel)

	e.Start(0, 0)
	e.Move(2, 2)
	e.End()

	if sel.sawDragging {
		t.Error("selection observed an active drag during commit")
	}
}

func TestDrag_InvalidStartIgnored(t *testing.T) {
	sel := newFakeSelection()
	e := newGrid(3, sel)

	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		e.Start(p.Row, p.Col)
		if e.Dragging() {
			t.Errorf("Start(%d, %d) should be ignored", p.Row, p.Col)
		}
	}
	if got := e.End(); got != nil {
		t.Errorf("End() without drag = %v, want nil", got)
	}
	if len(sel.added)+len(sel.removed) != 0 {
		t.Error("End() without drag must not commit")
	}
}

func TestDrag_MoveWithoutStartAutoStarts(t *testing.T) {
	sel := newFakeSelection()
	e := newGrid(3, sel)

	e.Move(-1, -1)
	if e.Dragging() {
		t.Fatal("Move to an invalid cell must not start a drag")
	}

	e.Move(1, 1)
	if e.Mode() != ModeAdding {
		t.Fatalf("Mode() = %v, want adding", e.Mode())
	}
	e.Move(2, 2)
	e.Move(-1, 5) // ignored, end stays at (2, 2)
	e.End()

	want := []string{"1,1", "1,2", "2,1", "2,2"}
	if got := sel.keys(); !slices.Equal(got, want) {
		t.Errorf("selected = %v, want %v", got, want)
	}
}

func TestDrag_Cancel(t *testing.T) {
	sel := newFakeSelection()
	e := newGrid(3, sel)

	e.Start(0, 0)
	e.Move(1, 1)
	e.Cancel()
	e.End()

	if len(sel.keys()) != 0 {
		t.Errorf("Cancel should discard the rectangle, got %v", sel.keys())
	}
}

func TestDrag_SetAxesCancels(t *testing.T) {
	sel := newFakeSelection()
	e := newGrid(3, sel)

	e.Start(0, 0)
	e.SetAxes([]int{0}, []int{0})
	if e.Dragging() {
		t.Error("SetAxes should cancel a pending drag")
	}
	e.Start(1, 0)
	if e.Dragging() {
		t.Error("Start should validate against the new axes")
	}
}

func TestInSelectionAreaAndBorders(t *testing.T) {
	sel := newFakeSelection()
	e := newGrid(4, sel)

	if e.InSelectionArea(0, 0) {
		t.Error("no pending rectangle, InSelectionArea should be false")
	}
	if e.Borders(0, 0).Any() {
		t.Error("no pending rectangle, Borders should be empty")
	}

	e.Start(2, 2)
	e.Move(1, 0)

	tests := []struct {
		row, col int
		inside   bool
		borders  Borders
	}{
		{1, 0, true, Borders{Top: true, Left: true}},
		{1, 1, true, Borders{Top: true}},
		{2, 2, true, Borders{Bottom: true, Right: true}},
		{2, 1, true, Borders{Bottom: true}},
		{0, 0, false, Borders{}},
		{3, 3, false, Borders{}},
	}
	for _, tt := range tests {
		if got := e.InSelectionArea(tt.row, tt.col); got != tt.inside {
			t.Errorf("InSelectionArea(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.inside)
		}
		if got := e.Borders(tt.row, tt.col); got != tt.borders {
			t.Errorf("Borders(%d, %d) = %+v, want %+v", tt.row, tt.col, got, tt.borders)
		}
	}

	r, ok := e.Rect()
	if !ok || r != (Rect{MinRow: 1, MaxRow: 2, MinCol: 0, MaxCol: 2}) {
		t.Errorf("Rect() = %+v, %v", r, ok)
	}
}

func TestSingleCellBorders(t *testing.T) {
	e := newGrid(2, newFakeSelection())
	e.Start(1, 1)
	want := Borders{Top: true, Bottom: true, Left: true, Right: true}
	if got := e.Borders(1, 1); got != want {
		t.Errorf("Borders() = %+v, want %+v", got, want)
	}
}

func TestOneDimensionalPicker(t *testing.T) {
	type weekday string
	sel := &weekdaySelection[weekday]{selected: map[weekday]bool{}}
	days := []weekday{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}
	e := New([]struct{}{{}}, days, func(_ struct{}, d weekday) weekday { return d }, Selection[weekday](sel))

	e.Start(0, 1)
	e.Move(0, 3)
	e.End()

	for _, d := range []weekday{"mon", "tue", "wed"} {
		if !sel.selected[d] {
			t.Errorf("%s should be selected", d)
		}
	}
	if len(sel.selected) != 3 {
		t.Errorf("selected %d days, want 3", len(sel.selected))
	}
}

type weekdaySelection[K comparable] struct {
	selected map[K]bool
}

func (s *weekdaySelection[K]) IsSelected(k K) bool { return s.selected[k] }
func (s *weekdaySelection[K]) AddSelected(keys []K) {
	for _, k := range keys {
		s.selected[k] = true
	}
}
func (s *weekdaySelection[K]) RemoveSelected(keys []K) {
	for _, k := range keys {
		delete(s.selected, k)
	}
}
