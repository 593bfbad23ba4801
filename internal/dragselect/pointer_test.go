package dragselect

import (
	"slices"
	"testing"
)

func TestHandle_MouseGesture(t *testing.T) {
	sel := newFakeSelection()
	e := newGrid(3, sel)

	e.Handle(PointerEvent{Source: SourceMouse, Action: ActionPress, Button: ButtonLeft, Row: 0, Col: 0})
	e.Handle(PointerEvent{Source: SourceMouse, Action: ActionMove, Button: ButtonLeft, Row: 1, Col: 1})
	committed := e.Handle(PointerEvent{Source: SourceMouse, Action: ActionRelease})

	if len(committed) != 4 {
		t.Errorf("committed %d keys, want 4", len(committed))
	}
	if e.Dragging() {
		t.Error("release should end the drag")
	}
}

func TestHandle_MouseIgnoresNonLeftButton(t *testing.T) {
	sel := newFakeSelection()
	e := newGrid(3, sel)

	e.Handle(PointerEvent{Source: SourceMouse, Action: ActionPress, Button: ButtonRight, Row: 0, Col: 0})
	if e.Dragging() {
		t.Error("right button must not start a drag")
	}
}

func TestHandle_MouseMotionWithoutDragIgnored(t *testing.T) {
	sel := newFakeSelection()
	e := newGrid(3, sel)

	e.Handle(PointerEvent{Source: SourceMouse, Action: ActionMove, Row: 1, Col: 1})
	if e.Dragging() {
		t.Error("hovering must not start a drag")
	}
}

func TestHandle_TouchMoveAutoStarts(t *testing.T) {
	sel := newFakeSelection()
	e := newGrid(3, sel)

	e.Handle(PointerEvent{Source: SourceTouch, Action: ActionMove, Row: -1, Col: -1})
	if e.Dragging() {
		t.Fatal("touch miss must not start a drag")
	}
	e.Handle(PointerEvent{Source: SourceTouch, Action: ActionMove, Row: 2, Col: 2})
	e.Handle(PointerEvent{Source: SourceTouch, Action: ActionMove, Row: 2, Col: 1})
	e.Handle(PointerEvent{Source: SourceTouch, Action: ActionCancel})

	if got := sel.keys(); !slices.Equal(got, []string{"2,1", "2,2"}) {
		t.Errorf("selected = %v, want [2,1 2,2]", got)
	}
}

func TestHandle_EndingActionsCommit(t *testing.T) {
	for _, action := range []Action{ActionRelease, ActionCancel, ActionLeave, ActionContextMenu} {
		sel := newFakeSelection()
		e := newGrid(2, sel)
		e.Handle(PointerEvent{Source: SourceMouse, Action: ActionPress, Button: ButtonLeft, Row: 1, Col: 0})
		e.Handle(PointerEvent{Source: SourceMouse, Action: action})
		if got := sel.keys(); !slices.Equal(got, []string{"1,0"}) {
			t.Errorf("action %d: selected = %v, want [1,0]", action, got)
		}
	}
}
