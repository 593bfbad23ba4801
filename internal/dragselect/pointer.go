package dragselect

// Source identifies the input device behind a pointer event.
type Source int

const (
	SourceMouse Source = iota
	SourceTouch
)

// Action is what happened to the pointer.
type Action int

const (
	ActionPress Action = iota
	ActionMove
	ActionRelease
	ActionCancel
	ActionLeave
	ActionContextMenu
)

// Button is the mouse button involved in a press.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// PointerEvent is an input-agnostic pointer event already hit-tested to a
// cell. Row and Col are -1 when the pointer is not over a cell.
type PointerEvent struct {
	Source Source
	Action Action
	Button Button
	Row    int
	Col    int
}

// Handle feeds a pointer event into the engine. Mouse and touch share the
// same gesture: press starts, move extends, and release, cancel, leave or
// context menu commit. It returns the keys committed by this event, if any.
func (e *Engine[T, U, V]) Handle(ev PointerEvent) []V {
	switch ev.Action {
	case ActionPress:
		if ev.Source == SourceMouse && ev.Button != ButtonLeft {
			return nil
		}
		e.Start(ev.Row, ev.Col)
	case ActionMove:
		// Mouse motion only matters while a button is held down.
		if ev.Source == SourceMouse && e.mode == ModeNone {
			return nil
		}
		e.Move(ev.Row, ev.Col)
	case ActionRelease, ActionCancel, ActionLeave, ActionContextMenu:
		return e.End()
	}
	return nil
}
