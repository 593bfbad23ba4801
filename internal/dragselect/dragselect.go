// Package dragselect implements rectangle selection over a row/column grid.
//
// The engine is generic over the row type, the column type and the key type
// produced by a combine function, so the same code drives the date×time grid
// and the one-dimensional weekday picker.
package dragselect

// Mode is the state of the drag state machine.
type Mode int

const (
	ModeNone Mode = iota
	ModeAdding
	ModeRemoving
)

// String returns a readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeAdding:
		return "adding"
	case ModeRemoving:
		return "removing"
	default:
		return "none"
	}
}

// Point is a grid cell.
type Point struct {
	Row int
	Col int
}

// Rect is a normalized, inclusive cell rectangle.
type Rect struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Contains reports whether the cell lies inside r.
func (r Rect) Contains(row, col int) bool {
	return row >= r.MinRow && row <= r.MaxRow && col >= r.MinCol && col <= r.MaxCol
}

// normalize builds a Rect from two corners in any order.
func normalize(a, b Point) Rect {
	return Rect{
		MinRow: min(a.Row, b.Row),
		MaxRow: max(a.Row, b.Row),
		MinCol: min(a.Col, b.Col),
		MaxCol: max(a.Col, b.Col),
	}
}

// Borders tells which edges of the pending rectangle a cell sits on.
type Borders struct {
	Top    bool
	Bottom bool
	Left   bool
	Right  bool
}

// Any reports whether the cell is on at least one edge.
func (b Borders) Any() bool {
	return b.Top || b.Bottom || b.Left || b.Right
}

// Selection is the collaborator that owns the committed selection.
type Selection[V comparable] interface {
	IsSelected(key V) bool
	AddSelected(keys []V)
	RemoveSelected(keys []V)
}

// Engine is the drag-select state machine.
type Engine[T, U any, V comparable] struct {
	rows    []T
	cols    []U
	combine func(T, U) V
	sel     Selection[V]

	mode  Mode
	start Point
	end   Point
}

// New creates an engine over rows × cols.
func New[T, U any, V comparable](rows []T, cols []U, combine func(T, U) V, sel Selection[V]) *Engine[T, U, V] {
	return &Engine[T, U, V]{
		rows:    rows,
		cols:    cols,
		combine: combine,
		sel:     sel,
	}
}

// SetAxes replaces the rows and columns. Any pending drag is discarded.
func (e *Engine[T, U, V]) SetAxes(rows []T, cols []U) {
	e.rows = rows
	e.cols = cols
	e.Cancel()
}

// Mode returns the current drag mode.
func (e *Engine[T, U, V]) Mode() Mode {
	return e.mode
}

// Dragging reports whether a drag is in progress.
func (e *Engine[T, U, V]) Dragging() bool {
	return e.mode != ModeNone
}

func (e *Engine[T, U, V]) valid(row, col int) bool {
	return row >= 0 && row < len(e.rows) && col >= 0 && col < len(e.cols)
}

// Start begins a drag at (row, col). Invalid cells are ignored.
// The mode is removing when the starting cell is already selected.
func (e *Engine[T, U, V]) Start(row, col int) {
	if !e.valid(row, col) {
		return
	}
	e.start = Point{Row: row, Col: col}
	e.end = e.start
	if e.sel.IsSelected(e.combine(e.rows[row], e.cols[col])) {
		e.mode = ModeRemoving
	} else {
		e.mode = ModeAdding
	}
}

// Move extends the pending rectangle to (row, col).
// Without an active drag a valid cell starts one.
func (e *Engine[T, U, V]) Move(row, col int) {
	if !e.valid(row, col) {
		return
	}
	if e.mode == ModeNone {
		e.Start(row, col)
		return
	}
	e.end = Point{Row: row, Col: col}
}

// End commits the pending rectangle and returns the committed keys.
// It does nothing without an active drag.
func (e *Engine[T, U, V]) End() []V {
	if e.mode == ModeNone {
		return nil
	}
	mode := e.mode
	keys := e.keys(normalize(e.start, e.end))

	// Clear before notifying so observers see the drag as finished.
	e.Cancel()

	if mode == ModeAdding {
		e.sel.AddSelected(keys)
	} else {
		e.sel.RemoveSelected(keys)
	}
	return keys
}

// Cancel discards the pending rectangle without committing it.
func (e *Engine[T, U, V]) Cancel() {
	e.mode = ModeNone
	e.start = Point{}
	e.end = Point{}
}

func (e *Engine[T, U, V]) keys(r Rect) []V {
	keys := make([]V, 0, (r.MaxRow-r.MinRow+1)*(r.MaxCol-r.MinCol+1))
	for row := r.MinRow; row <= r.MaxRow; row++ {
		for col := r.MinCol; col <= r.MaxCol; col++ {
			keys = append(keys, e.combine(e.rows[row], e.cols[col]))
		}
	}
	return keys
}

// Rect returns the pending rectangle, if any.
func (e *Engine[T, U, V]) Rect() (Rect, bool) {
	if e.mode == ModeNone {
		return Rect{}, false
	}
	return normalize(e.start, e.end), true
}

// InSelectionArea reports whether the cell is inside the pending rectangle.
func (e *Engine[T, U, V]) InSelectionArea(row, col int) bool {
	r, ok := e.Rect()
	return ok && r.Contains(row, col)
}

// Borders reports which pending-rectangle edges the cell sits on.
func (e *Engine[T, U, V]) Borders(row, col int) Borders {
	r, ok := e.Rect()
	if !ok || !r.Contains(row, col) {
		return Borders{}
	}
	return Borders{
		Top:    row == r.MinRow,
		Bottom: row == r.MaxRow,
		Left:   col == r.MinCol,
		Right:  col == r.MaxCol,
	}
}
