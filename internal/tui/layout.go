package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/overlap/internal/dragselect"
	"github.com/javiermolinar/overlap/internal/grid"
)

const (
	timeColWidth = 6 // "09:30 "
	minCellWidth = 7
	maxCellWidth = 12
	headerLines  = 2 // Title bar and date header
	footerLines  = 2 // Participants and status lines, help excluded
)

// Layout holds the geometry of the grid on screen.
type Layout struct {
	Columns   int // Date columns that fit
	CellWidth int
	GridTop   int // First screen line of the grid
	GridLeft  int // First screen column of the grid
	Rows      int // Visible time rows
}

// buildLayout computes the grid geometry for a terminal size. A zero size
// means unknown and yields the configured window with every row visible.
func (m Model) buildLayout(width, height int) Layout {
	cols := m.config.Grid.ViewWindowSize
	if cols <= 0 {
		cols = grid.DefaultWindowSize
	}
	cellWidth := maxCellWidth
	if width > 0 {
		avail := width - timeColWidth
		cols = clamp(avail/minCellWidth, 1, cols)
		cellWidth = clamp(avail/cols, 3, maxCellWidth)
	}

	rows := len(m.session.Axis().Times)
	if height > 0 {
		rows = max(1, height-headerLines-footerLines-m.helpHeight())
	}

	return Layout{
		Columns:   cols,
		CellWidth: cellWidth,
		GridTop:   headerLines,
		GridLeft:  timeColWidth,
		Rows:      rows,
	}
}

func (m Model) helpHeight() int {
	if !m.showHelp {
		return 1
	}
	n := 0
	for _, group := range m.keys.FullHelp() {
		n = max(n, len(group))
	}
	return n
}

// scrollToCursor adjusts the row offset so the cursor row is on screen.
func (m *Model) scrollToCursor() {
	rows := m.layout.Rows
	if rows <= 0 {
		return
	}
	if m.cursor.Row < m.rowOffset {
		m.rowOffset = m.cursor.Row
	}
	if m.cursor.Row >= m.rowOffset+rows {
		m.rowOffset = m.cursor.Row - rows + 1
	}
	maxOffset := max(0, len(m.session.Axis().Times)-rows)
	m.rowOffset = clamp(m.rowOffset, 0, maxOffset)
}

// hitTest maps a terminal position to absolute grid coordinates.
// It returns (-1, -1) when the position is not over a cell.
func (m Model) hitTest(x, y int) (row, col int) {
	l := m.layout
	if x < l.GridLeft || y < l.GridTop || l.CellWidth <= 0 {
		return -1, -1
	}
	r := y - l.GridTop
	c := (x - l.GridLeft) / l.CellWidth
	start, end := m.session.Window().Visible()
	if r >= l.Rows || c >= end-start {
		return -1, -1
	}
	row = m.rowOffset + r
	if row >= len(m.session.Axis().Times) {
		return -1, -1
	}
	return row, start + c
}

// pointerEvent translates a terminal mouse event. Wheel events are not
// pointer events and report false.
func pointerEvent(msg tea.MouseMsg) (dragselect.PointerEvent, bool) {
	ev := dragselect.PointerEvent{Source: dragselect.SourceMouse, Row: -1, Col: -1}

	switch msg.Button {
	case tea.MouseButtonNone:
		ev.Button = dragselect.ButtonNone
	case tea.MouseButtonLeft:
		ev.Button = dragselect.ButtonLeft
	case tea.MouseButtonMiddle:
		ev.Button = dragselect.ButtonMiddle
	case tea.MouseButtonRight:
		ev.Button = dragselect.ButtonRight
	default:
		return ev, false
	}

	switch msg.Action {
	case tea.MouseActionPress:
		ev.Action = dragselect.ActionPress
		// Terminals have no context menu event; a right press plays its part.
		if ev.Button == dragselect.ButtonRight {
			ev.Action = dragselect.ActionContextMenu
		}
	case tea.MouseActionMotion:
		ev.Action = dragselect.ActionMove
	case tea.MouseActionRelease:
		ev.Action = dragselect.ActionRelease
	default:
		return ev, false
	}
	return ev, true
}

// handleMouseMsg routes mouse input: the wheel scrolls, everything else goes
// through the drag engine.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.screen != ScreenGrid || !m.session.Loaded() {
		return m, nil
	}

	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.rowOffset = max(0, m.rowOffset-1)
			return m, nil
		case tea.MouseButtonWheelDown:
			m.rowOffset = clamp(m.rowOffset+1, 0, max(0, len(m.session.Axis().Times)-m.layout.Rows))
			return m, nil
		case tea.MouseButtonWheelLeft:
			m.session.PreviousPage()
			m.keepCursorVisible()
			return m, nil
		case tea.MouseButtonWheelRight:
			m.session.NextPage()
			m.keepCursorVisible()
			return m, nil
		}
	}

	ev, ok := pointerEvent(msg)
	if !ok {
		return m, nil
	}
	ev.Row, ev.Col = m.hitTest(msg.X, msg.Y)
	if ev.Row >= 0 && (ev.Action == dragselect.ActionPress || m.session.Dragging()) {
		m.cursor = Position{Row: ev.Row, Col: ev.Col}
	}

	wasDragging := m.session.Dragging()
	mode := m.session.DragMode()
	keys := m.session.HandlePointer(ev)
	LogPointer(msg, ev, m.session.Mode() == grid.ModeEdit)
	if wasDragging && !m.session.Dragging() {
		LogDragCommit(mode, keys)
	}
	return m, nil
}
