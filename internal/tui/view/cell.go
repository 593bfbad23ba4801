package view

import (
	"strconv"

	"github.com/javiermolinar/overlap/internal/grid"
)

// Markers drawn inside cells.
const (
	MarkSelected = "✓"
	MarkBest     = "★"
	MarkEdge     = "│"
)

// CellText renders the text of one cell at the given width. VIEW mode shows
// "count/total", best cells get a star, and EDIT mode ticks the user's own
// slots. Drag edges are drawn on the left and right borders.
func CellText(c grid.CellView, mode grid.Mode, bestTimes bool, width int) string {
	if width <= 0 {
		return ""
	}

	var text string
	switch {
	case mode == grid.ModeEdit && c.Selected:
		text = MarkSelected
	case mode == grid.ModeView && c.Count > 0:
		text = strconv.Itoa(c.Count) + "/" + strconv.Itoa(c.Total)
		if bestTimes && c.Intensity >= 1 {
			text = MarkBest + text
		}
	}
	out := []rune(Center(text, width))

	if c.InDrag && len(out) > 0 {
		if c.Borders.Left {
			out[0] = []rune(MarkEdge)[0]
		}
		if c.Borders.Right {
			out[len(out)-1] = []rune(MarkEdge)[0]
		}
	}
	return string(out)
}
