package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox renders content in a lipgloss.Place box with background fill.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(
		w,
		h,
		lipgloss.Left,
		vAlign,
		content,
		lipgloss.WithWhitespaceBackground(bg),
	)
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads content to width/height with a background color.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	paddingStyle := lipgloss.NewStyle().Background(bg)
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := 0; i < height; i++ {
		line := lines[i]
		lineWidth := lipgloss.Width(line)
		if lineWidth > width {
			lines[i] = ansi.Truncate(line, width, "")
			continue
		}
		lines[i] = line + paddingStyle.Render(strings.Repeat(" ", width-lineWidth))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// FitLine truncates a styled line to width, marking the cut with an ellipsis.
// A non-positive width leaves the line untouched.
func FitLine(line string, width int) string {
	if width <= 0 || lipgloss.Width(line) <= width {
		return line
	}
	return ansi.Truncate(line, width, "…")
}

// SpreadLine places left and right on one line of the given width, keeping
// right flush against the edge when both fit.
func SpreadLine(left, right string, width int) string {
	if width <= 0 {
		return left + " " + right
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return FitLine(left, width)
	}
	return left + strings.Repeat(" ", gap) + right
}

// Center pads s on both sides to width, truncating when it does not fit.
func Center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return ansi.Truncate(s, width, "")
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
