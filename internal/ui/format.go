package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/overlap/internal/aggregate"
	"github.com/javiermolinar/overlap/internal/grid"
	"github.com/javiermolinar/overlap/internal/tui/view"
)

const (
	timeColWidth = 7  // "09:30  "
	cellWidth    = 11 // fits "Mon 03 Feb "
	emptyCell    = "·"
)

// windowForWidth returns how many date columns fit in width, capped at limit.
func windowForWidth(width, limit int) int {
	fit := (width - timeColWidth) / cellWidth
	return clampInt(fit, 1, limit)
}

// PrintHeatmap writes the visible window of the grid as a colored table.
func PrintHeatmap(w io.Writer, s *grid.Session) {
	e := s.Event()
	axis := s.Axis()
	cols := s.VisibleColumns()

	title := formatHeader(e.Name)
	if win := s.Window(); win.IsPaginationRequired() {
		title += formatMuted(fmt.Sprintf("  page %d/%d", win.Page(), win.Pages()))
	}
	if s.BestTimes() {
		title += "  " + formatBest(view.MarkBest+" best times")
	}
	fmt.Fprintln(w, title)

	var header strings.Builder
	header.WriteString(strings.Repeat(" ", timeColWidth))
	for _, col := range cols {
		header.WriteString(formatHeader(padRight(view.DateLabel(axis.Dates[col], e.IsSpecificDates), cellWidth)))
	}
	fmt.Fprintln(w, strings.TrimRight(header.String(), " "))

	for row, t := range axis.Times {
		var line strings.Builder
		line.WriteString(formatMuted(padRight(view.TimeLabel(t), timeColWidth)))
		for _, col := range cols {
			line.WriteString(formatCell(s.Cell(row, col), s.BestTimes()))
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}

	fmt.Fprintln(w)
	PrintParticipants(w, s)
}

// formatCell renders one heatmap cell, padded to cellWidth.
func formatCell(c grid.CellView, bestTimes bool) string {
	text := strings.TrimSpace(view.CellText(c, grid.ModeView, bestTimes, cellWidth-1))
	if text == "" {
		return padRight(formatMuted(emptyCell), cellWidth)
	}
	if bestTimes && c.Intensity >= 1 {
		return padRight(formatBest(text), cellWidth)
	}
	return padRight(formatHeat(text, c.Intensity), cellWidth)
}

// PrintParticipants writes the participant list, marking filtered ones.
func PrintParticipants(w io.Writer, s *grid.Session) {
	participants := s.Participants()
	if len(participants) == 0 {
		fmt.Fprintln(w, formatMuted("No responses yet."))
		return
	}
	names := make([]string, len(participants))
	for i, p := range participants {
		names[i] = formatName(p)
		if s.Filtered(p) {
			names[i] = formatName("[" + p + "]")
		}
	}
	label := "Participants"
	if len(s.Filter()) > 0 {
		label = "Participants (filtered)"
	}
	fmt.Fprintf(w, "%s: %s\n", label, strings.Join(names, ", "))
}

// PrintBlocks writes best-time blocks with their attendance.
func PrintBlocks(w io.Writer, blocks []aggregate.Block, specificDates bool, available, total int) {
	if len(blocks) == 0 {
		fmt.Fprintln(w, formatMuted("Nobody is available yet."))
		return
	}
	who := strconv.Itoa(available) + "/" + strconv.Itoa(total) + " available"
	for _, b := range blocks {
		fmt.Fprintf(w, "%s %s  %s\n", formatBest(view.MarkBest), b.Label(specificDates), formatMuted(who))
	}
}

// padRight pads a possibly colored string to width display cells.
func padRight(s string, width int) string {
	if n := ansi.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
