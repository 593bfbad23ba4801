package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	humanize "github.com/dustin/go-humanize"

	"github.com/javiermolinar/overlap/internal/grid"
	"github.com/javiermolinar/overlap/internal/tui/view"
)

// View renders the TUI.
func (m Model) View() string {
	if m.width > 0 && m.height > 0 && (m.width < timeColWidth+3 || m.height < headerLines+footerLines+2) {
		return "Terminal too small"
	}

	var body string
	switch {
	case m.screen == ScreenInit:
		body = m.renderInit()
	case m.screen == ScreenEvents:
		body = m.renderEvents()
	case !m.session.Loaded():
		body = m.renderEmpty()
	default:
		body = m.renderGrid()
	}
	return view.PadLinesWithBackground(body, m.width, m.height, m.styles.palette.Bg)
}

func (m Model) renderGrid() string {
	lines := []string{m.renderTitle(), m.renderDateHeader()}
	lines = append(lines, m.renderRows()...)

	footer := view.RenderFooter(view.FooterViewState{
		Width:            m.width,
		ParticipantsLine: view.FitLine(m.renderParticipants(), m.width),
		StatusLine:       m.statusLine(),
		HelpLine:         m.renderHelp(),
		StatusStyle:      m.statusStyle(),
		Bg:               m.styles.palette.Bg,
	})
	if m.height > 0 {
		// Keep the footer pinned to the bottom.
		gridHeight := headerLines + m.layout.Rows
		for len(lines) < gridHeight {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n") + "\n" + footer
}

func (m Model) renderTitle() string {
	s := m.session
	title := m.styles.TitleStyle.Render("overlap") + " " + s.Event().Name

	var badge string
	if s.Mode() == grid.ModeEdit {
		badge = m.styles.ModeEditStyle.Render("EDIT " + s.Alias())
	} else {
		badge = m.styles.ModeViewStyle.Render("VIEW")
	}
	right := badge
	if s.BestTimes() {
		right = m.styles.BestStyle.Render(view.MarkBest+" best") + " " + right
	}
	if w := s.Window(); w.IsPaginationRequired() {
		right = m.styles.PageStyle.Render(fmt.Sprintf("page %d/%d", w.Page(), w.Pages())) + " " + right
	}
	if m.loading {
		right = m.styles.MutedStyle.Render("loading…") + " " + right
	}
	return view.SpreadLine(title, right, m.width)
}

func (m Model) renderDateHeader() string {
	axis := m.session.Axis()
	specific := m.session.Event().IsSpecificDates
	width := m.layout.CellWidth

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", timeColWidth))
	for _, col := range m.session.VisibleColumns() {
		label := view.DateLabel(axis.Dates[col], specific)
		if len(label) > width {
			label = view.ShortDateLabel(axis.Dates[col], specific)
		}
		style := m.styles.DateHeaderStyle
		if col == m.cursor.Col {
			style = style.Foreground(m.styles.palette.Accent)
		}
		b.WriteString(style.Render(view.Center(label, width)))
	}
	return b.String()
}

func (m Model) renderRows() []string {
	s := m.session
	axis := s.Axis()
	mode := s.Mode()
	dragMode := s.DragMode()
	cols := s.VisibleColumns()
	width := m.layout.CellWidth

	end := min(len(axis.Times), m.rowOffset+m.layout.Rows)
	lines := make([]string, 0, max(0, end-m.rowOffset))
	for row := m.rowOffset; row < end; row++ {
		var b strings.Builder
		b.WriteString(m.styles.TimeStyle.Render(fmt.Sprintf("%-*s", timeColWidth, view.TimeLabel(axis.Times[row]))))
		for _, col := range cols {
			c := s.Cell(row, col)
			isCursor := row == m.cursor.Row && col == m.cursor.Col
			text := view.CellText(c, mode, s.BestTimes(), width)
			b.WriteString(m.styles.CellStyle(c, mode, dragMode, isCursor).Render(text))
		}
		lines = append(lines, b.String())
	}
	return lines
}

// renderParticipants lists participants with their filter key. Filtered
// participants are highlighted.
func (m Model) renderParticipants() string {
	s := m.session
	participants := s.Participants()
	if len(participants) == 0 {
		return m.styles.MutedStyle.Render("no responses yet, press e to add yours")
	}
	parts := make([]string, 0, len(participants))
	for i, p := range participants {
		label := p
		if i < 9 {
			label = strconv.Itoa(i+1) + " " + p
		}
		style := m.styles.ParticipantStyle
		if s.Filtered(p) {
			style = m.styles.ParticipantActiveStyle
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, "  ")
}

// statusLine shows the prompt, a status message, or the cell under the cursor.
func (m Model) statusLine() string {
	if m.screen == ScreenPrompt {
		return m.prompt.View()
	}
	if m.statusMsg != "" {
		return m.statusMsg
	}
	s := m.session
	c := s.Cell(m.cursor.Row, m.cursor.Col)
	if c.Slot == "" {
		return ""
	}
	axis := s.Axis()
	where := view.DateLabel(axis.Dates[m.cursor.Col], s.Event().IsSpecificDates) + " " + view.TimeLabel(axis.Times[m.cursor.Row])
	if len(c.Participants) == 0 {
		return where + ": nobody"
	}
	return fmt.Sprintf("%s: %s (%d/%d)", where, strings.Join(c.Participants, ", "), c.Count, c.Total)
}

func (m Model) statusStyle() lipgloss.Style {
	if m.statusMsg != "" && m.err != nil && strings.HasPrefix(m.statusMsg, "Error") {
		return m.styles.ErrorStyle
	}
	if m.screen == ScreenPrompt {
		return m.styles.PromptStyle
	}
	return m.styles.StatusStyle
}

func (m Model) renderHelp() string {
	h := m.help
	h.Width = m.width
	h.ShowAll = m.showHelp
	return h.View(m.keys)
}

func (m Model) renderEvents() string {
	lines := []string{
		view.SpreadLine(m.styles.TitleStyle.Render("overlap")+" pick an event", "", m.width),
		"",
	}
	for i, e := range m.events {
		label := fmt.Sprintf("%s  %s  %d dates, created %s",
			e.Name,
			m.styles.MutedStyle.Render(e.ID),
			len(e.Dates),
			humanize.Time(e.CreatedAt),
		)
		style := m.styles.ListItemStyle
		if i == m.eventCursor {
			style = m.styles.ListSelectedStyle
		}
		lines = append(lines, view.FitLine(style.Render(label), m.width))
	}
	lines = append(lines, "", m.styles.MutedStyle.Render("enter open · ↑/↓ move · esc back · q quit"))
	if m.statusMsg != "" {
		lines = append(lines, m.statusStyle().Render(m.statusMsg))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEmpty() string {
	msg := "Loading…"
	if !m.loading {
		msg = "No event open. Press o to pick one, or create one with `overlap create`."
	}
	lines := []string{m.styles.TitleStyle.Render("overlap"), "", msg}
	if m.statusMsg != "" {
		lines = append(lines, "", m.statusStyle().Render(m.statusMsg))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderInit() string {
	lines := []string{m.styles.TitleStyle.Render("overlap"), "", "First run setup:"}
	if m.initState.ConfigMissing {
		lines = append(lines, "  create config at "+m.initState.ConfigPath)
	}
	if m.initState.DBMissing {
		lines = append(lines, "  create database at "+m.initState.DBPath)
	}
	lines = append(lines, "", "Continue? [y/n]")
	if m.err != nil {
		lines = append(lines, "", m.styles.ErrorStyle.Render("Error: "+m.err.Error()))
	}
	return strings.Join(lines, "\n")
}
