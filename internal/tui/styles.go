package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/overlap/internal/aggregate"
	"github.com/javiermolinar/overlap/internal/dragselect"
	"github.com/javiermolinar/overlap/internal/grid"
	"github.com/javiermolinar/overlap/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	TitleStyle      lipgloss.Style
	HeaderStyle     lipgloss.Style
	DateHeaderStyle lipgloss.Style
	PageStyle       lipgloss.Style
	TimeStyle       lipgloss.Style

	ModeViewStyle lipgloss.Style
	ModeEditStyle lipgloss.Style
	BestStyle     lipgloss.Style

	// Cells
	EmptyCellStyle lipgloss.Style
	CursorStyle    lipgloss.Style

	// Participants bar
	ParticipantStyle       lipgloss.Style
	ParticipantActiveStyle lipgloss.Style

	// Event picker
	ListItemStyle     lipgloss.Style
	ListSelectedStyle lipgloss.Style

	StatusStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
	PromptStyle  lipgloss.Style
	HelpKeyStyle lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	return &Styles{
		palette: p,

		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Padding(0, 1),
		HeaderStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.BgHighlight),
		DateHeaderStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Fg),
		PageStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		TimeStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),

		ModeViewStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnAvailable).
			Background(p.Available).
			Padding(0, 1),
		ModeEditStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnMine).
			Background(p.Mine).
			Padding(0, 1),
		BestStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Best),

		EmptyCellStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.BgHighlight),
		CursorStyle: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		ParticipantStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		ParticipantActiveStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Available),

		ListItemStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			PaddingLeft(2),
		ListSelectedStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			PaddingLeft(2),

		StatusStyle: lipgloss.NewStyle().
			Foreground(p.Accent),
		ErrorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Warning),
		MutedStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		PromptStyle: lipgloss.NewStyle().
			Foreground(p.Fg),
		HelpKeyStyle: lipgloss.NewStyle().
			Foreground(p.Accent),
	}
}

// CellStyle styles one grid cell.
func (s *Styles) CellStyle(c grid.CellView, mode grid.Mode, dragMode dragselect.Mode, isCursor bool) lipgloss.Style {
	p := s.palette
	style := s.EmptyCellStyle

	if bg := aggregate.Shade(p.NeutralHex, p.AvailableHex, c.Intensity); bg != "" {
		style = style.Background(lipgloss.Color(bg)).Foreground(p.TextOnAvailable)
	}

	if mode == grid.ModeEdit {
		switch {
		case c.InDrag && dragMode == dragselect.ModeAdding:
			style = style.Background(p.DragAdd).Foreground(p.Fg)
		case c.InDrag && dragMode == dragselect.ModeRemoving:
			style = style.Background(p.DragRemove).Foreground(p.Fg)
		case c.Selected:
			style = style.Background(p.Mine).Foreground(p.TextOnMine)
		}
		if c.InDrag && c.Borders.Bottom {
			style = style.Underline(true)
		}
		if c.InDrag && c.Borders.Top {
			style = style.Bold(true)
		}
	}

	if isCursor {
		style = style.Inherit(s.CursorStyle)
		if c.Intensity <= 0 && !c.Selected {
			style = style.Background(p.BgSelection)
		}
	}
	return style
}
