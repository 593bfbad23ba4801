package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	Width            int
	ParticipantsLine string
	StatusLine       string
	HelpLine         string
	StatusStyle      lipgloss.Style
	Bg               lipgloss.Color
}

// RenderFooter renders the participants, status and help lines.
func RenderFooter(state FooterViewState) string {
	lines := []string{
		state.ParticipantsLine,
		footerLine(state.Width, state.StatusStyle, state.StatusLine),
		state.HelpLine,
	}
	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if state.Width <= 0 {
		return content
	}
	return PlaceBox(state.Width, lipgloss.Height(content), lipgloss.Bottom, content, state.Bg)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := width - frameW
	if contentWidth < 0 {
		contentWidth = 0
	}
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "")
		style = style.Width(contentWidth)
	}
	return style.Render(content)
}
