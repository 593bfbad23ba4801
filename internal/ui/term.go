package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the CLI.
var (
	// Heat levels, from one person up to everyone
	colorHeatLow  = color.New(color.FgGreen)
	colorHeatMid  = color.New(color.FgBlack, color.BgGreen)
	colorHeatHigh = color.New(color.FgBlack, color.BgHiGreen, color.Bold)

	// Best times: yellow to make them pop
	colorBest = color.New(color.FgYellow, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Participants
	colorName = color.New(color.FgCyan)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatHeat colors text by availability intensity in [0, 1].
func formatHeat(s string, intensity float64) string {
	switch {
	case intensity <= 0:
		return colorMuted.Sprint(s)
	case intensity < 0.5:
		return colorHeatLow.Sprint(s)
	case intensity < 1:
		return colorHeatMid.Sprint(s)
	default:
		return colorHeatHigh.Sprint(s)
	}
}

// formatBest formats text for best-time output.
func formatBest(s string) string {
	return colorBest.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatName formats a participant alias.
func formatName(s string) string {
	return colorName.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
