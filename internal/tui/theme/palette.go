package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Available   lipgloss.Color
	Mine        lipgloss.Color
	Best        lipgloss.Color
	Warning     lipgloss.Color

	// Heatmap endpoints as hex, blended per cell.
	NeutralHex   string
	AvailableHex string

	// Pending drag fills.
	DragAdd    lipgloss.Color
	DragRemove lipgloss.Color

	TextOnAccent    lipgloss.Color
	TextOnAvailable lipgloss.Color
	TextOnMine      lipgloss.Color

	Light bool
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	isLight := isLightTheme(t.Bg)
	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Available:   lipgloss.Color(t.Available),
		Mine:        lipgloss.Color(t.Mine),
		Best:        lipgloss.Color(t.Best),
		Warning:     lipgloss.Color(t.Warning),

		NeutralHex:   t.BgHighlight,
		AvailableHex: t.Available,

		DragAdd:    lipgloss.Color(blendColors(t.Mine, t.Bg, 0.35)),
		DragRemove: lipgloss.Color(blendColors(t.Warning, t.Bg, 0.45)),

		TextOnAccent:    lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnAvailable: lipgloss.Color(chooseTextColor(t.Available, t.Bg, t.Fg)),
		TextOnMine:      lipgloss.Color(chooseTextColor(t.Mine, t.Bg, t.Fg)),

		Light: isLight,
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// chooseTextColor picks whichever of the two text colors contrasts more with bg.
func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	return 0.2126*srgbToLinear(c.R) + 0.7152*srgbToLinear(c.G) + 0.0722*srgbToLinear(c.B)
}

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// blendColors mixes a towards b by ratio. Invalid input returns a unchanged.
func blendColors(a, b string, ratio float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	ratio = math.Max(0, math.Min(1, ratio))
	return ca.BlendRgb(cb, ratio).Clamped().Hex()
}
