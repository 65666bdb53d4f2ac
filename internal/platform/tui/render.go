package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sweeper/internal/core"
)

// Palette maps core.Color to lipgloss styles for one output.
// SSH sessions get their own palette so each client sees its own color profile.
type Palette map[core.Color]lipgloss.Style

// paletteCodes holds the ANSI color for every core.Color.
var paletteCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// NewPalette builds a palette for the given renderer.
// A nil renderer means the process-wide default renderer.
func NewPalette(r *lipgloss.Renderer) Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := Palette{core.ColorDefault: r.NewStyle()}
	for c, code := range paletteCodes {
		style := r.NewStyle().Foreground(lipgloss.Color(code))
		// Digits and the HUD read better in bold
		if c >= core.ColorBrightRed && c <= core.ColorBrightWhite {
			style = style.Bold(true)
		}
		p[c] = style
	}
	return p
}

// style returns the style for a color, falling back to the default style.
func (p Palette) style(c core.Color) lipgloss.Style {
	if s, ok := p[c]; ok {
		return s
	}
	return p[core.ColorDefault]
}

// Render converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one styled run.
func (p Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Blank runs need no escape codes
			text := run.String()
			if strings.TrimSpace(text) == "" {
				sb.WriteString(text)
				continue
			}
			sb.WriteString(p.style(color).Render(text))
		}
	}
	return sb.String()
}

// RenderScreen renders a screen with the default palette.
func RenderScreen(s *core.Screen) string {
	return defaultPalette().Render(s)
}

var defaultPalette = sync.OnceValue(func() Palette {
	return NewPalette(nil)
})
