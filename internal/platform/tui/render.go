package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sweet-memories/internal/core"
)

var (
	plainStyle  = lipgloss.NewStyle()
	colorStyles = make(map[core.Color]lipgloss.Style)
)

// styleFor returns the lipgloss style of a screen color.
// The map is read-only after init, so concurrent SSH sessions share it.
func styleFor(c core.Color) lipgloss.Style {
	if s, ok := colorStyles[c]; ok {
		return s
	}
	return plainStyle
}

func init() {
	for c := range core.Color(255) {
		if code := c.ANSI(); code != "" {
			colorStyles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
		}
	}
}

// RenderScreen converts a Screen buffer to a styled string.
// Runs of cells sharing a color are rendered with one style call.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}
