package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// styleCache maps cell colours to lipgloss styles.
type styleCache map[core.RGB]lipgloss.Style

func (c styleCache) style(cell core.Cell) lipgloss.Style {
	if !cell.Colored {
		return lipgloss.NewStyle()
	}
	if s, ok := c[cell.Color]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(core.RGBToHex(cell.Color)))
	c[cell.Color] = s
	return s
}

var styles = styleCache{}

// sameInk reports whether two cells render with the same style.
func sameInk(a, b core.Cell) bool {
	if a.Colored != b.Colored {
		return false
	}
	return !a.Colored || a.Color == b.Color
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if !sameInk(cell, start) {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styles.style(start).Render(run.String()))
		}
	}
	return sb.String()
}
