package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// debugView is the scene inspector shown while debug mode is on.
type debugView struct {
	table table.Model
	tail  int // Tail segment being inspected
}

func newDebugView() debugView {
	columns := []table.Column{
		{Title: "Field", Width: 14},
		{Title: "Value", Width: 24},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return debugView{table: t}
}

// selectTail moves the inspected segment, wrapping within capacity.
func (d *debugView) selectTail(delta, capacity int) {
	if capacity == 0 {
		return
	}
	d.tail = (d.tail + delta + capacity) % capacity
}

// refresh rebuilds the rows from the game state.
func (d *debugView) refresh(g *snake.Game) {
	d.table.SetRows(debugRows(g, d.tail))
}

func debugRows(g *snake.Game, tail int) []table.Row {
	grid := g.Grid()
	p := g.Player()
	res := g.Resource()
	stats := g.Stats()
	seg := p.Tail.At(tail)

	fps := 0.0
	if ft := g.FrameTime(); ft > 0 {
		fps = float64(time.Second) / float64(ft)
	}

	return []table.Row{
		{"state", g.State().Flags().String()},
		{"half height", fmt.Sprintf("%d", grid.HalfHeight)},
		{"half length", fmt.Sprintf("%d", grid.HalfLength)},
		{"tail capacity", fmt.Sprintf("%d", grid.TailCapacity())},
		{"epsilon", fmt.Sprintf("%g", core.Epsilon)},
		{"tile scale", fmt.Sprintf("%g", grid.Scale)},
		{"head", vec(p.Pos)},
		{"head prev", vec(p.Prev)},
		{"head colour", core.RGBToHex(p.Color)},
		{"tail end", core.RGBToHex(p.LastTailColor)},
		{"resource", vec(res.Pos)},
		{"tail length", fmt.Sprintf("%d", p.Tail.Len())},
		{fmt.Sprintf("tail #%d", tail), vec(seg.Pos) + " / " + vec(seg.Prev)},
		{"tail colour", core.RGBToHex(seg.Color)},
		{"score", fmt.Sprintf("%d", stats.Score)},
		{"moves", fmt.Sprintf("%d", stats.Moves)},
		{"elapsed", stats.Elapsed(g.Now()).Round(time.Millisecond).String()},
		{"frametime", fmt.Sprintf("%.3f ms (%.1f FPS)", float64(g.FrameTime())/float64(time.Millisecond), fps)},
		{"seed", fmt.Sprintf("%d", g.Seed())},
	}
}

func vec(v mgl32.Vec2) string {
	return fmt.Sprintf("%.1f, %.1f", v.X(), v.Y())
}

var debugPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// View renders the inspector panel.
func (d debugView) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("Scene")
	return debugPanelStyle.Render(title + "\n" + d.table.View())
}
