package snake

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	glyphBlock = '█'
	glyphEmpty = '·'
)

// boardLayout is where the playfield sits on screen.
type boardLayout struct {
	x, y      int // Top-left corner of the border
	w, h      int // Border included
	tileWidth int
}

func (g *Game) layout() boardLayout {
	tw := g.display.TileWidth
	w := g.grid.Width()*tw + 2
	h := g.grid.Height() + 2
	return boardLayout{
		x:         (g.screenW - w) / 2,
		y:         (g.screenH-h)/2 + 1,
		w:         w,
		h:         h,
		tileWidth: tw,
	}
}

// TooSmall reports whether the terminal cannot hold the board.
func (g *Game) TooSmall() bool {
	l := g.layout()
	minW := max(l.w, buttonWidth+4)
	return g.screenW < minW || g.screenH < l.h+3
}

// tileCell maps a tile to the screen cell of its left edge. World y grows
// upwards, screen y grows downwards.
func (l boardLayout) tileCell(grid core.Grid, t core.Tile) (int, int) {
	x := l.x + 1 + (t.X+grid.HalfLength)*l.tileWidth
	y := l.y + 1 + (grid.HalfHeight - t.Y)
	return x, y
}

// Render draws the current screen into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.TooSmall() {
		msg := "Window too small"
		dst.DrawTextCentered(dst.Height()/2, msg, g.palette.Text)
		return
	}

	switch g.state.Phase {
	case PhaseTitle:
		g.renderTitle(dst)
	case PhasePlaying:
		g.renderBoard(dst)
		if g.state.Overlay != OverlayNone {
			g.renderPanel(dst)
		}
	}
	if g.state.Overlay == OverlaySettings && g.state.Phase == PhaseTitle {
		g.renderPanel(dst)
	}
}

func (g *Game) renderTitle(dst *core.Screen) {
	if g.state.Overlay != OverlaySettings {
		buttons := g.Buttons()
		title := "s n a k e"
		dst.DrawTextColored((g.screenW-len(title))/2, buttons[0].Y-3, title, g.palette.Head)
		g.renderButtons(dst)

		if g.lastStats.Moves > 0 {
			last := fmt.Sprintf("last game: %d points in %d moves", g.lastStats.Score, g.lastStats.Moves)
			dst.DrawTextColored((g.screenW-len(last))/2, buttons[len(buttons)-1].Y+3, last, g.palette.Text)
		}
	}
}

func (g *Game) renderBoard(dst *core.Screen) {
	l := g.layout()
	grid := g.grid

	dst.DrawBox(core.NewRect(l.x, l.y, l.w, l.h))

	empty := core.LerpRGB(core.RGBFromRGBA(g.palette.Clear), g.palette.Text, 0.3)
	for _, t := range grid.Tiles() {
		x, y := l.tileCell(grid, t)
		dst.SetColored(x, y, glyphEmpty, empty)
	}

	g.renderActor(dst, l, g.resource.Pos, g.resource.Color)
	active := g.player.Tail.Active()
	for i := len(active) - 1; i >= 0; i-- {
		g.renderActor(dst, l, active[i].Pos, active[i].Color)
	}
	g.renderActor(dst, l, g.player.Pos, g.player.Color)

	hud := fmt.Sprintf("Score: %d  Moves: %d  Time: %s",
		g.stats.Score, g.stats.Moves, g.stats.Elapsed(g.now()).Round(100*time.Millisecond))
	dst.DrawTextColored(l.x, l.y-1, hud, g.palette.Text)

	if g.lastStats.Moves > 0 {
		last := fmt.Sprintf("Last: %d", g.lastStats.Score)
		dst.DrawTextColored(l.x+l.w-len(last), l.y+l.h, last, g.palette.Text)
	}
	if g.state.Debug {
		dst.DrawTextColored(l.x, l.y+l.h, "DEBUG", g.palette.Button)
	}
}

func (g *Game) renderActor(dst *core.Screen, l boardLayout, pos mgl32.Vec2, c core.RGB) {
	t := g.grid.WorldToTile(pos)
	if !g.grid.Contains(t) {
		return
	}
	x, y := l.tileCell(g.grid, t)
	for i := 0; i < l.tileWidth; i++ {
		dst.SetColored(x+i, y, glyphBlock, c)
	}
}

// renderPanel draws a framed box behind the menu buttons.
func (g *Game) renderPanel(dst *core.Screen) {
	buttons := g.Buttons()
	first, last := buttons[0], buttons[len(buttons)-1]
	panel := core.NewRect(first.X-2, first.Y-2, first.W+4, last.Bottom()-first.Y+4)

	dst.DrawRect(panel, ' ')
	dst.DrawBox(panel)

	title := " Paused "
	if g.state.Overlay == OverlaySettings {
		title = " Settings "
	}
	dst.DrawTextColored(panel.X+(panel.W-len(title))/2, panel.Y, title, g.palette.Text)

	g.renderButtons(dst)
}

func (g *Game) renderButtons(dst *core.Screen) {
	items := g.Menu()
	for i, r := range g.Buttons() {
		text := g.itemText(items[i])
		c := g.palette.Text
		if i == g.menuCursor {
			text = "> " + text + " <"
			c = g.palette.Button
		}
		x := r.X + (r.W-len([]rune(text)))/2
		dst.DrawTextColored(x, r.Y, text, c)
	}
}
