package tui

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Screenshot image layout in pixels
const (
	shotTileSize = 24
	shotMargin   = 12
)

// DefaultScreenshotDir returns ~/.snake/screenshots.
func DefaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".snake", "screenshots")
	}
	return filepath.Join(home, ".snake", "screenshots")
}

// SaveScreenshot writes the screen as text and the board as a PNG.
// It returns both paths.
func SaveScreenshot(dir string, g *snake.Game, screen *core.Screen, at time.Time) (txtPath, pngPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("screenshot: create dir: %w", err)
	}

	base := filepath.Join(dir, "snake_"+at.Format("20060102_150405"))
	txtPath = base + ".txt"
	pngPath = base + ".png"

	g.Render(screen)
	if err := os.WriteFile(txtPath, []byte(screen.String()), 0o600); err != nil {
		return "", "", fmt.Errorf("screenshot: write text: %w", err)
	}

	if err := gg.SavePNG(pngPath, RenderBoard(g)); err != nil {
		return txtPath, "", fmt.Errorf("screenshot: write png: %w", err)
	}
	return txtPath, pngPath, nil
}

// RenderBoard draws the playfield as an image. Actors are placed through
// their model transforms.
func RenderBoard(g *snake.Game) image.Image {
	grid := g.Grid()
	pal := g.Palette()
	w := grid.Width()*shotTileSize + 2*shotMargin
	h := grid.Height()*shotTileSize + 2*shotMargin

	dc := gg.NewContext(w, h)
	bg := pal.Clear
	dc.SetRGBA(float64(bg.X()), float64(bg.Y()), float64(bg.Z()), float64(bg.W()))
	dc.Clear()

	// Grid lines
	line := core.LerpRGB(core.RGBFromRGBA(bg), pal.Text, 0.2)
	setRGB(dc, line)
	dc.SetLineWidth(1)
	for i := 0; i <= grid.Width(); i++ {
		x := float64(shotMargin + i*shotTileSize)
		dc.DrawLine(x, shotMargin, x, float64(h-shotMargin))
	}
	for i := 0; i <= grid.Height(); i++ {
		y := float64(shotMargin + i*shotTileSize)
		dc.DrawLine(shotMargin, y, float64(w-shotMargin), y)
	}
	dc.Stroke()

	res := g.Resource()
	drawActor(dc, grid, res.Model, res.Color)

	p := g.Player()
	active := p.Tail.Active()
	for i := len(active) - 1; i >= 0; i-- {
		drawActor(dc, grid, active[i].Model, active[i].Color)
	}
	drawActor(dc, grid, p.Model, p.Color)

	return dc.Image()
}

// drawActor fills one tile at the model's translation.
func drawActor(dc *gg.Context, grid core.Grid, model mgl32.Mat4, c core.RGB) {
	origin := model.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	tile := grid.WorldToTile(mgl32.Vec2{origin.X(), origin.Y()})
	if !grid.Contains(tile) {
		return
	}

	x, y := tilePixel(grid, tile)
	dc.Push()
	dc.Translate(x, y)
	setRGB(dc, c)
	dc.DrawRectangle(2, 2, shotTileSize-4, shotTileSize-4)
	dc.Fill()
	dc.Pop()
}

// tilePixel returns the top-left pixel of a tile. Image y grows downwards.
func tilePixel(grid core.Grid, t core.Tile) (float64, float64) {
	x := shotMargin + (t.X+grid.HalfLength)*shotTileSize
	y := shotMargin + (grid.HalfHeight-t.Y)*shotTileSize
	return float64(x), float64(y)
}

func setRGB(dc *gg.Context, c core.RGB) {
	dc.SetRGB(float64(c.X()), float64(c.Y()), float64(c.Z()))
}
