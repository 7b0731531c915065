package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the tolerance for comparing world coordinates.
// Anything closer than this along both axes is the same tile.
const Epsilon float32 = 0.1

// Tile identifies one discrete cell of the playable grid.
// The origin tile (0, 0) is the centre; Y grows upward.
type Tile struct {
	X, Y int
}

// String returns a string representation of the tile.
func (t Tile) String() string {
	return fmt.Sprintf("[%d, %d]", t.X, t.Y)
}

// Add returns the tile offset by (dx, dy).
func (t Tile) Add(dx, dy int) Tile {
	return Tile{X: t.X + dx, Y: t.Y + dy}
}

// Grid describes the bounded playfield and its mapping to world space.
// Tiles span [-HalfLength, HalfLength] horizontally and
// [-HalfHeight, HalfHeight] vertically.
type Grid struct {
	HalfHeight int
	HalfLength int
	Scale      float32 // World units per tile
}

// NewGrid creates a grid with the given half-extents and tile scale.
func NewGrid(halfHeight, halfLength int, scale float32) Grid {
	return Grid{HalfHeight: halfHeight, HalfLength: halfLength, Scale: scale}
}

// Width returns the number of tile columns.
func (g Grid) Width() int {
	return 2*g.HalfLength + 1
}

// Height returns the number of tile rows.
func (g Grid) Height() int {
	return 2*g.HalfHeight + 1
}

// Area returns the total number of tiles.
func (g Grid) Area() int {
	return g.Width() * g.Height()
}

// TailCapacity returns the longest tail the grid can ever hold.
// Four quadrants of H*L tiles, plus the two axes, plus the origin tile.
func (g Grid) TailCapacity() int {
	h, l := g.HalfHeight, g.HalfLength
	return h*l*4 + (h*2 + l*2) + 1
}

// Contains reports whether the tile lies inside the grid bounds.
func (g Grid) Contains(t Tile) bool {
	return t.X >= -g.HalfLength && t.X <= g.HalfLength &&
		t.Y >= -g.HalfHeight && t.Y <= g.HalfHeight
}

// TileToWorld converts a tile to its world position.
func (g Grid) TileToWorld(t Tile) mgl32.Vec2 {
	return mgl32.Vec2{float32(t.X) * g.Scale, float32(t.Y) * g.Scale}
}

// WorldToTile converts a world position to the nearest tile.
func (g Grid) WorldToTile(p mgl32.Vec2) Tile {
	return Tile{
		X: int(math.Round(float64(p.X() / g.Scale))),
		Y: int(math.Round(float64(p.Y() / g.Scale))),
	}
}

// Step returns the world displacement of moving (dx, dy) tiles.
func (g Grid) Step(dx, dy int) mgl32.Vec2 {
	return mgl32.Vec2{g.Scale * float32(dx), g.Scale * float32(dy)}
}

// Tiles returns every tile in row-major order, top row first.
func (g Grid) Tiles() []Tile {
	tiles := make([]Tile, 0, g.Area())
	for y := g.HalfHeight; y >= -g.HalfHeight; y-- {
		for x := -g.HalfLength; x <= g.HalfLength; x++ {
			tiles = append(tiles, Tile{X: x, Y: y})
		}
	}
	return tiles
}

// FloatsEqual reports whether a and b differ by less than Epsilon.
func FloatsEqual(a, b float32) bool {
	return float32(math.Abs(float64(a-b))) < Epsilon
}

// PositionsEqual reports whether two world positions refer to the same tile.
func PositionsEqual(a, b mgl32.Vec2) bool {
	return FloatsEqual(a.X(), b.X()) && FloatsEqual(a.Y(), b.Y())
}
