package snake

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrNoFreeTile is returned when every tile is covered by the snake.
var ErrNoFreeTile = errors.New("snake: no free tile for resource")

// exclusions lists the positions the resource must avoid: the head, the
// head's previous tile (segment 0 lands there on this tick) and every
// active tail segment.
func (g *Game) exclusions() []mgl32.Vec2 {
	active := g.player.Tail.Active()
	out := make([]mgl32.Vec2, 0, len(active)+2)
	out = append(out, g.player.Pos, g.player.Prev)
	for _, s := range active {
		out = append(out, s.Pos)
	}
	return out
}

func excluded(pos mgl32.Vec2, set []mgl32.Vec2) bool {
	for _, p := range set {
		if core.PositionsEqual(pos, p) {
			return true
		}
	}
	return false
}

// randomTile samples a tile uniformly within the grid bounds.
func (g *Game) randomTile() core.Tile {
	return core.Tile{
		X: g.rng.Intn(g.grid.Width()) - g.grid.HalfLength,
		Y: g.rng.Intn(g.grid.Height()) - g.grid.HalfHeight,
	}
}

// relocateResource moves the resource to a random free tile. It samples up
// to maxRetries times, then falls back to choosing among all free tiles.
func (g *Game) relocateResource() error {
	excl := g.exclusions()

	for attempt := 0; attempt < g.maxRetries; attempt++ {
		tile := g.randomTile()
		pos := g.grid.TileToWorld(tile)
		if excluded(pos, excl) {
			g.logger.Debug("resource sample on occupied tile", "tile", tile, "attempt", attempt+1)
			continue
		}
		g.resource.moveTo(pos)
		g.logger.Debug("resource moved", "tile", tile)
		return nil
	}

	var free []core.Tile
	for _, tile := range g.grid.Tiles() {
		if !excluded(g.grid.TileToWorld(tile), excl) {
			free = append(free, tile)
		}
	}
	if len(free) == 0 {
		return ErrNoFreeTile
	}

	tile := free[g.rng.Intn(len(free))]
	g.resource.moveTo(g.grid.TileToWorld(tile))
	g.logger.Debug("resource moved after exhaustive scan", "tile", tile, "free", len(free))
	return nil
}

// PlaceResource moves the resource to a specific tile.
// Used by the debug overlay; the exclusion set is not consulted.
func (g *Game) PlaceResource(tile core.Tile) error {
	if !g.grid.Contains(tile) {
		return fmt.Errorf("snake: tile %v outside grid", tile)
	}
	g.resource.moveTo(g.grid.TileToWorld(tile))
	g.logger.Info("resource moved", "tile", tile)
	return nil
}

// MoveResource shifts the resource by whole tiles from where it is now.
func (g *Game) MoveResource(dx, dy int) error {
	return g.PlaceResource(g.grid.WorldToTile(g.resource.Pos).Add(dx, dy))
}
