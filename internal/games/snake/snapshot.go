package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snapshot captures the observable game state for determinism testing.
type Snapshot struct {
	Phase    Phase
	Overlay  Overlay
	Debug    bool
	Flags    Flags
	Head     core.Tile
	HeadPrev core.Tile
	Resource core.Tile
	Tail     []core.Tile // Active segments only
	Score    int
	Moves    int
	Started  time.Time
	Seed     int64
	Exited   bool
}

// Snapshot returns a copy of the current state in tile coordinates.
func (g *Game) Snapshot() Snapshot {
	active := g.player.Tail.Active()
	tail := make([]core.Tile, len(active))
	for i, s := range active {
		tail[i] = g.grid.WorldToTile(s.Pos)
	}

	return Snapshot{
		Phase:    g.state.Phase,
		Overlay:  g.state.Overlay,
		Debug:    g.state.Debug,
		Flags:    g.state.Flags(),
		Head:     g.grid.WorldToTile(g.player.Pos),
		HeadPrev: g.grid.WorldToTile(g.player.Prev),
		Resource: g.grid.WorldToTile(g.resource.Pos),
		Tail:     tail,
		Score:    g.stats.Score,
		Moves:    g.stats.Moves,
		Started:  g.stats.StartedAt,
		Seed:     g.seed,
		Exited:   g.exited,
	}
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s.Tail) != len(o.Tail) {
		return false
	}
	for i := range s.Tail {
		if s.Tail[i] != o.Tail[i] {
			return false
		}
	}
	return s.Phase == o.Phase && s.Overlay == o.Overlay && s.Debug == o.Debug &&
		s.Head == o.Head && s.HeadPrev == o.HeadPrev && s.Resource == o.Resource &&
		s.Score == o.Score && s.Moves == o.Moves && s.Started.Equal(o.Started) &&
		s.Seed == o.Seed && s.Exited == o.Exited
}
