package snake

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Player is the snake's head and the tail it drags.
type Player struct {
	Pos           mgl32.Vec2
	Prev          mgl32.Vec2
	Model         mgl32.Mat4
	Color         core.RGB
	LastTailColor core.RGB // Gradient end for the tail
	Tail          *Chain
}

// move records the current position as previous and steps by delta.
func (p *Player) move(delta mgl32.Vec2) {
	p.Prev = p.Pos
	p.Pos = p.Pos.Add(delta)
	p.Model = translate(p.Model, delta)
}

// reset puts the head back on the origin tile.
func (p *Player) reset() {
	p.Pos = mgl32.Vec2{}
	p.Prev = mgl32.Vec2{}
	p.Model = mgl32.Ident4()
	p.Tail.Reset()
}

// Resource is the item the player eats to grow and score.
type Resource struct {
	Pos   mgl32.Vec2
	Model mgl32.Mat4
	Color core.RGB
}

// moveTo relocates the resource, going through the origin the way the
// model transform is tracked.
func (r *Resource) moveTo(pos mgl32.Vec2) {
	r.Model = translate(r.Model, r.Pos.Mul(-1))
	r.Model = translate(r.Model, pos)
	r.Pos = pos
}

// Stats tracks the current session.
type Stats struct {
	Score     int // Resources eaten
	Moves     int
	StartedAt time.Time
	EndedAt   time.Time // Zero while the session is running
}

// Elapsed returns how long the session ran, up to now if still running.
func (s Stats) Elapsed(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	if !s.EndedAt.IsZero() {
		return s.EndedAt.Sub(s.StartedAt)
	}
	return now.Sub(s.StartedAt)
}
