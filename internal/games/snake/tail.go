package snake

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Segment is one trailing body unit following the head.
type Segment struct {
	Pos   mgl32.Vec2
	Prev  mgl32.Vec2
	Model mgl32.Mat4 // Accumulated translation, kept in step with Pos
	Color core.RGB
}

// Chain holds tail segments in storage sized once for the largest tail
// the grid can hold. Only the first length segments are active.
type Chain struct {
	segments []Segment
	length   int
}

// NewChain allocates a chain with room for capacity segments.
func NewChain(capacity int) *Chain {
	c := &Chain{segments: make([]Segment, capacity)}
	c.Reset()
	return c
}

// Len returns the number of active segments.
func (c *Chain) Len() int {
	return c.length
}

// Cap returns the fixed capacity.
func (c *Chain) Cap() int {
	return len(c.segments)
}

// Active returns the active segments. The slice aliases chain storage.
func (c *Chain) Active() []Segment {
	return c.segments[:c.length]
}

// At returns segment i of the full storage, active or not.
func (c *Chain) At(i int) Segment {
	return c.segments[i]
}

// Grow activates one more segment. The new segment keeps whatever it last
// stored and is pulled into place by the next Follow.
// Returns false when the chain is already at capacity.
func (c *Chain) Grow() bool {
	if c.length >= len(c.segments) {
		return false
	}
	c.length++
	return true
}

// Follow moves every active segment to where its predecessor was on the
// previous tick. Segment 0 follows the head's previous position.
func (c *Chain) Follow(headPrev mgl32.Vec2) {
	if c.length == 0 {
		return
	}

	c.segments[0].moveTo(headPrev)
	for i := 1; i < c.length; i++ {
		c.segments[i].moveTo(c.segments[i-1].Prev)
	}
}

func (s *Segment) moveTo(target mgl32.Vec2) {
	delta := target.Sub(s.Pos)
	s.Prev = s.Pos
	s.Pos = s.Pos.Add(delta)
	s.Model = translate(s.Model, delta)
}

// Occupies reports whether any active segment is on pos.
func (c *Chain) Occupies(pos mgl32.Vec2) bool {
	for _, s := range c.Active() {
		if core.PositionsEqual(s.Pos, pos) {
			return true
		}
	}
	return false
}

// Recolor applies a linear gradient from start towards end across the whole
// storage, inactive segments included.
func (c *Chain) Recolor(start, end core.RGB) {
	n := len(c.segments)
	if n == 0 {
		return
	}
	step := end.Sub(start).Mul(1 / float32(n))
	color := start
	for i := range c.segments {
		color = color.Add(step)
		c.segments[i].Color = color
	}
}

// Reset deactivates all segments and returns them to the origin.
// Storage is reused.
func (c *Chain) Reset() {
	for i := range c.segments {
		c.segments[i].Pos = mgl32.Vec2{}
		c.segments[i].Prev = mgl32.Vec2{}
		c.segments[i].Model = mgl32.Ident4()
	}
	c.length = 0
}

// translate applies a world-space displacement to a model matrix.
func translate(m mgl32.Mat4, d mgl32.Vec2) mgl32.Mat4 {
	return m.Mul4(mgl32.Translate3D(d.X(), d.Y(), 0))
}

// modelPosition returns the translation part of a model matrix.
func modelPosition(m mgl32.Mat4) mgl32.Vec2 {
	col := m.Col(3)
	return mgl32.Vec2{col.X(), col.Y()}
}
