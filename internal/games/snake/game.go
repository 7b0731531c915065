// Package snake implements the grid snake simulation: head movement, the
// trailing tail chain, resource placement, and the title/pause/settings
// controller that drives them.
package snake

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Palette holds the colours the game draws with.
type Palette struct {
	Head     core.RGB
	TailEnd  core.RGB
	Resource core.RGB
	Text     core.RGB
	Button   core.RGB
	Clear    core.RGBA
}

// PaletteFrom builds a palette from the colour section of the config.
func PaletteFrom(c config.ColorConfig) Palette {
	return Palette{
		Head:     c.HeadRGB(),
		TailEnd:  c.TailEndRGB(),
		Resource: c.ResourceRGB(),
		Text:     c.TextRGB(),
		Button:   c.ButtonRGB(),
		Clear:    c.ClearRGBA(),
	}
}

// Display holds user-adjustable presentation settings.
type Display struct {
	TileWidth int // Cells per tile horizontally, 1 or 2
	ShowHelp  bool
}

// TickResult reports what a single move did.
type TickResult struct {
	Moved    bool
	Ate      bool
	GameOver bool
}

// Game is the whole simulation state. It is not safe for concurrent use.
type Game struct {
	grid       core.Grid
	palette    Palette
	display    Display
	maxRetries int

	logger *log.Logger
	saver  SessionSaver
	now    func() time.Time

	seed int64
	rng  *rand.Rand

	player    Player
	resource  Resource
	stats     Stats
	lastStats Stats

	state      State
	menuCursor int

	screenW   int
	screenH   int
	frameTime time.Duration
	exited    bool
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// WithSaver sets the hook invoked when quitting mid-session.
func WithSaver(s SessionSaver) Option {
	return func(g *Game) {
		g.saver = s
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

// New creates a game for the given configuration. Tail storage is
// allocated once here for the largest tail the grid can hold.
func New(cfg config.SnakeConfig, opts ...Option) *Game {
	grid := cfg.GridGeometry()
	palette := PaletteFrom(cfg.Colors)

	g := &Game{
		grid:       grid,
		palette:    palette,
		display:    Display{TileWidth: cfg.Display.TileWidth, ShowHelp: cfg.Display.ShowHelp},
		maxRetries: cfg.Placement.MaxRetries,
		logger:     log.New(io.Discard),
		now:        time.Now,
		player: Player{
			Model:         mgl32.Ident4(),
			Color:         palette.Head,
			LastTailColor: palette.TailEnd,
			Tail:          NewChain(grid.TailCapacity()),
		},
		resource: Resource{
			Model: mgl32.Ident4(),
			Color: palette.Resource,
		},
		screenW: core.DefaultConfig().ScreenW,
		screenH: core.DefaultConfig().ScreenH,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.saver == nil {
		g.saver = LogSaver{Logger: g.logger}
	}
	if g.maxRetries <= 0 {
		g.maxRetries = config.DefaultSnakeConfig().Placement.MaxRetries
	}
	if g.display.TileWidth <= 0 {
		g.display.TileWidth = 1
	}

	g.rng = rand.New(rand.NewSource(g.seed))
	g.player.Tail.Recolor(g.player.Color, g.player.LastTailColor)
	return g
}

// Init prepares the game for a run and shows the title screen.
func (g *Game) Init(rc core.RuntimeConfig) {
	g.seed = rc.Seed
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.state = State{Phase: PhaseTitle}
	g.menuCursor = 0
	g.exited = false
	g.Reset()
	g.logger.Debug("game initialised", "seed", g.seed, "grid", g.grid.Width(), "rows", g.grid.Height(), "capacity", g.grid.TailCapacity())
}

// Reset zeroes the session: stats, tail, head on the origin, and the
// resource on the tile the session seed picks first. Calling it twice in a
// row leaves the same state as calling it once.
func (g *Game) Reset() {
	g.rng = rand.New(rand.NewSource(g.seed))
	g.stats = Stats{StartedAt: g.now()}
	g.player.reset()
	g.player.Tail.Recolor(g.player.Color, g.player.LastTailColor)

	g.resource.Pos = mgl32.Vec2{}
	g.resource.Model = mgl32.Ident4()
	if err := g.relocateResource(); err != nil {
		g.logger.Error("resource placement failed on reset", "err", err)
	}
	g.logger.Info("game reset", "resource", g.grid.WorldToTile(g.resource.Pos))
}

// NewGame starts a session from the title screen.
func (g *Game) NewGame() {
	if g.state.Phase != PhaseTitle {
		return
	}
	g.setState(State{Phase: PhasePlaying, Debug: g.state.Debug})
	g.Reset()
	g.logger.Info("new game started")
}

// MovePlayer steps the head by whole tiles and evaluates the tick.
// Moves are ignored unless a session is in progress with no overlay, and
// moves that would leave the grid are ignored too.
func (g *Game) MovePlayer(dx, dy int) TickResult {
	if !g.state.AcceptsMoves() {
		return TickResult{}
	}
	target := g.grid.WorldToTile(g.player.Pos).Add(dx, dy)
	if !g.grid.Contains(target) {
		g.logger.Debug("move blocked by grid edge", "tile", target)
		return TickResult{}
	}

	g.player.move(g.grid.Step(dx, dy))
	g.stats.Moves++
	result := g.tick()
	result.Moved = true
	return result
}

// tick evaluates collisions against the tail as it stood before this move,
// then eats, then pulls the tail along.
func (g *Game) tick() TickResult {
	if g.player.Tail.Occupies(g.player.Pos) {
		g.logger.Info("player stepped on its tail", "pos", g.player.Pos)
		g.gameOver()
		return TickResult{GameOver: true}
	}

	var result TickResult
	if core.PositionsEqual(g.player.Pos, g.resource.Pos) {
		g.logger.Info("player stepped on resource", "pos", g.player.Pos, "frame", g.frameTime)
		if err := g.relocateResource(); err != nil {
			if errors.Is(err, ErrNoFreeTile) {
				g.stats.Score++
				g.logger.Info("board filled")
				g.gameOver()
				return TickResult{Ate: true, GameOver: true}
			}
			g.logger.Error("resource placement failed", "err", err)
		}
		g.stats.Score++
		g.player.Tail.Grow()
		result.Ate = true
	}

	g.player.Tail.Follow(g.player.Prev)
	g.player.Tail.Recolor(g.player.Color, g.player.LastTailColor)
	return result
}

// gameOver ends the running session and starts a fresh one in place.
func (g *Game) gameOver() {
	g.stats.EndedAt = g.now()
	g.lastStats = g.stats
	g.logger.Info("game over",
		"score", g.stats.Score,
		"time", g.stats.Elapsed(g.stats.EndedAt).Round(time.Millisecond),
		"moves", g.stats.Moves,
	)
	g.seed = g.rng.Int63()
	g.Reset()
}

// TogglePause switches a running session in and out of the pause menu.
func (g *Game) TogglePause() {
	if g.state.Phase != PhasePlaying {
		return
	}
	next := g.state
	switch g.state.Overlay {
	case OverlayNone:
		next.Overlay = OverlayPaused
	case OverlayPaused:
		next.Overlay = OverlayNone
	default:
		return
	}
	g.setState(next)
}

// OpenSettings shows the settings panel over the current screen.
func (g *Game) OpenSettings() {
	if g.state.Overlay == OverlaySettings {
		return
	}
	next := g.state
	next.SettingsOf = g.state.Overlay
	next.Overlay = OverlaySettings
	g.setState(next)
}

// CloseSettings returns to whatever the settings panel was opened over.
func (g *Game) CloseSettings() {
	if g.state.Overlay != OverlaySettings {
		return
	}
	next := g.state
	next.Overlay = g.state.SettingsOf
	next.SettingsOf = OverlayNone
	g.setState(next)
}

// Back closes settings if open, otherwise toggles pause during play.
func (g *Game) Back() {
	if g.state.Overlay == OverlaySettings {
		g.CloseSettings()
		return
	}
	if g.state.Phase == PhasePlaying {
		g.TogglePause()
	}
}

// QuitSession abandons the running session and returns to the title.
func (g *Game) QuitSession() {
	if g.state.Phase != PhasePlaying {
		return
	}
	g.stats.EndedAt = g.now()
	g.lastStats = g.stats
	g.logger.Info("session abandoned", "score", g.stats.Score, "moves", g.stats.Moves)
	g.setState(State{Phase: PhaseTitle, Debug: g.state.Debug})
}

// Quit ends the game. A running session is handed to the saver first.
func (g *Game) Quit() error {
	if g.exited {
		return nil
	}
	g.exited = true
	g.logger.Info("exiting from game")
	if g.state.Phase != PhasePlaying {
		return nil
	}
	g.stats.EndedAt = g.now()
	if err := g.saver.SaveSession(g.stats); err != nil {
		return fmt.Errorf("snake: save session: %w", err)
	}
	return nil
}

// Exited reports whether Quit has been called.
func (g *Game) Exited() bool {
	return g.exited
}

// ToggleDebug flips the debug overlay.
func (g *Game) ToggleDebug() {
	next := g.state
	next.Debug = !next.Debug
	g.setState(next)
}

// Handle applies a semantic action. Directional actions move the player
// while playing and navigate menus otherwise.
func (g *Game) Handle(a core.Action) TickResult {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		if g.state.AcceptsMoves() {
			dx, dy, _ := a.Delta()
			return g.MovePlayer(dx, dy)
		}
		switch a {
		case core.ActionUp:
			g.MoveCursor(-1)
		case core.ActionDown:
			g.MoveCursor(1)
		}
	case core.ActionConfirm:
		if items := g.Menu(); len(items) > 0 {
			g.Activate(items[g.menuCursor])
		}
	case core.ActionBack:
		g.Back()
	case core.ActionPause:
		g.TogglePause()
	case core.ActionDebug:
		g.ToggleDebug()
	case core.ActionSettings:
		g.OpenSettings()
	case core.ActionQuit:
		if err := g.Quit(); err != nil {
			g.logger.Error("quit", "err", err)
		}
	}
	return TickResult{}
}

// Resize records the new terminal size. The session is kept.
func (g *Game) Resize(w, h int) {
	if w == g.screenW && h == g.screenH {
		return
	}
	g.screenW, g.screenH = w, h
	g.logger.Debug("new window size", "width", w, "height", h)
}

// Frame records the time the last frame took.
func (g *Game) Frame(dt time.Duration) {
	g.frameTime = dt
}

// SetPalette swaps colours on the fly.
func (g *Game) SetPalette(p Palette) {
	g.palette = p
	g.player.Color = p.Head
	g.player.LastTailColor = p.TailEnd
	g.resource.Color = p.Resource
	g.player.Tail.Recolor(p.Head, p.TailEnd)
}

func (g *Game) setState(next State) {
	prev := g.state
	g.state = next
	if prev.Overlay != next.Overlay || prev.Phase != next.Phase {
		g.menuCursor = 0
	}
	g.logger.Debug("game state changed", "from", prev.Flags(), "to", next.Flags())
}

// Grid returns the grid geometry.
func (g *Game) Grid() core.Grid { return g.grid }

// State returns the controller state.
func (g *Game) State() State { return g.state }

// Stats returns the running session's stats.
func (g *Game) Stats() Stats { return g.stats }

// LastStats returns the stats of the last finished session.
func (g *Game) LastStats() Stats { return g.lastStats }

// Player returns the head and its tail.
func (g *Game) Player() *Player { return &g.player }

// Resource returns the resource.
func (g *Game) Resource() Resource { return g.resource }

// Palette returns the active colours.
func (g *Game) Palette() Palette { return g.palette }

// Display returns the presentation settings.
func (g *Game) Display() Display { return g.display }

// FrameTime returns the duration of the last frame.
func (g *Game) FrameTime() time.Duration { return g.frameTime }

// Seed returns the current session seed.
func (g *Game) Seed() int64 { return g.seed }

// Now returns the game's clock reading.
func (g *Game) Now() time.Time { return g.now() }
