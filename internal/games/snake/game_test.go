package snake

import (
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

var testClock = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type recordingSaver struct {
	calls int
	last  Stats
	err   error
}

func (r *recordingSaver) SaveSession(s Stats) error {
	r.calls++
	r.last = s
	return r.err
}

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	return newTestGameWith(t, config.DefaultSnakeConfig(), opts...)
}

func newTestGameWith(t *testing.T, cfg config.SnakeConfig, opts ...Option) *Game {
	t.Helper()
	opts = append([]Option{
		WithLogger(log.New(io.Discard)),
		WithClock(func() time.Time { return testClock }),
	}, opts...)

	g := New(cfg, opts...)
	g.Init(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 42})
	g.NewGame()
	return g
}

// park moves the resource out of the way of a test's path.
func park(t *testing.T, g *Game) {
	t.Helper()
	if err := g.PlaceResource(core.Tile{X: -7, Y: -4}); err != nil {
		t.Fatal(err)
	}
}

// eatAt places the resource one step away and moves onto it.
func eatAt(t *testing.T, g *Game, dx, dy int) {
	t.Helper()
	next := g.grid.WorldToTile(g.player.Pos).Add(dx, dy)
	if err := g.PlaceResource(next); err != nil {
		t.Fatal(err)
	}
	res := g.MovePlayer(dx, dy)
	if !res.Ate {
		t.Fatalf("MovePlayer(%d, %d) onto resource did not eat: %+v", dx, dy, res)
	}
}

func TestMovePlayerUpdatesPosition(t *testing.T) {
	tests := []struct {
		name   string
		action core.Action
		want   mgl32.Vec2
	}{
		{"right", core.ActionRight, mgl32.Vec2{1.2, 0}},
		{"left", core.ActionLeft, mgl32.Vec2{-1.2, 0}},
		{"up", core.ActionUp, mgl32.Vec2{0, 1.2}},
		{"down", core.ActionDown, mgl32.Vec2{0, -1.2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t)
			park(t, g)

			res := g.Handle(tc.action)
			if !res.Moved {
				t.Fatalf("Handle(%v) did not move", tc.action)
			}
			if !core.PositionsEqual(g.player.Prev, mgl32.Vec2{}) {
				t.Errorf("Prev = %v, expected origin", g.player.Prev)
			}
			if !core.PositionsEqual(g.player.Pos, tc.want) {
				t.Errorf("Pos = %v, expected %v", g.player.Pos, tc.want)
			}
			if !core.PositionsEqual(modelPosition(g.player.Model), g.player.Pos) {
				t.Errorf("model translation %v does not match position %v", modelPosition(g.player.Model), g.player.Pos)
			}
			if g.stats.Moves != 1 {
				t.Errorf("Moves = %d, expected 1", g.stats.Moves)
			}
		})
	}
}

func TestFreshGameMoveRightThenEat(t *testing.T) {
	g := newTestGame(t)
	park(t, g)

	g.MovePlayer(1, 0)
	if !core.PositionsEqual(g.player.Pos, mgl32.Vec2{1.2, 0}) {
		t.Errorf("head at %v, expected (1.2, 0)", g.player.Pos)
	}
	if !core.PositionsEqual(g.player.Prev, mgl32.Vec2{0, 0}) {
		t.Errorf("prev at %v, expected (0, 0)", g.player.Prev)
	}
	if g.player.Tail.Len() != 0 {
		t.Errorf("tail length = %d, expected 0", g.player.Tail.Len())
	}

	g.Reset()
	if err := g.PlaceResource(core.Tile{X: 1, Y: 0}); err != nil {
		t.Fatal(err)
	}
	res := g.MovePlayer(1, 0)

	if !res.Ate {
		t.Error("moving onto the resource should eat it")
	}
	if g.stats.Score != 1 {
		t.Errorf("Score = %d, expected 1", g.stats.Score)
	}
	if g.player.Tail.Len() != 1 {
		t.Errorf("tail length = %d, expected 1", g.player.Tail.Len())
	}
	if seg := g.player.Tail.At(0); !core.PositionsEqual(seg.Pos, mgl32.Vec2{}) {
		t.Errorf("segment 0 at %v, expected origin", seg.Pos)
	}
	if core.PositionsEqual(g.resource.Pos, g.player.Pos) {
		t.Error("resource was not relocated off the head")
	}
}

func TestTailOfThreeShiftsToPredecessors(t *testing.T) {
	g := newTestGame(t)
	eatAt(t, g, 1, 0)
	eatAt(t, g, 1, 0)
	eatAt(t, g, 1, 0)
	park(t, g)

	if g.player.Tail.Len() != 3 {
		t.Fatalf("tail length = %d, expected 3", g.player.Tail.Len())
	}

	headBefore := g.player.Pos
	before := make([]Segment, 3)
	copy(before, g.player.Tail.Active())

	g.MovePlayer(0, 1)

	after := g.player.Tail.Active()
	if !core.PositionsEqual(after[0].Pos, headBefore) {
		t.Errorf("segment 0 at %v, expected old head %v", after[0].Pos, headBefore)
	}
	for i := 1; i < 3; i++ {
		if !core.PositionsEqual(after[i].Pos, before[i-1].Pos) {
			t.Errorf("segment %d at %v, expected predecessor's old position %v", i, after[i].Pos, before[i-1].Pos)
		}
		if core.PositionsEqual(after[i].Pos, before[i].Pos) {
			t.Errorf("segment %d stayed at its own position %v", i, after[i].Pos)
		}
	}
	for i := range after {
		if !core.PositionsEqual(after[i].Prev, before[i].Pos) {
			t.Errorf("segment %d Prev = %v, expected %v", i, after[i].Prev, before[i].Pos)
		}
	}

	want := []core.Tile{{X: 3, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 0}}
	snap := g.Snapshot()
	for i, tile := range want {
		if snap.Tail[i] != tile {
			t.Errorf("snapshot tail[%d] = %v, expected %v", i, snap.Tail[i], tile)
		}
	}
}

func TestTailChainInvariantRandomWalk(t *testing.T) {
	g := newTestGame(t)
	rng := rand.New(rand.NewSource(7))
	dirs := []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}

	for step := 0; step < 2000; step++ {
		before := make([]Segment, g.player.Tail.Len())
		copy(before, g.player.Tail.Active())
		headBefore := g.player.Pos

		res := g.Handle(dirs[rng.Intn(len(dirs))])
		if !res.Moved || res.GameOver {
			continue
		}

		after := g.player.Tail.Active()
		if len(after) > 0 && !core.PositionsEqual(after[0].Pos, headBefore) {
			t.Fatalf("step %d: segment 0 at %v, expected %v", step, after[0].Pos, headBefore)
		}
		for i := 1; i < len(after); i++ {
			if !core.PositionsEqual(after[i].Pos, after[i-1].Prev) {
				t.Fatalf("step %d: segment %d at %v, predecessor prev %v", step, i, after[i].Pos, after[i-1].Prev)
			}
			if i-1 < len(before) && !core.PositionsEqual(after[i].Pos, before[i-1].Pos) {
				t.Fatalf("step %d: segment %d at %v, expected %v", step, i, after[i].Pos, before[i-1].Pos)
			}
		}
	}
}

func TestCollisionForcesReset(t *testing.T) {
	g := newTestGame(t)
	eatAt(t, g, 1, 0)

	res := g.MovePlayer(-1, 0)
	if !res.GameOver {
		t.Fatal("moving back onto the tail should end the game")
	}

	snap := g.Snapshot()
	if snap.Score != 0 || snap.Moves != 0 || len(snap.Tail) != 0 {
		t.Errorf("after game over score/moves/tail = %d/%d/%d, expected zeroes", snap.Score, snap.Moves, len(snap.Tail))
	}
	if snap.Head != (core.Tile{}) {
		t.Errorf("head at %v, expected origin", snap.Head)
	}
	if snap.Phase != PhasePlaying || snap.Overlay != OverlayNone {
		t.Errorf("state after game over = %v/%v, expected fresh play", snap.Phase, snap.Overlay)
	}

	last := g.LastStats()
	if last.Score != 1 || last.Moves != 2 {
		t.Errorf("last stats = %d points / %d moves, expected 1 / 2", last.Score, last.Moves)
	}
	if last.EndedAt.IsZero() {
		t.Error("last stats should record the end time")
	}

	park(t, g)
	if res := g.MovePlayer(0, 1); !res.Moved || res.GameOver {
		t.Errorf("first move after reset = %+v, expected a plain move", res)
	}
}

func TestRelocationAvoidsSnake(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < 4; i++ {
		eatAt(t, g, 1, 0)
	}
	eatAt(t, g, 0, 1)
	eatAt(t, g, -1, 0)

	for i := 0; i < 500; i++ {
		excl := g.exclusions()
		if err := g.relocateResource(); err != nil {
			t.Fatalf("relocateResource() failed: %v", err)
		}
		for _, p := range excl {
			if core.PositionsEqual(g.resource.Pos, p) {
				t.Fatalf("resource placed on excluded position %v", p)
			}
		}
		if !g.grid.Contains(g.grid.WorldToTile(g.resource.Pos)) {
			t.Fatalf("resource placed outside the grid at %v", g.resource.Pos)
		}
	}
}

// fillBoard covers every tile of a 3x3 board except those listed.
func fillBoard(g *Game, free ...core.Tile) {
	var covered []mgl32.Vec2
	for _, tile := range g.grid.Tiles() {
		skip := false
		for _, f := range free {
			if f == tile {
				skip = true
			}
		}
		if !skip {
			covered = append(covered, g.grid.TileToWorld(tile))
		}
	}

	g.player.Pos = covered[0]
	g.player.Prev = covered[1]
	g.player.Tail.Reset()
	for _, p := range covered[2:] {
		g.player.Tail.Grow()
		g.player.Tail.segments[g.player.Tail.Len()-1].Pos = p
	}
}

func TestRelocationFallsBackToScan(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.HalfHeight = 1
	cfg.Grid.HalfLength = 1
	cfg.Placement.MaxRetries = 1

	g := newTestGameWith(t, cfg)
	free := core.Tile{X: 1, Y: -1}
	fillBoard(g, free)

	for i := 0; i < 20; i++ {
		if err := g.relocateResource(); err != nil {
			t.Fatalf("relocateResource() failed: %v", err)
		}
		if got := g.grid.WorldToTile(g.resource.Pos); got != free {
			t.Fatalf("resource at %v, expected the only free tile %v", got, free)
		}
	}

	fillBoard(g)
	if err := g.relocateResource(); !errors.Is(err, ErrNoFreeTile) {
		t.Errorf("relocateResource() on a full board = %v, expected ErrNoFreeTile", err)
	}
}

func TestResetIdempotent(t *testing.T) {
	g := newTestGame(t)
	eatAt(t, g, 1, 0)
	eatAt(t, g, 0, 1)
	g.MovePlayer(-1, 0)

	g.Reset()
	once := g.Snapshot()
	g.Reset()
	twice := g.Snapshot()

	if !once.Equal(twice) {
		t.Errorf("second Reset changed state:\n%+v\n%+v", once, twice)
	}
	if once.Score != 0 || once.Moves != 0 || len(once.Tail) != 0 || once.Head != (core.Tile{}) {
		t.Errorf("Reset left %+v", once)
	}
	if once.Resource == once.Head {
		t.Error("resource reset onto the head")
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t)
	g2 := newTestGame(t)

	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 300; i++ {
		a := core.Action(int(core.ActionUp) + rng.Intn(4))
		g1.Handle(a)
		g2.Handle(a)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); !s1.Equal(s2) {
		t.Errorf("same seed and inputs diverged:\n%+v\n%+v", s1, s2)
	}
}

func TestMoveBlockedAtEdge(t *testing.T) {
	g := newTestGame(t)
	park(t, g)

	for i := 0; i < g.grid.HalfLength; i++ {
		g.MovePlayer(1, 0)
	}
	res := g.MovePlayer(1, 0)
	if res.Moved {
		t.Error("move past the right edge should be ignored")
	}
	if snap := g.Snapshot(); snap.Head.X != g.grid.HalfLength || snap.Moves != g.grid.HalfLength {
		t.Errorf("head %v after %d moves, expected x=%d", snap.Head, snap.Moves, g.grid.HalfLength)
	}
}

func TestStateTransitions(t *testing.T) {
	g := New(config.DefaultSnakeConfig(), WithLogger(log.New(io.Discard)))
	g.Init(core.DefaultConfig())

	steps := []struct {
		name string
		do   func()
		want string
	}{
		{"start", func() {}, "TITLE"},
		{"title settings", g.OpenSettings, "TITLE|SETTINGS"},
		{"close title settings", g.Back, "TITLE"},
		{"new game", g.NewGame, "PLAY"},
		{"pause", g.TogglePause, "PLAY|PAUSE"},
		{"settings over pause", g.OpenSettings, "PLAY|PAUSE|SETTINGS"},
		{"back to pause", g.Back, "PLAY|PAUSE"},
		{"unpause with back", g.Back, "PLAY"},
		{"debug on", g.ToggleDebug, "PLAY|DEBUG"},
		{"settings over play", g.OpenSettings, "PLAY|DEBUG|SETTINGS"},
		{"close settings", g.CloseSettings, "PLAY|DEBUG"},
		{"quit session", g.QuitSession, "DEBUG|TITLE"},
		{"debug off", g.ToggleDebug, "TITLE"},
	}

	for _, step := range steps {
		step.do()
		if got := g.State().Flags().String(); got != step.want {
			t.Fatalf("%s: flags = %s, expected %s", step.name, got, step.want)
		}
	}
}

func TestMovesIgnoredOutsidePlay(t *testing.T) {
	g := New(config.DefaultSnakeConfig(), WithLogger(log.New(io.Discard)))
	g.Init(core.DefaultConfig())

	if res := g.MovePlayer(1, 0); res.Moved {
		t.Error("move accepted on the title screen")
	}

	g.NewGame()
	park(t, g)
	g.TogglePause()
	if res := g.MovePlayer(1, 0); res.Moved {
		t.Error("move accepted while paused")
	}

	g.TogglePause()
	g.ToggleDebug()
	if res := g.MovePlayer(1, 0); !res.Moved {
		t.Error("debug overlay should not block moves")
	}
}

func TestQuitSavesOnlyWhilePlaying(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(g *Game)
		wantCalls int
	}{
		{"from title", func(g *Game) { g.QuitSession() }, 0},
		{"while playing", func(g *Game) {}, 1},
		{"while paused", func(g *Game) { g.TogglePause() }, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			saver := &recordingSaver{}
			g := newTestGame(t, WithSaver(saver))
			park(t, g)
			g.MovePlayer(1, 0)
			tc.setup(g)

			if err := g.Quit(); err != nil {
				t.Fatalf("Quit() failed: %v", err)
			}
			if saver.calls != tc.wantCalls {
				t.Errorf("saver called %d times, expected %d", saver.calls, tc.wantCalls)
			}
			if tc.wantCalls > 0 && saver.last.Moves != 1 {
				t.Errorf("saved %d moves, expected 1", saver.last.Moves)
			}
			if !g.Exited() {
				t.Error("Exited() should be true after Quit")
			}
		})
	}
}

func TestQuitReportsSaverError(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}
	g := newTestGame(t, WithSaver(saver))

	err := g.Quit()
	if err == nil || !errors.Is(err, saver.err) {
		t.Errorf("Quit() = %v, expected wrapped saver error", err)
	}
}

func TestMenuNavigationAndClick(t *testing.T) {
	g := New(config.DefaultSnakeConfig(), WithLogger(log.New(io.Discard)))
	g.Init(core.DefaultConfig())

	if items := g.Menu(); len(items) != 3 || items[0] != ItemNewGame {
		t.Fatalf("title menu = %v", items)
	}

	g.Handle(core.ActionUp)
	if g.Cursor() != 2 {
		t.Errorf("cursor after wrapping up = %d, expected 2", g.Cursor())
	}
	g.Handle(core.ActionDown)
	if g.Cursor() != 0 {
		t.Errorf("cursor after wrapping down = %d, expected 0", g.Cursor())
	}

	buttons := g.Buttons()
	x, y := buttons[1].X, buttons[1].Y
	if item, ok := g.ButtonAt(x, y); !ok || item != ItemSettings {
		t.Errorf("ButtonAt(%d, %d) = %v, %v, expected Settings", x, y, item, ok)
	}
	if _, ok := g.ButtonAt(0, 0); ok {
		t.Error("ButtonAt(0, 0) should miss every button")
	}

	x, y = buttons[0].X, buttons[0].Y
	if !g.Click(x, y) {
		t.Fatal("Click on New Game missed")
	}
	if g.State().Phase != PhasePlaying {
		t.Errorf("phase after New Game = %v", g.State().Phase)
	}
	if g.Menu() != nil {
		t.Error("no menu should be visible during play")
	}

	g.TogglePause()
	g.MoveCursor(2)
	g.Handle(core.ActionConfirm)
	if g.State().Phase != PhaseTitle {
		t.Errorf("Quit Session left phase %v", g.State().Phase)
	}
}

func TestSettingsItems(t *testing.T) {
	g := newTestGame(t)
	g.OpenSettings()

	g.Activate(ItemTileWidth)
	if g.Display().TileWidth != 1 {
		t.Errorf("tile width = %d, expected 1", g.Display().TileWidth)
	}
	g.Activate(ItemShowHelp)
	if g.Display().ShowHelp {
		t.Error("help should be toggled off")
	}
	if got := g.itemText(ItemShowHelp); got != "Help: off" {
		t.Errorf("itemText(ShowHelp) = %q", got)
	}
	g.Activate(ItemBack)
	if g.State().Overlay != OverlayNone {
		t.Errorf("overlay after Back = %v", g.State().Overlay)
	}
}

func TestSetPaletteRecolorsTail(t *testing.T) {
	g := newTestGame(t)
	eatAt(t, g, 1, 0)

	p := g.Palette()
	p.Head = core.RGB{0, 0, 1}
	p.TailEnd = core.RGB{0, 0, 1}
	g.SetPalette(p)

	if g.player.Color != p.Head {
		t.Errorf("head colour = %v", g.player.Color)
	}
	if c := g.player.Tail.At(0).Color; !core.FloatsEqual(c.Z(), 1) || !core.FloatsEqual(c.X(), 0) {
		t.Errorf("tail colour = %v, expected blue", c)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	l := g.layout()
	x, y := l.tileCell(g.grid, core.Tile{})
	cell := screen.GetCell(x, y)
	if cell.Rune != glyphBlock || cell.Color != g.palette.Head {
		t.Errorf("origin cell = %+v, expected head block", cell)
	}
	if screen.Get(l.x, l.y) != '┌' {
		t.Errorf("board corner = %q", screen.Get(l.x, l.y))
	}

	g.Resize(20, 6)
	small := core.NewScreen(20, 6)
	g.Render(small)
	if got := small.Row(3); got != "  Window too small  " {
		t.Errorf("too small row = %q", got)
	}
}

func TestStatsElapsed(t *testing.T) {
	s := Stats{StartedAt: testClock}
	if got := s.Elapsed(testClock.Add(3 * time.Second)); got != 3*time.Second {
		t.Errorf("Elapsed() running = %v", got)
	}
	s.EndedAt = testClock.Add(time.Second)
	if got := s.Elapsed(testClock.Add(time.Hour)); got != time.Second {
		t.Errorf("Elapsed() finished = %v", got)
	}
	if got := (Stats{}).Elapsed(testClock); got != 0 {
		t.Errorf("Elapsed() unstarted = %v", got)
	}
}
