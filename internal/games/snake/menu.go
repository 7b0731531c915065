package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// MenuItem is one button on the title, pause or settings screen.
type MenuItem int

const (
	ItemNewGame MenuItem = iota
	ItemSettings
	ItemQuit
	ItemContinue
	ItemQuitSession
	ItemQuitGame
	ItemShowHelp
	ItemTileWidth
	ItemBack
)

const (
	buttonWidth = 20
	buttonGap   = 1
)

var (
	titleMenu    = []MenuItem{ItemNewGame, ItemSettings, ItemQuit}
	pauseMenu    = []MenuItem{ItemContinue, ItemSettings, ItemQuitSession, ItemQuitGame}
	settingsMenu = []MenuItem{ItemShowHelp, ItemTileWidth, ItemBack}
)

// Label returns the static button text.
func (m MenuItem) Label() string {
	switch m {
	case ItemNewGame:
		return "New Game"
	case ItemSettings:
		return "Settings"
	case ItemQuit:
		return "Quit"
	case ItemContinue:
		return "Continue"
	case ItemQuitSession:
		return "Quit Session"
	case ItemQuitGame:
		return "Quit Game"
	case ItemShowHelp:
		return "Help"
	case ItemTileWidth:
		return "Tile Width"
	case ItemBack:
		return "Back"
	default:
		return "?"
	}
}

// itemText is what a button shows, including the current value of a
// setting.
func (g *Game) itemText(m MenuItem) string {
	switch m {
	case ItemShowHelp:
		if g.display.ShowHelp {
			return m.Label() + ": on"
		}
		return m.Label() + ": off"
	case ItemTileWidth:
		return fmt.Sprintf("%s: %d", m.Label(), g.display.TileWidth)
	}
	return m.Label()
}

// Menu returns the buttons on screen, or nil during play.
func (g *Game) Menu() []MenuItem {
	switch {
	case g.state.Overlay == OverlaySettings:
		return settingsMenu
	case g.state.Phase == PhaseTitle:
		return titleMenu
	case g.state.Overlay == OverlayPaused:
		return pauseMenu
	}
	return nil
}

// Cursor returns the index of the highlighted button.
func (g *Game) Cursor() int {
	return g.menuCursor
}

// MoveCursor moves the highlight, wrapping at both ends.
func (g *Game) MoveCursor(delta int) {
	items := g.Menu()
	if len(items) == 0 {
		return
	}
	g.menuCursor = (g.menuCursor + delta + len(items)) % len(items)
}

// Activate performs the button's action.
func (g *Game) Activate(m MenuItem) {
	g.logger.Debug("button pressed", "item", m.Label())
	switch m {
	case ItemNewGame:
		g.NewGame()
	case ItemSettings:
		g.OpenSettings()
	case ItemQuit, ItemQuitGame:
		if err := g.Quit(); err != nil {
			g.logger.Error("quit", "err", err)
		}
	case ItemContinue:
		g.TogglePause()
	case ItemQuitSession:
		g.QuitSession()
	case ItemShowHelp:
		g.display.ShowHelp = !g.display.ShowHelp
	case ItemTileWidth:
		if g.display.TileWidth == 1 {
			g.display.TileWidth = 2
		} else {
			g.display.TileWidth = 1
		}
	case ItemBack:
		g.CloseSettings()
	}
}

// Buttons lays out the visible menu as a centred column.
func (g *Game) Buttons() []core.Rect {
	items := g.Menu()
	if len(items) == 0 {
		return nil
	}

	total := len(items)*(1+buttonGap) - buttonGap
	x := (g.screenW - buttonWidth) / 2
	y := (g.screenH-total)/2 + 1

	rects := make([]core.Rect, len(items))
	for i := range items {
		rects[i] = core.NewRect(x, y+i*(1+buttonGap), buttonWidth, 1)
	}
	return rects
}

// ButtonAt returns the button under the screen cell (x, y).
func (g *Game) ButtonAt(x, y int) (MenuItem, bool) {
	items := g.Menu()
	for i, r := range g.Buttons() {
		if r.Contains(x, y) {
			return items[i], true
		}
	}
	return 0, false
}

// Click activates the button under (x, y), if any.
func (g *Game) Click(x, y int) bool {
	item, ok := g.ButtonAt(x, y)
	if !ok {
		return false
	}
	for i, it := range g.Menu() {
		if it == item {
			g.menuCursor = i
		}
	}
	g.Activate(item)
	return true
}
