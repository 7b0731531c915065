package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Options configures a game run.
type Options struct {
	Game          *snake.Game
	Runtime       core.RuntimeConfig
	Logger        *log.Logger
	ConfigPath    string // Watched for live reload when set
	ScreenshotDir string
}

// Model is the Bubble Tea model for running the snake game.
type Model struct {
	game     *snake.Game
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	debug    debugView
	logger   *log.Logger
	config   core.RuntimeConfig
	shotDir  string
	width    int
	height   int
	lastTick time.Time
	status   string // One-line message under the board
	quitting bool
}

// NewModel creates a new Bubble Tea model and initialises the game.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed < 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	shotDir := opts.ScreenshotDir
	if shotDir == "" {
		shotDir = DefaultScreenshotDir()
	}

	opts.Game.Init(cfg)

	h := help.New()
	h.ShowAll = false

	m := Model{
		game:    opts.Game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:    DefaultKeyMap(),
		help:    h,
		debug:   newDebugView(),
		logger:  logger,
		config:  cfg,
		shotDir: shotDir,
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
	}
	m.help.Width = cfg.ScreenW
	m.syncLayout()
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case ConfigReloadedMsg:
		return m.handleReload(msg.Config)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		m.syncLayout()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.syncLayout()
		return m, nil
	case m.game.State().Debug && key.Matches(msg, m.keys.TailPrev):
		m.debug.selectTail(-1, m.game.Player().Tail.Cap())
		m.debug.refresh(m.game)
		return m, nil
	case m.game.State().Debug && key.Matches(msg, m.keys.TailNext):
		m.debug.selectTail(1, m.game.Player().Tail.Cap())
		m.debug.refresh(m.game)
		return m, nil
	case m.game.State().Debug && key.Matches(msg, m.keys.ResourceUp):
		return m.moveResource(0, 1)
	case m.game.State().Debug && key.Matches(msg, m.keys.ResourceDown):
		return m.moveResource(0, -1)
	case m.game.State().Debug && key.Matches(msg, m.keys.ResourceLeft):
		return m.moveResource(-1, 0)
	case m.game.State().Debug && key.Matches(msg, m.keys.ResourceRight):
		return m.moveResource(1, 0)
	}

	action := m.keys.Action(msg)
	if action == core.ActionNone {
		return m, nil
	}

	res := m.game.Handle(action)
	switch {
	case res.GameOver:
		last := m.game.LastStats()
		m.status = fmt.Sprintf("Game over! Score %d in %d moves", last.Score, last.Moves)
	case res.Moved:
		m.status = ""
	}
	return m.afterInput()
}

// moveResource nudges the resource from the debug inspector.
func (m Model) moveResource(dx, dy int) (tea.Model, tea.Cmd) {
	if err := m.game.MoveResource(dx, dy); err != nil {
		m.status = err.Error()
	} else {
		m.status = ""
	}
	m.debug.refresh(m.game)
	m.syncLayout()
	return m, nil
}

// handleMouse clicks menu buttons.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.game.Click(msg.X, msg.Y) {
		return m, nil
	}
	return m.afterInput()
}

func (m Model) afterInput() (tea.Model, tea.Cmd) {
	if m.game.Exited() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.State().Debug {
		m.debug.refresh(m.game)
	}
	m.syncLayout()
	return m, nil
}

// handleResize processes window resize events. The session is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.syncLayout()
	return m, nil
}

// handleTick records the frame time and schedules the next frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.lastTick.IsZero() {
		m.game.Frame(now.Sub(m.lastTick))
	}
	m.lastTick = now
	if m.game.State().Debug {
		m.debug.refresh(m.game)
	}
	return m, tickCmd(m.config.TickRate)
}

// handleReload applies a configuration re-read from disk.
// Colours change immediately; the grid is fixed for the process lifetime.
func (m Model) handleReload(cfg config.SnakeConfig) (tea.Model, tea.Cmd) {
	m.game.SetPalette(snake.PaletteFrom(cfg.Colors))
	if cfg.GridGeometry() != m.game.Grid() {
		m.logger.Warn("grid changes apply after restart", "grid", cfg.Grid)
	}
	m.status = "config reloaded"
	m.syncLayout()
	return m, nil
}

// syncLayout sizes the game screen to what the debug panel and footer
// leave free.
func (m *Model) syncLayout() {
	w := m.width
	if m.game.State().Debug {
		w -= lipgloss.Width(m.debug.View())
	}
	h := m.height
	if f := m.footer(); f != "" {
		h -= lipgloss.Height(f)
	}
	w = max(w, 0)
	h = max(h, 0)

	m.screen.Resize(w, h)
	m.game.Resize(w, h)
}

var (
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
)

func (m Model) footer() string {
	var lines []string
	if m.status != "" {
		lines = append(lines, statusStyle.Render(m.status))
	}
	if m.game.Display().ShowHelp {
		lines = append(lines, helpStyle.Render(m.help.View(m.keys)))
	}
	return strings.Join(lines, "\n")
}

// saveScreenshot saves the current screen and board to files.
func (m *Model) saveScreenshot() {
	txt, png, err := SaveScreenshot(m.shotDir, m.game, m.screen, time.Now())
	if err != nil {
		m.logger.Error("screenshot failed", "err", err)
		m.status = "screenshot failed"
		return
	}
	m.logger.Info("screenshot saved", "text", txt, "image", png)
	m.status = "screenshot saved to " + m.shotDir
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	body := RenderScreen(m.screen)
	if m.game.State().Debug {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.debug.View())
	}
	if f := m.footer(); f != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, f)
	}
	return body
}

// Game returns the running game.
func (m Model) Game() *snake.Game {
	return m.game
}

// Status returns the message shown under the board.
func (m Model) Status() string {
	return m.status
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Menu buttons are clickable
	)

	if opts.ConfigPath != "" {
		w, err := config.Watch(opts.ConfigPath, model.logger, func(cfg config.SnakeConfig) {
			p.Send(ConfigReloadedMsg{Config: cfg})
		})
		if err != nil {
			model.logger.Warn("config hot reload disabled", "err", err)
		} else {
			defer w.Close()
		}
	}

	_, err := p.Run()
	return err
}
