package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	Confirm       key.Binding
	Back          key.Binding
	Pause         key.Binding
	Settings      key.Binding
	Debug         key.Binding
	TailPrev      key.Binding
	TailNext      key.Binding
	// Debug-only resource nudges
	ResourceUp    key.Binding
	ResourceDown  key.Binding
	ResourceLeft  key.Binding
	ResourceRight key.Binding
	Screenshot    key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Pause, k.Back, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Confirm, k.Back, k.Pause, k.Settings},
		{k.Debug, k.TailPrev, k.TailNext, k.Screenshot},
		{k.ResourceUp, k.ResourceDown, k.ResourceLeft, k.ResourceRight},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "right"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back/pause"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Settings: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "settings"),
		),
		Debug: key.NewBinding(
			key.WithKeys("`"),
			key.WithHelp("`", "debug"),
		),
		TailPrev: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev tail"),
		),
		TailNext: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next tail"),
		),
		ResourceUp: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "resource up"),
		),
		ResourceDown: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "resource down"),
		),
		ResourceLeft: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "resource left"),
		),
		ResourceRight: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "resource right"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a game action.
// Keys handled by the platform itself map to ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Settings):
		return core.ActionSettings
	case key.Matches(msg, k.Debug):
		return core.ActionDebug
	}
	return core.ActionNone
}
