package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, Up arrow - move up / previous menu item
	ActionDown            // S, Down arrow - move down / next menu item
	ActionLeft            // A, Left arrow - move left
	ActionRight           // D, Right arrow - move right
	ActionConfirm         // Enter, Space - activate selected menu item
	ActionBack            // Escape - close settings, else toggle pause
	ActionPause           // P - pause/unpause
	ActionDebug           // Grave accent - toggle debug overlay
	ActionSettings        // O - open settings overlay
	ActionQuit            // Q, Ctrl+C - exit the game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionDebug:
		return "Debug"
	case ActionSettings:
		return "Settings"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Delta returns the tile displacement for a directional action.
// Non-directional actions return ok=false.
func (a Action) Delta() (dx, dy int, ok bool) {
	switch a {
	case ActionUp:
		return 0, 1, true
	case ActionDown:
		return 0, -1, true
	case ActionLeft:
		return -1, 0, true
	case ActionRight:
		return 1, 0, true
	}
	return 0, 0, false
}
