package snake

import "strings"

// Phase is the underlying game phase.
type Phase int

const (
	PhaseTitle Phase = iota
	PhasePlaying
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhasePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Overlay is a screen drawn over the phase without leaving it.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayPaused
	OverlaySettings
)

// String returns the overlay name.
func (o Overlay) String() string {
	switch o {
	case OverlayNone:
		return "none"
	case OverlayPaused:
		return "paused"
	case OverlaySettings:
		return "settings"
	default:
		return "unknown"
	}
}

// State is the controller state. Settings remembers the overlay it was
// opened over so closing it returns there.
type State struct {
	Phase      Phase
	Overlay    Overlay
	SettingsOf Overlay // Overlay underneath Settings
	Debug      bool
}

// AcceptsMoves reports whether directional input moves the player.
func (s State) AcceptsMoves() bool {
	return s.Phase == PhasePlaying && s.Overlay == OverlayNone
}

// Paused reports whether play is suspended, directly or under Settings.
func (s State) Paused() bool {
	return s.Overlay == OverlayPaused ||
		(s.Overlay == OverlaySettings && s.SettingsOf == OverlayPaused)
}

// Flags is the state expressed as independent bits, for logs and the
// debug overlay.
type Flags uint8

const (
	FlagPlay Flags = 1 << iota
	FlagDebug
	FlagTitle
	FlagPause
	FlagSettings
)

// Flags returns the bit representation of the state.
func (s State) Flags() Flags {
	var f Flags
	switch s.Phase {
	case PhaseTitle:
		f |= FlagTitle
	case PhasePlaying:
		f |= FlagPlay
	}
	if s.Debug {
		f |= FlagDebug
	}
	if s.Paused() {
		f |= FlagPause
	}
	if s.Overlay == OverlaySettings {
		f |= FlagSettings
	}
	return f
}

// String returns the set flags joined by "|".
func (f Flags) String() string {
	names := []struct {
		flag Flags
		name string
	}{
		{FlagPlay, "PLAY"},
		{FlagDebug, "DEBUG"},
		{FlagTitle, "TITLE"},
		{FlagPause, "PAUSE"},
		{FlagSettings, "SETTINGS"},
	}

	var parts []string
	for _, n := range names {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}
