package snake

import (
	"time"

	"github.com/charmbracelet/log"
)

// SessionSaver persists a session that is cut short by quitting.
type SessionSaver interface {
	SaveSession(stats Stats) error
}

// LogSaver is the placeholder saver. It only logs what would be saved.
type LogSaver struct {
	Logger *log.Logger
}

// SaveSession logs the session and reports success.
func (s LogSaver) SaveSession(stats Stats) error {
	if s.Logger == nil {
		return nil
	}
	s.Logger.Warn("[UNIMPLEMENTED] saving game session",
		"score", stats.Score,
		"moves", stats.Moves,
		"time", stats.Elapsed(stats.EndedAt).Round(time.Millisecond),
	)
	return nil
}
