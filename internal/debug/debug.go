// Package debug writes structured JSON debug logs under the cache dir,
// out of the way of normal terminal output.
package debug

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Open returns a logger appending JSON lines to logDir/<name> and a close
// func. Failures to open the log file degrade to a no-op logger; debug
// logging must never break the tool.
func Open(logDir, name, level string) (zerolog.Logger, func()) {
	_ = os.MkdirAll(logDir, 0o755)

	f, err := os.OpenFile(filepath.Join(logDir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	log := zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return log, func() { _ = f.Close() }
}

// Warnf adapts a zerolog logger to the decomposer's warning capability.
type Warnf struct {
	Log zerolog.Logger
}

func (w Warnf) Warnf(format string, args ...any) {
	w.Log.Warn().Msgf(format, args...)
}

// NewTestLogger returns a logger writing to w, for tests.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w)
}
