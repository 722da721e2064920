package mld

import (
	"log/slog"

	"github.com/diapath/vtoq/internal/logging"
)

// SetLogger installs the logger used for decode warnings and debug output.
// Passing nil restores the default, which discards everything.
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the logger in use
func Logger() *slog.Logger {
	return logging.Logger()
}
