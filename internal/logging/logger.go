// Package logging holds the package-level *slog.Logger shared by the relevé
// packages. It discards everything until SetLogger is called.
package logging

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

// SetLogger installs sl as the shared logger. Nil restores the discard logger.
// Safe for concurrent use.
func SetLogger(sl *slog.Logger) {
	if sl == nil {
		sl = slog.New(slog.DiscardHandler)
	}
	logger.Store(sl)
}

// Logger returns the shared logger, never nil.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	l := slog.New(slog.DiscardHandler)
	logger.CompareAndSwap(nil, l)
	return logger.Load()
}

// NewText builds a text logger on w. Debug lowers the level to slog.LevelDebug.
func NewText(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
