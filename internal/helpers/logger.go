package helpers

import (
	"io"
	"log/slog"
)

// NewNoopLogger returns a logger that discards everything.
func NewNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// LogLevel maps a verbosity count onto a slog level starting at Warn.
// The debug toggle forces Debug regardless of verbosity, but never raises a level already below it.
func LogLevel(verbosity int, debug bool) slog.Level {
	level := slog.LevelWarn - slog.Level(verbosity*4)
	if debug && level > slog.LevelDebug {
		level = slog.LevelDebug
	}
	return level
}

// NewLogger creates the JSON logger handed to every component.
func NewLogger(w io.Writer, verbosity int, callerTrace, debug bool) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: callerTrace,
		Level:     LogLevel(verbosity, debug),
	}))
}
