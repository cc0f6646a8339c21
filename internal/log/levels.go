package log

import (
	"context"
)

// Trace logs at LevelTrace. slog.Logger has no Trace method of its own
// (Debug is its lowest built-in level), so this is a free function rather
// than a method on the Logger alias.
func Trace(l *Logger, msg string, args ...any) {
	l.Log(context.Background(), LevelTrace, msg, args...)
}

// Success logs at LevelSuccess, for diagnostics that report a completed
// operation rather than a problem (e.g. "program loaded", "heap chunk
// freed").
func Success(l *Logger, msg string, args ...any) {
	l.Log(context.Background(), LevelSuccess, msg, args...)
}

// Warning is an alias for (*Logger).Warn, named to match spec.md's
// WARNING diagnostic tag.
func Warning(l *Logger, msg string, args ...any) {
	l.Warn(msg, args...)
}
