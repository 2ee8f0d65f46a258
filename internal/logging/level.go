package logging

import (
	"log/slog"
	"strings"
)

// DefaultLevel applies when no level is configured.
const DefaultLevel = slog.LevelInfo

// ParseLevel maps debug, info, warn (or warning) and error, in any case, to a level.
// ok is false for anything else, in which case DefaultLevel is returned.
func ParseLevel(s string) (level slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return DefaultLevel, false
	}
}
