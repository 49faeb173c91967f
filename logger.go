package formgate

import "strings"

// Logger is the logging capability a host attaches to a Plugin. Any type
// with printf-style leveled methods satisfies it, including
// internal/slogging.Logger. Presence is checked once at configuration time
// when a log level is supplied.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// LogLevel represents logging verbosity
type LogLevel int

const (
	// LevelDebug includes detailed debug information
	LevelDebug LogLevel = iota
	// LevelInfo includes general request information
	LevelInfo
	// LevelWarn includes warnings and errors only
	LevelWarn
	// LevelError includes only errors
	LevelError
)

// ParseLogLevel converts a string log level to LogLevel. Unknown names are
// rejected rather than defaulted: a typo in a configured level must surface
// as a configuration error, not silently change what gets logged.
func ParseLogLevel(level string) (LogLevel, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// logAt dispatches a message to the logger method matching the level
func logAt(logger Logger, level LogLevel, format string, args ...any) {
	if logger == nil {
		return
	}
	switch level {
	case LevelDebug:
		logger.Debug(format, args...)
	case LevelWarn:
		logger.Warn(format, args...)
	case LevelError:
		logger.Error(format, args...)
	default:
		logger.Info(format, args...)
	}
}
