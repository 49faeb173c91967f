// Package slogging provides a slog-based file/console logger whose leveled
// printf-style methods satisfy the formgate.Logger capability.
package slogging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level represents logging verbosity
type Level int

const (
	// LevelDebug includes detailed debug information
	LevelDebug Level = iota
	// LevelInfo includes general information
	LevelInfo
	// LevelWarn includes warnings and errors only
	LevelWarn
	// LevelError includes only errors
	LevelError
)

// toSlogLevel converts our Level to slog.Level
func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config holds configuration options for the logger
type Config struct {
	// Level is the minimum log level to output
	Level Level
	// IsDev selects the human-readable text handler over JSON
	IsDev bool
	// LogDir is the directory to store log files; empty disables file output
	LogDir string
	// MaxSizeMB is the maximum size of a log file in MB before rotation
	MaxSizeMB int
	// MaxBackups is the maximum number of old log files to retain
	MaxBackups int
	// MaxAgeDays is the maximum number of days to retain logs
	MaxAgeDays int
	// AlsoLogToConsole controls if logs also go to stdout
	AlsoLogToConsole bool
}

// Logger is the slog-based logging component
type Logger struct {
	slogger    *slog.Logger
	level      Level
	fileLogger *lumberjack.Logger
}

// New creates a logger per the config, with lumberjack rotation when a log
// directory is set
func New(config Config) (*Logger, error) {
	if config.MaxSizeMB <= 0 {
		config.MaxSizeMB = 100
	}
	if config.MaxBackups <= 0 {
		config.MaxBackups = 10
	}
	if config.MaxAgeDays <= 0 {
		config.MaxAgeDays = 7
	}

	var fileLogger *lumberjack.Logger
	var writer io.Writer = os.Stdout

	if config.LogDir != "" {
		if err := os.MkdirAll(config.LogDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		fileLogger = &lumberjack.Logger{
			Filename:   filepath.Join(config.LogDir, "formgate.log"),
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAgeDays,
			Compress:   true,
		}
		if config.AlsoLogToConsole {
			writer = io.MultiWriter(os.Stdout, fileLogger)
		} else {
			writer = fileLogger
		}
	}

	handlerOpts := &slog.HandlerOptions{
		Level: config.Level.toSlogLevel(),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					return slog.String(slog.TimeKey, t.Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if config.IsDev {
		handler = slog.NewTextHandler(writer, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	}

	return &Logger{
		slogger:    slog.New(handler),
		level:      config.Level,
		fileLogger: fileLogger,
	}, nil
}

// NewConsole creates a text logger writing to w, used by tests and
// development setups
func NewConsole(level Level, w io.Writer) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level.toSlogLevel(),
	})
	return &Logger{
		slogger: slog.New(handler),
		level:   level,
	}
}

// Close flushes and closes the rotating file sink, if any
func (l *Logger) Close() error {
	if l.fileLogger != nil {
		return l.fileLogger.Close()
	}
	return nil
}

// Debug logs a debug-level message
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info-level message
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning-level message
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error-level message
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}

// log formats, sanitizes, and emits a message at the given level
func (l *Logger) log(level Level, format string, args ...any) {
	if l.level > level {
		return
	}
	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}
	// Strip line breaks to prevent log injection (CWE-117)
	message = sanitizeMessage(message)
	l.slogger.Log(context.Background(), level.toSlogLevel(), message)
}

// sanitizeMessage removes characters that would let user-controlled input
// forge additional log lines
func sanitizeMessage(message string) string {
	message = strings.ReplaceAll(message, "\n", "\\n")
	message = strings.ReplaceAll(message, "\r", "\\r")
	return message
}
