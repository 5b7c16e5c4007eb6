package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// EnvVarLogLevel is the environment variable name for setting the log level.
	EnvVarLogLevel = "LOG_LEVEL"

	// EnvVarLogFile is the environment variable name for a rotating log file path.
	// Logs go to stderr when unset.
	EnvVarLogFile = "LOG_FILE"

	maxLogSizeMB  = 10
	maxLogBackups = 2
	maxLogAgeDays = 28
)

// NewStructuredLogger creates a new structured logger writing JSON to stderr.
// Defined module name and version are included in the logger's context.
// AddSource is enabled for debug level logging only.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return NewStructuredLoggerWithWriter(os.Stderr, module, version, level)
}

// NewStructuredLoggerWithWriter is NewStructuredLogger with an explicit destination.
func NewStructuredLoggerWithWriter(w io.Writer, module, version, level string) *slog.Logger {
	lev := ParseLogLevel(level)
	addSource := lev <= slog.LevelDebug

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lev,
		AddSource: addSource,
	})).With("module", module, "version", version)
}

// NewFileWriter returns a size-rotated, compressed log file writer.
// Desktop apps started from a launcher have no attached terminal,
// so this is the only place their logs survive.
func NewFileWriter(path string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}
}

// NewLogLogger creates a standard library log.Logger that writes through a
// slog text handler at the specified level.
func NewLogLogger(level slog.Level, withSource bool) *log.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: withSource,
	})

	return slog.NewLogLogger(handler, level)
}

// SetDefaultLogger initializes the structured logger from the LOG_LEVEL and
// LOG_FILE environment variables and sets it as the default logger.
// The returned closer releases the log file, if any.
func SetDefaultLogger(module, version string) io.Closer {
	return SetDefaultLoggerWithConfig(module, version, os.Getenv(EnvVarLogLevel), os.Getenv(EnvVarLogFile))
}

// SetDefaultLoggerWithLevel initializes the stderr logger with the specified level.
func SetDefaultLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// SetDefaultLoggerWithConfig sets the default logger to write at level to file,
// or to stderr when file is empty. The returned closer is never nil.
func SetDefaultLoggerWithConfig(module, version, level, file string) io.Closer {
	if strings.TrimSpace(file) == "" {
		SetDefaultLoggerWithLevel(module, version, level)
		return io.NopCloser(nil)
	}

	w := NewFileWriter(file)
	slog.SetDefault(NewStructuredLoggerWithWriter(w, module, version, level))
	return w
}

// ParseLogLevel converts a string representation of a log level into a slog.Level.
// Defaults to slog.LevelInfo for unrecognized strings.
func ParseLogLevel(level string) slog.Level {
	var lev slog.Level

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lev = slog.LevelDebug
	case "warn", "warning":
		lev = slog.LevelWarn
	case "error":
		lev = slog.LevelError
	default:
		lev = slog.LevelInfo
	}

	return lev
}
