// Package log provides leveled logging for plate-reader.
//
// Output goes to stderr: stdout is reserved for the recognized plate text.
// The level comes from ANPR_LOG_LEVEL (debug, info, warn, error) and
// defaults to warn so a normal run prints nothing but the plate.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// EnvLevel names the environment variable that selects the log level.
const EnvLevel = "ANPR_LOG_LEVEL"

var (
	mu     sync.Mutex
	logger *slog.Logger
)

// ParseLevel maps a level name to an slog.Level. Unknown names map to warn.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Init installs a text logger writing to w at the given level.
func Init(w io.Writer, level string) {
	mu.Lock()
	defer mu.Unlock()

	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// InitFromEnv installs a stderr logger at the level named by ANPR_LOG_LEVEL.
func InitFromEnv() {
	Init(os.Stderr, os.Getenv(EnvLevel))
}

// L returns the current logger, installing the env-configured one on first use.
func L() *slog.Logger {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		InitFromEnv()
		return L()
	}
	return l
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	L().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	L().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	L().Error(msg, args...)
}
