// Package debug provides the process-wide structured logger built on
// log/slog. It starts silent; Init(true) routes debug output to stderr.
package debug

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	verbose bool
)

// Init configures the logger. With enable set, messages at debug level and
// above go to stderr as text; otherwise everything is discarded.
func Init(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = enable
	if enable {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	} else {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// Enabled reports whether debug output is active.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

func active() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Debug(msg string, args ...any) { active().Debug(msg, args...) }
func Info(msg string, args ...any)  { active().Info(msg, args...) }
func Warn(msg string, args ...any)  { active().Warn(msg, args...) }
func Error(msg string, args ...any) { active().Error(msg, args...) }

// With returns a child logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return active().With(args...)
}
