package log

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

var (
	mu      sync.Mutex
	logFile *os.File

	// fallback receives records once the log file is closed.
	fallback      io.Writer = os.Stderr
	fallbackLevel           = slog.LevelWarn
)

// Init initializes the global logger.
// It configures the default slog logger to write to the specified path (or w)
// at the specified level.
//
// path: Log file path. If empty, logs to w (os.Stderr when nil).
// level: Log level ("debug", "info", "warn", "error"). Defaults to "warn".
//
// Standard output is never used: it may carry the generated header.
func Init(path string, level string, w io.Writer) error {
	mu.Lock()
	defer mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	lvl := ParseLevel(level)
	if err := closeFileLocked(); err != nil {
		return err
	}
	fallback, fallbackLevel = w, lvl

	if path != "" {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}

		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		logFile = f
		w = f
	}

	slog.SetDefault(slog.New(NewHandler(w, lvl)))
	return nil
}

// Close releases the log file opened by Init, if any. Later records go to the
// writer passed to Init.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeFileLocked()
}

func closeFileLocked() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	slog.SetDefault(slog.New(NewHandler(fallback, fallbackLevel)))
	return err
}

// NewHandler returns a colored tint handler when w is a terminal and a plain
// text handler otherwise.
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	if isTerminal(w) {
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ParseLevel maps a level name to a slog level. Unknown names fall back to warn.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
