// Package logging wraps charmbracelet/log for coursemd.
// Progress goes to stdout, one line per file, the way users of the
// converter expect to watch a run.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var current atomic.Pointer[log.Logger]

// New creates a logger writing to w at the given level.
// Unknown levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: ParseLevel(level)})
}

// ParseLevel maps a level name to a log.Level. It accepts the names
// charmbracelet/log knows plus "warning", case-insensitively.
func ParseLevel(level string) log.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	parsed, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}

// Default returns the process-wide logger, creating an info-level stdout
// logger on first use.
func Default() *log.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	current.CompareAndSwap(nil, New(os.Stdout, "info"))
	return current.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	current.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
