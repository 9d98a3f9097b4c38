// Package logger holds the process-wide zerolog configuration for the
// consolidator. Warnings always reach stderr; debug and info output is
// shown only in verbose mode (--verbose or output.verbose).
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type state struct {
	verbose bool
	out     io.Writer
	base    zerolog.Logger
}

var (
	mu  sync.RWMutex
	cur = newState(os.Stderr, false)
)

func newState(w io.Writer, verbose bool) state {
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    w != os.Stderr,
	}
	return state{
		verbose: verbose,
		out:     w,
		base:    zerolog.New(console).With().Timestamp().Logger(),
	}
}

func snapshot() state {
	mu.RLock()
	defer mu.RUnlock()
	return cur
}

// SetVerbose toggles debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	cur.verbose = v
}

// IsVerbose reports whether debug output is on.
func IsVerbose() bool {
	return snapshot().verbose
}

// SetOutput redirects all log output to w. A nil w restores stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	mu.Lock()
	defer mu.Unlock()
	cur = newState(w, cur.verbose)
}

// Logger returns a logger tagged with component.
func Logger(component string) zerolog.Logger {
	s := snapshot()
	level := zerolog.WarnLevel
	if s.verbose {
		level = zerolog.DebugLevel
	}
	return s.base.Level(level).With().Str("component", component).Logger()
}

func emit(level zerolog.Level, format string, args []any) {
	s := snapshot()
	if !s.verbose {
		return
	}
	s.base.WithLevel(level).Msgf(format, args...)
}

// Debug logs a formatted message in verbose mode.
func Debug(format string, args ...any) { emit(zerolog.DebugLevel, format, args) }

// Info logs a formatted message in verbose mode.
func Info(format string, args ...any) { emit(zerolog.InfoLevel, format, args) }

// Warn logs a formatted warning in verbose mode.
// Use Logger for warnings that must always be shown.
func Warn(format string, args ...any) { emit(zerolog.WarnLevel, format, args) }

// Section writes a step header in verbose mode.
func Section(name string) {
	s := snapshot()
	if s.verbose {
		fmt.Fprintf(s.out, "\n=== %s ===\n", name)
	}
}
