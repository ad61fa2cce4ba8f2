// Package logger writes plancanvas diagnostics.
// Debug and Info lines appear only in verbose mode (the --verbose flag).
// Warnings are always written: they report background saves that failed,
// which the engine never surfaces as errors.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
)

func (l level) String() string {
	switch l {
	case levelDebug:
		return "DEBUG"
	case levelInfo:
		return "INFO"
	default:
		return "WARN"
	}
}

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the writer for log lines and returns the previous one.
// Defaults to os.Stderr.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := output
	output = w
	return prev
}

// ToFile appends log lines to path until restore is called. The TUI uses
// it so background warnings do not draw over the alternate screen.
func ToFile(path string) (restore func(), err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	prev := SetOutput(f)
	return func() {
		SetOutput(prev)
		f.Close()
	}, nil
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(levelDebug, format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(levelInfo, format, args...)
}

// Warn prints a warning.
func Warn(format string, args ...any) {
	logf(levelWarn, format, args...)
}

func logf(l level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if l < levelWarn && !verbose {
		return
	}
	fmt.Fprintf(output, "[%s] %s\n", l, fmt.Sprintf(format, args...))
}
