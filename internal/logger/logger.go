// Package logger provides the application log for the Thot CLI.
//
// Messages are structured slog records. Warnings and errors always reach
// stderr; debug and info messages only when verbose mode is enabled via
// the --verbose flag. When a log file is configured, records are also
// written to it as JSON.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	slogmulti "github.com/samber/slog-multi"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	file    io.Writer
	current = build()
)

// build must be called with mu held for writing, except at init.
func build() *slog.Logger {
	stderrLevel := slog.LevelWarn
	fileLevel := slog.LevelInfo
	if verbose {
		stderrLevel = slog.LevelDebug
		fileLevel = slog.LevelDebug
	}

	text := slog.NewTextHandler(output, &slog.HandlerOptions{
		Level:       stderrLevel,
		ReplaceAttr: dropTime,
	})
	if file == nil {
		return slog.New(text)
	}

	jsonHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: fileLevel})
	return slog.New(slogmulti.Fanout(text, jsonHandler))
}

func dropTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	current = build()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the writer for human-readable logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	current = build()
}

// SetFileWriter adds a JSON destination. Nil removes it.
func SetFileWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	file = w
	current = build()
}

// OpenFile appends JSON records to the file at path.
// The returned function closes the file and detaches it from the logger.
func OpenFile(path string) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	SetFileWriter(f)
	return func() error {
		SetFileWriter(nil)
		return f.Close()
	}, nil
}

// Logger returns the underlying structured logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func logf(level slog.Level, format string, args ...any) {
	l := Logger()
	ctx := context.Background()
	if !l.Enabled(ctx, level) {
		return
	}
	l.Log(ctx, level, fmt.Sprintf(format, args...))
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(slog.LevelDebug, format, args...)
}

// Section logs a section header if verbose mode is enabled.
func Section(name string) {
	logf(slog.LevelDebug, "=== %s ===", name)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	logf(slog.LevelInfo, format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	logf(slog.LevelWarn, format, args...)
}

// Error logs an error.
func Error(format string, args ...any) {
	logf(slog.LevelError, format, args...)
}
