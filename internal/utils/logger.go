package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// DefaultLogFile is the log sink used when no --log-file is given
var DefaultLogFile = filepath.Join(os.TempDir(), "immich-janitor.log")

// Logger provides leveled printf-style logging on top of slog
type Logger struct {
	slog  *slog.Logger
	level *slog.LevelVar
	file  *os.File
	mu    sync.Mutex
}

var (
	defaultLogger *Logger
	defaultMu     sync.Mutex
)

// GetLogger returns the default logger, creating it on first use
func GetLogger() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger == nil {
		var err error
		defaultLogger, err = NewLogger(DefaultLogFile, false)
		if err != nil {
			// Fallback to stderr if we can't create the log file
			defaultLogger = newWriterLogger(os.Stderr, nil, false)
			defaultLogger.Warning("failed to create log file, falling back to stderr: %v", err)
		}
	}
	return defaultLogger
}

// Configure replaces the default logger. verbose enables debug output and
// mirrors every record to stderr.
func Configure(logPath string, verbose bool) error {
	if logPath == "" {
		logPath = DefaultLogFile
	}

	logger, err := NewLogger(logPath, verbose)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	previous := defaultLogger
	defaultLogger = logger
	defaultMu.Unlock()

	if previous != nil {
		_ = previous.Close()
	}
	return nil
}

// setLogger installs l as the default logger and returns the previous one
func setLogger(l *Logger) *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	previous := defaultLogger
	defaultLogger = l
	return previous
}

// NewLogger creates a logger that appends to the file at logPath
func NewLogger(logPath string, verbose bool) (*Logger, error) {
	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var w io.Writer = file
	if verbose {
		w = io.MultiWriter(file, os.Stderr)
	}
	return newWriterLogger(w, file, verbose), nil
}

func newWriterLogger(w io.Writer, file *os.File, verbose bool) *Logger {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	if verbose {
		level.Set(slog.LevelDebug)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{
		slog:  slog.New(handler),
		level: level,
		file:  file,
	}
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.slog.Info(fmt.Sprintf(format, args...))
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.slog.Warn(fmt.Sprintf(format, args...))
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.slog.Debug(fmt.Sprintf(format, args...))
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.slog.Error(fmt.Sprintf(format, args...))
}

// Close closes the log file (if any)
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Convenience functions for the default logger
func Info(format string, args ...interface{}) {
	GetLogger().Info(format, args...)
}

func Warning(format string, args ...interface{}) {
	GetLogger().Warning(format, args...)
}

func Debug(format string, args ...interface{}) {
	GetLogger().Debug(format, args...)
}

func Error(format string, args ...interface{}) {
	GetLogger().Error(format, args...)
}
