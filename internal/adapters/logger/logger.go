// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/bundleplan/internal/core/domain"
	"go.trai.ch/bundleplan/internal/core/ports"
	"go.trai.ch/bundleplan/internal/ui/output"
	"go.trai.ch/zerr"
)

// Log formats accepted by SetFormat.
const (
	FormatAuto   = "auto"
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

var _ ports.Logger = (*Logger)(nil)

// New creates a new Logger writing pretty output to stderr.
func New() *Logger {
	l := &Logger{output: os.Stderr}
	l.logger = slog.New(l.handler())
	return l
}

func (l *Logger) handler() slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if l.jsonMode {
		return slog.NewJSONHandler(l.output, opts)
	}
	return NewPrettyHandler(l.output, opts)
}

// SetOutput updates the logger's output destination.
// It preserves the current JSON mode setting.
// If w is nil, os.Stderr is used as the default.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(l.handler())
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.logger = slog.New(l.handler())
}

// SetFormat selects the log format by name.
// "auto" logs JSON unless the output is a terminal.
func (l *Logger) SetFormat(format string) error {
	switch format {
	case FormatPretty:
		l.SetJSON(false)
	case FormatJSON:
		l.SetJSON(true)
	case FormatAuto, "":
		l.mu.RLock()
		tty := output.IsTerminal(l.output)
		l.mu.RUnlock()
		l.SetJSON(!tty)
	default:
		return zerr.With(domain.ErrInvalidLogFormat, "format", format)
	}
	return nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Diagnostic logs one policy decision as a structured record.
// A downgrade is a warning and also names the declared policy.
func (l *Logger) Diagnostic(d domain.Diagnostic) {
	level, msg := slog.LevelInfo, "resolved"
	attrs := []slog.Attr{
		slog.String(KeyModule, d.ModuleID),
		slog.String(KeyPolicy, d.ChosenPolicy.String()),
	}
	if d.Downgraded {
		level, msg = slog.LevelWarn, "policy downgraded"
		attrs = append(attrs, slog.String(KeyDeclared, d.DeclaredPolicy.String()))
	}
	attrs = append(attrs, slog.String(KeyReason, d.Reason))

	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// Error logs an error with its cause chain and metadata.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}
